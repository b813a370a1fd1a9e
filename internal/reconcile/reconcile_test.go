package reconcile

import (
	"testing"
)

func TestFind_ExactMatch(t *testing.T) {
	candidates := []Candidate{
		{ID: "gid://shopify/Order/111", OrderNumber: 1001},
		{ID: "gid://shopify/Order/222", OrderNumber: 1002},
	}

	m := Find("gid://shopify/Order/222", candidates)
	if m == nil {
		t.Fatal("Find() = nil, want match")
	}
	if m.Index != 1 {
		t.Errorf("Index = %d, want 1", m.Index)
	}
	if m.Strategy != 1 {
		t.Errorf("Strategy = %d, want 1", m.Strategy)
	}
	if m.Ambiguous {
		t.Error("Ambiguous = true, want false")
	}
}

func TestFind_NormalizedMatch(t *testing.T) {
	// Query suffix on the input, clean ID in the page.
	candidates := []Candidate{
		{ID: "gid://shopify/Order/333", OrderNumber: 1003},
	}

	m := Find("gid://shopify/Order/333?key=abc123", candidates)
	if m == nil {
		t.Fatal("Find() = nil, want match")
	}
	if m.Strategy != 1 {
		t.Errorf("Strategy = %d, want 1", m.Strategy)
	}
}

func TestFind_NumericSuffix(t *testing.T) {
	// Both sides carry different query suffixes; only the trailing digit
	// run lines up.
	candidates := []Candidate{
		{ID: "gid://shopify/Order/999?key=server-side", OrderNumber: 1009},
	}

	m := Find("gid://shopify/Order/999?utm=email", candidates)
	if m == nil {
		t.Fatal("Find() = nil, want match")
	}
	if m.Strategy != 2 {
		t.Errorf("Strategy = %d, want 2", m.Strategy)
	}
}

func TestFind_BareNumericIdentifier(t *testing.T) {
	// A bare "123?utm=x" has a trailing digit run even without a slash.
	candidates := []Candidate{
		{ID: "gid://shopify/Order/123", OrderNumber: 1},
	}

	m := Find("123?utm=x", candidates)
	if m == nil {
		t.Fatal("Find() = nil, want match")
	}
	if m.Strategy != 2 {
		t.Errorf("Strategy = %d, want 2", m.Strategy)
	}
}

func TestFind_OrderNumberFallback(t *testing.T) {
	// The digits after Order/ are not the upstream numeric ID, but they do
	// match a customer-facing order number.
	candidates := []Candidate{
		{ID: "gid://shopify/Order/987654321", OrderNumber: 1042},
	}

	m := Find("gid://shopify/Order/1042", candidates)
	if m == nil {
		t.Fatal("Find() = nil, want match")
	}
	if m.Strategy != 3 {
		t.Errorf("Strategy = %d, want 3", m.Strategy)
	}
	if m.Index != 0 {
		t.Errorf("Index = %d, want 0", m.Index)
	}
}

func TestFind_StrategyOrder(t *testing.T) {
	// An exact match wins even when later candidates would match a looser
	// strategy.
	candidates := []Candidate{
		{ID: "gid://shopify/Order/555?key=x", OrderNumber: 1},
		{ID: "gid://shopify/Order/555", OrderNumber: 2},
	}

	m := Find("gid://shopify/Order/555", candidates)
	if m == nil {
		t.Fatal("Find() = nil, want match")
	}
	if m.Strategy != 1 {
		t.Errorf("Strategy = %d, want 1", m.Strategy)
	}
	if m.Index != 1 {
		t.Errorf("Index = %d, want 1", m.Index)
	}
}

func TestFind_NotFound(t *testing.T) {
	candidates := []Candidate{
		{ID: "gid://shopify/Order/111", OrderNumber: 1001},
	}

	if m := Find("gid://shopify/Order/000", candidates); m != nil {
		t.Errorf("Find() = %+v, want nil", m)
	}
}

func TestFind_EmptyPage(t *testing.T) {
	if m := Find("gid://shopify/Order/111", nil); m != nil {
		t.Errorf("Find() = %+v, want nil", m)
	}
}

func TestFind_AmbiguousNumericSuffix(t *testing.T) {
	// Two candidates share the trailing digit run; first in page order wins
	// and the match is flagged.
	candidates := []Candidate{
		{ID: "gid://shopify/Order/77?key=a", OrderNumber: 1},
		{ID: "gid://shopify/Draft/77?key=b", OrderNumber: 2},
	}

	m := Find("77", candidates)
	if m == nil {
		t.Fatal("Find() = nil, want match")
	}
	if m.Index != 0 {
		t.Errorf("Index = %d, want 0", m.Index)
	}
	if !m.Ambiguous {
		t.Error("Ambiguous = false, want true")
	}
}

func TestFind_AmbiguousOrderNumber(t *testing.T) {
	candidates := []Candidate{
		{ID: "gid://shopify/Order/aaa", OrderNumber: 500},
		{ID: "gid://shopify/Order/bbb", OrderNumber: 500},
	}

	m := Find("gid://shopify/Order/500", candidates)
	if m == nil {
		t.Fatal("Find() = nil, want match")
	}
	if m.Strategy != 3 {
		t.Errorf("Strategy = %d, want 3", m.Strategy)
	}
	if !m.Ambiguous {
		t.Error("Ambiguous = false, want true")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"gid://shopify/Order/1?key=abc", "gid://shopify/Order/1"},
		{"  gid://shopify/Order/1  ", "gid://shopify/Order/1"},
		{"plain", "plain"},
		{"?only-query", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
