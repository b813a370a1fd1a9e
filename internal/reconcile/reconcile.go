// Package reconcile matches an order identifier taken from a URL against a
// page of orders fetched from the upstream platform. The Storefront API does
// not expose a direct fetch by this identifier format for the consumer-facing
// credential, so the lookup is a best-effort linear scan over a bounded page
// (a few hundred records) with fallback identity strategies.
//
// The fallback chain exists because the identifier format is not consistently
// preserved between the URL and the data source: sometimes it is the full
// global ID, sometimes the global ID with a tracking query suffix appended,
// sometimes just the bare numeric order number. Treat the chain as a known
// workaround, not a guaranteed contract.
package reconcile

import (
	"regexp"
	"strconv"
	"strings"
)

// Candidate is one order from the fetched page.
type Candidate struct {
	// ID is the full upstream identifier, e.g. "gid://shopify/Order/123?key=abc".
	ID string
	// OrderNumber is the sequential, customer-facing number.
	OrderNumber int
}

// Match is a successful reconciliation.
type Match struct {
	// Index of the matched candidate in the input slice.
	Index int
	// Strategy that produced the match (1=exact, 2=numeric suffix, 3=order number).
	Strategy int
	// Ambiguous is set when more than one candidate satisfied the winning
	// strategy. The first candidate in page order is returned; callers should
	// surface the ambiguity (e.g. a warning log) instead of trusting it silently.
	Ambiguous bool
}

var (
	// trailing run of digits at the end of a normalized identifier
	trailingDigitsRE = regexp.MustCompile(`(\d+)$`)
	// digits directly following the literal "Order/"
	orderNumberRE = regexp.MustCompile(`Order/(\d+)`)
)

// Normalize strips a trailing "?..." query suffix and surrounding whitespace
// from an identifier.
func Normalize(id string) string {
	id, _, _ = strings.Cut(id, "?")
	return strings.TrimSpace(id)
}

// Find locates the order the identifier refers to, trying strategies strictly
// in order with first match winning:
//
//  1. exact or normalized byte-for-byte ID comparison
//  2. trailing numeric run of the ID compared as strings
//  3. "Order/<digits>" parsed as an integer against the order number
//
// Returns nil when nothing matches; not finding an order is an expected
// outcome, not an error.
func Find(identifier string, candidates []Candidate) *Match {
	normalized := Normalize(identifier)

	// Strategy 1: exact match on raw or normalized input.
	for i, c := range candidates {
		if c.ID == identifier || c.ID == normalized {
			return &Match{Index: i, Strategy: 1}
		}
	}

	// Strategy 2: compare trailing digit runs, with query suffixes stripped
	// from both sides first. Candidate IDs can carry their own suffix
	// (e.g. "?key=").
	if want := trailingDigits(identifier); want != "" {
		var hits []int
		for i, c := range candidates {
			if trailingDigits(c.ID) == want {
				hits = append(hits, i)
			}
		}
		if len(hits) > 0 {
			return &Match{Index: hits[0], Strategy: 2, Ambiguous: len(hits) > 1}
		}
	}

	// Strategy 3: bare order number after "Order/".
	if m := orderNumberRE.FindStringSubmatch(normalized); m != nil {
		number, err := strconv.Atoi(m[1])
		if err == nil {
			var hits []int
			for i, c := range candidates {
				if c.OrderNumber == number {
					hits = append(hits, i)
				}
			}
			if len(hits) > 0 {
				return &Match{Index: hits[0], Strategy: 3, Ambiguous: len(hits) > 1}
			}
		}
	}

	return nil
}

func trailingDigits(id string) string {
	if m := trailingDigitsRE.FindStringSubmatch(Normalize(id)); m != nil {
		return m[1]
	}
	return ""
}
