// Package cart holds the client-side representation of what the shopper
// intends to buy. The cart is independent of the upstream platform until
// checkout, when its lines are serialized into the checkout-creation request.
package cart

import (
	"storefront-api/internal/model"
	"storefront-api/internal/storefront"
)

// MaxQuantity is the per-line quantity ceiling enforced on every mutation.
const MaxQuantity = 99

// Attribute is an ordered (name, value) pair describing a variant option.
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Line is one variant in the cart. At most one Line exists per VariantID;
// adding the same variant again increments Quantity instead of duplicating.
type Line struct {
	VariantID      string      `json:"variantId"`
	Title          string      `json:"title,omitempty"`
	UnitPriceMinor int64       `json:"unitPriceMinor"`
	Currency       string      `json:"currencyCode"`
	Attributes     []Attribute `json:"attributes,omitempty"`
	Quantity       int         `json:"quantity"`
}

// Cart is an ordered sequence of lines (insertion order). The zero value is
// an empty, usable cart. Mutations are pure in-memory structural edits and
// cannot fail; durable persistence is layered on by Persistent.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddLine merges qty of the given variant into the cart. An existing line
// with the same variant ID has its quantity incremented; otherwise a new line
// is appended. Quantities below 1 count as 1 and the merged quantity is
// capped at MaxQuantity.
func (c *Cart) AddLine(v model.Variant, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.lines {
		if c.lines[i].VariantID == v.ID {
			c.lines[i].Quantity = clampQuantity(c.lines[i].Quantity + qty)
			return
		}
	}
	attrs := make([]Attribute, 0, len(v.SelectedOptions))
	for _, opt := range v.SelectedOptions {
		attrs = append(attrs, Attribute{Name: opt.Name, Value: opt.Value})
	}
	c.lines = append(c.lines, Line{
		VariantID:      v.ID,
		Title:          v.Title,
		UnitPriceMinor: v.PriceMinor,
		Currency:       v.Currency,
		Attributes:     attrs,
		Quantity:       clampQuantity(qty),
	})
}

// RemoveLine deletes the line with the given variant ID. No-op if absent.
func (c *Cart) RemoveLine(variantID string) {
	for i := range c.lines {
		if c.lines[i].VariantID == variantID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces the quantity of the matching line, capped at
// MaxQuantity. A quantity of zero or below removes the line. No-op if the
// variant is not in the cart.
func (c *Cart) SetQuantity(variantID string, qty int) {
	if qty <= 0 {
		c.RemoveLine(variantID)
		return
	}
	for i := range c.lines {
		if c.lines[i].VariantID == variantID {
			c.lines[i].Quantity = clampQuantity(qty)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// CheckoutLines serializes the cart into the line-item shape the
// checkout-creation endpoint accepts.
func (c *Cart) CheckoutLines() []storefront.CartLine {
	out := make([]storefront.CartLine, len(c.lines))
	for i, l := range c.lines {
		out[i] = storefront.CartLine{VariantID: l.VariantID, Quantity: l.Quantity}
	}
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// TotalItems sums quantities over all lines.
func (c *Cart) TotalItems() int {
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice sums unit price times quantity over all lines and formats the
// result in the currency of the first line. Mixed-currency carts are not
// reconciled: later lines are summed as if they were in the first line's
// currency. An empty cart formats as zero in the default currency.
func (c *Cart) TotalPrice() string {
	if len(c.lines) == 0 {
		return model.FormatMinor(0, model.DefaultCurrency)
	}
	var total int64
	for _, l := range c.lines {
		total += l.UnitPriceMinor * int64(l.Quantity)
	}
	return model.FormatMinor(total, c.lines[0].Currency)
}

func clampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}
