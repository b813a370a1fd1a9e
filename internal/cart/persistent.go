package cart

import (
	"encoding/json"
	"fmt"

	"storefront-api/internal/kv"
	"storefront-api/internal/model"
	"storefront-api/internal/storefront"
)

// storageKey is the kv key the cart persists under, one cart per store.
const storageKey = "cart"

// Persistent wraps a Cart with write-through persistence to a kv.Store.
// Every mutation saves the full line list; save failures are returned to the
// caller rather than swallowed, so the UI can tell the shopper their cart
// did not stick.
type Persistent struct {
	cart  *Cart
	store kv.Store
}

// Open loads any previously saved cart from the store. A missing key yields
// an empty cart; a corrupt value is an error so bugs are not papered over
// by silently dropping the shopper's cart.
func Open(store kv.Store) (*Persistent, error) {
	p := &Persistent{cart: New(), store: store}
	data, ok, err := store.Get(storageKey)
	if err != nil {
		return nil, fmt.Errorf("cart: loading saved cart: %w", err)
	}
	if ok {
		var lines []Line
		if err := json.Unmarshal(data, &lines); err != nil {
			return nil, fmt.Errorf("cart: decoding saved cart: %w", err)
		}
		p.cart.lines = lines
	}
	return p, nil
}

// AddLine merges qty of the variant into the cart and persists.
func (p *Persistent) AddLine(v model.Variant, qty int) error {
	p.cart.AddLine(v, qty)
	return p.save()
}

// RemoveLine deletes the matching line and persists.
func (p *Persistent) RemoveLine(variantID string) error {
	p.cart.RemoveLine(variantID)
	return p.save()
}

// SetQuantity updates the matching line and persists.
func (p *Persistent) SetQuantity(variantID string, qty int) error {
	p.cart.SetQuantity(variantID, qty)
	return p.save()
}

// Clear empties the cart and removes the persisted value.
func (p *Persistent) Clear() error {
	p.cart.Clear()
	if err := p.store.Delete(storageKey); err != nil {
		return fmt.Errorf("cart: clearing saved cart: %w", err)
	}
	return nil
}

// Lines returns a copy of the cart contents.
func (p *Persistent) Lines() []Line { return p.cart.Lines() }

// CheckoutLines serializes the cart for checkout creation.
func (p *Persistent) CheckoutLines() []storefront.CartLine { return p.cart.CheckoutLines() }

// Len returns the number of distinct lines.
func (p *Persistent) Len() int { return p.cart.Len() }

// TotalItems sums quantities over all lines.
func (p *Persistent) TotalItems() int { return p.cart.TotalItems() }

// TotalPrice formats the running total in the first line's currency.
func (p *Persistent) TotalPrice() string { return p.cart.TotalPrice() }

func (p *Persistent) save() error {
	data, err := json.Marshal(p.cart.lines)
	if err != nil {
		return fmt.Errorf("cart: encoding cart: %w", err)
	}
	if err := p.store.Set(storageKey, data); err != nil {
		return fmt.Errorf("cart: saving cart: %w", err)
	}
	return nil
}
