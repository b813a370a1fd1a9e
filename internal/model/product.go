// Package model defines the flat view models exposed by the storefront API
// and shared error/money helpers. The Storefront GraphQL edge/node shapes are
// flattened into these types at a single boundary (internal/shopify/transform.go)
// so malformed upstream responses fail there instead of deep in rendering.
package model

// SelectedOption is a variant option pair, e.g. {"Size", "XL"}.
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Variant is a purchasable product variant.
type Variant struct {
	ID                string           `json:"id"`
	Title             string           `json:"title"`
	SKU               string           `json:"sku,omitempty"`
	Price             string           `json:"price"`          // formatted, e.g. "$19.99"
	PriceMinor        int64            `json:"priceMinor"`     // minor units
	Currency          string           `json:"currencyCode"`   // ISO-4217
	CompareAtPrice    string           `json:"compareAtPrice,omitempty"`
	AvailableForSale  bool             `json:"availableForSale"`
	QuantityAvailable *int             `json:"quantityAvailable,omitempty"`
	SelectedOptions   []SelectedOption `json:"selectedOptions,omitempty"`
	ImageURL          string           `json:"image,omitempty"`
	Weight            float64          `json:"weight,omitempty"`
	WeightUnit        string           `json:"weightUnit,omitempty"`
}

// Product is the flattened catalog entry.
type Product struct {
	ID              string    `json:"id"` // upstream global ID
	NumericID       int       `json:"numericId"` // 1-based listing position, kept for URL compat
	Handle          string    `json:"handle"`
	Name            string    `json:"name"`
	Price           string    `json:"price"` // formatted minimum variant price
	PriceMinor      int64     `json:"priceMinor"`
	Currency        string    `json:"currencyCode"`
	Description     string    `json:"description"`
	LongDescription string    `json:"longDescription,omitempty"`
	Image           string    `json:"image,omitempty"`
	Images          []string  `json:"images,omitempty"`
	InStock         bool      `json:"inStock"`
	Variants        []Variant `json:"variants,omitempty"`
}

// Shop is the store metadata shown in the page chrome.
type Shop struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo,omitempty"`
}

// Price is a raw upstream money value passed through to clients.
type Price struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// Checkout is the hand-off returned by cart creation: the browser redirects
// to WebURL, where the upstream platform owns payment and fulfillment.
type Checkout struct {
	ID         string `json:"id"`
	WebURL     string `json:"webUrl"`
	TotalPrice Price  `json:"totalPrice"`
}
