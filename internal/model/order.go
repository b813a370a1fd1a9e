package model

import "time"

// OrderLineItem is a single purchased line within an order.
// Price is the original total for the line, not the unit price.
type OrderLineItem struct {
	Title        string `json:"title"`
	Quantity     int    `json:"quantity"`
	Price        string `json:"price"`
	Currency     string `json:"currencyCode"`
	ImageURL     string `json:"image,omitempty"`
	VariantTitle string `json:"variantTitle,omitempty"`
}

// Order is the flat summary used by the order list.
// ID is the upstream global order ID; OrderNumber is the sequential,
// customer-facing number the platform assigns.
type Order struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	OrderNumber       int             `json:"orderNumber"`
	CreatedAt         time.Time       `json:"createdAt"` // mapped from processedAt
	TotalPrice        string          `json:"totalPrice"`
	Currency          string          `json:"currencyCode"`
	FulfillmentStatus string          `json:"fulfillmentStatus"`
	FinancialStatus   string          `json:"financialStatus"`
	LineItems         []OrderLineItem `json:"lineItems"`
}

// OrderDetail extends Order with the fields shown on the order page.
type OrderDetail struct {
	Order
	SubtotalPrice      string   `json:"subtotalPrice"`
	TotalTax           string   `json:"totalTax"`
	TotalShippingPrice string   `json:"totalShippingPrice"`
	ShippingAddress    *Address `json:"shippingAddress,omitempty"`
	BillingAddress     *Address `json:"billingAddress,omitempty"`
}
