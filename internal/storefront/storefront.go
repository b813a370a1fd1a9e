// Package storefront defines the interface between the HTTP/MCP handlers and
// the upstream commerce platform client, plus the request types they share.
// Handlers depend on this interface so they can be tested with a mock.
package storefront

import (
	"context"

	"storefront-api/internal/model"
)

// API is the set of upstream operations the facade exposes. Customer-scoped
// operations take the shopper's access token; implementations forward it
// unchanged and never log it.
type API interface {
	// Catalog
	Products(ctx context.Context, first int) ([]model.Product, error)
	ProductByHandle(ctx context.Context, handle string) (*model.Product, error)

	// Store metadata
	Shop(ctx context.Context) (*model.Shop, error)

	// Customer auth
	CreateCustomer(ctx context.Context, in CustomerInput) (*model.Customer, error)
	CreateAccessToken(ctx context.Context, email, password string) (*model.AccessToken, error)
	DeleteAccessToken(ctx context.Context, token string) error
	Customer(ctx context.Context, token string) (*model.Customer, error)

	// Account
	Addresses(ctx context.Context, token string) ([]model.Address, error)
	CreateAddress(ctx context.Context, token string, in AddressInput) (*model.Address, error)
	UpdateAddress(ctx context.Context, token, id string, in AddressInput) (*model.Address, error)
	DeleteAddress(ctx context.Context, token, id string) error
	Orders(ctx context.Context, token string, first int) ([]model.Order, error)
	// Order reconciles the identifier against a page of the customer's orders.
	// A nil result with nil error means no order matched.
	Order(ctx context.Context, token, id string) (*model.OrderDetail, error)

	// Checkout hand-off
	CreateCart(ctx context.Context, req *CreateCartRequest) (*model.Checkout, error)
}

// CustomerInput is the registration payload.
type CustomerInput struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	Phone            string `json:"phone,omitempty"`
	AcceptsMarketing bool   `json:"acceptsMarketing,omitempty"`
}

// AddressInput is the address create/update payload.
type AddressInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2,omitempty"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	Phone     string `json:"phone,omitempty"`
}

// CartLine is one variant+quantity pair in a checkout-creation request.
type CartLine struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

// CustomerInfo carries optional buyer identity and shipping fields attached
// to the created cart so the hosted checkout can prefill them.
type CustomerInfo struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Address1  string `json:"address1,omitempty"`
	Address2  string `json:"address2,omitempty"`
	City      string `json:"city,omitempty"`
	Province  string `json:"province,omitempty"`
	Zip       string `json:"zip,omitempty"`
	Country   string `json:"country,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// CreateCartRequest is the checkout hand-off payload.
type CreateCartRequest struct {
	Lines    []CartLine    `json:"lineItems"`
	Customer *CustomerInfo `json:"customerInfo,omitempty"`
}
