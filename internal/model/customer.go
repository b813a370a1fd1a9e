package model

import "time"

// Customer is the flattened customer summary returned by auth endpoints.
type Customer struct {
	ID               string `json:"id"`
	FirstName        string `json:"firstName,omitempty"`
	LastName         string `json:"lastName,omitempty"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	AcceptsMarketing bool   `json:"acceptsMarketing,omitempty"`
}

// AccessToken is a customer-scoped bearer credential issued by the upstream
// platform at login. The token value is opaque and must never be logged.
type AccessToken struct {
	Token     string    `json:"accessToken"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Address is a customer mailing address.
type Address struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2,omitempty"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	Phone     string `json:"phone,omitempty"`
	IsDefault bool   `json:"isDefault,omitempty"`
}
