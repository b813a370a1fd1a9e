package handler

import (
	"net/http"

	"storefront-api/internal/model"
	"storefront-api/internal/storefront"
)

// customerSummary is the customer shape auth endpoints return. Marketing
// consent stays server-side.
type customerSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

func summarize(c *model.Customer) customerSummary {
	return customerSummary{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}

// handleRegister creates a customer account.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in storefront.CustomerInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, err)
		return
	}

	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" {
		h.writeError(w, model.NewValidationError("body", "missing required fields"))
		return
	}
	if len(in.Password) < 8 {
		h.writeError(w, model.NewValidationError("password", "must be at least 8 characters"))
		return
	}

	customer, err := h.api.CreateCustomer(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"customer": summarize(customer),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleLogin exchanges credentials for a customer access token and returns
// it with the customer summary. The token travels only in the response body,
// never in logs.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, err)
		return
	}
	if in.Email == "" || in.Password == "" {
		h.writeError(w, model.NewValidationError("body", "email and password are required"))
		return
	}

	token, err := h.api.CreateAccessToken(r.Context(), in.Email, in.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	customer, err := h.api.Customer(r.Context(), token.Token)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if customer == nil {
		h.writeError(w, model.NewInternalError(nil))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"accessToken": token.Token,
		"expiresAt":   token.ExpiresAt,
		"customer":    summarize(customer),
	})
}

type logoutRequest struct {
	AccessToken string `json:"accessToken"`
}

// handleLogout revokes the access token upstream.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	var in logoutRequest
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, err)
		return
	}
	if in.AccessToken == "" {
		h.writeError(w, model.NewValidationError("accessToken", "required"))
		return
	}

	if err := h.api.DeleteAccessToken(r.Context(), in.AccessToken); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logged out successfully",
	})
}

// handleMe returns the customer the access token belongs to.
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	token, err := accessToken(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	customer, err := h.api.Customer(r.Context(), token)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if customer == nil {
		h.writeError(w, model.NewUnauthorizedError("Invalid or expired access token"))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"customer": summarize(customer),
	})
}
