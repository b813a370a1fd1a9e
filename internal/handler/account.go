package handler

import (
	"net/http"
	"net/url"
	"strings"

	"storefront-api/internal/model"
	"storefront-api/internal/storefront"
)

// orderListPageSize is how many orders the list endpoint returns.
const orderListPageSize = 50

// handleListAddresses returns the customer's address book.
func (h *Handler) handleListAddresses(w http.ResponseWriter, r *http.Request) {
	token, err := accessToken(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	addresses, err := h.api.Addresses(r.Context(), token)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if addresses == nil {
		addresses = []model.Address{}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"addresses": addresses,
	})
}

// handleCreateAddress adds an address to the customer's address book.
func (h *Handler) handleCreateAddress(w http.ResponseWriter, r *http.Request) {
	token, err := accessToken(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var in storefront.AddressInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, err)
		return
	}

	address, err := h.api.CreateAddress(r.Context(), token, in)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"address": address,
	})
}

// updateAddressRequest is the PUT payload: the address ID rides in the body
// alongside the replacement fields.
type updateAddressRequest struct {
	ID string `json:"id"`
	storefront.AddressInput
}

// handleUpdateAddress replaces an existing address.
func (h *Handler) handleUpdateAddress(w http.ResponseWriter, r *http.Request) {
	token, err := accessToken(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var in updateAddressRequest
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, err)
		return
	}
	if in.ID == "" {
		h.writeError(w, model.NewValidationError("id", "address ID is required"))
		return
	}

	address, err := h.api.UpdateAddress(r.Context(), token, in.ID, in.AddressInput)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"address": address,
	})
}

// handleDeleteAddress removes an address. The ID comes from the ?id= query
// parameter since address IDs are upstream global IDs with slashes in them.
func (h *Handler) handleDeleteAddress(w http.ResponseWriter, r *http.Request) {
	token, err := accessToken(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		h.writeError(w, model.NewValidationError("id", "address ID is required"))
		return
	}

	if err := h.api.DeleteAddress(r.Context(), token, id); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Address deleted successfully",
	})
}

// handleListOrders returns the customer's order history.
func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	token, err := accessToken(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	orders, err := h.api.Orders(r.Context(), token, orderListPageSize)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// handleGetOrder returns a single order. The path identifier may be a full
// upstream global ID (URL-encoded), one with a tracking query suffix, or a
// bare numeric form; resolution is delegated to the upstream client.
func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	token, err := accessToken(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	id := r.PathValue("id")
	if decoded, err := url.PathUnescape(id); err == nil {
		id = decoded
	}
	// Strip any tracking query suffix before lookup.
	id, _, _ = strings.Cut(id, "?")
	if id == "" {
		h.writeError(w, model.NewValidationError("id", "order ID is required"))
		return
	}

	order, err := h.api.Order(r.Context(), token, id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if order == nil {
		h.writeError(w, model.NewNotFoundError("order"))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"order": order})
}
