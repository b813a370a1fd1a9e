package handler

import (
	"net/http"

	"storefront-api/internal/model"
	"storefront-api/internal/storefront"
)

// handleCreateCheckout creates an upstream cart and returns the hosted
// checkout URL. The facade never touches payment; the browser redirects to
// webUrl and the platform owns the rest.
func (h *Handler) handleCreateCheckout(w http.ResponseWriter, r *http.Request) {
	var req storefront.CreateCartRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	if len(req.Lines) == 0 {
		h.writeError(w, model.NewValidationError("lineItems",
			"cart is empty, please add items to your cart"))
		return
	}
	for _, line := range req.Lines {
		if line.VariantID == "" || line.Quantity == 0 {
			h.writeError(w, model.NewValidationError("lineItems",
				"each item must have variantId and quantity"))
			return
		}
	}

	applyCheckoutDefaults(&req)

	checkout, err := h.api.CreateCart(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"checkout": checkout,
	})
}

// applyCheckoutDefaults fills buyer-info defaults shared by the REST and MCP
// checkout paths. Buyers without a stated country default to US, matching the
// store's checkout locale.
func applyCheckoutDefaults(req *storefront.CreateCartRequest) {
	if req.Customer != nil && req.Customer.Country == "" {
		req.Customer.Country = "US"
	}
}
