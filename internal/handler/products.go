package handler

import (
	"net/http"
	"strconv"

	"storefront-api/internal/model"
)

// handleProducts returns the catalog page. ?first= bounds the page size;
// the upstream client applies its default when absent.
func (h *Handler) handleProducts(w http.ResponseWriter, r *http.Request) {
	first := 0
	if raw := r.URL.Query().Get("first"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.writeError(w, model.NewValidationError("first", "must be a positive integer"))
			return
		}
		first = n
	}

	products, err := h.api.Products(r.Context(), first)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if products == nil {
		products = []model.Product{}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

// handleProduct returns a single product by its URL handle.
func (h *Handler) handleProduct(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")

	product, err := h.api.ProductByHandle(r.Context(), handle)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if product == nil {
		h.writeError(w, model.NewNotFoundError("product"))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"product": product})
}
