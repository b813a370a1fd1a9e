// Package handler provides the REST facade over the upstream storefront.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"storefront-api/internal/model"
	"storefront-api/internal/storefront"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	api    storefront.API
	logger *slog.Logger

	// fallbackShop is served when the upstream shop query fails, so the page
	// chrome still renders. Populated from config.
	fallbackShop model.Shop
}

// New creates a Handler backed by the given upstream API.
func New(api storefront.API, logger *slog.Logger, fallbackShop model.Shop) *Handler {
	return &Handler{
		api:          api,
		logger:       logger,
		fallbackShop: fallbackShop,
	}
}

// RegisterRoutes registers all HTTP routes with the given ServeMux.
// Uses Go 1.22+ method routing patterns.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Catalog
	mux.HandleFunc("GET /products", h.handleProducts)
	mux.HandleFunc("GET /products/{handle}", h.handleProduct)

	// Customer auth
	mux.HandleFunc("POST /auth/register", h.handleRegister)
	mux.HandleFunc("POST /auth/login", h.handleLogin)
	mux.HandleFunc("POST /auth/logout", h.handleLogout)
	mux.HandleFunc("GET /auth/me", h.handleMe)

	// Account
	mux.HandleFunc("GET /account/addresses", h.handleListAddresses)
	mux.HandleFunc("POST /account/addresses", h.handleCreateAddress)
	mux.HandleFunc("PUT /account/addresses", h.handleUpdateAddress)
	mux.HandleFunc("DELETE /account/addresses", h.handleDeleteAddress)
	mux.HandleFunc("GET /account/orders", h.handleListOrders)
	mux.HandleFunc("GET /account/orders/{id}", h.handleGetOrder)

	// Checkout hand-off
	mux.HandleFunc("POST /checkout/create", h.handleCreateCheckout)

	// Store metadata and contact
	mux.HandleFunc("GET /shop", h.handleShop)
	mux.HandleFunc("POST /contact", h.handleContact)

	// MCP transport - JSON-RPC endpoint using official MCP SDK
	mux.Handle("/mcp", h.NewMCPHandler())

	// Health check
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /healthz", h.handleHealth)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// === Response Helpers ===

// writeJSON sends a JSON response with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// errorResponse is the JSON structure for error responses. The message is a
// flat string; browser clients display it directly.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError sends an error response, extracting status/message from APIError
// if present. Uses errors.As() to unwrap error chains.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError

	if !errors.As(err, &apiErr) {
		apiErr = &model.APIError{
			Code:       "INTERNAL_ERROR",
			Message:    "an internal error occurred",
			StatusCode: http.StatusInternalServerError,
		}
		h.logger.Error("internal error", slog.String("error", err.Error()))
	}

	h.writeJSON(w, apiErr.StatusCode, errorResponse{Error: apiErr.Message})
}

// MaxRequestBodySize limits JSON request bodies to 1MB to prevent DoS.
const MaxRequestBodySize = 1 << 20 // 1MB

// decodeJSON reads JSON from request body into v.
// Limits body size to MaxRequestBodySize to prevent memory exhaustion.
// Returns an APIError if decoding fails.
func decodeJSON(r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, MaxRequestBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// Don't expose internal error details to client
		return model.NewValidationError("body", "invalid JSON")
	}
	return nil
}

// accessTokenHeader carries the customer token on account-scoped requests.
// The header value must never appear in logs.
const accessTokenHeader = "X-Access-Token"

// accessToken extracts the customer token, or returns a 401 APIError when
// the header is missing.
func accessToken(r *http.Request) (string, error) {
	token := r.Header.Get(accessTokenHeader)
	if token == "" {
		return "", model.NewUnauthorizedError("Access token is required")
	}
	return token, nil
}
