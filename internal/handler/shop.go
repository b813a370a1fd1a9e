package handler

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"storefront-api/internal/model"
)

// handleShop returns store metadata for the page chrome. An upstream failure
// falls back to the configured name and logo so the page still renders.
func (h *Handler) handleShop(w http.ResponseWriter, r *http.Request) {
	shop, err := h.api.Shop(r.Context())
	if err != nil || shop == nil {
		if err != nil {
			h.logger.Warn("shop query failed, serving configured fallback",
				slog.String("error", err.Error()))
		}
		h.writeJSON(w, http.StatusOK, h.fallbackShop)
		return
	}

	// Logo comes from config, not the upstream.
	shop.LogoURL = h.fallbackShop.LogoURL
	h.writeJSON(w, http.StatusOK, shop)
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// handleContact validates and records a contact-form submission.
//
// TODO: wire submissions to an email provider or CRM. Until then they are
// logged so they are visible during development.
func (h *Handler) handleContact(w http.ResponseWriter, r *http.Request) {
	var in contactRequest
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, err)
		return
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)

	if in.Name == "" || in.Email == "" || in.Subject == "" || in.Message == "" {
		h.writeError(w, model.NewValidationError("body", "missing required fields"))
		return
	}
	if !emailRE.MatchString(in.Email) {
		h.writeError(w, model.NewValidationError("email", "invalid email"))
		return
	}

	h.logger.Info("contact form submission",
		slog.String("name", in.Name),
		slog.String("email", in.Email),
		slog.String("subject", in.Subject),
		slog.String("message", in.Message),
		slog.Time("received_at", time.Now().UTC()),
	)

	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
