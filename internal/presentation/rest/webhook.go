package rest

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/adamj-ops/everyday-lending/internal/application/dto"
	"github.com/adamj-ops/everyday-lending/internal/application/usecase"
)

// maxWebhookBody bounds the request body read to guard against oversized
// payloads. Card processor events are a few KB at most.
const maxWebhookBody = 1 << 20

// WebhookHandler receives card processor webhook deliveries over HTTP.
type WebhookHandler struct {
	handleWebhook *usecase.HandleStripeWebhookUseCase
	logger        *slog.Logger
}

// NewWebhookHandler creates a webhook HTTP handler.
func NewWebhookHandler(handleWebhook *usecase.HandleStripeWebhookUseCase, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{handleWebhook: handleWebhook, logger: logger}
}

// RegisterRoutes attaches webhook routes to the given mux.
func (h *WebhookHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /webhooks/stripe", h.handleStripe)
}

func (h *WebhookHandler) handleStripe(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		h.logger.WarnContext(r.Context(), "failed to read webhook body", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable body"})
		return
	}

	resp, err := h.handleWebhook.Execute(r.Context(), dto.WebhookRequest{
		Payload:   payload,
		Signature: r.Header.Get("Stripe-Signature"),
	})
	if err != nil {
		if errors.Is(err, usecase.ErrWebhookVerification) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "signature verification failed"})
			return
		}
		h.logger.ErrorContext(r.Context(), "webhook processing failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
