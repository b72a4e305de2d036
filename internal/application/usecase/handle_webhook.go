package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/adamj-ops/everyday-lending/internal/application/dto"
	"github.com/adamj-ops/everyday-lending/internal/domain/model"
	"github.com/adamj-ops/everyday-lending/internal/domain/port"
)

// Webhook event types the handler acts on. Anything else is acknowledged
// and ignored so the processor does not keep redelivering.
const (
	webhookPaymentSucceeded = "payment_intent.succeeded"
	webhookPaymentFailed    = "payment_intent.payment_failed"
)

// HandleStripeWebhookUseCase verifies and applies card processor
// notifications to pending payments.
type HandleStripeWebhookUseCase struct {
	paymentRepo   port.PaymentRepository
	cardProcessor port.CardProcessor
	publisher     port.EventPublisher
	logger        *slog.Logger
}

// NewHandleStripeWebhookUseCase wires dependencies.
func NewHandleStripeWebhookUseCase(
	paymentRepo port.PaymentRepository,
	cardProcessor port.CardProcessor,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *HandleStripeWebhookUseCase {
	return &HandleStripeWebhookUseCase{
		paymentRepo:   paymentRepo,
		cardProcessor: cardProcessor,
		publisher:     publisher,
		logger:        logger,
	}
}

// stripeEnvelope is the subset of the processor's webhook payload the
// handler reads.
type stripeEnvelope struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID        string `json:"id"`
			LastError struct {
				Message string `json:"message"`
			} `json:"last_payment_error"`
		} `json:"object"`
	} `json:"data"`
}

// Execute verifies the signature, decodes the event, and transitions the
// referenced payment. Unrecognised event types and events for unknown
// payments are acknowledged without action.
func (uc *HandleStripeWebhookUseCase) Execute(
	ctx context.Context,
	req dto.WebhookRequest,
) (dto.WebhookResponse, error) {
	// 1. Verify before parsing. An unverified payload is untrusted input
	// and must not reach the decoder.
	if err := uc.cardProcessor.VerifyWebhookSignature(req.Payload, req.Signature); err != nil {
		uc.logger.Warn("webhook signature rejected", "error", err)
		return dto.WebhookResponse{}, fmt.Errorf("%w: %w", ErrWebhookVerification, err)
	}

	// 2. Decode.
	var envelope stripeEnvelope
	if err := json.Unmarshal(req.Payload, &envelope); err != nil {
		return dto.WebhookResponse{}, fmt.Errorf("decode webhook payload: %w", err)
	}

	evt := port.WebhookEvent{
		ID:            envelope.ID,
		Type:          envelope.Type,
		RailReference: envelope.Data.Object.ID,
		FailureReason: envelope.Data.Object.LastError.Message,
	}

	switch evt.Type {
	case webhookPaymentSucceeded, webhookPaymentFailed:
	default:
		uc.logger.Debug("ignoring webhook event", "event_id", evt.ID, "type", evt.Type)
		return dto.WebhookResponse{Handled: false}, nil
	}

	// 3. Look the payment up by the processor's reference.
	payment, err := uc.paymentRepo.FindByRailReference(ctx, evt.RailReference)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			uc.logger.Warn("webhook for unknown payment",
				"event_id", evt.ID, "rail_reference", evt.RailReference)
			return dto.WebhookResponse{Handled: false}, nil
		}
		return dto.WebhookResponse{}, fmt.Errorf("find payment by rail reference: %w", err)
	}

	// 4. Transition. Redelivered events hit an already-transitioned
	// payment; that is acknowledged, not an error.
	now := time.Now().UTC()
	var updated model.Payment
	switch evt.Type {
	case webhookPaymentSucceeded:
		updated, err = payment.Confirm(now)
	case webhookPaymentFailed:
		updated, err = payment.MarkFailed(evt.FailureReason, now)
	}
	if err != nil {
		uc.logger.Info("webhook redelivery for settled payment",
			"event_id", evt.ID, "payment_id", payment.ID(), "status", payment.Status().String())
		return dto.WebhookResponse{
			PaymentID: payment.ID(),
			Status:    payment.Status().String(),
			Handled:   false,
		}, nil
	}

	if err := uc.paymentRepo.Save(ctx, updated); err != nil {
		return dto.WebhookResponse{}, fmt.Errorf("save payment: %w", err)
	}

	if err := uc.publisher.Publish(ctx, updated.DomainEvents()...); err != nil {
		uc.logger.Error("publish webhook events", "payment_id", updated.ID(), "error", err)
	}

	uc.logger.Info("webhook applied",
		"event_id", evt.ID,
		"payment_id", updated.ID(),
		"status", updated.Status().String(),
	)

	return dto.WebhookResponse{
		PaymentID: updated.ID(),
		Status:    updated.Status().String(),
		Handled:   true,
	}, nil
}
