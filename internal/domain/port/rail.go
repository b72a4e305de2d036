package port

import (
	"context"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Payment rail ports
// ---------------------------------------------------------------------------

// CardCharge is the result of creating a card charge with the processor.
type CardCharge struct {
	Reference    string // processor's payment intent ID
	ClientSecret string // handed to the client to complete 3DS if needed
	Status       string
}

// CardProcessor charges cards through the external card processor.
type CardProcessor interface {
	// CreatePaymentIntent creates a charge for amount against the stored
	// payment method. idempotencyKey deduplicates retried calls on the
	// processor side.
	CreatePaymentIntent(ctx context.Context, amount decimal.Decimal, currency, customerRef, idempotencyKey string) (CardCharge, error)

	// VerifyWebhookSignature checks the processor's signature header
	// against the raw webhook payload.
	VerifyWebhookSignature(payload []byte, signatureHeader string) error
}

// ACHTransfer is the result of initiating an ACH debit.
type ACHTransfer struct {
	Reference string // transfer ID at the ACH originator
	Status    string
}

// ACHClient originates ACH debits against linked bank accounts.
type ACHClient interface {
	CreateTransfer(ctx context.Context, amount decimal.Decimal, accountRef, idempotencyKey string) (ACHTransfer, error)
}

// BankVerifier checks linked bank accounts before originating debits.
type BankVerifier interface {
	VerifyAccount(ctx context.Context, accountRef string) (bool, error)
	GetAccountBalance(ctx context.Context, accountRef string) (decimal.Decimal, error)
}

// ---------------------------------------------------------------------------
// Webhook events
// ---------------------------------------------------------------------------

// WebhookEvent is a verified, decoded notification from the card processor.
type WebhookEvent struct {
	ID            string
	Type          string // e.g. payment_intent.succeeded
	RailReference string // the payment intent the event refers to
	FailureReason string // set for failure events
}
