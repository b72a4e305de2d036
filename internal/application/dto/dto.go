package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// ProcessPaymentRequest carries the data for collecting a single payment.
type ProcessPaymentRequest struct {
	LoanID string          `json:"loan_id"`
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"` // CARD or ACH_DEBIT

	// CustomerRef identifies the payer at the card processor; AccountRef
	// identifies the linked bank account for ACH debits. Exactly one is
	// used depending on Method.
	CustomerRef string `json:"customer_ref,omitempty"`
	AccountRef  string `json:"account_ref,omitempty"`

	// DaysLate, when set, assesses a late fee for this payment before
	// allocation. Nil means the payment is on time.
	DaysLate *int `json:"days_late,omitempty"`

	Notes string `json:"notes,omitempty"`

	// LenderID tags the payment as one lender's share of a split. Left
	// empty for whole-loan payments.
	LenderID string `json:"lender_id,omitempty"`

	// IdempotencyKey, when set, must be a UUID and becomes the payment ID
	// and the rail idempotency key. A caller retrying after a crash sends
	// the same key and gets the recorded payment back instead of a second
	// charge. Empty means a fresh key is generated.
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// ProcessSplitPaymentRequest carries the data for a payment collected on
// behalf of all participating lenders.
type ProcessSplitPaymentRequest struct {
	LoanID      string          `json:"loan_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	CustomerRef string          `json:"customer_ref,omitempty"`
	AccountRef  string          `json:"account_ref,omitempty"`
	DaysLate    *int            `json:"days_late,omitempty"`
	Notes       string          `json:"notes,omitempty"`

	// IdempotencyKey, when set, must be a UUID; each lender share derives
	// a deterministic per-share key from it, so retrying the whole split
	// replays already-collected shares instead of re-charging them.
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// WebhookRequest carries a raw processor notification plus its signature
// header, exactly as received.
type WebhookRequest struct {
	Payload   []byte `json:"payload"`
	Signature string `json:"signature"`
}

// GetPaymentRequest identifies a payment to retrieve.
type GetPaymentRequest struct {
	PaymentID string `json:"payment_id"`
}

// ListPaymentsRequest identifies a loan whose payment history to retrieve.
type ListPaymentsRequest struct {
	LoanID string `json:"loan_id"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// AllocationResponse is the external representation of a payment's waterfall
// breakdown.
type AllocationResponse struct {
	Interest    decimal.Decimal `json:"interest"`
	Fees        decimal.Decimal `json:"fees"`
	LateFees    decimal.Decimal `json:"late_fees"`
	Principal   decimal.Decimal `json:"principal"`
	Overpayment decimal.Decimal `json:"overpayment"`
}

// PaymentResponse is the external representation of a payment record.
type PaymentResponse struct {
	ID            string             `json:"id"`
	LoanID        string             `json:"loan_id"`
	LenderID      string             `json:"lender_id,omitempty"`
	Amount        decimal.Decimal    `json:"amount"`
	Method        string             `json:"method"`
	Status        string             `json:"status"`
	Allocation    AllocationResponse `json:"allocation"`
	RailReference string             `json:"rail_reference"`
	FailureReason string             `json:"failure_reason,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// SplitPaymentResponse reports the per-lender payments created for one
// collected amount.
type SplitPaymentResponse struct {
	LoanID   string            `json:"loan_id"`
	Total    decimal.Decimal   `json:"total"`
	Payments []PaymentResponse `json:"payments"`
}

// WebhookResponse reports the outcome of handling a processor notification.
type WebhookResponse struct {
	PaymentID string `json:"payment_id,omitempty"`
	Status    string `json:"status,omitempty"`
	Handled   bool   `json:"handled"`
}

// PaymentListResponse is a page of a loan's payment history, newest first.
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
}
