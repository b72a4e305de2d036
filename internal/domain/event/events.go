package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/adamj-ops/everyday-lending/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Payment events
// ---------------------------------------------------------------------------

// PaymentProcessed is raised when a payment has been collected on a rail and
// allocated against a loan.
type PaymentProcessed struct {
	events.BaseEvent
	LoanID        string          `json:"loan_id"`
	LenderID      string          `json:"lender_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Interest      decimal.Decimal `json:"interest"`
	Fees          decimal.Decimal `json:"fees"`
	LateFees      decimal.Decimal `json:"late_fees"`
	Principal     decimal.Decimal `json:"principal"`
	Overpayment   decimal.Decimal `json:"overpayment"`
	RailReference string          `json:"rail_reference"`
	Method        string          `json:"method"`
}

func NewPaymentProcessed(
	paymentID, loanID, lenderID string,
	amount, interest, fees, lateFees, principal, overpayment decimal.Decimal,
	railReference, method string,
) PaymentProcessed {
	return PaymentProcessed{
		BaseEvent:     events.NewBaseEvent("lending.payment.processed", paymentID, "Payment"),
		LoanID:        loanID,
		LenderID:      lenderID,
		Amount:        amount,
		Interest:      interest,
		Fees:          fees,
		LateFees:      lateFees,
		Principal:     principal,
		Overpayment:   overpayment,
		RailReference: railReference,
		Method:        method,
	}
}

// PaymentConfirmed is raised when the rail's webhook confirms settlement.
type PaymentConfirmed struct {
	events.BaseEvent
	LoanID        string    `json:"loan_id"`
	RailReference string    `json:"rail_reference"`
	ConfirmedAt   time.Time `json:"confirmed_at"`
}

func NewPaymentConfirmed(paymentID, loanID, railReference string, confirmedAt time.Time) PaymentConfirmed {
	return PaymentConfirmed{
		BaseEvent:     events.NewBaseEvent("lending.payment.confirmed", paymentID, "Payment"),
		LoanID:        loanID,
		RailReference: railReference,
		ConfirmedAt:   confirmedAt,
	}
}

// PaymentFailed is raised when the rail reports the payment could not settle.
type PaymentFailed struct {
	events.BaseEvent
	LoanID        string `json:"loan_id"`
	RailReference string `json:"rail_reference"`
	Reason        string `json:"reason"`
}

func NewPaymentFailed(paymentID, loanID, railReference, reason string) PaymentFailed {
	return PaymentFailed{
		BaseEvent:     events.NewBaseEvent("lending.payment.failed", paymentID, "Payment"),
		LoanID:        loanID,
		RailReference: railReference,
		Reason:        reason,
	}
}

// SplitPaymentProcessed is raised once per split payment, after every
// participation share has been collected and allocated.
type SplitPaymentProcessed struct {
	events.BaseEvent
	LoanID       string          `json:"loan_id"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaymentIDs   []string        `json:"payment_ids"`
	LenderCount  int             `json:"lender_count"`
}

func NewSplitPaymentProcessed(loanID string, totalAmount decimal.Decimal, paymentIDs []string) SplitPaymentProcessed {
	return SplitPaymentProcessed{
		BaseEvent:   events.NewBaseEvent("lending.payment.split_processed", loanID, "Loan"),
		LoanID:      loanID,
		TotalAmount: totalAmount,
		PaymentIDs:  paymentIDs,
		LenderCount: len(paymentIDs),
	}
}
