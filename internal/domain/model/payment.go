package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adamj-ops/everyday-lending/internal/domain/event"
	"github.com/adamj-ops/everyday-lending/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Payment aggregate root
// ---------------------------------------------------------------------------

// Payment is an immutable aggregate recording one collected payment and its
// allocation breakdown. Mutations return a new copy.
type Payment struct {
	id            string
	loanID        string
	lenderID      string // set for split-payment shares, empty otherwise
	amount        decimal.Decimal
	method        valueobject.PaymentMethod
	status        valueobject.PaymentStatus
	allocation    PaymentAllocation
	railReference string
	failureReason string
	notes         string
	version       int
	createdAt     time.Time
	updatedAt     time.Time
	domainEvents  []event.DomainEvent
}

// NewPayment records a freshly collected payment in PENDING status.
// The ID is generated by the caller up front so it can double as the rail
// idempotency key before the aggregate exists.
func NewPayment(
	id, loanID, lenderID string,
	amount decimal.Decimal,
	method valueobject.PaymentMethod,
	allocation PaymentAllocation,
	railReference, notes string,
	now time.Time,
) (Payment, error) {
	if id == "" {
		return Payment{}, errors.New("payment ID is required")
	}
	if loanID == "" {
		return Payment{}, errors.New("loan ID is required")
	}
	if !amount.IsPositive() {
		return Payment{}, fmt.Errorf("payment amount must be positive, got %s", amount)
	}
	if method.IsZero() {
		return Payment{}, errors.New("payment method is required")
	}
	if railReference == "" {
		return Payment{}, errors.New("rail reference is required")
	}
	if !allocation.Total().Equal(amount) {
		return Payment{}, fmt.Errorf("allocation total %s does not match payment amount %s",
			allocation.Total(), amount)
	}

	p := Payment{
		id:            id,
		loanID:        loanID,
		lenderID:      lenderID,
		amount:        amount,
		method:        method,
		status:        valueobject.PaymentStatusPending,
		allocation:    allocation,
		railReference: railReference,
		notes:         notes,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}

	p.domainEvents = append(p.domainEvents, event.NewPaymentProcessed(
		id, loanID, lenderID,
		amount, allocation.Interest, allocation.Fees, allocation.LateFees,
		allocation.Principal, allocation.Overpayment,
		railReference, method.String(),
	))

	return p, nil
}

// ReconstructPayment rebuilds a Payment aggregate from persistence.
func ReconstructPayment(
	id, loanID, lenderID string,
	amount decimal.Decimal,
	method valueobject.PaymentMethod,
	status valueobject.PaymentStatus,
	allocation PaymentAllocation,
	railReference, failureReason, notes string,
	version int,
	createdAt, updatedAt time.Time,
) Payment {
	return Payment{
		id:            id,
		loanID:        loanID,
		lenderID:      lenderID,
		amount:        amount,
		method:        method,
		status:        status,
		allocation:    allocation,
		railReference: railReference,
		failureReason: failureReason,
		notes:         notes,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// Confirm transitions PENDING -> CONFIRMED when the rail reports settlement.
func (p Payment) Confirm(now time.Time) (Payment, error) {
	if !p.status.Equal(valueobject.PaymentStatusPending) {
		return Payment{}, fmt.Errorf("can only confirm from PENDING status, current: %s: %w",
			p.status.String(), valueobject.ErrInvalidStatusTransition)
	}

	next := p
	next.status = valueobject.PaymentStatusConfirmed
	next.updatedAt = now
	next.version++
	next.domainEvents = copyEvents(p.domainEvents)
	next.domainEvents = append(next.domainEvents,
		event.NewPaymentConfirmed(p.id, p.loanID, p.railReference, now))
	return next, nil
}

// MarkFailed transitions PENDING -> FAILED, recording the rail's reason.
func (p Payment) MarkFailed(reason string, now time.Time) (Payment, error) {
	if !p.status.Equal(valueobject.PaymentStatusPending) {
		return Payment{}, fmt.Errorf("can only fail from PENDING status, current: %s: %w",
			p.status.String(), valueobject.ErrInvalidStatusTransition)
	}

	next := p
	next.status = valueobject.PaymentStatusFailed
	next.failureReason = reason
	next.updatedAt = now
	next.version++
	next.domainEvents = copyEvents(p.domainEvents)
	next.domainEvents = append(next.domainEvents,
		event.NewPaymentFailed(p.id, p.loanID, p.railReference, reason))
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (p Payment) ID() string                           { return p.id }
func (p Payment) LoanID() string                       { return p.loanID }
func (p Payment) LenderID() string                     { return p.lenderID }
func (p Payment) Amount() decimal.Decimal              { return p.amount }
func (p Payment) Method() valueobject.PaymentMethod    { return p.method }
func (p Payment) Status() valueobject.PaymentStatus    { return p.status }
func (p Payment) Allocation() PaymentAllocation        { return p.allocation }
func (p Payment) RailReference() string                { return p.railReference }
func (p Payment) FailureReason() string                { return p.failureReason }
func (p Payment) Notes() string                        { return p.notes }
func (p Payment) Version() int                         { return p.version }
func (p Payment) CreatedAt() time.Time                 { return p.createdAt }
func (p Payment) UpdatedAt() time.Time                 { return p.updatedAt }
func (p Payment) DomainEvents() []event.DomainEvent    { return p.domainEvents }

// ClearEvents returns a copy with an empty event list.
func (p Payment) ClearEvents() Payment {
	next := p
	next.domainEvents = nil
	return next
}

func copyEvents(evts []event.DomainEvent) []event.DomainEvent {
	if evts == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(evts))
	copy(out, evts)
	return out
}
