package port

import (
	"context"
	"errors"

	"github.com/adamj-ops/everyday-lending/internal/domain/event"
	"github.com/adamj-ops/everyday-lending/internal/domain/model"
)

// ErrNotFound is returned when a requested aggregate does not exist.
var ErrNotFound = errors.New("not found")

// ErrVersionConflict is returned when an optimistic-locking update loses a
// race: the row's version no longer matches the one that was read.
var ErrVersionConflict = errors.New("version conflict")

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// LoanRepository retrieves the loan state the allocation engine runs against.
type LoanRepository interface {
	// FindByID returns the loan's current financial snapshot, including
	// its optimistic-locking version.
	FindByID(ctx context.Context, loanID string) (model.LoanSnapshot, error)
}

// PaymentRepository persists and retrieves payment records.
type PaymentRepository interface {
	// Insert records a new payment. Fails if the ID already exists.
	Insert(ctx context.Context, payment model.Payment) error

	// Save updates an existing payment using its version for optimistic
	// locking. Fails with ErrVersionConflict on a stale version.
	Save(ctx context.Context, payment model.Payment) error

	FindByID(ctx context.Context, paymentID string) (model.Payment, error)

	// FindByRailReference looks a payment up by the processor's own
	// reference, the lookup key for webhook delivery.
	FindByRailReference(ctx context.Context, railReference string) (model.Payment, error)

	// ListByLoan returns a loan's payments newest first.
	ListByLoan(ctx context.Context, loanID string, limit, offset int) ([]model.Payment, error)

	// SaveWithLoanTotals atomically inserts the payment and applies its
	// allocation to the loan's running totals and balance. The loan row
	// update is guarded by expectedVersion; a stale version returns
	// ErrVersionConflict and writes nothing.
	SaveWithLoanTotals(ctx context.Context, payment model.Payment, loan model.LoanSnapshot, expectedVersion int) error
}

// ParticipationRepository retrieves lender ownership shares for a loan.
type ParticipationRepository interface {
	// FindActiveByLoan returns the active participations on a loan. An
	// empty result means the loan has no lender splits configured.
	FindActiveByLoan(ctx context.Context, loanID string) ([]model.ParticipationShare, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
