package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/adamj-ops/everyday-lending/internal/domain/model"
	"github.com/adamj-ops/everyday-lending/internal/domain/port"
	"github.com/adamj-ops/everyday-lending/internal/domain/valueobject"
	pgshared "github.com/adamj-ops/everyday-lending/pkg/postgres"
)

// Compile-time interface check.
var _ port.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implements port.PaymentRepository using PostgreSQL.
type PaymentRepo struct {
	pool *pgxpool.Pool
}

func NewPaymentRepo(pool *pgxpool.Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

const paymentColumns = `id, loan_id, lender_id, amount, method, status,
	interest, fees, late_fees, principal, overpayment,
	rail_reference, failure_reason, notes, version, created_at, updated_at`

const insertPaymentSQL = `
	INSERT INTO payments (
		id, loan_id, lender_id, amount, method, status,
		interest, fees, late_fees, principal, overpayment,
		rail_reference, failure_reason, notes, version, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
`

func insertArgs(p model.Payment) []any {
	var lenderID *string
	if p.LenderID() != "" {
		id := p.LenderID()
		lenderID = &id
	}
	a := p.Allocation()
	return []any{
		p.ID(), p.LoanID(), lenderID, p.Amount(), p.Method().String(), p.Status().String(),
		a.Interest, a.Fees, a.LateFees, a.Principal, a.Overpayment,
		p.RailReference(), p.FailureReason(), p.Notes(), p.Version(), p.CreatedAt(), p.UpdatedAt(),
	}
}

// Insert records a new payment.
func (r *PaymentRepo) Insert(ctx context.Context, payment model.Payment) error {
	if _, err := r.pool.Exec(ctx, insertPaymentSQL, insertArgs(payment)...); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// Save updates a payment's mutable fields, guarded by its previous version.
func (r *PaymentRepo) Save(ctx context.Context, payment model.Payment) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE payments SET
			status = $1,
			failure_reason = $2,
			version = $3,
			updated_at = $4
		WHERE id = $5 AND version = $6
	`,
		payment.Status().String(), payment.FailureReason(),
		payment.Version(), payment.UpdatedAt(),
		payment.ID(), payment.Version()-1,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment %s version %d: %w",
			payment.ID(), payment.Version()-1, port.ErrVersionConflict)
	}
	return nil
}

func (r *PaymentRepo) FindByID(ctx context.Context, paymentID string) (model.Payment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+paymentColumns+`
		FROM payments WHERE id = $1
	`, paymentID)
	p, err := scanPayment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Payment{}, fmt.Errorf("payment %s: %w", paymentID, port.ErrNotFound)
	}
	return p, err
}

func (r *PaymentRepo) FindByRailReference(ctx context.Context, railReference string) (model.Payment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+paymentColumns+`
		FROM payments WHERE rail_reference = $1
	`, railReference)
	p, err := scanPayment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Payment{}, fmt.Errorf("rail reference %s: %w", railReference, port.ErrNotFound)
	}
	return p, err
}

// ListByLoan returns a loan's payments newest first.
func (r *PaymentRepo) ListByLoan(ctx context.Context, loanID string, limit, offset int) ([]model.Payment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE loan_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, loanID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var result []model.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// SaveWithLoanTotals inserts the payment and applies its allocation to the
// loan's running totals in one transaction. The loan update is guarded by
// expectedVersion; losing the race rolls everything back and returns
// port.ErrVersionConflict.
func (r *PaymentRepo) SaveWithLoanTotals(
	ctx context.Context,
	payment model.Payment,
	loan model.LoanSnapshot,
	expectedVersion int,
) error {
	a := payment.Allocation()
	return pgshared.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE loans SET
				current_balance = current_balance - $1,
				principal_paid  = principal_paid + $1,
				interest_paid   = interest_paid + $2,
				fees_paid       = fees_paid + $3,
				late_fees_paid  = late_fees_paid + $4,
				late_fees_owed  = $5,
				version         = version + 1,
				updated_at      = $6
			WHERE id = $7 AND version = $8
		`,
			a.Principal, a.Interest, a.Fees, a.LateFees,
			loan.LateFeesOwed, payment.UpdatedAt(),
			payment.LoanID(), expectedVersion,
		)
		if err != nil {
			return fmt.Errorf("update loan totals: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("loan %s version %d: %w",
				payment.LoanID(), expectedVersion, port.ErrVersionConflict)
		}

		if _, err := tx.Exec(ctx, insertPaymentSQL, insertArgs(payment)...); err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}
		return nil
	})
}

func scanPayment(s scannable) (model.Payment, error) {
	var (
		id, loanID           string
		lenderID             *string
		amount               decimal.Decimal
		methodStr, statusStr string
		interest, fees       decimal.Decimal
		lateFees, principal  decimal.Decimal
		overpayment          decimal.Decimal
		railReference        string
		failureReason, notes string
		version              int
		createdAt, updatedAt time.Time
	)

	err := s.Scan(
		&id, &loanID, &lenderID, &amount, &methodStr, &statusStr,
		&interest, &fees, &lateFees, &principal, &overpayment,
		&railReference, &failureReason, &notes, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Payment{}, pgx.ErrNoRows
		}
		return model.Payment{}, fmt.Errorf("scan payment: %w", err)
	}

	method, err := valueobject.NewPaymentMethod(methodStr)
	if err != nil {
		return model.Payment{}, fmt.Errorf("parse payment method: %w", err)
	}
	status, err := valueobject.NewPaymentStatus(statusStr)
	if err != nil {
		return model.Payment{}, fmt.Errorf("parse payment status: %w", err)
	}

	var lender string
	if lenderID != nil {
		lender = *lenderID
	}

	return model.ReconstructPayment(
		id, loanID, lender,
		amount, method, status,
		model.PaymentAllocation{
			Interest:    interest,
			Fees:        fees,
			LateFees:    lateFees,
			Principal:   principal,
			Overpayment: overpayment,
		},
		railReference, failureReason, notes,
		version, createdAt, updatedAt,
	), nil
}
