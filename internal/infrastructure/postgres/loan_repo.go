package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adamj-ops/everyday-lending/internal/domain/model"
	"github.com/adamj-ops/everyday-lending/internal/domain/port"
	pgshared "github.com/adamj-ops/everyday-lending/pkg/postgres"
)

// Compile-time interface check.
var _ port.LoanRepository = (*LoanRepo)(nil)

// LoanRepo implements port.LoanRepository using PostgreSQL.
type LoanRepo struct {
	pool *pgxpool.Pool
}

func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

const loanColumns = `id, loan_amount, interest_rate, current_balance,
	principal_paid, interest_paid, fees_paid, late_fees_paid, late_fees_owed,
	version`

// FindByID retrieves a loan's financial snapshot.
func (r *LoanRepo) FindByID(ctx context.Context, loanID string) (model.LoanSnapshot, error) {
	return findLoan(ctx, r.pool, loanID)
}

func findLoan(ctx context.Context, q pgshared.Querier, loanID string) (model.LoanSnapshot, error) {
	var s model.LoanSnapshot
	err := q.QueryRow(ctx, `
		SELECT `+loanColumns+`
		FROM loans WHERE id = $1
	`, loanID).Scan(
		&s.ID, &s.LoanAmount, &s.InterestRate, &s.CurrentBalance,
		&s.PrincipalPaid, &s.InterestPaid, &s.FeesPaid, &s.LateFeesPaid, &s.LateFeesOwed,
		&s.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.LoanSnapshot{}, fmt.Errorf("loan %s: %w", loanID, port.ErrNotFound)
		}
		return model.LoanSnapshot{}, fmt.Errorf("query loan: %w", err)
	}
	return s, nil
}
