// Package postgres holds the PostgreSQL-backed repository adapters.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adamj-ops/everyday-lending/internal/domain/model"
	"github.com/adamj-ops/everyday-lending/internal/domain/port"
)

type scannable interface {
	Scan(dest ...any) error
}

// Compile-time interface check.
var _ port.ParticipationRepository = (*ParticipationRepo)(nil)

// ParticipationRepo implements port.ParticipationRepository using PostgreSQL.
type ParticipationRepo struct {
	pool *pgxpool.Pool
}

func NewParticipationRepo(pool *pgxpool.Pool) *ParticipationRepo {
	return &ParticipationRepo{pool: pool}
}

// FindActiveByLoan returns the active lender participations on a loan in a
// stable order so split proration is deterministic.
func (r *ParticipationRepo) FindActiveByLoan(ctx context.Context, loanID string) ([]model.ParticipationShare, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT lender_id, participation_percentage
		FROM participations
		WHERE loan_id = $1 AND status = 'ACTIVE'
		ORDER BY participation_percentage DESC, lender_id
	`, loanID)
	if err != nil {
		return nil, fmt.Errorf("query participations: %w", err)
	}
	defer rows.Close()

	var result []model.ParticipationShare
	for rows.Next() {
		var p model.ParticipationShare
		if err := rows.Scan(&p.LenderID, &p.ParticipationPercentage); err != nil {
			return nil, fmt.Errorf("scan participation: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
