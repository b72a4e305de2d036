package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// LoanSnapshot is a read-only view of a loan's financial state at payment
// time. It is validated at the boundary before reaching the allocation
// engine; the engine itself never mutates it.
type LoanSnapshot struct {
	ID             string
	LoanAmount     decimal.Decimal // original principal
	InterestRate   decimal.Decimal // nominal annual rate in percent, e.g. 12.00
	CurrentBalance decimal.Decimal

	// Cumulative amounts paid to date. These only ever grow over the
	// loan's lifetime; the engine reads them and never decrements.
	PrincipalPaid decimal.Decimal
	InterestPaid  decimal.Decimal
	FeesPaid      decimal.Decimal
	LateFeesPaid  decimal.Decimal

	// LateFeesOwed is the total of late fees assessed against the loan.
	// Callers that track an assessment ledger sum it into this field; a
	// zero value falls back to the servicer's flat baseline (FeePolicy).
	LateFeesOwed decimal.Decimal

	// Version is the optimistic-locking counter carried through to the
	// loan-totals update.
	Version int
}

// Validate checks the snapshot against the data-model invariants. Malformed
// snapshots fail fast rather than being silently clamped; clamping would
// corrupt the downstream financial records.
func (s LoanSnapshot) Validate() error {
	if s.ID == "" {
		return errors.New("loan ID is required")
	}
	if !s.LoanAmount.IsPositive() {
		return fmt.Errorf("loan amount must be positive, got %s", s.LoanAmount)
	}
	if s.InterestRate.IsNegative() {
		return fmt.Errorf("interest rate must not be negative, got %s", s.InterestRate)
	}
	if s.CurrentBalance.IsNegative() {
		return fmt.Errorf("current balance must not be negative, got %s", s.CurrentBalance)
	}
	for name, d := range map[string]decimal.Decimal{
		"principal paid": s.PrincipalPaid,
		"interest paid":  s.InterestPaid,
		"fees paid":      s.FeesPaid,
		"late fees paid": s.LateFeesPaid,
		"late fees owed": s.LateFeesOwed,
	} {
		if d.IsNegative() {
			return fmt.Errorf("%s must not be negative, got %s", name, d)
		}
	}
	return nil
}
