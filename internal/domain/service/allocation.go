package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/adamj-ops/everyday-lending/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Payment allocation waterfall
// ---------------------------------------------------------------------------

// FeePolicy configures the fee amounts the waterfall collects before
// principal. Like LateFeePolicy these are servicer policy, injected rather
// than embedded as literals.
type FeePolicy struct {
	// ServicingFeeRate is the origination/servicing fee as a fraction of
	// the original principal (0.01 = 1%).
	ServicingFeeRate decimal.Decimal

	// DefaultLateFeesOwed is the flat late-fee baseline applied when a
	// loan snapshot does not carry its own assessed total.
	DefaultLateFeesOwed decimal.Decimal
}

// DefaultFeePolicy returns the servicer's standard fee policy:
// 1% servicing fee, $50 flat late-fee baseline.
func DefaultFeePolicy() FeePolicy {
	return FeePolicy{
		ServicingFeeRate:    decimal.RequireFromString("0.01"),
		DefaultLateFeesOwed: decimal.NewFromInt(50),
	}
}

var (
	oneHundred = decimal.NewFromInt(100)
	twelve     = decimal.NewFromInt(12)
)

// AllocationEngine applies a received payment across a loan's obligations in
// strict priority order: accrued interest, then outstanding servicing fees,
// then outstanding late fees, then principal; anything left is overpayment.
//
// The order is a financial-policy decision, not an implementation detail:
// reordering changes who gets paid first when funds are short. It must not
// be changed without a policy review.
//
// The engine is pure and side-effect free; it is safe for concurrent use.
type AllocationEngine struct {
	policy FeePolicy
}

// NewAllocationEngine creates an engine with the given fee policy.
func NewAllocationEngine(policy FeePolicy) *AllocationEngine {
	return &AllocationEngine{policy: policy}
}

// Allocate runs the waterfall for one payment against a loan snapshot.
//
// Guarantees on success:
//   - the five buckets sum exactly to paymentAmount;
//   - every bucket is non-negative;
//   - Principal never exceeds the loan's current balance.
func (e *AllocationEngine) Allocate(loan model.LoanSnapshot, paymentAmount decimal.Decimal) (model.PaymentAllocation, error) {
	if err := loan.Validate(); err != nil {
		return model.PaymentAllocation{}, fmt.Errorf("invalid loan snapshot: %w", err)
	}
	if !paymentAmount.IsPositive() {
		return model.PaymentAllocation{}, fmt.Errorf("payment amount must be positive, got %s", paymentAmount)
	}

	remaining := paymentAmount

	// 1. Accrued interest for one period: balance * (rate/100) / 12.
	// Simple monthly accrual on the outstanding balance, no compounding.
	accruedInterest := loan.CurrentBalance.
		Mul(loan.InterestRate).
		Div(oneHundred).
		Div(twelve).
		Round(2)
	interest := decimal.Min(remaining, accruedInterest)
	remaining = remaining.Sub(interest)

	// 2. Outstanding servicing fees: rate * original principal, less paid.
	totalFeesOwed := loan.LoanAmount.Mul(e.policy.ServicingFeeRate).Round(2)
	outstandingFees := decimal.Max(decimal.Zero, totalFeesOwed.Sub(loan.FeesPaid))
	fees := decimal.Min(remaining, outstandingFees)
	remaining = remaining.Sub(fees)

	// 3. Outstanding late fees: assessed total less paid. A snapshot that
	// never carried an assessed total falls back to the policy baseline.
	lateFeesOwed := loan.LateFeesOwed
	if lateFeesOwed.IsZero() {
		lateFeesOwed = e.policy.DefaultLateFeesOwed
	}
	outstandingLateFees := decimal.Max(decimal.Zero, lateFeesOwed.Sub(loan.LateFeesPaid))
	lateFees := decimal.Min(remaining, outstandingLateFees)
	remaining = remaining.Sub(lateFees)

	// 4. Principal, capped at the current balance. The principal bucket can
	// never drive the balance negative.
	principal := decimal.Min(remaining, loan.CurrentBalance)
	remaining = remaining.Sub(principal)

	// 5. Whatever is left exceeds everything owed, including full payoff.
	overpayment := remaining

	return model.PaymentAllocation{
		Interest:    interest,
		Fees:        fees,
		LateFees:    lateFees,
		Principal:   principal,
		Overpayment: overpayment,
	}, nil
}
