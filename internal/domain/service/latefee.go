package service

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Late fee calculation
// ---------------------------------------------------------------------------

// LateFeePolicy configures how late fees are assessed. These are servicer
// policy, not hard business law, so they are injected rather than hard-coded.
type LateFeePolicy struct {
	BaseFee         decimal.Decimal // charged as soon as a payment is flagged late
	PerDayIncrement decimal.Decimal // added for each whole day past due
	Cap             decimal.Decimal // assessed fee never exceeds this
}

// DefaultLateFeePolicy returns the servicer's standard policy:
// $50 base, $5 per day late, capped at $500.
func DefaultLateFeePolicy() LateFeePolicy {
	return LateFeePolicy{
		BaseFee:         decimal.NewFromInt(50),
		PerDayIncrement: decimal.NewFromInt(5),
		Cap:             decimal.NewFromInt(500),
	}
}

// LateFeeCalculator is a pure domain service computing the late fee owed for
// a payment a given number of whole days past its due date.
type LateFeeCalculator struct {
	policy LateFeePolicy
}

// NewLateFeeCalculator creates a calculator with the given policy.
func NewLateFeeCalculator(policy LateFeePolicy) *LateFeeCalculator {
	return &LateFeeCalculator{policy: policy}
}

// Calculate returns min(cap, base + daysLate * perDayIncrement).
//
// baseAmount is the overdue payment amount. The current flat policy does not
// scale with it, but it is part of the contract so percentage-based policies
// can be introduced without changing call sites.
//
// daysLate = 0 still yields the base fee: once a payment is flagged late the
// minimum charge applies. Callers must not invoke this for on-time payments,
// and negative daysLate is rejected rather than clamped.
func (c *LateFeeCalculator) Calculate(baseAmount decimal.Decimal, daysLate int) (decimal.Decimal, error) {
	if baseAmount.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("base amount must not be negative, got %s", baseAmount)
	}
	if daysLate < 0 {
		return decimal.Decimal{}, fmt.Errorf("days late must not be negative, got %d", daysLate)
	}

	fee := c.policy.BaseFee.Add(c.policy.PerDayIncrement.Mul(decimal.NewFromInt(int64(daysLate))))
	if fee.GreaterThan(c.policy.Cap) {
		return c.policy.Cap, nil
	}
	return fee, nil
}
