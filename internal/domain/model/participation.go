package model

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// ParticipationShare is a lender's fractional ownership of a loan, used to
// prorate payments received against it.
type ParticipationShare struct {
	LenderID                string
	ParticipationPercentage decimal.Decimal // 0–100
}

var oneHundred = decimal.NewFromInt(100)

// Validate checks the share is well-formed.
func (p ParticipationShare) Validate() error {
	if p.LenderID == "" {
		return fmt.Errorf("lender ID is required")
	}
	if p.ParticipationPercentage.IsNegative() || p.ParticipationPercentage.GreaterThan(oneHundred) {
		return fmt.Errorf("participation percentage must be between 0 and 100, got %s", p.ParticipationPercentage)
	}
	return nil
}

// ProrateShares splits amount across the given participations. Each share is
// floored to the cent; the fractional cents left over by flooring are then
// handed out one cent at a time, largest participation first, so shares are
// never negative and always sum to the full amount.
func ProrateShares(amount decimal.Decimal, participations []ParticipationShare) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(participations))
	if len(participations) == 0 {
		return shares
	}

	allocated := decimal.Zero
	for i, p := range participations {
		shares[i] = amount.Mul(p.ParticipationPercentage).Div(oneHundred).RoundDown(2)
		allocated = allocated.Add(shares[i])
	}

	order := make([]int, len(participations))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return participations[order[a]].ParticipationPercentage.
			GreaterThan(participations[order[b]].ParticipationPercentage)
	})

	cent := decimal.New(1, -2)
	remainder := amount.Sub(allocated)
	for i := 0; remainder.GreaterThanOrEqual(cent); i++ {
		idx := order[i%len(order)]
		shares[idx] = shares[idx].Add(cent)
		remainder = remainder.Sub(cent)
	}
	// A sub-cent tail can only come from a sub-cent input amount; it stays
	// on the largest share so the split still conserves.
	if remainder.IsPositive() {
		shares[order[0]] = shares[order[0]].Add(remainder)
	}

	return shares
}
