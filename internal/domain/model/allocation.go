package model

import "github.com/shopspring/decimal"

// PaymentAllocation is the immutable result of running a payment through the
// allocation waterfall. The five buckets always sum to the payment amount.
type PaymentAllocation struct {
	Interest    decimal.Decimal
	Fees        decimal.Decimal
	LateFees    decimal.Decimal
	Principal   decimal.Decimal
	Overpayment decimal.Decimal
}

// Total returns the sum of all five buckets.
func (a PaymentAllocation) Total() decimal.Decimal {
	return a.Interest.
		Add(a.Fees).
		Add(a.LateFees).
		Add(a.Principal).
		Add(a.Overpayment)
}
