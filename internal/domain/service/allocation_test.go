package service_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamj-ops/everyday-lending/internal/domain/model"
	"github.com/adamj-ops/everyday-lending/internal/domain/service"
	"github.com/adamj-ops/everyday-lending/pkg/testutil"
)

func newCurrentLoan() model.LoanSnapshot {
	// $10,000 at 12% with nothing paid yet. One month's interest is $100,
	// the 1% servicing fee is $100, and the flat $50 late-fee baseline
	// applies because no assessed total is carried.
	return model.LoanSnapshot{
		ID:             testutil.TestLoanID.String(),
		LoanAmount:     decimal.NewFromInt(10000),
		InterestRate:   decimal.NewFromInt(12),
		CurrentBalance: decimal.NewFromInt(10000),
		PrincipalPaid:  decimal.Zero,
		InterestPaid:   decimal.Zero,
		FeesPaid:       decimal.Zero,
		LateFeesPaid:   decimal.Zero,
		LateFeesOwed:   decimal.Zero,
		Version:        1,
	}
}

func TestAllocationEngine_Allocate_FullWaterfall(t *testing.T) {
	engine := service.NewAllocationEngine(service.DefaultFeePolicy())

	alloc, err := engine.Allocate(newCurrentLoan(), decimal.NewFromInt(1000))
	require.NoError(t, err)

	testutil.AssertDecimalEqual(t, decimal.NewFromInt(100), alloc.Interest)
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(100), alloc.Fees)
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(50), alloc.LateFees)
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(750), alloc.Principal)
	testutil.AssertDecimalEqual(t, decimal.Zero, alloc.Overpayment)
}

func TestAllocationEngine_Allocate_ShortPayment(t *testing.T) {
	// $200 covers interest and fees only; late fees and principal get
	// nothing rather than being partially shuffled out of order.
	engine := service.NewAllocationEngine(service.DefaultFeePolicy())

	alloc, err := engine.Allocate(newCurrentLoan(), decimal.NewFromInt(200))
	require.NoError(t, err)

	testutil.AssertDecimalEqual(t, decimal.NewFromInt(100), alloc.Interest)
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(100), alloc.Fees)
	testutil.AssertDecimalEqual(t, decimal.Zero, alloc.LateFees)
	testutil.AssertDecimalEqual(t, decimal.Zero, alloc.Principal)
	testutil.AssertDecimalEqual(t, decimal.Zero, alloc.Overpayment)
}

func TestAllocationEngine_Allocate_PartialBucket(t *testing.T) {
	// $150 fills interest and half the servicing fee.
	engine := service.NewAllocationEngine(service.DefaultFeePolicy())

	alloc, err := engine.Allocate(newCurrentLoan(), decimal.NewFromInt(150))
	require.NoError(t, err)

	testutil.AssertDecimalEqual(t, decimal.NewFromInt(100), alloc.Interest)
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(50), alloc.Fees)
	testutil.AssertDecimalEqual(t, decimal.Zero, alloc.LateFees)
	testutil.AssertDecimalEqual(t, decimal.Zero, alloc.Principal)
}

func TestAllocationEngine_Allocate_Overpayment(t *testing.T) {
	// Nearly paid off: $500 balance at 12% accrues $5; $50 of fees and
	// $25 of late fees remain outstanding. A $1,000 payment pays the loan
	// off entirely and leaves $420 as overpayment; principal is capped at
	// the balance, never above it.
	loan := model.LoanSnapshot{
		ID:             testutil.TestLoanID.String(),
		LoanAmount:     decimal.NewFromInt(10000),
		InterestRate:   decimal.NewFromInt(12),
		CurrentBalance: decimal.NewFromInt(500),
		PrincipalPaid:  decimal.NewFromInt(9500),
		InterestPaid:   decimal.NewFromInt(1100),
		FeesPaid:       decimal.NewFromInt(50),
		LateFeesPaid:   decimal.NewFromInt(25),
		LateFeesOwed:   decimal.NewFromInt(50),
		Version:        7,
	}
	engine := service.NewAllocationEngine(service.DefaultFeePolicy())

	alloc, err := engine.Allocate(loan, decimal.NewFromInt(1000))
	require.NoError(t, err)

	testutil.AssertDecimalEqual(t, decimal.NewFromInt(5), alloc.Interest)
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(50), alloc.Fees)
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(25), alloc.LateFees)
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(500), alloc.Principal)
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(420), alloc.Overpayment)
}

func TestAllocationEngine_Allocate_AssessedLateFees(t *testing.T) {
	// A snapshot carrying its own assessed late-fee total uses it instead
	// of the flat baseline.
	loan := newCurrentLoan()
	loan.LateFeesOwed = decimal.NewFromInt(200)
	engine := service.NewAllocationEngine(service.DefaultFeePolicy())

	alloc, err := engine.Allocate(loan, decimal.NewFromInt(1000))
	require.NoError(t, err)

	testutil.AssertDecimalEqual(t, decimal.NewFromInt(100), alloc.Interest)
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(100), alloc.Fees)
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(200), alloc.LateFees)
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(600), alloc.Principal)
}

func TestAllocationEngine_Allocate_FeesAlreadyPaid(t *testing.T) {
	loan := newCurrentLoan()
	loan.FeesPaid = decimal.NewFromInt(100)
	loan.LateFeesPaid = decimal.NewFromInt(50)
	engine := service.NewAllocationEngine(service.DefaultFeePolicy())

	alloc, err := engine.Allocate(loan, decimal.NewFromInt(1000))
	require.NoError(t, err)

	testutil.AssertDecimalEqual(t, decimal.NewFromInt(100), alloc.Interest)
	testutil.AssertDecimalEqual(t, decimal.Zero, alloc.Fees)
	testutil.AssertDecimalEqual(t, decimal.Zero, alloc.LateFees)
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(900), alloc.Principal)
}

func TestAllocationEngine_Allocate_ZeroInterestRate(t *testing.T) {
	loan := newCurrentLoan()
	loan.InterestRate = decimal.Zero
	engine := service.NewAllocationEngine(service.DefaultFeePolicy())

	alloc, err := engine.Allocate(loan, decimal.NewFromInt(1000))
	require.NoError(t, err)

	testutil.AssertDecimalEqual(t, decimal.Zero, alloc.Interest)
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(100), alloc.Fees)
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(50), alloc.LateFees)
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(850), alloc.Principal)
}

func TestAllocationEngine_Allocate_RejectsNonPositiveAmount(t *testing.T) {
	engine := service.NewAllocationEngine(service.DefaultFeePolicy())

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-100)} {
		_, err := engine.Allocate(newCurrentLoan(), amount)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	}
}

func TestAllocationEngine_Allocate_RejectsInvalidSnapshot(t *testing.T) {
	engine := service.NewAllocationEngine(service.DefaultFeePolicy())

	loan := newCurrentLoan()
	loan.CurrentBalance = decimal.NewFromInt(-1)
	_, err := engine.Allocate(loan, decimal.NewFromInt(100))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid loan snapshot")

	loan = newCurrentLoan()
	loan.ID = ""
	_, err = engine.Allocate(loan, decimal.NewFromInt(100))
	require.Error(t, err)
}

func TestAllocationEngine_Allocate_Properties(t *testing.T) {
	engine := service.NewAllocationEngine(service.DefaultFeePolicy())

	balances := []int64{0, 1, 500, 9999, 10000, 250000}
	rates := []string{"0", "4.5", "12", "18.99", "29.99"}
	amounts := []string{"0.01", "1", "99.99", "200", "1000", "10000", "500000"}

	for _, balance := range balances {
		for _, rate := range rates {
			for _, amount := range amounts {
				loan := newCurrentLoan()
				loan.CurrentBalance = decimal.NewFromInt(balance)
				loan.InterestRate = decimal.RequireFromString(rate)
				payment := decimal.RequireFromString(amount)
				label := fmt.Sprintf("balance=%d rate=%s amount=%s", balance, rate, amount)

				alloc, err := engine.Allocate(loan, payment)
				require.NoError(t, err, label)

				// Conservation: the buckets always sum to the payment.
				testutil.AssertDecimalEqual(t, payment, alloc.Total())

				// Non-negativity.
				for name, d := range map[string]decimal.Decimal{
					"interest":    alloc.Interest,
					"fees":        alloc.Fees,
					"lateFees":    alloc.LateFees,
					"principal":   alloc.Principal,
					"overpayment": alloc.Overpayment,
				} {
					assert.False(t, d.IsNegative(), "%s negative in %s", name, label)
				}

				// Principal never exceeds the outstanding balance.
				assert.True(t, alloc.Principal.LessThanOrEqual(loan.CurrentBalance),
					"principal %s exceeds balance in %s", alloc.Principal, label)

				// Determinism: the same inputs always allocate identically.
				again, err := engine.Allocate(loan, payment)
				require.NoError(t, err, label)
				assert.Equal(t, alloc, again, label)
			}
		}
	}
}
