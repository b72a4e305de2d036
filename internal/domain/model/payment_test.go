package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamj-ops/everyday-lending/internal/domain/event"
	"github.com/adamj-ops/everyday-lending/internal/domain/model"
	"github.com/adamj-ops/everyday-lending/internal/domain/valueobject"
	"github.com/adamj-ops/everyday-lending/pkg/testutil"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestAllocation() model.PaymentAllocation {
	return model.PaymentAllocation{
		Interest:    decimal.NewFromInt(100),
		Fees:        decimal.NewFromInt(100),
		LateFees:    decimal.NewFromInt(50),
		Principal:   decimal.NewFromInt(750),
		Overpayment: decimal.Zero,
	}
}

func newTestPayment(t *testing.T) model.Payment {
	t.Helper()
	p, err := model.NewPayment(
		testutil.TestPaymentID.String(),
		testutil.TestLoanID.String(),
		"",
		decimal.NewFromInt(1000),
		valueobject.PaymentMethodCard,
		newTestAllocation(),
		"pi_test_123", "June installment",
		testNow,
	)
	require.NoError(t, err)
	return p
}

func TestNewPayment(t *testing.T) {
	p := newTestPayment(t)

	assert.Equal(t, testutil.TestPaymentID.String(), p.ID())
	assert.Equal(t, testutil.TestLoanID.String(), p.LoanID())
	assert.Empty(t, p.LenderID())
	assert.True(t, p.Status().Equal(valueobject.PaymentStatusPending))
	assert.Equal(t, "pi_test_123", p.RailReference())
	assert.Equal(t, 1, p.Version())
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(1000), p.Amount())
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(750), p.Allocation().Principal)

	require.Len(t, p.DomainEvents(), 1)
	processed, ok := p.DomainEvents()[0].(event.PaymentProcessed)
	require.True(t, ok)
	assert.Equal(t, "lending.payment.processed", processed.EventType())
	assert.Equal(t, p.ID(), processed.AggregateID())
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(1000), processed.Amount)
}

func TestNewPayment_Validation(t *testing.T) {
	alloc := newTestAllocation()
	amount := decimal.NewFromInt(1000)

	tests := []struct {
		name    string
		mutate  func() (model.Payment, error)
		wantErr string
	}{
		{
			"missing ID",
			func() (model.Payment, error) {
				return model.NewPayment("", "loan-1", "", amount, valueobject.PaymentMethodCard, alloc, "pi_1", "", testNow)
			},
			"payment ID is required",
		},
		{
			"missing loan ID",
			func() (model.Payment, error) {
				return model.NewPayment("pay-1", "", "", amount, valueobject.PaymentMethodCard, alloc, "pi_1", "", testNow)
			},
			"loan ID is required",
		},
		{
			"non-positive amount",
			func() (model.Payment, error) {
				return model.NewPayment("pay-1", "loan-1", "", decimal.Zero, valueobject.PaymentMethodCard, alloc, "pi_1", "", testNow)
			},
			"must be positive",
		},
		{
			"missing method",
			func() (model.Payment, error) {
				return model.NewPayment("pay-1", "loan-1", "", amount, valueobject.PaymentMethod{}, alloc, "pi_1", "", testNow)
			},
			"payment method is required",
		},
		{
			"missing rail reference",
			func() (model.Payment, error) {
				return model.NewPayment("pay-1", "loan-1", "", amount, valueobject.PaymentMethodCard, alloc, "", "", testNow)
			},
			"rail reference is required",
		},
		{
			"allocation total mismatch",
			func() (model.Payment, error) {
				return model.NewPayment("pay-1", "loan-1", "", decimal.NewFromInt(999), valueobject.PaymentMethodCard, alloc, "pi_1", "", testNow)
			},
			"does not match payment amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.mutate()
			testutil.AssertErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestPayment_Confirm(t *testing.T) {
	p := newTestPayment(t).ClearEvents()

	confirmedAt := testNow.Add(time.Hour)
	confirmed, err := p.Confirm(confirmedAt)
	require.NoError(t, err)

	assert.True(t, confirmed.Status().Equal(valueobject.PaymentStatusConfirmed))
	assert.Equal(t, 2, confirmed.Version())
	assert.Equal(t, confirmedAt, confirmed.UpdatedAt())

	// Original aggregate is untouched.
	assert.True(t, p.Status().Equal(valueobject.PaymentStatusPending))
	assert.Equal(t, 1, p.Version())

	require.Len(t, confirmed.DomainEvents(), 1)
	evt, ok := confirmed.DomainEvents()[0].(event.PaymentConfirmed)
	require.True(t, ok)
	assert.Equal(t, "lending.payment.confirmed", evt.EventType())
}

func TestPayment_Confirm_OnlyFromPending(t *testing.T) {
	p := newTestPayment(t)

	confirmed, err := p.Confirm(testNow)
	require.NoError(t, err)

	_, err = confirmed.Confirm(testNow)
	require.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)

	failed, err := newTestPayment(t).MarkFailed("card_declined", testNow)
	require.NoError(t, err)
	_, err = failed.Confirm(testNow)
	require.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
}

func TestPayment_MarkFailed(t *testing.T) {
	p := newTestPayment(t).ClearEvents()

	failed, err := p.MarkFailed("insufficient_funds", testNow.Add(time.Minute))
	require.NoError(t, err)

	assert.True(t, failed.Status().Equal(valueobject.PaymentStatusFailed))
	assert.Equal(t, "insufficient_funds", failed.FailureReason())
	assert.Equal(t, 2, failed.Version())

	_, err = failed.MarkFailed("again", testNow)
	require.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
}

func TestPayment_ClearEvents(t *testing.T) {
	p := newTestPayment(t)
	require.NotEmpty(t, p.DomainEvents())

	cleared := p.ClearEvents()
	assert.Empty(t, cleared.DomainEvents())
	assert.NotEmpty(t, p.DomainEvents())
}

func TestReconstructPayment(t *testing.T) {
	p := model.ReconstructPayment(
		"pay-9", "loan-9", "lender-9",
		decimal.NewFromInt(600),
		valueobject.PaymentMethodACHDebit,
		valueobject.PaymentStatusConfirmed,
		model.PaymentAllocation{Principal: decimal.NewFromInt(600)},
		"tr_abc", "", "split share",
		3, testNow, testNow.Add(time.Hour),
	)

	assert.Equal(t, "pay-9", p.ID())
	assert.Equal(t, "lender-9", p.LenderID())
	assert.True(t, p.Status().Equal(valueobject.PaymentStatusConfirmed))
	assert.Equal(t, 3, p.Version())
	assert.Empty(t, p.DomainEvents())
}
