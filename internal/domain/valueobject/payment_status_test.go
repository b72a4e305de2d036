package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamj-ops/everyday-lending/internal/domain/valueobject"
)

func TestNewPaymentStatus(t *testing.T) {
	t.Run("accepts known statuses", func(t *testing.T) {
		for _, s := range []string{"PENDING", "CONFIRMED", "FAILED"} {
			status, err := valueobject.NewPaymentStatus(s)
			require.NoError(t, err)
			assert.Equal(t, s, status.String())
			assert.False(t, status.IsZero())
		}
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		for _, s := range []string{"", "pending", "SETTLED", "CANCELED"} {
			_, err := valueobject.NewPaymentStatus(s)
			assert.Error(t, err, "status %q should be rejected", s)
		}
	})
}

func TestNewPaymentMethod(t *testing.T) {
	t.Run("accepts known methods", func(t *testing.T) {
		card, err := valueobject.NewPaymentMethod("CARD")
		require.NoError(t, err)
		assert.True(t, card.Equal(valueobject.PaymentMethodCard))

		ach, err := valueobject.NewPaymentMethod("ACH_DEBIT")
		require.NoError(t, err)
		assert.True(t, ach.Equal(valueobject.PaymentMethodACHDebit))
	})

	t.Run("rejects unknown methods", func(t *testing.T) {
		_, err := valueobject.NewPaymentMethod("WIRE")
		assert.Error(t, err)
	})

	t.Run("zero value reports IsZero", func(t *testing.T) {
		var m valueobject.PaymentMethod
		assert.True(t, m.IsZero())
	})
}
