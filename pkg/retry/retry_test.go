package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamj-ops/everyday-lending/pkg/retry"
)

func fastPolicy() retry.Policy {
	return retry.Policy{
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		MaxAttempts:     3,
	}
}

func TestDo(t *testing.T) {
	t.Run("returns nil on first success", func(t *testing.T) {
		calls := 0
		err := retry.Do(context.Background(), fastPolicy(), func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient errors up to the attempt budget", func(t *testing.T) {
		calls := 0
		transient := errors.New("connection reset")
		err := retry.Do(context.Background(), fastPolicy(), func() error {
			calls++
			return transient
		})
		require.Error(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("succeeds after a transient failure", func(t *testing.T) {
		calls := 0
		err := retry.Do(context.Background(), fastPolicy(), func() error {
			calls++
			if calls < 2 {
				return errors.New("timeout")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("permanent errors are not retried", func(t *testing.T) {
		calls := 0
		operational := errors.New("loan not found")
		err := retry.Do(context.Background(), fastPolicy(), func() error {
			calls++
			return retry.Permanent(operational)
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, operational)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops when context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := retry.Do(ctx, fastPolicy(), func() error {
			return errors.New("transient")
		})
		require.Error(t, err)
	})
}
