// Package retry provides a bounded exponential-backoff helper for transient
// failures. Operational failures (wrapped with Permanent) are surfaced
// immediately and never retried.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const defaultMaxAttempts = 3

// Policy configures the backoff schedule.
type Policy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxAttempts     uint64
}

// DefaultPolicy returns the schedule used for rail and persistence calls:
// three attempts starting at 250ms.
func DefaultPolicy() Policy {
	return Policy{
		InitialInterval: 250 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		MaxAttempts:     defaultMaxAttempts,
	}
}

// Permanent marks err as non-retryable. Do returns it unwrapped on the first
// occurrence instead of exhausting the attempt budget.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do runs op with exponential backoff until it succeeds, returns a permanent
// error, the context is cancelled, or the attempt budget is exhausted.
func Do(ctx context.Context, p Policy, op func() error) error {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.InitialInterval
	eb.MaxInterval = p.MaxInterval

	attempts := p.MaxAttempts
	if attempts == 0 {
		attempts = defaultMaxAttempts
	}

	b := backoff.WithContext(backoff.WithMaxRetries(eb, attempts-1), ctx)
	return backoff.Retry(op, b)
}
