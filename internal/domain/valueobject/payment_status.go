package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// PaymentStatus – immutable value object
// ---------------------------------------------------------------------------

// PaymentStatus represents the lifecycle stage of a collected payment.
// A payment is recorded PENDING once the rail accepts the instruction and is
// confirmed or failed asynchronously by the rail's webhook.
type PaymentStatus struct {
	value string
}

const (
	paymentStatusPending   = "PENDING"
	paymentStatusConfirmed = "CONFIRMED"
	paymentStatusFailed    = "FAILED"
)

var (
	PaymentStatusPending   = PaymentStatus{value: paymentStatusPending}
	PaymentStatusConfirmed = PaymentStatus{value: paymentStatusConfirmed}
	PaymentStatusFailed    = PaymentStatus{value: paymentStatusFailed}
)

var validPaymentStatuses = map[string]PaymentStatus{
	paymentStatusPending:   PaymentStatusPending,
	paymentStatusConfirmed: PaymentStatusConfirmed,
	paymentStatusFailed:    PaymentStatusFailed,
}

// NewPaymentStatus creates a PaymentStatus from a raw string.
func NewPaymentStatus(s string) (PaymentStatus, error) {
	v, ok := validPaymentStatuses[s]
	if !ok {
		return PaymentStatus{}, fmt.Errorf("invalid payment status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s PaymentStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s PaymentStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s PaymentStatus) Equal(other PaymentStatus) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var ErrInvalidStatusTransition = errors.New("invalid status transition")
