package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// PaymentMethod – immutable value object
// ---------------------------------------------------------------------------

// PaymentMethod identifies the rail used to collect a payment.
type PaymentMethod struct {
	value string
}

const (
	paymentMethodCard     = "CARD"
	paymentMethodACHDebit = "ACH_DEBIT"
)

var (
	PaymentMethodCard     = PaymentMethod{value: paymentMethodCard}
	PaymentMethodACHDebit = PaymentMethod{value: paymentMethodACHDebit}
)

var validPaymentMethods = map[string]PaymentMethod{
	paymentMethodCard:     PaymentMethodCard,
	paymentMethodACHDebit: PaymentMethodACHDebit,
}

// NewPaymentMethod creates a PaymentMethod from a raw string.
func NewPaymentMethod(s string) (PaymentMethod, error) {
	v, ok := validPaymentMethods[s]
	if !ok {
		return PaymentMethod{}, fmt.Errorf("invalid payment method: %q", s)
	}
	return v, nil
}

// String returns the string representation of the method.
func (m PaymentMethod) String() string { return m.value }

// IsZero returns true if the method has not been initialised.
func (m PaymentMethod) IsZero() bool { return m.value == "" }

// Equal returns true when both methods carry the same value.
func (m PaymentMethod) Equal(other PaymentMethod) bool { return m.value == other.value }
