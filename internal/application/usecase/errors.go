package usecase

import "errors"

// Sentinel errors surfaced to the presentation layer. Handlers map these to
// transport status codes with errors.Is; everything else is a 500.
var (
	// ErrLoanNotFound means the referenced loan does not exist.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrPaymentNotFound means the referenced payment does not exist.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrPaymentFailed wraps rail-side failures: the charge or transfer
	// could not be created, so nothing was recorded.
	ErrPaymentFailed = errors.New("payment failed")

	// ErrWebhookVerification means the webhook signature did not verify.
	// Never retried; the payload is untrusted.
	ErrWebhookVerification = errors.New("webhook signature verification failed")

	// ErrNoParticipations means a split payment was requested on a loan
	// with no active lender participations.
	ErrNoParticipations = errors.New("no lender participations")
)
