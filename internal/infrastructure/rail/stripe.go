// Package rail holds the payment-rail adapters: the card processor client
// and the ACH originator.
package rail

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adamj-ops/everyday-lending/internal/domain/port"
	"github.com/adamj-ops/everyday-lending/pkg/money"
)

// Compile-time interface check.
var _ port.CardProcessor = (*StripeClient)(nil)

// StripeClient implements port.CardProcessor against the Stripe API.
type StripeClient struct {
	apiKey        string
	webhookSecret string
	baseURL       string
	client        *http.Client
}

// NewStripeClient creates a new Stripe API client.
func NewStripeClient(apiKey, webhookSecret, baseURL string) *StripeClient {
	return &StripeClient{
		apiKey:        apiKey,
		webhookSecret: webhookSecret,
		baseURL:       strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// stripePaymentIntent is the subset of the payment intent response the
// adapter reads.
type stripePaymentIntent struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	ClientSecret string `json:"client_secret"`
}

// CreatePaymentIntent creates a charge for amount against the customer's
// default payment method. Stripe deduplicates requests carrying the same
// Idempotency-Key, so retries never double-charge.
func (c *StripeClient) CreatePaymentIntent(
	ctx context.Context,
	amount decimal.Decimal,
	currency, customerRef, idempotencyKey string,
) (port.CardCharge, error) {
	cur, err := money.NewCurrency(currency)
	if err != nil {
		return port.CardCharge{}, fmt.Errorf("parse currency: %w", err)
	}
	minorUnits := money.New(amount, cur).RoundToCent().Cents()

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(minorUnits, 10))
	form.Set("currency", strings.ToLower(currency))
	form.Set("customer", customerRef)
	form.Set("confirm", "true")
	form.Set("automatic_payment_methods[enabled]", "true")
	form.Set("automatic_payment_methods[allow_redirects]", "never")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return port.CardCharge{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return port.CardCharge{}, fmt.Errorf("stripe API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return port.CardCharge{}, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return port.CardCharge{}, fmt.Errorf("stripe API error (status %d): %s", resp.StatusCode, string(body))
	}

	var intent stripePaymentIntent
	if err := json.Unmarshal(body, &intent); err != nil {
		return port.CardCharge{}, fmt.Errorf("parse response: %w", err)
	}

	return port.CardCharge{
		Reference:    intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       intent.Status,
	}, nil
}

// webhookTolerance bounds how old a signed webhook timestamp may be before
// the payload is treated as a replay.
const webhookTolerance = 5 * time.Minute

// VerifyWebhookSignature checks a Stripe-Signature header of the form
// "t=<timestamp>,v1=<hmac>[,v1=<hmac>...]" against the raw payload. The
// signed message is "<timestamp>.<payload>" with HMAC-SHA256 over the
// endpoint's webhook secret.
func (c *StripeClient) VerifyWebhookSignature(payload []byte, signatureHeader string) error {
	var timestamp string
	var candidates []string
	for _, part := range strings.Split(signatureHeader, ",") {
		k, v, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch k {
		case "t":
			timestamp = v
		case "v1":
			candidates = append(candidates, v)
		}
	}
	if timestamp == "" || len(candidates) == 0 {
		return fmt.Errorf("malformed signature header")
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("malformed signature timestamp: %w", err)
	}
	age := time.Since(time.Unix(ts, 0))
	if age > webhookTolerance || age < -webhookTolerance {
		return fmt.Errorf("signature timestamp outside tolerance")
	}

	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, candidate := range candidates {
		if hmac.Equal([]byte(expected), []byte(candidate)) {
			return nil
		}
	}
	return fmt.Errorf("no matching signature")
}
