package rail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adamj-ops/everyday-lending/internal/domain/port"
)

// Compile-time interface checks.
var (
	_ port.ACHClient    = (*ACHGateway)(nil)
	_ port.BankVerifier = (*ACHGateway)(nil)
)

// ACHGateway implements the ACH originator and bank verification ports
// against a Plaid-style bank gateway API.
type ACHGateway struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewACHGateway creates a new bank gateway client.
func NewACHGateway(apiKey, baseURL string) *ACHGateway {
	return &ACHGateway{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type achTransferRequest struct {
	AccountID      string `json:"account_id"`
	Amount         string `json:"amount"`
	Type           string `json:"type"`
	Network        string `json:"network"`
	IdempotencyKey string `json:"idempotency_key"`
}

type achTransferResponse struct {
	Transfer struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"transfer"`
}

// CreateTransfer originates an ACH debit against a linked bank account. The
// gateway deduplicates on the idempotency key.
func (g *ACHGateway) CreateTransfer(
	ctx context.Context,
	amount decimal.Decimal,
	accountRef, idempotencyKey string,
) (port.ACHTransfer, error) {
	var result achTransferResponse
	err := g.post(ctx, "/transfer/create", achTransferRequest{
		AccountID:      accountRef,
		Amount:         amount.StringFixed(2),
		Type:           "debit",
		Network:        "ach",
		IdempotencyKey: idempotencyKey,
	}, &result)
	if err != nil {
		return port.ACHTransfer{}, err
	}

	return port.ACHTransfer{
		Reference: result.Transfer.ID,
		Status:    result.Transfer.Status,
	}, nil
}

type achAccountResponse struct {
	Account struct {
		ID                 string `json:"id"`
		VerificationStatus string `json:"verification_status"`
		Balances           struct {
			Available string `json:"available"`
		} `json:"balances"`
	} `json:"account"`
}

// VerifyAccount reports whether the linked account has completed
// verification and may be debited.
func (g *ACHGateway) VerifyAccount(ctx context.Context, accountRef string) (bool, error) {
	var result achAccountResponse
	err := g.post(ctx, "/accounts/get", map[string]string{"account_id": accountRef}, &result)
	if err != nil {
		return false, err
	}

	switch result.Account.VerificationStatus {
	case "instantly_verified", "manually_verified", "automatically_verified":
		return true, nil
	}
	return false, nil
}

// GetAccountBalance returns the account's available balance.
func (g *ACHGateway) GetAccountBalance(ctx context.Context, accountRef string) (decimal.Decimal, error) {
	var result achAccountResponse
	err := g.post(ctx, "/accounts/balance/get", map[string]string{"account_id": accountRef}, &result)
	if err != nil {
		return decimal.Decimal{}, err
	}

	balance, err := decimal.NewFromString(result.Account.Balances.Available)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse balance %q: %w", result.Account.Balances.Available, err)
	}
	return balance, nil
}

func (g *ACHGateway) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("bank gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("bank gateway error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
