package rail_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamj-ops/everyday-lending/internal/infrastructure/rail"
)

func TestACHGateway_CreateTransfer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transfer/create", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "acct_1", req["account_id"])
		assert.Equal(t, "250.00", req["amount"])
		assert.Equal(t, "debit", req["type"])
		assert.Equal(t, "pay-123", req["idempotency_key"])

		json.NewEncoder(w).Encode(map[string]any{
			"transfer": map[string]any{"id": "tr_xyz", "status": "pending"},
		})
	}))
	defer server.Close()

	gw := rail.NewACHGateway("test-key", server.URL)

	transfer, err := gw.CreateTransfer(context.Background(), decimal.NewFromInt(250), "acct_1", "pay-123")
	require.NoError(t, err)
	assert.Equal(t, "tr_xyz", transfer.Reference)
	assert.Equal(t, "pending", transfer.Status)
}

func TestACHGateway_VerifyAccount(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"instantly_verified", true},
		{"manually_verified", true},
		{"pending_manual_verification", false},
		{"verification_failed", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/accounts/get", r.URL.Path)
				json.NewEncoder(w).Encode(map[string]any{
					"account": map[string]any{"id": "acct_1", "verification_status": tt.status},
				})
			}))
			defer server.Close()

			gw := rail.NewACHGateway("test-key", server.URL)
			verified, err := gw.VerifyAccount(context.Background(), "acct_1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, verified)
		})
	}
}

func TestACHGateway_GetAccountBalance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/balance/get", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"account": map[string]any{
				"id":       "acct_1",
				"balances": map[string]any{"available": "1523.75"},
			},
		})
	}))
	defer server.Close()

	gw := rail.NewACHGateway("test-key", server.URL)
	balance, err := gw.GetAccountBalance(context.Background(), "acct_1")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1523.75").Equal(balance))
}

func TestACHGateway_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error_code": "ITEM_LOGIN_REQUIRED"})
	}))
	defer server.Close()

	gw := rail.NewACHGateway("test-key", server.URL)
	_, err := gw.CreateTransfer(context.Background(), decimal.NewFromInt(100), "acct_1", "pay-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ITEM_LOGIN_REQUIRED")
}
