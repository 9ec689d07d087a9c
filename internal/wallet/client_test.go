package wallet

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rjaysantos/seamless-provider-aix/internal/credentials"
	"github.com/rjaysantos/seamless-provider-aix/internal/models"
)

func testCreds(walletURL string) *credentials.Credentials {
	return &credentials.Credentials{
		WalletURL:    walletURL,
		WalletAPIKey: "test-api-key",
		WalletSecret: "test-wallet-secret",
	}
}

func signBody(secret string, body []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

func TestClient_Balance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/balance", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-api-key", r.Header.Get("x-api-key"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, signBody("test-wallet-secret", body), r.Header.Get("x-api-hmac"))

		var req map[string]string
		assert.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "testPlayID", req["play_id"])

		json.NewEncoder(w).Encode(map[string]any{"status_code": 2100, "credit": 1000.00})
	}))
	defer server.Close()

	client := NewClientWithHTTPClient(server.Client())
	res, err := client.Balance(context.Background(), testCreds(server.URL), "testPlayID")
	assert.NoError(t, err)
	assert.Equal(t, StatusOK, res.StatusCode)
	assert.Equal(t, 1000.00, res.Credit)
}

func TestClient_Wager(t *testing.T) {
	betTime := time.Date(2023, 12, 31, 12, 0, 0, 0, models.StorageLocation)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wager", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, signBody("test-wallet-secret", body), r.Header.Get("x-api-hmac"))

		var req transferRequest
		assert.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "testPlayID", req.PlayID)
		assert.Equal(t, "IDR", req.Currency)
		assert.Equal(t, "T1", req.TrxID)
		assert.Equal(t, 100.00, req.Amount)
		assert.Equal(t, "2023-12-31 12:00:00", req.Report.BetTime)

		json.NewEncoder(w).Encode(map[string]any{"status_code": 2100, "credit_after": 900.00})
	}))
	defer server.Close()

	report := NewBetReport("T1", "testPlayID", "IDR", "1", 100.00, betTime)
	client := NewClientWithHTTPClient(server.Client())
	res, err := client.Wager(context.Background(), testCreds(server.URL), "testPlayID", "IDR", "T1", 100.00, report)
	assert.NoError(t, err)
	assert.Equal(t, StatusOK, res.StatusCode)
	assert.Equal(t, 900.00, res.CreditAfter)
}

func TestClient_Payout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payout", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"status_code": 2100, "credit_after": 1200.00})
	}))
	defer server.Close()

	trx := &models.Transaction{
		TrxID:     "T1",
		BetAmount: 100.00,
		CreatedAt: time.Date(2023, 12, 31, 12, 0, 0, 0, models.StorageLocation),
	}
	report := NewSettleReport(trx, "testPlayID", "IDR", "1", 200.00, trx.CreatedAt.Add(time.Minute))

	client := NewClientWithHTTPClient(server.Client())
	res, err := client.Payout(context.Background(), testCreds(server.URL), "testPlayID", "IDR", "T1", 200.00, report)
	assert.NoError(t, err)
	assert.Equal(t, 1200.00, res.CreditAfter)
}

func TestClient_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClientWithHTTPClient(server.Client())
	_, err := client.Balance(context.Background(), testCreds(server.URL), "testPlayID")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "http 500")
}

func TestClient_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClientWithHTTPClient(server.Client())
	_, err := client.Balance(context.Background(), testCreds(server.URL), "testPlayID")
	assert.Error(t, err)
}
