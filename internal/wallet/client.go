package wallet

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rjaysantos/seamless-provider-aix/internal/credentials"
)

// Client is the HTTP implementation of Gateway. Requests are JSON over POST
// with an HMAC-SHA256 body signature; the per-currency base URL and API
// material come from the resolved credentials.
type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithHTTPClient allows injecting a custom HTTP client, mainly for
// tests.
func NewClientWithHTTPClient(httpClient *http.Client) *Client {
	return &Client{httpClient: httpClient}
}

type balanceRequest struct {
	PlayID string `json:"play_id"`
}

type transferRequest struct {
	PlayID   string  `json:"play_id"`
	Currency string  `json:"currency"`
	TrxID    string  `json:"trx_id"`
	Amount   float64 `json:"amount"`
	Report   Report  `json:"report"`
}

func (c *Client) Balance(ctx context.Context, creds *credentials.Credentials, playID string) (*Result, error) {
	return c.doRequest(ctx, creds, "/balance", balanceRequest{PlayID: playID})
}

func (c *Client) Wager(ctx context.Context, creds *credentials.Credentials, playID, currency, trxID string, amount float64, report Report) (*Result, error) {
	return c.doRequest(ctx, creds, "/wager", transferRequest{
		PlayID:   playID,
		Currency: currency,
		TrxID:    trxID,
		Amount:   amount,
		Report:   report,
	})
}

func (c *Client) Payout(ctx context.Context, creds *credentials.Credentials, playID, currency, trxID string, amount float64, report Report) (*Result, error) {
	return c.doRequest(ctx, creds, "/payout", transferRequest{
		PlayID:   playID,
		Currency: currency,
		TrxID:    trxID,
		Amount:   amount,
		Report:   report,
	})
}

func (c *Client) doRequest(ctx context.Context, creds *credentials.Credentials, endpoint string, reqBody interface{}) (*Result, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, creds.WalletURL+endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", creds.WalletAPIKey)
	req.Header.Set("x-api-hmac", computeHMAC(creds.WalletSecret, bodyBytes))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wallet request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("wallet%s http %d", endpoint, resp.StatusCode)
	}

	var result Result
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &result, nil
}

func computeHMAC(secret string, body []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
