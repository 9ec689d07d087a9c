// Package wallet defines the contract with the external balance-holding
// wallet service and its HTTP client implementation.
package wallet

import (
	"context"
	"time"

	"github.com/rjaysantos/seamless-provider-aix/internal/credentials"
	"github.com/rjaysantos/seamless-provider-aix/internal/models"
)

// StatusOK is the wallet success status code. Anything else is a wallet
// error and must abort the calling operation.
const StatusOK = 2100

// Result is the wallet response for balance, wager and payout calls.
// Credit is returned by balance queries, CreditAfter by wager/payout.
type Result struct {
	StatusCode  int     `json:"status_code"`
	Credit      float64 `json:"credit"`
	CreditAfter float64 `json:"credit_after"`
}

// Report is the audit entry the wallet expects alongside every wager and
// payout, in back-office (GMT-4) time.
type Report struct {
	TrxID      string  `json:"trx_id"`
	PlayID     string  `json:"play_id"`
	Currency   string  `json:"currency"`
	GameCode   string  `json:"game_code"`
	BetAmount  float64 `json:"bet_amount"`
	WinAmount  float64 `json:"win_amount"`
	BetTime    string  `json:"bet_time"`
	SettleTime string  `json:"settle_time,omitempty"`
}

// NewBetReport builds the audit entry for a wager.
func NewBetReport(trxID, playID, currency, gameCode string, betAmount float64, betTime time.Time) Report {
	return Report{
		TrxID:     trxID,
		PlayID:    playID,
		Currency:  currency,
		GameCode:  gameCode,
		BetAmount: betAmount,
		BetTime:   models.FormatStorageTime(betTime),
	}
}

// NewSettleReport builds the audit entry for a payout against an existing
// bet record.
func NewSettleReport(trx *models.Transaction, playID, currency, gameCode string, winAmount float64, settleTime time.Time) Report {
	return Report{
		TrxID:      trx.TrxID,
		PlayID:     playID,
		Currency:   currency,
		GameCode:   gameCode,
		BetAmount:  trx.BetAmount,
		WinAmount:  winAmount,
		BetTime:    models.FormatStorageTime(trx.CreatedAt),
		SettleTime: models.FormatStorageTime(settleTime),
	}
}

// Gateway is the outbound wallet contract. Implementations must treat any
// transport failure as an error; status interpretation is the caller's job.
type Gateway interface {
	Balance(ctx context.Context, creds *credentials.Credentials, playID string) (*Result, error)
	Wager(ctx context.Context, creds *credentials.Credentials, playID, currency, trxID string, amount float64, report Report) (*Result, error)
	Payout(ctx context.Context, creds *credentials.Credentials, playID, currency, trxID string, amount float64, report Report) (*Result, error)
}
