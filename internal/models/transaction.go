package models

import (
	"time"
)

// Transaction represents one wager/settlement pair keyed by the
// provider-supplied transaction id. A row is created by the debit callback
// with UpdatedAt = nil and mutated exactly once by the credit callback;
// rows are never deleted (audit trail).
type Transaction struct {
	TrxID     string     `json:"trx_id" db:"trx_id"`
	BetAmount float64    `json:"bet_amount" db:"bet_amount"`
	WinAmount float64    `json:"win_amount" db:"win_amount"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
}

// Settled reports whether the transaction has already been credited.
func (t *Transaction) Settled() bool {
	return t.UpdatedAt != nil
}
