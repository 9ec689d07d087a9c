package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/rjaysantos/seamless-provider-aix/internal/models"
)

// ErrAlreadySettled is returned by Settle when the row was settled before
// this call (conditional update matched no rows).
var ErrAlreadySettled = errors.New("transaction already settled")

// Transactions is the bet/settle ledger backed by Postgres. Rows are keyed
// by the provider transaction id; writes happen only inside a caller-owned
// database transaction.
type Transactions struct {
	db *sql.DB
}

func NewTransactions(db *sql.DB) *Transactions {
	return &Transactions{db: db}
}

// FindByTrxID returns the ledger record for a provider transaction id.
func (r *Transactions) FindByTrxID(ctx context.Context, trxID string) (*models.Transaction, error) {
	var t models.Transaction
	var updatedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT trx_id, bet_amount, win_amount, created_at, updated_at
		FROM aix.reports WHERE trx_id = $1`,
		trxID).Scan(&t.TrxID, &t.BetAmount, &t.WinAmount, &t.CreatedAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		t.UpdatedAt = &updatedAt.Time
	}
	return &t, nil
}

// CreateBet inserts a new unsettled ledger record inside tx. The trx_id
// primary key makes duplicate bets a constraint violation; callers pre-check
// to surface a domain error instead.
func (r *Transactions) CreateBet(ctx context.Context, tx *sql.Tx, trxID string, betAmount float64, betTime time.Time) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO aix.reports (trx_id, bet_amount, win_amount, created_at, updated_at)
		VALUES ($1, $2, 0, $3, NULL)`,
		trxID, betAmount, betTime)
	return err
}

// Settle writes the win amount and settle time inside tx. The updated_at IS
// NULL guard makes the settled-once check atomic with the write, so two
// concurrent settles cannot both succeed.
func (r *Transactions) Settle(ctx context.Context, tx *sql.Tx, trxID string, winAmount float64, settleTime time.Time) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE aix.reports SET win_amount = $1, updated_at = $2
		WHERE trx_id = $3 AND updated_at IS NULL`,
		winAmount, settleTime, trxID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadySettled
	}
	return nil
}

// IsUniqueViolation reports whether err is a Postgres duplicate-key error.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
