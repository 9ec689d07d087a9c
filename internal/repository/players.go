package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rjaysantos/seamless-provider-aix/internal/models"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("not found")

// Players is the player directory backed by Postgres.
type Players struct {
	db *sql.DB
}

func NewPlayers(db *sql.DB) *Players {
	return &Players{db: db}
}

// CreateIgnore inserts a player row if none exists for this play id.
// Safe under concurrent launches: duplicates are ignored, not errors.
func (r *Players) CreateIgnore(ctx context.Context, playID, userID, currency string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO aix.players (play_id, user_id, currency)
		VALUES ($1, $2, $3)
		ON CONFLICT (play_id) DO NOTHING`,
		playID, userID, currency)
	return err
}

// FindByUserID resolves the provider-side user id to a player.
func (r *Players) FindByUserID(ctx context.Context, userID string) (*models.Player, error) {
	var p models.Player
	err := r.db.QueryRowContext(ctx, `
		SELECT play_id, user_id, currency FROM aix.players WHERE user_id = $1`,
		userID).Scan(&p.PlayID, &p.UserID, &p.Currency)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByPlayID resolves the internal play id to a player.
func (r *Players) FindByPlayID(ctx context.Context, playID string) (*models.Player, error) {
	var p models.Player
	err := r.db.QueryRowContext(ctx, `
		SELECT play_id, user_id, currency FROM aix.players WHERE play_id = $1`,
		playID).Scan(&p.PlayID, &p.UserID, &p.Currency)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
