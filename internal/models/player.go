package models

// Player maps a provider-side user identifier to the internal wallet identity.
// Rows are created once per external user on first launch and are immutable
// afterwards; currency reassignment is not supported.
type Player struct {
	PlayID   string `json:"play_id" db:"play_id"`
	UserID   string `json:"user_id" db:"user_id"`
	Currency string `json:"currency" db:"currency"`
}
