// Package gameapi builds the provider-side signed URLs for launching a game
// session and for viewing a settled round.
package gameapi

import (
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rjaysantos/seamless-provider-aix/internal/credentials"
)

// Api issues provider launch and visual URLs carrying a short-lived signed
// token.
type Api struct {
	tokenTTL time.Duration
}

func New() *Api {
	return &Api{tokenTTL: 15 * time.Minute}
}

// Auth builds the game launch URL for a player. The wallet balance is
// embedded as session context the game client displays on load.
func (a *Api) Auth(creds *credentials.Credentials, playID, currency, gameID string, balance float64) (string, error) {
	token, err := a.signToken(creds, jwt.MapClaims{
		"play_id":  playID,
		"currency": currency,
		"game_id":  gameID,
		"balance":  balance,
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign launch token: %w", err)
	}

	q := url.Values{}
	q.Set("token", token)
	q.Set("client", creds.ClientID)
	q.Set("game_id", gameID)
	return creds.GameURL + "?" + q.Encode(), nil
}

// VisualURL builds the round-replay URL for a settled transaction.
func (a *Api) VisualURL(creds *credentials.Credentials, playID, trxID string) (string, error) {
	token, err := a.signToken(creds, jwt.MapClaims{
		"play_id": playID,
		"trx_id":  trxID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign visual token: %w", err)
	}

	q := url.Values{}
	q.Set("token", token)
	q.Set("client", creds.ClientID)
	return creds.VisualURL + "?" + q.Encode(), nil
}

func (a *Api) signToken(creds *credentials.Credentials, claims jwt.MapClaims) (string, error) {
	now := time.Now()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(a.tokenTTL).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(creds.SigningKey))
}
