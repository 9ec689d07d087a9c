package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/rjaysantos/seamless-provider-aix/internal/credentials"
	"github.com/rjaysantos/seamless-provider-aix/internal/metrics"
	"github.com/rjaysantos/seamless-provider-aix/internal/repository"
	"github.com/rjaysantos/seamless-provider-aix/internal/wallet"
)

// GameAPI issues the provider-side signed URLs for launch and round replay.
type GameAPI interface {
	Auth(creds *credentials.Credentials, playID, currency, gameID string, balance float64) (string, error)
	VisualURL(creds *credentials.Credentials, playID, trxID string) (string, error)
}

const launchSessionTTL = 5 * time.Minute

// LaunchService starts game sessions: create-if-absent player registration,
// balance fetch and delegation to the URL-issuing game API. Launch sessions
// are kept in Redis briefly so the URL can be handed off as a QR code.
type LaunchService struct {
	players *repository.Players
	ledger  *repository.Transactions
	creds   *credentials.Resolver
	wallet  wallet.Gateway
	api     GameAPI
	redis   *redis.Client
	log     *zap.Logger
}

func NewLaunchService(db *sql.DB, creds *credentials.Resolver, gateway wallet.Gateway, api GameAPI, rdb *redis.Client, log *zap.Logger) *LaunchService {
	return &LaunchService{
		players: repository.NewPlayers(db),
		ledger:  repository.NewTransactions(db),
		creds:   creds,
		wallet:  gateway,
		api:     api,
		redis:   rdb,
		log:     log,
	}
}

type launchSession struct {
	PlayID string `json:"playId"`
	URL    string `json:"url"`
}

// Launch registers the player if absent, fetches the wallet balance and
// returns the signed game URL plus a short-lived session token.
func (s *LaunchService) Launch(ctx context.Context, playID, currency, gameID string) (string, string, error) {
	if err := s.players.CreateIgnore(ctx, playID, playID, currency); err != nil {
		metrics.LaunchesTotal.WithLabelValues("error").Inc()
		return "", "", err
	}

	creds := s.creds.ByCurrency(currency)

	res, err := s.wallet.Balance(ctx, creds, playID)
	if err != nil {
		metrics.LaunchesTotal.WithLabelValues("wallet_error").Inc()
		return "", "", fmt.Errorf("%w: %v", ErrWallet, err)
	}
	if res.StatusCode != wallet.StatusOK {
		metrics.LaunchesTotal.WithLabelValues("wallet_error").Inc()
		return "", "", fmt.Errorf("%w: balance status %d", ErrWallet, res.StatusCode)
	}

	url, err := s.api.Auth(creds, playID, currency, gameID, res.Credit)
	if err != nil {
		metrics.LaunchesTotal.WithLabelValues("error").Inc()
		return "", "", err
	}

	token := uuid.NewString()
	if s.redis != nil {
		payload, _ := json.Marshal(launchSession{PlayID: playID, URL: url})
		if err := s.redis.Set(ctx, launchKey(token), string(payload), launchSessionTTL).Err(); err != nil {
			s.log.Warn("launch session store failed", zap.String("play_id", playID), zap.Error(err))
		}
	}

	metrics.LaunchesTotal.WithLabelValues("ok").Inc()
	return url, token, nil
}

// Visual returns the round-replay URL for an existing transaction.
func (s *LaunchService) Visual(ctx context.Context, playID, trxID string) (string, error) {
	player, err := s.players.FindByPlayID(ctx, playID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrPlayerNotFound
	}
	if err != nil {
		return "", err
	}

	if _, err := s.ledger.FindByTrxID(ctx, trxID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrTransactionNotFound
		}
		return "", err
	}

	creds := s.creds.ByCurrency(player.Currency)
	return s.api.VisualURL(creds, player.PlayID, trxID)
}

// LaunchQR resolves a stored launch session and renders its URL as a QR PNG
// for mobile handoff.
func (s *LaunchService) LaunchQR(ctx context.Context, token string) ([]byte, error) {
	if s.redis == nil {
		return nil, ErrLaunchSessionNotFound
	}

	data, err := s.redis.Get(ctx, launchKey(token)).Bytes()
	if err == redis.Nil {
		return nil, ErrLaunchSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session launchSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}

	return qrcode.Encode(session.URL, qrcode.Medium, 256)
}

func launchKey(token string) string {
	return "launch:" + token
}
