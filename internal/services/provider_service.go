package services

import (
	"context"
	"crypto/hmac"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rjaysantos/seamless-provider-aix/internal/credentials"
	"github.com/rjaysantos/seamless-provider-aix/internal/events"
	"github.com/rjaysantos/seamless-provider-aix/internal/metrics"
	"github.com/rjaysantos/seamless-provider-aix/internal/models"
	"github.com/rjaysantos/seamless-provider-aix/internal/repository"
	"github.com/rjaysantos/seamless-provider-aix/internal/wallet"
)

// Publisher emits transaction lifecycle events after a callback commits.
type Publisher interface {
	PublishBetPlaced(ctx context.Context, e events.BetPlaced) error
	PublishBetSettled(ctx context.Context, e events.BetSettled) error
}

// ProviderService coordinates provider callbacks: player lookup,
// currency-scoped secret validation, ledger reads and the atomic
// ledger-write-plus-wallet-call unit of work.
//
// Checks run in one consistent order on every callback: player, secret,
// transaction existence, wallet pre-reads, then the local transaction.
type ProviderService struct {
	db      *sql.DB
	players *repository.Players
	ledger  *repository.Transactions
	creds   *credentials.Resolver
	wallet  wallet.Gateway
	publ    Publisher
	log     *zap.Logger
}

func NewProviderService(db *sql.DB, creds *credentials.Resolver, gateway wallet.Gateway, publ Publisher, log *zap.Logger) *ProviderService {
	return &ProviderService{
		db:      db,
		players: repository.NewPlayers(db),
		ledger:  repository.NewTransactions(db),
		creds:   creds,
		wallet:  gateway,
		publ:    publ,
		log:     log,
	}
}

// GetBalance resolves the player, validates the callback secret and returns
// the wallet credit.
func (s *ProviderService) GetBalance(ctx context.Context, userID, secretKey string) (float64, error) {
	player, creds, err := s.authorize(ctx, userID, secretKey)
	if err != nil {
		return 0, err
	}

	res, err := s.wallet.Balance(ctx, creds, player.PlayID)
	if err := s.walletResult("balance", res, err); err != nil {
		return 0, err
	}

	return res.Credit, nil
}

// Bet handles a debit callback: creates the ledger record and debits the
// wallet inside one local transaction. Duplicate trx ids fail without
// touching the existing record.
func (s *ProviderService) Bet(ctx context.Context, userID, secretKey, trxID, roundID, gameCode string, amount float64, debitTime string) (float64, error) {
	player, creds, err := s.authorize(ctx, userID, secretKey)
	if err != nil {
		return 0, err
	}

	if _, err := s.ledger.FindByTrxID(ctx, trxID); err == nil {
		return 0, ErrTransactionAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return 0, err
	}

	betTime, err := models.ParseProviderTime(debitTime)
	if err != nil {
		return 0, ErrInvalidRequest
	}

	bal, err := s.wallet.Balance(ctx, creds, player.PlayID)
	if err := s.walletResult("balance", bal, err); err != nil {
		return 0, err
	}
	if bal.Credit < amount {
		return 0, ErrInsufficientFunds
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if err := s.ledger.CreateBet(ctx, tx, trxID, amount, betTime); err != nil {
		if repository.IsUniqueViolation(err) {
			return 0, ErrTransactionAlreadyExists
		}
		return 0, err
	}

	report := wallet.NewBetReport(trxID, player.PlayID, player.Currency, gameCode, amount, betTime)
	res, err := s.wallet.Wager(ctx, creds, player.PlayID, player.Currency, trxID, amount, report)
	if err := s.walletResult("wager", res, err); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	if s.publ != nil {
		if err := s.publ.PublishBetPlaced(ctx, events.BetPlaced{
			TrxID:     trxID,
			PlayID:    player.PlayID,
			Currency:  player.Currency,
			BetAmount: amount,
		}); err != nil {
			s.log.Warn("bet_placed publish failed", zap.String("trx_id", trxID), zap.Error(err))
		}
	}

	return res.CreditAfter, nil
}

// Settle handles a credit callback: writes the win amount and settle time
// and credits the wallet inside one local transaction. A transaction can be
// settled exactly once.
func (s *ProviderService) Settle(ctx context.Context, userID, secretKey, trxID, gameCode string, amount float64, creditTime string) (float64, error) {
	player, creds, err := s.authorize(ctx, userID, secretKey)
	if err != nil {
		return 0, err
	}

	trx, err := s.ledger.FindByTrxID(ctx, trxID)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, ErrTransactionNotFound
	}
	if err != nil {
		return 0, err
	}
	if trx.Settled() {
		return 0, ErrTransactionAlreadySettled
	}

	settleTime, err := models.ParseProviderTime(creditTime)
	if err != nil {
		return 0, ErrInvalidRequest
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if err := s.ledger.Settle(ctx, tx, trxID, amount, settleTime); err != nil {
		if errors.Is(err, repository.ErrAlreadySettled) {
			return 0, ErrTransactionAlreadySettled
		}
		return 0, err
	}

	report := wallet.NewSettleReport(trx, player.PlayID, player.Currency, gameCode, amount, settleTime)
	res, err := s.wallet.Payout(ctx, creds, player.PlayID, player.Currency, trxID, amount, report)
	if err := s.walletResult("payout", res, err); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	if s.publ != nil {
		if err := s.publ.PublishBetSettled(ctx, events.BetSettled{
			TrxID:     trxID,
			PlayID:    player.PlayID,
			Currency:  player.Currency,
			WinAmount: amount,
		}); err != nil {
			s.log.Warn("bet_settled publish failed", zap.String("trx_id", trxID), zap.Error(err))
		}
	}

	return res.CreditAfter, nil
}

// authorize resolves the player by the provider user id and validates the
// callback secret against the credential configured for the player's
// currency. It runs before any transaction-ledger or wallet access.
func (s *ProviderService) authorize(ctx context.Context, userID, secretKey string) (*models.Player, *credentials.Credentials, error) {
	player, err := s.players.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	creds := s.creds.ByCurrency(player.Currency)
	if !hmac.Equal([]byte(creds.SecretKey), []byte(secretKey)) {
		return nil, nil, ErrInvalidSecretKey
	}

	return player, creds, nil
}

// walletResult folds transport errors and non-OK statuses into ErrWallet and
// records the call metric.
func (s *ProviderService) walletResult(call string, res *wallet.Result, err error) error {
	if err != nil {
		metrics.WalletRequestsTotal.WithLabelValues(call, "error").Inc()
		s.log.Warn("wallet call failed", zap.String("call", call), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrWallet, err)
	}
	if res.StatusCode != wallet.StatusOK {
		metrics.WalletRequestsTotal.WithLabelValues(call, "error").Inc()
		s.log.Warn("wallet call rejected", zap.String("call", call), zap.Int("status_code", res.StatusCode))
		return fmt.Errorf("%w: %s status %d", ErrWallet, call, res.StatusCode)
	}
	metrics.WalletRequestsTotal.WithLabelValues(call, "ok").Inc()
	return nil
}
