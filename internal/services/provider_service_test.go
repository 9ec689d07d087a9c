package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/rjaysantos/seamless-provider-aix/internal/credentials"
	"github.com/rjaysantos/seamless-provider-aix/internal/models"
	"github.com/rjaysantos/seamless-provider-aix/internal/wallet"
)

const testSecretKey = "ais-secret-key"

func newProviderService(t *testing.T) (*ProviderService, sqlmock.Sqlmock, *MockWallet, *MockPublisher, *sql.DB) {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)

	walletMock := &MockWallet{}
	publisherMock := &MockPublisher{}

	service := NewProviderService(db, credentials.NewResolver(), walletMock, publisherMock, zap.NewNop())
	return service, dbMock, walletMock, publisherMock, db
}

func expectPlayerLookup(dbMock sqlmock.Sqlmock, userID string) {
	dbMock.ExpectQuery("SELECT play_id, user_id, currency FROM aix.players WHERE user_id = \\$1").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"play_id", "user_id", "currency"}).
			AddRow("testPlayID", userID, "IDR"))
}

func TestProviderService_GetBalance(t *testing.T) {
	t.Run("returns wallet credit", func(t *testing.T) {
		service, dbMock, walletMock, _, db := newProviderService(t)
		defer db.Close()

		expectPlayerLookup(dbMock, "testUserID")
		walletMock.On("Balance", mock.Anything, mock.Anything, "testPlayID").
			Return(&wallet.Result{StatusCode: 2100, Credit: 1000.00}, nil)

		balance, err := service.GetBalance(context.Background(), "testUserID", testSecretKey)
		assert.NoError(t, err)
		assert.Equal(t, 1000.00, balance)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("player not found", func(t *testing.T) {
		service, dbMock, _, _, db := newProviderService(t)
		defer db.Close()

		dbMock.ExpectQuery("SELECT play_id, user_id, currency FROM aix.players WHERE user_id = \\$1").
			WithArgs("unknown").
			WillReturnRows(sqlmock.NewRows([]string{"play_id", "user_id", "currency"}))

		_, err := service.GetBalance(context.Background(), "unknown", testSecretKey)
		assert.ErrorIs(t, err, ErrPlayerNotFound)
	})

	t.Run("invalid secret fails before any wallet access", func(t *testing.T) {
		service, dbMock, walletMock, _, db := newProviderService(t)
		defer db.Close()

		expectPlayerLookup(dbMock, "testUserID")

		_, err := service.GetBalance(context.Background(), "testUserID", "invalid-secret-key")
		assert.ErrorIs(t, err, ErrInvalidSecretKey)
		walletMock.AssertNotCalled(t, "Balance", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("wallet non-OK status", func(t *testing.T) {
		service, dbMock, walletMock, _, db := newProviderService(t)
		defer db.Close()

		expectPlayerLookup(dbMock, "testUserID")
		walletMock.On("Balance", mock.Anything, mock.Anything, "testPlayID").
			Return(&wallet.Result{StatusCode: 9999}, nil)

		_, err := service.GetBalance(context.Background(), "testUserID", testSecretKey)
		assert.ErrorIs(t, err, ErrWallet)
	})
}

func TestProviderService_Bet(t *testing.T) {
	t.Run("creates ledger record and returns post-wager credit", func(t *testing.T) {
		service, dbMock, walletMock, publisherMock, db := newProviderService(t)
		defer db.Close()

		expectPlayerLookup(dbMock, "P1")
		dbMock.ExpectQuery("SELECT trx_id, bet_amount, win_amount, created_at, updated_at").
			WithArgs("T1").
			WillReturnRows(sqlmock.NewRows([]string{"trx_id", "bet_amount", "win_amount", "created_at", "updated_at"}))

		walletMock.On("Balance", mock.Anything, mock.Anything, "testPlayID").
			Return(&wallet.Result{StatusCode: 2100, Credit: 1000.00}, nil)

		dbMock.ExpectBegin()
		dbMock.ExpectExec("INSERT INTO aix.reports").
			WithArgs("T1", 100.00, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		walletMock.On("Wager", mock.Anything, mock.Anything, "testPlayID", "IDR", "T1", 100.00, mock.Anything).
			Return(&wallet.Result{StatusCode: 2100, CreditAfter: 900.00}, nil)

		dbMock.ExpectCommit()

		publisherMock.On("PublishBetPlaced", mock.Anything, mock.Anything).Return(nil)

		balance, err := service.Bet(context.Background(), "P1", testSecretKey, "T1", "R1", "1", 100.00, "2024-01-01 00:00:00")
		assert.NoError(t, err)
		assert.Equal(t, 900.00, balance)
		assert.NoError(t, dbMock.ExpectationsWereMet())
		publisherMock.AssertExpectations(t)
	})

	t.Run("duplicate trx id leaves existing record untouched", func(t *testing.T) {
		service, dbMock, walletMock, _, db := newProviderService(t)
		defer db.Close()

		expectPlayerLookup(dbMock, "P1")
		dbMock.ExpectQuery("SELECT trx_id, bet_amount, win_amount, created_at, updated_at").
			WithArgs("T1").
			WillReturnRows(sqlmock.NewRows([]string{"trx_id", "bet_amount", "win_amount", "created_at", "updated_at"}).
				AddRow("T1", 100.00, 0.00, time.Now(), nil))

		_, err := service.Bet(context.Background(), "P1", testSecretKey, "T1", "R1", "1", 100.00, "2024-01-01 00:00:00")
		assert.ErrorIs(t, err, ErrTransactionAlreadyExists)
		assert.NoError(t, dbMock.ExpectationsWereMet())
		walletMock.AssertNotCalled(t, "Wager", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		service, dbMock, walletMock, _, db := newProviderService(t)
		defer db.Close()

		expectPlayerLookup(dbMock, "P1")
		dbMock.ExpectQuery("SELECT trx_id, bet_amount, win_amount, created_at, updated_at").
			WithArgs("T1").
			WillReturnRows(sqlmock.NewRows([]string{"trx_id", "bet_amount", "win_amount", "created_at", "updated_at"}))

		walletMock.On("Balance", mock.Anything, mock.Anything, "testPlayID").
			Return(&wallet.Result{StatusCode: 2100, Credit: 50.00}, nil)

		_, err := service.Bet(context.Background(), "P1", testSecretKey, "T1", "R1", "1", 100.00, "2024-01-01 00:00:00")
		assert.ErrorIs(t, err, ErrInsufficientFunds)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("wallet wager failure rolls back the ledger insert", func(t *testing.T) {
		service, dbMock, walletMock, publisherMock, db := newProviderService(t)
		defer db.Close()

		expectPlayerLookup(dbMock, "P1")
		dbMock.ExpectQuery("SELECT trx_id, bet_amount, win_amount, created_at, updated_at").
			WithArgs("T1").
			WillReturnRows(sqlmock.NewRows([]string{"trx_id", "bet_amount", "win_amount", "created_at", "updated_at"}))

		walletMock.On("Balance", mock.Anything, mock.Anything, "testPlayID").
			Return(&wallet.Result{StatusCode: 2100, Credit: 1000.00}, nil)

		dbMock.ExpectBegin()
		dbMock.ExpectExec("INSERT INTO aix.reports").
			WithArgs("T1", 100.00, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		walletMock.On("Wager", mock.Anything, mock.Anything, "testPlayID", "IDR", "T1", 100.00, mock.Anything).
			Return(&wallet.Result{StatusCode: 9999}, nil)

		dbMock.ExpectRollback()

		_, err := service.Bet(context.Background(), "P1", testSecretKey, "T1", "R1", "1", 100.00, "2024-01-01 00:00:00")
		assert.ErrorIs(t, err, ErrWallet)
		assert.NoError(t, dbMock.ExpectationsWereMet())
		publisherMock.AssertNotCalled(t, "PublishBetPlaced", mock.Anything, mock.Anything)
	})

	t.Run("malformed debit time", func(t *testing.T) {
		service, dbMock, _, _, db := newProviderService(t)
		defer db.Close()

		expectPlayerLookup(dbMock, "P1")
		dbMock.ExpectQuery("SELECT trx_id, bet_amount, win_amount, created_at, updated_at").
			WithArgs("T1").
			WillReturnRows(sqlmock.NewRows([]string{"trx_id", "bet_amount", "win_amount", "created_at", "updated_at"}))

		_, err := service.Bet(context.Background(), "P1", testSecretKey, "T1", "R1", "1", 100.00, "not-a-time")
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestProviderService_Settle(t *testing.T) {
	betTime := time.Date(2024, 1, 1, 0, 0, 0, 0, models.StorageLocation)

	t.Run("settles record and returns post-payout credit", func(t *testing.T) {
		service, dbMock, walletMock, publisherMock, db := newProviderService(t)
		defer db.Close()

		expectPlayerLookup(dbMock, "P1")
		dbMock.ExpectQuery("SELECT trx_id, bet_amount, win_amount, created_at, updated_at").
			WithArgs("T1").
			WillReturnRows(sqlmock.NewRows([]string{"trx_id", "bet_amount", "win_amount", "created_at", "updated_at"}).
				AddRow("T1", 100.00, 0.00, betTime, nil))

		dbMock.ExpectBegin()
		dbMock.ExpectExec("UPDATE aix.reports SET win_amount = \\$1, updated_at = \\$2").
			WithArgs(200.00, sqlmock.AnyArg(), "T1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		walletMock.On("Payout", mock.Anything, mock.Anything, "testPlayID", "IDR", "T1", 200.00, mock.Anything).
			Return(&wallet.Result{StatusCode: 2100, CreditAfter: 1200.00}, nil)

		dbMock.ExpectCommit()

		publisherMock.On("PublishBetSettled", mock.Anything, mock.Anything).Return(nil)

		balance, err := service.Settle(context.Background(), "P1", testSecretKey, "T1", "1", 200.00, "2024-01-01 00:00:00")
		assert.NoError(t, err)
		assert.Equal(t, 1200.00, balance)
		assert.NoError(t, dbMock.ExpectationsWereMet())
		publisherMock.AssertExpectations(t)
	})

	t.Run("unknown trx id", func(t *testing.T) {
		service, dbMock, _, _, db := newProviderService(t)
		defer db.Close()

		expectPlayerLookup(dbMock, "P1")
		dbMock.ExpectQuery("SELECT trx_id, bet_amount, win_amount, created_at, updated_at").
			WithArgs("unknown").
			WillReturnRows(sqlmock.NewRows([]string{"trx_id", "bet_amount", "win_amount", "created_at", "updated_at"}))

		_, err := service.Settle(context.Background(), "P1", testSecretKey, "unknown", "1", 200.00, "2024-01-01 00:00:00")
		assert.ErrorIs(t, err, ErrTransactionNotFound)
	})

	t.Run("second settle fails without ledger or wallet access", func(t *testing.T) {
		service, dbMock, walletMock, _, db := newProviderService(t)
		defer db.Close()

		settleTime := betTime.Add(time.Minute)
		expectPlayerLookup(dbMock, "P1")
		dbMock.ExpectQuery("SELECT trx_id, bet_amount, win_amount, created_at, updated_at").
			WithArgs("T1").
			WillReturnRows(sqlmock.NewRows([]string{"trx_id", "bet_amount", "win_amount", "created_at", "updated_at"}).
				AddRow("T1", 100.00, 200.00, betTime, settleTime))

		_, err := service.Settle(context.Background(), "P1", testSecretKey, "T1", "1", 200.00, "2024-01-01 00:00:00")
		assert.ErrorIs(t, err, ErrTransactionAlreadySettled)
		assert.NoError(t, dbMock.ExpectationsWereMet())
		walletMock.AssertNotCalled(t, "Payout", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("conditional update losing the race maps to already settled", func(t *testing.T) {
		service, dbMock, _, _, db := newProviderService(t)
		defer db.Close()

		expectPlayerLookup(dbMock, "P1")
		dbMock.ExpectQuery("SELECT trx_id, bet_amount, win_amount, created_at, updated_at").
			WithArgs("T1").
			WillReturnRows(sqlmock.NewRows([]string{"trx_id", "bet_amount", "win_amount", "created_at", "updated_at"}).
				AddRow("T1", 100.00, 0.00, betTime, nil))

		dbMock.ExpectBegin()
		dbMock.ExpectExec("UPDATE aix.reports SET win_amount = \\$1, updated_at = \\$2").
			WithArgs(200.00, sqlmock.AnyArg(), "T1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		dbMock.ExpectRollback()

		_, err := service.Settle(context.Background(), "P1", testSecretKey, "T1", "1", 200.00, "2024-01-01 00:00:00")
		assert.ErrorIs(t, err, ErrTransactionAlreadySettled)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("wallet payout failure rolls back the settle", func(t *testing.T) {
		service, dbMock, walletMock, publisherMock, db := newProviderService(t)
		defer db.Close()

		expectPlayerLookup(dbMock, "P1")
		dbMock.ExpectQuery("SELECT trx_id, bet_amount, win_amount, created_at, updated_at").
			WithArgs("T1").
			WillReturnRows(sqlmock.NewRows([]string{"trx_id", "bet_amount", "win_amount", "created_at", "updated_at"}).
				AddRow("T1", 100.00, 0.00, betTime, nil))

		dbMock.ExpectBegin()
		dbMock.ExpectExec("UPDATE aix.reports SET win_amount = \\$1, updated_at = \\$2").
			WithArgs(200.00, sqlmock.AnyArg(), "T1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		walletMock.On("Payout", mock.Anything, mock.Anything, "testPlayID", "IDR", "T1", 200.00, mock.Anything).
			Return(nil, errors.New("connection refused"))

		dbMock.ExpectRollback()

		_, err := service.Settle(context.Background(), "P1", testSecretKey, "T1", "1", 200.00, "2024-01-01 00:00:00")
		assert.ErrorIs(t, err, ErrWallet)
		assert.NoError(t, dbMock.ExpectationsWereMet())
		publisherMock.AssertNotCalled(t, "PublishBetSettled", mock.Anything, mock.Anything)
	})
}
