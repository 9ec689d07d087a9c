package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rjaysantos/seamless-provider-aix/internal/credentials"
	"github.com/rjaysantos/seamless-provider-aix/internal/events"
	"github.com/rjaysantos/seamless-provider-aix/internal/wallet"
)

type MockWallet struct {
	mock.Mock
}

func (m *MockWallet) Balance(ctx context.Context, creds *credentials.Credentials, playID string) (*wallet.Result, error) {
	args := m.Called(ctx, creds, playID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Result), args.Error(1)
}

func (m *MockWallet) Wager(ctx context.Context, creds *credentials.Credentials, playID, currency, trxID string, amount float64, report wallet.Report) (*wallet.Result, error) {
	args := m.Called(ctx, creds, playID, currency, trxID, amount, report)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Result), args.Error(1)
}

func (m *MockWallet) Payout(ctx context.Context, creds *credentials.Credentials, playID, currency, trxID string, amount float64, report wallet.Report) (*wallet.Result, error) {
	args := m.Called(ctx, creds, playID, currency, trxID, amount, report)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Result), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishBetPlaced(ctx context.Context, e events.BetPlaced) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockPublisher) PublishBetSettled(ctx context.Context, e events.BetSettled) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockGameAPI struct {
	mock.Mock
}

func (m *MockGameAPI) Auth(creds *credentials.Credentials, playID, currency, gameID string, balance float64) (string, error) {
	args := m.Called(creds, playID, currency, gameID, balance)
	return args.String(0), args.Error(1)
}

func (m *MockGameAPI) VisualURL(creds *credentials.Credentials, playID, trxID string) (string, error) {
	args := m.Called(creds, playID, trxID)
	return args.String(0), args.Error(1)
}
