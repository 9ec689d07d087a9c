package services

import (
	"errors"
)

// Domain error kinds surfaced by the provider and launch services. Handlers
// map each kind to the provider response envelope; nothing here is retried
// automatically.
var (
	ErrInvalidRequest            = errors.New("invalid request")
	ErrPlayerNotFound            = errors.New("player not found")
	ErrInvalidSecretKey          = errors.New("invalid secret key")
	ErrTransactionAlreadyExists  = errors.New("transaction already exists")
	ErrTransactionNotFound       = errors.New("transaction not found")
	ErrTransactionAlreadySettled = errors.New("transaction already settled")
	ErrInsufficientFunds         = errors.New("insufficient funds")
	ErrWallet                    = errors.New("wallet error")
	ErrLaunchSessionNotFound     = errors.New("launch session not found")
)
