package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/rjaysantos/seamless-provider-aix/internal/metrics"
	"github.com/rjaysantos/seamless-provider-aix/internal/services"
)

// Provider error codes returned in the callback envelope.
const (
	codeAccessDenied      = "ACCESS_DENIED"
	codeInvalidUser       = "INVALID_USER"
	codeDuplicateDebit    = "DUPLICATE_DEBIT"
	codeInvalidDebit      = "INVALID_DEBIT"
	codeDuplicateCredit   = "DUPLICATE_CREDIT"
	codeInsufficientFunds = "INSUFFICIENT_FUNDS"
	codeUnknownError      = "UNKNOWN_ERROR"
)

// Provider is the settlement coordinator surface the callback handlers need.
type Provider interface {
	GetBalance(ctx context.Context, userID, secretKey string) (float64, error)
	Bet(ctx context.Context, userID, secretKey, trxID, roundID, gameCode string, amount float64, debitTime string) (float64, error)
	Settle(ctx context.Context, userID, secretKey, trxID, gameCode string, amount float64, creditTime string) (float64, error)
}

// ProviderHandler serves the inbound provider callbacks. Responses always
// use HTTP 200 with the provider envelope: {"status":1,"balance":...} on
// success, {"status":0,"error":"<CODE>"} on failure.
type ProviderHandler struct {
	service   Provider
	validator *services.ValidationHelper
	log       *zap.Logger
}

func NewProviderHandler(service Provider, log *zap.Logger) *ProviderHandler {
	return &ProviderHandler{
		service:   service,
		validator: services.NewValidationHelper(),
		log:       log,
	}
}

type balanceRequest struct {
	UserID string `json:"user_id" validate:"required"`
	PrdID  int    `json:"prd_id" validate:"required"`
}

type debitRequest struct {
	UserID    string   `json:"user_id" validate:"required"`
	Amount    *float64 `json:"amount" validate:"required,gt=0"`
	PrdID     int      `json:"prd_id" validate:"required"`
	TxnID     string   `json:"txn_id" validate:"required"`
	RoundID   string   `json:"round_id" validate:"required"`
	DebitTime string   `json:"debit_time" validate:"required,providertime"`
}

type creditRequest struct {
	UserID     string   `json:"user_id" validate:"required"`
	Amount     *float64 `json:"amount" validate:"required,gte=0"`
	PrdID      int      `json:"prd_id"`
	GameID     int      `json:"game_id"`
	TxnID      string   `json:"txn_id" validate:"required"`
	CreditTime string   `json:"credit_time" validate:"required,providertime"`
}

// Balance handles the wallet balance callback
// @Summary Provider balance callback
// @Description Returns the player's wallet balance
// @Tags provider
// @Accept json
// @Produce json
// @Param secret-key header string true "Currency-scoped callback secret"
// @Param request body balanceRequest true "Balance request"
// @Success 200 {object} object{status=int,balance=number}
// @Router /aix/prov/balance [post]
func (h *ProviderHandler) Balance(w http.ResponseWriter, r *http.Request) {
	var req balanceRequest
	if !h.decode(w, r, &req, "balance") {
		return
	}

	balance, err := h.service.GetBalance(r.Context(), req.UserID, r.Header.Get("secret-key"))
	if err != nil {
		h.writeError(w, "balance", err)
		return
	}

	h.writeSuccess(w, "balance", balance)
}

// Debit handles the bet callback
// @Summary Provider debit callback
// @Description Places a bet: creates the ledger record and debits the wallet
// @Tags provider
// @Accept json
// @Produce json
// @Param secret-key header string true "Currency-scoped callback secret"
// @Param request body debitRequest true "Debit request"
// @Success 200 {object} object{status=int,balance=number}
// @Router /aix/prov/debit [post]
func (h *ProviderHandler) Debit(w http.ResponseWriter, r *http.Request) {
	var req debitRequest
	if !h.decode(w, r, &req, "debit") {
		return
	}

	balance, err := h.service.Bet(r.Context(), req.UserID, r.Header.Get("secret-key"),
		req.TxnID, req.RoundID, strconv.Itoa(req.PrdID), *req.Amount, req.DebitTime)
	if err != nil {
		h.writeError(w, "debit", err)
		return
	}

	h.writeSuccess(w, "debit", balance)
}

// Credit handles the settle callback
// @Summary Provider credit callback
// @Description Settles a bet: writes the win amount and credits the wallet
// @Tags provider
// @Accept json
// @Produce json
// @Param secret-key header string true "Currency-scoped callback secret"
// @Param request body creditRequest true "Credit request"
// @Success 200 {object} object{status=int,balance=number}
// @Router /aix/prov/credit [post]
func (h *ProviderHandler) Credit(w http.ResponseWriter, r *http.Request) {
	var req creditRequest
	if !h.decode(w, r, &req, "credit") {
		return
	}

	// game_id is an accepted alias for prd_id on credit callbacks.
	prdID := req.PrdID
	if prdID == 0 {
		prdID = req.GameID
	}
	if prdID == 0 {
		metrics.CallbacksTotal.WithLabelValues("credit", codeAccessDenied).Inc()
		writeEnvelopeError(w, codeAccessDenied)
		return
	}

	balance, err := h.service.Settle(r.Context(), req.UserID, r.Header.Get("secret-key"),
		req.TxnID, strconv.Itoa(prdID), *req.Amount, req.CreditTime)
	if err != nil {
		h.writeError(w, "credit", err)
		return
	}

	h.writeSuccess(w, "credit", balance)
}

// decode parses and validates a callback body. On failure it writes the
// ACCESS_DENIED envelope and returns false.
func (h *ProviderHandler) decode(w http.ResponseWriter, r *http.Request, req any, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		metrics.CallbacksTotal.WithLabelValues(op, codeAccessDenied).Inc()
		writeEnvelopeError(w, codeAccessDenied)
		return false
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		metrics.CallbacksTotal.WithLabelValues(op, codeAccessDenied).Inc()
		writeEnvelopeError(w, codeAccessDenied)
		return false
	}

	return true
}

func (h *ProviderHandler) writeSuccess(w http.ResponseWriter, op string, balance float64) {
	metrics.CallbacksTotal.WithLabelValues(op, "ok").Inc()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  1,
		"balance": balance,
	})
}

func (h *ProviderHandler) writeError(w http.ResponseWriter, op string, err error) {
	code := errorCode(err)
	if code == codeUnknownError {
		h.log.Error("callback failed", zap.String("op", op), zap.Error(err))
	}
	metrics.CallbacksTotal.WithLabelValues(op, code).Inc()
	writeEnvelopeError(w, code)
}

func writeEnvelopeError(w http.ResponseWriter, code string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status": 0,
		"error":  code,
	})
}

// errorCode maps each domain error kind to its provider envelope code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, services.ErrInvalidRequest):
		return codeAccessDenied
	case errors.Is(err, services.ErrInvalidSecretKey):
		return codeAccessDenied
	case errors.Is(err, services.ErrPlayerNotFound):
		return codeInvalidUser
	case errors.Is(err, services.ErrTransactionAlreadyExists):
		return codeDuplicateDebit
	case errors.Is(err, services.ErrTransactionNotFound):
		return codeInvalidDebit
	case errors.Is(err, services.ErrTransactionAlreadySettled):
		return codeDuplicateCredit
	case errors.Is(err, services.ErrInsufficientFunds):
		return codeInsufficientFunds
	default:
		return codeUnknownError
	}
}
