package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rjaysantos/seamless-provider-aix/internal/services"
)

// Launcher is the launch service surface the operator-side handlers need.
type Launcher interface {
	Launch(ctx context.Context, playID, currency, gameID string) (string, string, error)
	Visual(ctx context.Context, playID, trxID string) (string, error)
	LaunchQR(ctx context.Context, token string) ([]byte, error)
}

// LaunchHandler serves the operator-side endpoints: game launch, round
// replay and the launch QR handoff.
type LaunchHandler struct {
	service   Launcher
	validator *services.ValidationHelper
	log       *zap.Logger
}

func NewLaunchHandler(service Launcher, log *zap.Logger) *LaunchHandler {
	return &LaunchHandler{
		service:   service,
		validator: services.NewValidationHelper(),
		log:       log,
	}
}

type playRequest struct {
	PlayID   string `json:"playId" validate:"required"`
	Currency string `json:"currency" validate:"required,len=3"`
	GameID   string `json:"gameId"`
}

type visualRequest struct {
	PlayID string `json:"play_id" validate:"required"`
	TxnID  string `json:"txn_id" validate:"required"`
}

// Play starts a game session
// @Summary Launch a game session
// @Description Registers the player if absent and returns the signed game URL
// @Tags launch
// @Accept json
// @Produce json
// @Param request body playRequest true "Launch request"
// @Success 200 {object} object{url=string,token=string}
// @Failure 400 {object} services.ErrorResponse
// @Failure 502 {object} services.ErrorResponse
// @Router /aix/in/play [post]
func (h *LaunchHandler) Play(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if !h.decode(w, r, &req) {
		return
	}

	url, token, err := h.service.Launch(r.Context(), req.PlayID, req.Currency, req.GameID)
	if err != nil {
		if errors.Is(err, services.ErrWallet) {
			services.SendErrorResponse(w, "Wallet unavailable", http.StatusBadGateway, nil)
			return
		}
		h.log.Error("launch failed", zap.String("play_id", req.PlayID), zap.Error(err))
		services.SendErrorResponse(w, "Failed to launch game", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"url":   url,
		"token": token,
	})
}

// Visual returns the round replay URL
// @Summary Round replay URL
// @Description Returns the visual URL for a settled round
// @Tags launch
// @Accept json
// @Produce json
// @Param request body visualRequest true "Visual request"
// @Success 200 {object} object{url=string}
// @Failure 404 {object} services.ErrorResponse
// @Router /aix/in/visual [post]
func (h *LaunchHandler) Visual(w http.ResponseWriter, r *http.Request) {
	var req visualRequest
	if !h.decode(w, r, &req) {
		return
	}

	url, err := h.service.Visual(r.Context(), req.PlayID, req.TxnID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPlayerNotFound):
			services.SendErrorResponse(w, "Player not found", http.StatusNotFound, nil)
		case errors.Is(err, services.ErrTransactionNotFound):
			services.SendErrorResponse(w, "Transaction not found", http.StatusNotFound, nil)
		default:
			h.log.Error("visual failed", zap.String("play_id", req.PlayID), zap.Error(err))
			services.SendErrorResponse(w, "Failed to build visual URL", http.StatusInternalServerError, nil)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"url": url})
}

// PlayQR renders a stored launch session URL as a QR code
// @Summary Launch QR handoff
// @Description Returns the launch URL of a stored session as a QR PNG
// @Tags launch
// @Produce png
// @Param token path string true "Launch session token"
// @Success 200 {file} binary
// @Failure 404 {object} services.ErrorResponse
// @Router /aix/in/play/qr/{token} [get]
func (h *LaunchHandler) PlayQR(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		services.SendErrorResponse(w, "Token required", http.StatusBadRequest, nil)
		return
	}

	png, err := h.service.LaunchQR(r.Context(), token)
	if err != nil {
		if errors.Is(err, services.ErrLaunchSessionNotFound) {
			services.SendErrorResponse(w, "Invalid or expired launch token", http.StatusNotFound, nil)
			return
		}
		h.log.Error("launch qr failed", zap.Error(err))
		services.SendErrorResponse(w, "Failed to render QR", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *LaunchHandler) decode(w http.ResponseWriter, r *http.Request, req any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(req); err != nil {
		services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return false
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		services.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return false
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return false
	}

	return true
}
