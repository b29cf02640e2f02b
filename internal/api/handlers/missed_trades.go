package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradelog/trade-journal-backend/internal/api/middleware"
	"github.com/tradelog/trade-journal-backend/internal/api/request"
	"github.com/tradelog/trade-journal-backend/internal/api/response"
	"github.com/tradelog/trade-journal-backend/internal/model"
	"github.com/tradelog/trade-journal-backend/internal/service"
	"github.com/tradelog/trade-journal-backend/internal/validation"
)

// MissedTradeHandler handles missed-trade HTTP requests
type MissedTradeHandler struct {
	missedTradeService *service.MissedTradeService
}

// NewMissedTradeHandler creates a new MissedTradeHandler
func NewMissedTradeHandler(missedTradeService *service.MissedTradeService) *MissedTradeHandler {
	return &MissedTradeHandler{
		missedTradeService: missedTradeService,
	}
}

// List returns the user's missed trades, newest first.
//
// Endpoint: GET /api/missed-trades
func (h *MissedTradeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	missed, err := h.missedTradeService.List(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, missed)
}

// Create records a setup the user saw but did not take.
//
// Endpoint: POST /api/missed-trades
func (h *MissedTradeHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req request.MissedTrade
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateMissedTrade(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	missed, err := h.missedTradeService.Create(userID, service.MissedTradeInput{
		Ticker:     req.Ticker,
		Date:       date,
		Direction:  model.Direction(req.Direction),
		EntryPrice: req.EntryPrice,
		ExitPrice:  req.ExitPrice,
		Shares:     req.Shares,
		Reason:     req.Reason,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, missed)
}

// Delete removes a missed-trade record.
//
// Endpoint: DELETE /api/missed-trades/{uuid}
func (h *MissedTradeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	missedTradeID := chi.URLParam(r, "uuid")

	if err := h.missedTradeService.Delete(userID, missedTradeID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
