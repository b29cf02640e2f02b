package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tradelog/trade-journal-backend/internal/api/middleware"
	"github.com/tradelog/trade-journal-backend/internal/api/request"
	"github.com/tradelog/trade-journal-backend/internal/api/response"
	"github.com/tradelog/trade-journal-backend/internal/model"
	"github.com/tradelog/trade-journal-backend/internal/service"
	"github.com/tradelog/trade-journal-backend/internal/validation"
)

// TradeHandler handles trade lifecycle HTTP requests
type TradeHandler struct {
	tradeService *service.TradeService
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(tradeService *service.TradeService) *TradeHandler {
	return &TradeHandler{
		tradeService: tradeService,
	}
}

// List returns the user's trades, optionally filtered by status or ticker.
//
// Endpoint: GET /api/trades?status=open&ticker=AAPL
func (h *TradeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	filter := model.TradeFilter{
		Status: model.TradeStatus(r.URL.Query().Get("status")),
		Ticker: r.URL.Query().Get("ticker"),
	}

	trades, err := h.tradeService.ListTrades(userID, filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, trades)
}

// Get returns one trade with its full action log.
//
// Endpoint: GET /api/trades/{uuid}
func (h *TradeHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	tradeID := chi.URLParam(r, "uuid")

	detail, err := h.tradeService.GetTradeDetail(userID, tradeID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

// Open creates a new position with its opening buy action.
//
// Endpoint: POST /api/trades
func (h *TradeHandler) Open(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req request.OpenTrade
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateOpenTrade(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	entryDate, err := parseDate(req.EntryDate)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid entry date", err.Error())
		return
	}
	if entryDate.IsZero() {
		entryDate = time.Now()
	}

	trade, err := h.tradeService.OpenTrade(userID, service.OpenTradeInput{
		Ticker:       req.Ticker,
		AssetType:    model.AssetType(req.AssetType),
		Direction:    model.Direction(req.Direction),
		EntryPrice:   req.EntryPrice,
		Shares:       req.Shares,
		StopLoss:     req.StopLoss,
		Strategy:     req.Strategy,
		Setups:       req.Setups,
		Notes:        req.Notes,
		EntryDate:    entryDate,
		CurrentPrice: req.CurrentPrice,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, trade)
}

// AddShares adds on to an open position.
//
// Endpoint: POST /api/trades/{uuid}/add
func (h *TradeHandler) AddShares(w http.ResponseWriter, r *http.Request) {
	h.applyAction(w, r, h.tradeService.AddShares)
}

// SellShares trims or closes an open position.
//
// Endpoint: POST /api/trades/{uuid}/sell
func (h *TradeHandler) SellShares(w http.ResponseWriter, r *http.Request) {
	h.applyAction(w, r, h.tradeService.SellShares)
}

// UpdateJournal edits the trade's notes and mistakes text.
//
// Endpoint: PUT /api/trades/{uuid}/journal
func (h *TradeHandler) UpdateJournal(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	tradeID := chi.URLParam(r, "uuid")

	var req request.UpdateTradeJournal
	if !decodeJSON(w, r, &req) {
		return
	}

	trade, err := h.tradeService.UpdateJournalFields(userID, tradeID, req.Notes, req.Mistakes)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, trade)
}

type actionFunc func(ctx context.Context, userID, tradeID string, in service.TradeActionInput) (model.Trade, error)

func (h *TradeHandler) applyAction(w http.ResponseWriter, r *http.Request, apply actionFunc) {
	userID := middleware.UserID(r.Context())
	tradeID := chi.URLParam(r, "uuid")

	var req request.TradeAction
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateTradeAction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid action date", err.Error())
		return
	}
	if date.IsZero() {
		date = time.Now()
	}

	trade, err := apply(r.Context(), userID, tradeID, service.TradeActionInput{
		Price:        req.Price,
		Shares:       req.Shares,
		Date:         date,
		CurrentPrice: req.CurrentPrice,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, trade)
}
