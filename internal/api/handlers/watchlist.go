package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradelog/trade-journal-backend/internal/api/middleware"
	"github.com/tradelog/trade-journal-backend/internal/api/request"
	"github.com/tradelog/trade-journal-backend/internal/api/response"
	"github.com/tradelog/trade-journal-backend/internal/service"
	"github.com/tradelog/trade-journal-backend/internal/validation"
)

// WatchlistHandler handles watchlist HTTP requests
type WatchlistHandler struct {
	watchlistService *service.WatchlistService
}

// NewWatchlistHandler creates a new WatchlistHandler
func NewWatchlistHandler(watchlistService *service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{
		watchlistService: watchlistService,
	}
}

// List returns the watchlist ordered by ticker.
//
// Endpoint: GET /api/watchlist
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	items, err := h.watchlistService.List(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// Add puts a ticker on the watchlist.
//
// Endpoint: POST /api/watchlist
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req request.AddWatchlistItem
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateAddWatchlistItem(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	item, err := h.watchlistService.Add(userID, req.Ticker, req.Notes)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// Remove deletes a watchlist item.
//
// Endpoint: DELETE /api/watchlist/{uuid}
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	itemID := chi.URLParam(r, "uuid")

	if err := h.watchlistService.Remove(userID, itemID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
