package handlers

import (
	"net/http"

	"github.com/tradelog/trade-journal-backend/internal/api/middleware"
	"github.com/tradelog/trade-journal-backend/internal/api/request"
	"github.com/tradelog/trade-journal-backend/internal/api/response"
	"github.com/tradelog/trade-journal-backend/internal/model"
	"github.com/tradelog/trade-journal-backend/internal/service"
)

// CapitalHandler handles capital engine HTTP requests
type CapitalHandler struct {
	capitalService *service.CapitalService
}

// NewCapitalHandler creates a new CapitalHandler
func NewCapitalHandler(capitalService *service.CapitalService) *CapitalHandler {
	return &CapitalHandler{
		capitalService: capitalService,
	}
}

// Current returns live capital with its P&L breakdown.
//
// Endpoint: GET /api/capital/current
func (h *CapitalHandler) Current(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	current, err := h.capitalService.CalculateCurrentCapital(r.Context(), userID, nil)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, current)
}

// Record upserts a manual capital snapshot for a day.
//
// Endpoint: POST /api/capital
func (h *CapitalHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req request.RecordCapitalChange
	if !decodeJSON(w, r, &req) {
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	metadata := model.ChangeMetadata{Kind: model.ChangeManual}
	change, err := h.capitalService.RecordCapitalChange(userID, req.Amount, metadata, date)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, change)
}

// Drawdown returns the watermark-scan drawdown metrics.
//
// Endpoint: GET /api/capital/drawdown
func (h *CapitalHandler) Drawdown(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	metrics, err := h.capitalService.CalculateDrawdownMetrics(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, metrics)
}

// EquityCurve returns the full two-phase equity curve.
//
// Endpoint: GET /api/capital/equity-curve
func (h *CapitalHandler) EquityCurve(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	points, err := h.capitalService.CalculateDetailedEquityCurve(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, points)
}

// DailyStats returns the OHLC summary of one day's capital activity.
//
// Endpoint: GET /api/capital/daily?date=2024-03-01
func (h *CapitalHandler) DailyStats(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		response.RespondError(w, http.StatusBadRequest, "date query parameter is required", "")
		return
	}
	date, err := parseDate(dateParam)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	stats, err := h.capitalService.GetDailyCapitalStats(userID, date)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// ProcessHistoricalResponse reports how many days the backfill wrote.
type ProcessHistoricalResponse struct {
	DaysProcessed int `json:"daysProcessed"`
}

// ProcessHistorical backfills capital snapshots from closed trades.
//
// Endpoint: POST /api/capital/process-historical
func (h *CapitalHandler) ProcessHistorical(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	days, err := h.capitalService.ProcessHistoricalTrades(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ProcessHistoricalResponse{DaysProcessed: days})
}

// Snapshots returns raw capital snapshot rows, optionally bounded.
//
// Endpoint: GET /api/capital/snapshots?start_date=...&end_date=...
func (h *CapitalHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	startDate, err := parseDate(r.URL.Query().Get("start_date"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid start_date", err.Error())
		return
	}
	endDate, err := parseDate(r.URL.Query().Get("end_date"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid end_date", err.Error())
		return
	}
	if !startDate.IsZero() && !endDate.IsZero() && endDate.Before(startDate) {
		response.RespondError(w, http.StatusBadRequest, "end_date precedes start_date", "")
		return
	}

	changes, err := h.capitalService.ListSnapshots(userID, startDate, endDate)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, changes)
}
