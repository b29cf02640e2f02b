package handlers

import (
	"net/http"

	"github.com/tradelog/trade-journal-backend/internal/api/middleware"
	"github.com/tradelog/trade-journal-backend/internal/service"
)

// AnalyticsHandler handles analytics HTTP requests
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// ByHour returns win-rate buckets keyed by entry hour.
//
// Endpoint: GET /api/analytics/by-hour
func (h *AnalyticsHandler) ByHour(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	buckets, err := h.analyticsService.PerformanceByHour(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, buckets)
}

// ByWeekday returns win-rate buckets keyed by entry weekday.
//
// Endpoint: GET /api/analytics/by-weekday
func (h *AnalyticsHandler) ByWeekday(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	buckets, err := h.analyticsService.PerformanceByWeekday(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, buckets)
}

// ByStrategy returns win-rate buckets keyed by strategy tag.
//
// Endpoint: GET /api/analytics/by-strategy
func (h *AnalyticsHandler) ByStrategy(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	buckets, err := h.analyticsService.PerformanceByStrategy(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, buckets)
}

// Excursions returns the MAE/MFE scatter points.
//
// Endpoint: GET /api/analytics/excursions
func (h *AnalyticsHandler) Excursions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	points, err := h.analyticsService.ExcursionScatter(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, points)
}

// Summary returns the headline performance figures.
//
// Endpoint: GET /api/analytics/summary
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	summary, err := h.analyticsService.Summary(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
