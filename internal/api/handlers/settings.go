package handlers

import (
	"net/http"

	"github.com/tradelog/trade-journal-backend/internal/api/middleware"
	"github.com/tradelog/trade-journal-backend/internal/api/request"
	"github.com/tradelog/trade-journal-backend/internal/service"
)

// SettingsHandler handles user-settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// Get returns the user's settings, creating defaults on first access.
//
// Endpoint: GET /api/settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	settings, err := h.settingsService.GetOrCreate(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, settings)
}

// Update changes the provided settings fields.
//
// Endpoint: PUT /api/settings
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req request.UpdateSettings
	if !decodeJSON(w, r, &req) {
		return
	}

	settings, err := h.settingsService.Update(userID, service.UpdateInput{
		StartingCash: req.StartingCash,
		DisplayName:  req.DisplayName,
		Timezone:     req.Timezone,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, settings)
}
