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

// JournalHandler handles daily-journal HTTP requests
type JournalHandler struct {
	journalService *service.JournalService
}

// NewJournalHandler creates a new JournalHandler
func NewJournalHandler(journalService *service.JournalService) *JournalHandler {
	return &JournalHandler{
		journalService: journalService,
	}
}

// List returns the user's journal entries, newest first.
//
// Endpoint: GET /api/journal
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	entries, err := h.journalService.List(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// Get returns one journal entry.
//
// Endpoint: GET /api/journal/{uuid}
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	entryID := chi.URLParam(r, "uuid")

	entry, err := h.journalService.Get(userID, entryID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, entry)
}

// Create writes a new journal entry for a day.
//
// Endpoint: POST /api/journal
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req request.JournalEntry
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateJournalEntry(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	entry, err := h.journalService.Create(userID, service.JournalInput{
		Date:    date,
		Content: req.Content,
		Mood:    req.Mood,
		Rating:  req.Rating,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// Update overwrites an entry's content, mood, and rating.
//
// Endpoint: PUT /api/journal/{uuid}
func (h *JournalHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	entryID := chi.URLParam(r, "uuid")

	var req request.JournalEntry
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateJournalEntry(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	entry, err := h.journalService.Update(userID, entryID, service.JournalInput{
		Content: req.Content,
		Mood:    req.Mood,
		Rating:  req.Rating,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, entry)
}

// Delete removes a journal entry.
//
// Endpoint: DELETE /api/journal/{uuid}
func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	entryID := chi.URLParam(r, "uuid")

	if err := h.journalService.Delete(userID, entryID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
