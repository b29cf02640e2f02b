package handlers

import (
	"net/http"

	"github.com/tradelog/trade-journal-backend/internal/api/request"
	"github.com/tradelog/trade-journal-backend/internal/api/response"
	"github.com/tradelog/trade-journal-backend/internal/service"
	"github.com/tradelog/trade-journal-backend/internal/validation"
)

// AuthHandler handles registration and login HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// SessionResponse carries the authenticated user and their session token.
type SessionResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// Register creates a new account and returns a session token.
//
// Endpoint: POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.Register
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateRegister(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	user, token, err := h.authService.Register(req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, SessionResponse{
		UserID: user.ID,
		Email:  user.Email,
		Token:  token,
	})
}

// Login verifies credentials and returns a session token.
//
// Endpoint: POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.Login
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateLogin(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SessionResponse{
		UserID: user.ID,
		Email:  user.Email,
		Token:  token,
	})
}
