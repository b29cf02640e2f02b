package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tradelog/trade-journal-backend/internal/api/middleware"
)

type stubVerifier struct {
	userID string
	err    error
}

func (v stubVerifier) VerifyToken(token string) (string, error) {
	if v.err != nil {
		return "", v.err
	}
	return v.userID, nil
}

// TestRequireAuth tests the bearer-token gate.
//
// WHY: Every user-scoped route depends on this middleware rejecting
// unauthenticated requests and handing handlers the verified user ID.
func TestRequireAuth(t *testing.T) {
	t.Run("valid token reaches the handler with the user ID", func(t *testing.T) {
		var gotUserID string
		handler := middleware.RequireAuth(stubVerifier{userID: "user-123"})(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID = middleware.UserID(r.Context())
			}))

		req := httptest.NewRequest(http.MethodGet, "/api/trades", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", rec.Code)
		}
		if gotUserID != "user-123" {
			t.Errorf("Expected user ID user-123 in context, got %q", gotUserID)
		}
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		called := false
		handler := middleware.RequireAuth(stubVerifier{userID: "user-123"})(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

		req := httptest.NewRequest(http.MethodGet, "/api/trades", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", rec.Code)
		}
		if called {
			t.Error("Expected the handler not to be called")
		}
	})

	t.Run("non-bearer scheme is rejected", func(t *testing.T) {
		handler := middleware.RequireAuth(stubVerifier{userID: "user-123"})(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/api/trades", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", rec.Code)
		}
	})

	t.Run("failed verification is rejected", func(t *testing.T) {
		handler := middleware.RequireAuth(stubVerifier{err: errors.New("expired")})(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/api/trades", nil)
		req.Header.Set("Authorization", "Bearer stale-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", rec.Code)
		}
	})
}

// TestUserID tests context fallback behavior.
func TestUserID(t *testing.T) {
	t.Run("empty string without auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if got := middleware.UserID(req.Context()); got != "" {
			t.Errorf("Expected empty user ID, got %q", got)
		}
	})
}
