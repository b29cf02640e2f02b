package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	custommiddleware "github.com/tradelog/trade-journal-backend/internal/api/middleware"
)

// NewAuthedRequest creates an HTTP request carrying an authenticated user ID
// and optional chi URL parameters, bypassing the auth middleware.
//
// Example:
//
//	req := testutil.NewAuthedRequest(
//	    http.MethodGet,
//	    "/api/trades/123-456",
//	    user.ID,
//	    map[string]string{"uuid": "123-456"},
//	)
func NewAuthedRequest(method, path, userID string, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	ctx := custommiddleware.WithUserID(req.Context(), userID)

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for key, value := range params {
			rctx.URLParams.Add(key, value)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}

	return req.WithContext(ctx)
}

// NewAuthedJSONRequest is NewAuthedRequest with a JSON body.
func NewAuthedJSONRequest(t *testing.T, method, path, userID string, params map[string]string, body any) *http.Request {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	ctx := custommiddleware.WithUserID(req.Context(), userID)

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for key, value := range params {
			rctx.URLParams.Add(key, value)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}

	return req.WithContext(ctx)
}

// DecodeResponse parses a JSON response body into dst.
func DecodeResponse(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()

	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
}
