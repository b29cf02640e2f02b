package marketdata_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tradelog/trade-journal-backend/internal/apperrors"
	"github.com/tradelog/trade-journal-backend/internal/cache"
	"github.com/tradelog/trade-journal-backend/internal/marketdata"
)

type relayRequest struct {
	Type   string `json:"type"`
	Ticker string `json:"ticker"`
}

// newRelay starts a stub relay server that answers per-ticker via the given
// handler and counts requests.
func newRelay(t *testing.T, handler func(w http.ResponseWriter, req relayRequest)) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		var req relayRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode relay request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		handler(w, req)
	}))
	t.Cleanup(server.Close)

	return server, &calls
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

// TestClient_GetBars tests OHLCV fetching and caching.
//
// WHY: Chart loads re-request identical ranges; the cache must absorb the
// repeats, and an empty series must surface as ErrNoBars rather than a nil
// slice the excursion math would silently accept.
func TestClient_GetBars(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)

	t.Run("parses the bar series", func(t *testing.T) {
		server, _ := newRelay(t, func(w http.ResponseWriter, req relayRequest) {
			writeJSON(w, map[string]any{
				"bars": []map[string]any{
					{"timestamp": "2024-03-01T00:00:00Z", "open": 100, "high": 120, "low": 85, "close": 110, "volume": 5000},
				},
			})
		})
		client := marketdata.NewClient(server.URL, nil)

		bars, err := client.GetBars(context.Background(), "AAPL", start, end)
		if err != nil {
			t.Fatalf("GetBars() returned unexpected error: %v", err)
		}

		if len(bars) != 1 {
			t.Fatalf("Expected 1 bar, got %d", len(bars))
		}
		if bars[0].High != 120 || bars[0].Low != 85 {
			t.Errorf("Expected high 120 and low 85, got %v/%v", bars[0].High, bars[0].Low)
		}
	})

	t.Run("identical range is served from cache", func(t *testing.T) {
		server, calls := newRelay(t, func(w http.ResponseWriter, req relayRequest) {
			writeJSON(w, map[string]any{
				"bars": []map[string]any{
					{"timestamp": "2024-03-01T00:00:00Z", "open": 100, "high": 120, "low": 85, "close": 110, "volume": 5000},
				},
			})
		})
		client := marketdata.NewClient(server.URL, cache.New[[]marketdata.Bar](8, time.Minute))

		for i := 0; i < 3; i++ {
			if _, err := client.GetBars(context.Background(), "AAPL", start, end); err != nil {
				t.Fatalf("GetBars() call %d returned unexpected error: %v", i, err)
			}
		}

		if got := calls.Load(); got != 1 {
			t.Errorf("Expected 1 relay call, got %d", got)
		}
	})

	t.Run("empty series reports ErrNoBars", func(t *testing.T) {
		server, _ := newRelay(t, func(w http.ResponseWriter, req relayRequest) {
			writeJSON(w, map[string]any{"bars": []any{}})
		})
		client := marketdata.NewClient(server.URL, nil)

		_, err := client.GetBars(context.Background(), "AAPL", start, end)
		if !errors.Is(err, apperrors.ErrNoBars) {
			t.Errorf("Expected ErrNoBars, got %v", err)
		}
	})

	t.Run("relay-level error is surfaced", func(t *testing.T) {
		server, _ := newRelay(t, func(w http.ResponseWriter, req relayRequest) {
			writeJSON(w, map[string]any{"error": "unknown ticker"})
		})
		client := marketdata.NewClient(server.URL, nil)

		if _, err := client.GetBars(context.Background(), "ZZZZ", start, end); err == nil {
			t.Error("Expected an error from the relay error field")
		}
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		server, _ := newRelay(t, func(w http.ResponseWriter, req relayRequest) {
			w.WriteHeader(http.StatusBadGateway)
		})
		client := marketdata.NewClient(server.URL, nil)

		if _, err := client.GetBars(context.Background(), "AAPL", start, end); err == nil {
			t.Error("Expected an error for a 502 response")
		}
	})
}

// TestClient_GetQuotes tests the concurrent batch fetch.
//
// WHY: One bad ticker must not poison the batch, but an all-fail batch has
// to be distinguishable so the capital engine can fall back wholesale.
func TestClient_GetQuotes(t *testing.T) {
	t.Run("returns a price per ticker", func(t *testing.T) {
		prices := map[string]float64{"AAPL": 155, "MSFT": 410}
		server, _ := newRelay(t, func(w http.ResponseWriter, req relayRequest) {
			writeJSON(w, map[string]any{"ticker": req.Ticker, "price": prices[req.Ticker]})
		})
		client := marketdata.NewClient(server.URL, nil)

		quotes, err := client.GetQuotes(context.Background(), []string{"AAPL", "MSFT"})
		if err != nil {
			t.Fatalf("GetQuotes() returned unexpected error: %v", err)
		}

		if quotes["AAPL"] != 155 || quotes["MSFT"] != 410 {
			t.Errorf("Expected quotes 155 and 410, got %v", quotes)
		}
	})

	t.Run("a failing ticker is absent, not fatal", func(t *testing.T) {
		server, _ := newRelay(t, func(w http.ResponseWriter, req relayRequest) {
			if req.Ticker == "ZZZZ" {
				writeJSON(w, map[string]any{"error": "unknown ticker"})
				return
			}
			writeJSON(w, map[string]any{"ticker": req.Ticker, "price": 155.0})
		})
		client := marketdata.NewClient(server.URL, nil)

		quotes, err := client.GetQuotes(context.Background(), []string{"AAPL", "ZZZZ"})
		if err != nil {
			t.Fatalf("GetQuotes() returned unexpected error: %v", err)
		}

		if _, ok := quotes["ZZZZ"]; ok {
			t.Error("Expected the failing ticker to be absent")
		}
		if quotes["AAPL"] != 155 {
			t.Errorf("Expected AAPL quote 155, got %v", quotes["AAPL"])
		}
	})

	t.Run("every ticker failing reports ErrQuotesUnavailable", func(t *testing.T) {
		server, _ := newRelay(t, func(w http.ResponseWriter, req relayRequest) {
			writeJSON(w, map[string]any{"error": "relay offline"})
		})
		client := marketdata.NewClient(server.URL, nil)

		_, err := client.GetQuotes(context.Background(), []string{"AAPL", "MSFT"})
		if !errors.Is(err, apperrors.ErrQuotesUnavailable) {
			t.Errorf("Expected ErrQuotesUnavailable, got %v", err)
		}
	})

	t.Run("empty ticker list short-circuits", func(t *testing.T) {
		server, calls := newRelay(t, func(w http.ResponseWriter, req relayRequest) {})
		client := marketdata.NewClient(server.URL, nil)

		quotes, err := client.GetQuotes(context.Background(), nil)
		if err != nil {
			t.Fatalf("GetQuotes() returned unexpected error: %v", err)
		}

		if len(quotes) != 0 {
			t.Errorf("Expected an empty map, got %v", quotes)
		}
		if calls.Load() != 0 {
			t.Errorf("Expected no relay calls, got %d", calls.Load())
		}
	})
}

// TestHighLow tests the series reduction used for excursions.
func TestHighLow(t *testing.T) {
	t.Run("finds the extremes across bars", func(t *testing.T) {
		bars := []marketdata.Bar{
			{High: 110, Low: 95},
			{High: 120, Low: 85},
			{High: 115, Low: 100},
		}

		high, low, ok := marketdata.HighLow(bars)
		if !ok {
			t.Fatal("Expected ok for a non-empty series")
		}
		if high != 120 || low != 85 {
			t.Errorf("Expected 120/85, got %v/%v", high, low)
		}
	})

	t.Run("empty series is not ok", func(t *testing.T) {
		if _, _, ok := marketdata.HighLow(nil); ok {
			t.Error("Expected ok to be false for an empty series")
		}
	})
}
