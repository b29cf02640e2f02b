package marketdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tradelog/trade-journal-backend/internal/apperrors"
	"github.com/tradelog/trade-journal-backend/internal/cache"
)

// Provider is the market-data surface the services depend on. The concrete
// Client talks to the relay; tests substitute a stub.
type Provider interface {
	GetBars(ctx context.Context, ticker string, startDate, endDate time.Time) ([]Bar, error)
	GetQuotes(ctx context.Context, tickers []string) (map[string]float64, error)
}

// Client fetches OHLCV series and live quotes from the market-data relay.
// The relay accepts POST requests with a typed JSON body and answers with
// evaluated spreadsheet data; this client only consumes its HTTP contract.
//
// OHLCV responses are cached (bounded, TTL) because chart loads re-request
// identical ranges. Quotes are never cached: staleness handling for quotes
// belongs to the capital engine's fallback policy.
type Client struct {
	httpClient *http.Client
	baseURL    string
	barCache   *cache.Cache[[]Bar]
}

// NewClient creates a relay client. barCache may be nil to disable caching.
func NewClient(baseURL string, barCache *cache.Cache[[]Bar]) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		barCache:   barCache,
	}
}

// GetBars fetches the OHLCV series for a ticker between startDate and
// endDate (inclusive, day granularity). Returns apperrors.ErrNoBars when the
// relay answers with an empty series.
func (c *Client) GetBars(ctx context.Context, ticker string, startDate, endDate time.Time) ([]Bar, error) {
	cacheKey := fmt.Sprintf("%s|%s|%s", ticker, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	if c.barCache != nil {
		if bars, ok := c.barCache.Get(cacheKey); ok {
			return bars, nil
		}
	}

	reqBody := barsRequest{
		Type:      "ohlcv",
		Ticker:    ticker,
		StartDate: startDate.Format("2006-01-02"),
		EndDate:   endDate.Format("2006-01-02"),
	}

	var response barsResponse
	if err := c.post(ctx, reqBody, &response); err != nil {
		return nil, err
	}
	if response.Error != nil {
		return nil, fmt.Errorf("market data error for %s: %s", ticker, *response.Error)
	}
	if len(response.Bars) == 0 {
		return nil, fmt.Errorf("%w for %s", apperrors.ErrNoBars, ticker)
	}

	if c.barCache != nil {
		c.barCache.Set(cacheKey, response.Bars)
	}

	return response.Bars, nil
}

// GetQuote fetches the live price for a single ticker.
func (c *Client) GetQuote(ctx context.Context, ticker string) (float64, error) {
	var response quoteResponse
	if err := c.post(ctx, quoteRequest{Type: "market_data", Ticker: ticker}, &response); err != nil {
		return 0, err
	}
	if response.Error != nil {
		return 0, fmt.Errorf("quote error for %s: %s", ticker, *response.Error)
	}

	return response.Price, nil
}

// GetQuotes fetches live prices for a batch of tickers concurrently. A
// ticker whose fetch fails is simply absent from the returned map so the
// caller can fall back per trade; the call errors only when every ticker
// failed (callers then fall back wholesale to stale values).
func (c *Client) GetQuotes(ctx context.Context, tickers []string) (map[string]float64, error) {
	if len(tickers) == 0 {
		return map[string]float64{}, nil
	}

	var mu sync.Mutex
	quotes := make(map[string]float64, len(tickers))

	g, ctx := errgroup.WithContext(ctx)
	for _, ticker := range tickers {
		ticker := ticker
		g.Go(func() error {
			price, err := c.GetQuote(ctx, ticker)
			if err != nil {
				log.Printf("quote fetch failed for %s: %v", ticker, err)
				return nil
			}
			mu.Lock()
			quotes[ticker] = price
			mu.Unlock()
			return nil
		})
	}

	// Individual failures are swallowed above; Wait only propagates context
	// cancellation.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(quotes) == 0 {
		return nil, apperrors.ErrQuotesUnavailable
	}

	return quotes, nil
}

func (c *Client) post(ctx context.Context, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal relay request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read relay response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("relay returned status %d: %s", resp.StatusCode, string(data))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse relay response: %w", err)
	}

	return nil
}
