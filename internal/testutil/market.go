package testutil

import (
	"context"
	"time"

	"github.com/tradelog/trade-journal-backend/internal/marketdata"
)

// StubMarket is a canned marketdata.Provider for service tests.
type StubMarket struct {
	Quotes    map[string]float64
	Bars      []marketdata.Bar
	QuotesErr error
	BarsErr   error
}

// GetBars returns the canned bar series.
func (s *StubMarket) GetBars(ctx context.Context, ticker string, startDate, endDate time.Time) ([]marketdata.Bar, error) {
	if s.BarsErr != nil {
		return nil, s.BarsErr
	}
	return s.Bars, nil
}

// GetQuotes returns the canned quote map.
func (s *StubMarket) GetQuotes(ctx context.Context, tickers []string) (map[string]float64, error) {
	if s.QuotesErr != nil {
		return nil, s.QuotesErr
	}
	return s.Quotes, nil
}

// MakeBar builds one OHLCV candle.
func MakeBar(day time.Time, open, high, low, closePrice float64) marketdata.Bar {
	return marketdata.Bar{
		Timestamp: day,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     closePrice,
		Volume:    1000,
	}
}
