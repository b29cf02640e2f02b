package marketdata

import "time"

// Bar is one OHLCV candle returned by the market-data relay.
type Bar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// barsRequest is the relay's POST body for OHLCV series.
type barsRequest struct {
	Type      string `json:"type"`
	Ticker    string `json:"ticker"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// quoteRequest is the relay's POST body for a live quote.
type quoteRequest struct {
	Type   string `json:"type"`
	Ticker string `json:"ticker"`
}

type quoteResponse struct {
	Ticker string  `json:"ticker"`
	Price  float64 `json:"price"`
	Error  *string `json:"error,omitempty"`
}

type barsResponse struct {
	Bars  []Bar   `json:"bars"`
	Error *string `json:"error,omitempty"`
}

// HighLow returns the highest high and lowest low across a bar series.
// The second return value is false for an empty series.
func HighLow(bars []Bar) (high, low float64, ok bool) {
	if len(bars) == 0 {
		return 0, 0, false
	}
	high = bars[0].High
	low = bars[0].Low
	for _, b := range bars[1:] {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return high, low, true
}
