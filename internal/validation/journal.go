package validation

import (
	"fmt"

	"github.com/tradelog/trade-journal-backend/internal/api/request"
)

// ValidateJournalEntry checks a journal create/update request.
func ValidateJournalEntry(req request.JournalEntry) error {
	if err := ValidateRequired("content", req.Content); err != nil {
		return err
	}
	if req.Rating < 1 || req.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", req.Rating)
	}
	return nil
}

// ValidateMissedTrade checks a missed-trade request.
func ValidateMissedTrade(req request.MissedTrade) error {
	if err := ValidateRequired("ticker", req.Ticker); err != nil {
		return err
	}
	if err := ValidatePositive("entryPrice", req.EntryPrice); err != nil {
		return err
	}
	return ValidateNonNegative("shares", req.Shares)
}

// ValidateAddWatchlistItem checks a watchlist add request.
func ValidateAddWatchlistItem(req request.AddWatchlistItem) error {
	return ValidateRequired("ticker", req.Ticker)
}
