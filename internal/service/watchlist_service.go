package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/tradelog/trade-journal-backend/internal/model"
	"github.com/tradelog/trade-journal-backend/internal/repository"
)

// WatchlistService tracks tickers the user is watching for setups.
type WatchlistService struct {
	watchlistRepo *repository.WatchlistRepository
}

// NewWatchlistService creates a new WatchlistService.
func NewWatchlistService(watchlistRepo *repository.WatchlistRepository) *WatchlistService {
	return &WatchlistService{watchlistRepo: watchlistRepo}
}

// Add puts a ticker on the watchlist. Tickers are stored uppercase; a
// ticker already listed is rejected with apperrors.ErrDuplicateEntry.
func (s *WatchlistService) Add(userID, ticker, notes string) (model.WatchlistItem, error) {
	item := model.WatchlistItem{
		ID:     uuid.NewString(),
		UserID: userID,
		Ticker: strings.ToUpper(strings.TrimSpace(ticker)),
		Notes:  notes,
	}
	if err := s.watchlistRepo.Add(item); err != nil {
		return model.WatchlistItem{}, err
	}

	return item, nil
}

// List returns the watchlist ordered by ticker.
func (s *WatchlistService) List(userID string) ([]model.WatchlistItem, error) {
	return s.watchlistRepo.ListByUser(userID)
}

// Remove deletes a watchlist item.
func (s *WatchlistService) Remove(userID, itemID string) error {
	return s.watchlistRepo.Remove(userID, itemID)
}
