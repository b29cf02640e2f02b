package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/tradelog/trade-journal-backend/internal/model"
	"github.com/tradelog/trade-journal-backend/internal/repository"
)

// MissedTradeService logs setups the user saw but did not take.
type MissedTradeService struct {
	missedRepo *repository.MissedTradeRepository
}

// NewMissedTradeService creates a new MissedTradeService.
func NewMissedTradeService(missedRepo *repository.MissedTradeRepository) *MissedTradeService {
	return &MissedTradeService{missedRepo: missedRepo}
}

// MissedTradeInput carries the fields of a missed-trade record.
type MissedTradeInput struct {
	Ticker     string
	Date       time.Time
	Direction  model.Direction
	EntryPrice float64
	ExitPrice  float64
	Shares     float64
	Reason     string
}

// Create records a missed trade.
func (s *MissedTradeService) Create(userID string, in MissedTradeInput) (model.MissedTrade, error) {
	mt := model.MissedTrade{
		ID:         uuid.NewString(),
		UserID:     userID,
		Ticker:     in.Ticker,
		Date:       in.Date,
		Direction:  in.Direction,
		EntryPrice: in.EntryPrice,
		ExitPrice:  in.ExitPrice,
		Shares:     in.Shares,
		Reason:     in.Reason,
	}
	if err := s.missedRepo.Create(mt); err != nil {
		return model.MissedTrade{}, err
	}

	return mt, nil
}

// List returns the user's missed trades, newest first.
func (s *MissedTradeService) List(userID string) ([]model.MissedTrade, error) {
	return s.missedRepo.ListByUser(userID)
}

// Delete removes a missed-trade record.
func (s *MissedTradeService) Delete(userID, missedTradeID string) error {
	return s.missedRepo.Delete(userID, missedTradeID)
}
