package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/tradelog/trade-journal-backend/internal/apperrors"
	"github.com/tradelog/trade-journal-backend/internal/cache"
	"github.com/tradelog/trade-journal-backend/internal/marketdata"
	"github.com/tradelog/trade-journal-backend/internal/model"
	"github.com/tradelog/trade-journal-backend/internal/repository"
)

// TradeService handles the trade lifecycle: opening positions, adding on,
// trimming, and closing, plus the per-position arithmetic (average cost,
// realized/unrealized P&L, tiered open risk, MAE/MFE on close).
type TradeService struct {
	tradeRepo   *repository.TradeRepository
	market      marketdata.Provider
	detailCache *cache.Cache[model.TradeDetail]
}

// NewTradeService creates a new TradeService. market may be nil, in which
// case quote refreshes and MAE/MFE lookups are skipped; detailCache may be
// nil to disable trade-detail caching.
func NewTradeService(
	tradeRepo *repository.TradeRepository,
	market marketdata.Provider,
	detailCache *cache.Cache[model.TradeDetail],
) *TradeService {
	return &TradeService{
		tradeRepo:   tradeRepo,
		market:      market,
		detailCache: detailCache,
	}
}

// OpenTradeInput carries the fields of a new position.
type OpenTradeInput struct {
	Ticker       string
	AssetType    model.AssetType
	Direction    model.Direction
	EntryPrice   float64
	Shares       float64
	StopLoss     float64
	Strategy     string
	Setups       []string
	Notes        string
	EntryDate    time.Time
	CurrentPrice float64 // 0 means "at entry price"
}

// TradeActionInput carries one buy or sell event against an open position.
type TradeActionInput struct {
	Price        float64
	Shares       float64
	Date         time.Time
	CurrentPrice float64 // add-on only; 0 means "fetch or keep last known"
}

// OpenTrade creates a new position with its opening buy action. Average
// cost starts at the entry price; the 33%/66% stop tiers and the blended
// open-risk percentage are fixed here and never recomputed.
func (s *TradeService) OpenTrade(userID string, in OpenTradeInput) (model.Trade, error) {
	currentPrice := in.CurrentPrice
	if currentPrice == 0 {
		currentPrice = in.EntryPrice
	}

	stop33, stop66 := stopLevels(in.EntryPrice, in.StopLoss)
	unrealized := unrealizedPnl(in.Direction, in.EntryPrice, currentPrice, in.Shares)

	trade := model.Trade{
		ID:              uuid.NewString(),
		UserID:          userID,
		Ticker:          in.Ticker,
		AssetType:       in.AssetType,
		Direction:       in.Direction,
		Status:          model.StatusOpen,
		EntryPrice:      in.EntryPrice,
		EntryDate:       in.EntryDate,
		TotalShares:     in.Shares,
		RemainingShares: in.Shares,
		AverageCost:     in.EntryPrice,
		StopLoss:        in.StopLoss,
		StopLoss33:      stop33,
		StopLoss66:      stop66,
		OpenRiskPct:     round2(openRiskPct(in.EntryPrice, in.StopLoss)),
		UnrealizedPnl:   round2(unrealized),
		Strategy:        in.Strategy,
		Setups:          in.Setups,
		Notes:           in.Notes,
	}
	if in.Setups == nil {
		trade.Setups = []string{}
	}
	if basis := trade.AverageCost * trade.TotalShares; basis != 0 {
		trade.UnrealizedPnlPct = round2(unrealized / basis * 100)
	}

	action := model.TradeAction{
		ID:      uuid.NewString(),
		TradeID: trade.ID,
		Type:    model.ActionBuy,
		Date:    in.EntryDate,
		Price:   in.EntryPrice,
		Shares:  in.Shares,
	}

	if err := s.tradeRepo.CreateTrade(trade, action); err != nil {
		return model.Trade{}, err
	}

	return trade, nil
}

// AddShares adds on to an open position. The average cost becomes the
// share-weighted mean of all buys; total and remaining shares grow by the
// add-on size; the original stop levels are preserved unchanged.
func (s *TradeService) AddShares(ctx context.Context, userID, tradeID string, in TradeActionInput) (model.Trade, error) {
	trade, err := s.tradeRepo.GetTrade(userID, tradeID)
	if err != nil {
		return model.Trade{}, err
	}
	if trade.Status == model.StatusClosed {
		return model.Trade{}, apperrors.ErrTradeClosed
	}

	trade.AverageCost = weightedAverageCost(trade.AverageCost, trade.RemainingShares, in.Price, in.Shares)
	trade.TotalShares += in.Shares
	trade.RemainingShares += in.Shares

	currentPrice := in.CurrentPrice
	if currentPrice == 0 {
		currentPrice = s.lookupQuote(ctx, trade.Ticker)
	}
	if currentPrice != 0 {
		unrealized := unrealizedPnl(trade.Direction, trade.AverageCost, currentPrice, trade.RemainingShares)
		trade.UnrealizedPnl = round2(unrealized)
		if basis := trade.AverageCost * trade.RemainingShares; basis != 0 {
			trade.UnrealizedPnlPct = round2(unrealized / basis * 100)
		}
	}

	action := model.TradeAction{
		ID:      uuid.NewString(),
		TradeID: trade.ID,
		Type:    model.ActionBuy,
		Date:    in.Date,
		Price:   in.Price,
		Shares:  in.Shares,
	}

	if err := s.tradeRepo.ApplyAction(trade, action); err != nil {
		return model.Trade{}, err
	}
	s.invalidateDetail(userID, tradeID)

	return trade, nil
}

// sharesEpsilon absorbs float residue from fractional lots: a remainder
// this small counts as fully sold, and a sell overshooting by less than it
// is not an oversell.
const sharesEpsilon = 1e-9

// SellShares trims or closes an open position. Selling more shares than
// remain is rejected with apperrors.ErrInsufficientShares and no state
// mutation. The position closes exactly when remaining shares reach zero,
// at which point MAE/MFE are derived from the lifetime price range.
func (s *TradeService) SellShares(ctx context.Context, userID, tradeID string, in TradeActionInput) (model.Trade, error) {
	trade, err := s.tradeRepo.GetTrade(userID, tradeID)
	if err != nil {
		return model.Trade{}, err
	}
	if trade.Status == model.StatusClosed {
		return model.Trade{}, apperrors.ErrTradeClosed
	}
	if in.Shares > trade.RemainingShares+sharesEpsilon {
		return model.Trade{}, fmt.Errorf("%w: selling %.2f of %.2f remaining",
			apperrors.ErrInsufficientShares, in.Shares, trade.RemainingShares)
	}

	lot := realizedLotPnl(trade.Direction, trade.AverageCost, in.Price, in.Shares)
	trade.RealizedPnl = round2(trade.RealizedPnl + lot)
	trade.RemainingShares -= in.Shares
	if basis := trade.AverageCost * trade.TotalShares; basis != 0 {
		trade.RealizedPnlPct = round2(trade.RealizedPnl / basis * 100)
	}

	if trade.RemainingShares <= sharesEpsilon {
		trade.RemainingShares = 0
		trade.Status = model.StatusClosed
		trade.ExitPrice = in.Price
		trade.ExitDate = in.Date
		trade.UnrealizedPnl = 0
		trade.UnrealizedPnlPct = 0
		s.applyExcursions(ctx, &trade)
	} else {
		unrealized := unrealizedPnl(trade.Direction, trade.AverageCost, in.Price, trade.RemainingShares)
		trade.UnrealizedPnl = round2(unrealized)
		if basis := trade.AverageCost * trade.RemainingShares; basis != 0 {
			trade.UnrealizedPnlPct = round2(unrealized / basis * 100)
		}
	}

	action := model.TradeAction{
		ID:      uuid.NewString(),
		TradeID: trade.ID,
		Type:    model.ActionSell,
		Date:    in.Date,
		Price:   in.Price,
		Shares:  in.Shares,
	}

	if err := s.tradeRepo.ApplyAction(trade, action); err != nil {
		return model.Trade{}, err
	}
	s.invalidateDetail(userID, tradeID)

	return trade, nil
}

// GetTradeDetail returns a trade with its full action log. Detail lookups
// are cached; position mutations invalidate the entry.
func (s *TradeService) GetTradeDetail(userID, tradeID string) (model.TradeDetail, error) {
	cacheKey := detailKey(userID, tradeID)
	if s.detailCache != nil {
		if detail, ok := s.detailCache.Get(cacheKey); ok {
			return detail, nil
		}
	}

	trade, err := s.tradeRepo.GetTrade(userID, tradeID)
	if err != nil {
		return model.TradeDetail{}, err
	}
	actions, err := s.tradeRepo.GetActions(tradeID)
	if err != nil {
		return model.TradeDetail{}, err
	}

	detail := model.TradeDetail{Trade: trade, Actions: actions}
	if s.detailCache != nil {
		s.detailCache.Set(cacheKey, detail)
	}

	return detail, nil
}

// ListTrades returns the user's trades, optionally filtered.
func (s *TradeService) ListTrades(userID string, filter model.TradeFilter) ([]model.Trade, error) {
	return s.tradeRepo.ListTrades(userID, filter)
}

// UpdateJournalFields edits the notes and mistakes text. This is permitted
// on both open and closed trades; everything else is frozen after close.
func (s *TradeService) UpdateJournalFields(userID, tradeID, notes, mistakes string) (model.Trade, error) {
	if err := s.tradeRepo.UpdateJournalFields(userID, tradeID, notes, mistakes); err != nil {
		return model.Trade{}, err
	}
	s.invalidateDetail(userID, tradeID)

	return s.tradeRepo.GetTrade(userID, tradeID)
}

// applyExcursions fills in MAE/MFE from the lifetime high/low. A failed
// bars fetch leaves the metrics at zero; the close itself still succeeds.
func (s *TradeService) applyExcursions(ctx context.Context, trade *model.Trade) {
	if s.market == nil {
		return
	}

	bars, err := s.market.GetBars(ctx, trade.Ticker, trade.EntryDate, trade.ExitDate)
	if err != nil {
		log.Printf("excursion lookup failed for %s: %v", trade.Ticker, err)
		return
	}

	high, low, ok := marketdata.HighLow(bars)
	if !ok {
		return
	}

	exc := computeExcursions(trade.Direction, trade.EntryPrice, trade.StopLoss, high, low, trade.TotalShares)
	trade.MAEDollars = exc.MAEDollars
	trade.MAEPercent = exc.MAEPercent
	trade.MAER = exc.MAER
	trade.MFEDollars = exc.MFEDollars
	trade.MFEPercent = exc.MFEPercent
	trade.MFER = exc.MFER
}

// lookupQuote fetches a single live quote, returning 0 when unavailable.
func (s *TradeService) lookupQuote(ctx context.Context, ticker string) float64 {
	if s.market == nil {
		return 0
	}
	quotes, err := s.market.GetQuotes(ctx, []string{ticker})
	if err != nil {
		return 0
	}
	return quotes[ticker]
}

func (s *TradeService) invalidateDetail(userID, tradeID string) {
	if s.detailCache == nil {
		return
	}
	s.detailCache.Delete(detailKey(userID, tradeID))
}

func detailKey(userID, tradeID string) string {
	return userID + "|" + tradeID
}
