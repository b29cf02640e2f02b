package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/tradelog/trade-journal-backend/internal/apperrors"
	"github.com/tradelog/trade-journal-backend/internal/marketdata"
	"github.com/tradelog/trade-journal-backend/internal/model"
	"github.com/tradelog/trade-journal-backend/internal/repository"
)

// CapitalService is the capital accounting engine: daily snapshot writes,
// live capital valuation, drawdown analysis, equity-curve reconstruction,
// and the historical backfill.
type CapitalService struct {
	capitalRepo *repository.CapitalRepository
	tradeRepo   *repository.TradeRepository
	userRepo    *repository.UserRepository
	settings    *SettingsService
	market      marketdata.Provider
	loc         *time.Location
}

// NewCapitalService creates a new CapitalService. loc is the reference
// timezone that decides which calendar day a snapshot belongs to; market may
// be nil, in which case live valuation falls back to persisted P&L.
func NewCapitalService(
	capitalRepo *repository.CapitalRepository,
	tradeRepo *repository.TradeRepository,
	userRepo *repository.UserRepository,
	settings *SettingsService,
	market marketdata.Provider,
	loc *time.Location,
) *CapitalService {
	return &CapitalService{
		capitalRepo: capitalRepo,
		tradeRepo:   tradeRepo,
		userRepo:    userRepo,
		settings:    settings,
		market:      market,
		loc:         loc,
	}
}

// today returns the current calendar day in the reference timezone.
func (s *CapitalService) today() time.Time {
	return time.Now().In(s.loc)
}

// RecordCapitalChange upserts the capital snapshot for one calendar day.
// amount is the absolute capital figure, not a delta; an account deeper in
// losses than its starting cash is legitimately negative. A zero date means
// "today" in the reference timezone. The day's high/low are merged
// atomically in the persistence layer, so repeated intraday calls refine a
// single row rather than appending.
func (s *CapitalService) RecordCapitalChange(userID string, amount float64, metadata model.ChangeMetadata, date time.Time) (model.CapitalChange, error) {
	if date.IsZero() {
		date = s.today()
	}

	change := model.CapitalChange{
		ID:       uuid.NewString(),
		UserID:   userID,
		Date:     date,
		Amount:   round2(amount),
		Metadata: metadata,
	}
	if err := s.capitalRepo.Upsert(change); err != nil {
		return model.CapitalChange{}, err
	}

	// Read back the merged row: on conflict the stored id, opening amount
	// and extrema differ from what was passed in.
	return s.capitalRepo.GetByUserAndDate(userID, date)
}

// CalculateCurrentCapital computes live capital as starting cash plus all
// realized P&L plus the open positions' unrealized P&L at current quotes.
// existingQuotes, when non-nil, is used instead of fetching; otherwise one
// batched quote call covers every open ticker. A missing ticker degrades
// that one trade to its last persisted unrealized figure; a wholesale quote
// failure degrades every trade the same way. Neither is an error.
func (s *CapitalService) CalculateCurrentCapital(ctx context.Context, userID string, existingQuotes map[string]float64) (model.CurrentCapital, error) {
	settings, err := s.settings.GetOrCreate(userID)
	if err != nil {
		return model.CurrentCapital{}, err
	}

	trades, err := s.tradeRepo.ListTrades(userID, model.TradeFilter{})
	if err != nil {
		return model.CurrentCapital{}, err
	}

	var realized float64
	openTrades := []model.Trade{}
	for _, trade := range trades {
		realized += trade.RealizedPnl
		if trade.Status == model.StatusOpen {
			openTrades = append(openTrades, trade)
		}
	}

	quotes := existingQuotes
	if quotes == nil {
		quotes = s.fetchQuotes(ctx, openTrades)
	}

	var unrealized float64
	for _, trade := range openTrades {
		if price, ok := quotes[trade.Ticker]; ok {
			unrealized += unrealizedPnl(trade.Direction, trade.AverageCost, price, trade.RemainingShares)
		} else {
			unrealized += trade.UnrealizedPnl
		}
	}

	return model.CurrentCapital{
		Capital:        round2(settings.StartingCash + realized + unrealized),
		StartingCash:   settings.StartingCash,
		RealizedPnl:    round2(realized),
		UnrealizedPnl:  round2(unrealized),
		OpenTradeCount: len(openTrades),
	}, nil
}

// RecordSnapshot values the account and persists the result as a capital
// snapshot of the given kind for today. This is the unit of work the
// mark-to-market scheduler runs per user.
func (s *CapitalService) RecordSnapshot(ctx context.Context, userID string, kind model.ChangeKind) (model.CapitalChange, error) {
	current, err := s.CalculateCurrentCapital(ctx, userID, nil)
	if err != nil {
		return model.CapitalChange{}, err
	}

	metadata := model.ChangeMetadata{
		Kind:          kind,
		RealizedPnl:   current.RealizedPnl,
		UnrealizedPnl: current.UnrealizedPnl,
		TradeCount:    current.OpenTradeCount,
	}

	return s.RecordCapitalChange(userID, current.Capital, metadata, time.Time{})
}

// GetDailyCapitalStats reduces one day's snapshot row to an OHLC summary.
// Returns apperrors.ErrNoCapitalData when no snapshot exists for that day;
// callers treat this as "skip the day", not a failure.
func (s *CapitalService) GetDailyCapitalStats(userID string, date time.Time) (model.DailyCapitalStats, error) {
	change, err := s.capitalRepo.GetByUserAndDate(userID, date)
	if err != nil {
		return model.DailyCapitalStats{}, err
	}

	return model.DailyCapitalStats{
		Date:          repository.DayString(change.Date),
		Open:          change.OpeningAmount,
		High:          change.DayHigh,
		Low:           change.DayLow,
		Close:         change.Amount,
		RealizedPnl:   change.Metadata.RealizedPnl,
		UnrealizedPnl: change.Metadata.UnrealizedPnl,
		TradeCount:    change.Metadata.TradeCount,
	}, nil
}

// ProcessHistoricalTrades backfills capital snapshots from closed trades:
// groups realized P&L by exit date, walks the dates in order, and upserts
// one historical snapshot per day with the running total seeded at starting
// cash. Upsert semantics make repeated runs idempotent at day granularity.
func (s *CapitalService) ProcessHistoricalTrades(userID string) (int, error) {
	settings, err := s.settings.GetOrCreate(userID)
	if err != nil {
		return 0, err
	}

	closed, err := s.tradeRepo.ListTrades(userID, model.TradeFilter{Status: model.StatusClosed})
	if err != nil {
		return 0, err
	}

	byDay := realizedByExitDay(closed)
	days := sortedDays(byDay)

	capital := settings.StartingCash
	for _, day := range days {
		dayPnl := byDay[day]
		capital += dayPnl.realized

		date, err := repository.ParseTime(day)
		if err != nil {
			return 0, err
		}

		metadata := model.ChangeMetadata{
			Kind:        model.ChangeHistorical,
			RealizedPnl: dayPnl.realized,
			TradeCount:  dayPnl.trades,
		}
		if _, err := s.RecordCapitalChange(userID, capital, metadata, date); err != nil {
			return 0, err
		}
	}

	return len(days), nil
}

// fetchQuotes batches a quote fetch for every distinct open ticker.
// Failure returns an empty map so each trade falls back to stale data.
func (s *CapitalService) fetchQuotes(ctx context.Context, openTrades []model.Trade) map[string]float64 {
	if s.market == nil || len(openTrades) == 0 {
		return map[string]float64{}
	}

	seen := map[string]bool{}
	tickers := []string{}
	for _, trade := range openTrades {
		if !seen[trade.Ticker] {
			seen[trade.Ticker] = true
			tickers = append(tickers, trade.Ticker)
		}
	}

	quotes, err := s.market.GetQuotes(ctx, tickers)
	if err != nil {
		if !errors.Is(err, apperrors.ErrQuotesUnavailable) {
			log.Printf("quote batch failed for user %s: %v", maskID(openTrades[0].UserID), err)
		}
		return map[string]float64{}
	}

	return quotes
}

// maskID shortens an id for log output.
func maskID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
