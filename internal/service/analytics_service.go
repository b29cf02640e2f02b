package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/tradelog/trade-journal-backend/internal/model"
	"github.com/tradelog/trade-journal-backend/internal/repository"
)

// AnalyticsService aggregates closed trades into presentational views: win
// rate by entry hour, weekday, and strategy, the MAE/MFE scatter, and an
// overall performance summary. All views are pure reductions over the trade
// list; nothing here writes.
type AnalyticsService struct {
	tradeRepo *repository.TradeRepository
	loc       *time.Location
}

// NewAnalyticsService creates a new AnalyticsService. loc decides which hour
// and weekday a trade's entry timestamp falls in.
func NewAnalyticsService(tradeRepo *repository.TradeRepository, loc *time.Location) *AnalyticsService {
	return &AnalyticsService{tradeRepo: tradeRepo, loc: loc}
}

func (s *AnalyticsService) closedTrades(userID string) ([]model.Trade, error) {
	return s.tradeRepo.ListTrades(userID, model.TradeFilter{Status: model.StatusClosed})
}

// PerformanceByHour buckets closed trades by entry hour (00-23).
func (s *AnalyticsService) PerformanceByHour(userID string) ([]model.PerformanceBucket, error) {
	trades, err := s.closedTrades(userID)
	if err != nil {
		return nil, err
	}
	return bucketTrades(trades, func(t model.Trade) string {
		return fmt.Sprintf("%02d", t.EntryDate.In(s.loc).Hour())
	}), nil
}

// PerformanceByWeekday buckets closed trades by entry weekday.
func (s *AnalyticsService) PerformanceByWeekday(userID string) ([]model.PerformanceBucket, error) {
	trades, err := s.closedTrades(userID)
	if err != nil {
		return nil, err
	}

	buckets := bucketTrades(trades, func(t model.Trade) string {
		return t.EntryDate.In(s.loc).Weekday().String()
	})

	// Calendar order, not alphabetical.
	order := map[string]int{}
	for d := time.Sunday; d <= time.Saturday; d++ {
		order[d.String()] = int(d)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return order[buckets[i].Key] < order[buckets[j].Key]
	})

	return buckets, nil
}

// PerformanceByStrategy buckets closed trades by strategy tag. Trades
// without a strategy land in an "untagged" bucket.
func (s *AnalyticsService) PerformanceByStrategy(userID string) ([]model.PerformanceBucket, error) {
	trades, err := s.closedTrades(userID)
	if err != nil {
		return nil, err
	}
	return bucketTrades(trades, func(t model.Trade) string {
		if t.Strategy == "" {
			return "untagged"
		}
		return t.Strategy
	}), nil
}

// ExcursionScatter returns one MAE/MFE point per closed trade for the
// excursion scatter plot.
func (s *AnalyticsService) ExcursionScatter(userID string) ([]model.ExcursionPoint, error) {
	trades, err := s.closedTrades(userID)
	if err != nil {
		return nil, err
	}

	points := []model.ExcursionPoint{}
	for _, trade := range trades {
		points = append(points, model.ExcursionPoint{
			TradeID:     trade.ID,
			Ticker:      trade.Ticker,
			MAEPercent:  trade.MAEPercent,
			MFEPercent:  trade.MFEPercent,
			RealizedPnl: trade.RealizedPnl,
			Win:         trade.RealizedPnl > 0,
		})
	}

	return points, nil
}

// Summary reduces all closed trades to the headline performance figures.
func (s *AnalyticsService) Summary(userID string) (model.PerformanceSummary, error) {
	trades, err := s.closedTrades(userID)
	if err != nil {
		return model.PerformanceSummary{}, err
	}

	var summary model.PerformanceSummary
	var grossWin, grossLoss float64
	for _, trade := range trades {
		summary.TradeCount++
		summary.TotalPnl += trade.RealizedPnl
		if trade.RealizedPnl > 0 {
			summary.WinCount++
			grossWin += trade.RealizedPnl
		} else {
			summary.LossCount++
			grossLoss += -trade.RealizedPnl
		}
	}

	if summary.TradeCount > 0 {
		summary.WinRate = round2(float64(summary.WinCount) / float64(summary.TradeCount) * 100)
		summary.Expectancy = round2(summary.TotalPnl / float64(summary.TradeCount))
	}
	if summary.WinCount > 0 {
		summary.AverageWin = round2(grossWin / float64(summary.WinCount))
	}
	if summary.LossCount > 0 {
		summary.AverageLoss = round2(grossLoss / float64(summary.LossCount))
	}
	if grossLoss > 0 {
		summary.ProfitFactor = round2(grossWin / grossLoss)
	}
	summary.TotalPnl = round2(summary.TotalPnl)

	return summary, nil
}

// bucketTrades groups closed trades by key and reduces each group to its
// win-rate figures, sorted by key.
func bucketTrades(trades []model.Trade, keyFn func(model.Trade) string) []model.PerformanceBucket {
	byKey := map[string]*model.PerformanceBucket{}
	for _, trade := range trades {
		key := keyFn(trade)
		bucket, ok := byKey[key]
		if !ok {
			bucket = &model.PerformanceBucket{Key: key}
			byKey[key] = bucket
		}
		bucket.TradeCount++
		bucket.TotalPnl += trade.RealizedPnl
		if trade.RealizedPnl > 0 {
			bucket.WinCount++
		}
	}

	buckets := []model.PerformanceBucket{}
	for _, bucket := range byKey {
		bucket.WinRate = round2(float64(bucket.WinCount) / float64(bucket.TradeCount) * 100)
		bucket.AveragePnl = round2(bucket.TotalPnl / float64(bucket.TradeCount))
		bucket.TotalPnl = round2(bucket.TotalPnl)
		buckets = append(buckets, *bucket)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Key < buckets[j].Key })

	return buckets
}
