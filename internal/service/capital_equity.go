package service

import (
	"sort"
	"time"

	"github.com/tradelog/trade-journal-backend/internal/model"
	"github.com/tradelog/trade-journal-backend/internal/repository"
)

// dayPnl accumulates realized P&L and trade count for one exit day.
type dayPnl struct {
	realized float64
	trades   int
}

// realizedByExitDay groups closed trades' realized P&L by exit date.
// Trades without an exit date are skipped.
func realizedByExitDay(trades []model.Trade) map[string]dayPnl {
	byDay := map[string]dayPnl{}
	for _, trade := range trades {
		if trade.Status != model.StatusClosed || trade.ExitDate.IsZero() {
			continue
		}
		day := repository.DayString(trade.ExitDate)
		pnl := byDay[day]
		pnl.realized += trade.RealizedPnl
		pnl.trades++
		byDay[day] = pnl
	}
	return byDay
}

func sortedDays(byDay map[string]dayPnl) []string {
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

// equityWatermarks tracks the running extremes the curve measures against.
// Carried across the historical/live boundary so drawdown and runup are
// continuous over the whole curve.
type equityWatermarks struct {
	high float64
	low  float64
	set  bool
}

func (w *equityWatermarks) observe(capital float64) {
	if !w.set {
		w.high, w.low, w.set = capital, capital, true
		return
	}
	if capital > w.high {
		w.high = capital
	}
	if capital < w.low {
		w.low = capital
	}
}

func (w *equityWatermarks) drawdown(capital float64) float64 {
	return round2(drawdownPct(w.high, capital))
}

func (w *equityWatermarks) runup(capital float64) float64 {
	if w.low <= 0 {
		return 0
	}
	return round2((capital - w.low) / w.low * 100)
}

// CalculateDetailedEquityCurve reconstructs the full equity curve in two
// phases. Phase 1 synthesizes daily points from trades closed before the
// account existed, walking gap-free from the earliest such exit to the
// account-creation date with a running capital seeded at starting cash.
// Phase 2 emits one point per persisted snapshot from account creation
// onward. Watermark tracking spans both phases, so a historical peak still
// bounds the drawdown of later live points.
func (s *CapitalService) CalculateDetailedEquityCurve(userID string) ([]model.EquityPoint, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	closed, err := s.tradeRepo.ListTrades(userID, model.TradeFilter{Status: model.StatusClosed})
	if err != nil {
		return nil, err
	}
	changes, err := s.capitalRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	creationDay := repository.DayString(user.CreatedAt.In(s.loc))
	points := []model.EquityPoint{}
	var marks equityWatermarks

	points = s.appendHistoricalPhase(points, &marks, closed, settings.StartingCash, creationDay)

	for _, change := range changes {
		day := repository.DayString(change.Date)
		if day < creationDay {
			// Already covered by the synthesized historical phase.
			continue
		}
		marks.observe(change.Amount)
		points = append(points, model.EquityPoint{
			Date:          day,
			Capital:       change.Amount,
			RealizedPnl:   change.Metadata.RealizedPnl,
			UnrealizedPnl: change.Metadata.UnrealizedPnl,
			DrawdownPct:   marks.drawdown(change.Amount),
			RunupPct:      marks.runup(change.Amount),
		})
	}

	return points, nil
}

// appendHistoricalPhase emits one point per calendar day from the earliest
// pre-account trade exit up to (but excluding) the account-creation day.
// Days without a closing trade repeat the prior capital, keeping the curve
// gap-free.
func (s *CapitalService) appendHistoricalPhase(
	points []model.EquityPoint,
	marks *equityWatermarks,
	closed []model.Trade,
	startingCash float64,
	creationDay string,
) []model.EquityPoint {
	byDay := realizedByExitDay(closed)

	var earliest string
	for day := range byDay {
		if day >= creationDay {
			delete(byDay, day)
			continue
		}
		if earliest == "" || day < earliest {
			earliest = day
		}
	}
	if earliest == "" {
		return points
	}

	cursor, err := repository.ParseTime(earliest)
	if err != nil {
		return points
	}

	capital := startingCash
	for day := earliest; day < creationDay; day = repository.DayString(cursor) {
		pnl := byDay[day]
		capital = round2(capital + pnl.realized)
		marks.observe(capital)

		points = append(points, model.EquityPoint{
			Date:        day,
			Capital:     capital,
			RealizedPnl: pnl.realized,
			DrawdownPct: marks.drawdown(capital),
			RunupPct:    marks.runup(capital),
			Historical:  true,
		})

		cursor = cursor.AddDate(0, 0, 1)
	}

	return points
}

// ListSnapshots returns the raw snapshot rows for a date range, or all of
// them when both bounds are zero.
func (s *CapitalService) ListSnapshots(userID string, startDate, endDate time.Time) ([]model.CapitalChange, error) {
	if startDate.IsZero() && endDate.IsZero() {
		return s.capitalRepo.ListByUser(userID)
	}
	return s.capitalRepo.ListRange(userID, startDate, endDate)
}
