package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tradelog/trade-journal-backend/internal/apperrors"
	"github.com/tradelog/trade-journal-backend/internal/model"
	"github.com/tradelog/trade-journal-backend/internal/testutil"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}

// TestCapitalService_RecordCapitalChange tests the daily snapshot upsert.
//
// WHY: The one-row-per-day invariant and the monotonic high/low refinement
// are the foundation of every downstream capital computation.
func TestCapitalService_RecordCapitalChange(t *testing.T) {
	t.Run("first write of a day fixes the opening amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		svc := testutil.NewTestCapitalService(t, db, nil)

		change, err := svc.RecordCapitalChange(user.ID, 100000, model.ChangeMetadata{Kind: model.ChangeManual}, day(2024, 3, 1))
		if err != nil {
			t.Fatalf("RecordCapitalChange() returned unexpected error: %v", err)
		}

		if change.Amount != 100000 {
			t.Errorf("Expected amount 100000, got %v", change.Amount)
		}
		if change.OpeningAmount != 100000 {
			t.Errorf("Expected opening amount 100000, got %v", change.OpeningAmount)
		}
		if change.DayHigh != 100000 || change.DayLow != 100000 {
			t.Errorf("Expected high/low 100000, got %v/%v", change.DayHigh, change.DayLow)
		}
	})

	t.Run("intraday updates refine high and low on one row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		svc := testutil.NewTestCapitalService(t, db, nil)
		meta := model.ChangeMetadata{Kind: model.ChangeInterim}
		date := day(2024, 3, 1)

		amounts := []float64{100000, 101200, 99500, 100400}
		var last model.CapitalChange
		var err error
		for _, amount := range amounts {
			last, err = svc.RecordCapitalChange(user.ID, amount, meta, date)
			if err != nil {
				t.Fatalf("RecordCapitalChange(%v) returned unexpected error: %v", amount, err)
			}
		}

		if last.Amount != 100400 {
			t.Errorf("Expected latest amount 100400, got %v", last.Amount)
		}
		if last.OpeningAmount != 100000 {
			t.Errorf("Expected opening amount preserved at 100000, got %v", last.OpeningAmount)
		}
		if last.DayHigh != 101200 {
			t.Errorf("Expected day high 101200, got %v", last.DayHigh)
		}
		if last.DayLow != 99500 {
			t.Errorf("Expected day low 99500, got %v", last.DayLow)
		}

		// Still a single row for the day
		changes, err := svc.ListSnapshots(user.ID, time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("ListSnapshots() returned unexpected error: %v", err)
		}
		if len(changes) != 1 {
			t.Errorf("Expected one row for the day, got %d", len(changes))
		}
	})

	t.Run("accepts a balance below zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		svc := testutil.NewTestCapitalService(t, db, nil)

		change, err := svc.RecordCapitalChange(user.ID, -250, model.ChangeMetadata{Kind: model.ChangeManual}, day(2024, 3, 1))
		if err != nil {
			t.Fatalf("RecordCapitalChange() returned unexpected error: %v", err)
		}

		if change.Amount != -250 {
			t.Errorf("Expected amount -250, got %v", change.Amount)
		}
		if change.DayLow != -250 {
			t.Errorf("Expected day low -250, got %v", change.DayLow)
		}
	})
}

// TestCapitalService_CalculateCurrentCapital tests live valuation and the
// quote fallback policy.
//
// WHY: Quote outages must degrade to stale persisted P&L, per ticker or
// wholesale, without surfacing an error to the caller.
func TestCapitalService_CalculateCurrentCapital(t *testing.T) {
	t.Run("starting cash plus realized with no open trades", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		testutil.CreateUserSettings(t, db, user.ID, 100000)
		testutil.CreateClosedTrade(t, db, user.ID, 1500, day(2024, 3, 1))
		svc := testutil.NewTestCapitalService(t, db, nil)

		current, err := svc.CalculateCurrentCapital(context.Background(), user.ID, nil)
		if err != nil {
			t.Fatalf("CalculateCurrentCapital() returned unexpected error: %v", err)
		}

		if current.Capital != 101500 {
			t.Errorf("Expected capital 101500, got %v", current.Capital)
		}
		if current.RealizedPnl != 1500 {
			t.Errorf("Expected realized P&L 1500, got %v", current.RealizedPnl)
		}
		if current.OpenTradeCount != 0 {
			t.Errorf("Expected no open trades, got %d", current.OpenTradeCount)
		}
	})

	t.Run("open trade valued at the live quote", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		testutil.CreateUserSettings(t, db, user.ID, 100000)
		testutil.NewTrade(user.ID).WithTicker("MSFT").WithEntry(150, 100).Build(t, db)
		market := &testutil.StubMarket{Quotes: map[string]float64{"MSFT": 155}}
		svc := testutil.NewTestCapitalService(t, db, market)

		current, err := svc.CalculateCurrentCapital(context.Background(), user.ID, nil)
		if err != nil {
			t.Fatalf("CalculateCurrentCapital() returned unexpected error: %v", err)
		}

		if current.UnrealizedPnl != 500 {
			t.Errorf("Expected unrealized P&L 500, got %v", current.UnrealizedPnl)
		}
		if current.Capital != 100500 {
			t.Errorf("Expected capital 100500, got %v", current.Capital)
		}
	})

	t.Run("missing ticker falls back to stale unrealized P&L", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		testutil.CreateUserSettings(t, db, user.ID, 100000)
		testutil.NewTrade(user.ID).WithTicker("MSFT").WithEntry(150, 100).Build(t, db)
		testutil.NewTrade(user.ID).WithTicker("NVDA").WithEntry(200, 10).WithUnrealizedPnl(250).Build(t, db)

		// Only MSFT resolves; NVDA degrades to its persisted value.
		market := &testutil.StubMarket{Quotes: map[string]float64{"MSFT": 155}}
		svc := testutil.NewTestCapitalService(t, db, market)

		current, err := svc.CalculateCurrentCapital(context.Background(), user.ID, nil)
		if err != nil {
			t.Fatalf("CalculateCurrentCapital() returned unexpected error: %v", err)
		}

		if current.UnrealizedPnl != 750 {
			t.Errorf("Expected unrealized P&L 750 (500 fresh + 250 stale), got %v", current.UnrealizedPnl)
		}
	})

	t.Run("wholesale quote failure falls back to stale values", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		testutil.CreateUserSettings(t, db, user.ID, 100000)
		testutil.NewTrade(user.ID).WithTicker("MSFT").WithEntry(150, 100).WithUnrealizedPnl(400).Build(t, db)
		market := &testutil.StubMarket{QuotesErr: apperrors.ErrQuotesUnavailable}
		svc := testutil.NewTestCapitalService(t, db, market)

		current, err := svc.CalculateCurrentCapital(context.Background(), user.ID, nil)
		if err != nil {
			t.Fatalf("CalculateCurrentCapital() returned unexpected error: %v", err)
		}

		if current.UnrealizedPnl != 400 {
			t.Errorf("Expected stale unrealized P&L 400, got %v", current.UnrealizedPnl)
		}
	})

	t.Run("supplied quote map bypasses the fetch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		testutil.CreateUserSettings(t, db, user.ID, 100000)
		testutil.NewTrade(user.ID).WithTicker("MSFT").WithEntry(150, 100).Build(t, db)
		market := &testutil.StubMarket{QuotesErr: apperrors.ErrQuotesUnavailable}
		svc := testutil.NewTestCapitalService(t, db, market)

		current, err := svc.CalculateCurrentCapital(context.Background(), user.ID, map[string]float64{"MSFT": 160})
		if err != nil {
			t.Fatalf("CalculateCurrentCapital() returned unexpected error: %v", err)
		}

		if current.UnrealizedPnl != 1000 {
			t.Errorf("Expected unrealized P&L 1000 from supplied quotes, got %v", current.UnrealizedPnl)
		}
	})
}

// TestCapitalService_GetDailyCapitalStats tests the OHLC day reduction.
func TestCapitalService_GetDailyCapitalStats(t *testing.T) {
	t.Run("reduces the day's writes to OHLC", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		svc := testutil.NewTestCapitalService(t, db, nil)
		date := day(2024, 3, 1)

		meta := model.ChangeMetadata{Kind: model.ChangeInterim, RealizedPnl: 300, UnrealizedPnl: -50, TradeCount: 2}
		for _, amount := range []float64{100000, 101200, 99500, 100400} {
			if _, err := svc.RecordCapitalChange(user.ID, amount, meta, date); err != nil {
				t.Fatalf("RecordCapitalChange() returned unexpected error: %v", err)
			}
		}

		stats, err := svc.GetDailyCapitalStats(user.ID, date)
		if err != nil {
			t.Fatalf("GetDailyCapitalStats() returned unexpected error: %v", err)
		}

		if stats.Open != 100000 {
			t.Errorf("Expected open 100000, got %v", stats.Open)
		}
		if stats.High != 101200 {
			t.Errorf("Expected high 101200, got %v", stats.High)
		}
		if stats.Low != 99500 {
			t.Errorf("Expected low 99500, got %v", stats.Low)
		}
		if stats.Close != 100400 {
			t.Errorf("Expected close 100400, got %v", stats.Close)
		}
		if stats.RealizedPnl != 300 || stats.TradeCount != 2 {
			t.Errorf("Expected metadata carried through, got %+v", stats)
		}
	})

	t.Run("day without data reports ErrNoCapitalData", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		svc := testutil.NewTestCapitalService(t, db, nil)

		_, err := svc.GetDailyCapitalStats(user.ID, day(2024, 3, 1))
		if !errors.Is(err, apperrors.ErrNoCapitalData) {
			t.Errorf("Expected ErrNoCapitalData, got %v", err)
		}
	})
}

// TestCapitalService_ProcessHistoricalTrades tests the backfill.
//
// WHY: Backfill runs are user-triggered and may repeat; they must upsert,
// not append, so repeated runs converge on the same rows.
func TestCapitalService_ProcessHistoricalTrades(t *testing.T) {
	t.Run("writes one snapshot per exit day with a running total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		testutil.CreateUserSettings(t, db, user.ID, 100000)
		testutil.CreateClosedTrade(t, db, user.ID, 1500, day(2024, 3, 1))
		testutil.CreateClosedTrade(t, db, user.ID, -500, day(2024, 3, 4))
		testutil.CreateClosedTrade(t, db, user.ID, 200, day(2024, 3, 4))
		svc := testutil.NewTestCapitalService(t, db, nil)

		days, err := svc.ProcessHistoricalTrades(user.ID)
		if err != nil {
			t.Fatalf("ProcessHistoricalTrades() returned unexpected error: %v", err)
		}
		if days != 2 {
			t.Errorf("Expected 2 days processed, got %d", days)
		}

		first, err := svc.GetDailyCapitalStats(user.ID, day(2024, 3, 1))
		if err != nil {
			t.Fatalf("GetDailyCapitalStats() returned unexpected error: %v", err)
		}
		if first.Close != 101500 {
			t.Errorf("Expected capital 101500 on day one, got %v", first.Close)
		}

		second, err := svc.GetDailyCapitalStats(user.ID, day(2024, 3, 4))
		if err != nil {
			t.Fatalf("GetDailyCapitalStats() returned unexpected error: %v", err)
		}
		if second.Close != 101200 {
			t.Errorf("Expected capital 101200 on day two, got %v", second.Close)
		}
		if second.TradeCount != 2 {
			t.Errorf("Expected 2 trades on day two, got %d", second.TradeCount)
		}
	})

	t.Run("a net-loss history drives capital below starting cash", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		// Default starting cash of 0: one losing trade puts the account
		// underwater.
		testutil.CreateClosedTrade(t, db, user.ID, -500, day(2024, 3, 1))
		svc := testutil.NewTestCapitalService(t, db, nil)

		days, err := svc.ProcessHistoricalTrades(user.ID)
		if err != nil {
			t.Fatalf("ProcessHistoricalTrades() returned unexpected error: %v", err)
		}
		if days != 1 {
			t.Errorf("Expected 1 day processed, got %d", days)
		}

		stats, err := svc.GetDailyCapitalStats(user.ID, day(2024, 3, 1))
		if err != nil {
			t.Fatalf("GetDailyCapitalStats() returned unexpected error: %v", err)
		}
		if stats.Close != -500 {
			t.Errorf("Expected capital -500, got %v", stats.Close)
		}
	})

	t.Run("is idempotent at day granularity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		testutil.CreateUserSettings(t, db, user.ID, 100000)
		testutil.CreateClosedTrade(t, db, user.ID, 1500, day(2024, 3, 1))
		svc := testutil.NewTestCapitalService(t, db, nil)

		for i := 0; i < 3; i++ {
			if _, err := svc.ProcessHistoricalTrades(user.ID); err != nil {
				t.Fatalf("ProcessHistoricalTrades() run %d returned unexpected error: %v", i, err)
			}
		}

		changes, err := svc.ListSnapshots(user.ID, time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("ListSnapshots() returned unexpected error: %v", err)
		}
		if len(changes) != 1 {
			t.Errorf("Expected 1 snapshot after repeated runs, got %d", len(changes))
		}
		if changes[0].Amount != 101500 {
			t.Errorf("Expected capital 101500, got %v", changes[0].Amount)
		}
	})
}

// TestCapitalService_RecordSnapshot tests the scheduler's unit of work.
func TestCapitalService_RecordSnapshot(t *testing.T) {
	t.Run("persists current capital with P&L metadata", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		testutil.CreateUserSettings(t, db, user.ID, 100000)
		testutil.CreateClosedTrade(t, db, user.ID, 1500, day(2024, 3, 1))
		svc := testutil.NewTestCapitalService(t, db, nil)

		change, err := svc.RecordSnapshot(context.Background(), user.ID, model.ChangeInterim)
		if err != nil {
			t.Fatalf("RecordSnapshot() returned unexpected error: %v", err)
		}

		if change.Amount != 101500 {
			t.Errorf("Expected snapshot amount 101500, got %v", change.Amount)
		}
		if change.Metadata.Kind != model.ChangeInterim {
			t.Errorf("Expected interim kind, got %v", change.Metadata.Kind)
		}
		if change.Metadata.RealizedPnl != 1500 {
			t.Errorf("Expected realized P&L 1500 in metadata, got %v", change.Metadata.RealizedPnl)
		}
	})
}
