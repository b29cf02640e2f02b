package service_test

import (
	"testing"
	"time"

	"github.com/tradelog/trade-journal-backend/internal/testutil"
)

// TestAnalyticsService_Summary tests the headline performance reduction.
//
// WHY: Win rate, expectancy, and profit factor are the figures a trader
// reviews weekly; the divisions must be guarded so an all-win or all-loss
// history never divides by zero.
func TestAnalyticsService_Summary(t *testing.T) {
	t.Run("mixed wins and losses", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		svc := testutil.NewTestAnalyticsService(t, db)
		exit := day(2024, 3, 1)

		testutil.CreateClosedTrade(t, db, user.ID, 600, exit)
		testutil.CreateClosedTrade(t, db, user.ID, 400, exit)
		testutil.CreateClosedTrade(t, db, user.ID, -250, exit)
		testutil.CreateClosedTrade(t, db, user.ID, -250, exit)

		summary, err := svc.Summary(user.ID)
		if err != nil {
			t.Fatalf("Summary() returned unexpected error: %v", err)
		}

		if summary.TradeCount != 4 || summary.WinCount != 2 || summary.LossCount != 2 {
			t.Errorf("Expected 4 trades with 2 wins and 2 losses, got %d/%d/%d",
				summary.TradeCount, summary.WinCount, summary.LossCount)
		}
		if summary.WinRate != 50 {
			t.Errorf("Expected win rate 50, got %v", summary.WinRate)
		}
		if summary.TotalPnl != 500 {
			t.Errorf("Expected total P&L 500, got %v", summary.TotalPnl)
		}
		if summary.Expectancy != 125 {
			t.Errorf("Expected expectancy 125, got %v", summary.Expectancy)
		}
		if summary.AverageWin != 500 || summary.AverageLoss != 250 {
			t.Errorf("Expected average win 500 and loss 250, got %v/%v",
				summary.AverageWin, summary.AverageLoss)
		}
		if summary.ProfitFactor != 2.0 {
			t.Errorf("Expected profit factor 2.0, got %v", summary.ProfitFactor)
		}
	})

	t.Run("all winners leaves the profit factor unset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		svc := testutil.NewTestAnalyticsService(t, db)

		testutil.CreateClosedTrade(t, db, user.ID, 100, day(2024, 3, 1))

		summary, err := svc.Summary(user.ID)
		if err != nil {
			t.Fatalf("Summary() returned unexpected error: %v", err)
		}

		if summary.WinRate != 100 {
			t.Errorf("Expected win rate 100, got %v", summary.WinRate)
		}
		if summary.ProfitFactor != 0 {
			t.Errorf("Expected zero profit factor with no losses, got %v", summary.ProfitFactor)
		}
	})

	t.Run("no closed trades yields zeroes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		svc := testutil.NewTestAnalyticsService(t, db)

		summary, err := svc.Summary(user.ID)
		if err != nil {
			t.Fatalf("Summary() returned unexpected error: %v", err)
		}

		if summary.TradeCount != 0 || summary.WinRate != 0 {
			t.Errorf("Expected empty summary, got %+v", summary)
		}
	})
}

// TestAnalyticsService_PerformanceByStrategy tests strategy bucketing.
func TestAnalyticsService_PerformanceByStrategy(t *testing.T) {
	t.Run("groups by tag with an untagged bucket", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		svc := testutil.NewTestAnalyticsService(t, db)
		exit := day(2024, 3, 1)

		testutil.NewTrade(user.ID).WithStrategy("breakout").Closed(300, exit).Build(t, db)
		testutil.NewTrade(user.ID).WithStrategy("breakout").Closed(-100, exit).Build(t, db)
		testutil.NewTrade(user.ID).Closed(50, exit).Build(t, db)

		buckets, err := svc.PerformanceByStrategy(user.ID)
		if err != nil {
			t.Fatalf("PerformanceByStrategy() returned unexpected error: %v", err)
		}

		if len(buckets) != 2 {
			t.Fatalf("Expected 2 buckets, got %d", len(buckets))
		}

		// Sorted by key: breakout before untagged.
		breakout := buckets[0]
		if breakout.Key != "breakout" || breakout.TradeCount != 2 {
			t.Errorf("Expected breakout bucket with 2 trades, got %+v", breakout)
		}
		if breakout.WinRate != 50 || breakout.TotalPnl != 200 {
			t.Errorf("Expected 50%% win rate and 200 total, got %v/%v",
				breakout.WinRate, breakout.TotalPnl)
		}

		untagged := buckets[1]
		if untagged.Key != "untagged" || untagged.TradeCount != 1 {
			t.Errorf("Expected untagged bucket with 1 trade, got %+v", untagged)
		}
	})
}

// TestAnalyticsService_PerformanceByWeekday tests calendar-order bucketing.
func TestAnalyticsService_PerformanceByWeekday(t *testing.T) {
	t.Run("buckets come back in calendar order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		svc := testutil.NewTestAnalyticsService(t, db)

		// Noon UTC entries land on the same New York weekday.
		monday := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
		wednesday := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)
		friday := time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)
		exit := day(2024, 3, 11)

		testutil.NewTrade(user.ID).WithEntryDate(friday).Closed(100, exit).Build(t, db)
		testutil.NewTrade(user.ID).WithEntryDate(monday).Closed(200, exit).Build(t, db)
		testutil.NewTrade(user.ID).WithEntryDate(wednesday).Closed(-50, exit).Build(t, db)

		buckets, err := svc.PerformanceByWeekday(user.ID)
		if err != nil {
			t.Fatalf("PerformanceByWeekday() returned unexpected error: %v", err)
		}

		if len(buckets) != 3 {
			t.Fatalf("Expected 3 buckets, got %d", len(buckets))
		}
		want := []string{"Monday", "Wednesday", "Friday"}
		for i, bucket := range buckets {
			if bucket.Key != want[i] {
				t.Errorf("Expected bucket %d to be %s, got %s", i, want[i], bucket.Key)
			}
		}
	})
}

// TestAnalyticsService_PerformanceByHour tests entry-hour bucketing.
func TestAnalyticsService_PerformanceByHour(t *testing.T) {
	t.Run("keys are zero-padded local hours", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		svc := testutil.NewTestAnalyticsService(t, db)

		// 14:30 UTC is 09:30 in New York.
		entry := time.Date(2024, 3, 4, 14, 30, 0, 0, time.UTC)
		testutil.NewTrade(user.ID).WithEntryDate(entry).Closed(100, day(2024, 3, 5)).Build(t, db)

		buckets, err := svc.PerformanceByHour(user.ID)
		if err != nil {
			t.Fatalf("PerformanceByHour() returned unexpected error: %v", err)
		}

		if len(buckets) != 1 {
			t.Fatalf("Expected 1 bucket, got %d", len(buckets))
		}
		if buckets[0].Key != "09" {
			t.Errorf("Expected bucket key 09, got %s", buckets[0].Key)
		}
	})
}

// TestAnalyticsService_ExcursionScatter tests the MAE/MFE scatter points.
func TestAnalyticsService_ExcursionScatter(t *testing.T) {
	t.Run("one point per closed trade with win flag", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		svc := testutil.NewTestAnalyticsService(t, db)
		exit := day(2024, 3, 1)

		testutil.NewTrade(user.ID).WithExcursions(5, 12).Closed(300, exit).Build(t, db)
		testutil.NewTrade(user.ID).WithExcursions(9, 2).Closed(-150, exit).Build(t, db)
		testutil.NewTrade(user.ID).Build(t, db) // still open, excluded

		points, err := svc.ExcursionScatter(user.ID)
		if err != nil {
			t.Fatalf("ExcursionScatter() returned unexpected error: %v", err)
		}

		if len(points) != 2 {
			t.Fatalf("Expected 2 scatter points, got %d", len(points))
		}
		wins := 0
		for _, point := range points {
			if point.Win {
				wins++
			}
		}
		if wins != 1 {
			t.Errorf("Expected exactly 1 winning point, got %d", wins)
		}
	})
}
