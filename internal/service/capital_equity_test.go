package service_test

import (
	"testing"
	"time"

	"github.com/tradelog/trade-journal-backend/internal/testutil"
)

// TestCapitalService_CalculateDetailedEquityCurve tests the two-phase
// curve reconstruction.
//
// WHY: Trades closed before the account existed must still appear on the
// curve, day by day with no gaps, and the watermark built in that phase
// must carry into the live snapshot phase.
func TestCapitalService_CalculateDetailedEquityCurve(t *testing.T) {
	t.Run("synthesizes a gap-free historical phase before live snapshots", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		// Noon UTC keeps the creation day stable across timezones.
		user := testutil.NewUser().
			WithCreatedAt(time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)).
			Build(t, db)
		testutil.CreateUserSettings(t, db, user.ID, 100000)
		svc := testutil.NewTestCapitalService(t, db, nil)

		// Trades imported from before the account existed, with a
		// two-day gap between the exits.
		testutil.CreateClosedTrade(t, db, user.ID, 1500, day(2024, 3, 1))
		testutil.CreateClosedTrade(t, db, user.ID, -500, day(2024, 3, 3))

		// Live snapshots from the creation day onward.
		recordDailyAmounts(t, svc, user.ID, day(2024, 3, 5), []float64{102000, 100500})

		points, err := svc.CalculateDetailedEquityCurve(user.ID)
		if err != nil {
			t.Fatalf("CalculateDetailedEquityCurve() returned unexpected error: %v", err)
		}

		// Four synthesized days (03-01 through 03-04) plus two snapshots.
		if len(points) != 6 {
			t.Fatalf("Expected 6 equity points, got %d", len(points))
		}

		first := points[0]
		if first.Date != "2024-03-01" {
			t.Errorf("Expected curve to start 2024-03-01, got %s", first.Date)
		}
		if first.Capital != 101500 || first.RealizedPnl != 1500 {
			t.Errorf("Expected 101500 capital with 1500 realized, got %v/%v",
				first.Capital, first.RealizedPnl)
		}
		if !first.Historical {
			t.Error("Expected pre-creation points to be flagged historical")
		}

		// 03-02 had no closing trades; the prior capital repeats.
		gap := points[1]
		if gap.Date != "2024-03-02" {
			t.Errorf("Expected gap day 2024-03-02, got %s", gap.Date)
		}
		if gap.Capital != 101500 || gap.RealizedPnl != 0 {
			t.Errorf("Expected carried capital 101500 with no P&L, got %v/%v",
				gap.Capital, gap.RealizedPnl)
		}

		if points[2].Capital != 101000 {
			t.Errorf("Expected capital 101000 after the losing day, got %v", points[2].Capital)
		}
		if points[3].Date != "2024-03-04" || !points[3].Historical {
			t.Errorf("Expected a historical point for 2024-03-04, got %+v", points[3])
		}

		live := points[4]
		if live.Date != "2024-03-05" || live.Historical {
			t.Errorf("Expected a live point for 2024-03-05, got %+v", live)
		}
		if live.Capital != 102000 {
			t.Errorf("Expected live capital 102000, got %v", live.Capital)
		}
		if live.DrawdownPct != 0 {
			t.Errorf("Expected zero drawdown at a new high, got %v", live.DrawdownPct)
		}

		// The 102000 high set on 03-05 bounds the next point's drawdown.
		last := points[5]
		if last.DrawdownPct != 1.47 {
			t.Errorf("Expected drawdown 1.47 against the live high, got %v", last.DrawdownPct)
		}
	})

	t.Run("historical peak bounds later live drawdowns", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.NewUser().
			WithCreatedAt(time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC)).
			Build(t, db)
		testutil.CreateUserSettings(t, db, user.ID, 100000)
		svc := testutil.NewTestCapitalService(t, db, nil)

		// Historical peak of 110000 on 03-01, then a flat live snapshot
		// below it.
		testutil.CreateClosedTrade(t, db, user.ID, 10000, day(2024, 3, 1))
		recordDailyAmounts(t, svc, user.ID, day(2024, 3, 3), []float64{104500})

		points, err := svc.CalculateDetailedEquityCurve(user.ID)
		if err != nil {
			t.Fatalf("CalculateDetailedEquityCurve() returned unexpected error: %v", err)
		}

		if len(points) != 3 {
			t.Fatalf("Expected 3 equity points, got %d", len(points))
		}

		// (110000 - 104500) / 110000 = 5%
		live := points[2]
		if live.Historical {
			t.Error("Expected the snapshot point to be live")
		}
		if live.DrawdownPct != 5.0 {
			t.Errorf("Expected drawdown 5.0 against the historical peak, got %v", live.DrawdownPct)
		}
	})

	t.Run("no pre-creation trades yields snapshots only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.NewUser().
			WithCreatedAt(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)).
			Build(t, db)
		testutil.CreateUserSettings(t, db, user.ID, 100000)
		svc := testutil.NewTestCapitalService(t, db, nil)

		recordDailyAmounts(t, svc, user.ID, day(2024, 3, 1), []float64{100000, 100800})

		points, err := svc.CalculateDetailedEquityCurve(user.ID)
		if err != nil {
			t.Fatalf("CalculateDetailedEquityCurve() returned unexpected error: %v", err)
		}

		if len(points) != 2 {
			t.Fatalf("Expected 2 equity points, got %d", len(points))
		}
		for _, point := range points {
			if point.Historical {
				t.Errorf("Expected no historical points, got one at %s", point.Date)
			}
		}
	})
}

// TestCapitalService_ListSnapshots tests the raw range listing.
func TestCapitalService_ListSnapshots(t *testing.T) {
	t.Run("bounds filter the returned days", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		svc := testutil.NewTestCapitalService(t, db, nil)

		recordDailyAmounts(t, svc, user.ID, day(2024, 3, 1), []float64{100000, 101000, 102000, 103000})

		changes, err := svc.ListSnapshots(user.ID, day(2024, 3, 2), day(2024, 3, 3))
		if err != nil {
			t.Fatalf("ListSnapshots() returned unexpected error: %v", err)
		}

		if len(changes) != 2 {
			t.Fatalf("Expected 2 snapshots in range, got %d", len(changes))
		}
		if changes[0].Amount != 101000 || changes[1].Amount != 102000 {
			t.Errorf("Expected amounts 101000 and 102000, got %v and %v",
				changes[0].Amount, changes[1].Amount)
		}
	})
}
