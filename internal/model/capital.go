package model

import "time"

// ChangeKind tags the shape of a capital-change record. The known variants
// are explicit rather than a free-form metadata blob.
type ChangeKind string

// Change kinds.
const (
	// ChangeEndOfDay marks the final mark-to-market snapshot of a day.
	ChangeEndOfDay ChangeKind = "end_of_day"

	// ChangeInterim marks an intraday mark-to-market snapshot.
	ChangeInterim ChangeKind = "interim"

	// ChangeManual marks a user-entered adjustment (deposit, withdrawal,
	// correction).
	ChangeManual ChangeKind = "manual"

	// ChangeHistorical marks a row synthesized by the historical-trade
	// backfill for days that predate daily tracking.
	ChangeHistorical ChangeKind = "historical"
)

// ChangeMetadata carries the P&L breakdown attached to a capital change.
type ChangeMetadata struct {
	Kind          ChangeKind `json:"kind"`
	RealizedPnl   float64    `json:"realizedPnl"`
	UnrealizedPnl float64    `json:"unrealizedPnl"`
	TradeCount    int        `json:"tradeCount"`
}

// CapitalChange is the authoritative capital snapshot for one (user, day).
//
// Invariants:
//   - at most one row per user per calendar day, enforced by upsert on the
//     (user_id, date) unique key
//   - DayLow <= Amount <= DayHigh
//
// Amount holds the latest value written for the day; OpeningAmount is fixed
// by the day's first write; DayHigh/DayLow are refined monotonically intraday.
type CapitalChange struct {
	ID            string         `json:"id"`
	UserID        string         `json:"userId"`
	Date          time.Time      `json:"date"` // calendar day, midnight UTC
	Amount        float64        `json:"amount"`
	OpeningAmount float64        `json:"openingAmount"`
	DayHigh       float64        `json:"dayHigh"`
	DayLow        float64        `json:"dayLow"`
	Metadata      ChangeMetadata `json:"metadata"`
	CreatedAt     time.Time      `json:"createdAt,omitempty"`
	UpdatedAt     time.Time      `json:"updatedAt,omitempty"`
}

// CurrentCapital is the live capital figure with its P&L breakdown.
type CurrentCapital struct {
	Capital        float64 `json:"capital"`
	StartingCash   float64 `json:"startingCash"`
	RealizedPnl    float64 `json:"realizedPnl"`
	UnrealizedPnl  float64 `json:"unrealizedPnl"`
	OpenTradeCount int     `json:"openTradeCount"`
}

// DrawdownPeriod is a contiguous span where capital sits below the running
// high-watermark. Derived on each request, never persisted.
type DrawdownPeriod struct {
	StartDate       time.Time `json:"startDate"`
	StartCapital    float64   `json:"startCapital"` // watermark at entry
	LowestCapital   float64   `json:"lowestCapital"`
	LowestDate      time.Time `json:"lowestDate"`
	Recovered       bool      `json:"recovered"`
	RecoveryDate    time.Time `json:"recoveryDate,omitzero"`
	RecoveryCapital float64   `json:"recoveryCapital,omitempty"`
	DrawdownPct     float64   `json:"drawdownPct"`
}

// DrawdownMetrics summarizes a full watermark scan of the snapshot sequence.
type DrawdownMetrics struct {
	CurrentDrawdown float64          `json:"currentDrawdown"`
	MaxDrawdown     float64          `json:"maxDrawdown"`
	Periods         []DrawdownPeriod `json:"drawdownPeriods"`
}

// EquityPoint is one point on the detailed equity curve.
// Historical marks points synthesized from pre-account-creation trades;
// live points come from persisted capital snapshots.
type EquityPoint struct {
	Date          string  `json:"date"` // YYYY-MM-DD
	Capital       float64 `json:"capital"`
	RealizedPnl   float64 `json:"realizedPnl"`
	UnrealizedPnl float64 `json:"unrealizedPnl"`
	DrawdownPct   float64 `json:"drawdownPct"`
	RunupPct      float64 `json:"runupPct"`
	Historical    bool    `json:"historical"`
}

// DailyCapitalStats is the OHLC-style reduction of one day's capital activity.
type DailyCapitalStats struct {
	Date          string  `json:"date"` // YYYY-MM-DD
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Close         float64 `json:"close"`
	RealizedPnl   float64 `json:"realizedPnl"`
	UnrealizedPnl float64 `json:"unrealizedPnl"`
	TradeCount    int     `json:"tradeCount"`
}
