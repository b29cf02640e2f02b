package model

import "time"

// TradeStatus enumerates the lifecycle states of a trade.
type TradeStatus string

// Trade status values. A trade is Closed exactly when its remaining shares
// reach zero; it can never reopen.
const (
	StatusOpen   TradeStatus = "open"
	StatusClosed TradeStatus = "closed"
)

// Direction enumerates which way a position is taken.
type Direction string

// Direction values.
const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// AssetType enumerates the instrument classes the journal tracks.
type AssetType string

// Asset type values.
const (
	AssetStock  AssetType = "stock"
	AssetOption AssetType = "option"
)

// ActionType enumerates buy/sell events recorded against a trade.
type ActionType string

// Action type values.
const (
	ActionBuy  ActionType = "buy"
	ActionSell ActionType = "sell"
)

// Trade represents a single journaled position. One row covers the entire
// lifetime of the position; every buy and sell against it is recorded as a
// TradeAction.
//
// Invariants:
//   - RemainingShares = TotalShares - sum of sell-action shares
//   - Status is Closed iff RemainingShares == 0
//   - Closed trades are immutable except for Notes and Mistakes
type Trade struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	Ticker          string      `json:"ticker"`
	AssetType       AssetType   `json:"assetType"`
	Direction       Direction   `json:"direction"`
	Status          TradeStatus `json:"status"`
	EntryPrice      float64     `json:"entryPrice"`
	EntryDate       time.Time   `json:"entryDate"`
	ExitPrice       float64     `json:"exitPrice,omitempty"`
	ExitDate        time.Time   `json:"exitDate,omitzero"`
	TotalShares     float64     `json:"totalShares"`
	RemainingShares float64     `json:"remainingShares"`
	AverageCost     float64     `json:"averageCost"`

	// Stop-loss levels. StopLoss33 and StopLoss66 sit at 33% and 66% of the
	// distance from entry to the full stop and are fixed at entry time.
	StopLoss    float64 `json:"stopLoss"`
	StopLoss33  float64 `json:"stopLoss33"`
	StopLoss66  float64 `json:"stopLoss66"`
	OpenRiskPct float64 `json:"openRiskPct"`

	RealizedPnl      float64 `json:"realizedPnl"`
	RealizedPnlPct   float64 `json:"realizedPnlPct"`
	UnrealizedPnl    float64 `json:"unrealizedPnl"`
	UnrealizedPnlPct float64 `json:"unrealizedPnlPct"`

	// Excursion metrics, populated when the trade closes.
	MAEDollars float64 `json:"maeDollars"`
	MAEPercent float64 `json:"maePercent"`
	MAER       float64 `json:"maeR"`
	MFEDollars float64 `json:"mfeDollars"`
	MFEPercent float64 `json:"mfePercent"`
	MFER       float64 `json:"mfeR"`

	Strategy string   `json:"strategy"`
	Setups   []string `json:"setups"`
	Notes    string   `json:"notes"`
	Mistakes string   `json:"mistakes"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// TradeAction records one buy or sell event against a trade.
type TradeAction struct {
	ID        string     `json:"id"`
	TradeID   string     `json:"tradeId"`
	Type      ActionType `json:"type"`
	Date      time.Time  `json:"date"`
	Price     float64    `json:"price"`
	Shares    float64    `json:"shares"`
	CreatedAt time.Time  `json:"createdAt,omitempty"`
}

// TradeDetail bundles a trade with its full action log for detail views.
type TradeDetail struct {
	Trade   Trade         `json:"trade"`
	Actions []TradeAction `json:"actions"`
}

// TradeFilter narrows trade list queries.
type TradeFilter struct {
	Status TradeStatus // empty means both open and closed
	Ticker string
}
