package model

// PerformanceBucket aggregates closed-trade outcomes for one grouping key
// (entry hour, weekday, or strategy tag).
type PerformanceBucket struct {
	Key        string  `json:"key"`
	TradeCount int     `json:"tradeCount"`
	WinCount   int     `json:"winCount"`
	WinRate    float64 `json:"winRate"` // percent
	TotalPnl   float64 `json:"totalPnl"`
	AveragePnl float64 `json:"averagePnl"`
}

// ExcursionPoint is one MAE/MFE scatter point for a closed trade.
type ExcursionPoint struct {
	TradeID     string  `json:"tradeId"`
	Ticker      string  `json:"ticker"`
	MAEPercent  float64 `json:"maePercent"`
	MFEPercent  float64 `json:"mfePercent"`
	RealizedPnl float64 `json:"realizedPnl"`
	Win         bool    `json:"win"`
}

// PerformanceSummary is the headline statistics block over closed trades.
type PerformanceSummary struct {
	TradeCount   int     `json:"tradeCount"`
	WinCount     int     `json:"winCount"`
	LossCount    int     `json:"lossCount"`
	WinRate      float64 `json:"winRate"` // percent
	TotalPnl     float64 `json:"totalPnl"`
	AverageWin   float64 `json:"averageWin"`
	AverageLoss  float64 `json:"averageLoss"` // negative
	ProfitFactor float64 `json:"profitFactor"`
	Expectancy   float64 `json:"expectancy"` // per-trade expected P&L
}
