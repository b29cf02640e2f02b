package request

// OpenTrade is the request body for opening a new position.
type OpenTrade struct {
	Ticker       string   `json:"ticker"`
	AssetType    string   `json:"assetType"`
	Direction    string   `json:"direction"`
	EntryPrice   float64  `json:"entryPrice"`
	Shares       float64  `json:"shares"`
	StopLoss     float64  `json:"stopLoss"`
	Strategy     string   `json:"strategy"`
	Setups       []string `json:"setups"`
	Notes        string   `json:"notes"`
	EntryDate    string   `json:"entryDate"`    // RFC3339 or YYYY-MM-DD; empty means now
	CurrentPrice float64  `json:"currentPrice"` // optional; 0 means "at entry price"
}

// TradeAction is the request body for an add-on or a trim/close.
type TradeAction struct {
	Price        float64 `json:"price"`
	Shares       float64 `json:"shares"`
	Date         string  `json:"date"` // RFC3339 or YYYY-MM-DD; empty means now
	CurrentPrice float64 `json:"currentPrice"`
}

// UpdateTradeJournal is the request body for editing a trade's notes and
// mistakes, the only fields mutable after close.
type UpdateTradeJournal struct {
	Notes    string `json:"notes"`
	Mistakes string `json:"mistakes"`
}
