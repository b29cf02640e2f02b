package request

// JournalEntry is the request body for creating or updating a daily
// journal entry.
type JournalEntry struct {
	Date    string `json:"date"` // YYYY-MM-DD; empty means today (create only)
	Content string `json:"content"`
	Mood    string `json:"mood"`
	Rating  int    `json:"rating"`
}

// MissedTrade is the request body for logging a setup not taken.
type MissedTrade struct {
	Ticker     string  `json:"ticker"`
	Date       string  `json:"date"`
	Direction  string  `json:"direction"`
	EntryPrice float64 `json:"entryPrice"`
	ExitPrice  float64 `json:"exitPrice"`
	Shares     float64 `json:"shares"`
	Reason     string  `json:"reason"`
}

// AddWatchlistItem is the request body for watching a ticker.
type AddWatchlistItem struct {
	Ticker string `json:"ticker"`
	Notes  string `json:"notes"`
}
