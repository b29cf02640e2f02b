package model

import "time"

// JournalEntry is a free-text daily journal record with a psychology rating.
type JournalEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      time.Time `json:"date"` // calendar day
	Content   string    `json:"content"`
	Mood      string    `json:"mood"`
	Rating    int       `json:"rating"` // 1-5 self-assessment
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// MissedTrade logs a setup the user saw but did not take.
type MissedTrade struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Ticker     string    `json:"ticker"`
	Date       time.Time `json:"date"`
	Direction  Direction `json:"direction"`
	EntryPrice float64   `json:"entryPrice"`
	ExitPrice  float64   `json:"exitPrice"`
	Shares     float64   `json:"shares"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}

// WatchlistItem is a ticker the user is tracking for future setups.
type WatchlistItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Ticker    string    `json:"ticker"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
