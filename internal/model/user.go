package model

import "time"

// User represents an account holder. CreatedAt doubles as the boundary
// between the historical equity-curve backfill and live snapshot tracking.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserSettings holds per-user journal configuration. Created lazily with the
// configured default starting cash on first access if absent.
type UserSettings struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	StartingCash float64   `json:"startingCash"`
	DisplayName  string    `json:"displayName"`
	Timezone     string    `json:"timezone"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}
