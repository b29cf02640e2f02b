package testutil

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/tradelog/trade-journal-backend/internal/model"
)

// UserBuilder provides a fluent interface for creating test users.
//
// Example usage:
//
//	// Simple creation with defaults
//	user := testutil.NewUser().Build(t, db)
//
//	// Account created at a fixed point in time
//	user := testutil.NewUser().
//	    WithEmail("trader@example.com").
//	    WithCreatedAt(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)).
//	    Build(t, db)
type UserBuilder struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NewUser creates a UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	return &UserBuilder{
		ID:           MakeID(),
		Email:        MakeEmail(),
		PasswordHash: "irrelevant",
	}
}

// WithID sets a custom ID.
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.ID = id
	return b
}

// WithEmail sets a custom email.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

// WithCreatedAt pins the account-creation timestamp, which decides the
// historical/live boundary of the equity curve.
func (b *UserBuilder) WithCreatedAt(createdAt time.Time) *UserBuilder {
	b.CreatedAt = createdAt
	return b
}

// Build creates the user in the database and returns it.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO "user" (id, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Email, b.PasswordHash, b.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return model.User{
		ID:           b.ID,
		Email:        b.Email,
		PasswordHash: b.PasswordHash,
		CreatedAt:    b.CreatedAt,
	}
}

// TradeBuilder provides a fluent interface for creating test trades.
//
// Example usage:
//
//	trade := testutil.NewTrade(user.ID).
//	    WithTicker("AAPL").
//	    Closed(1500, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)).
//	    Build(t, db)
type TradeBuilder struct {
	Trade model.Trade
}

// NewTrade creates a TradeBuilder for an open long stock position.
func NewTrade(userID string) *TradeBuilder {
	return &TradeBuilder{
		Trade: model.Trade{
			ID:              MakeID(),
			UserID:          userID,
			Ticker:          "AAPL",
			AssetType:       model.AssetStock,
			Direction:       model.DirectionLong,
			Status:          model.StatusOpen,
			EntryPrice:      100,
			EntryDate:       time.Now().UTC(),
			TotalShares:     10,
			RemainingShares: 10,
			AverageCost:     100,
			Setups:          []string{},
		},
	}
}

// WithTicker sets a custom ticker.
func (b *TradeBuilder) WithTicker(ticker string) *TradeBuilder {
	b.Trade.Ticker = ticker
	return b
}

// WithDirection sets the position direction.
func (b *TradeBuilder) WithDirection(direction model.Direction) *TradeBuilder {
	b.Trade.Direction = direction
	return b
}

// WithEntry sets the entry price and share count; average cost follows the
// entry price.
func (b *TradeBuilder) WithEntry(price, shares float64) *TradeBuilder {
	b.Trade.EntryPrice = price
	b.Trade.AverageCost = price
	b.Trade.TotalShares = shares
	b.Trade.RemainingShares = shares
	return b
}

// WithEntryDate sets the entry timestamp.
func (b *TradeBuilder) WithEntryDate(date time.Time) *TradeBuilder {
	b.Trade.EntryDate = date
	return b
}

// WithStrategy sets the strategy tag.
func (b *TradeBuilder) WithStrategy(strategy string) *TradeBuilder {
	b.Trade.Strategy = strategy
	return b
}

// WithUnrealizedPnl sets the persisted unrealized P&L, the stale value the
// capital engine falls back to when quotes are unavailable.
func (b *TradeBuilder) WithUnrealizedPnl(pnl float64) *TradeBuilder {
	b.Trade.UnrealizedPnl = pnl
	return b
}

// WithExcursions sets the MAE/MFE percentages.
func (b *TradeBuilder) WithExcursions(maePct, mfePct float64) *TradeBuilder {
	b.Trade.MAEPercent = maePct
	b.Trade.MFEPercent = mfePct
	return b
}

// Closed marks the trade closed with the given realized P&L and exit date.
func (b *TradeBuilder) Closed(realizedPnl float64, exitDate time.Time) *TradeBuilder {
	b.Trade.Status = model.StatusClosed
	b.Trade.RealizedPnl = realizedPnl
	b.Trade.ExitDate = exitDate
	b.Trade.ExitPrice = b.Trade.EntryPrice
	b.Trade.RemainingShares = 0
	return b
}

// Build creates the trade in the database and returns it.
func (b *TradeBuilder) Build(t *testing.T, db *sql.DB) model.Trade {
	t.Helper()

	setups, err := json.Marshal(b.Trade.Setups)
	if err != nil {
		t.Fatalf("Failed to marshal setups: %v", err)
	}

	query := `
		INSERT INTO trade (
			id, user_id, ticker, asset_type, direction, status,
			entry_price, entry_date, exit_price, exit_date,
			total_shares, remaining_shares, average_cost,
			stop_loss, stop_loss_33, stop_loss_66, open_risk_pct,
			realized_pnl, realized_pnl_pct, unrealized_pnl, unrealized_pnl_pct,
			mae_dollars, mae_percent, mae_r, mfe_dollars, mfe_percent, mfe_r,
			strategy, setups, notes, mistakes
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	tr := b.Trade
	var exitDate any
	if !tr.ExitDate.IsZero() {
		exitDate = tr.ExitDate.UTC().Format(time.RFC3339)
	}

	_, err = db.Exec(query,
		tr.ID, tr.UserID, tr.Ticker, string(tr.AssetType), string(tr.Direction), string(tr.Status),
		tr.EntryPrice, tr.EntryDate.UTC().Format(time.RFC3339), tr.ExitPrice, exitDate,
		tr.TotalShares, tr.RemainingShares, tr.AverageCost,
		tr.StopLoss, tr.StopLoss33, tr.StopLoss66, tr.OpenRiskPct,
		tr.RealizedPnl, tr.RealizedPnlPct, tr.UnrealizedPnl, tr.UnrealizedPnlPct,
		tr.MAEDollars, tr.MAEPercent, tr.MAER, tr.MFEDollars, tr.MFEPercent, tr.MFER,
		tr.Strategy, string(setups), tr.Notes, tr.Mistakes,
	)
	if err != nil {
		t.Fatalf("Failed to create test trade: %v", err)
	}

	return tr
}

// Convenience functions

// CreateUser creates a user with default values.
func CreateUser(t *testing.T, db *sql.DB) model.User {
	t.Helper()
	return NewUser().Build(t, db)
}

// CreateUserSettings inserts a settings row with the given starting cash.
func CreateUserSettings(t *testing.T, db *sql.DB, userID string, startingCash float64) {
	t.Helper()

	query := `
		INSERT INTO user_settings (id, user_id, starting_cash)
		VALUES (?, ?, ?)
	`

	if _, err := db.Exec(query, MakeID(), userID, startingCash); err != nil {
		t.Fatalf("Failed to create test user settings: %v", err)
	}
}

// CreateClosedTrade creates a closed trade with the given realized P&L and
// exit date.
func CreateClosedTrade(t *testing.T, db *sql.DB, userID string, realizedPnl float64, exitDate time.Time) model.Trade {
	t.Helper()
	return NewTrade(userID).WithTicker(MakeTicker()).Closed(realizedPnl, exitDate).Build(t, db)
}
