package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- User table (quoted because user is a reserved keyword)
		CREATE TABLE "user" (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- User settings table
		CREATE TABLE user_settings (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL UNIQUE,
			starting_cash FLOAT NOT NULL DEFAULT 0,
			display_name VARCHAR(100) NOT NULL DEFAULT '',
			timezone VARCHAR(50) NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(user_id) REFERENCES "user"(id) ON DELETE CASCADE
		);

		-- Trade table
		CREATE TABLE trade (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			ticker VARCHAR(10) NOT NULL,
			asset_type VARCHAR(10) NOT NULL CHECK (asset_type IN ('stock', 'option')),
			direction VARCHAR(5) NOT NULL CHECK (direction IN ('long', 'short')),
			status VARCHAR(6) NOT NULL CHECK (status IN ('open', 'closed')),
			entry_price FLOAT NOT NULL,
			entry_date DATETIME NOT NULL,
			exit_price FLOAT,
			exit_date DATETIME,
			total_shares FLOAT NOT NULL,
			remaining_shares FLOAT NOT NULL,
			average_cost FLOAT NOT NULL,
			stop_loss FLOAT NOT NULL DEFAULT 0,
			stop_loss_33 FLOAT NOT NULL DEFAULT 0,
			stop_loss_66 FLOAT NOT NULL DEFAULT 0,
			open_risk_pct FLOAT NOT NULL DEFAULT 0,
			realized_pnl FLOAT NOT NULL DEFAULT 0,
			realized_pnl_pct FLOAT NOT NULL DEFAULT 0,
			unrealized_pnl FLOAT NOT NULL DEFAULT 0,
			unrealized_pnl_pct FLOAT NOT NULL DEFAULT 0,
			mae_dollars FLOAT NOT NULL DEFAULT 0,
			mae_percent FLOAT NOT NULL DEFAULT 0,
			mae_r FLOAT NOT NULL DEFAULT 0,
			mfe_dollars FLOAT NOT NULL DEFAULT 0,
			mfe_percent FLOAT NOT NULL DEFAULT 0,
			mfe_r FLOAT NOT NULL DEFAULT 0,
			strategy VARCHAR(100) NOT NULL DEFAULT '',
			setups TEXT NOT NULL DEFAULT '[]',
			notes TEXT NOT NULL DEFAULT '',
			mistakes TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(user_id) REFERENCES "user"(id) ON DELETE CASCADE
		);

		-- Trade action table
		CREATE TABLE trade_action (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			trade_id VARCHAR(36) NOT NULL,
			type VARCHAR(4) NOT NULL CHECK (type IN ('buy', 'sell')),
			date DATETIME NOT NULL,
			price FLOAT NOT NULL,
			shares FLOAT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(trade_id) REFERENCES trade(id) ON DELETE CASCADE
		);

		-- Capital change table
		CREATE TABLE capital_change (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			amount FLOAT NOT NULL,
			opening_amount FLOAT NOT NULL,
			day_high FLOAT NOT NULL,
			day_low FLOAT NOT NULL,
			kind VARCHAR(20) NOT NULL CHECK (kind IN ('end_of_day', 'interim', 'manual', 'historical')),
			realized_pnl FLOAT NOT NULL DEFAULT 0,
			unrealized_pnl FLOAT NOT NULL DEFAULT 0,
			trade_count INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(user_id) REFERENCES "user"(id) ON DELETE CASCADE,
			CONSTRAINT unique_user_date UNIQUE (user_id, date)
		);

		-- Journal entry table
		CREATE TABLE journal_entry (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			mood VARCHAR(20) NOT NULL DEFAULT '',
			rating INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(user_id) REFERENCES "user"(id) ON DELETE CASCADE,
			CONSTRAINT unique_user_day UNIQUE (user_id, date)
		);

		-- Missed trade table
		CREATE TABLE missed_trade (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			ticker VARCHAR(10) NOT NULL,
			date DATE NOT NULL,
			direction VARCHAR(5) NOT NULL CHECK (direction IN ('long', 'short')),
			entry_price FLOAT NOT NULL DEFAULT 0,
			exit_price FLOAT NOT NULL DEFAULT 0,
			shares FLOAT NOT NULL DEFAULT 0,
			reason TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(user_id) REFERENCES "user"(id) ON DELETE CASCADE
		);

		-- Watchlist table
		CREATE TABLE watchlist (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			ticker VARCHAR(10) NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(user_id) REFERENCES "user"(id) ON DELETE CASCADE,
			CONSTRAINT unique_user_ticker UNIQUE (user_id, ticker)
		);
	`

	_, err := db.Exec(schema)
	return err
}
