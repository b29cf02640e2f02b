package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/tradelog/trade-journal-backend/internal/apperrors"
	"github.com/tradelog/trade-journal-backend/internal/model"
)

// WatchlistRepository provides data access methods for the watchlist table.
type WatchlistRepository struct {
	db *sql.DB
}

// NewWatchlistRepository creates a new WatchlistRepository with the provided database connection.
func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// Add inserts a ticker onto the user's watchlist.
// Returns apperrors.ErrDuplicateEntry if the ticker is already listed.
func (r *WatchlistRepository) Add(item model.WatchlistItem) error {
	query := `
		INSERT INTO watchlist (id, user_id, ticker, notes)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, item.ID, item.UserID, item.Ticker, item.Notes)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to insert watchlist item: %w", err)
	}

	return nil
}

// ListByUser retrieves the user's watchlist ordered by ticker.
func (r *WatchlistRepository) ListByUser(userID string) ([]model.WatchlistItem, error) {
	query := `
		SELECT id, user_id, ticker, notes, created_at
		FROM watchlist
		WHERE user_id = ?
		ORDER BY ticker ASC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist table: %w", err)
	}
	defer rows.Close()

	items := []model.WatchlistItem{}
	for rows.Next() {
		var item model.WatchlistItem
		var createdAtStr string

		err := rows.Scan(&item.ID, &item.UserID, &item.Ticker, &item.Notes, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watchlist table results: %w", err)
		}

		item.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating watchlist table: %w", err)
	}

	return items, nil
}

// Remove deletes a watchlist item.
func (r *WatchlistRepository) Remove(userID, itemID string) error {
	result, err := r.db.Exec(`DELETE FROM watchlist WHERE id = ? AND user_id = ?`, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete watchlist item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check watchlist delete: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrWatchlistItemNotFound
	}

	return nil
}
