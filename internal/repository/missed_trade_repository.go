package repository

import (
	"database/sql"
	"fmt"

	"github.com/tradelog/trade-journal-backend/internal/apperrors"
	"github.com/tradelog/trade-journal-backend/internal/model"
)

// MissedTradeRepository provides data access methods for the missed_trade table.
type MissedTradeRepository struct {
	db *sql.DB
}

// NewMissedTradeRepository creates a new MissedTradeRepository with the provided database connection.
func NewMissedTradeRepository(db *sql.DB) *MissedTradeRepository {
	return &MissedTradeRepository{db: db}
}

// Create inserts a new missed-trade record.
func (r *MissedTradeRepository) Create(mt model.MissedTrade) error {
	query := `
		INSERT INTO missed_trade (id, user_id, ticker, date, direction, entry_price, exit_price, shares, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		mt.ID, mt.UserID, mt.Ticker, DayString(mt.Date), string(mt.Direction),
		mt.EntryPrice, mt.ExitPrice, mt.Shares, mt.Reason,
	)
	if err != nil {
		return fmt.Errorf("failed to insert missed_trade: %w", err)
	}

	return nil
}

// ListByUser retrieves all missed trades for a user, newest first.
func (r *MissedTradeRepository) ListByUser(userID string) ([]model.MissedTrade, error) {
	query := `
		SELECT id, user_id, ticker, date, direction, entry_price, exit_price, shares, reason, created_at
		FROM missed_trade
		WHERE user_id = ?
		ORDER BY date DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query missed_trade table: %w", err)
	}
	defer rows.Close()

	missed := []model.MissedTrade{}
	for rows.Next() {
		var mt model.MissedTrade
		var dateStr, createdAtStr string

		err := rows.Scan(
			&mt.ID, &mt.UserID, &mt.Ticker, &dateStr, &mt.Direction,
			&mt.EntryPrice, &mt.ExitPrice, &mt.Shares, &mt.Reason, &createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan missed_trade table results: %w", err)
		}

		mt.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}
		mt.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}

		missed = append(missed, mt)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating missed_trade table: %w", err)
	}

	return missed, nil
}

// Delete removes a missed-trade record.
func (r *MissedTradeRepository) Delete(userID, missedTradeID string) error {
	result, err := r.db.Exec(`DELETE FROM missed_trade WHERE id = ? AND user_id = ?`, missedTradeID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete missed_trade: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check missed_trade delete: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrMissedTradeNotFound
	}

	return nil
}
