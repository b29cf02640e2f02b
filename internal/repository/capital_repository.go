package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tradelog/trade-journal-backend/internal/apperrors"
	"github.com/tradelog/trade-journal-backend/internal/model"
)

// CapitalRepository provides data access methods for the capital_change table.
type CapitalRepository struct {
	db *sql.DB
}

// NewCapitalRepository creates a new CapitalRepository with the provided database connection.
func NewCapitalRepository(db *sql.DB) *CapitalRepository {
	return &CapitalRepository{db: db}
}

// Upsert writes the day's capital snapshot in a single atomic statement.
// On conflict with the (user_id, date) key the amount and metadata are
// overwritten with the latest values while the day extrema are merged inside
// the statement itself: day_high = max(day_high, :amount) and
// day_low = min(day_low, :amount). The opening amount of the day is fixed by
// the first insert and never overwritten. Because the merge happens in SQL
// rather than read-modify-write, concurrent writers cannot lose an extremum.
func (r *CapitalRepository) Upsert(change model.CapitalChange) error {
	query := `
		INSERT INTO capital_change (
			id, user_id, date, amount, opening_amount, day_high, day_low,
			kind, realized_pnl, unrealized_pnl, trade_count
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			amount = excluded.amount,
			day_high = max(day_high, excluded.amount),
			day_low = min(day_low, excluded.amount),
			kind = excluded.kind,
			realized_pnl = excluded.realized_pnl,
			unrealized_pnl = excluded.unrealized_pnl,
			trade_count = excluded.trade_count
	`

	_, err := r.db.Exec(query,
		change.ID, change.UserID, DayString(change.Date),
		change.Amount, change.Amount, change.Amount, change.Amount,
		string(change.Metadata.Kind), change.Metadata.RealizedPnl,
		change.Metadata.UnrealizedPnl, change.Metadata.TradeCount,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert capital_change: %w", err)
	}

	return nil
}

// GetByUserAndDate retrieves the snapshot for one calendar day.
// Returns apperrors.ErrNoCapitalData if no row exists for that day.
func (r *CapitalRepository) GetByUserAndDate(userID string, date time.Time) (model.CapitalChange, error) {
	query := `
		SELECT id, user_id, date, amount, opening_amount, day_high, day_low,
			kind, realized_pnl, unrealized_pnl, trade_count, created_at, updated_at
		FROM capital_change
		WHERE user_id = ? AND date = ?
	`

	row := r.db.QueryRow(query, userID, DayString(date))
	change, err := scanCapitalChange(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CapitalChange{}, apperrors.ErrNoCapitalData
	}
	if err != nil {
		return model.CapitalChange{}, err
	}

	return change, nil
}

// ListByUser retrieves all snapshots for a user ordered by date ascending.
// This is the input sequence for the drawdown scan and the live phase of the
// equity curve.
func (r *CapitalRepository) ListByUser(userID string) ([]model.CapitalChange, error) {
	return r.list(`
		SELECT id, user_id, date, amount, opening_amount, day_high, day_low,
			kind, realized_pnl, unrealized_pnl, trade_count, created_at, updated_at
		FROM capital_change
		WHERE user_id = ?
		ORDER BY date ASC
	`, userID)
}

// ListRange retrieves snapshots within [startDate, endDate] ordered by date ascending.
func (r *CapitalRepository) ListRange(userID string, startDate, endDate time.Time) ([]model.CapitalChange, error) {
	return r.list(`
		SELECT id, user_id, date, amount, opening_amount, day_high, day_low,
			kind, realized_pnl, unrealized_pnl, trade_count, created_at, updated_at
		FROM capital_change
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC
	`, userID, DayString(startDate), DayString(endDate))
}

func (r *CapitalRepository) list(query string, args ...any) ([]model.CapitalChange, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query capital_change table: %w", err)
	}
	defer rows.Close()

	changes := []model.CapitalChange{}
	for rows.Next() {
		change, err := scanCapitalChange(rows.Scan)
		if err != nil {
			return nil, err
		}
		changes = append(changes, change)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating capital_change table: %w", err)
	}

	return changes, nil
}

func scanCapitalChange(scan func(dest ...any) error) (model.CapitalChange, error) {
	var c model.CapitalChange
	var dateStr, createdAtStr, updatedAtStr string

	err := scan(
		&c.ID, &c.UserID, &dateStr, &c.Amount, &c.OpeningAmount, &c.DayHigh, &c.DayLow,
		&c.Metadata.Kind, &c.Metadata.RealizedPnl, &c.Metadata.UnrealizedPnl,
		&c.Metadata.TradeCount, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.CapitalChange{}, err
		}
		return model.CapitalChange{}, fmt.Errorf("failed to scan capital_change table results: %w", err)
	}

	c.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.CapitalChange{}, err
	}
	c.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.CapitalChange{}, err
	}
	c.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.CapitalChange{}, err
	}

	return c, nil
}
