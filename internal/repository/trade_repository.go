package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tradelog/trade-journal-backend/internal/apperrors"
	"github.com/tradelog/trade-journal-backend/internal/model"
)

// tradeColumns is the canonical column list shared by every trade query.
const tradeColumns = `
	id, user_id, ticker, asset_type, direction, status,
	entry_price, entry_date, exit_price, exit_date,
	total_shares, remaining_shares, average_cost,
	stop_loss, stop_loss_33, stop_loss_66, open_risk_pct,
	realized_pnl, realized_pnl_pct, unrealized_pnl, unrealized_pnl_pct,
	mae_dollars, mae_percent, mae_r, mfe_dollars, mfe_percent, mfe_r,
	strategy, setups, notes, mistakes, created_at, updated_at
`

// TradeRepository provides data access methods for the trade and trade_action
// tables. Position mutations write the trade row and its action log in one
// transaction so the remaining-shares invariant cannot be observed half-applied.
type TradeRepository struct {
	db *sql.DB
}

// NewTradeRepository creates a new TradeRepository with the provided database connection.
func NewTradeRepository(db *sql.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// CreateTrade inserts a new trade together with its opening buy action.
func (r *TradeRepository) CreateTrade(trade model.Trade, action model.TradeAction) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertTrade(tx, trade); err != nil {
		return err
	}
	if err := insertAction(tx, action); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit trade creation: %w", err)
	}

	return nil
}

// GetTrade retrieves a single trade scoped to the owning user.
// Returns apperrors.ErrTradeNotFound if no row matches; a trade belonging to
// another user is indistinguishable from a missing one.
func (r *TradeRepository) GetTrade(userID, tradeID string) (model.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trade WHERE id = ? AND user_id = ?`

	row := r.db.QueryRow(query, tradeID, userID)
	trade, err := scanTrade(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Trade{}, apperrors.ErrTradeNotFound
	}
	if err != nil {
		return model.Trade{}, err
	}

	return trade, nil
}

// ListTrades retrieves all trades for a user, optionally filtered by status
// and ticker, ordered by entry date ascending.
func (r *TradeRepository) ListTrades(userID string, filter model.TradeFilter) ([]model.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trade WHERE user_id = ?`
	args := []any{userID}

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.Ticker != "" {
		query += ` AND ticker = ?`
		args = append(args, filter.Ticker)
	}
	query += ` ORDER BY entry_date ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade table: %w", err)
	}
	defer rows.Close()

	trades := []model.Trade{}
	for rows.Next() {
		trade, err := scanTrade(rows.Scan)
		if err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade table: %w", err)
	}

	return trades, nil
}

// GetActions retrieves the full action log for a trade, oldest first.
func (r *TradeRepository) GetActions(tradeID string) ([]model.TradeAction, error) {
	query := `
		SELECT id, trade_id, type, date, price, shares, created_at
		FROM trade_action
		WHERE trade_id = ?
		ORDER BY date ASC, created_at ASC
	`

	rows, err := r.db.Query(query, tradeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade_action table: %w", err)
	}
	defer rows.Close()

	actions := []model.TradeAction{}
	for rows.Next() {
		var a model.TradeAction
		var dateStr, createdAtStr string

		err := rows.Scan(&a.ID, &a.TradeID, &a.Type, &dateStr, &a.Price, &a.Shares, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade_action table results: %w", err)
		}

		a.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}
		a.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}

		actions = append(actions, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade_action table: %w", err)
	}

	return actions, nil
}

// ApplyAction persists a position mutation: the recalculated trade row and
// the buy/sell action that caused it, in one transaction.
func (r *TradeRepository) ApplyAction(trade model.Trade, action model.TradeAction) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	setups, err := json.Marshal(trade.Setups)
	if err != nil {
		return fmt.Errorf("failed to marshal setups: %w", err)
	}

	query := `
		UPDATE trade
		SET status = ?, exit_price = ?, exit_date = ?,
			total_shares = ?, remaining_shares = ?, average_cost = ?,
			realized_pnl = ?, realized_pnl_pct = ?,
			unrealized_pnl = ?, unrealized_pnl_pct = ?,
			mae_dollars = ?, mae_percent = ?, mae_r = ?,
			mfe_dollars = ?, mfe_percent = ?, mfe_r = ?,
			setups = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := tx.Exec(query,
		string(trade.Status), nullFloat(trade.ExitPrice), nullTime(trade.ExitDate),
		trade.TotalShares, trade.RemainingShares, trade.AverageCost,
		trade.RealizedPnl, trade.RealizedPnlPct,
		trade.UnrealizedPnl, trade.UnrealizedPnlPct,
		trade.MAEDollars, trade.MAEPercent, trade.MAER,
		trade.MFEDollars, trade.MFEPercent, trade.MFER,
		string(setups),
		trade.ID, trade.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trade: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check trade update: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTradeNotFound
	}

	if err := insertAction(tx, action); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit trade action: %w", err)
	}

	return nil
}

// UpdateJournalFields updates the notes and mistakes fields only.
// This is the one mutation permitted on closed trades.
func (r *TradeRepository) UpdateJournalFields(userID, tradeID, notes, mistakes string) error {
	query := `
		UPDATE trade
		SET notes = ?, mistakes = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := r.db.Exec(query, notes, mistakes, tradeID, userID)
	if err != nil {
		return fmt.Errorf("failed to update trade journal fields: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check trade update: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTradeNotFound
	}

	return nil
}

func insertTrade(tx *sql.Tx, trade model.Trade) error {
	setups, err := json.Marshal(trade.Setups)
	if err != nil {
		return fmt.Errorf("failed to marshal setups: %w", err)
	}

	query := `
		INSERT INTO trade (
			id, user_id, ticker, asset_type, direction, status,
			entry_price, entry_date, exit_price, exit_date,
			total_shares, remaining_shares, average_cost,
			stop_loss, stop_loss_33, stop_loss_66, open_risk_pct,
			realized_pnl, realized_pnl_pct, unrealized_pnl, unrealized_pnl_pct,
			strategy, setups, notes, mistakes
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = tx.Exec(query,
		trade.ID, trade.UserID, trade.Ticker, string(trade.AssetType), string(trade.Direction), string(trade.Status),
		trade.EntryPrice, trade.EntryDate.UTC().Format(time.RFC3339), nullFloat(trade.ExitPrice), nullTime(trade.ExitDate),
		trade.TotalShares, trade.RemainingShares, trade.AverageCost,
		trade.StopLoss, trade.StopLoss33, trade.StopLoss66, trade.OpenRiskPct,
		trade.RealizedPnl, trade.RealizedPnlPct, trade.UnrealizedPnl, trade.UnrealizedPnlPct,
		trade.Strategy, string(setups), trade.Notes, trade.Mistakes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}

	return nil
}

func insertAction(tx *sql.Tx, action model.TradeAction) error {
	query := `
		INSERT INTO trade_action (id, trade_id, type, date, price, shares)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := tx.Exec(query,
		action.ID, action.TradeID, string(action.Type),
		action.Date.UTC().Format(time.RFC3339), action.Price, action.Shares,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade_action: %w", err)
	}

	return nil
}

// scanTrade maps one trade row through any row scanner (sql.Row or sql.Rows).
func scanTrade(scan func(dest ...any) error) (model.Trade, error) {
	var t model.Trade
	var entryDateStr, createdAtStr, updatedAtStr string
	var exitPrice sql.NullFloat64
	var exitDateStr sql.NullString
	var setupsStr string

	err := scan(
		&t.ID, &t.UserID, &t.Ticker, &t.AssetType, &t.Direction, &t.Status,
		&t.EntryPrice, &entryDateStr, &exitPrice, &exitDateStr,
		&t.TotalShares, &t.RemainingShares, &t.AverageCost,
		&t.StopLoss, &t.StopLoss33, &t.StopLoss66, &t.OpenRiskPct,
		&t.RealizedPnl, &t.RealizedPnlPct, &t.UnrealizedPnl, &t.UnrealizedPnlPct,
		&t.MAEDollars, &t.MAEPercent, &t.MAER, &t.MFEDollars, &t.MFEPercent, &t.MFER,
		&t.Strategy, &setupsStr, &t.Notes, &t.Mistakes, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Trade{}, err
		}
		return model.Trade{}, fmt.Errorf("failed to scan trade table results: %w", err)
	}

	t.EntryDate, err = ParseTime(entryDateStr)
	if err != nil {
		return model.Trade{}, err
	}
	if exitPrice.Valid {
		t.ExitPrice = exitPrice.Float64
	}
	if exitDateStr.Valid && exitDateStr.String != "" {
		t.ExitDate, err = ParseTime(exitDateStr.String)
		if err != nil {
			return model.Trade{}, err
		}
	}
	if err := json.Unmarshal([]byte(setupsStr), &t.Setups); err != nil {
		return model.Trade{}, fmt.Errorf("failed to unmarshal setups: %w", err)
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Trade{}, err
	}
	t.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.Trade{}, err
	}

	return t, nil
}

func nullFloat(f float64) any {
	if f == 0 {
		return nil
	}
	return f
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
