package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/tradelog/trade-journal-backend/internal/apperrors"
	"github.com/tradelog/trade-journal-backend/internal/model"
)

// SettingsRepository provides data access methods for the user_settings table.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository with the provided database connection.
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetByUserID retrieves the settings row for a user.
// Returns apperrors.ErrSettingsNotFound if the user has no settings yet.
func (r *SettingsRepository) GetByUserID(userID string) (model.UserSettings, error) {
	query := `
		SELECT id, user_id, starting_cash, display_name, timezone, created_at, updated_at
		FROM user_settings
		WHERE user_id = ?
	`

	var s model.UserSettings
	var createdAtStr, updatedAtStr string

	err := r.db.QueryRow(query, userID).Scan(
		&s.ID,
		&s.UserID,
		&s.StartingCash,
		&s.DisplayName,
		&s.Timezone,
		&createdAtStr,
		&updatedAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.UserSettings{}, apperrors.ErrSettingsNotFound
	}
	if err != nil {
		return model.UserSettings{}, fmt.Errorf("failed to scan user_settings table results: %w", err)
	}

	s.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.UserSettings{}, err
	}
	s.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.UserSettings{}, err
	}

	return s, nil
}

// Create inserts a new settings row for a user.
func (r *SettingsRepository) Create(s model.UserSettings) error {
	query := `
		INSERT INTO user_settings (id, user_id, starting_cash, display_name, timezone)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, s.ID, s.UserID, s.StartingCash, s.DisplayName, s.Timezone)
	if err != nil {
		return fmt.Errorf("failed to insert user_settings: %w", err)
	}

	return nil
}

// Update overwrites the mutable settings fields for a user.
func (r *SettingsRepository) Update(s model.UserSettings) error {
	query := `
		UPDATE user_settings
		SET starting_cash = ?, display_name = ?, timezone = ?
		WHERE user_id = ?
	`

	result, err := r.db.Exec(query, s.StartingCash, s.DisplayName, s.Timezone, s.UserID)
	if err != nil {
		return fmt.Errorf("failed to update user_settings: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check user_settings update: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrSettingsNotFound
	}

	return nil
}
