package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tradelog/trade-journal-backend/internal/apperrors"
	"github.com/tradelog/trade-journal-backend/internal/model"
)

// JournalRepository provides data access methods for the journal_entry table.
type JournalRepository struct {
	db *sql.DB
}

// NewJournalRepository creates a new JournalRepository with the provided database connection.
func NewJournalRepository(db *sql.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// Create inserts a new journal entry.
// Returns apperrors.ErrDuplicateEntry if the user already journaled that day.
func (r *JournalRepository) Create(entry model.JournalEntry) error {
	query := `
		INSERT INTO journal_entry (id, user_id, date, content, mood, rating)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		entry.ID, entry.UserID, DayString(entry.Date),
		entry.Content, entry.Mood, entry.Rating,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to insert journal_entry: %w", err)
	}

	return nil
}

// Get retrieves one journal entry scoped to the owning user.
func (r *JournalRepository) Get(userID, entryID string) (model.JournalEntry, error) {
	query := `
		SELECT id, user_id, date, content, mood, rating, created_at, updated_at
		FROM journal_entry
		WHERE id = ? AND user_id = ?
	`

	row := r.db.QueryRow(query, entryID, userID)
	entry, err := scanJournalEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.JournalEntry{}, apperrors.ErrJournalEntryNotFound
	}
	if err != nil {
		return model.JournalEntry{}, err
	}

	return entry, nil
}

// ListByUser retrieves all journal entries for a user, newest first.
func (r *JournalRepository) ListByUser(userID string) ([]model.JournalEntry, error) {
	query := `
		SELECT id, user_id, date, content, mood, rating, created_at, updated_at
		FROM journal_entry
		WHERE user_id = ?
		ORDER BY date DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal_entry table: %w", err)
	}
	defer rows.Close()

	entries := []model.JournalEntry{}
	for rows.Next() {
		entry, err := scanJournalEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal_entry table: %w", err)
	}

	return entries, nil
}

// Update overwrites the mutable fields of a journal entry.
func (r *JournalRepository) Update(entry model.JournalEntry) error {
	query := `
		UPDATE journal_entry
		SET content = ?, mood = ?, rating = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := r.db.Exec(query, entry.Content, entry.Mood, entry.Rating, entry.ID, entry.UserID)
	if err != nil {
		return fmt.Errorf("failed to update journal_entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check journal_entry update: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrJournalEntryNotFound
	}

	return nil
}

// Delete removes a journal entry.
func (r *JournalRepository) Delete(userID, entryID string) error {
	result, err := r.db.Exec(`DELETE FROM journal_entry WHERE id = ? AND user_id = ?`, entryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete journal_entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check journal_entry delete: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrJournalEntryNotFound
	}

	return nil
}

func scanJournalEntry(scan func(dest ...any) error) (model.JournalEntry, error) {
	var e model.JournalEntry
	var dateStr, createdAtStr, updatedAtStr string

	err := scan(&e.ID, &e.UserID, &dateStr, &e.Content, &e.Mood, &e.Rating, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.JournalEntry{}, err
		}
		return model.JournalEntry{}, fmt.Errorf("failed to scan journal_entry table results: %w", err)
	}

	e.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.JournalEntry{}, err
	}
	e.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.JournalEntry{}, err
	}
	e.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.JournalEntry{}, err
	}

	return e, nil
}
