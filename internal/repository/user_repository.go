package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tradelog/trade-journal-backend/internal/apperrors"
	"github.com/tradelog/trade-journal-backend/internal/model"
)

// UserRepository provides data access methods for the user table.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user row.
// Returns apperrors.ErrEmailTaken when the email is already registered.
func (r *UserRepository) CreateUser(user model.User) error {
	query := `
		INSERT INTO "user" (id, email, password_hash)
		VALUES (?, ?, ?)
	`

	_, err := r.db.Exec(query, user.ID, user.Email, user.PasswordHash)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.ErrEmailTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by ID.
// Returns apperrors.ErrUserNotFound if no row matches.
func (r *UserRepository) GetUserByID(userID string) (model.User, error) {
	return r.getUser(`SELECT id, email, password_hash, created_at FROM "user" WHERE id = ?`, userID)
}

// GetUserByEmail retrieves a user by email.
// Returns apperrors.ErrUserNotFound if no row matches.
func (r *UserRepository) GetUserByEmail(email string) (model.User, error) {
	return r.getUser(`SELECT id, email, password_hash, created_at FROM "user" WHERE email = ?`, email)
}

// ListUserIDs returns the IDs of all registered users, used by the
// mark-to-market scheduler to iterate accounts.
func (r *UserRepository) ListUserIDs() ([]string, error) {
	rows, err := r.db.Query(`SELECT id FROM "user" ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query user table: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user table results: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user table: %w", err)
	}

	return ids, nil
}

func (r *UserRepository) getUser(query string, arg any) (model.User, error) {
	var u model.User
	var createdAtStr string

	err := r.db.QueryRow(query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to scan user table results: %w", err)
	}

	u.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.User{}, err
	}

	return u, nil
}
