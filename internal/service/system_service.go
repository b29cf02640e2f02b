package service

import (
	"database/sql"

	"github.com/tradelog/trade-journal-backend/internal/database"
	"github.com/tradelog/trade-journal-backend/internal/version"
)

// SystemService reports operational health of the backing services.
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService.
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{db: db}
}

// CheckHealth verifies database connectivity.
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// AppVersion returns the build version.
func (s *SystemService) AppVersion() string {
	return version.Version
}
