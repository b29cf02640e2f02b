package testutil

import (
	"database/sql"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tradelog/trade-journal-backend/internal/marketdata"
	"github.com/tradelog/trade-journal-backend/internal/repository"
	"github.com/tradelog/trade-journal-backend/internal/service"
)

// MakeID returns a fresh UUID string.
func MakeID() string {
	return uuid.NewString()
}

// MakeEmail returns a unique email address.
func MakeEmail() string {
	return fmt.Sprintf("trader-%s@example.com", uuid.NewString()[:8])
}

// MakeTicker returns a random four-letter ticker.
func MakeTicker() string {
	letters := []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	ticker := make([]rune, 4)
	for i := range ticker {
		ticker[i] = letters[rand.Intn(len(letters))]
	}
	return string(ticker)
}

// TestLocation is the reference timezone used by tests.
func TestLocation(t *testing.T) *time.Location {
	t.Helper()

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("Failed to load test timezone: %v", err)
	}
	return loc
}

func NewTestSettingsService(t *testing.T, db *sql.DB, defaultStartingCash float64) *service.SettingsService {
	t.Helper()

	settingsRepo := repository.NewSettingsRepository(db)

	return service.NewSettingsService(settingsRepo, defaultStartingCash)
}

func NewTestTradeService(t *testing.T, db *sql.DB, market marketdata.Provider) *service.TradeService {
	t.Helper()

	tradeRepo := repository.NewTradeRepository(db)

	return service.NewTradeService(tradeRepo, market, nil)
}

func NewTestCapitalService(t *testing.T, db *sql.DB, market marketdata.Provider) *service.CapitalService {
	t.Helper()

	capitalRepo := repository.NewCapitalRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	userRepo := repository.NewUserRepository(db)
	settingsService := NewTestSettingsService(t, db, 0)

	return service.NewCapitalService(
		capitalRepo,
		tradeRepo,
		userRepo,
		settingsService,
		market,
		TestLocation(t),
	)
}

func NewTestAnalyticsService(t *testing.T, db *sql.DB) *service.AnalyticsService {
	t.Helper()

	tradeRepo := repository.NewTradeRepository(db)

	return service.NewAnalyticsService(tradeRepo, TestLocation(t))
}

func NewTestJournalService(t *testing.T, db *sql.DB) *service.JournalService {
	t.Helper()

	journalRepo := repository.NewJournalRepository(db)

	return service.NewJournalService(journalRepo, TestLocation(t))
}

// SessionKey is a fixed fernet key for auth tests (base64 of 32 zero bytes).
const SessionKey = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="

func NewTestAuthService(t *testing.T, db *sql.DB) *service.AuthService {
	t.Helper()

	userRepo := repository.NewUserRepository(db)
	settingsService := NewTestSettingsService(t, db, 0)

	authService, err := service.NewAuthService(userRepo, settingsService, SessionKey, time.Hour)
	if err != nil {
		t.Fatalf("Failed to create test auth service: %v", err)
	}
	return authService
}
