package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrUserNotFound indicates that a user with the given ID or email does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrTradeNotFound indicates that a trade with the given ID does not exist
	// or does not belong to the requesting user.
	ErrTradeNotFound = errors.New("trade not found")

	// ErrSettingsNotFound indicates that no settings row exists for the user yet.
	// Callers normally recover by creating defaults rather than surfacing this.
	ErrSettingsNotFound = errors.New("user settings not found")

	// ErrJournalEntryNotFound indicates that a journal entry does not exist.
	ErrJournalEntryNotFound = errors.New("journal entry not found")

	// ErrMissedTradeNotFound indicates that a missed-trade record does not exist.
	ErrMissedTradeNotFound = errors.New("missed trade not found")

	// ErrWatchlistItemNotFound indicates that a watchlist item does not exist.
	ErrWatchlistItemNotFound = errors.New("watchlist item not found")

	// ErrNoCapitalData indicates that no capital snapshot exists for the
	// requested day. This is a reported, non-fatal condition: chart callers
	// skip the day instead of failing the whole request.
	ErrNoCapitalData = errors.New("no capital data for date")
)

// Authentication errors. Operations on user-scoped data reject immediately
// when no valid session accompanies the request.
var (
	// ErrNoAuthSession indicates that the request carried no session token.
	ErrNoAuthSession = errors.New("no authenticated session")

	// ErrInvalidSession indicates that the session token failed verification
	// or has expired.
	ErrInvalidSession = errors.New("invalid or expired session")

	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken indicates that a registration email is already in use.
	ErrEmailTaken = errors.New("email already registered")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInsufficientShares indicates that a sell cannot be completed because
	// it would sell more shares than the position still holds. The trade is
	// left untouched.
	ErrInsufficientShares = errors.New("insufficient shares for sale")

	// ErrTradeClosed indicates an attempted position mutation on a closed
	// trade. Closed trades accept only notes/mistakes edits.
	ErrTradeClosed = errors.New("trade is already closed")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Upstream data errors. Quote and OHLCV fetches degrade to stale values where
// possible; these sentinels cover the cases where no fallback exists.
var (
	// ErrQuotesUnavailable indicates that the market-data relay returned no
	// usable quote for any requested ticker.
	ErrQuotesUnavailable = errors.New("quotes unavailable")

	// ErrNoBars indicates that an OHLCV request returned an empty series.
	ErrNoBars = errors.New("no price bars returned")
)
