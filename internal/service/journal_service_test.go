package service_test

import (
	"errors"
	"testing"

	"github.com/tradelog/trade-journal-backend/internal/apperrors"
	"github.com/tradelog/trade-journal-backend/internal/service"
	"github.com/tradelog/trade-journal-backend/internal/testutil"
)

// TestJournalService tests the daily journal lifecycle.
//
// WHY: The one-entry-per-day rule and the fixed creation date are the two
// behaviors that distinguish this from a plain notes table.
func TestJournalService(t *testing.T) {
	t.Run("create and read back", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		svc := testutil.NewTestJournalService(t, db)

		created, err := svc.Create(user.ID, service.JournalInput{
			Date:    day(2024, 3, 1),
			Content: "Choppy open, stayed flat until the trend confirmed.",
			Mood:    "patient",
			Rating:  4,
		})
		if err != nil {
			t.Fatalf("Create() returned unexpected error: %v", err)
		}

		got, err := svc.Get(user.ID, created.ID)
		if err != nil {
			t.Fatalf("Get() returned unexpected error: %v", err)
		}
		if got.Content != created.Content || got.Rating != 4 {
			t.Errorf("Expected entry to round-trip, got %+v", got)
		}
	})

	t.Run("second entry for the same day is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		svc := testutil.NewTestJournalService(t, db)
		date := day(2024, 3, 1)

		if _, err := svc.Create(user.ID, service.JournalInput{Date: date, Content: "first"}); err != nil {
			t.Fatalf("Create() returned unexpected error: %v", err)
		}

		_, err := svc.Create(user.ID, service.JournalInput{Date: date, Content: "second"})
		if !errors.Is(err, apperrors.ErrDuplicateEntry) {
			t.Errorf("Expected ErrDuplicateEntry, got %v", err)
		}
	})

	t.Run("update keeps the original date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		svc := testutil.NewTestJournalService(t, db)

		created, err := svc.Create(user.ID, service.JournalInput{
			Date:    day(2024, 3, 1),
			Content: "draft",
			Rating:  2,
		})
		if err != nil {
			t.Fatalf("Create() returned unexpected error: %v", err)
		}

		updated, err := svc.Update(user.ID, created.ID, service.JournalInput{
			Date:    day(2024, 6, 30),
			Content: "final",
			Mood:    "calm",
			Rating:  5,
		})
		if err != nil {
			t.Fatalf("Update() returned unexpected error: %v", err)
		}

		if updated.Content != "final" || updated.Rating != 5 {
			t.Errorf("Expected updated fields, got %+v", updated)
		}
		if !updated.Date.Equal(created.Date) {
			t.Errorf("Expected date fixed at %v, got %v", created.Date, updated.Date)
		}
	})

	t.Run("entries are scoped to their owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		owner := testutil.CreateUser(t, db)
		other := testutil.CreateUser(t, db)
		svc := testutil.NewTestJournalService(t, db)

		created, err := svc.Create(owner.ID, service.JournalInput{Date: day(2024, 3, 1), Content: "mine"})
		if err != nil {
			t.Fatalf("Create() returned unexpected error: %v", err)
		}

		_, err = svc.Get(other.ID, created.ID)
		if !errors.Is(err, apperrors.ErrJournalEntryNotFound) {
			t.Errorf("Expected ErrJournalEntryNotFound for foreign user, got %v", err)
		}
	})

	t.Run("delete removes the entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		svc := testutil.NewTestJournalService(t, db)

		created, err := svc.Create(user.ID, service.JournalInput{Date: day(2024, 3, 1), Content: "gone"})
		if err != nil {
			t.Fatalf("Create() returned unexpected error: %v", err)
		}

		if err := svc.Delete(user.ID, created.ID); err != nil {
			t.Fatalf("Delete() returned unexpected error: %v", err)
		}

		_, err = svc.Get(user.ID, created.ID)
		if !errors.Is(err, apperrors.ErrJournalEntryNotFound) {
			t.Errorf("Expected ErrJournalEntryNotFound after delete, got %v", err)
		}
	})
}
