package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/tradelog/trade-journal-backend/internal/model"
	"github.com/tradelog/trade-journal-backend/internal/repository"
)

// JournalService handles daily journal entries. One entry per user per
// calendar day; creating a second entry for the same day is rejected.
type JournalService struct {
	journalRepo *repository.JournalRepository
	loc         *time.Location
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo *repository.JournalRepository, loc *time.Location) *JournalService {
	return &JournalService{journalRepo: journalRepo, loc: loc}
}

// JournalInput carries the mutable journal entry fields.
type JournalInput struct {
	Date    time.Time
	Content string
	Mood    string
	Rating  int
}

// Create writes a new entry. A zero date means today in the reference
// timezone.
func (s *JournalService) Create(userID string, in JournalInput) (model.JournalEntry, error) {
	date := in.Date
	if date.IsZero() {
		date = time.Now().In(s.loc)
	}

	entry := model.JournalEntry{
		ID:      uuid.NewString(),
		UserID:  userID,
		Date:    date,
		Content: in.Content,
		Mood:    in.Mood,
		Rating:  in.Rating,
	}
	if err := s.journalRepo.Create(entry); err != nil {
		return model.JournalEntry{}, err
	}

	return s.journalRepo.Get(userID, entry.ID)
}

// Get returns one entry scoped to the owning user.
func (s *JournalService) Get(userID, entryID string) (model.JournalEntry, error) {
	return s.journalRepo.Get(userID, entryID)
}

// List returns the user's entries, newest first.
func (s *JournalService) List(userID string) ([]model.JournalEntry, error) {
	return s.journalRepo.ListByUser(userID)
}

// Update overwrites the entry's content, mood, and rating. The date is
// fixed at creation.
func (s *JournalService) Update(userID, entryID string, in JournalInput) (model.JournalEntry, error) {
	entry, err := s.journalRepo.Get(userID, entryID)
	if err != nil {
		return model.JournalEntry{}, err
	}

	entry.Content = in.Content
	entry.Mood = in.Mood
	entry.Rating = in.Rating
	if err := s.journalRepo.Update(entry); err != nil {
		return model.JournalEntry{}, err
	}

	return s.journalRepo.Get(userID, entryID)
}

// Delete removes an entry.
func (s *JournalService) Delete(userID, entryID string) error {
	return s.journalRepo.Delete(userID, entryID)
}
