package service

import (
	"errors"

	"github.com/google/uuid"

	"github.com/tradelog/trade-journal-backend/internal/apperrors"
	"github.com/tradelog/trade-journal-backend/internal/model"
	"github.com/tradelog/trade-journal-backend/internal/repository"
)

// SettingsService handles per-user journal settings. Settings rows are
// created lazily on first access so a fresh account can call any read
// endpoint without a setup step.
type SettingsService struct {
	settingsRepo        *repository.SettingsRepository
	defaultStartingCash float64
}

// NewSettingsService creates a new SettingsService. defaultStartingCash
// seeds lazily created settings rows.
func NewSettingsService(settingsRepo *repository.SettingsRepository, defaultStartingCash float64) *SettingsService {
	return &SettingsService{
		settingsRepo:        settingsRepo,
		defaultStartingCash: defaultStartingCash,
	}
}

// GetOrCreate returns the user's settings, creating a default row if none
// exists yet.
func (s *SettingsService) GetOrCreate(userID string) (model.UserSettings, error) {
	settings, err := s.settingsRepo.GetByUserID(userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, apperrors.ErrSettingsNotFound) {
		return model.UserSettings{}, err
	}

	settings = model.UserSettings{
		ID:           uuid.NewString(),
		UserID:       userID,
		StartingCash: s.defaultStartingCash,
	}
	if err := s.settingsRepo.Create(settings); err != nil {
		return model.UserSettings{}, err
	}

	return settings, nil
}

// UpdateInput carries the mutable settings fields. Nil pointers leave the
// current value unchanged.
type UpdateInput struct {
	StartingCash *float64
	DisplayName  *string
	Timezone     *string
}

// Update applies the provided changes and returns the updated settings.
func (s *SettingsService) Update(userID string, input UpdateInput) (model.UserSettings, error) {
	settings, err := s.GetOrCreate(userID)
	if err != nil {
		return model.UserSettings{}, err
	}

	if input.StartingCash != nil {
		settings.StartingCash = *input.StartingCash
	}
	if input.DisplayName != nil {
		settings.DisplayName = *input.DisplayName
	}
	if input.Timezone != nil {
		settings.Timezone = *input.Timezone
	}

	if err := s.settingsRepo.Update(settings); err != nil {
		return model.UserSettings{}, err
	}

	return settings, nil
}
