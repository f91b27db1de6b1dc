package service

import (
	"context"
	"time"

	"zazen/internal/modules/settings/domain"
	"zazen/internal/modules/settings/dto"
	settingsout "zazen/internal/modules/settings/port/out"
)

type SettingsService struct {
	store settingsout.Store
}

func NewSettingsService(store settingsout.Store) *SettingsService {
	return &SettingsService{store: store}
}

func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	return s.store.Load(ctx)
}

// Update applies a partial update, validates the result, and persists
// it. Validation failure leaves the stored settings untouched.
func (s *SettingsService) Update(ctx context.Context, input dto.UpdateInput) (domain.Settings, error) {
	settings, err := s.store.Load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	if input.DefaultDurationSeconds != nil {
		settings.DefaultDuration = time.Duration(*input.DefaultDurationSeconds) * time.Second
	}
	if input.CueSessionStart != nil {
		settings.CueSessionStart = *input.CueSessionStart
	}
	if input.CueSessionEnd != nil {
		settings.CueSessionEnd = *input.CueSessionEnd
	}
	if input.CueHalfway != nil {
		settings.CueHalfway = *input.CueHalfway
	}
	if input.CueEveryMinute != nil {
		settings.CueEveryMinute = *input.CueEveryMinute
	}
	if input.Chime != nil {
		settings.Chime = *input.Chime
	}
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	if err := s.store.Save(ctx, settings); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}
