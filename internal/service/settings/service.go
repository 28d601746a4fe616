package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/settings"
)

type SettingsServiceImpl struct {
	settings.SettingsRepository
}

func NewSettingsService(settingsRepository settings.SettingsRepository) settings.SettingsService {
	return &SettingsServiceImpl{
		SettingsRepository: settingsRepository,
	}
}

func mapSettingsToResponse(s settings.WorkSettings) settings.SettingsResponse {
	return settings.SettingsResponse{
		WorkStart:                   s.WorkStart,
		WorkEnd:                     s.WorkEnd,
		LateThresholdMinutes:        s.LateThresholdMinutes,
		EarlyDepartThresholdMinutes: s.EarlyDepartThresholdMinutes,
		UpdatedAt:                   s.UpdatedAt.Format(time.RFC3339),
	}
}

// Get implements settings.SettingsService.
func (s *SettingsServiceImpl) Get(ctx context.Context) (settings.SettingsResponse, error) {
	cfg, err := s.SettingsRepository.Get(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	return mapSettingsToResponse(cfg), nil
}

// Update implements settings.SettingsService.
func (s *SettingsServiceImpl) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	saved, err := s.SettingsRepository.Upsert(ctx, settings.WorkSettings{
		WorkStart:                   req.WorkStart,
		WorkEnd:                     req.WorkEnd,
		LateThresholdMinutes:        req.LateThresholdMinutes,
		EarlyDepartThresholdMinutes: req.EarlyDepartThresholdMinutes,
	})
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to save work settings: %w", err)
	}

	return mapSettingsToResponse(saved), nil
}

// EnsureDefaults implements settings.SettingsService. Seeds the default
// schedule on first startup so check-in classification always has a
// configuration to work against.
func (s *SettingsServiceImpl) EnsureDefaults(ctx context.Context) error {
	_, err := s.SettingsRepository.Get(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, settings.ErrSettingsNotConfigured) {
		return fmt.Errorf("failed to read work settings: %w", err)
	}

	_, err = s.SettingsRepository.Upsert(ctx, settings.WorkSettings{
		WorkStart:                   settings.DefaultWorkStart,
		WorkEnd:                     settings.DefaultWorkEnd,
		LateThresholdMinutes:        settings.DefaultLateThresholdMin,
		EarlyDepartThresholdMinutes: settings.DefaultEarlyDepartThreshold,
	})
	if err != nil {
		return fmt.Errorf("failed to seed default work settings: %w", err)
	}

	slog.Info("Seeded default work settings",
		"work_start", settings.DefaultWorkStart,
		"work_end", settings.DefaultWorkEnd)
	return nil
}
