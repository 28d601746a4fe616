package settings

import "context"

// SettingsRepository defines data access for the singleton settings row.
type SettingsRepository interface {
	// Get returns the settings row, or ErrSettingsNotConfigured when none
	// exists.
	Get(ctx context.Context) (WorkSettings, error)

	// Upsert creates or replaces the settings row.
	Upsert(ctx context.Context, s WorkSettings) (WorkSettings, error)
}

// SettingsService is the application-facing settings API.
type SettingsService interface {
	// Get returns the current work settings.
	Get(ctx context.Context) (SettingsResponse, error)

	// Update replaces the work settings. Admin only, enforced by middleware.
	Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)

	// EnsureDefaults seeds the default schedule when no settings exist yet.
	// Called once at startup.
	EnsureDefaults(ctx context.Context) error
}
