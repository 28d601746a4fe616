package postgresql

import (
	"context"
	"errors"

	"github.com/geoattend/geoattend-backend-go/internal/domain/settings"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

// Get implements settings.SettingsRepository. The table holds at most one
// row, enforced by a constant-key unique index.
func (r *settingsRepositoryImpl) Get(ctx context.Context) (settings.WorkSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, work_start, work_end, late_threshold_minutes, early_depart_threshold_minutes,
			   created_at, updated_at
		FROM work_settings
		LIMIT 1
	`

	var s settings.WorkSettings
	err := q.QueryRow(ctx, query).Scan(
		&s.ID,
		&s.WorkStart,
		&s.WorkEnd,
		&s.LateThresholdMinutes,
		&s.EarlyDepartThresholdMinutes,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return settings.WorkSettings{}, settings.ErrSettingsNotConfigured
	}
	if err != nil {
		return settings.WorkSettings{}, err
	}

	return s, nil
}

// Upsert implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Upsert(ctx context.Context, s settings.WorkSettings) (settings.WorkSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_settings (singleton, work_start, work_end, late_threshold_minutes, early_depart_threshold_minutes)
		VALUES (TRUE, $1, $2, $3, $4)
		ON CONFLICT (singleton) DO UPDATE SET
			work_start = EXCLUDED.work_start,
			work_end = EXCLUDED.work_end,
			late_threshold_minutes = EXCLUDED.late_threshold_minutes,
			early_depart_threshold_minutes = EXCLUDED.early_depart_threshold_minutes,
			updated_at = NOW()
		RETURNING id, work_start, work_end, late_threshold_minutes, early_depart_threshold_minutes,
				  created_at, updated_at
	`

	var saved settings.WorkSettings
	err := q.QueryRow(ctx, query,
		s.WorkStart,
		s.WorkEnd,
		s.LateThresholdMinutes,
		s.EarlyDepartThresholdMinutes,
	).Scan(
		&saved.ID,
		&saved.WorkStart,
		&saved.WorkEnd,
		&saved.LateThresholdMinutes,
		&saved.EarlyDepartThresholdMinutes,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	if err != nil {
		return settings.WorkSettings{}, err
	}

	return saved, nil
}
