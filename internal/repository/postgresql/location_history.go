package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/location"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type historyRepositoryImpl struct {
	db *database.DB
}

func NewHistoryRepository(db *database.DB) location.HistoryRepository {
	return &historyRepositoryImpl{db: db}
}

const dailyTotalsColumns = `id, user_id, pin_id, day, inside_seconds, outside_seconds,
		   last_sample_at, last_in_zone, created_at, updated_at`

func scanDailyTotals(row pgx.Row) (location.DailyTotals, error) {
	var t location.DailyTotals
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.PinID,
		&t.Day,
		&t.InsideSeconds,
		&t.OutsideSeconds,
		&t.LastSampleAt,
		&t.LastInZone,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return location.DailyTotals{}, err
	}
	return t, nil
}

func (r *historyRepositoryImpl) getByUserAndDay(ctx context.Context, userID string, day time.Time, lock string) (location.DailyTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dailyTotalsColumns + `
		FROM location_daily_totals
		WHERE user_id = $1 AND day = $2
	` + lock

	found, err := scanDailyTotals(q.QueryRow(ctx, query, userID, day))
	if errors.Is(err, pgx.ErrNoRows) {
		return location.DailyTotals{}, location.ErrHistoryNotFound
	}
	return found, err
}

// GetByUserAndDay implements location.HistoryRepository.
func (r *historyRepositoryImpl) GetByUserAndDay(ctx context.Context, userID string, day time.Time) (location.DailyTotals, error) {
	return r.getByUserAndDay(ctx, userID, day, "")
}

// GetByUserAndDayForUpdate implements location.HistoryRepository. The row
// lock holds until the surrounding transaction commits.
func (r *historyRepositoryImpl) GetByUserAndDayForUpdate(ctx context.Context, userID string, day time.Time) (location.DailyTotals, error) {
	return r.getByUserAndDay(ctx, userID, day, "FOR UPDATE")
}

// Upsert implements location.HistoryRepository.
func (r *historyRepositoryImpl) Upsert(ctx context.Context, totals location.DailyTotals) (location.DailyTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO location_daily_totals (
			user_id, pin_id, day, inside_seconds, outside_seconds, last_sample_at, last_in_zone
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, day) DO UPDATE SET
			pin_id = EXCLUDED.pin_id,
			inside_seconds = EXCLUDED.inside_seconds,
			outside_seconds = EXCLUDED.outside_seconds,
			last_sample_at = EXCLUDED.last_sample_at,
			last_in_zone = EXCLUDED.last_in_zone,
			updated_at = NOW()
		RETURNING ` + dailyTotalsColumns

	return scanDailyTotals(q.QueryRow(ctx, query,
		totals.UserID,
		totals.PinID,
		totals.Day,
		totals.InsideSeconds,
		totals.OutsideSeconds,
		totals.LastSampleAt,
		totals.LastInZone,
	))
}

// ListByUserBetween implements location.HistoryRepository.
func (r *historyRepositoryImpl) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]location.DailyTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dailyTotalsColumns + `
		FROM location_daily_totals
		WHERE user_id = $1 AND day >= $2 AND day <= $3
		ORDER BY day DESC
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []location.DailyTotals
	for rows.Next() {
		t, err := scanDailyTotals(rows)
		if err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
