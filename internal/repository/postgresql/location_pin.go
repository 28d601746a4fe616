package postgresql

import (
	"context"
	"errors"

	"github.com/geoattend/geoattend-backend-go/internal/domain/location"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type pinRepositoryImpl struct {
	db *database.DB
}

func NewPinRepository(db *database.DB) location.PinRepository {
	return &pinRepositoryImpl{db: db}
}

// Create implements location.PinRepository. Older pins are kept; the newest
// row per user is the active pin.
func (r *pinRepositoryImpl) Create(ctx context.Context, pin location.Pin) (location.Pin, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO location_pins (user_id, latitude, longitude, radius_meters)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, latitude, longitude, radius_meters, created_at
	`

	var created location.Pin
	err := q.QueryRow(ctx, query,
		pin.UserID,
		pin.Coordinate.Latitude,
		pin.Coordinate.Longitude,
		pin.RadiusMeters,
	).Scan(
		&created.ID,
		&created.UserID,
		&created.Coordinate.Latitude,
		&created.Coordinate.Longitude,
		&created.RadiusMeters,
		&created.CreatedAt,
	)
	if err != nil {
		return location.Pin{}, err
	}

	return created, nil
}

// GetActiveByUserID implements location.PinRepository.
func (r *pinRepositoryImpl) GetActiveByUserID(ctx context.Context, userID string) (location.Pin, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, latitude, longitude, radius_meters, created_at
		FROM location_pins
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var found location.Pin
	err := q.QueryRow(ctx, query, userID).Scan(
		&found.ID,
		&found.UserID,
		&found.Coordinate.Latitude,
		&found.Coordinate.Longitude,
		&found.RadiusMeters,
		&found.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return location.Pin{}, location.ErrNoPinnedLocation
	}
	if err != nil {
		return location.Pin{}, err
	}

	return found, nil
}
