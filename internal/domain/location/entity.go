package location

import (
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/pkg/geo"
)

// DefaultRadiusMeters is applied when a pin is created without a radius.
const DefaultRadiusMeters = 200

// Pin is a user's reference point. Re-pinning creates a new row; the most
// recent pin is the active one, older pins stay as history.
type Pin struct {
	ID           string
	UserID       string
	Coordinate   geo.Coordinate
	RadiusMeters float64
	CreatedAt    time.Time
}

// Sample is a single location observation from the mobile client. It is
// consumed by the tracking pipeline and never stored as-is.
type Sample struct {
	UserID     string
	Coordinate geo.Coordinate
	ObservedAt time.Time
}

// DailyTotals holds the accumulated inside/outside seconds for one user on
// one calendar day. One row per (user, day), created lazily on the first
// sample of the day.
type DailyTotals struct {
	ID             string
	UserID         string
	PinID          string
	Day            time.Time
	InsideSeconds  int64
	OutsideSeconds int64
	LastSampleAt   *time.Time
	LastInZone     *bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
