package location

import (
	"context"
)

// LocationService is the application-facing API for pinning and tracking.
type LocationService interface {
	// PinLocation creates a new active pin for the authenticated user.
	PinLocation(ctx context.Context, req PinLocationRequest) (PinResponse, error)

	// GetActivePin returns the user's current pin.
	GetActivePin(ctx context.Context) (PinResponse, error)

	// TrackSample processes one location sample: classifies it against the
	// active pin, detects zone transitions, accumulates daily totals and
	// queues zone notifications.
	TrackSample(ctx context.Context, req TrackRequest) (TrackResponse, error)

	// GetHistory returns daily totals for the current day, week or month.
	GetHistory(ctx context.Context, filter HistoryFilter) (HistoryResponse, error)

	// GetTodaySummary returns today's totals, or nil when no sample has
	// been tracked yet today.
	GetTodaySummary(ctx context.Context) (*DailySummary, error)
}
