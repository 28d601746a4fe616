package location

import (
	"context"
	"time"
)

// PinRepository defines data access methods for location pins.
type PinRepository interface {
	// Create inserts a new pin. Older pins for the same user are kept as
	// history; the newest pin is the active one.
	Create(ctx context.Context, pin Pin) (Pin, error)

	// GetActiveByUserID returns the most recently created pin for a user.
	GetActiveByUserID(ctx context.Context, userID string) (Pin, error)
}

// HistoryRepository defines data access methods for daily zone totals.
type HistoryRepository interface {
	// GetByUserAndDay returns the totals row for a (user, day) pair.
	GetByUserAndDay(ctx context.Context, userID string, day time.Time) (DailyTotals, error)

	// GetByUserAndDayForUpdate is GetByUserAndDay with a row lock. Must be
	// called inside a transaction; the lock serializes concurrent
	// read-modify-write cycles on the same (user, day) row.
	GetByUserAndDayForUpdate(ctx context.Context, userID string, day time.Time) (DailyTotals, error)

	// Upsert inserts or replaces the totals for (user, day).
	Upsert(ctx context.Context, totals DailyTotals) (DailyTotals, error)

	// ListByUserBetween returns totals rows for a user within [from, to],
	// newest first.
	ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]DailyTotals, error)
}
