package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create creates a new attendance record. A unique constraint on
	// (user_id, day) backs the one-record-per-day invariant.
	Create(ctx context.Context, record Record) (Record, error)

	// GetByUserAndDay retrieves the record for a user on a specific day.
	// Returns nil when no record exists.
	GetByUserAndDay(ctx context.Context, userID string, day time.Time) (*Record, error)

	// Update updates an existing record.
	Update(ctx context.Context, record Record) error

	// ListByUserBetween returns records for a user within [from, to],
	// newest first.
	ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]Record, error)

	// BulkCreateAbsences inserts ABSENT records in one batch.
	BulkCreateAbsences(ctx context.Context, records []Record) error
}

// AttendanceService is the application-facing attendance API.
type AttendanceService interface {
	// CheckIn creates today's record for the authenticated user. Fails with
	// ErrAlreadyCheckedIn when a record already exists.
	CheckIn(ctx context.Context) (RecordResponse, error)

	// CheckOut closes today's open record. Fails with ErrNoActiveCheckIn
	// when there is none and ErrAlreadyCheckedOut for a terminal record.
	CheckOut(ctx context.Context) (RecordResponse, error)

	// GetToday returns the state of today's record plus what actions are
	// currently possible.
	GetToday(ctx context.Context) (TodayResponse, error)

	// GetHistory returns the user's records for a month or date range.
	GetHistory(ctx context.Context, filter HistoryFilter) (HistoryResponse, error)
}
