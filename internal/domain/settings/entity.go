package settings

import (
	"fmt"
	"time"
)

// WorkSettings is the singleton work-schedule configuration. Times of day
// are stored as "HH:MM" strings; thresholds are grace periods in minutes.
type WorkSettings struct {
	ID                          string
	WorkStart                   string // "09:00"
	WorkEnd                     string // "17:00"
	LateThresholdMinutes        int
	EarlyDepartThresholdMinutes int
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

// Defaults seeded at startup when no settings row exists. The attendance
// classifier itself never falls back to these.
const (
	DefaultWorkStart            = "09:00"
	DefaultWorkEnd              = "17:00"
	DefaultLateThresholdMin     = 15
	DefaultEarlyDepartThreshold = 15
)

// WorkStartOn resolves the configured work start as an instant on the given
// day in loc.
func (s WorkSettings) WorkStartOn(day time.Time, loc *time.Location) (time.Time, error) {
	return timeOfDayOn(s.WorkStart, day, loc)
}

// WorkEndOn resolves the configured work end as an instant on the given day
// in loc.
func (s WorkSettings) WorkEndOn(day time.Time, loc *time.Location) (time.Time, error) {
	return timeOfDayOn(s.WorkEnd, day, loc)
}

// LateThreshold returns the late grace period as a duration.
func (s WorkSettings) LateThreshold() time.Duration {
	return time.Duration(s.LateThresholdMinutes) * time.Minute
}

// EarlyDepartThreshold returns the early-departure grace period as a duration.
func (s WorkSettings) EarlyDepartThreshold() time.Duration {
	return time.Duration(s.EarlyDepartThresholdMinutes) * time.Minute
}

// timeOfDayOn places hhmm on day's displayed calendar date in loc. The
// date components are read from day as-is: a DATE column scans as midnight
// UTC, and converting that instant into loc first would shift it onto the
// previous calendar day for zones west of UTC.
func timeOfDayOn(hhmm string, day time.Time, loc *time.Location) (time.Time, error) {
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q: %w", hhmm, err)
	}

	year, month, dayOfMonth := day.Date()
	return time.Date(
		year, month, dayOfMonth,
		parsed.Hour(), parsed.Minute(), 0, 0,
		loc,
	), nil
}
