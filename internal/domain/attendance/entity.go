package attendance

import (
	"time"
)

// Status classifies a day's attendance record.
type Status string

const (
	StatusPresent        Status = "PRESENT"
	StatusLate           Status = "LATE"
	StatusEarlyDeparture Status = "EARLY_DEPARTURE"
	StatusAbsent         Status = "ABSENT"
)

var StatusValues = []string{
	string(StatusPresent),
	string(StatusLate),
	string(StatusEarlyDeparture),
	string(StatusAbsent),
}

// Record is one user's attendance for one calendar day. At most one record
// per (user, day); a record with a check-out is terminal.
type Record struct {
	ID                string
	UserID            string
	Day               time.Time
	CheckIn           *time.Time
	CheckOut          *time.Time
	Status            Status
	WorkHours         *float64
	LateMinutes       *int
	EarlyLeaveMinutes *int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsCheckedOut reports whether the record has reached its terminal state.
func (r Record) IsCheckedOut() bool {
	return r.CheckOut != nil
}
