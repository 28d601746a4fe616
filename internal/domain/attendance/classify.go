package attendance

import (
	"math"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/settings"
)

// NotificationKind identifies the signal a classification produces for the
// notification collaborator. The classifier never delivers anything itself.
type NotificationKind string

const (
	NotifyLateArrival    NotificationKind = "LATE_ARRIVAL"
	NotifyEarlyDeparture NotificationKind = "EARLY_DEPARTURE"
)

// CheckInResult is the outcome of evaluating a check-in instant against the
// work schedule.
type CheckInResult struct {
	Status           Status
	LateMinutes      int
	ShouldNotify     bool
	NotificationKind NotificationKind
}

// CheckOutResult is the outcome of evaluating a check-out instant.
type CheckOutResult struct {
	Status            Status
	EarlyLeaveMinutes int
	WorkHours         float64
	ShouldNotify      bool
	NotificationKind  NotificationKind
}

// EvaluateCheckIn classifies a check-in at now. The check-in is LATE when
// now is past work start plus the late threshold; late minutes count from
// the scheduled start, not from the end of the grace period.
func EvaluateCheckIn(now time.Time, cfg settings.WorkSettings, loc *time.Location) (CheckInResult, error) {
	now = now.In(loc)
	workStart, err := cfg.WorkStartOn(now, loc)
	if err != nil {
		return CheckInResult{}, err
	}

	result := CheckInResult{Status: StatusPresent}

	graceLimit := workStart.Add(cfg.LateThreshold())
	if now.After(graceLimit) {
		result.Status = StatusLate
		diff := now.Sub(workStart).Minutes()
		if diff > 0 {
			result.LateMinutes = int(math.Floor(diff))
		}
		result.ShouldNotify = true
		result.NotificationKind = NotifyLateArrival
	}

	return result, nil
}

// EvaluateCheckOut classifies a check-out at now for an open record. Leaving
// before work end minus the early-departure threshold overrides the check-in
// status with EARLY_DEPARTURE; otherwise the check-in status stands.
func EvaluateCheckOut(now time.Time, cfg settings.WorkSettings, record Record, loc *time.Location) (CheckOutResult, error) {
	workEnd, err := cfg.WorkEndOn(record.Day, loc)
	if err != nil {
		return CheckOutResult{}, err
	}

	result := CheckOutResult{Status: record.Status}

	earliestAllowed := workEnd.Add(-cfg.EarlyDepartThreshold())
	if now.Before(earliestAllowed) {
		result.Status = StatusEarlyDeparture
		diff := workEnd.Sub(now).Minutes()
		if diff > 0 {
			result.EarlyLeaveMinutes = int(math.Floor(diff))
		}
		result.ShouldNotify = true
		result.NotificationKind = NotifyEarlyDeparture
	}

	if record.CheckIn != nil {
		result.WorkHours = now.Sub(*record.CheckIn).Hours()
	}

	return result, nil
}
