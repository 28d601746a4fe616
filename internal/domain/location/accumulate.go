package location

import (
	"log/slog"
	"math"
	"time"
)

// Accumulate adds the time elapsed since the previous sample to the totals.
// The interval is credited to the zone state that was current at the
// previous sample (trailing allocation): moving out of the zone at the end
// of an interval still counts that interval as inside.
//
// The first sample of a day (nil prevSampleAt, or a sample whose calendar
// day differs from totals.Day) contributes no elapsed time. Negative
// elapsed time from client clock skew is clamped to zero and logged.
func Accumulate(totals DailyTotals, prevSampleAt *time.Time, sample Sample, inZone bool) DailyTotals {
	sampleDay := DayOf(sample.ObservedAt, sample.ObservedAt.Location())

	if prevSampleAt == nil || !SameCalendarDay(totals.Day, sampleDay) {
		totals.Day = sampleDay
		totals.InsideSeconds = 0
		totals.OutsideSeconds = 0
		totals.LastInZone = nil
	} else {
		elapsed := sample.ObservedAt.Sub(*prevSampleAt)
		if elapsed < 0 {
			slog.Warn("Negative elapsed time between location samples, clamping to zero",
				"user_id", sample.UserID,
				"previous_sample_at", *prevSampleAt,
				"observed_at", sample.ObservedAt)
			elapsed = 0
		}

		seconds := int64(elapsed.Seconds())
		wasInZone := inZone
		if totals.LastInZone != nil {
			wasInZone = *totals.LastInZone
		}
		if wasInZone {
			totals.InsideSeconds += seconds
		} else {
			totals.OutsideSeconds += seconds
		}
	}

	observedAt := sample.ObservedAt
	totals.LastSampleAt = &observedAt
	current := inZone
	totals.LastInZone = &current

	return totals
}

// PercentageInZone returns the share of tracked time spent inside the zone,
// rounded to the nearest whole percent. Zero when nothing has been tracked.
func PercentageInZone(totals DailyTotals) int {
	tracked := totals.InsideSeconds + totals.OutsideSeconds
	if tracked == 0 {
		return 0
	}
	return int(math.Round(100 * float64(totals.InsideSeconds) / float64(tracked)))
}

// DayOf truncates t to the start of its calendar day in loc.
func DayOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// SameCalendarDay reports whether a and b display the same calendar date.
// Day values scanned from a DATE column carry midnight UTC while days built
// in-process carry the user's zone, so the instants cannot be compared
// directly.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
