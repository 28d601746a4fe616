package location

import (
	"testing"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAt(t time.Time, coord geo.Coordinate) Sample {
	return Sample{UserID: "user-1", Coordinate: coord, ObservedAt: t}
}

func TestAccumulate_FirstSampleOfDay(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	totals := Accumulate(DailyTotals{}, nil, sampleAt(now, geo.Coordinate{}), true)

	assert.Equal(t, int64(0), totals.InsideSeconds)
	assert.Equal(t, int64(0), totals.OutsideSeconds)
	require.NotNil(t, totals.LastInZone)
	assert.True(t, *totals.LastInZone)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), totals.Day)
}

func TestAccumulate_BackwardAllocation(t *testing.T) {
	// Inside at t=0, 500m away at t=60s: the 60s interval belongs to the
	// state at the start of the interval, so it counts as inside.
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	totals := Accumulate(DailyTotals{}, nil, sampleAt(start, geo.Coordinate{}), true)

	prev := start
	next := start.Add(60 * time.Second)
	totals = Accumulate(totals, &prev, sampleAt(next, coordinateAtMeters(500)), false)

	assert.Equal(t, int64(60), totals.InsideSeconds)
	assert.Equal(t, int64(0), totals.OutsideSeconds)
	require.NotNil(t, totals.LastInZone)
	assert.False(t, *totals.LastInZone)

	// The following interval is then credited to outside.
	prev = next
	next = next.Add(30 * time.Second)
	totals = Accumulate(totals, &prev, sampleAt(next, coordinateAtMeters(500)), false)

	assert.Equal(t, int64(60), totals.InsideSeconds)
	assert.Equal(t, int64(30), totals.OutsideSeconds)
}

func TestAccumulate_Idempotent(t *testing.T) {
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	samples := []struct {
		offset time.Duration
		inZone bool
	}{
		{0, true},
		{30 * time.Second, true},
		{60 * time.Second, false},
		{120 * time.Second, true},
	}

	run := func() DailyTotals {
		var totals DailyTotals
		var prev *time.Time
		for _, s := range samples {
			at := start.Add(s.offset)
			totals = Accumulate(totals, prev, sampleAt(at, geo.Coordinate{}), s.inZone)
			prevCopy := at
			prev = &prevCopy
		}
		return totals
	}

	first := run()
	second := run()
	assert.Equal(t, first.InsideSeconds, second.InsideSeconds)
	assert.Equal(t, first.OutsideSeconds, second.OutsideSeconds)
}

func TestAccumulate_ClockSkewClampsToZero(t *testing.T) {
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	totals := Accumulate(DailyTotals{}, nil, sampleAt(start, geo.Coordinate{}), true)

	// Sample arrives with a timestamp before the previous one.
	prev := start
	earlier := start.Add(-45 * time.Second)
	totals = Accumulate(totals, &prev, sampleAt(earlier, geo.Coordinate{}), true)

	assert.Equal(t, int64(0), totals.InsideSeconds)
	assert.Equal(t, int64(0), totals.OutsideSeconds)
}

func TestAccumulate_DayRolloverStartsFresh(t *testing.T) {
	evening := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	totals := Accumulate(DailyTotals{}, nil, sampleAt(evening, geo.Coordinate{}), true)

	prev := evening
	nextDay := time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC)
	totals = Accumulate(totals, &prev, sampleAt(nextDay, geo.Coordinate{}), true)

	assert.Equal(t, int64(0), totals.InsideSeconds)
	assert.Equal(t, int64(0), totals.OutsideSeconds)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), totals.Day)
}

func TestAccumulate_DateColumnDayKeepsAccruing(t *testing.T) {
	// A totals row loaded from Postgres carries its day as midnight UTC
	// (DATE column), while samples carry the user's zone. Same calendar
	// day must keep accruing, not reset.
	ist := time.FixedZone("IST", 5*3600+30*60)
	scannedDay := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	prev := time.Date(2025, 3, 10, 9, 0, 0, 0, ist)
	inside := true

	totals := DailyTotals{
		UserID:        "user-1",
		Day:           scannedDay,
		InsideSeconds: 3600,
		LastSampleAt:  &prev,
		LastInZone:    &inside,
	}

	next := prev.Add(60 * time.Second)
	totals = Accumulate(totals, &prev, sampleAt(next, geo.Coordinate{}), true)

	assert.Equal(t, int64(3660), totals.InsideSeconds)
	assert.Equal(t, int64(0), totals.OutsideSeconds)
}

func TestSameCalendarDay(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+30*60)
	utcMidnight := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	istMidnight := time.Date(2025, 3, 10, 0, 0, 0, 0, ist)

	assert.True(t, SameCalendarDay(utcMidnight, istMidnight))
	assert.False(t, SameCalendarDay(utcMidnight, istMidnight.AddDate(0, 0, 1)))
}

func TestPercentageInZone(t *testing.T) {
	cases := []struct {
		name    string
		inside  int64
		outside int64
		want    int
	}{
		{"nothing tracked", 0, 0, 0},
		{"even split", 50, 50, 50},
		{"all inside", 3600, 0, 100},
		{"all outside", 0, 3600, 0},
		{"rounds to nearest", 2, 1, 67},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			totals := DailyTotals{InsideSeconds: c.inside, OutsideSeconds: c.outside}
			assert.Equal(t, c.want, PercentageInZone(totals))
		})
	}
}
