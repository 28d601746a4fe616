package settings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkSettings_WorkStartOn(t *testing.T) {
	s := WorkSettings{WorkStart: "09:00", WorkEnd: "17:30"}
	day := time.Date(2025, 3, 10, 14, 25, 0, 0, time.UTC)

	start, err := s.WorkStartOn(day, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), start)

	end, err := s.WorkEndOn(day, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC), end)
}

func TestWorkSettings_TimezoneResolution(t *testing.T) {
	s := WorkSettings{WorkStart: "09:00"}
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// 01:00 UTC on Mar 10 is 08:00 Mar 10 in Jakarta.
	instant := time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC)
	start, err := s.WorkStartOn(instant, jakarta)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, jakarta).Unix(), start.Unix())
}

func TestWorkSettings_DateColumnDay(t *testing.T) {
	// Attendance days scan from a DATE column as midnight UTC. For a zone
	// west of UTC that instant is still the previous evening, but the work
	// end must resolve on the stored calendar date, not the shifted one.
	s := WorkSettings{WorkEnd: "17:00"}
	newYork := time.FixedZone("EST", -5*3600)
	scannedDay := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	end, err := s.WorkEndOn(scannedDay, newYork)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 17, 0, 0, 0, newYork), end)
}

func TestWorkSettings_InvalidTimeOfDay(t *testing.T) {
	s := WorkSettings{WorkStart: "9am"}
	_, err := s.WorkStartOn(time.Now(), time.UTC)
	assert.Error(t, err)
}

func TestWorkSettings_Thresholds(t *testing.T) {
	s := WorkSettings{LateThresholdMinutes: 15, EarlyDepartThresholdMinutes: 30}
	assert.Equal(t, 15*time.Minute, s.LateThreshold())
	assert.Equal(t, 30*time.Minute, s.EarlyDepartThreshold())
}
