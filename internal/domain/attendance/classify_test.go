package attendance

import (
	"testing"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() settings.WorkSettings {
	return settings.WorkSettings{
		WorkStart:                   "09:00",
		WorkEnd:                     "17:00",
		LateThresholdMinutes:        15,
		EarlyDepartThresholdMinutes: 15,
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestEvaluateCheckIn(t *testing.T) {
	cfg := testSettings()

	cases := []struct {
		name        string
		now         time.Time
		wantStatus  Status
		wantLateMin int
		wantNotify  bool
	}{
		{"on time", at(8, 55), StatusPresent, 0, false},
		{"within grace period", at(9, 14), StatusPresent, 0, false},
		{"at grace limit", at(9, 15), StatusPresent, 0, false},
		{"just past grace limit", at(9, 16), StatusLate, 16, true},
		{"very late", at(11, 30), StatusLate, 150, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result, err := EvaluateCheckIn(c.now, cfg, time.UTC)
			require.NoError(t, err)
			assert.Equal(t, c.wantStatus, result.Status)
			assert.Equal(t, c.wantLateMin, result.LateMinutes)
			assert.Equal(t, c.wantNotify, result.ShouldNotify)
			if c.wantNotify {
				assert.Equal(t, NotifyLateArrival, result.NotificationKind)
			}
		})
	}
}

func TestEvaluateCheckOut(t *testing.T) {
	cfg := testSettings()
	checkIn := at(9, 0)

	record := Record{
		UserID:  "user-1",
		Day:     at(0, 0),
		CheckIn: &checkIn,
		Status:  StatusPresent,
	}

	t.Run("early departure", func(t *testing.T) {
		result, err := EvaluateCheckOut(at(16, 44), cfg, record, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, StatusEarlyDeparture, result.Status)
		assert.Equal(t, 16, result.EarlyLeaveMinutes)
		assert.True(t, result.ShouldNotify)
		assert.Equal(t, NotifyEarlyDeparture, result.NotificationKind)
	})

	t.Run("within early-departure grace", func(t *testing.T) {
		result, err := EvaluateCheckOut(at(16, 46), cfg, record, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, StatusPresent, result.Status)
		assert.False(t, result.ShouldNotify)
	})

	t.Run("after work end", func(t *testing.T) {
		result, err := EvaluateCheckOut(at(17, 30), cfg, record, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, StatusPresent, result.Status)
		assert.InDelta(t, 8.5, result.WorkHours, 0.001)
	})

	t.Run("early departure overrides late status", func(t *testing.T) {
		lateCheckIn := at(9, 30)
		lateRecord := Record{
			UserID:  "user-1",
			Day:     at(0, 0),
			CheckIn: &lateCheckIn,
			Status:  StatusLate,
		}

		result, err := EvaluateCheckOut(at(16, 0), cfg, lateRecord, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, StatusEarlyDeparture, result.Status)
	})

	t.Run("late status stands on a normal check-out", func(t *testing.T) {
		lateCheckIn := at(9, 30)
		lateRecord := Record{
			UserID:  "user-1",
			Day:     at(0, 0),
			CheckIn: &lateCheckIn,
			Status:  StatusLate,
		}

		result, err := EvaluateCheckOut(at(17, 5), cfg, lateRecord, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, StatusLate, result.Status)
	})
}

func TestEvaluateCheckOut_WorkHours(t *testing.T) {
	cfg := testSettings()
	checkIn := at(9, 0)
	record := Record{CheckIn: &checkIn, Day: at(0, 0), Status: StatusPresent}

	result, err := EvaluateCheckOut(at(17, 0), cfg, record, time.UTC)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, result.WorkHours, 0.001)
}

func TestEvaluateCheckOut_DateColumnDay(t *testing.T) {
	// Attendance days scan from a DATE column as midnight UTC, which in a
	// zone west of UTC is still the previous evening. Work end must still
	// resolve on the stored calendar date so early departure fires.
	cfg := testSettings()
	newYork := time.FixedZone("EST", -5*3600)

	checkIn := time.Date(2025, 3, 10, 9, 0, 0, 0, newYork)
	record := Record{
		UserID:  "user-1",
		Day:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckIn: &checkIn,
		Status:  StatusPresent,
	}

	result, err := EvaluateCheckOut(time.Date(2025, 3, 10, 16, 0, 0, 0, newYork), cfg, record, newYork)
	require.NoError(t, err)
	assert.Equal(t, StatusEarlyDeparture, result.Status)
	assert.Equal(t, 60, result.EarlyLeaveMinutes)
	assert.True(t, result.ShouldNotify)
}

func TestEvaluateCheckIn_TimezoneAware(t *testing.T) {
	cfg := testSettings()
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// 02:30 UTC is 09:30 in Jakarta (UTC+7), past the grace period there.
	now := time.Date(2025, 3, 10, 2, 30, 0, 0, time.UTC)
	result, err := EvaluateCheckIn(now, cfg, jakarta)
	require.NoError(t, err)
	assert.Equal(t, StatusLate, result.Status)
}
