package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/attendance"
	"github.com/geoattend/geoattend-backend-go/internal/domain/settings"
	"github.com/geoattend/geoattend-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.Record
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Record)}
}

func recordKey(userID string, day time.Time) string {
	return userID + "/" + day.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	record.ID = "rec-1"
	f.records[recordKey(record.UserID, record.Day)] = record
	return record, nil
}

func (f *fakeAttendanceRepo) GetByUserAndDay(ctx context.Context, userID string, day time.Time) (*attendance.Record, error) {
	if rec, ok := f.records[recordKey(userID, day)]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, record attendance.Record) error {
	f.records[recordKey(record.UserID, record.Day)] = record
	return nil
}

func (f *fakeAttendanceRepo) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]attendance.Record, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) BulkCreateAbsences(ctx context.Context, records []attendance.Record) error {
	return nil
}

type fakeSettingsRepo struct{}

func (fakeSettingsRepo) Get(ctx context.Context) (settings.WorkSettings, error) {
	return settings.WorkSettings{
		WorkStart:                   "09:00",
		WorkEnd:                     "17:00",
		LateThresholdMinutes:        15,
		EarlyDepartThresholdMinutes: 15,
	}, nil
}

func (fakeSettingsRepo) Upsert(ctx context.Context, s settings.WorkSettings) (settings.WorkSettings, error) {
	return s, nil
}

type fakeUserRepo struct{}

func (fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) { return u, nil }

func (fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return user.User{ID: id, Timezone: "UTC", IsActive: true}, nil
}

func (fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (fakeUserRepo) Update(ctx context.Context, u user.User) error       { return nil }
func (fakeUserRepo) ListActive(ctx context.Context) ([]user.User, error) { return nil, nil }

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{"user_id": userID, "type": "access"})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestCheckIn_SecondSameDayRejected(t *testing.T) {
	svc := NewAttendanceService(nil, newFakeAttendanceRepo(), fakeSettingsRepo{}, fakeUserRepo{}, nil)
	ctx := authedContext(t, "user-1")

	first, err := svc.CheckIn(ctx)
	require.NoError(t, err)
	require.NotNil(t, first.CheckIn)

	_, err = svc.CheckIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckOut_WithoutCheckInRejected(t *testing.T) {
	svc := NewAttendanceService(nil, newFakeAttendanceRepo(), fakeSettingsRepo{}, fakeUserRepo{}, nil)
	ctx := authedContext(t, "user-1")

	_, err := svc.CheckOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrNoActiveCheckIn)
}

func TestCheckOut_SecondSameDayRejected(t *testing.T) {
	svc := NewAttendanceService(nil, newFakeAttendanceRepo(), fakeSettingsRepo{}, fakeUserRepo{}, nil)
	ctx := authedContext(t, "user-1")

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	out, err := svc.CheckOut(ctx)
	require.NoError(t, err)
	require.NotNil(t, out.CheckOut)

	_, err = svc.CheckOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}
