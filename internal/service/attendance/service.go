package attendance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/attendance"
	"github.com/geoattend/geoattend-backend-go/internal/domain/location"
	"github.com/geoattend/geoattend-backend-go/internal/domain/notification"
	"github.com/geoattend/geoattend-backend-go/internal/domain/settings"
	"github.com/geoattend/geoattend-backend-go/internal/domain/user"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	settings.SettingsRepository
	user.UserRepository
	notificationSvc notification.Service
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepository attendance.AttendanceRepository,
	settingsRepository settings.SettingsRepository,
	userRepository user.UserRepository,
	notificationSvc notification.Service,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepository,
		SettingsRepository:   settingsRepository,
		UserRepository:       userRepository,
		notificationSvc:      notificationSvc,
	}
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

// userLocation resolves the user's IANA timezone, falling back to UTC.
func (a *AttendanceServiceImpl) userLocation(ctx context.Context, userID string) *time.Location {
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return time.UTC
	}
	loc, err := time.LoadLocation(userData.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.RecordResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	cfg, err := a.SettingsRepository.Get(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	loc := a.userLocation(ctx, userID)
	now := time.Now().In(loc)
	day := location.DayOf(now, loc)

	existing, err := a.AttendanceRepository.GetByUserAndDay(ctx, userID, day)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to check today's record: %w", err)
	}
	if existing != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
	}

	result, err := attendance.EvaluateCheckIn(now, cfg, loc)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to evaluate check-in: %w", err)
	}

	record := attendance.Record{
		UserID:  userID,
		Day:     day,
		CheckIn: &now,
		Status:  result.Status,
	}
	if result.LateMinutes > 0 {
		lateMinutes := result.LateMinutes
		record.LateMinutes = &lateMinutes
	}

	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	if result.ShouldNotify {
		a.queueStatusNotification(ctx, userID, result.NotificationKind, result.LateMinutes)
	}

	return attendance.MapRecordToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.RecordResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	cfg, err := a.SettingsRepository.Get(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	loc := a.userLocation(ctx, userID)
	now := time.Now().In(loc)
	day := location.DayOf(now, loc)

	record, err := a.AttendanceRepository.GetByUserAndDay(ctx, userID, day)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get today's record: %w", err)
	}
	if record == nil {
		return attendance.RecordResponse{}, attendance.ErrNoActiveCheckIn
	}
	if record.IsCheckedOut() {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	}

	result, err := attendance.EvaluateCheckOut(now, cfg, *record, loc)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to evaluate check-out: %w", err)
	}

	record.CheckOut = &now
	record.Status = result.Status
	record.WorkHours = &result.WorkHours
	if result.EarlyLeaveMinutes > 0 {
		earlyLeave := result.EarlyLeaveMinutes
		record.EarlyLeaveMinutes = &earlyLeave
	}

	if err := a.AttendanceRepository.Update(ctx, *record); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	if result.ShouldNotify {
		a.queueStatusNotification(ctx, userID, result.NotificationKind, result.EarlyLeaveMinutes)
	}

	return attendance.MapRecordToResponse(*record), nil
}

func (a *AttendanceServiceImpl) queueStatusNotification(ctx context.Context, userID string, kind attendance.NotificationKind, minutes int) {
	if a.notificationSvc == nil {
		return
	}

	req := notification.CreateNotificationRequest{
		RecipientID: userID,
		Data: map[string]interface{}{
			"minutes": minutes,
		},
	}

	switch kind {
	case attendance.NotifyLateArrival:
		req.Type = notification.TypeLateArrival
		req.Title = "Late Arrival"
		req.Message = fmt.Sprintf("You checked in %d minutes late", minutes)
	case attendance.NotifyEarlyDeparture:
		req.Type = notification.TypeEarlyDeparture
		req.Title = "Early Departure"
		req.Message = fmt.Sprintf("You checked out %d minutes before work end", minutes)
	default:
		return
	}

	_ = a.notificationSvc.QueueNotification(ctx, req)
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context) (attendance.TodayResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	loc := a.userLocation(ctx, userID)
	day := location.DayOf(time.Now().In(loc), loc)

	record, err := a.AttendanceRepository.GetByUserAndDay(ctx, userID, day)
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("failed to get today's record: %w", err)
	}

	if record == nil {
		return attendance.TodayResponse{
			HasCheckedIn: false,
			CanCheckIn:   true,
			CanCheckOut:  false,
		}, nil
	}

	resp := attendance.MapRecordToResponse(*record)
	return attendance.TodayResponse{
		HasCheckedIn: record.CheckIn != nil,
		CanCheckIn:   false,
		CanCheckOut:  record.CheckIn != nil && !record.IsCheckedOut(),
		Record:       &resp,
	}, nil
}

// GetHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetHistory(ctx context.Context, filter attendance.HistoryFilter) (attendance.HistoryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.HistoryResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.HistoryResponse{}, err
	}

	loc := a.userLocation(ctx, userID)
	now := time.Now().In(loc)

	// Default range is the current month.
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 1, -1)

	switch {
	case filter.Month != nil && filter.Year != nil:
		from = time.Date(*filter.Year, time.Month(*filter.Month), 1, 0, 0, 0, 0, loc)
		to = from.AddDate(0, 1, -1)
	case filter.StartDate != nil && filter.EndDate != nil:
		from, err = time.ParseInLocation("2006-01-02", *filter.StartDate, loc)
		if err != nil {
			return attendance.HistoryResponse{}, fmt.Errorf("failed to parse start_date: %w", err)
		}
		to, err = time.ParseInLocation("2006-01-02", *filter.EndDate, loc)
		if err != nil {
			return attendance.HistoryResponse{}, fmt.Errorf("failed to parse end_date: %w", err)
		}
	}

	records, err := a.AttendanceRepository.ListByUserBetween(ctx, userID, from, to)
	if err != nil {
		return attendance.HistoryResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	response := attendance.HistoryResponse{
		Records: make([]attendance.RecordResponse, 0, len(records)),
	}
	for _, record := range records {
		if filter.Status != nil && !strings.EqualFold(string(record.Status), *filter.Status) {
			continue
		}
		response.Records = append(response.Records, attendance.MapRecordToResponse(record))
	}

	return response, nil
}
