package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/attendance"
	"github.com/geoattend/geoattend-backend-go/internal/domain/location"
	"github.com/geoattend/geoattend-backend-go/internal/domain/notification"
	"github.com/geoattend/geoattend-backend-go/internal/domain/user"
)

// AttendanceJobs owns the absence batch job. The check-in/check-out flow
// never marks anyone ABSENT; a day with no record becomes an absence here,
// after the day has ended in the user's timezone.
type AttendanceJobs struct {
	attendanceRepo  attendance.AttendanceRepository
	userRepo        user.UserRepository
	notificationSvc notification.Service
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	notificationSvc notification.Service,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo:  attendanceRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_users", 1*time.Hour, j.MarkAbsentUsers)
}

// MarkAbsentUsers creates ABSENT records for users with no attendance for
// the previous local day.
func (j *AttendanceJobs) MarkAbsentUsers(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting mark absent users job")

	users, err := j.userRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active users: %w", err)
	}

	var absences []attendance.Record
	var recipients []string

	for _, u := range users {
		loc, err := time.LoadLocation(u.Timezone)
		if err != nil {
			loc = time.UTC
		}

		yesterday := location.DayOf(time.Now().In(loc).AddDate(0, 0, -1), loc)

		existing, err := j.attendanceRepo.GetByUserAndDay(ctx, u.ID, yesterday)
		if err != nil {
			slog.Error("Cron: Failed to look up attendance", "user_id", u.ID, "error", err)
			continue
		}
		if existing != nil {
			continue
		}

		absences = append(absences, attendance.Record{
			UserID: u.ID,
			Day:    yesterday,
			Status: attendance.StatusAbsent,
		})
		recipients = append(recipients, u.ID)
	}

	if len(absences) == 0 {
		slog.Info("Cron: No absences to record")
		return nil
	}

	if err := j.attendanceRepo.BulkCreateAbsences(ctx, absences); err != nil {
		return fmt.Errorf("failed to bulk create absences: %w", err)
	}

	if j.notificationSvc != nil {
		reqs := make([]notification.CreateNotificationRequest, 0, len(recipients))
		for i, userID := range recipients {
			reqs = append(reqs, notification.CreateNotificationRequest{
				RecipientID: userID,
				Type:        notification.TypeMarkedAbsent,
				Title:       "Marked Absent",
				Message:     fmt.Sprintf("You were marked absent for %s", absences[i].Day.Format("2006-01-02")),
				Data: map[string]interface{}{
					"date": absences[i].Day.Format("2006-01-02"),
				},
			})
		}
		if err := j.notificationSvc.QueueBulkNotification(ctx, reqs); err != nil {
			slog.Error("Cron: Failed to queue absence notifications", "error", err)
		}
	}

	slog.Info("Cron: Marked absent users", "count", len(absences))
	return nil
}
