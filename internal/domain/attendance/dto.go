package attendance

import (
	"strings"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type RecordResponse struct {
	ID                string   `json:"id"`
	Day               string   `json:"day"`
	CheckIn           *string  `json:"check_in,omitempty"`
	CheckOut          *string  `json:"check_out,omitempty"`
	Status            string   `json:"status"`
	WorkHours         *float64 `json:"work_hours,omitempty"`
	LateMinutes       *int     `json:"late_minutes,omitempty"`
	EarlyLeaveMinutes *int     `json:"early_leave_minutes,omitempty"`
}

// MapRecordToResponse converts a Record entity to RecordResponse.
func MapRecordToResponse(r Record) RecordResponse {
	format := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		s := t.Format(time.RFC3339)
		return &s
	}

	return RecordResponse{
		ID:                r.ID,
		Day:               r.Day.Format("2006-01-02"),
		CheckIn:           format(r.CheckIn),
		CheckOut:          format(r.CheckOut),
		Status:            string(r.Status),
		WorkHours:         r.WorkHours,
		LateMinutes:       r.LateMinutes,
		EarlyLeaveMinutes: r.EarlyLeaveMinutes,
	}
}

type HistoryFilter struct {
	Month     *int    `json:"month,omitempty"` // 1-12, with Year
	Year      *int    `json:"year,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    *string `json:"status,omitempty"`
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != nil && (*f.Month < 1 || *f.Month > 12) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if f.Month != nil && f.Year == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is required when month is provided",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Status != nil {
		if !validator.IsInSlice(strings.ToUpper(*f.Status), StatusValues) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: PRESENT, LATE, EARLY_DEPARTURE, ABSENT",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HistoryResponse struct {
	Records []RecordResponse `json:"records"`
}

type TodayResponse struct {
	HasCheckedIn bool            `json:"has_checked_in"`
	CanCheckIn   bool            `json:"can_check_in"`
	CanCheckOut  bool            `json:"can_check_out"`
	Record       *RecordResponse `json:"record,omitempty"`
}
