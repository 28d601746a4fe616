package settings

import (
	"regexp"

	"github.com/geoattend/geoattend-backend-go/internal/pkg/validator"
)

var timeOfDayRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type UpdateSettingsRequest struct {
	WorkStart                   string `json:"work_start"`
	WorkEnd                     string `json:"work_end"`
	LateThresholdMinutes        int    `json:"late_threshold_minutes"`
	EarlyDepartThresholdMinutes int    `json:"early_depart_threshold_minutes"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if !timeOfDayRegex.MatchString(r.WorkStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "work_start",
			Message: "work_start must be in HH:MM format",
		})
	}

	if !timeOfDayRegex.MatchString(r.WorkEnd) {
		errs = append(errs, validator.ValidationError{
			Field:   "work_end",
			Message: "work_end must be in HH:MM format",
		})
	}

	if r.LateThresholdMinutes < 0 || r.LateThresholdMinutes > 240 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_threshold_minutes",
			Message: "late_threshold_minutes must be between 0 and 240",
		})
	}

	if r.EarlyDepartThresholdMinutes < 0 || r.EarlyDepartThresholdMinutes > 240 {
		errs = append(errs, validator.ValidationError{
			Field:   "early_depart_threshold_minutes",
			Message: "early_depart_threshold_minutes must be between 0 and 240",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SettingsResponse struct {
	WorkStart                   string `json:"work_start"`
	WorkEnd                     string `json:"work_end"`
	LateThresholdMinutes        int    `json:"late_threshold_minutes"`
	EarlyDepartThresholdMinutes int    `json:"early_depart_threshold_minutes"`
	UpdatedAt                   string `json:"updated_at"`
}
