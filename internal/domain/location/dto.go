package location

import (
	"github.com/geoattend/geoattend-backend-go/internal/pkg/validator"
)

// ========================================
// LOCATION DTOs
// ========================================

type PinLocationRequest struct {
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	RadiusMeters *float64 `json:"radius_meters,omitempty"`
}

func (r *PinLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.RadiusMeters != nil && *r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be greater than 0",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PinResponse struct {
	ID           string  `json:"id"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
	CreatedAt    string  `json:"created_at"`
}

type TrackRequest struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	ObservedAt *string `json:"observed_at,omitempty"` // RFC3339; defaults to server time
}

func (r *TrackRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.ObservedAt != nil && *r.ObservedAt != "" {
		if _, valid := validator.IsValidDateTime(*r.ObservedAt); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "observed_at",
				Message: "observed_at must be a valid RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TrackResponse struct {
	InZone         bool    `json:"in_zone"`
	DistanceMeters float64 `json:"distance_meters"`
	Entered        bool    `json:"entered"`
	Exited         bool    `json:"exited"`
	InsideSeconds  int64   `json:"inside_seconds"`
	OutsideSeconds int64   `json:"outside_seconds"`
	Percentage     int     `json:"percentage"`
}

type HistoryFilter struct {
	Filter string `json:"filter"` // day, week, month
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Filter == "" {
		f.Filter = "day" // Default filter
	}

	validFilters := []string{"day", "week", "month"}
	if !validator.IsInSlice(f.Filter, validFilters) {
		errs = append(errs, validator.ValidationError{
			Field:   "filter",
			Message: "filter must be one of: day, week, month",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HistoryEntry struct {
	ID             string `json:"id"`
	Date           string `json:"date"`
	InsideSeconds  int64  `json:"inside_seconds"`
	OutsideSeconds int64  `json:"outside_seconds"`
	Percentage     int    `json:"percentage"`
	Status         string `json:"status"` // IN_ZONE or OUT_ZONE
}

type HistoryChart struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

type HistoryResponse struct {
	Activities []HistoryEntry `json:"activities"`
	Chart      HistoryChart   `json:"chart"`
}

type DailySummary struct {
	InsideSeconds  int64 `json:"inside_seconds"`
	OutsideSeconds int64 `json:"outside_seconds"`
	Percentage     int   `json:"percentage"`
}
