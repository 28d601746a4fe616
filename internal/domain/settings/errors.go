package settings

import "errors"

// Settings domain errors
var (
	ErrSettingsNotConfigured = errors.New("work settings have not been configured")
	ErrInvalidTimeOfDay      = errors.New("time of day must be in HH:MM format")
)
