package location

import "errors"

// Location domain errors
var (
	ErrNoPinnedLocation = errors.New("no pinned location found for this user")
	ErrPinNotFound      = errors.New("location pin not found")
	ErrHistoryNotFound  = errors.New("location history not found")
)
