package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeLateArrival    NotificationType = "LATE_ARRIVAL"
	TypeEarlyDeparture NotificationType = "EARLY_DEPARTURE"
	TypeZoneEnter      NotificationType = "ZONE_ENTER"
	TypeZoneExit       NotificationType = "ZONE_EXIT"
	TypeMarkedAbsent   NotificationType = "MARKED_ABSENT"
)

// Notification represents a notification entity
type Notification struct {
	ID          string
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
