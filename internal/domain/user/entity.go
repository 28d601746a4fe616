package user

import "time"

type Role string

const (
	RoleAdmin Role = "admin" // Can manage work settings and view all users
	RoleUser  Role = "user"  // Regular employee
)

type User struct {
	ID            string
	Email         string
	PasswordHash  *string
	Name          string
	Role          Role
	Timezone      string // IANA name; governs the user's "today"
	AvatarURL     *string
	OAuthProvider *string
	OAuthID       *string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
