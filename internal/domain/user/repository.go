package user

import "context"

// UserRepository defines data access methods for users.
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, u User) error
	ListActive(ctx context.Context) ([]User, error)
}

// UserService covers profile management for the authenticated user.
type UserService interface {
	GetProfile(ctx context.Context) (ProfileResponse, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (ProfileResponse, error)
	UploadAvatar(ctx context.Context, req UploadAvatarRequest) (ProfileResponse, error)
}
