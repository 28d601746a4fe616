package user

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/user"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/storage"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

type UserServiceImpl struct {
	user.UserRepository
	storage storage.FileStorage
}

func NewUserService(userRepository user.UserRepository, fileStorage storage.FileStorage) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepository,
		storage:        fileStorage,
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

// toProfile maps a user to its profile response, resolving the stored
// avatar path to a public URL when possible.
func (s *UserServiceImpl) toProfile(ctx context.Context, u user.User) user.ProfileResponse {
	profile := user.ProfileResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Timezone:  u.Timezone,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
	if u.AvatarURL != nil {
		if url, err := s.storage.GetURL(ctx, *u.AvatarURL); err == nil {
			profile.AvatarURL = &url
		}
	}
	return profile
}

// GetProfile implements user.UserService.
func (s *UserServiceImpl) GetProfile(ctx context.Context) (user.ProfileResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	userData, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	return s.toProfile(ctx, userData), nil
}

// UpdateProfile implements user.UserService.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, req user.UpdateProfileRequest) (user.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return user.ProfileResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	userData, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	if req.Name != nil {
		userData.Name = *req.Name
	}
	if req.Timezone != nil {
		userData.Timezone = *req.Timezone
	}

	if err := s.UserRepository.Update(ctx, userData); err != nil {
		return user.ProfileResponse{}, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.toProfile(ctx, userData), nil
}

// UploadAvatar implements user.UserService.
func (s *UserServiceImpl) UploadAvatar(ctx context.Context, req user.UploadAvatarRequest) (user.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return user.ProfileResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	userData, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	ext := strings.ToLower(filepath.Ext(req.FileHeader.Filename))
	contentType := "image/jpeg"
	if ext == ".png" {
		contentType = "image/png"
	}

	filename := fmt.Sprintf("%s-%s%s", userID, uuid.New().String(), ext)
	path := filepath.Join("avatars", userID, filename)

	uploadedPath, err := s.storage.Upload(ctx, req.File, path, contentType)
	if err != nil {
		return user.ProfileResponse{}, fmt.Errorf("failed to upload avatar: %w", err)
	}

	// Replace the previous avatar file when there is one.
	if userData.AvatarURL != nil {
		_ = s.storage.Delete(ctx, *userData.AvatarURL)
	}

	userData.AvatarURL = &uploadedPath
	if err := s.UserRepository.Update(ctx, userData); err != nil {
		return user.ProfileResponse{}, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.toProfile(ctx, userData), nil
}
