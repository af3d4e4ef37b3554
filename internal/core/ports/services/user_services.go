package services

import (
	"context"

	"github.com/streamhive/accounts-backend/internal/core/domain"
	"github.com/streamhive/accounts-backend/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetCurrentUser retrieves the authenticated user by ID.
	GetCurrentUser(ctx context.Context, userID string) (*domain.User, error)

	// GetWatchHistory returns the ordered list of watched video IDs.
	GetWatchHistory(ctx context.Context, userID string) ([]string, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// Register creates a new user. avatarPath must point to a local file;
	// coverImagePath may be empty.
	Register(ctx context.Context, req dto.RegisterUserRequest, avatarPath, coverImagePath string) (*domain.User, error)

	// UpdateAccountDetails changes the user's username and full name.
	UpdateAccountDetails(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*domain.User, error)

	// UpdateAvatar uploads a new avatar from a local file and stores its URL.
	UpdateAvatar(ctx context.Context, userID string, localPath string) (*domain.User, error)

	// UpdateCoverImage uploads a new cover image from a local file and stores its URL.
	UpdateCoverImage(ctx context.Context, userID string, localPath string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
