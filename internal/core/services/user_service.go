package services

import (
	"context"
	"errors"
	"strings"

	"github.com/streamhive/accounts-backend/internal/apperrors"
	"github.com/streamhive/accounts-backend/internal/core/domain"
	portsrepo "github.com/streamhive/accounts-backend/internal/core/ports/repositories"
	portssvc "github.com/streamhive/accounts-backend/internal/core/ports/services"
	"github.com/streamhive/accounts-backend/internal/dto"
	"github.com/streamhive/accounts-backend/internal/utils"
)

// userService handles registration and profile mutation: a thin consumer of
// the user repository plus the external media store.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
	media    portssvc.MediaStore
}

// NewUserService creates a new userService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, media portssvc.MediaStore) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, media: media}
}

func (s *userService) Register(ctx context.Context, req dto.RegisterUserRequest, avatarPath, coverImagePath string) (*domain.User, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	fullName := strings.TrimSpace(req.FullName)

	if username == "" || email == "" || req.Password == "" || fullName == "" {
		return nil, apperrors.NewBadRequest("all fields are required")
	}
	// Explicit upfront presence check: the avatar is a required asset and
	// its absence must fail before any store write.
	if avatarPath == "" {
		return nil, apperrors.NewBadRequest("avatar is required")
	}

	existing, err := s.userRepo.FindUserByUsernameOrEmail(ctx, username, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	if existing != nil {
		return nil, apperrors.NewConflict("user with email or username already exists")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	avatarURL, err := s.media.Upload(ctx, avatarPath)
	if err != nil || avatarURL == "" {
		return nil, apperrors.Wrap(apperrors.NewInternal("avatar upload failed"), err)
	}

	// The cover image is optional; an upload failure degrades to an empty
	// URL instead of failing the registration.
	coverImageURL := ""
	if coverImagePath != "" {
		if url, err := s.media.Upload(ctx, coverImagePath); err == nil {
			coverImageURL = url
		}
	}

	created, err := s.userRepo.CreateUser(ctx, domain.User{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		AvatarURL:    avatarURL,
		CoverImage:   coverImageURL,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewConflict("user with email or username already exists")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	// Re-fetch the stored document. If this fails the row may already
	// exist; surface an internal error rather than papering over it.
	registered, err := s.userRepo.FindUserByID(ctx, created.UserID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.NewInternal("something went wrong while registering user"), err)
	}
	return registered, nil
}

func (s *userService) GetCurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return user, nil
}

func (s *userService) GetWatchHistory(ctx context.Context, userID string) ([]string, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return user.WatchHistory, nil
}

func (s *userService) UpdateAccountDetails(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*domain.User, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	fullName := strings.TrimSpace(req.FullName)
	if username == "" || fullName == "" {
		return nil, apperrors.NewBadRequest("username and full name are required")
	}

	updated, err := s.userRepo.UpdateAccountDetails(ctx, userID, username, fullName)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return nil, err
		case errors.Is(err, apperrors.ErrConflict):
			return nil, apperrors.NewConflict("username already taken")
		default:
			return nil, apperrors.Wrap(apperrors.ErrInternal, err)
		}
	}
	return updated, nil
}

func (s *userService) UpdateAvatar(ctx context.Context, userID string, localPath string) (*domain.User, error) {
	if localPath == "" {
		return nil, apperrors.NewBadRequest("avatar file is missing")
	}

	avatarURL, err := s.media.Upload(ctx, localPath)
	if err != nil || avatarURL == "" {
		return nil, apperrors.Wrap(apperrors.NewInternal("avatar upload failed"), err)
	}

	updated, err := s.userRepo.UpdateAvatar(ctx, userID, avatarURL)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return updated, nil
}

func (s *userService) UpdateCoverImage(ctx context.Context, userID string, localPath string) (*domain.User, error) {
	if localPath == "" {
		return nil, apperrors.NewBadRequest("cover image file is missing")
	}

	coverImageURL, err := s.media.Upload(ctx, localPath)
	if err != nil || coverImageURL == "" {
		return nil, apperrors.Wrap(apperrors.NewInternal("cover image upload failed"), err)
	}

	updated, err := s.userRepo.UpdateCoverImage(ctx, userID, coverImageURL)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return updated, nil
}
