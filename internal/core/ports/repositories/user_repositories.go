package repositories

import (
	"context"

	"github.com/streamhive/accounts-backend/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a user by their opaque ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsernameOrEmail retrieves the first user matching either the
	// username or the email. Empty arguments are skipped.
	FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data. Every mutation targets
// a single document; the store's per-document atomicity is the only
// coordination the callers rely on.
type UserWriter interface {
	// CreateUser persists a new user and returns it with its assigned ID.
	CreateUser(ctx context.Context, user domain.User) (*domain.User, error)

	// UpdateRefreshToken overwrites the user's stored refresh token.
	UpdateRefreshToken(ctx context.Context, userID string, refreshToken string) error

	// ClearRefreshToken removes the user's stored refresh token. Clearing an
	// already absent token is not an error.
	ClearRefreshToken(ctx context.Context, userID string) error

	// UpdatePassword replaces the user's password hash, touching nothing else.
	UpdatePassword(ctx context.Context, userID string, passwordHash string) error

	// UpdateAccountDetails patches username and full name, returning the
	// updated user.
	UpdateAccountDetails(ctx context.Context, userID string, username, fullName string) (*domain.User, error)

	// UpdateAvatar patches the avatar URL, returning the updated user.
	UpdateAvatar(ctx context.Context, userID string, avatarURL string) (*domain.User, error)

	// UpdateCoverImage patches the cover image URL, returning the updated user.
	UpdateCoverImage(ctx context.Context, userID string, coverImageURL string) (*domain.User, error)
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
