package services

import (
	"context"

	"github.com/streamhive/accounts-backend/internal/core/domain"
)

// TokenPair is a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// LoginResult carries the issued tokens plus the authenticated user.
type LoginResult struct {
	TokenPair
	User *domain.User
}

// AuthSvcFacade is the session manager: login, logout, refresh rotation and
// password change. The user's stored refresh token is the single source of
// truth for session validity (one active session per user).
type AuthSvcFacade interface {
	// Login verifies credentials by username or email and issues a fresh
	// token pair, persisting the refresh token on the user record.
	Login(ctx context.Context, username, email, password string) (*LoginResult, error)

	// Logout clears the user's stored refresh token. Idempotent.
	Logout(ctx context.Context, userID string) error

	// RefreshTokens exchanges a valid, currently stored refresh token for a
	// brand-new pair, rotating the stored value.
	RefreshTokens(ctx context.Context, presentedRefreshToken string) (*TokenPair, error)

	// ChangePassword authenticates via refresh token and old password, then
	// re-hashes and persists the new password.
	ChangePassword(ctx context.Context, presentedRefreshToken, oldPassword, newPassword string) error
}

// TokenSvcFacade signs and verifies the two bearer token classes. Each class
// carries its own secret and expiry.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a short-lived access JWT embedding the
	// user's id, email and username.
	GenerateAccessToken(user *domain.User) (string, error)

	// GenerateRefreshToken creates a longer-lived refresh JWT carrying only
	// the user's id.
	GenerateRefreshToken(user *domain.User) (string, error)

	// VerifyRefreshToken validates signature and expiry of a refresh token
	// and returns the user ID it names.
	VerifyRefreshToken(token string) (string, error)
}
