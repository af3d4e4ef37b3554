package services

import (
	"context"
	"errors"
	"strings"

	"github.com/streamhive/accounts-backend/internal/apperrors"
	"github.com/streamhive/accounts-backend/internal/core/domain"
	portsrepo "github.com/streamhive/accounts-backend/internal/core/ports/repositories"
	portssvc "github.com/streamhive/accounts-backend/internal/core/ports/services"
	"github.com/streamhive/accounts-backend/internal/utils"
)

// authService is the session manager. The refresh token stored on the user
// record is the single source of truth for session validity: a login or
// refresh overwrites it, a logout clears it. One active session per user.
type authService struct {
	userRepo portsrepo.UserRepositoryFacade
	tokens   portssvc.TokenSvcFacade
}

// NewAuthService creates a new authService.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, tokens portssvc.TokenSvcFacade) portssvc.AuthSvcFacade {
	return &authService{userRepo: userRepo, tokens: tokens}
}

// issueAndStoreTokens generates a fresh pair and persists the refresh token
// on the user record, overwriting any prior value.
func (s *authService) issueAndStoreTokens(ctx context.Context, userID, email, username string) (*portssvc.TokenPair, error) {
	user := &domain.User{UserID: userID, Email: email, Username: username}

	accessToken, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, userID, refreshToken); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	return &portssvc.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *authService) Login(ctx context.Context, username, email, password string) (*portssvc.LoginResult, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" && email == "" {
		return nil, apperrors.NewBadRequest("username or email is required")
	}

	user, err := s.userRepo.FindUserByUsernameOrEmail(ctx, username, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Do not reveal whether the account exists.
			return nil, apperrors.Wrap(apperrors.ErrUnauthorized, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}

	pair, err := s.issueAndStoreTokens(ctx, user.UserID, user.Email, user.Username)
	if err != nil {
		return nil, err
	}

	return &portssvc.LoginResult{TokenPair: *pair, User: user}, nil
}

// Logout clears the stored refresh token. Logging out twice is not an
// error; the second clear is a no-op against an already absent field.
func (s *authService) Logout(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Wrap(apperrors.ErrNotFound, err)
		}
		return apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return nil
}

// RefreshTokens rotates the session: the presented token must both verify
// against the refresh secret and exactly match the value currently stored
// on the user, which rejects any rotated-out or logged-out token.
func (s *authService) RefreshTokens(ctx context.Context, presentedRefreshToken string) (*portssvc.TokenPair, error) {
	if presentedRefreshToken == "" {
		return nil, apperrors.ErrUnauthorized
	}

	userID, err := s.tokens.VerifyRefreshToken(presentedRefreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrUnauthorized, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	if user.RefreshToken != presentedRefreshToken {
		return nil, apperrors.ErrUnauthorized
	}

	return s.issueAndStoreTokens(ctx, user.UserID, user.Email, user.Username)
}

// ChangePassword authenticates the requester through the refresh token's
// validity and the old password. Unlike RefreshTokens it does not compare
// the presented token with the stored one; the upstream behavior this
// mirrors only checks token validity here.
func (s *authService) ChangePassword(ctx context.Context, presentedRefreshToken, oldPassword, newPassword string) error {
	if oldPassword == newPassword {
		return apperrors.NewBadRequest("old and new password must not be the same")
	}
	if presentedRefreshToken == "" {
		return apperrors.ErrUnauthorized
	}

	userID, err := s.tokens.VerifyRefreshToken(presentedRefreshToken)
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Wrap(apperrors.ErrUnauthorized, err)
		}
		return apperrors.Wrap(apperrors.ErrInternal, err)
	}

	if !utils.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return apperrors.ErrUnauthorized
	}

	newHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternal, err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.UserID, newHash); err != nil {
		return apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return nil
}
