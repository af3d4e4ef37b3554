package services

import (
	"github.com/streamhive/accounts-backend/internal/apperrors"
	"github.com/streamhive/accounts-backend/internal/core/domain"
	portssvc "github.com/streamhive/accounts-backend/internal/core/ports/services"
	"github.com/streamhive/accounts-backend/internal/platform/config"
	"github.com/streamhive/accounts-backend/internal/utils"
)

// tokenService implements TokenSvcFacade. Access and refresh tokens are
// HS256 JWTs signed with independent secrets and expiries from config.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

func (s *tokenService) GenerateAccessToken(user *domain.User) (string, error) {
	token, err := utils.GenerateAccessJWT(
		user.UserID, user.Email, user.Username,
		s.cfg.AccessTokenSecret, s.cfg.AccessTokenExpiry, s.cfg.JWTIssuer,
	)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return token, nil
}

func (s *tokenService) GenerateRefreshToken(user *domain.User) (string, error) {
	token, err := utils.GenerateRefreshJWT(
		user.UserID,
		s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenExpiry, s.cfg.JWTIssuer,
	)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return token, nil
}

// VerifyRefreshToken validates the token against the refresh secret and
// returns the user ID it names. Signature and expiry failures both collapse
// to Unauthorized so callers present a uniform outward error.
func (s *tokenService) VerifyRefreshToken(token string) (string, error) {
	claims, err := utils.ParseRefreshJWT(token, s.cfg.RefreshTokenSecret)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrUnauthorized, err)
	}
	if claims.Subject == "" {
		return "", apperrors.ErrUnauthorized
	}
	return claims.Subject, nil
}
