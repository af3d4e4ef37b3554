package services_test

import (
	"testing"
	"time"

	"github.com/streamhive/accounts-backend/internal/apperrors"
	"github.com/streamhive/accounts-backend/internal/core/domain"
	"github.com/streamhive/accounts-backend/internal/core/services"
	"github.com/streamhive/accounts-backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_AccessTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	svc := services.NewTokenService(cfg)
	user := &domain.User{UserID: "665f1c9e8b3f4a0012345678", Email: "a@x.com", Username: "alice"}

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := utils.ParseAccessJWT(token, cfg.AccessTokenSecret)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, claims.Subject)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, cfg.JWTIssuer, claims.Issuer)
}

func TestTokenService_RefreshTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	svc := services.NewTokenService(cfg)
	user := &domain.User{UserID: "665f1c9e8b3f4a0012345678"}

	token, err := svc.GenerateRefreshToken(user)
	require.NoError(t, err)

	userID, err := svc.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, userID)
}

func TestTokenService_RefreshTokensAreUnique(t *testing.T) {
	svc := services.NewTokenService(testConfig())
	user := &domain.User{UserID: "665f1c9e8b3f4a0012345678"}

	first, err := svc.GenerateRefreshToken(user)
	require.NoError(t, err)
	second, err := svc.GenerateRefreshToken(user)
	require.NoError(t, err)

	// Tokens minted back to back must still differ or rotation could not
	// distinguish old from new.
	assert.NotEqual(t, first, second)
}

func TestTokenService_SecretsAreIndependent(t *testing.T) {
	cfg := testConfig()
	svc := services.NewTokenService(cfg)
	user := &domain.User{UserID: "665f1c9e8b3f4a0012345678", Email: "a@x.com", Username: "alice"}

	accessToken, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	// An access token does not verify as a refresh token.
	_, err = svc.VerifyRefreshToken(accessToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenService_VerifyRejectsWrongSecret(t *testing.T) {
	cfg := testConfig()
	other := testConfig()
	other.RefreshTokenSecret = "a-different-secret"
	user := &domain.User{UserID: "665f1c9e8b3f4a0012345678"}

	token, err := services.NewTokenService(other).GenerateRefreshToken(user)
	require.NoError(t, err)

	_, err = services.NewTokenService(cfg).VerifyRefreshToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenService_VerifyRejectsExpired(t *testing.T) {
	cfg := testConfig()
	cfg.RefreshTokenExpiry = -time.Minute
	svc := services.NewTokenService(cfg)
	user := &domain.User{UserID: "665f1c9e8b3f4a0012345678"}

	token, err := svc.GenerateRefreshToken(user)
	require.NoError(t, err)

	_, err = svc.VerifyRefreshToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenService_VerifyRejectsGarbage(t *testing.T) {
	svc := services.NewTokenService(testConfig())

	_, err := svc.VerifyRefreshToken("not-a-jwt")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
