package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhive/accounts-backend/internal/apperrors"
	portssvc "github.com/streamhive/accounts-backend/internal/core/ports/services"
	"github.com/streamhive/accounts-backend/internal/dto"
	"github.com/streamhive/accounts-backend/internal/middleware"
	"github.com/streamhive/accounts-backend/internal/platform/config"
)

// RefreshTokenCookie is the cookie name carrying the refresh token.
const RefreshTokenCookie = "refreshToken"

// authHandler handles the session lifecycle endpoints.
type authHandler struct {
	authService portssvc.AuthSvcFacade
	cfg         *config.Config
}

func newAuthHandler(as portssvc.AuthSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{authService: as, cfg: cfg}
}

// setAuthCookies delivers both tokens as HttpOnly secure cookies alongside
// the JSON body.
func (h *authHandler) setAuthCookies(c *gin.Context, pair portssvc.TokenPair) {
	c.SetCookie(middleware.AccessTokenCookie, pair.AccessToken, int(h.cfg.AccessTokenExpiry.Seconds()), "/", "", true, true)
	c.SetCookie(RefreshTokenCookie, pair.RefreshToken, int(h.cfg.RefreshTokenExpiry.Seconds()), "/", "", true, true)
}

func (h *authHandler) clearAuthCookies(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", true, true)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", "", true, true)
}

func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err, "invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		logger.Warn("Login failed", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	h.setAuthCookies(c, result.TokenPair)
	respond(c, http.StatusOK, dto.LoginResponse{
		User:         dto.ToUserResponse(result.User),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, "User logged in successfully")
}

func (h *authHandler) logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		logger.Error("Logout failed", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	h.clearAuthCookies(c)
	respond(c, http.StatusOK, gin.H{}, "User logged out successfully")
}

// refreshToken exchanges a refresh token, taken from the cookie or the
// request body, for a rotated token pair.
func (h *authHandler) refreshToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	presented, _ := c.Cookie(RefreshTokenCookie)
	if presented == "" {
		var req dto.RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			presented = req.RefreshToken
		}
	}

	pair, err := h.authService.RefreshTokens(c.Request.Context(), presented)
	if err != nil {
		logger.Warn("Token refresh failed", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	h.setAuthCookies(c, *pair)
	respond(c, http.StatusOK, dto.RefreshTokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "Access token refreshed successfully")
}

func (h *authHandler) changePassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err, "old and new password are required")
		return
	}

	presented, _ := c.Cookie(RefreshTokenCookie)

	if err := h.authService.ChangePassword(c.Request.Context(), presented, req.OldPassword, req.NewPassword); err != nil {
		logger.Warn("Password change failed", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{}, "Password updated successfully")
}
