package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/streamhive/accounts-backend/internal/core/ports/services"
	"github.com/streamhive/accounts-backend/internal/middleware"
	"github.com/streamhive/accounts-backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	authH := newAuthHandler(services.Auth, cfg)
	userH := newUserHandler(services.User)

	users := r.Group("/api/v1/users")
	{
		users.POST("/register", userH.register)
		users.POST("/login", authH.login)
		// Refresh authenticates via the refresh token itself (cookie or
		// body), not via the access token.
		users.GET("/refresh-token", authH.refreshToken)
	}

	secured := users.Group("", middleware.AuthMiddleware(cfg.AccessTokenSecret))
	{
		secured.GET("/logout", authH.logout)
		secured.PATCH("/change-password", authH.changePassword)
		secured.GET("/get-current-user", userH.getCurrentUser)
		secured.PATCH("/update-account", userH.updateAccount)
		secured.PATCH("/update-avatar", userH.updateAvatar)
		secured.PATCH("/update-cover-image", userH.updateCoverImage)
		secured.GET("/watch-history", userH.getWatchHistory)
	}
}
