package handlers

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/streamhive/accounts-backend/internal/apperrors"
	portssvc "github.com/streamhive/accounts-backend/internal/core/ports/services"
	"github.com/streamhive/accounts-backend/internal/dto"
	"github.com/streamhive/accounts-backend/internal/middleware"
)

// userHandler handles registration and profile endpoints.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

// saveUploadedFile writes a multipart file part to a temp location and
// returns its path; callers must remove it when done. A missing part
// returns an empty path, not an error.
func saveUploadedFile(c *gin.Context, field string) (string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}
	dst := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, dst); err != nil {
		return "", err
	}
	return dst, nil
}

func removeTempFile(logger *slog.Logger, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil {
		logger.Warn("Failed to remove temp upload", slog.String("path", path), slog.String("error", err.Error()))
	}
}

func (h *userHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterUserRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindingError(c, err, "all fields are required")
		return
	}

	avatarPath, err := saveUploadedFile(c, "avatar")
	if err != nil {
		logger.Error("Failed to save avatar upload", slog.String("error", err.Error()))
		respondError(c, apperrors.Wrap(apperrors.ErrInternal, err))
		return
	}
	defer removeTempFile(logger, avatarPath)

	// Avatar is required; reject before touching the store.
	if avatarPath == "" {
		respondError(c, apperrors.NewBadRequest("avatar is required"))
		return
	}

	coverImagePath, err := saveUploadedFile(c, "coverImage")
	if err != nil {
		logger.Error("Failed to save cover image upload", slog.String("error", err.Error()))
		respondError(c, apperrors.Wrap(apperrors.ErrInternal, err))
		return
	}
	defer removeTempFile(logger, coverImagePath)

	user, err := h.userService.Register(c.Request.Context(), req, avatarPath, coverImagePath)
	if err != nil {
		logger.Error("Failed to register user", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, dto.ToUserResponse(user), "User registered successfully")
}

func (h *userHandler) getCurrentUser(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	user, err := h.userService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, dto.ToUserResponse(user), "User fetched successfully")
}

func (h *userHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err, "username and full name are required")
		return
	}

	user, err := h.userService.UpdateAccountDetails(c.Request.Context(), userID, req)
	if err != nil {
		logger.Warn("Account update failed", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, dto.ToUserResponse(user), "Account updated successfully")
}

// updateImage is the shared flow of the avatar and cover image endpoints.
func (h *userHandler) updateImage(c *gin.Context, field string, update func(ctx *gin.Context, userID, localPath string) error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	localPath, err := saveUploadedFile(c, field)
	if err != nil {
		logger.Error("Failed to save upload", slog.String("field", field), slog.String("error", err.Error()))
		respondError(c, apperrors.Wrap(apperrors.ErrInternal, err))
		return
	}
	defer removeTempFile(logger, localPath)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	if err := update(c, userID, localPath); err != nil {
		logger.Warn("Image update failed", slog.String("field", field), slog.String("error", err.Error()))
		respondError(c, err)
	}
}

func (h *userHandler) updateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", func(c *gin.Context, userID, localPath string) error {
		user, err := h.userService.UpdateAvatar(c.Request.Context(), userID, localPath)
		if err != nil {
			return err
		}
		respond(c, http.StatusOK, dto.ToUserResponse(user), "Avatar updated successfully")
		return nil
	})
}

func (h *userHandler) updateCoverImage(c *gin.Context) {
	h.updateImage(c, "coverImage", func(c *gin.Context, userID, localPath string) error {
		user, err := h.userService.UpdateCoverImage(c.Request.Context(), userID, localPath)
		if err != nil {
			return err
		}
		respond(c, http.StatusOK, dto.ToUserResponse(user), "Cover image updated successfully")
		return nil
	})
}

func (h *userHandler) getWatchHistory(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	history, err := h.userService.GetWatchHistory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, dto.WatchHistoryResponse{WatchHistory: history}, "Watch history fetched successfully")
}
