package dto

import (
	"time"

	"github.com/streamhive/accounts-backend/internal/core/domain"
)

// RegisterUserRequest carries the multipart form fields for registration.
// The avatar and cover image files arrive alongside as file parts.
type RegisterUserRequest struct {
	Username string `form:"username" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
	FullName string `form:"fullName" binding:"required"`
}

// UpdateAccountRequest defines the mutable account detail fields.
type UpdateAccountRequest struct {
	Username string `json:"username" binding:"required"`
	FullName string `json:"fullName" binding:"required"`
}

// UserResponse is the sanitized user view returned to clients. It never
// carries the password hash or the stored refresh token.
type UserResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	Avatar       string    `json:"avatar"`
	CoverImage   string    `json:"coverImage,omitempty"`
	WatchHistory []string  `json:"watchHistory,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToUserResponse converts a domain.User to its sanitized response view.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.UserID,
		Username:     user.Username,
		Email:        user.Email,
		FullName:     user.FullName,
		Avatar:       user.AvatarURL,
		CoverImage:   user.CoverImage,
		WatchHistory: user.WatchHistory,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// WatchHistoryResponse wraps the ordered list of watched video IDs.
type WatchHistoryResponse struct {
	WatchHistory []string `json:"watchHistory"`
}
