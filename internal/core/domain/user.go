package domain

import "time"

// User represents a user of the application in the domain. IDs are opaque
// hex strings; repository implementations own the concrete ID type.
type User struct {
	UserID       string
	Username     string
	Email        string
	FullName     string
	PasswordHash string
	AvatarURL    string
	CoverImage   string
	RefreshToken string
	WatchHistory []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasActiveSession reports whether the user currently holds a refresh token.
func (u *User) HasActiveSession() bool {
	return u.RefreshToken != ""
}
