package auth

import "github.com/zuriwear/zuri-backend/internal/users"

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone,omitempty"`
}

// LoginRequest is the credentials payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest rotates an expired access token.
type RefreshRequest struct {
	AccessToken  string `json:"accessToken" validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// UpdateProfileRequest carries optional profile edits.
type UpdateProfileRequest struct {
	FullName  *string `json:"fullName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	County    *string `json:"county,omitempty"`
	Town      *string `json:"town,omitempty"`
	Address   *string `json:"address,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// SessionResponse is the token pair plus the account it belongs to.
type SessionResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	User         users.UserDTO `json:"user"`
}

// TokenPairResponse is the rotated pair returned by refresh.
type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// EmailExistsResponse answers the pre-signup availability check.
type EmailExistsResponse struct {
	Exists bool `json:"exists"`
}
