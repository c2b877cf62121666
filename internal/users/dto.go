package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/zuriwear/zuri-backend/pkg/db/models"
	"github.com/zuriwear/zuri-backend/pkg/enums"
)

// UserDTO is the public account shape; the password hash never leaves the
// service layer.
type UserDTO struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	FullName    string         `json:"fullName"`
	Phone       *string        `json:"phone,omitempty"`
	County      *string        `json:"county,omitempty"`
	Town        *string        `json:"town,omitempty"`
	Address     *string        `json:"address,omitempty"`
	AvatarURL   *string        `json:"avatarUrl,omitempty"`
	Role        enums.UserRole `json:"role"`
	LastLoginAt *time.Time     `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// FromModel maps the storage row to the public shape.
func FromModel(user *models.User) UserDTO {
	if user == nil {
		return UserDTO{}
	}
	return UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		Phone:       user.Phone,
		County:      user.County,
		Town:        user.Town,
		Address:     user.Address,
		AvatarURL:   user.AvatarURL,
		Role:        user.Role,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
