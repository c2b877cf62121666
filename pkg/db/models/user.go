package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/zuriwear/zuri-backend/pkg/enums"
)

// User represents a shopper or back-office account.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string         `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	FullName     string         `gorm:"column:full_name;not null"`
	Phone        *string        `gorm:"column:phone"`
	County       *string        `gorm:"column:county"`
	Town         *string        `gorm:"column:town"`
	Address      *string        `gorm:"column:address"`
	AvatarURL    *string        `gorm:"column:avatar_url"`
	Role         enums.UserRole `gorm:"column:role;type:text;not null;default:'customer'"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
