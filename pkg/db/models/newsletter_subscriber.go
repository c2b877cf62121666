package models

import (
	"time"

	"github.com/google/uuid"
)

// NewsletterSubscriber records an opted-in email address.
type NewsletterSubscriber struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email     string    `gorm:"type:text;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
