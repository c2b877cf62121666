package newsletter

import (
	"context"

	"gorm.io/gorm"

	"github.com/zuriwear/zuri-backend/pkg/db/models"
)

// Repository persists newsletter signups.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a newsletter repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the subscriber row; the unique index on email is the
// duplicate guard.
func (r *Repository) Create(ctx context.Context, subscriber *models.NewsletterSubscriber) error {
	return r.db.WithContext(ctx).Create(subscriber).Error
}
