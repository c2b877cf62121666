package commute

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zuriwear/zuri-backend/pkg/db/models"
)

// Repository persists commute destinations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a commute repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to a transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// ListByUser returns the user's destinations in saved order.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CommuteDestination, error) {
	var destinations []models.CommuteDestination
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC").
		Find(&destinations).Error
	if err != nil {
		return nil, err
	}
	return destinations, nil
}

// CountByUser returns how many destinations the user has saved.
func (r *Repository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CommuteDestination{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// MaxPosition returns the highest position in use, or -1 when empty.
func (r *Repository) MaxPosition(ctx context.Context, userID uuid.UUID) (int, error) {
	var result struct {
		Max *int
	}
	err := r.db.WithContext(ctx).
		Model(&models.CommuteDestination{}).
		Select("MAX(position) AS max").
		Where("user_id = ?", userID).
		Scan(&result).Error
	if err != nil {
		return 0, err
	}
	if result.Max == nil {
		return -1, nil
	}
	return *result.Max, nil
}

// FindByID loads one destination scoped to the user.
func (r *Repository) FindByID(ctx context.Context, userID, id uuid.UUID) (*models.CommuteDestination, error) {
	var destination models.CommuteDestination
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&destination).Error
	if err != nil {
		return nil, err
	}
	return &destination, nil
}

// ExistsPlace reports whether the user already saved the place.
func (r *Repository) ExistsPlace(ctx context.Context, userID uuid.UUID, placeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CommuteDestination{}).
		Where("user_id = ? AND place_id = ?", userID, placeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts the destination row.
func (r *Repository) Create(ctx context.Context, destination *models.CommuteDestination) (*models.CommuteDestination, error) {
	if err := r.db.WithContext(ctx).Create(destination).Error; err != nil {
		return nil, err
	}
	return destination, nil
}

// Save persists all mutable fields of an existing row.
func (r *Repository) Save(ctx context.Context, destination *models.CommuteDestination) error {
	return r.db.WithContext(ctx).Save(destination).Error
}

// Delete removes the destination scoped to the user.
func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.CommuteDestination{}).Error
}

// DeactivateAll clears the active flag across the user's destinations and
// resets their stroke to the inactive color.
func (r *Repository) DeactivateAll(ctx context.Context, userID uuid.UUID, inactiveStroke string) error {
	return r.db.WithContext(ctx).
		Model(&models.CommuteDestination{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{"active": false, "stroke_color": inactiveStroke}).Error
}
