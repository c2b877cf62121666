package products

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zuriwear/zuri-backend/pkg/db/models"
	"github.com/zuriwear/zuri-backend/pkg/enums"
)

// ListFilter narrows a catalog listing.
type ListFilter struct {
	Category *enums.ProductCategory
	Search   string
	OnlySale bool
	OnlyNew  bool
	Limit    int
	Offset   int
}

const defaultListLimit = 50

// Repository provides catalog reads.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a products repository bound to the provided DB.
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

// List returns active listings matching the filter.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	limit := filter.Limit
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}

	query := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Offset(filter.Offset)

	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		query = query.Where("name ILIKE ?", "%"+term+"%")
	}
	if filter.OnlySale {
		query = query.Where("is_sale = ?", true)
	}
	if filter.OnlyNew {
		query = query.Where("is_new = ?", true)
	}

	var listings []models.Product
	if err := query.Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// FindByID loads one listing by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBySlug loads one listing by its URL slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}
