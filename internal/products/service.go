package products

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zuriwear/zuri-backend/pkg/db/models"
	pkgerrors "github.com/zuriwear/zuri-backend/pkg/errors"
	"github.com/zuriwear/zuri-backend/pkg/pricing"
)

// ServiceParams groups dependencies for the products service.
type ServiceParams struct {
	Repo     *Repository
	Searches *RecentSearches
}

// ProductDTO is the catalog listing shape returned to clients.
type ProductDTO struct {
	Product        models.Product `json:"product"`
	SavingsPercent int            `json:"savingsPercent,omitempty"`
	PriceLabel     string         `json:"priceLabel"`
}

// Service exposes catalog reads plus the per-device search history.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]ProductDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	Search(ctx context.Context, deviceID, term string) ([]ProductDTO, error)
	RecentSearches(ctx context.Context, deviceID string) ([]string, error)
}

type service struct {
	repo     *Repository
	searches *RecentSearches
}

// NewService builds a products service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "products repo is required")
	}
	if params.Searches == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recent searches store is required")
	}
	return &service{repo: params.Repo, searches: params.Searches}, nil
}

// List returns listings matching the filter.
func (s *service) List(ctx context.Context, filter ListFilter) ([]ProductDTO, error) {
	listings, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return toDTOs(listings), nil
}

// Get loads one listing by ID.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	dto := toDTO(*product)
	return &dto, nil
}

// Search runs a text search and records the term in the device history. A
// history write failure does not fail the search.
func (s *service) Search(ctx context.Context, deviceID, term string) ([]ProductDTO, error) {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search term is required")
	}

	listings, err := s.repo.List(ctx, ListFilter{Search: trimmed})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search products")
	}

	if deviceID != "" {
		_ = s.searches.Record(ctx, deviceID, trimmed)
	}
	return toDTOs(listings), nil
}

// RecentSearches returns the device's search history.
func (s *service) RecentSearches(ctx context.Context, deviceID string) ([]string, error) {
	if deviceID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "device id is required")
	}
	return s.searches.List(ctx, deviceID)
}

func toDTOs(listings []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(listings))
	for _, listing := range listings {
		out = append(out, toDTO(listing))
	}
	return out
}

func toDTO(product models.Product) ProductDTO {
	dto := ProductDTO{
		Product:    product,
		PriceLabel: pricing.FormatKES(product.PriceKES),
	}
	if product.OriginalPriceKES != nil {
		dto.SavingsPercent = pricing.SavingsPercent(*product.OriginalPriceKES, product.PriceKES)
	}
	return dto
}
