package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/zuriwear/zuri-backend/pkg/enums"
	"github.com/zuriwear/zuri-backend/pkg/types"
)

// Product represents a catalog listing. Prices are whole Kenyan shillings.
type Product struct {
	ID               uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name             string                `gorm:"column:name;not null"`
	Slug             string                `gorm:"column:slug;not null;uniqueIndex"`
	Description      *string               `gorm:"column:description"`
	Category         enums.ProductCategory `gorm:"column:category;type:text;not null"`
	PriceKES         int                   `gorm:"column:price_kes;not null"`
	OriginalPriceKES *int                  `gorm:"column:original_price_kes"`
	Sizes            types.StringList      `gorm:"column:sizes;type:jsonb;serializer:json"`
	Colors           types.ProductColors   `gorm:"column:colors;type:jsonb;serializer:json"`
	Images           types.ProductImages   `gorm:"column:images;type:jsonb;serializer:json"`
	Rating           float64               `gorm:"column:rating;type:numeric(3,2);not null;default:0"`
	ReviewCount      int                   `gorm:"column:review_count;not null;default:0"`
	StockCount       int                   `gorm:"column:stock_count;not null;default:0"`
	IsNew            bool                  `gorm:"column:is_new;not null;default:false"`
	IsSale           bool                  `gorm:"column:is_sale;not null;default:false"`
	IsActive         bool                  `gorm:"column:is_active;not null;default:true"`
	CreatedAt        time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
