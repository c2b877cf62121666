package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem is a line snapshot taken at submission time. Product details are
// copied so later catalog edits never rewrite order history.
type OrderItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Name      string    `gorm:"column:name;not null"`
	Image     *string   `gorm:"column:image"`
	Size      string    `gorm:"column:size;not null"`
	ColorName string    `gorm:"column:color_name;not null"`
	ColorHex  *string   `gorm:"column:color_hex"`
	PriceKES  int       `gorm:"column:price_kes;not null"`
	Quantity  int       `gorm:"column:quantity;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
