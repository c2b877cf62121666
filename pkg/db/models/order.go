package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/zuriwear/zuri-backend/pkg/enums"
)

// Order is the persisted header for a submitted checkout. Item snapshots
// live in OrderItem; both are written in one transaction so an order is
// never visible without its lines.
type Order struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber string     `gorm:"column:order_number;not null;uniqueIndex"`
	UserID      *uuid.UUID `gorm:"column:user_id;type:uuid;index"`

	CustomerFirstName string `gorm:"column:customer_first_name;not null"`
	CustomerLastName  string `gorm:"column:customer_last_name;not null"`
	CustomerPhone     string `gorm:"column:customer_phone;not null;index"`
	CustomerEmail     string `gorm:"column:customer_email;not null"`

	County       string  `gorm:"column:county;not null"`
	Town         string  `gorm:"column:town;not null"`
	Address      string  `gorm:"column:address;not null"`
	Instructions *string `gorm:"column:instructions"`

	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;type:text;not null"`
	PaymentStatus enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'pending'"`

	DeliveryZone     enums.DeliveryZone   `gorm:"column:delivery_zone;type:text;not null"`
	DeliveryPriceKES int                  `gorm:"column:delivery_price_kes;not null"`
	DeliveryStatus   enums.DeliveryStatus `gorm:"column:delivery_status;type:text;not null;default:'pending'"`

	SubtotalKES int     `gorm:"column:subtotal_kes;not null"`
	DiscountKES int     `gorm:"column:discount_kes;not null;default:0"`
	PromoCode   *string `gorm:"column:promo_code"`
	TotalKES    int     `gorm:"column:total_kes;not null"`

	Status enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
