package checkout

import (
	"github.com/zuriwear/zuri-backend/pkg/enums"
)

// ShippingDetails is the form captured on the first checkout step. Fields
// are free text; validation only requires trimmed non-empty values.
type ShippingDetails struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	County       string `json:"county"`
	Town         string `json:"town"`
	Address      string `json:"address"`
	Instructions string `json:"instructions,omitempty"`
}

// Session is the per-device checkout document persisted in Redis. The flow
// is strictly shipping → payment → confirmation.
type Session struct {
	Step          enums.CheckoutStep  `json:"step"`
	Shipping      ShippingDetails     `json:"shipping"`
	DeliveryZone  enums.DeliveryZone  `json:"deliveryZone,omitempty"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod,omitempty"`
	PromoApplied  bool                `json:"promoApplied"`
	PromoCode     string              `json:"promoCode,omitempty"`
	OrderNumber   string              `json:"orderNumber,omitempty"`
}

// Totals is the payment-step price breakdown.
type Totals struct {
	SubtotalKES int `json:"subtotalKes"`
	DiscountKES int `json:"discountKes"`
	DeliveryKES int `json:"deliveryKes"`
	TotalKES    int `json:"totalKes"`
}

// SessionView is the session plus its computed totals.
type SessionView struct {
	Session Session `json:"session"`
	Totals  Totals  `json:"totals"`
}

func emptySession() Session {
	return Session{Step: enums.CheckoutStepShipping}
}
