package cart

import "github.com/google/uuid"

// Line is one cart entry. Product details are snapshotted at add time so the
// cart stays renderable even if the listing changes.
type Line struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	PriceKES  int       `json:"priceKes"`
	Image     string    `json:"image,omitempty"`
	Size      string    `json:"size"`
	ColorName string    `json:"colorName"`
	ColorHex  string    `json:"colorHex,omitempty"`
	Quantity  int       `json:"quantity"`
}

// Cart is the per-device document persisted in Redis.
type Cart struct {
	Items []Line `json:"items"`
}

// Totals summarizes the cart for display and checkout.
type Totals struct {
	ItemCount   int `json:"itemCount"`
	SubtotalKES int `json:"subtotalKes"`
	ShippingKES int `json:"shippingKes"`
	TotalKES    int `json:"totalKes"`
}

// lineKey identifies a mergeable cart line. Two adds with the same product,
// size, and color name accumulate quantity instead of appending.
type lineKey struct {
	productID uuid.UUID
	size      string
	colorName string
}

func keyOf(line Line) lineKey {
	return lineKey{productID: line.ProductID, size: line.Size, colorName: line.ColorName}
}
