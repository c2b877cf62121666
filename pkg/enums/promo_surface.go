package enums

import "fmt"

// PromoSurface identifies where a promo code is being redeemed. The cart
// and checkout surfaces carry different discount percentages.
type PromoSurface string

const (
	PromoSurfaceCart     PromoSurface = "cart"
	PromoSurfaceCheckout PromoSurface = "checkout"
)

var validPromoSurfaces = []PromoSurface{
	PromoSurfaceCart,
	PromoSurfaceCheckout,
}

// String implements fmt.Stringer.
func (p PromoSurface) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PromoSurface.
func (p PromoSurface) IsValid() bool {
	for _, candidate := range validPromoSurfaces {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePromoSurface converts raw input into a PromoSurface.
func ParsePromoSurface(value string) (PromoSurface, error) {
	for _, candidate := range validPromoSurfaces {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid promo surface %q", value)
}
