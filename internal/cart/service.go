package cart

import (
	"context"

	"github.com/google/uuid"

	"github.com/zuriwear/zuri-backend/pkg/config"
	"github.com/zuriwear/zuri-backend/pkg/devicestore"
	pkgerrors "github.com/zuriwear/zuri-backend/pkg/errors"
	"github.com/zuriwear/zuri-backend/pkg/logger"
)

// Scope is the Redis document scope the cart persists under.
const Scope = "cart"

// Service exposes cart reads and mutations scoped to a device.
type Service interface {
	Get(ctx context.Context, deviceID string) (Cart, Totals, error)
	AddItem(ctx context.Context, deviceID string, line Line) (Cart, error)
	RemoveItem(ctx context.Context, deviceID string, productID uuid.UUID, size, colorName string) (Cart, error)
	UpdateQuantity(ctx context.Context, deviceID string, productID uuid.UUID, size, colorName string, quantity int) (Cart, error)
	Clear(ctx context.Context, deviceID string) error
	IsInCart(ctx context.Context, deviceID string, productID uuid.UUID) (bool, error)
	ComputeTotals(c Cart) Totals
}

type service struct {
	store    *devicestore.Store[Cart]
	checkout config.CheckoutConfig
}

// NewService builds the cart service on top of the shared device store.
func NewService(store *devicestore.Store[Cart], checkout config.CheckoutConfig) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart store is required")
	}
	if checkout.FreeShippingThresholdKES <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "free shipping threshold must be positive")
	}
	if checkout.FlatShippingKES < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "flat shipping cannot be negative")
	}
	return &service{store: store, checkout: checkout}, nil
}

// NewStore builds the Redis-backed document store the service persists to.
func NewStore(backend devicestore.Backend, logg *logger.Logger) (*devicestore.Store[Cart], error) {
	return devicestore.New(backend, Scope, 0, func() Cart { return Cart{Items: []Line{}} }, logg)
}

// Get loads the cart and its computed totals.
func (s *service) Get(ctx context.Context, deviceID string) (Cart, Totals, error) {
	loaded, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return Cart{}, Totals{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return loaded, s.ComputeTotals(loaded), nil
}

// AddItem merges the line into the cart, accumulating quantity when the
// product, size, and color already exist.
func (s *service) AddItem(ctx context.Context, deviceID string, line Line) (Cart, error) {
	if line.ProductID == uuid.Nil {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if line.Size == "" {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "size is required")
	}
	if line.ColorName == "" {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "color is required")
	}
	if line.PriceKES < 0 {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if line.Quantity <= 0 {
		line.Quantity = 1
	}

	loaded, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	key := keyOf(line)
	merged := false
	for i := range loaded.Items {
		if keyOf(loaded.Items[i]) == key {
			loaded.Items[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		loaded.Items = append(loaded.Items, line)
	}

	if err := s.store.Save(ctx, deviceID, loaded); err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return loaded, nil
}

// RemoveItem drops the matching line. Removing an absent line is a no-op.
func (s *service) RemoveItem(ctx context.Context, deviceID string, productID uuid.UUID, size, colorName string) (Cart, error) {
	loaded, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	key := lineKey{productID: productID, size: size, colorName: colorName}
	kept := loaded.Items[:0]
	for _, item := range loaded.Items {
		if keyOf(item) != key {
			kept = append(kept, item)
		}
	}
	loaded.Items = kept

	if err := s.store.Save(ctx, deviceID, loaded); err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return loaded, nil
}

// UpdateQuantity sets the quantity on the matching line. Zero or negative
// quantities behave as removal so the cart never carries dead lines.
func (s *service) UpdateQuantity(ctx context.Context, deviceID string, productID uuid.UUID, size, colorName string, quantity int) (Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, deviceID, productID, size, colorName)
	}

	loaded, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	key := lineKey{productID: productID, size: size, colorName: colorName}
	for i := range loaded.Items {
		if keyOf(loaded.Items[i]) == key {
			loaded.Items[i].Quantity = quantity
			if err := s.store.Save(ctx, deviceID, loaded); err != nil {
				return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
			}
			return loaded, nil
		}
	}
	return Cart{}, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
}

// Clear wipes the cart document.
func (s *service) Clear(ctx context.Context, deviceID string) error {
	if err := s.store.Clear(ctx, deviceID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

// IsInCart reports whether any line references the product, in any variant.
func (s *service) IsInCart(ctx context.Context, deviceID string, productID uuid.UUID) (bool, error) {
	loaded, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	for _, item := range loaded.Items {
		if item.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

// ComputeTotals derives item count, subtotal, shipping, and total. Shipping
// is free at or above the configured threshold.
func (s *service) ComputeTotals(c Cart) Totals {
	totals := Totals{}
	for _, item := range c.Items {
		totals.ItemCount += item.Quantity
		totals.SubtotalKES += item.PriceKES * item.Quantity
	}
	if totals.SubtotalKES < s.checkout.FreeShippingThresholdKES {
		totals.ShippingKES = s.checkout.FlatShippingKES
	}
	totals.TotalKES = totals.SubtotalKES + totals.ShippingKES
	return totals
}
