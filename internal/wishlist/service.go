package wishlist

import (
	"context"

	"github.com/google/uuid"

	"github.com/zuriwear/zuri-backend/pkg/devicestore"
	pkgerrors "github.com/zuriwear/zuri-backend/pkg/errors"
	"github.com/zuriwear/zuri-backend/pkg/logger"
)

// Scope is the Redis document scope the wishlist persists under.
const Scope = "wishlist"

// Wishlist is the per-device document. Entries are product IDs with set
// semantics; order reflects first add.
type Wishlist struct {
	ProductIDs []uuid.UUID `json:"productIds"`
}

// Service exposes wishlist reads and mutations scoped to a device.
type Service interface {
	Get(ctx context.Context, deviceID string) (Wishlist, error)
	Add(ctx context.Context, deviceID string, productID uuid.UUID) (Wishlist, error)
	Remove(ctx context.Context, deviceID string, productID uuid.UUID) (Wishlist, error)
	Toggle(ctx context.Context, deviceID string, productID uuid.UUID) (Wishlist, bool, error)
	Contains(ctx context.Context, deviceID string, productID uuid.UUID) (bool, error)
}

type service struct {
	store *devicestore.Store[Wishlist]
}

// NewService builds the wishlist service on top of the shared device store.
func NewService(store *devicestore.Store[Wishlist]) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist store is required")
	}
	return &service{store: store}, nil
}

// NewStore builds the Redis-backed document store the service persists to.
func NewStore(backend devicestore.Backend, logg *logger.Logger) (*devicestore.Store[Wishlist], error) {
	return devicestore.New(backend, Scope, 0, func() Wishlist { return Wishlist{ProductIDs: []uuid.UUID{}} }, logg)
}

// Get loads the wishlist for the device.
func (s *service) Get(ctx context.Context, deviceID string) (Wishlist, error) {
	loaded, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return Wishlist{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist")
	}
	return loaded, nil
}

// Add inserts the product if absent; adding twice is a no-op.
func (s *service) Add(ctx context.Context, deviceID string, productID uuid.UUID) (Wishlist, error) {
	if productID == uuid.Nil {
		return Wishlist{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	loaded, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return Wishlist{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist")
	}
	if contains(loaded, productID) {
		return loaded, nil
	}
	loaded.ProductIDs = append(loaded.ProductIDs, productID)
	if err := s.store.Save(ctx, deviceID, loaded); err != nil {
		return Wishlist{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save wishlist")
	}
	return loaded, nil
}

// Remove drops the product; removing an absent entry is a no-op.
func (s *service) Remove(ctx context.Context, deviceID string, productID uuid.UUID) (Wishlist, error) {
	loaded, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return Wishlist{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist")
	}
	kept := loaded.ProductIDs[:0]
	for _, id := range loaded.ProductIDs {
		if id != productID {
			kept = append(kept, id)
		}
	}
	loaded.ProductIDs = kept
	if err := s.store.Save(ctx, deviceID, loaded); err != nil {
		return Wishlist{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save wishlist")
	}
	return loaded, nil
}

// Toggle flips membership and reports the resulting state; true means the
// product is now on the list.
func (s *service) Toggle(ctx context.Context, deviceID string, productID uuid.UUID) (Wishlist, bool, error) {
	if productID == uuid.Nil {
		return Wishlist{}, false, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	loaded, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return Wishlist{}, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist")
	}
	if contains(loaded, productID) {
		updated, err := s.Remove(ctx, deviceID, productID)
		return updated, false, err
	}
	updated, err := s.Add(ctx, deviceID, productID)
	return updated, true, err
}

// Contains reports whether the product is on the list.
func (s *service) Contains(ctx context.Context, deviceID string, productID uuid.UUID) (bool, error) {
	loaded, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist")
	}
	return contains(loaded, productID), nil
}

func contains(w Wishlist, productID uuid.UUID) bool {
	for _, id := range w.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}
