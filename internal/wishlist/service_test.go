package wishlist

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/zuriwear/zuri-backend/pkg/errors"
	"github.com/zuriwear/zuri-backend/pkg/redis"
)

const testDevice = "0b6a4c21-9999-4888-b777-666655554444"

func buildWishlistService(t *testing.T) Service {
	t.Helper()
	store, err := NewStore(newFakeBackend(), nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestAddIsIdempotent(t *testing.T) {
	t.Parallel()

	svc := buildWishlistService(t)
	ctx := context.Background()
	productID := uuid.New()

	if _, err := svc.Add(ctx, testDevice, productID); err != nil {
		t.Fatalf("first add: %v", err)
	}
	updated, err := svc.Add(ctx, testDevice, productID)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(updated.ProductIDs) != 1 {
		t.Fatalf("expected single entry after duplicate add, got %d", len(updated.ProductIDs))
	}
}

func TestAddRejectsNilProduct(t *testing.T) {
	t.Parallel()

	svc := buildWishlistService(t)

	_, err := svc.Add(context.Background(), testDevice, uuid.Nil)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	svc := buildWishlistService(t)
	ctx := context.Background()
	first := uuid.New()
	second := uuid.New()

	if _, err := svc.Add(ctx, testDevice, first); err != nil {
		t.Fatalf("add first: %v", err)
	}
	updated, err := svc.Add(ctx, testDevice, second)
	if err != nil {
		t.Fatalf("add second: %v", err)
	}
	if updated.ProductIDs[0] != first || updated.ProductIDs[1] != second {
		t.Fatalf("expected first-add order preserved, got %v", updated.ProductIDs)
	}
}

func TestRemoveAbsentEntryIsNoop(t *testing.T) {
	t.Parallel()

	svc := buildWishlistService(t)
	ctx := context.Background()
	kept := uuid.New()

	if _, err := svc.Add(ctx, testDevice, kept); err != nil {
		t.Fatalf("add: %v", err)
	}
	updated, err := svc.Remove(ctx, testDevice, uuid.New())
	if err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	if len(updated.ProductIDs) != 1 || updated.ProductIDs[0] != kept {
		t.Fatalf("expected list unchanged, got %v", updated.ProductIDs)
	}
}

func TestToggleFlipsMembership(t *testing.T) {
	t.Parallel()

	svc := buildWishlistService(t)
	ctx := context.Background()
	productID := uuid.New()

	updated, onList, err := svc.Toggle(ctx, testDevice, productID)
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !onList || len(updated.ProductIDs) != 1 {
		t.Fatalf("expected product added by toggle, onList=%v list=%v", onList, updated.ProductIDs)
	}

	updated, onList, err = svc.Toggle(ctx, testDevice, productID)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if onList || len(updated.ProductIDs) != 0 {
		t.Fatalf("expected product removed by toggle, onList=%v list=%v", onList, updated.ProductIDs)
	}
}

func TestContains(t *testing.T) {
	t.Parallel()

	svc := buildWishlistService(t)
	ctx := context.Background()
	productID := uuid.New()

	if _, err := svc.Add(ctx, testDevice, productID); err != nil {
		t.Fatalf("add: %v", err)
	}

	onList, err := svc.Contains(ctx, testDevice, productID)
	if err != nil {
		t.Fatalf("contains: %v", err)
	}
	if !onList {
		t.Fatalf("expected product on list")
	}

	onList, err = svc.Contains(ctx, testDevice, uuid.New())
	if err != nil {
		t.Fatalf("contains other: %v", err)
	}
	if onList {
		t.Fatalf("expected other product off list")
	}
}

type fakeBackend struct {
	data map[string]string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{data: map[string]string{}}
}

func (f *fakeBackend) Get(ctx context.Context, key string) (string, error) {
	value, ok := f.data[key]
	if !ok {
		return "", redis.ErrNotFound
	}
	return value, nil
}

func (f *fakeBackend) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return nil
}

func (f *fakeBackend) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeBackend) DeviceKey(deviceID, scope string) string {
	return "device:" + deviceID + ":" + scope
}
