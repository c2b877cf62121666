package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/zuriwear/zuri-backend/pkg/config"
	pkgerrors "github.com/zuriwear/zuri-backend/pkg/errors"
	"github.com/zuriwear/zuri-backend/pkg/redis"
)

const testDevice = "7e9c9a44-1111-4222-8333-abcdefabcdef"

func testCheckoutConfig() config.CheckoutConfig {
	return config.CheckoutConfig{
		FreeShippingThresholdKES: 5000,
		FlatShippingKES:          300,
		OrderNumberPrefix:        "ZW-",
	}
}

func buildCartService(t *testing.T) (Service, *fakeBackend) {
	t.Helper()
	backend := newFakeBackend()
	store, err := NewStore(backend, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	svc, err := NewService(store, testCheckoutConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, backend
}

func testLine(priceKES, quantity int) Line {
	return Line{
		ProductID: uuid.MustParse("11111111-2222-4333-8444-555555555555"),
		Name:      "Ankara Shift Dress",
		PriceKES:  priceKES,
		Size:      "M",
		ColorName: "Sunset Orange",
		Quantity:  quantity,
	}
}

func TestAddItemMergesMatchingVariant(t *testing.T) {
	t.Parallel()

	svc, _ := buildCartService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, testDevice, testLine(3000, 1)); err != nil {
		t.Fatalf("first add: %v", err)
	}
	updated, err := svc.AddItem(ctx, testDevice, testLine(3000, 2))
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if len(updated.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(updated.Items))
	}
	if updated.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", updated.Items[0].Quantity)
	}
}

func TestAddItemKeepsDistinctVariantsApart(t *testing.T) {
	t.Parallel()

	svc, _ := buildCartService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, testDevice, testLine(3000, 1)); err != nil {
		t.Fatalf("add medium: %v", err)
	}
	other := testLine(3000, 1)
	other.Size = "L"
	updated, err := svc.AddItem(ctx, testDevice, other)
	if err != nil {
		t.Fatalf("add large: %v", err)
	}

	if len(updated.Items) != 2 {
		t.Fatalf("expected two lines for distinct sizes, got %d", len(updated.Items))
	}
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	t.Parallel()

	svc, _ := buildCartService(t)

	updated, err := svc.AddItem(context.Background(), testDevice, testLine(3000, 0))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if updated.Items[0].Quantity != 1 {
		t.Fatalf("expected defaulted quantity 1, got %d", updated.Items[0].Quantity)
	}
}

func TestAddItemValidation(t *testing.T) {
	t.Parallel()

	svc, _ := buildCartService(t)
	ctx := context.Background()

	missingProduct := testLine(3000, 1)
	missingProduct.ProductID = uuid.Nil
	if _, err := svc.AddItem(ctx, testDevice, missingProduct); pkgerrors.As(err) == nil {
		t.Fatalf("expected validation error for missing product id")
	}

	missingSize := testLine(3000, 1)
	missingSize.Size = ""
	if _, err := svc.AddItem(ctx, testDevice, missingSize); pkgerrors.As(err) == nil {
		t.Fatalf("expected validation error for missing size")
	}

	negative := testLine(-1, 1)
	if _, err := svc.AddItem(ctx, testDevice, negative); pkgerrors.As(err) == nil {
		t.Fatalf("expected validation error for negative price")
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	t.Parallel()

	svc, _ := buildCartService(t)
	ctx := context.Background()
	line := testLine(3000, 2)

	if _, err := svc.AddItem(ctx, testDevice, line); err != nil {
		t.Fatalf("add: %v", err)
	}
	updated, err := svc.UpdateQuantity(ctx, testDevice, line.ProductID, line.Size, line.ColorName, 0)
	if err != nil {
		t.Fatalf("update to zero: %v", err)
	}
	if len(updated.Items) != 0 {
		t.Fatalf("expected empty cart after zero quantity, got %d lines", len(updated.Items))
	}
}

func TestUpdateQuantityMissingLine(t *testing.T) {
	t.Parallel()

	svc, _ := buildCartService(t)

	_, err := svc.UpdateQuantity(context.Background(), testDevice, uuid.New(), "M", "Sunset Orange", 2)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	t.Parallel()

	svc, _ := buildCartService(t)
	ctx := context.Background()
	line := testLine(3000, 1)

	if _, err := svc.AddItem(ctx, testDevice, line); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.RemoveItem(ctx, testDevice, line.ProductID, line.Size, line.ColorName); err != nil {
		t.Fatalf("first remove: %v", err)
	}
	updated, err := svc.RemoveItem(ctx, testDevice, line.ProductID, line.Size, line.ColorName)
	if err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if len(updated.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(updated.Items))
	}
}

func TestComputeTotalsShippingThreshold(t *testing.T) {
	t.Parallel()

	svc, _ := buildCartService(t)

	cases := []struct {
		name         string
		items        []Line
		wantCount    int
		wantSubtotal int
		wantShipping int
		wantTotal    int
	}{
		{
			name:         "empty cart is below threshold",
			items:        nil,
			wantCount:    0,
			wantSubtotal: 0,
			wantShipping: 300,
			wantTotal:    300,
		},
		{
			name:         "below threshold pays flat rate",
			items:        []Line{testLine(1000, 2)},
			wantCount:    2,
			wantSubtotal: 2000,
			wantShipping: 300,
			wantTotal:    2300,
		},
		{
			name:         "at threshold ships free",
			items:        []Line{testLine(2500, 2)},
			wantCount:    2,
			wantSubtotal: 5000,
			wantShipping: 0,
			wantTotal:    5000,
		},
		{
			name:         "above threshold ships free",
			items:        []Line{testLine(3000, 2)},
			wantCount:    2,
			wantSubtotal: 6000,
			wantShipping: 0,
			wantTotal:    6000,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			totals := svc.ComputeTotals(Cart{Items: tc.items})
			if totals.ItemCount != tc.wantCount {
				t.Fatalf("item count = %d, want %d", totals.ItemCount, tc.wantCount)
			}
			if totals.SubtotalKES != tc.wantSubtotal {
				t.Fatalf("subtotal = %d, want %d", totals.SubtotalKES, tc.wantSubtotal)
			}
			if totals.ShippingKES != tc.wantShipping {
				t.Fatalf("shipping = %d, want %d", totals.ShippingKES, tc.wantShipping)
			}
			if totals.TotalKES != tc.wantTotal {
				t.Fatalf("total = %d, want %d", totals.TotalKES, tc.wantTotal)
			}
		})
	}
}

func TestIsInCartAnyVariant(t *testing.T) {
	t.Parallel()

	svc, _ := buildCartService(t)
	ctx := context.Background()
	line := testLine(3000, 1)

	if _, err := svc.AddItem(ctx, testDevice, line); err != nil {
		t.Fatalf("add: %v", err)
	}

	in, err := svc.IsInCart(ctx, testDevice, line.ProductID)
	if err != nil {
		t.Fatalf("contains: %v", err)
	}
	if !in {
		t.Fatalf("expected product in cart")
	}

	in, err = svc.IsInCart(ctx, testDevice, uuid.New())
	if err != nil {
		t.Fatalf("contains other: %v", err)
	}
	if in {
		t.Fatalf("expected other product not in cart")
	}
}

func TestClearEmptiesCart(t *testing.T) {
	t.Parallel()

	svc, _ := buildCartService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, testDevice, testLine(3000, 1)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Clear(ctx, testDevice); err != nil {
		t.Fatalf("clear: %v", err)
	}

	loaded, _, err := svc.Get(ctx, testDevice)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(loaded.Items) != 0 {
		t.Fatalf("expected empty cart after clear, got %d lines", len(loaded.Items))
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
