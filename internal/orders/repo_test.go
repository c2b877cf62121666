package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/zuriwear/zuri-backend/pkg/db/models"
	"github.com/zuriwear/zuri-backend/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  order_number TEXT NOT NULL UNIQUE,
  user_id TEXT,
  customer_first_name TEXT NOT NULL,
  customer_last_name TEXT NOT NULL,
  customer_phone TEXT NOT NULL,
  customer_email TEXT NOT NULL,
  county TEXT NOT NULL,
  town TEXT NOT NULL,
  address TEXT NOT NULL,
  instructions TEXT,
  payment_method TEXT NOT NULL,
  payment_status TEXT NOT NULL DEFAULT 'pending',
  delivery_zone TEXT NOT NULL,
  delivery_price_kes INTEGER NOT NULL,
  delivery_status TEXT NOT NULL DEFAULT 'pending',
  subtotal_kes INTEGER NOT NULL,
  discount_kes INTEGER NOT NULL DEFAULT 0,
  promo_code TEXT,
  total_kes INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  image TEXT,
  size TEXT NOT NULL,
  color_name TEXT NOT NULL,
  color_hex TEXT,
  price_kes INTEGER NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	return db
}

func seedOrder(t *testing.T, repo Repository, userID *uuid.UUID, number, phone string, created time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:                uuid.New(),
		OrderNumber:       number,
		UserID:            userID,
		CustomerFirstName: "Wanjiku",
		CustomerLastName:  "Kamau",
		CustomerPhone:     phone,
		CustomerEmail:     "wanjiku@example.com",
		County:            "Nairobi",
		Town:              "Westlands",
		Address:           "14 Parklands Rd",
		PaymentMethod:     enums.PaymentMethodMpesa,
		PaymentStatus:     enums.PaymentStatusPending,
		DeliveryZone:      enums.DeliveryZoneCounty,
		DeliveryPriceKES:  350,
		DeliveryStatus:    enums.DeliveryStatusPending,
		SubtotalKES:       6000,
		TotalKES:          6350,
		Status:            enums.OrderStatusPending,
		CreatedAt:         created,
		UpdatedAt:         created,
	}
	saved, err := repo.CreateOrder(context.Background(), order)
	require.NoError(t, err)

	item := models.OrderItem{
		ID:        uuid.New(),
		OrderID:   saved.ID,
		ProductID: uuid.New(),
		Name:      "Ankara Shift Dress",
		Size:      "M",
		ColorName: "Sunset Orange",
		PriceKES:  3000,
		Quantity:  2,
		CreatedAt: created,
	}
	require.NoError(t, repo.CreateOrderItems(context.Background(), []models.OrderItem{item}))
	return saved
}

func uniqueOrderNumber(prefix string) string {
	return fmt.Sprintf("ZW-%s-%s", prefix, uuid.NewString()[:8])
}

func TestRepositoryFindByNumberLoadsItems(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	number := uniqueOrderNumber("find")
	seeded := seedOrder(t, repo, nil, number, "0712345678", time.Now().UTC())

	found, err := repo.FindByNumber(context.Background(), number)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Ankara Shift Dress", found.Items[0].Name)
	assert.Equal(t, 2, found.Items[0].Quantity)
}

func TestRepositoryFindByNumberMissing(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByNumber(context.Background(), uniqueOrderNumber("missing"))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListByUserNewestFirst(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New()
	now := time.Now().UTC()
	older := seedOrder(t, repo, &userID, uniqueOrderNumber("old"), "0700000001", now.Add(-time.Hour))
	newer := seedOrder(t, repo, &userID, uniqueOrderNumber("new"), "0700000001", now)
	seedOrder(t, repo, nil, uniqueOrderNumber("guest"), "0700000002", now)

	list, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestRepositoryListByPhoneMatchesFragment(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	seeded := seedOrder(t, repo, nil, uniqueOrderNumber("phone"), "0733987654", time.Now().UTC())

	list, err := repo.ListByPhone(context.Background(), "33987")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, seeded.ID, list[0].ID)

	none, err := repo.ListByPhone(context.Background(), "99999999")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepositoryStatusUpdates(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	seeded := seedOrder(t, repo, nil, uniqueOrderNumber("status"), "0720111222", time.Now().UTC())

	require.NoError(t, repo.UpdateStatus(context.Background(), seeded.ID, enums.OrderStatusProcessing))
	require.NoError(t, repo.UpdatePaymentStatus(context.Background(), seeded.ID, enums.PaymentStatusPaid))
	require.NoError(t, repo.UpdateDeliveryStatus(context.Background(), seeded.ID, enums.DeliveryStatusShipped))

	found, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusProcessing, found.Status)
	assert.Equal(t, enums.PaymentStatusPaid, found.PaymentStatus)
	assert.Equal(t, enums.DeliveryStatusShipped, found.DeliveryStatus)
}
