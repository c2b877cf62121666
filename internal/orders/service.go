package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zuriwear/zuri-backend/pkg/db"
	"github.com/zuriwear/zuri-backend/pkg/db/models"
	"github.com/zuriwear/zuri-backend/pkg/enums"
	pkgerrors "github.com/zuriwear/zuri-backend/pkg/errors"
)

// statusTransitions encodes the allowed order lifecycle moves. Cancellation
// is only possible before the parcel leaves the warehouse.
var statusTransitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPending:    {enums.OrderStatusProcessing, enums.OrderStatusCancelled},
	enums.OrderStatusProcessing: {enums.OrderStatusShipped, enums.OrderStatusCancelled},
	enums.OrderStatusShipped:    {enums.OrderStatusDelivered},
}

const defaultAdminPageSize = 25

// AdminPage is one page of the back-office order list.
type AdminPage struct {
	Orders []models.Order `json:"orders"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// ServiceParams groups dependencies for the orders service.
type ServiceParams struct {
	Repo   Repository
	Client *db.Client
}

// Service exposes order persistence and lifecycle rules.
type Service interface {
	Create(ctx context.Context, order *models.Order, items []models.OrderItem) (*models.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	ListByPhone(ctx context.Context, phoneFragment string) ([]models.Order, error)
	ListAll(ctx context.Context, limit, offset int) (AdminPage, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, next enums.OrderStatus) (*models.Order, error)
	Cancel(ctx context.Context, orderNumber string, userID *uuid.UUID) (*models.Order, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enums.PaymentStatus) error
	UpdateDeliveryStatus(ctx context.Context, id uuid.UUID, status enums.DeliveryStatus) error
}

type service struct {
	repo   Repository
	client *db.Client
}

// NewService builds an orders service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders repo is required")
	}
	if params.Client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	return &service{repo: params.Repo, client: params.Client}, nil
}

// Create writes the header and item snapshots in one transaction so an
// order is never observable without its lines.
func (s *service) Create(ctx context.Context, order *models.Order, items []models.OrderItem) (*models.Order, error) {
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order is required")
	}
	if strings.TrimSpace(order.OrderNumber) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number is required")
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		created, err := txRepo.CreateOrder(ctx, order)
		if err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = created.ID
		}
		return txRepo.CreateOrderItems(ctx, items)
	})
	if err != nil {
		return nil, classifyWriteError(err)
	}

	order.Items = items
	return order, nil
}

// GetByNumber loads one order with its items.
func (s *service) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	trimmed := strings.TrimSpace(orderNumber)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number is required")
	}
	order, err := s.repo.FindByNumber(ctx, trimmed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return nil, classifyWriteError(err)
	}
	return order, nil
}

// ListByUser returns the user's orders, newest first.
func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	results, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, classifyWriteError(err)
	}
	return results, nil
}

// ListByPhone matches orders whose customer phone contains the fragment.
func (s *service) ListByPhone(ctx context.Context, phoneFragment string) ([]models.Order, error) {
	trimmed := strings.TrimSpace(phoneFragment)
	if len(trimmed) < 4 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone lookup requires at least 4 digits")
	}
	results, err := s.repo.ListByPhone(ctx, trimmed)
	if err != nil {
		return nil, classifyWriteError(err)
	}
	return results, nil
}

// ListAll returns a paginated back-office view.
func (s *service) ListAll(ctx context.Context, limit, offset int) (AdminPage, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultAdminPageSize
	}
	if offset < 0 {
		offset = 0
	}
	results, total, err := s.repo.ListAll(ctx, limit, offset)
	if err != nil {
		return AdminPage{}, classifyWriteError(err)
	}
	return AdminPage{Orders: results, Total: total, Limit: limit, Offset: offset}, nil
}

// UpdateStatus applies a lifecycle transition after checking the guard.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, next enums.OrderStatus) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", next))
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return nil, classifyWriteError(err)
	}

	if !transitionAllowed(order.Status, next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, next))
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, classifyWriteError(err)
	}
	order.Status = next
	return order, nil
}

// Cancel moves the order to cancelled when the caller owns it and the guard
// allows it. Guests cancel via order number lookup with no user check.
func (s *service) Cancel(ctx context.Context, orderNumber string, userID *uuid.UUID) (*models.Order, error) {
	order, err := s.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if userID != nil && order.UserID != nil && *order.UserID != *userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another account")
	}
	return s.UpdateStatus(ctx, order.ID, enums.OrderStatusCancelled)
}

// UpdatePaymentStatus records a settlement change; no gateway is consulted.
func (s *service) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enums.PaymentStatus) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment status %q", status))
	}
	if err := s.repo.UpdatePaymentStatus(ctx, id, status); err != nil {
		return classifyWriteError(err)
	}
	return nil
}

// UpdateDeliveryStatus records a shipping-leg change.
func (s *service) UpdateDeliveryStatus(ctx context.Context, id uuid.UUID, status enums.DeliveryStatus) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid delivery status %q", status))
	}
	if err := s.repo.UpdateDeliveryStatus(ctx, id, status); err != nil {
		return classifyWriteError(err)
	}
	return nil
}

func transitionAllowed(from, to enums.OrderStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// classifyWriteError maps structured Postgres failures onto coded errors so
// an unmigrated database reads as "not set up" rather than a generic 500.
func classifyWriteError(err error) error {
	switch {
	case pkgerrors.IsSchemaMissing(err):
		return pkgerrors.Wrap(pkgerrors.CodeSchemaMissing, err, "orders schema is missing")
	case pkgerrors.IsUniqueViolation(err):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order number already exists")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "orders storage failure")
	}
}
