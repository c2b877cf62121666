package checkout

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zuriwear/zuri-backend/internal/cart"
	"github.com/zuriwear/zuri-backend/internal/orders"
	"github.com/zuriwear/zuri-backend/internal/promo"
	"github.com/zuriwear/zuri-backend/internal/users"
	"github.com/zuriwear/zuri-backend/pkg/config"
	"github.com/zuriwear/zuri-backend/pkg/db/models"
	"github.com/zuriwear/zuri-backend/pkg/devicestore"
	"github.com/zuriwear/zuri-backend/pkg/enums"
	pkgerrors "github.com/zuriwear/zuri-backend/pkg/errors"
	"github.com/zuriwear/zuri-backend/pkg/logger"
	"github.com/zuriwear/zuri-backend/pkg/pricing"
	"github.com/zuriwear/zuri-backend/pkg/security"
)

// Scope is the Redis document scope the checkout session persists under.
const Scope = "checkout"

const tempPasswordLength = 16

// SubmitRequest finalizes the order from the payment step.
type SubmitRequest struct {
	PaymentMethod enums.PaymentMethod
	// CreateAccount asks for a best-effort account signup using the
	// shipping email. Password is optional; a temporary one is generated
	// when absent.
	CreateAccount bool
	Password      string
	// UserID is set when the caller is already authenticated.
	UserID *uuid.UUID
}

// SubmitResult reports a completed checkout.
type SubmitResult struct {
	OrderNumber string        `json:"orderNumber"`
	Order       *models.Order `json:"order"`
	Session     Session       `json:"session"`
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	Store    *devicestore.Store[Session]
	Cart     cart.Service
	Orders   orders.Service
	Promo    promo.Service
	Users    *users.Repository
	Config   config.CheckoutConfig
	Password config.PasswordConfig
	Logger   *logger.Logger
}

// Service drives the linear checkout flow.
type Service interface {
	GetSession(ctx context.Context, deviceID string) (SessionView, error)
	SetShipping(ctx context.Context, deviceID string, details ShippingDetails, zone enums.DeliveryZone) (SessionView, error)
	ApplyPromo(ctx context.Context, deviceID, code string) (SessionView, error)
	Submit(ctx context.Context, deviceID string, req SubmitRequest) (*SubmitResult, error)
	Reset(ctx context.Context, deviceID string) error
}

type service struct {
	store       *devicestore.Store[Session]
	cart        cart.Service
	orders      orders.Service
	promo       promo.Service
	users       *users.Repository
	cfg         config.CheckoutConfig
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
}

// NewService builds a checkout service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout store is required")
	}
	if params.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart service is required")
	}
	if params.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders service is required")
	}
	if params.Promo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "promo service is required")
	}
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "users repo is required")
	}
	return &service{
		store:       params.Store,
		cart:        params.Cart,
		orders:      params.Orders,
		promo:       params.Promo,
		users:       params.Users,
		cfg:         params.Config,
		passwordCfg: params.Password,
		logg:        params.Logger,
	}, nil
}

// NewStore builds the Redis-backed document store the service persists to.
func NewStore(backend devicestore.Backend, logg *logger.Logger) (*devicestore.Store[Session], error) {
	return devicestore.New(backend, Scope, 0, emptySession, logg)
}

// GetSession loads the session (creating an empty shipping-step one) plus
// the current price breakdown.
func (s *service) GetSession(ctx context.Context, deviceID string) (SessionView, error) {
	loaded, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return SessionView{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load checkout session")
	}
	if loaded.Step == "" {
		loaded = emptySession()
	}
	return s.view(ctx, deviceID, loaded)
}

// SetShipping validates the form, stores it, and advances to the payment
// step. Validation is trim-non-empty per field; no format rules apply.
func (s *service) SetShipping(ctx context.Context, deviceID string, details ShippingDetails, zone enums.DeliveryZone) (SessionView, error) {
	if fieldErrors := validateShipping(details); len(fieldErrors) > 0 {
		return SessionView{}, pkgerrors.New(pkgerrors.CodeValidation, "shipping details are incomplete").
			WithDetails(fieldErrors)
	}
	if _, ok := ZonePriceKES(zone); !ok {
		return SessionView{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid delivery zone %q", zone))
	}

	loaded, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return SessionView{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load checkout session")
	}
	if loaded.Step == enums.CheckoutStepConfirmation {
		return SessionView{}, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout already completed; start a new session")
	}

	loaded.Shipping = trimShipping(details)
	loaded.DeliveryZone = zone
	loaded.Step = enums.CheckoutStepPayment

	if err := s.store.Save(ctx, deviceID, loaded); err != nil {
		return SessionView{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save checkout session")
	}
	return s.view(ctx, deviceID, loaded)
}

// ApplyPromo validates the weekend code on the checkout surface and marks
// the session discounted.
func (s *service) ApplyPromo(ctx context.Context, deviceID, code string) (SessionView, error) {
	loaded, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return SessionView{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load checkout session")
	}
	if loaded.Step == enums.CheckoutStepConfirmation {
		return SessionView{}, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout already completed")
	}

	if _, err := s.promo.Redeem(time.Now(), code, enums.PromoSurfaceCheckout); err != nil {
		return SessionView{}, err
	}

	loaded.PromoApplied = true
	loaded.PromoCode = strings.TrimSpace(code)

	if err := s.store.Save(ctx, deviceID, loaded); err != nil {
		return SessionView{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save checkout session")
	}
	return s.view(ctx, deviceID, loaded)
}

// Submit finalizes checkout: writes the order atomically, optionally
// creates an account best-effort, clears the cart, and moves the session to
// confirmation. On failure the session stays at the payment step.
func (s *service) Submit(ctx context.Context, deviceID string, req SubmitRequest) (*SubmitResult, error) {
	loaded, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load checkout session")
	}
	if loaded.Step != enums.CheckoutStepPayment {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("checkout is at the %s step; shipping must be completed first", loaded.Step))
	}
	if !req.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", req.PaymentMethod))
	}

	currentCart, _, err := s.cart.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if len(currentCart.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	totals := s.computeTotals(currentCart, loaded)

	userID := req.UserID
	if userID == nil && req.CreateAccount {
		userID = s.maybeCreateAccount(ctx, loaded.Shipping, req.Password)
	}

	order := s.buildOrder(loaded, req.PaymentMethod, totals, userID)
	items := buildItems(currentCart)

	created, err := s.orders.Create(ctx, order, items)
	if err != nil {
		return nil, err
	}

	if err := s.cart.Clear(ctx, deviceID); err != nil {
		// The order is committed; a stale cart is recoverable.
		if s.logg != nil {
			s.logg.Warn(ctx, "order committed but cart clear failed")
		}
	}

	loaded.PaymentMethod = req.PaymentMethod
	loaded.Step = enums.CheckoutStepConfirmation
	loaded.OrderNumber = created.OrderNumber
	if err := s.store.Save(ctx, deviceID, loaded); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save checkout session")
	}

	return &SubmitResult{
		OrderNumber: created.OrderNumber,
		Order:       created,
		Session:     loaded,
	}, nil
}

// Reset wipes the session so a new checkout can begin.
func (s *service) Reset(ctx context.Context, deviceID string) error {
	if err := s.store.Clear(ctx, deviceID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear checkout session")
	}
	return nil
}

func (s *service) view(ctx context.Context, deviceID string, session Session) (SessionView, error) {
	currentCart, _, err := s.cart.Get(ctx, deviceID)
	if err != nil {
		return SessionView{}, err
	}
	return SessionView{
		Session: session,
		Totals:  s.computeTotals(currentCart, session),
	}, nil
}

// computeTotals prices the payment step: subtotal minus the checkout promo
// discount plus the flat zone delivery price.
func (s *service) computeTotals(currentCart cart.Cart, session Session) Totals {
	totals := Totals{}
	for _, item := range currentCart.Items {
		totals.SubtotalKES += item.PriceKES * item.Quantity
	}
	if session.PromoApplied {
		totals.DiscountKES = pricing.DiscountKES(totals.SubtotalKES, s.promo.Percent(enums.PromoSurfaceCheckout))
	}
	if price, ok := ZonePriceKES(session.DeliveryZone); ok {
		totals.DeliveryKES = price
	}
	totals.TotalKES = totals.SubtotalKES - totals.DiscountKES + totals.DeliveryKES
	return totals
}

func (s *service) buildOrder(session Session, method enums.PaymentMethod, totals Totals, userID *uuid.UUID) *models.Order {
	paymentStatus := enums.PaymentStatusPending
	if method == enums.PaymentMethodCashOnDelivery {
		paymentStatus = enums.PaymentStatusCOD
	}

	order := &models.Order{
		OrderNumber:       s.newOrderNumber(),
		UserID:            userID,
		CustomerFirstName: session.Shipping.FirstName,
		CustomerLastName:  session.Shipping.LastName,
		CustomerPhone:     session.Shipping.Phone,
		CustomerEmail:     session.Shipping.Email,
		County:            session.Shipping.County,
		Town:              session.Shipping.Town,
		Address:           session.Shipping.Address,
		PaymentMethod:     method,
		PaymentStatus:     paymentStatus,
		DeliveryZone:      session.DeliveryZone,
		DeliveryPriceKES:  totals.DeliveryKES,
		DeliveryStatus:    enums.DeliveryStatusPending,
		SubtotalKES:       totals.SubtotalKES,
		DiscountKES:       totals.DiscountKES,
		TotalKES:          totals.TotalKES,
		Status:            enums.OrderStatusPending,
	}
	if instructions := strings.TrimSpace(session.Shipping.Instructions); instructions != "" {
		order.Instructions = &instructions
	}
	if session.PromoApplied {
		code := session.PromoCode
		order.PromoCode = &code
	}
	return order
}

// newOrderNumber derives a human-quotable reference from the submission
// instant: prefix plus base36 unix milliseconds, uppercased.
func (s *service) newOrderNumber() string {
	millis := time.Now().UnixMilli()
	return s.cfg.OrderNumberPrefix + strings.ToUpper(strconv.FormatInt(millis, 36))
}

// maybeCreateAccount signs the shopper up using the shipping details. Any
// failure is logged and swallowed; checkout never blocks on signup.
func (s *service) maybeCreateAccount(ctx context.Context, shipping ShippingDetails, password string) *uuid.UUID {
	email := users.NormalizeEmail(shipping.Email)
	if email == "" {
		return nil
	}

	if password == "" {
		generated, err := security.GenerateTempPassword(tempPasswordLength)
		if err != nil {
			s.warnAccountSkipped(ctx, err)
			return nil
		}
		password = generated
	}

	hash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		s.warnAccountSkipped(ctx, err)
		return nil
	}

	fullName := strings.TrimSpace(shipping.FirstName + " " + shipping.LastName)
	phone := shipping.Phone
	county := shipping.County
	town := shipping.Town
	address := shipping.Address
	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Phone:        &phone,
		County:       &county,
		Town:         &town,
		Address:      &address,
		Role:         enums.UserRoleCustomer,
		IsActive:     true,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		s.warnAccountSkipped(ctx, err)
		return nil
	}
	return &created.ID
}

func (s *service) warnAccountSkipped(ctx context.Context, err error) {
	if s.logg == nil {
		return
	}
	warnCtx := s.logg.WithField(ctx, "error", err.Error())
	s.logg.Warn(warnCtx, "inline account creation skipped")
}

func validateShipping(details ShippingDetails) map[string]string {
	fieldErrors := map[string]string{}
	require := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			fieldErrors[field] = field + " is required"
		}
	}
	require("firstName", details.FirstName)
	require("lastName", details.LastName)
	require("phone", details.Phone)
	require("county", details.County)
	require("town", details.Town)
	require("address", details.Address)
	return fieldErrors
}

func trimShipping(details ShippingDetails) ShippingDetails {
	return ShippingDetails{
		FirstName:    strings.TrimSpace(details.FirstName),
		LastName:     strings.TrimSpace(details.LastName),
		Phone:        strings.TrimSpace(details.Phone),
		Email:        strings.TrimSpace(details.Email),
		County:       strings.TrimSpace(details.County),
		Town:         strings.TrimSpace(details.Town),
		Address:      strings.TrimSpace(details.Address),
		Instructions: strings.TrimSpace(details.Instructions),
	}
}

func buildItems(currentCart cart.Cart) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(currentCart.Items))
	for _, line := range currentCart.Items {
		item := models.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Size:      line.Size,
			ColorName: line.ColorName,
			PriceKES:  line.PriceKES,
			Quantity:  line.Quantity,
		}
		if line.Image != "" {
			image := line.Image
			item.Image = &image
		}
		if line.ColorHex != "" {
			hex := line.ColorHex
			item.ColorHex = &hex
		}
		items = append(items, item)
	}
	return items
}
