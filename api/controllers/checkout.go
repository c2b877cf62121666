package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/zuriwear/zuri-backend/api/middleware"
	"github.com/zuriwear/zuri-backend/api/responses"
	"github.com/zuriwear/zuri-backend/api/validators"
	"github.com/zuriwear/zuri-backend/internal/checkout"
	"github.com/zuriwear/zuri-backend/pkg/enums"
	pkgerrors "github.com/zuriwear/zuri-backend/pkg/errors"
	"github.com/zuriwear/zuri-backend/pkg/logger"
)

type checkoutShippingPayload struct {
	Shipping     checkout.ShippingDetails `json:"shipping"`
	DeliveryZone string                   `json:"deliveryZone" validate:"required"`
}

type checkoutPromoPayload struct {
	Code string `json:"code" validate:"required"`
}

type checkoutSubmitPayload struct {
	PaymentMethod string `json:"paymentMethod" validate:"required"`
	CreateAccount bool   `json:"createAccount,omitempty"`
	Password      string `json:"password,omitempty"`
}

// CheckoutSession returns the device's session, creating an empty
// shipping-step one on first read.
func CheckoutSession(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		view, err := svc.GetSession(ctx, middleware.DeviceIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CheckoutShipping stores the shipping form and advances to the payment step.
func CheckoutShipping(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutShippingPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		zone, err := enums.ParseDeliveryZone(payload.DeliveryZone)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery zone"))
			return
		}

		view, err := svc.SetShipping(ctx, middleware.DeviceIDFromContext(ctx), payload.Shipping, zone)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CheckoutPromo applies the weekend code on the checkout surface.
func CheckoutPromo(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutPromoPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.ApplyPromo(ctx, middleware.DeviceIDFromContext(ctx), payload.Code)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CheckoutSubmit finalizes the order from the payment step. A logged-in
// caller's account is attached; guests may opt into inline signup.
func CheckoutSubmit(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutSubmitPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		req := checkout.SubmitRequest{
			PaymentMethod: method,
			CreateAccount: payload.CreateAccount,
			Password:      payload.Password,
		}
		if raw := middleware.UserIDFromContext(ctx); raw != "" {
			if userID, err := uuid.Parse(raw); err == nil {
				req.UserID = &userID
			}
		}

		result, err := svc.Submit(ctx, middleware.DeviceIDFromContext(ctx), req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// CheckoutReset wipes the session so a new checkout can begin.
func CheckoutReset(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		if err := svc.Reset(ctx, middleware.DeviceIDFromContext(ctx)); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"reset": true})
	}
}
