package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/zuriwear/zuri-backend/api/middleware"
	"github.com/zuriwear/zuri-backend/api/responses"
	"github.com/zuriwear/zuri-backend/api/validators"
	"github.com/zuriwear/zuri-backend/internal/cart"
	pkgerrors "github.com/zuriwear/zuri-backend/pkg/errors"
	"github.com/zuriwear/zuri-backend/pkg/logger"
)

type cartAddPayload struct {
	ProductID string `json:"productId" validate:"required"`
	Name      string `json:"name" validate:"required"`
	PriceKES  int    `json:"priceKes" validate:"min=0"`
	Image     string `json:"image,omitempty"`
	Size      string `json:"size" validate:"required"`
	ColorName string `json:"colorName" validate:"required"`
	ColorHex  string `json:"colorHex,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
}

type cartLinePayload struct {
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size" validate:"required"`
	ColorName string `json:"colorName" validate:"required"`
}

type cartQuantityPayload struct {
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size" validate:"required"`
	ColorName string `json:"colorName" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type cartView struct {
	Cart   cart.Cart   `json:"cart"`
	Totals cart.Totals `json:"totals"`
}

// CartGet returns the device's cart with computed totals.
func CartGet(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		loaded, totals, err := svc.Get(ctx, middleware.DeviceIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartView{Cart: loaded, Totals: totals})
	}
}

// CartAddItem merges a line into the cart.
func CartAddItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload cartAddPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		productID, err := uuid.Parse(strings.TrimSpace(payload.ProductID))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		line := cart.Line{
			ProductID: productID,
			Name:      payload.Name,
			PriceKES:  payload.PriceKES,
			Image:     payload.Image,
			Size:      payload.Size,
			ColorName: payload.ColorName,
			ColorHex:  payload.ColorHex,
			Quantity:  payload.Quantity,
		}

		updated, err := svc.AddItem(ctx, middleware.DeviceIDFromContext(ctx), line)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartView{Cart: updated, Totals: svc.ComputeTotals(updated)})
	}
}

// CartRemoveItem drops the matching line from the cart.
func CartRemoveItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload cartLinePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		productID, err := uuid.Parse(strings.TrimSpace(payload.ProductID))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		updated, err := svc.RemoveItem(ctx, middleware.DeviceIDFromContext(ctx), productID, payload.Size, payload.ColorName)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartView{Cart: updated, Totals: svc.ComputeTotals(updated)})
	}
}

// CartUpdateQuantity sets the quantity on a line; zero removes it.
func CartUpdateQuantity(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload cartQuantityPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		productID, err := uuid.Parse(strings.TrimSpace(payload.ProductID))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		updated, err := svc.UpdateQuantity(ctx, middleware.DeviceIDFromContext(ctx), productID, payload.Size, payload.ColorName, payload.Quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartView{Cart: updated, Totals: svc.ComputeTotals(updated)})
	}
}

// CartClear empties the device's cart.
func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		if err := svc.Clear(ctx, middleware.DeviceIDFromContext(ctx)); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"cleared": true})
	}
}

// CartContains reports whether any variant of the product sits in the cart.
func CartContains(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		productID, err := uuid.Parse(strings.TrimSpace(r.URL.Query().Get("productId")))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		inCart, err := svc.IsInCart(ctx, middleware.DeviceIDFromContext(ctx), productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"inCart": inCart})
	}
}
