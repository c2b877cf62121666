package controllers

import (
	"net/http"
	"time"

	"github.com/zuriwear/zuri-backend/api/middleware"
	"github.com/zuriwear/zuri-backend/api/responses"
	"github.com/zuriwear/zuri-backend/api/validators"
	"github.com/zuriwear/zuri-backend/internal/cart"
	"github.com/zuriwear/zuri-backend/internal/promo"
	"github.com/zuriwear/zuri-backend/pkg/enums"
	pkgerrors "github.com/zuriwear/zuri-backend/pkg/errors"
	"github.com/zuriwear/zuri-backend/pkg/logger"
)

type promoRedeemPayload struct {
	Code    string `json:"code" validate:"required"`
	Surface string `json:"surface" validate:"required"`
}

// PromoBanner reports whether the weekend banner should show for this
// device's cart.
func PromoBanner(svc promo.Service, cartSvc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil || cartSvc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "promo service unavailable"))
			return
		}

		_, totals, err := cartSvc.Get(ctx, middleware.DeviceIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, svc.Banner(time.Now(), totals.ItemCount))
	}
}

// PromoRedeem validates the weekend code for the given surface and returns
// the discount percent it grants there.
func PromoRedeem(svc promo.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "promo service unavailable"))
			return
		}

		var payload promoRedeemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		surface, err := enums.ParsePromoSurface(payload.Surface)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid promo surface"))
			return
		}

		percent, err := svc.Redeem(time.Now(), payload.Code, surface)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"code": svc.Code(), "percent": percent, "surface": surface})
	}
}
