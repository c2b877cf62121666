package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/zuriwear/zuri-backend/api/responses"
	pkgerrors "github.com/zuriwear/zuri-backend/pkg/errors"
	"github.com/zuriwear/zuri-backend/pkg/logger"
)

const deviceIDHeader = "X-Device-Id"

// RequireDevice extracts the device identity header that scopes the cart,
// wishlist, checkout session, and search history.
func RequireDevice(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			deviceID := strings.TrimSpace(r.Header.Get(deviceIDHeader))
			if deviceID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "X-Device-Id header is required"))
				return
			}
			if _, err := uuid.Parse(deviceID); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "X-Device-Id must be a UUID"))
				return
			}

			ctx := WithDeviceID(r.Context(), deviceID)
			if logg != nil {
				ctx = logg.WithDeviceID(ctx, deviceID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
