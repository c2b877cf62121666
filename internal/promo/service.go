package promo

import (
	"fmt"
	"strings"
	"time"

	"github.com/zuriwear/zuri-backend/pkg/config"
	"github.com/zuriwear/zuri-backend/pkg/enums"
	pkgerrors "github.com/zuriwear/zuri-backend/pkg/errors"
)

// Storefront time is Nairobi time. A fixed zone keeps the weekend boundary
// deterministic regardless of the host's tzdata.
var nairobi = time.FixedZone("EAT", 3*60*60)

const inactiveWindowMessage = "promo code is only valid on Friday, Saturday and Sunday"

// BannerStatus describes whether the weekend banner should show and what it
// should advertise.
type BannerStatus struct {
	Active     bool   `json:"active"`
	Code       string `json:"code,omitempty"`
	Percent    int    `json:"percent,omitempty"`
	Expiry     string `json:"expiry,omitempty"`
	DaysActive string `json:"daysActive,omitempty"`
}

// Service exposes the weekend promo rules.
type Service interface {
	WindowActive(t time.Time) bool
	Banner(t time.Time, cartItemCount int) BannerStatus
	Redeem(t time.Time, code string, surface enums.PromoSurface) (int, error)
	Percent(surface enums.PromoSurface) int
	Code() string
}

type service struct {
	code           string
	percentByPlace map[enums.PromoSurface]int
	minBannerItems int
}

// NewService builds the promo service from configuration. The divergent
// cart/checkout percentages live in one table here so no caller hard-codes
// its own number.
func NewService(cfg config.PromoConfig) (Service, error) {
	if strings.TrimSpace(cfg.Code) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "promo code is required")
	}
	if cfg.CartPercent <= 0 || cfg.CartPercent > 100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid cart percent %d", cfg.CartPercent))
	}
	if cfg.CheckoutPercent <= 0 || cfg.CheckoutPercent > 100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid checkout percent %d", cfg.CheckoutPercent))
	}
	if cfg.MinBannerItems < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minimum banner items cannot be negative")
	}
	return &service{
		code: strings.TrimSpace(cfg.Code),
		percentByPlace: map[enums.PromoSurface]int{
			enums.PromoSurfaceCart:     cfg.CartPercent,
			enums.PromoSurfaceCheckout: cfg.CheckoutPercent,
		},
		minBannerItems: cfg.MinBannerItems,
	}, nil
}

// WindowActive reports whether t falls on a promo day in Nairobi time.
func (s *service) WindowActive(t time.Time) bool {
	switch t.In(nairobi).Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}

// Banner returns the storefront banner state for the given cart size.
func (s *service) Banner(t time.Time, cartItemCount int) BannerStatus {
	if !s.WindowActive(t) || cartItemCount < s.minBannerItems {
		return BannerStatus{Active: false}
	}
	return BannerStatus{
		Active:     true,
		Code:       s.code,
		Percent:    s.percentByPlace[enums.PromoSurfaceCart],
		Expiry:     s.windowEnd(t).Format(time.RFC3339),
		DaysActive: "Friday, Saturday, Sunday",
	}
}

// Redeem validates the code against the weekend window and returns the
// discount percent for the surface the code was entered on.
func (s *service) Redeem(t time.Time, code string, surface enums.PromoSurface) (int, error) {
	if !surface.IsValid() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid promo surface %q", surface))
	}
	if strings.TrimSpace(code) != s.code {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid promo code")
	}
	if !s.WindowActive(t) {
		return 0, pkgerrors.New(pkgerrors.CodeStateConflict, inactiveWindowMessage)
	}
	return s.percentByPlace[surface], nil
}

// Percent returns the configured discount for a surface without gating.
func (s *service) Percent(surface enums.PromoSurface) int {
	return s.percentByPlace[surface]
}

// Code returns the literal promo code.
func (s *service) Code() string {
	return s.code
}

// windowEnd computes the end of the current promo window (Sunday midnight
// Nairobi time).
func (s *service) windowEnd(t time.Time) time.Time {
	local := t.In(nairobi)
	daysUntilMonday := (int(time.Monday) - int(local.Weekday()) + 7) % 7
	if daysUntilMonday == 0 {
		daysUntilMonday = 7
	}
	endDay := local.AddDate(0, 0, daysUntilMonday)
	return time.Date(endDay.Year(), endDay.Month(), endDay.Day(), 0, 0, 0, 0, nairobi)
}
