package promo

import (
	"testing"
	"time"

	"github.com/zuriwear/zuri-backend/pkg/config"
	"github.com/zuriwear/zuri-backend/pkg/enums"
	pkgerrors "github.com/zuriwear/zuri-backend/pkg/errors"
)

func testConfig() config.PromoConfig {
	return config.PromoConfig{
		Code:            "ZURIWKND",
		CartPercent:     15,
		CheckoutPercent: 40,
		MinBannerItems:  2,
	}
}

func buildService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(testConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

// 2026-01-01 is a Thursday, 2026-01-02 a Friday, 2026-01-04 a Sunday.
func TestWindowActiveNairobiBoundaries(t *testing.T) {
	t.Parallel()

	svc := buildService(t)

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"thursday evening nairobi", time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC), false},
		{"friday just after midnight nairobi", time.Date(2026, 1, 1, 21, 30, 0, 0, time.UTC), true},
		{"saturday noon", time.Date(2026, 1, 3, 12, 0, 0, 0, time.UTC), true},
		{"sunday last minute nairobi", time.Date(2026, 1, 4, 20, 59, 0, 0, time.UTC), true},
		{"monday midnight nairobi", time.Date(2026, 1, 4, 21, 0, 0, 0, time.UTC), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := svc.WindowActive(tc.at); got != tc.want {
				t.Fatalf("WindowActive(%s) = %v, want %v", tc.at, got, tc.want)
			}
		})
	}
}

func TestBannerRequiresWindowAndItemCount(t *testing.T) {
	t.Parallel()

	svc := buildService(t)
	friday := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	wednesday := time.Date(2026, 1, 7, 9, 0, 0, 0, time.UTC)

	banner := svc.Banner(friday, 2)
	if !banner.Active {
		t.Fatalf("expected active banner on friday with two items")
	}
	if banner.Code != "ZURIWKND" || banner.Percent != 15 {
		t.Fatalf("unexpected banner contents: %+v", banner)
	}
	if banner.DaysActive != "Friday, Saturday, Sunday" {
		t.Fatalf("unexpected days active: %q", banner.DaysActive)
	}

	// Expiry is Monday midnight Nairobi time.
	expiry, err := time.Parse(time.RFC3339, banner.Expiry)
	if err != nil {
		t.Fatalf("parse expiry: %v", err)
	}
	wantExpiry := time.Date(2026, 1, 4, 21, 0, 0, 0, time.UTC)
	if !expiry.Equal(wantExpiry) {
		t.Fatalf("expected expiry %s, got %s", wantExpiry, expiry)
	}

	if svc.Banner(friday, 1).Active {
		t.Fatalf("expected inactive banner below minimum item count")
	}
	if svc.Banner(wednesday, 5).Active {
		t.Fatalf("expected inactive banner outside the weekend window")
	}
}

func TestRedeemSurfacePercentages(t *testing.T) {
	t.Parallel()

	svc := buildService(t)
	saturday := time.Date(2026, 1, 3, 12, 0, 0, 0, time.UTC)

	percent, err := svc.Redeem(saturday, "ZURIWKND", enums.PromoSurfaceCart)
	if err != nil {
		t.Fatalf("redeem on cart: %v", err)
	}
	if percent != 15 {
		t.Fatalf("expected 15 on cart, got %d", percent)
	}

	percent, err = svc.Redeem(saturday, "ZURIWKND", enums.PromoSurfaceCheckout)
	if err != nil {
		t.Fatalf("redeem on checkout: %v", err)
	}
	if percent != 40 {
		t.Fatalf("expected 40 on checkout, got %d", percent)
	}
}

func TestRedeemTrimsWhitespace(t *testing.T) {
	t.Parallel()

	svc := buildService(t)
	saturday := time.Date(2026, 1, 3, 12, 0, 0, 0, time.UTC)

	if _, err := svc.Redeem(saturday, "  ZURIWKND  ", enums.PromoSurfaceCart); err != nil {
		t.Fatalf("expected padded code to redeem, got %v", err)
	}
}

func TestRedeemRejectsWrongCode(t *testing.T) {
	t.Parallel()

	svc := buildService(t)
	saturday := time.Date(2026, 1, 3, 12, 0, 0, 0, time.UTC)

	_, err := svc.Redeem(saturday, "NOTACODE", enums.PromoSurfaceCart)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRedeemRejectsOutsideWindow(t *testing.T) {
	t.Parallel()

	svc := buildService(t)
	wednesday := time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC)

	_, err := svc.Redeem(wednesday, "ZURIWKND", enums.PromoSurfaceCheckout)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict outside window, got %v", err)
	}
}

func TestRedeemRejectsUnknownSurface(t *testing.T) {
	t.Parallel()

	svc := buildService(t)
	saturday := time.Date(2026, 1, 3, 12, 0, 0, 0, time.UTC)

	_, err := svc.Redeem(saturday, "ZURIWKND", enums.PromoSurface("popup"))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unknown surface, got %v", err)
	}
}

func TestNewServiceRejectsBadConfig(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*config.PromoConfig)
	}{
		{"empty code", func(c *config.PromoConfig) { c.Code = "  " }},
		{"zero cart percent", func(c *config.PromoConfig) { c.CartPercent = 0 }},
		{"oversized checkout percent", func(c *config.PromoConfig) { c.CheckoutPercent = 150 }},
		{"negative banner minimum", func(c *config.PromoConfig) { c.MinBannerItems = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mutate(&cfg)
			if _, err := NewService(cfg); err == nil {
				t.Fatalf("expected config rejection")
			}
		})
	}
}
