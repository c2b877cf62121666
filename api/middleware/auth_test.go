package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/zuriwear/zuri-backend/pkg/auth"
	"github.com/zuriwear/zuri-backend/pkg/config"
	"github.com/zuriwear/zuri-backend/pkg/enums"
)

type stubSessionVerifier struct {
	ok    bool
	err   error
	delay time.Duration
}

func (s stubSessionVerifier) HasSession(ctx context.Context, accessID string) (bool, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	return s.ok, s.err
}

func testJWT() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "zuriwear", ExpirationMinutes: 60}
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, userID uuid.UUID, role enums.UserRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: userID,
		Role:   role,
		JTI:    "test-access-id",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthRejectsMissingToken(t *testing.T) {
	t.Parallel()

	handler := Auth(testJWT(), time.Second, stubSessionVerifier{ok: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	t.Parallel()

	handler := Auth(testJWT(), time.Second, stubSessionVerifier{ok: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer nonsense")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthSeedsContextFromClaims(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	token := mintTestToken(t, testJWT(), userID, enums.UserRoleCustomer)

	var captured struct {
		user string
		role string
	}
	handler := Auth(testJWT(), time.Second, stubSessionVerifier{ok: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.user = UserIDFromContext(r.Context())
		captured.role = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.user != userID.String() {
		t.Fatalf("expected user id in context, got %q", captured.user)
	}
	if captured.role != string(enums.UserRoleCustomer) {
		t.Fatalf("expected role in context, got %q", captured.role)
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	t.Parallel()

	token := mintTestToken(t, testJWT(), uuid.New(), enums.UserRoleCustomer)
	handler := Auth(testJWT(), time.Second, stubSessionVerifier{ok: false}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked session, got %d", rec.Code)
	}
}

func TestAuthTimesOutSlowSessionCheck(t *testing.T) {
	t.Parallel()

	token := mintTestToken(t, testJWT(), uuid.New(), enums.UserRoleCustomer)
	verifier := stubSessionVerifier{ok: true, delay: time.Second}
	handler := Auth(testJWT(), 10*time.Millisecond, verifier, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected 504 for slow session check, got %d", rec.Code)
	}
}

func TestAuthMapsSessionStoreFailure(t *testing.T) {
	t.Parallel()

	token := mintTestToken(t, testJWT(), uuid.New(), enums.UserRoleCustomer)
	verifier := stubSessionVerifier{err: errors.New("redis down")}
	handler := Auth(testJWT(), time.Second, verifier, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 for session store failure, got %d", rec.Code)
	}
}

func TestOptionalAuthPassesThroughAnonymously(t *testing.T) {
	t.Parallel()

	handler := OptionalAuth(testJWT(), time.Second, stubSessionVerifier{ok: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserIDFromContext(r.Context()) != "" {
			t.Errorf("expected no user in context")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous request, got %d", rec.Code)
	}
}

func TestOptionalAuthValidatesPresentedToken(t *testing.T) {
	t.Parallel()

	handler := OptionalAuth(testJWT(), time.Second, stubSessionVerifier{ok: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected bad token to be rejected even on optional routes, got %d", rec.Code)
	}
}
