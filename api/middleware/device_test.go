package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireDeviceRejectsMissingHeader(t *testing.T) {
	t.Parallel()

	handler := RequireDevice(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without device header, got %d", rec.Code)
	}
}

func TestRequireDeviceRejectsNonUUID(t *testing.T) {
	t.Parallel()

	handler := RequireDevice(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Device-Id", "not-a-uuid")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed device id, got %d", rec.Code)
	}
}

func TestRequireDeviceSeedsContext(t *testing.T) {
	t.Parallel()

	const deviceID = "7e9c9a44-1111-4222-8333-abcdefabcdef"

	var captured string
	handler := RequireDevice(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = DeviceIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Device-Id", "  "+deviceID+"  ")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured != deviceID {
		t.Fatalf("expected trimmed device id in context, got %q", captured)
	}
}
