package users

import (
	"testing"

	"github.com/google/uuid"

	"github.com/zuriwear/zuri-backend/pkg/db/models"
	"github.com/zuriwear/zuri-backend/pkg/enums"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"  Wanjiku@Example.COM ", "wanjiku@example.com"},
		{"plain@example.com", "plain@example.com"},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := NormalizeEmail(tc.in); got != tc.want {
			t.Fatalf("NormalizeEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFromModelOmitsPasswordHash(t *testing.T) {
	t.Parallel()

	phone := "0712345678"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "wanjiku@example.com",
		PasswordHash: "secret-hash",
		FullName:     "Wanjiku Kamau",
		Phone:        &phone,
		Role:         enums.UserRoleCustomer,
	}

	dto := FromModel(user)
	if dto.ID != user.ID || dto.Email != user.Email || dto.FullName != user.FullName {
		t.Fatalf("unexpected dto %+v", dto)
	}
	if dto.Phone == nil || *dto.Phone != phone {
		t.Fatalf("expected phone carried over")
	}
	if dto.Role != enums.UserRoleCustomer {
		t.Fatalf("expected customer role, got %s", dto.Role)
	}
}

func TestFromModelNil(t *testing.T) {
	t.Parallel()

	dto := FromModel(nil)
	if dto.ID != uuid.Nil || dto.Email != "" {
		t.Fatalf("expected zero dto for nil user, got %+v", dto)
	}
}
