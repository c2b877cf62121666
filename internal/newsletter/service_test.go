package newsletter

import (
	"context"
	"testing"

	pkgerrors "github.com/zuriwear/zuri-backend/pkg/errors"
)

func TestSubscribeRejectsInvalidEmail(t *testing.T) {
	t.Parallel()

	svc, err := NewService(NewRepository(nil))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	cases := []string{"", "   ", "not-an-email"}
	for _, email := range cases {
		err := svc.Subscribe(context.Background(), email)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("Subscribe(%q): expected validation error, got %v", email, err)
		}
	}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	t.Parallel()

	if _, err := NewService(nil); err == nil {
		t.Fatalf("expected error for nil repo")
	}
}
