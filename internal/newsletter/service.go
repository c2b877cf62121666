package newsletter

import (
	"context"
	"strings"

	"github.com/zuriwear/zuri-backend/internal/users"
	"github.com/zuriwear/zuri-backend/pkg/db/models"
	pkgerrors "github.com/zuriwear/zuri-backend/pkg/errors"
)

// Service records newsletter opt-ins.
type Service interface {
	Subscribe(ctx context.Context, email string) error
}

type service struct {
	repo *Repository
}

// NewService builds a newsletter service with the required repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "newsletter repo is required")
	}
	return &service{repo: repo}, nil
}

// Subscribe stores the address. Duplicates are detected by the database's
// unique-violation code and surfaced as a friendly conflict.
func (s *service) Subscribe(ctx context.Context, email string) error {
	normalized := users.NormalizeEmail(email)
	if normalized == "" || !strings.Contains(normalized, "@") {
		return pkgerrors.New(pkgerrors.CodeValidation, "a valid email address is required")
	}

	err := s.repo.Create(ctx, &models.NewsletterSubscriber{Email: normalized})
	if err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "this email is already subscribed")
		}
		if pkgerrors.IsSchemaMissing(err) {
			return pkgerrors.Wrap(pkgerrors.CodeSchemaMissing, err, "newsletter schema is missing")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store subscription")
	}
	return nil
}
