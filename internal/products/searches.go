package products

import (
	"context"
	"strings"

	"github.com/zuriwear/zuri-backend/pkg/devicestore"
	pkgerrors "github.com/zuriwear/zuri-backend/pkg/errors"
	"github.com/zuriwear/zuri-backend/pkg/logger"
)

// SearchScope is the Redis document scope recent searches persist under.
const SearchScope = "searches"

// maxRecentSearches caps the per-device history.
const maxRecentSearches = 5

// RecentSearches tracks the last few search terms per device, most recent
// first with duplicates collapsed.
type RecentSearches struct {
	store *devicestore.Store[[]string]
}

// NewRecentSearches builds the Redis-backed history.
func NewRecentSearches(backend devicestore.Backend, logg *logger.Logger) (*RecentSearches, error) {
	store, err := devicestore.New(backend, SearchScope, 0, func() []string { return []string{} }, logg)
	if err != nil {
		return nil, err
	}
	return &RecentSearches{store: store}, nil
}

// Record moves the term to the front of the history, trimming to the cap.
func (r *RecentSearches) Record(ctx context.Context, deviceID, term string) error {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return nil
	}

	history, err := r.store.Load(ctx, deviceID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recent searches")
	}

	updated := []string{trimmed}
	for _, previous := range history {
		if strings.EqualFold(previous, trimmed) {
			continue
		}
		updated = append(updated, previous)
		if len(updated) == maxRecentSearches {
			break
		}
	}

	if err := r.store.Save(ctx, deviceID, updated); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save recent searches")
	}
	return nil
}

// List returns the device's history, most recent first.
func (r *RecentSearches) List(ctx context.Context, deviceID string) ([]string, error) {
	history, err := r.store.Load(ctx, deviceID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recent searches")
	}
	return history, nil
}

// Clear wipes the device's history.
func (r *RecentSearches) Clear(ctx context.Context, deviceID string) error {
	if err := r.store.Clear(ctx, deviceID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear recent searches")
	}
	return nil
}
