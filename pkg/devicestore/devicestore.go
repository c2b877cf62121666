// Package devicestore persists small per-device JSON documents (cart,
// wishlist, checkout session) in Redis, keyed by the caller's device ID.
package devicestore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/zuriwear/zuri-backend/pkg/logger"
	"github.com/zuriwear/zuri-backend/pkg/redis"
)

// Backend is the subset of the redis client the store needs.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	DeviceKey(deviceID, scope string) string
}

// Store reads and writes one document shape under a fixed scope.
type Store[T any] struct {
	backend Backend
	scope   string
	ttl     time.Duration
	empty   func() T
	logg    *logger.Logger
}

// New builds a store. empty produces the zero document used when nothing is
// stored yet or the stored blob cannot be decoded.
func New[T any](backend Backend, scope string, ttl time.Duration, empty func() T, logg *logger.Logger) (*Store[T], error) {
	if backend == nil {
		return nil, errors.New("devicestore: backend is required")
	}
	if scope == "" {
		return nil, errors.New("devicestore: scope is required")
	}
	if empty == nil {
		return nil, errors.New("devicestore: empty constructor is required")
	}
	return &Store[T]{backend: backend, scope: scope, ttl: ttl, empty: empty, logg: logg}, nil
}

// Load returns the document for the device. A missing key yields the empty
// document. A corrupt blob is logged, deleted, and also yields the empty
// document so one bad write never bricks the device.
func (s *Store[T]) Load(ctx context.Context, deviceID string) (T, error) {
	if deviceID == "" {
		return s.empty(), errors.New("devicestore: device id is required")
	}

	key := s.backend.DeviceKey(deviceID, s.scope)
	raw, err := s.backend.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return s.empty(), nil
		}
		return s.empty(), err
	}

	var doc T
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		if s.logg != nil {
			warnCtx := s.logg.WithFields(ctx, map[string]any{"scope": s.scope, "error": err.Error()})
			s.logg.Warn(warnCtx, "resetting corrupt device document")
		}
		_ = s.backend.Del(ctx, key)
		return s.empty(), nil
	}
	return doc, nil
}

// Save overwrites the document for the device.
func (s *Store[T]) Save(ctx context.Context, deviceID string, doc T) error {
	if deviceID == "" {
		return errors.New("devicestore: device id is required")
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.backend.Set(ctx, s.backend.DeviceKey(deviceID, s.scope), payload, s.ttl)
}

// Clear removes the document for the device.
func (s *Store[T]) Clear(ctx context.Context, deviceID string) error {
	if deviceID == "" {
		return errors.New("devicestore: device id is required")
	}
	return s.backend.Del(ctx, s.backend.DeviceKey(deviceID, s.scope))
}
