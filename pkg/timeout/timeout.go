// Package timeout bounds a slow dependency call with a deadline while
// letting the caller distinguish "timed out" from "failed".
package timeout

import (
	"context"
	"time"
)

// Result carries the value or error produced before the deadline.
type Result[T any] struct {
	Value    T
	Err      error
	TimedOut bool
}

// Do runs fn with a child context that expires after d. If fn does not
// return in time, Do reports TimedOut and abandons the call; fn still sees
// the cancelled context and should unwind on its own.
func Do[T any](ctx context.Context, d time.Duration, fn func(ctx context.Context) (T, error)) Result[T] {
	if d <= 0 {
		value, err := fn(ctx)
		return Result[T]{Value: value, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		value, err := fn(ctx)
		done <- outcome{value: value, err: err}
	}()

	select {
	case out := <-done:
		return Result[T]{Value: out.value, Err: out.err}
	case <-ctx.Done():
		var zero T
		return Result[T]{Value: zero, Err: ctx.Err(), TimedOut: true}
	}
}
