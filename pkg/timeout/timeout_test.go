package timeout

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDoReturnsValueBeforeDeadline(t *testing.T) {
	t.Parallel()

	res := Do(context.Background(), time.Second, func(ctx context.Context) (string, error) {
		return "ok", nil
	})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.TimedOut {
		t.Fatalf("expected no timeout")
	}
	if res.Value != "ok" {
		t.Fatalf("expected ok, got %q", res.Value)
	}
}

func TestDoPropagatesError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	res := Do(context.Background(), time.Second, func(ctx context.Context) (int, error) {
		return 0, boom
	})
	if !errors.Is(res.Err, boom) {
		t.Fatalf("expected boom, got %v", res.Err)
	}
	if res.TimedOut {
		t.Fatalf("expected no timeout on plain error")
	}
}

func TestDoTimesOut(t *testing.T) {
	t.Parallel()

	res := Do(context.Background(), 10*time.Millisecond, func(ctx context.Context) (int, error) {
		select {
		case <-time.After(time.Second):
			return 42, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	})
	if !res.TimedOut {
		t.Fatalf("expected timeout")
	}
	if !errors.Is(res.Err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", res.Err)
	}
	if res.Value != 0 {
		t.Fatalf("expected zero value after timeout, got %d", res.Value)
	}
}

func TestDoZeroDurationSkipsDeadline(t *testing.T) {
	t.Parallel()

	res := Do(context.Background(), 0, func(ctx context.Context) (string, error) {
		if _, ok := ctx.Deadline(); ok {
			t.Fatalf("expected no deadline on context")
		}
		return "direct", nil
	})
	if res.Err != nil || res.Value != "direct" {
		t.Fatalf("unexpected result: %+v", res)
	}
}
