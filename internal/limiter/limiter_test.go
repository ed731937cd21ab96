package limiter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, max int, window time.Duration) (*Limiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})

	return New(client, "otp", max, window), mr
}

func TestAllow_WithinLimit(t *testing.T) {
	t.Parallel()
	l, _ := newTestLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		if err := l.Allow(context.Background(), "alice@example.com"); err != nil {
			t.Fatalf("Allow #%d failed: %v", i, err)
		}
	}
}

func TestAllow_OverLimit(t *testing.T) {
	t.Parallel()
	l, _ := newTestLimiter(t, 2, time.Minute)

	_ = l.Allow(context.Background(), "alice@example.com")
	_ = l.Allow(context.Background(), "alice@example.com")

	err := l.Allow(context.Background(), "alice@example.com")
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("expected ErrRateLimited, got %v", err)
	}
}

func TestAllow_KeysIndependent(t *testing.T) {
	t.Parallel()
	l, _ := newTestLimiter(t, 1, time.Minute)

	if err := l.Allow(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("Allow failed: %v", err)
	}
	// exhausting one key must not affect another
	if err := l.Allow(context.Background(), "bob@example.com"); err != nil {
		t.Errorf("Allow for separate key failed: %v", err)
	}
}

func TestAllow_WindowExpires(t *testing.T) {
	t.Parallel()
	l, mr := newTestLimiter(t, 1, time.Minute)

	_ = l.Allow(context.Background(), "alice@example.com")
	if err := l.Allow(context.Background(), "alice@example.com"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}

	mr.FastForward(time.Minute + time.Second)

	if err := l.Allow(context.Background(), "alice@example.com"); err != nil {
		t.Errorf("Allow after window expiry failed: %v", err)
	}
}

func TestAllow_BackendDown(t *testing.T) {
	t.Parallel()
	l, mr := newTestLimiter(t, 1, time.Minute)
	mr.Close()

	err := l.Allow(context.Background(), "alice@example.com")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestAllow_NilLimiter(t *testing.T) {
	t.Parallel()

	var l *Limiter
	if err := l.Allow(context.Background(), "anything"); err != nil {
		t.Errorf("nil limiter should allow, got %v", err)
	}
}
