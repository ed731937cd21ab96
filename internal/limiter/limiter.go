// Package limiter provides a fixed-window rate limiter backed by redis,
// used to throttle one-time-passcode dispatch per address and per client IP.
package limiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrRateLimited = errors.New("rate limited")

	// ErrUnavailable signals a limiter backend failure, distinct from the
	// limit itself being hit; callers decide whether to fail open.
	ErrUnavailable = errors.New("rate limiter unavailable")
)

// Limiter enforces a maximum number of events per key within a fixed window.
// A nil Limiter allows everything, so deployments without redis simply pass
// nil and run unthrottled.
type Limiter struct {
	redis  *redis.Client
	prefix string
	max    int64
	window time.Duration
}

func New(client *redis.Client, prefix string, max int, window time.Duration) *Limiter {
	return &Limiter{
		redis:  client,
		prefix: prefix,
		max:    int64(max),
		window: window,
	}
}

// Allow records one event against key and reports whether it is within the
// window limit.
func (l *Limiter) Allow(ctx context.Context, key string) error {
	if l == nil {
		return nil
	}

	windowKey := l.prefix + ":" + key

	count, err := l.redis.Incr(ctx, windowKey).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// First event in the window owns setting the expiry.
	if count == 1 {
		if err := l.redis.Expire(ctx, windowKey, l.window).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	if count > l.max {
		return ErrRateLimited
	}

	return nil
}
