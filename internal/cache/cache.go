package cache

import (
	"context"
	"log/slog"
	"time"
)

// Cache stores JSON-serialisable values under string keys with a TTL.
type Cache interface {
	// Get decodes the value stored under key into dst. A miss or an expired
	// entry returns false with a nil error.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type Type string

const (
	Memory Type = "memory"
	Redis  Type = "redis"
)

// GetOrCompute returns the cached value for key or computes, stores and
// returns a fresh one. Cache failures are logged and treated as misses so a
// broken cache never fails the request.
func GetOrCompute[T any](ctx context.Context, c Cache, key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, error) {
	var cached T
	ok, err := c.Get(ctx, key, &cached)
	if err != nil {
		slog.Warn("cache read failed, recomputing", "key", key, "error", err)
	}
	if ok && err == nil {
		return cached, nil
	}

	fresh, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if err := c.Set(ctx, key, fresh, ttl); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
	}
	return fresh, nil
}
