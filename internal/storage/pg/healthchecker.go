package pg

import (
	"context"
	"log/slog"
)

// HealthChecker reports the pool healthy when a connection can be acquired
// and pinged.
type HealthChecker struct {
	pool *ConnectionPool
}

func NewHealthChecker(pool *ConnectionPool) *HealthChecker {
	return &HealthChecker{
		pool: pool,
	}
}

func (hc *HealthChecker) Healthy(ctx context.Context) bool {
	if hc.pool == nil {
		return false
	}

	if err := hc.pool.Ping(ctx); err != nil {
		slog.Warn("PostgreSQL health check failed", "error", err)
		return false
	}

	return true
}

// HealthChecker exposes a checker bound to the store's pool.
func (s *Store) HealthChecker() *HealthChecker {
	return NewHealthChecker(s.pool)
}

func (s *Store) Healthy(ctx context.Context) bool {
	return s.HealthChecker().Healthy(ctx)
}
