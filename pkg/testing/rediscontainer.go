package testing

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisContainer struct {
	Container testcontainers.Container
	Addr      string
}

// NewRedisContainer starts a throwaway Redis server. The test is skipped
// when no container runtime is reachable.
func NewRedisContainer(ctx context.Context, tb testing.TB) *RedisContainer {
	tb.Helper()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForListeningPort("6379/tcp").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		tb.Skipf("redis container not available: %v", err)
	}

	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(c); err != nil {
			tb.Logf("failed to terminate redis container: %v", err)
		}
	})

	addr, err := c.Endpoint(ctx, "")
	if err != nil {
		tb.Fatalf("failed to get redis endpoint: %v", err)
	}

	return &RedisContainer{Container: c, Addr: addr}
}
