package testing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type MongoContainer struct {
	Container testcontainers.Container
	URI       string
}

// NewMongoContainer starts a standalone MongoDB server. The test is skipped
// when no container runtime is reachable.
func NewMongoContainer(ctx context.Context, tb testing.TB) *MongoContainer {
	tb.Helper()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor: wait.ForLog("Waiting for connections").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		tb.Skipf("mongo container not available: %v", err)
	}

	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(c); err != nil {
			tb.Logf("failed to terminate mongo container: %v", err)
		}
	})

	addr, err := c.Endpoint(ctx, "")
	if err != nil {
		tb.Fatalf("failed to get mongo endpoint: %v", err)
	}

	return &MongoContainer{Container: c, URI: fmt.Sprintf("mongodb://%s", addr)}
}
