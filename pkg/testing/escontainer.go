package testing

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/elasticsearch"
	"github.com/testcontainers/testcontainers-go/wait"
)

const esImage = "docker.elastic.co/elasticsearch/elasticsearch:8.19.0"

type ESContainer struct {
	Container testcontainers.Container
	Address   string
}

// NewESContainer starts a single-node cluster with security off so the
// plain http address works without credentials. The test is skipped when
// no container runtime is reachable.
func NewESContainer(ctx context.Context, tb testing.TB) *ESContainer {
	tb.Helper()

	c, err := elasticsearch.Run(ctx, esImage,
		testcontainers.WithEnv(map[string]string{
			"xpack.security.enabled": "false",
			"ES_JAVA_OPTS":           "-Xms512m -Xmx512m",
		}),
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/_cluster/health").
				WithPort("9200/tcp").
				WithStartupTimeout(90*time.Second),
		),
	)
	if err != nil {
		tb.Skipf("elasticsearch container not available: %v", err)
	}

	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(c); err != nil {
			tb.Logf("failed to terminate elasticsearch container: %v", err)
		}
	})

	endpoint, err := c.PortEndpoint(ctx, "9200/tcp", "http")
	if err != nil {
		tb.Fatalf("failed to get elasticsearch endpoint: %v", err)
	}

	return &ESContainer{Container: c, Address: endpoint}
}
