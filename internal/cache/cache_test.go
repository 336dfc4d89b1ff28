package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	pkgtesting "github.com/DjordjeVuckovic/crypto-board/pkg/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemoryCache(WithClock(clock.Now))

	require.NoError(t, c.Set(ctx, "k", payload{Name: "a", Count: 1}, time.Hour))

	var got payload
	ok, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, payload{Name: "a", Count: 1}, got)

	clock.Advance(59 * time.Minute)
	ok, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, ok)

	clock.Advance(time.Minute)
	ok, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache_Miss(t *testing.T) {
	var got payload
	ok, err := NewMemoryCache().Get(context.Background(), "missing", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	in := []string{"a", "b"}
	require.NoError(t, c.Set(ctx, "k", in, time.Hour))
	in[0] = "changed"

	var out []string
	ok, err := c.Get(ctx, "k", &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, out)
}

type failingCache struct{}

func (failingCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	return false, errors.New("down")
}

func (failingCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return errors.New("down")
}

func TestGetOrCompute(t *testing.T) {
	ctx := context.Background()

	t.Run("computes once within ttl", func(t *testing.T) {
		c := NewMemoryCache()
		calls := 0
		compute := func(context.Context) (int, error) {
			calls++
			return 42, nil
		}

		for i := 0; i < 3; i++ {
			v, err := GetOrCompute(ctx, c, "answer", time.Hour, compute)
			require.NoError(t, err)
			assert.Equal(t, 42, v)
		}
		assert.Equal(t, 1, calls)
	})

	t.Run("compute error is returned and not cached", func(t *testing.T) {
		c := NewMemoryCache()
		_, err := GetOrCompute(ctx, c, "k", time.Hour, func(context.Context) (int, error) {
			return 0, errors.New("boom")
		})
		assert.EqualError(t, err, "boom")

		var v int
		ok, _ := c.Get(ctx, "k", &v)
		assert.False(t, ok)
	})

	t.Run("cache failures fall back to compute", func(t *testing.T) {
		v, err := GetOrCompute(ctx, failingCache{}, "k", time.Hour, func(context.Context) (string, error) {
			return "fresh", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "fresh", v)
	})
}

func TestRedisCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}
	ctx := context.Background()
	container := pkgtesting.NewRedisContainer(ctx, t)

	rdb := NewRedisClient(RedisConfig{Addr: container.Addr})
	c := NewRedisCache(rdb, "test:")
	t.Cleanup(func() { _ = c.Close() })

	assert.True(t, c.Healthy(ctx))

	var got payload
	ok, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", payload{Name: "x", Count: 2}, time.Minute))
	ok, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, payload{Name: "x", Count: 2}, got)

	ttl, err := rdb.TTL(ctx, "test:k").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
