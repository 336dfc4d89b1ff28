package in_mem

import (
	"context"
	"sync"
	"testing"

	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
	"github.com/DjordjeVuckovic/crypto-board/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(key, title string) storage.Entry {
	return storage.Entry{
		Key: key,
		Article: domain.Article{
			Source:     domain.SourceNYTimes,
			Title:      title,
			URL:        key,
			HostOrigin: "nytimes",
		},
	}
}

func TestCollection_InsertIfAbsent(t *testing.T) {
	ctx := context.Background()
	c := NewCollection(domain.SourceNYTimes)

	n, err := c.InsertIfAbsent(ctx, []storage.Entry{entry("a", "A"), entry("b", "B"), entry("a", "A again")})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = c.InsertIfAbsent(ctx, []storage.Entry{entry("b", "B"), entry("c", "C")})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	all, err := c.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{all[0].Title, all[1].Title, all[2].Title})
	for _, a := range all {
		assert.NotEqual(t, "", a.ID.String())
		assert.Equal(t, domain.SourceNYTimes, a.Source)
	}
}

func TestCollection_ConcurrentInsertsDoNotDuplicate(t *testing.T) {
	ctx := context.Background()
	c := NewCollection(domain.SourceGuardian)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.InsertIfAbsent(ctx, []storage.Entry{entry("same", "Same")})
		}()
	}
	wg.Wait()

	all, err := c.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCollection_SeedAndPurge(t *testing.T) {
	ctx := context.Background()
	c := NewCollection(domain.SourceGuardian)

	c.Seed("legacy", map[string]string{"title": "old", "url": "legacy"})

	all, err := c.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].ContainField(domain.FieldHostOrigin))

	n, err := c.InsertIfAbsent(ctx, []storage.Entry{entry("legacy", "new")})
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, c.Purge(ctx))
	all, err = c.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_Collection(t *testing.T) {
	s := NewStore()
	for _, src := range domain.Sources {
		c, err := s.Collection(src)
		require.NoError(t, err)
		assert.Equal(t, src, c.Source())
	}

	_, err := s.Collection(domain.Source("unknown"))
	assert.Error(t, err)
}

func TestCollection_Replace(t *testing.T) {
	ctx := context.Background()
	c := NewCollection(domain.SourceNYTimes)
	c.Seed("old", map[string]string{"title": "Old"})

	n, err := c.Replace(ctx, []storage.Entry{entry("a", "A"), entry("", "no key"), entry("a", "A again"), entry("b", "B")})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := c.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "A", all[0].Title)
	assert.Equal(t, "B", all[1].Title)

	// the old key no longer blocks an insert
	n, err = c.InsertIfAbsent(ctx, []storage.Entry{entry("old", "Old again"), entry("a", "A")})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
