package es

import (
	"context"
	"fmt"
	"testing"

	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
	"github.com/DjordjeVuckovic/crypto-board/internal/storage"
	pkgtesting "github.com/DjordjeVuckovic/crypto-board/pkg/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentID_Deterministic(t *testing.T) {
	a := DocumentID(domain.SourceGuardian, "https://example.com/a")
	b := DocumentID(domain.SourceGuardian, "https://example.com/a")
	c := DocumentID(domain.SourceNYTimes, "https://example.com/a")
	d := DocumentID(domain.SourceGuardian, "https://example.com/b")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping elasticsearch integration test in short mode")
	}

	ctx := context.Background()
	container := pkgtesting.NewESContainer(ctx, t)

	s, err := NewStore(ctx, ClientConfig{
		Addresses:   []string{container.Address},
		IndexPrefix: "test_",
	}, storage.DefaultCollectionNames())
	require.NoError(t, err)
	return s
}

func redditEntry(i int) storage.Entry {
	a := domain.Article{
		Source:          domain.SourceReddit,
		Title:           fmt.Sprintf("Post %d", i),
		URL:             fmt.Sprintf("https://example.com/%d", i),
		Link:            fmt.Sprintf("https://www.reddit.com/r/btc/%d", i),
		PublicationDate: "2024-01-01T00:00:00Z",
		HostOrigin:      "example",
		CommunityTag:    "btc",
	}
	return storage.Entry{Key: a.URL, Article: a}
}

func TestStore_Integration(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c, err := s.Collection(domain.SourceReddit)
	require.NoError(t, err)
	assert.True(t, s.Healthy(ctx))

	t.Run("insert if absent", func(t *testing.T) {
		require.NoError(t, c.Purge(ctx))

		n, err := c.InsertIfAbsent(ctx, []storage.Entry{redditEntry(1), redditEntry(2)})
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = c.InsertIfAbsent(ctx, []storage.Entry{redditEntry(2), redditEntry(3)})
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		all, err := c.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "Post 1", all[0].Title)
		assert.Equal(t, "btc", all[0].CommunityTag)
		assert.Equal(t, DocumentID(domain.SourceReddit, "https://example.com/1"), all[0].ID)
		assert.True(t, domain.ContainFields(all[0], domain.SourceReddit.CanonicalFields()))
	})

	t.Run("find all pages past one request", func(t *testing.T) {
		require.NoError(t, c.Purge(ctx))

		entries := make([]storage.Entry, 0, 2*pageSize+5)
		for i := 0; i < 2*pageSize+5; i++ {
			entries = append(entries, redditEntry(i))
		}
		n, err := c.InsertIfAbsent(ctx, entries)
		require.NoError(t, err)
		require.Equal(t, len(entries), n)

		all, err := c.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, len(entries))
		assert.Equal(t, "Post 0", all[0].Title)
		assert.Equal(t, fmt.Sprintf("Post %d", len(entries)-1), all[len(all)-1].Title)
	})

	t.Run("replace swaps the collection", func(t *testing.T) {
		require.NoError(t, c.Purge(ctx))
		_, err := c.InsertIfAbsent(ctx, []storage.Entry{redditEntry(1), redditEntry(2)})
		require.NoError(t, err)

		for round := 0; round < 2; round++ {
			n, err := c.Replace(ctx, []storage.Entry{redditEntry(2), redditEntry(3), redditEntry(3)})
			require.NoError(t, err)
			assert.Equal(t, 2, n)

			all, err := c.FindAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, "Post 2", all[0].Title)
			assert.Equal(t, "Post 3", all[1].Title)
		}

		// writes keep going through the collection name
		n, err := c.InsertIfAbsent(ctx, []storage.Entry{redditEntry(3), redditEntry(4)})
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("purge", func(t *testing.T) {
		require.NoError(t, c.Purge(ctx))

		all, err := c.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}
