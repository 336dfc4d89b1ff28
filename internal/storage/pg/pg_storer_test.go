package pg

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"

	"github.com/DjordjeVuckovic/crypto-board/internal/apperr"
	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
	"github.com/DjordjeVuckovic/crypto-board/internal/storage"
	pkgtesting "github.com/DjordjeVuckovic/crypto-board/pkg/testing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

var (
	testCtx   context.Context
	testPool  *ConnectionPool
	testStore *Store
)

func TestMain(m *testing.M) {
	flag.Parse()
	testCtx = context.Background()

	if testing.Short() {
		os.Exit(m.Run())
	}

	pg, err := pkgtesting.NewPGContainer(testCtx, pkgtesting.PGConfig{
		Database: "crypto_board_test",
		Username: "test",
		Password: "test",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "skipping postgres tests: %v\n", err)
		os.Exit(m.Run())
	}

	testPool, err = NewConnectionPool(testCtx, PoolConfig{ConnStr: pg.ConnString})
	if err != nil {
		_ = testcontainers.TerminateContainer(pg.Container)
		panic(err)
	}

	testStore, err = NewStore(testCtx, testPool, storage.DefaultCollectionNames())
	if err != nil {
		testPool.Close()
		_ = testcontainers.TerminateContainer(pg.Container)
		panic(err)
	}

	code := m.Run()

	testPool.Close()
	_ = testcontainers.TerminateContainer(pg.Container)
	os.Exit(code)
}

func requireStore(t *testing.T) {
	t.Helper()
	if testStore == nil {
		t.Skip("postgres container not available")
	}
}

func collection(t *testing.T, src domain.Source) storage.Collection {
	t.Helper()
	c, err := testStore.Collection(src)
	require.NoError(t, err)
	require.NoError(t, c.Purge(testCtx))
	t.Cleanup(func() { _ = c.Purge(testCtx) })
	return c
}

func guardianEntry(i int) storage.Entry {
	a := domain.Article{
		Source:          domain.SourceGuardian,
		Title:           fmt.Sprintf("Article %d", i),
		URL:             fmt.Sprintf("https://www.theguardian.com/%d", i),
		PublicationDate: "2024-01-01T00:00:00Z",
		HostOrigin:      "theguardian",
	}
	return storage.Entry{Key: a.URL, Article: a}
}

func TestCollection_InsertIfAbsent_SkipsExistingKeys(t *testing.T) {
	requireStore(t)
	c := collection(t, domain.SourceGuardian)

	n, err := c.InsertIfAbsent(testCtx, []storage.Entry{guardianEntry(1), guardianEntry(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = c.InsertIfAbsent(testCtx, []storage.Entry{guardianEntry(2), guardianEntry(3), guardianEntry(3)})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	all, err := c.FindAll(testCtx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Article 1", all[0].Title)
	assert.Equal(t, "Article 3", all[2].Title)
	assert.Equal(t, domain.SourceGuardian, all[0].Source)
	assert.True(t, domain.ContainFields(all[0], domain.SourceGuardian.CanonicalFields()))
}

func withID(e storage.Entry, id uuid.UUID) storage.Entry {
	e.Article.ID = id
	return e
}

func TestCollection_InsertIfAbsent_FailedEntryRollsBackBatch(t *testing.T) {
	requireStore(t)
	c := collection(t, domain.SourceGuardian)

	taken := uuid.New()
	_, err := c.InsertIfAbsent(testCtx, []storage.Entry{withID(guardianEntry(1), taken)})
	require.NoError(t, err)

	// a fresh key reusing a stored id violates the id constraint
	_, err = c.InsertIfAbsent(testCtx, []storage.Entry{guardianEntry(2), withID(guardianEntry(3), taken)})
	var pe *apperr.PersistenceError
	require.ErrorAs(t, err, &pe)

	all, err := c.FindAll(testCtx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Article 1", all[0].Title)
}

func TestCollection_Replace(t *testing.T) {
	requireStore(t)
	c := collection(t, domain.SourceGuardian)

	_, err := c.InsertIfAbsent(testCtx, []storage.Entry{guardianEntry(1), guardianEntry(2)})
	require.NoError(t, err)

	n, err := c.Replace(testCtx, []storage.Entry{guardianEntry(2), guardianEntry(3)})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := c.FindAll(testCtx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Article 2", all[0].Title)
	assert.Equal(t, "Article 3", all[1].Title)
}

func TestCollection_Replace_FailureKeepsOldRows(t *testing.T) {
	requireStore(t)
	c := collection(t, domain.SourceGuardian)

	_, err := c.InsertIfAbsent(testCtx, []storage.Entry{guardianEntry(1), guardianEntry(2)})
	require.NoError(t, err)

	dup := uuid.New()
	_, err = c.Replace(testCtx, []storage.Entry{withID(guardianEntry(3), dup), withID(guardianEntry(4), dup)})
	var pe *apperr.PersistenceError
	require.ErrorAs(t, err, &pe)

	all, err := c.FindAll(testCtx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Article 1", all[0].Title)
	assert.Equal(t, "Article 2", all[1].Title)
}

func TestCollection_FindAll_ReportsMissingFields(t *testing.T) {
	requireStore(t)
	c := collection(t, domain.SourceNYTimes)

	_, err := testPool.GetConn().Exec(testCtx,
		`INSERT INTO nytimes_articles (id, dedup_key, doc) VALUES (gen_random_uuid(), 'k', '{"title":"legacy","url":"k","views":12}')`)
	require.NoError(t, err)

	all, err := c.FindAll(testCtx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].ContainField(domain.FieldHostOrigin))
	assert.True(t, all[0].ContainField("views"))
}

func TestCollection_Purge(t *testing.T) {
	requireStore(t)
	c := collection(t, domain.SourceReddit)

	_, err := c.InsertIfAbsent(testCtx, []storage.Entry{{Key: "x", Article: domain.Article{Source: domain.SourceReddit, Title: "x"}}})
	require.NoError(t, err)
	require.NoError(t, c.Purge(testCtx))

	all, err := c.FindAll(testCtx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestHealthChecker(t *testing.T) {
	requireStore(t)
	assert.True(t, testStore.HealthChecker().Healthy(testCtx))
	assert.False(t, NewHealthChecker(nil).Healthy(testCtx))
}
