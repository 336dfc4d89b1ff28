package pg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/crypto-board/internal/apperr"
	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
	"github.com/DjordjeVuckovic/crypto-board/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTableTmpl = `
CREATE TABLE IF NOT EXISTS %[1]s (
    seq         BIGSERIAL PRIMARY KEY,
    id          UUID        NOT NULL UNIQUE,
    dedup_key   TEXT        NOT NULL UNIQUE,
    doc         JSONB       NOT NULL,
    inserted_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Collection stores one source's articles as JSONB documents. The unique
// dedup_key column makes insert-if-absent a single conditional write.
type Collection struct {
	db     *pgxpool.Pool
	source domain.Source
	table  string
}

func newCollection(db *pgxpool.Pool, source domain.Source, name string) *Collection {
	return &Collection{
		db:     db,
		source: source,
		table:  pgx.Identifier{name}.Sanitize(),
	}
}

func (c *Collection) Source() domain.Source {
	return c.source
}

func (c *Collection) ensureTable(ctx context.Context) error {
	if _, err := c.db.Exec(ctx, fmt.Sprintf(createTableTmpl, c.table)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", c.table, err)
	}
	return nil
}

func (c *Collection) FindAll(ctx context.Context) ([]domain.StoredArticle, error) {
	rows, err := c.db.Query(ctx, fmt.Sprintf("SELECT id, doc FROM %s ORDER BY seq", c.table))
	if err != nil {
		return nil, apperr.NewPersistence("find all", err)
	}
	defer rows.Close()

	var out []domain.StoredArticle
	for rows.Next() {
		a, err := mapToStoredArticle(rows, c.source)
		if err != nil {
			return nil, apperr.NewPersistence("find all", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.NewPersistence("find all", err)
	}
	return out, nil
}

// InsertIfAbsent runs the whole batch in one transaction, so a failing
// entry leaves none of the batch behind.
func (c *Collection) InsertIfAbsent(ctx context.Context, entries []storage.Entry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	inserted := 0
	err := pgx.BeginFunc(ctx, c.db, func(tx pgx.Tx) error {
		var err error
		inserted, err = c.insertBatch(ctx, tx, entries)
		return err
	})
	if err != nil {
		return 0, apperr.NewPersistence("insert", err)
	}

	slog.Debug("Batch insert completed", "table", c.table, "inserted", inserted, "candidates", len(entries))
	return inserted, nil
}

// Replace truncates and refills the table inside one transaction. TRUNCATE
// is transactional in PostgreSQL, so a failed refill rolls the old rows back.
func (c *Collection) Replace(ctx context.Context, entries []storage.Entry) (int, error) {
	inserted := 0
	err := pgx.BeginFunc(ctx, c.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s", c.table)); err != nil {
			return fmt.Errorf("truncate: %w", err)
		}
		if len(entries) == 0 {
			return nil
		}
		var err error
		inserted, err = c.insertBatch(ctx, tx, entries)
		return err
	})
	if err != nil {
		return 0, apperr.NewPersistence("replace", err)
	}

	slog.Debug("Table replaced", "table", c.table, "stored", inserted, "candidates", len(entries))
	return inserted, nil
}

func (c *Collection) insertBatch(ctx context.Context, tx pgx.Tx, entries []storage.Entry) (int, error) {
	cmd := fmt.Sprintf(`
        INSERT INTO %s (id, dedup_key, doc)
        VALUES ($1, $2, $3)
        ON CONFLICT (dedup_key) DO NOTHING;
    `, c.table)

	batch := &pgx.Batch{}
	for _, e := range entries {
		id := e.Article.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		batch.Queue(cmd, id, e.Key, e.Article.Document())
	}

	br := tx.SendBatch(ctx, batch)
	inserted := 0
	for i := range entries {
		tag, err := br.Exec()
		if err != nil {
			_ = br.Close()
			return 0, fmt.Errorf("entry %d: %w", i, err)
		}
		inserted += int(tag.RowsAffected())
	}
	if err := br.Close(); err != nil {
		return 0, err
	}
	return inserted, nil
}

func (c *Collection) Purge(ctx context.Context) error {
	if _, err := c.db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s", c.table)); err != nil {
		return apperr.NewPersistence("purge", err)
	}
	return nil
}

type Store struct {
	pool        *ConnectionPool
	collections map[domain.Source]*Collection
}

// NewStore creates one table-backed collection per configured source and
// ensures the tables exist.
func NewStore(ctx context.Context, pool *ConnectionPool, names storage.CollectionNames) (*Store, error) {
	s := &Store{
		pool:        pool,
		collections: make(map[domain.Source]*Collection, len(names)),
	}
	for src, name := range names {
		c := newCollection(pool.GetConn(), src, name)
		if err := c.ensureTable(ctx); err != nil {
			return nil, apperr.NewPersistence("ensure table", err)
		}
		s.collections[src] = c
	}
	return s, nil
}

func (s *Store) Collection(source domain.Source) (storage.Collection, error) {
	c, ok := s.collections[source]
	if !ok {
		return nil, fmt.Errorf(string(storage.ErrUnknownCollection), source)
	}
	return c, nil
}

func (s *Store) Close() {
	s.pool.Close()
}
