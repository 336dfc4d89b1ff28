package in_mem

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
	"github.com/DjordjeVuckovic/crypto-board/internal/storage"
	"github.com/google/uuid"
)

type record struct {
	id  uuid.UUID
	doc map[string]string
}

// Collection keeps documents in insertion order behind a mutex, so the
// insert-if-absent check and write happen under one lock.
type Collection struct {
	source domain.Source

	storageLock sync.RWMutex
	records     []record
	keys        map[string]struct{}
}

func NewCollection(source domain.Source) *Collection {
	return &Collection{
		source: source,
		keys:   make(map[string]struct{}),
	}
}

func (c *Collection) Source() domain.Source {
	return c.source
}

func (c *Collection) FindAll(ctx context.Context) ([]domain.StoredArticle, error) {
	c.storageLock.RLock()
	defer c.storageLock.RUnlock()

	out := make([]domain.StoredArticle, 0, len(c.records))
	for _, r := range c.records {
		out = append(out, domain.NewStoredArticle(r.id, c.source, r.doc))
	}
	return out, nil
}

func (c *Collection) InsertIfAbsent(ctx context.Context, entries []storage.Entry) (int, error) {
	c.storageLock.Lock()
	defer c.storageLock.Unlock()

	inserted := 0
	for _, e := range entries {
		if _, ok := c.keys[e.Key]; ok {
			continue
		}
		id := e.Article.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		c.keys[e.Key] = struct{}{}
		c.records = append(c.records, record{id: id, doc: e.Article.Document()})
		inserted++
	}

	slog.Debug("Saved articles to in-memory storage", "source", c.source, "inserted", inserted, "candidates", len(entries))
	return inserted, nil
}

// Replace builds the new contents aside and swaps them in under the write
// lock, so readers see either the old or the new collection.
func (c *Collection) Replace(ctx context.Context, entries []storage.Entry) (int, error) {
	unique := storage.UniqueEntries(entries)
	records := make([]record, 0, len(unique))
	keys := make(map[string]struct{}, len(unique))
	for _, e := range unique {
		id := e.Article.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		keys[e.Key] = struct{}{}
		records = append(records, record{id: id, doc: e.Article.Document()})
	}

	c.storageLock.Lock()
	c.records = records
	c.keys = keys
	c.storageLock.Unlock()

	slog.Debug("Replaced in-memory collection", "source", c.source, "stored", len(records))
	return len(records), nil
}

func (c *Collection) Purge(ctx context.Context) error {
	c.storageLock.Lock()
	defer c.storageLock.Unlock()

	c.records = nil
	c.keys = make(map[string]struct{})
	return nil
}

// Seed stores raw documents as-is, bypassing canonical rendering. It lets
// callers load records written under an older document shape.
func (c *Collection) Seed(key string, doc map[string]string) uuid.UUID {
	c.storageLock.Lock()
	defer c.storageLock.Unlock()

	id := uuid.New()
	c.keys[key] = struct{}{}
	c.records = append(c.records, record{id: id, doc: doc})
	return id
}

type Store struct {
	collections map[domain.Source]*Collection
}

func NewStore() *Store {
	s := &Store{collections: make(map[domain.Source]*Collection, len(domain.Sources))}
	for _, src := range domain.Sources {
		s.collections[src] = NewCollection(src)
	}
	return s
}

func (s *Store) Collection(source domain.Source) (storage.Collection, error) {
	return s.MemCollection(source)
}

func (s *Store) MemCollection(source domain.Source) (*Collection, error) {
	c, ok := s.collections[source]
	if !ok {
		return nil, fmt.Errorf(string(storage.ErrUnknownCollection), source)
	}
	return c, nil
}

func (s *Store) Healthy(ctx context.Context) bool {
	return true
}

func (s *Store) Close() {}
