package es

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/DjordjeVuckovic/crypto-board/internal/apperr"
	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
	"github.com/DjordjeVuckovic/crypto-board/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/indices/updatealiases"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/google/uuid"
)

// pageSize is the number of hits FindAll requests per round trip.
const pageSize = 1000

// Collection stores one source in its own index. Documents are written with
// the create action under an id derived from the dedup key, which makes
// insert-if-absent atomic on the server.
type Collection struct {
	client    *elasticsearch.TypedClient
	source    domain.Source
	indexName string
}

func (c *Collection) Source() domain.Source {
	return c.source
}

func (c *Collection) EnsureIndex(ctx context.Context) error {
	exists, err := c.client.Indices.Exists(c.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if exists {
		slog.Info("Index already exists", "index", c.indexName)
		return nil
	}

	if err := c.createIndex(ctx, c.indexName); err != nil {
		return err
	}
	slog.Info("Index created successfully", "index", c.indexName)
	return nil
}

func (c *Collection) createIndex(ctx context.Context, name string) error {
	createRes, err := c.client.Indices.Create(name).
		Mappings(buildMapping()).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index %s: %w", name, err)
	}
	if !createRes.Acknowledged {
		return fmt.Errorf("creation of index %s was not acknowledged", name)
	}
	return nil
}

func (c *Collection) dropIndex(ctx context.Context, name string) {
	if _, err := c.client.Indices.Delete(name).Do(ctx); err != nil {
		slog.Warn("Failed to drop index", "index", name, "error", err)
	}
}

// FindAll pages through the index with search_after on seq until a short
// page comes back.
func (c *Collection) FindAll(ctx context.Context) ([]domain.StoredArticle, error) {
	asc := sortorder.Asc
	size := pageSize

	var (
		out   []domain.StoredArticle
		after []types.FieldValue
	)
	for {
		res, err := c.client.Search().
			Index(c.indexName).
			Request(&search.Request{
				Query: &types.Query{MatchAll: &types.MatchAllQuery{}},
				Size:  &size,
				Sort: []types.SortCombinations{
					types.SortOptions{SortOptions: map[string]types.FieldSort{"seq": {Order: &asc}}},
				},
				SearchAfter: after,
			}).
			Do(ctx)
		if err != nil {
			return nil, apperr.NewPersistence("find all", err)
		}

		for _, hit := range res.Hits.Hits {
			a, err := c.decodeHit(hit)
			if err != nil {
				return nil, apperr.NewPersistence("find all", err)
			}
			out = append(out, a)
		}

		if len(res.Hits.Hits) < size {
			return out, nil
		}
		after = res.Hits.Hits[len(res.Hits.Hits)-1].Sort
	}
}

func (c *Collection) decodeHit(hit types.Hit) (domain.StoredArticle, error) {
	var sd storedDocument
	if err := json.Unmarshal(hit.Source_, &sd); err != nil {
		return domain.StoredArticle{}, fmt.Errorf("failed to decode hit: %w", err)
	}

	id, err := uuid.Parse(sd.ID)
	if err != nil && hit.Id_ != nil {
		id, err = uuid.Parse(*hit.Id_)
	}
	if err != nil {
		return domain.StoredArticle{}, fmt.Errorf("invalid document id: %w", err)
	}

	doc := map[string]string{}
	if len(sd.Doc) > 0 {
		if doc, err = storage.DecodeDocument(sd.Doc); err != nil {
			return domain.StoredArticle{}, fmt.Errorf("failed to decode document %s: %w", id, err)
		}
	}
	return domain.NewStoredArticle(id, c.source, doc), nil
}

func (c *Collection) InsertIfAbsent(ctx context.Context, entries []storage.Entry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	return c.bulkCreate(ctx, c.indexName, entries)
}

// Replace fills a fresh index and then, in one alias update, points the
// collection name at it and deletes the previous index. A failed fill drops
// the fresh index and leaves the live one untouched.
func (c *Collection) Replace(ctx context.Context, entries []storage.Entry) (int, error) {
	unique := storage.UniqueEntries(entries)
	next := fmt.Sprintf("%s-%d", c.indexName, time.Now().UnixNano())

	if err := c.createIndex(ctx, next); err != nil {
		return 0, apperr.NewPersistence("replace", err)
	}

	inserted := 0
	if len(unique) > 0 {
		var err error
		if inserted, err = c.bulkCreate(ctx, next, unique); err != nil {
			c.dropIndex(ctx, next)
			return 0, err
		}
	}

	current, err := c.client.Indices.Get(c.indexName).Do(ctx)
	if err != nil {
		c.dropIndex(ctx, next)
		return 0, apperr.NewPersistence("replace", fmt.Errorf("failed to resolve %s: %w", c.indexName, err))
	}

	alias := c.indexName
	actions := []types.IndicesAction{{Add: &types.AddAction{Index: &next, Alias: &alias}}}
	for name := range current {
		old := name
		actions = append(actions, types.IndicesAction{RemoveIndex: &types.RemoveIndexAction{Index: &old}})
	}

	if _, err := c.client.Indices.UpdateAliases().
		Request(&updatealiases.Request{Actions: actions}).
		Do(ctx); err != nil {
		c.dropIndex(ctx, next)
		return 0, apperr.NewPersistence("replace", fmt.Errorf("failed to swap %s: %w", c.indexName, err))
	}

	slog.Debug("Index replaced", "alias", c.indexName, "index", next, "stored", inserted)
	return inserted, nil
}

func (c *Collection) bulkCreate(ctx context.Context, index string, entries []storage.Entry) (int, error) {
	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:      index,
		Client:     c.client,
		NumWorkers: 1,
		Refresh:    "wait_for",
	})
	if err != nil {
		return 0, apperr.NewPersistence("insert", fmt.Errorf("failed to create bulk indexer: %w", err))
	}

	var inserted, conflicts, failed atomic.Int64
	base := time.Now().UnixNano()

	for i, e := range entries {
		id := DocumentID(c.source, e.Key)
		body, err := json.Marshal(Document{
			ID:       id.String(),
			DedupKey: e.Key,
			Seq:      base + int64(i),
			Doc:      e.Article.Document(),
		})
		if err != nil {
			failed.Add(1)
			slog.Error("failed to marshal document", "error", err, "id", id)
			continue
		}

		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "create",
			DocumentID: id.String(),
			Body:       bytes.NewReader(body),
			OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {
				inserted.Add(1)
			},
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				if err == nil && res.Status == http.StatusConflict {
					conflicts.Add(1)
					return
				}
				failed.Add(1)
				if err != nil {
					slog.Error("bulk create error", "error", err, "id", item.DocumentID)
				} else {
					slog.Error("bulk create error", "status", res.Status, "error", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID)
				}
			},
		})
		if err != nil {
			failed.Add(1)
			slog.Error("failed to add document to bulk indexer", "error", err, "id", id)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return 0, apperr.NewPersistence("insert", fmt.Errorf("failed to close bulk indexer: %w", err))
	}

	slog.Debug("Bulk create completed",
		"index", index,
		"inserted", inserted.Load(),
		"duplicates", conflicts.Load(),
		"failed", failed.Load(),
	)

	if n := failed.Load(); n > 0 {
		return int(inserted.Load()), apperr.NewPersistence("insert", fmt.Errorf("failed to index %d out of %d articles", n, len(entries)))
	}
	return int(inserted.Load()), nil
}

func (c *Collection) Purge(ctx context.Context) error {
	_, err := c.client.DeleteByQuery(c.indexName).
		Query(&types.Query{MatchAll: &types.MatchAllQuery{}}).
		Refresh(true).
		Do(ctx)
	if err != nil {
		return apperr.NewPersistence("purge", err)
	}
	return nil
}

type Store struct {
	client      *elasticsearch.TypedClient
	collections map[domain.Source]*Collection
}

// NewStore connects to the cluster and ensures one index per source, named
// prefix + collection name.
func NewStore(ctx context.Context, cfg ClientConfig, names storage.CollectionNames) (*Store, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, apperr.NewPersistence("connect", err)
	}

	ok, err := client.Ping().Do(ctx)
	if err != nil {
		return nil, apperr.NewPersistence("connect", err)
	}
	if !ok {
		return nil, apperr.NewPersistence("connect", errors.New("elasticsearch ping failed"))
	}

	s := &Store{
		client:      client,
		collections: make(map[domain.Source]*Collection, len(names)),
	}
	for src, name := range names {
		c := &Collection{
			client:    client,
			source:    src,
			indexName: cfg.IndexPrefix + name,
		}
		if err := c.EnsureIndex(ctx); err != nil {
			return nil, apperr.NewPersistence("ensure index", err)
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

func (s *Store) Close() {}

// Healthy implements the server health check contract.
func (s *Store) Healthy(ctx context.Context) bool {
	ok, err := s.client.Ping().Do(ctx)
	if err != nil {
		slog.Warn("Elasticsearch health check failed", "error", err)
		return false
	}
	return ok
}
