package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/crypto-board/internal/apperr"
	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
	"github.com/DjordjeVuckovic/crypto-board/internal/storage"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	fieldObjectID = "_id"
	fieldID       = "id"
	fieldDedupKey = "dedupKey"
)

// internalFields are bookkeeping keys that never count as article fields.
var internalFields = []string{fieldObjectID, fieldID, fieldDedupKey}

type ClientConfig struct {
	URI      string
	Database string
}

// Collection keeps article fields at the top level of each document. The
// unique dedupKey index plus an upsert with $setOnInsert makes
// insert-if-absent atomic on the server.
type Collection struct {
	coll   *mongo.Collection
	source domain.Source
}

func (c *Collection) Source() domain.Source {
	return c.source
}

func (c *Collection) ensureIndex(ctx context.Context) error {
	_, err := c.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: fieldDedupKey, Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_dedup_key"),
	})
	if err != nil {
		return fmt.Errorf("failed to create dedup index on %s: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *Collection) FindAll(ctx context.Context) ([]domain.StoredArticle, error) {
	cur, err := c.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: fieldObjectID, Value: 1}}))
	if err != nil {
		return nil, apperr.NewPersistence("find all", err)
	}

	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, apperr.NewPersistence("find all", err)
	}

	out := make([]domain.StoredArticle, 0, len(raw))
	for _, m := range raw {
		out = append(out, toStoredArticle(m, c.source))
	}
	return out, nil
}

func (c *Collection) InsertIfAbsent(ctx context.Context, entries []storage.Entry) (int, error) {
	inserted := 0
	for _, e := range entries {
		// dedupKey comes from the equality filter on upsert
		doc := newDocument(e)

		res, err := c.coll.UpdateOne(ctx,
			bson.M{fieldDedupKey: e.Key},
			bson.M{"$setOnInsert": doc},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			// two concurrent upserts of one key: the loser reports a duplicate
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			return inserted, apperr.NewPersistence("insert", err)
		}
		if res.UpsertedCount > 0 {
			inserted++
		}
	}

	slog.Debug("Saved articles to mongo", "collection", c.coll.Name(), "inserted", inserted, "candidates", len(entries))
	return inserted, nil
}

// Replace fills a staging collection and renames it over the live one with
// dropTarget, which the server applies as a single step. A failed fill drops
// the staging collection and leaves the live one untouched.
func (c *Collection) Replace(ctx context.Context, entries []storage.Entry) (int, error) {
	unique := storage.UniqueEntries(entries)
	db := c.coll.Database()
	staging := &Collection{
		coll:   db.Collection(fmt.Sprintf("%s_replace_%d", c.coll.Name(), time.Now().UnixNano())),
		source: c.source,
	}

	// creates the staging collection even when there is nothing to insert
	if err := staging.ensureIndex(ctx); err != nil {
		return 0, apperr.NewPersistence("replace", err)
	}

	if len(unique) > 0 {
		docs := make([]any, 0, len(unique))
		for _, e := range unique {
			doc := newDocument(e)
			doc[fieldDedupKey] = e.Key
			docs = append(docs, doc)
		}
		if _, err := staging.coll.InsertMany(ctx, docs); err != nil {
			staging.drop(ctx)
			return 0, apperr.NewPersistence("replace", err)
		}
	}

	rename := bson.D{
		{Key: "renameCollection", Value: db.Name() + "." + staging.coll.Name()},
		{Key: "to", Value: db.Name() + "." + c.coll.Name()},
		{Key: "dropTarget", Value: true},
	}
	if err := db.Client().Database("admin").RunCommand(ctx, rename).Err(); err != nil {
		staging.drop(ctx)
		return 0, apperr.NewPersistence("replace", err)
	}

	slog.Debug("Replaced mongo collection", "collection", c.coll.Name(), "stored", len(unique))
	return len(unique), nil
}

func (c *Collection) drop(ctx context.Context) {
	if err := c.coll.Drop(ctx); err != nil {
		slog.Warn("Failed to drop collection", "collection", c.coll.Name(), "error", err)
	}
}

func (c *Collection) Purge(ctx context.Context) error {
	if _, err := c.coll.DeleteMany(ctx, bson.D{}); err != nil {
		return apperr.NewPersistence("purge", err)
	}
	return nil
}

func newDocument(e storage.Entry) bson.M {
	id := e.Article.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	doc := bson.M{
		fieldObjectID: primitive.NewObjectID(),
		fieldID:       id.String(),
	}
	for k, v := range e.Article.Document() {
		doc[k] = v
	}
	return doc
}

func toStoredArticle(m bson.M, source domain.Source) domain.StoredArticle {
	id, err := uuid.Parse(fmt.Sprint(m[fieldID]))
	if err != nil {
		id = uuid.Nil
	}

	for _, k := range internalFields {
		delete(m, k)
	}

	doc := make(map[string]string, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case nil:
			doc[k] = ""
		case string:
			doc[k] = val
		default:
			doc[k] = fmt.Sprint(val)
		}
	}
	return domain.NewStoredArticle(id, source, doc)
}

type Store struct {
	client      *mongo.Client
	collections map[domain.Source]*Collection
}

// NewStore connects to the cluster and ensures a collection with a unique
// dedup index per source.
func NewStore(ctx context.Context, cfg ClientConfig, names storage.CollectionNames) (*Store, error) {
	if cfg.Database == "" {
		return nil, errors.New("mongo database name is not set")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, apperr.NewPersistence("connect", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, apperr.NewPersistence("connect", err)
	}

	db := client.Database(cfg.Database)
	s := &Store{
		client:      client,
		collections: make(map[domain.Source]*Collection, len(names)),
	}
	for src, name := range names {
		c := &Collection{coll: db.Collection(name), source: src}
		if err := c.ensureIndex(ctx); err != nil {
			_ = client.Disconnect(ctx)
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

func (s *Store) Healthy(ctx context.Context) bool {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		slog.Warn("MongoDB health check failed", "error", err)
		return false
	}
	return true
}

func (s *Store) Close() {
	if err := s.client.Disconnect(context.Background()); err != nil {
		slog.Warn("Failed to disconnect from MongoDB", "error", err)
	}
}
