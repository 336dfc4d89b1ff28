package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/crypto-board/internal/cache"
	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
	"github.com/DjordjeVuckovic/crypto-board/internal/enrich"
	"github.com/DjordjeVuckovic/crypto-board/internal/storage"
)

const (
	KeyArticles = "feed:articles"
	KeyTrending = "feed:trending"

	DefaultTTL = time.Hour
)

// Snapshot is one computation of the unified feed.
type Snapshot struct {
	Articles []domain.FeedArticle
	Trending []domain.KeywordCount
}

// Aggregator serves the unified feed from the cache and recomputes it from
// every source collection on a miss.
type Aggregator struct {
	store    storage.Store
	enricher *enrich.Enricher
	cache    cache.Cache
	ttl      time.Duration
	sources  []domain.Source
	limit    int
}

type Option func(*Aggregator)

func WithTTL(ttl time.Duration) Option {
	return func(a *Aggregator) {
		if ttl > 0 {
			a.ttl = ttl
		}
	}
}

func WithTrendingLimit(n int) Option {
	return func(a *Aggregator) {
		a.limit = n
	}
}

func WithSources(sources ...domain.Source) Option {
	return func(a *Aggregator) {
		a.sources = sources
	}
}

func NewAggregator(store storage.Store, enricher *enrich.Enricher, c cache.Cache, opts ...Option) *Aggregator {
	a := &Aggregator{
		store:    store,
		enricher: enricher,
		cache:    c,
		ttl:      DefaultTTL,
		sources:  domain.Sources,
		limit:    enrich.DefaultTrendingLimit,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Aggregator) Articles(ctx context.Context) ([]domain.FeedArticle, error) {
	return cache.GetOrCompute(ctx, a.cache, KeyArticles, a.ttl, func(ctx context.Context) ([]domain.FeedArticle, error) {
		snap, err := a.compute(ctx)
		if err != nil {
			return nil, err
		}
		a.put(ctx, KeyTrending, snap.Trending)
		return snap.Articles, nil
	})
}

func (a *Aggregator) Trending(ctx context.Context) ([]domain.KeywordCount, error) {
	return cache.GetOrCompute(ctx, a.cache, KeyTrending, a.ttl, func(ctx context.Context) ([]domain.KeywordCount, error) {
		snap, err := a.compute(ctx)
		if err != nil {
			return nil, err
		}
		a.put(ctx, KeyArticles, snap.Articles)
		return snap.Trending, nil
	})
}

// Refresh recomputes the feed regardless of expiry and overwrites both
// cached values.
func (a *Aggregator) Refresh(ctx context.Context) error {
	snap, err := a.compute(ctx)
	if err != nil {
		return err
	}
	a.put(ctx, KeyArticles, snap.Articles)
	a.put(ctx, KeyTrending, snap.Trending)

	slog.Info("Feed refreshed", "articles", len(snap.Articles), "keywords", len(snap.Trending))
	return nil
}

func (a *Aggregator) compute(ctx context.Context) (*Snapshot, error) {
	var all []domain.Article
	for _, src := range a.sources {
		c, err := a.store.Collection(src)
		if err != nil {
			return nil, err
		}
		stored, err := c.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s collection: %w", src, err)
		}
		for _, s := range stored {
			all = append(all, s.Article)
		}
	}

	return &Snapshot{
		Articles: a.enricher.Enrich(all),
		Trending: a.enricher.ComputeTrending(all, a.limit),
	}, nil
}

func (a *Aggregator) put(ctx context.Context, key string, value any) {
	if err := a.cache.Set(ctx, key, value, a.ttl); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
	}
}
