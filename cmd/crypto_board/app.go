package main

import (
	"context"
	"log/slog"

	"github.com/DjordjeVuckovic/crypto-board/internal/cache"
	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
	"github.com/DjordjeVuckovic/crypto-board/internal/enrich"
	"github.com/DjordjeVuckovic/crypto-board/internal/feed"
	"github.com/DjordjeVuckovic/crypto-board/internal/ingest"
	"github.com/DjordjeVuckovic/crypto-board/internal/price"
	"github.com/DjordjeVuckovic/crypto-board/internal/source"
	"github.com/DjordjeVuckovic/crypto-board/internal/source/guardian"
	"github.com/DjordjeVuckovic/crypto-board/internal/source/nytimes"
	"github.com/DjordjeVuckovic/crypto-board/internal/source/reddit"
	"github.com/DjordjeVuckovic/crypto-board/internal/storage"
	"github.com/DjordjeVuckovic/crypto-board/internal/storage/factory"
	pkgserver "github.com/DjordjeVuckovic/crypto-board/pkg/server"
)

// App owns every long-lived dependency of the process. It is built once the
// store is connected and torn down on exit.
type App struct {
	Store      storage.Store
	Cache      cache.Cache
	Enricher   *enrich.Enricher
	Feed       *feed.Aggregator
	Refresher  *feed.Refresher
	Runners    []ingest.Runner
	Prices     *price.Client
	Health     pkgserver.HealthChecker
	redisCache *cache.RedisCache
}

func NewApp(ctx context.Context, cfg *CryptoBoardConfig) (*App, error) {
	store, err := factory.NewStore(ctx, &cfg.StorageConfig)
	if err != nil {
		return nil, err
	}
	slog.Info("Storage connected", "type", cfg.StorageConfig.Type)

	app := &App{
		Store:    store,
		Enricher: enrich.New(),
		Prices:   price.NewClient(cfg.Price),
	}

	health := pkgserver.NewCompositeHealthChecker().Register(string(cfg.StorageConfig.Type), store)
	switch cfg.Cache.Type {
	case cache.Redis:
		app.redisCache = cache.NewRedisCache(cache.NewRedisClient(cfg.Cache.Redis), "crypto-board:")
		if !app.redisCache.Healthy(ctx) {
			slog.Warn("Redis is not reachable, cache misses will recompute", "addr", cfg.Cache.Redis.Addr)
		}
		app.Cache = app.redisCache
		health.Register("redis", app.redisCache)
	default:
		app.Cache = cache.NewMemoryCache()
	}
	app.Health = health

	fetchers := []source.Fetcher{
		guardian.NewClient(cfg.Guardian),
		nytimes.NewClient(cfg.NYTimes),
		reddit.NewClient(cfg.Reddit),
	}
	for _, f := range fetchers {
		coll, err := store.Collection(f.Source())
		if err != nil {
			app.Close()
			return nil, err
		}
		sc := cfg.Sources[f.Source()]
		app.Runners = append(app.Runners, ingest.NewPipeline(f, coll,
			ingest.WithKeyPolicy(sc.KeyPolicy),
			ingest.WithDefaultQuery(sc.Query),
		))
		slog.Info("Ingestion pipeline ready", "source", f.Source(), "dedupKey", sc.KeyPolicy, "query", sc.Query)
	}

	app.Feed = feed.NewAggregator(store, app.Enricher, app.Cache,
		feed.WithTTL(cfg.Cache.TTL),
		feed.WithSources(domain.Sources...),
	)
	app.Refresher = feed.NewRefresher(app.Feed, cfg.Cache.RefreshInterval)

	return app, nil
}

func (a *App) Close() {
	if a.redisCache != nil {
		if err := a.redisCache.Close(); err != nil {
			slog.Warn("Failed to close redis client", "error", err)
		}
	}
	a.Store.Close()
}
