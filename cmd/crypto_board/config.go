package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/DjordjeVuckovic/crypto-board/internal/cache"
	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
	"github.com/DjordjeVuckovic/crypto-board/internal/feed"
	"github.com/DjordjeVuckovic/crypto-board/internal/ingest"
	"github.com/DjordjeVuckovic/crypto-board/internal/price"
	"github.com/DjordjeVuckovic/crypto-board/internal/source/guardian"
	"github.com/DjordjeVuckovic/crypto-board/internal/source/nytimes"
	"github.com/DjordjeVuckovic/crypto-board/internal/source/reddit"
	"github.com/DjordjeVuckovic/crypto-board/internal/storage/factory"
	"github.com/DjordjeVuckovic/crypto-board/pkg/config/env"
	"github.com/DjordjeVuckovic/crypto-board/pkg/logger"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type CacheConfig struct {
	Type            cache.Type
	TTL             time.Duration
	RefreshInterval time.Duration
	Redis           cache.RedisConfig
}

type SourceConfig struct {
	Query     string
	KeyPolicy ingest.KeyPolicy
}

type CryptoBoardConfig struct {
	Logger        logger.Config
	StorageConfig factory.StorageConfig
	Cache         CacheConfig
	Guardian      guardian.Config
	NYTimes       nytimes.Config
	Reddit        reddit.Config
	Price         price.Config
	Sources       map[domain.Source]SourceConfig
}

var dedupEnv = map[domain.Source]string{
	domain.SourceGuardian: "DEDUP_KEY_GUARDIAN",
	domain.SourceNYTimes:  "DEDUP_KEY_NYTIMES",
	domain.SourceReddit:   "DEDUP_KEY_REDDIT",
}

var queryEnv = map[domain.Source]string{
	domain.SourceGuardian: "GUARDIAN_QUERY",
	domain.SourceNYTimes:  "NYTIMES_QUERY",
	domain.SourceReddit:   "REDDIT_QUERY",
}

func (as *AppConfig) Load() (*CryptoBoardConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/crypto_board/.env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	cacheCfg, err := loadCacheConfig()
	if err != nil {
		return nil, err
	}

	sources := make(map[domain.Source]SourceConfig, len(domain.Sources))
	for _, src := range domain.Sources {
		policy, err := ingest.ParseKeyPolicy(os.Getenv(dedupEnv[src]))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", dedupEnv[src], err)
		}
		sources[src] = SourceConfig{
			Query:     env.String(queryEnv[src], ingest.DefaultQuery),
			KeyPolicy: policy,
		}
	}

	return &CryptoBoardConfig{
		Logger:        logger.LoadEnv(),
		StorageConfig: *storageCfg,
		Cache:         *cacheCfg,
		Guardian: guardian.Config{
			BaseURL: env.String("GUARDIAN_BASE_URL", guardian.DefaultBaseURL),
			APIKey:  env.String("GUARDIAN_API_KEY", "test"),
		},
		NYTimes: nytimes.Config{
			BaseURL: env.String("NYTIMES_BASE_URL", nytimes.DefaultBaseURL),
			APIKey:  os.Getenv("NYTIMES_API_KEY"),
		},
		Reddit: reddit.Config{
			BaseURL:        env.String("REDDIT_BASE_URL", reddit.DefaultBaseURL),
			TokenURL:       env.String("REDDIT_TOKEN_URL", reddit.DefaultTokenURL),
			ClientIDSecret: os.Getenv("REDDIT_CLIENT_ID_SECRET"),
			Username:       os.Getenv("REDDIT_USERNAME"),
			Password:       os.Getenv("REDDIT_PASSWORD"),
		},
		Price: price.Config{
			BaseURL: env.String("PRICE_BASE_URL", price.DefaultBaseURL),
			Coin:    env.String("PRICE_COIN", price.DefaultCoin),
		},
		Sources: sources,
	}, nil
}

func loadCacheConfig() (*CacheConfig, error) {
	cacheType := cache.Type(env.String("CACHE_TYPE", string(cache.Memory)))
	if cacheType != cache.Memory && cacheType != cache.Redis {
		return nil, fmt.Errorf("invalid CACHE_TYPE %q, expected one of %v", cacheType, []cache.Type{cache.Memory, cache.Redis})
	}

	ttl, err := env.Duration("CACHE_TTL", feed.DefaultTTL)
	if err != nil {
		return nil, err
	}
	interval, err := env.Duration("CACHE_REFRESH_INTERVAL", feed.DefaultRefreshInterval)
	if err != nil {
		return nil, err
	}
	db, err := env.Int("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	return &CacheConfig{
		Type:            cacheType,
		TTL:             ttl,
		RefreshInterval: interval,
		Redis: cache.RedisConfig{
			Addr:     env.String("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       db,
		},
	}, nil
}
