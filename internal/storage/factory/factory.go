package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/crypto-board/internal/apperr"
	"github.com/DjordjeVuckovic/crypto-board/internal/storage"
	"github.com/DjordjeVuckovic/crypto-board/internal/storage/es"
	"github.com/DjordjeVuckovic/crypto-board/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/crypto-board/internal/storage/mongo"
	"github.com/DjordjeVuckovic/crypto-board/internal/storage/pg"
)

// NewStore connects the configured backend. Connection failures are
// returned as persistence errors.
func NewStore(ctx context.Context, cfg *StorageConfig) (storage.Store, error) {
	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL configuration")
		}

		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, apperr.NewPersistence("connect", fmt.Errorf("failed to create PostgreSQL connection pool: %w", err))
		}

		s, err := pg.NewStore(ctx, pool, cfg.Collections)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return s, nil

	case storage.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch configuration")
		}
		return es.NewStore(ctx, *cfg.Es, cfg.Collections)

	case storage.Mongo:
		if cfg.Mongo == nil {
			return nil, fmt.Errorf("missing MongoDB configuration")
		}
		return mongo.NewStore(ctx, *cfg.Mongo, cfg.Collections)

	case storage.InMem:
		return in_mem.NewStore(), nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}
