package factory

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"slices"
	"strings"

	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
	"github.com/DjordjeVuckovic/crypto-board/internal/storage"
	"github.com/DjordjeVuckovic/crypto-board/internal/storage/es"
	"github.com/DjordjeVuckovic/crypto-board/internal/storage/mongo"
	"github.com/DjordjeVuckovic/crypto-board/internal/storage/pg"
)

const defaultMongoDatabase = "cryptoboard"

type StorageConfig struct {
	storage.Type
	Pg          *pg.PoolConfig
	Es          *es.ClientConfig
	Mongo       *mongo.ClientConfig
	Collections storage.CollectionNames
}

var supportedTypes = []storage.Type{storage.ES, storage.PG, storage.Mongo, storage.InMem}

var collectionEnv = map[domain.Source]string{
	domain.SourceGuardian: "COLLECTION_GUARDIAN",
	domain.SourceNYTimes:  "COLLECTION_NYTIMES",
	domain.SourceReddit:   "COLLECTION_REDDIT",
}

func LoadEnv() (*StorageConfig, error) {
	storageType := (storage.Type)(os.Getenv("STORAGE_TYPE"))
	if storageType == "" {
		slog.Info("STORAGE_TYPE is not set, using in-memory storage")
		storageType = storage.InMem
	}
	if !slices.Contains(supportedTypes, storageType) {
		slog.Error("Invalid STORAGE_TYPE environment variable value", "value", storageType)
		return nil, fmt.Errorf(
			"invalid STORAGE_TYPE environment variable value: %s, expected one of %v",
			storageType,
			supportedTypes)
	}

	names := storage.DefaultCollectionNames()
	for src, key := range collectionEnv {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			names[src] = v
		}
	}

	var esCfg *es.ClientConfig
	if storageType == storage.ES {
		esCfg = &es.ClientConfig{
			Addresses:   splitNonEmpty(os.Getenv("ES_ADDRESSES")),
			IndexPrefix: os.Getenv("ES_INDEX_PREFIX"),
			Username:    os.Getenv("ES_USERNAME"),
			Password:    os.Getenv("ES_PASSWORD"),
		}
		if len(esCfg.Addresses) == 0 {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", esCfg.Addresses)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: addresses are missing")
		}
	}

	var pgCfg *pg.PoolConfig
	if storageType == storage.PG {
		pgCfg = &pg.PoolConfig{
			ConnStr: os.Getenv("PG_CONNECTION_STRING"),
		}
		if pgCfg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
	}

	var mongoCfg *mongo.ClientConfig
	if storageType == storage.Mongo {
		mongoCfg = &mongo.ClientConfig{
			URI:      mongoURI(),
			Database: os.Getenv("MONGODB_DB_NAME"),
		}
		if mongoCfg.Database == "" {
			mongoCfg.Database = defaultMongoDatabase
		}
		if mongoCfg.URI == "" {
			slog.Error("MongoDB configuration is incomplete")
			return nil, fmt.Errorf("MongoDB configuration is incomplete: set MONGODB_URI or MONGODB_CLUSTER_HOST")
		}
	}

	return &StorageConfig{
		Type:        storageType,
		Pg:          pgCfg,
		Es:          esCfg,
		Mongo:       mongoCfg,
		Collections: names,
	}, nil
}

// mongoURI prefers MONGODB_URI and otherwise builds an SRV URI from the
// cluster host and credentials.
func mongoURI() string {
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		return uri
	}
	host := os.Getenv("MONGODB_CLUSTER_HOST")
	if host == "" {
		return ""
	}
	u := url.URL{Scheme: "mongodb+srv", Host: host, Path: "/"}
	if user := os.Getenv("MONGODB_USERNAME"); user != "" {
		u.User = url.UserPassword(user, os.Getenv("MONGODB_PASSWORD"))
	}
	u.RawQuery = "retryWrites=true&w=majority"
	return u.String()
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
