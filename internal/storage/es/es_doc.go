package es

import (
	"encoding/json"

	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/google/uuid"
)

// Document is the envelope persisted per article. The article itself lives
// under Doc so that its key set survives round trips unchanged.
type Document struct {
	ID       string            `json:"id"`
	DedupKey string            `json:"dedupKey"`
	Seq      int64             `json:"seq"`
	Doc      map[string]string `json:"doc"`
}

type storedDocument struct {
	ID  string          `json:"id"`
	Doc json.RawMessage `json:"doc"`
}

var idNamespace = uuid.MustParse("6f1c1d4e-3b7a-4c55-9a0e-0c2b7e5d8a11")

// DocumentID derives a stable id from source and dedup key, so a repeated
// create for the same key conflicts instead of duplicating.
func DocumentID(source domain.Source, key string) uuid.UUID {
	return uuid.NewSHA1(idNamespace, []byte(string(source)+"\x00"+key))
}

func buildMapping() *types.TypeMapping {
	disabled := false
	return &types.TypeMapping{
		Properties: map[string]types.Property{
			"id":       types.NewKeywordProperty(),
			"dedupKey": types.NewKeywordProperty(),
			"seq":      types.NewLongNumberProperty(),
			"doc": &types.ObjectProperty{
				Enabled: &disabled,
			},
		},
	}
}
