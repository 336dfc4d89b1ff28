package pg

import (
	"fmt"

	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
	"github.com/DjordjeVuckovic/crypto-board/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func mapToStoredArticle(rows pgx.Rows, source domain.Source) (domain.StoredArticle, error) {
	var id uuid.UUID
	var docJSON []byte

	if err := rows.Scan(&id, &docJSON); err != nil {
		return domain.StoredArticle{}, fmt.Errorf("failed to scan article: %w", err)
	}

	doc, err := storage.DecodeDocument(docJSON)
	if err != nil {
		return domain.StoredArticle{}, fmt.Errorf("failed to decode article %s: %w", id, err)
	}

	return domain.NewStoredArticle(id, source, doc), nil
}
