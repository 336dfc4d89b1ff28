package ingest

import "github.com/DjordjeVuckovic/crypto-board/internal/domain"

// DetectDrift reports whether any stored record lacks one of the required
// document keys. A single drifted record marks the whole collection stale.
func DetectDrift(existing []domain.StoredArticle, required []string) bool {
	for _, rec := range existing {
		if !domain.ContainFields(rec, required) {
			return true
		}
	}
	return false
}
