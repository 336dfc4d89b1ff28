package ingest

import (
	"fmt"

	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
)

// KeyPolicy selects the article field used as the dedup key of a source.
// URL keys are collision-free across unrelated articles; title keys also
// collapse syndicated copies of the same story but may merge distinct
// articles that happen to share a headline.
type KeyPolicy string

const (
	KeyByURL   KeyPolicy = "url"
	KeyByTitle KeyPolicy = "title"
)

func ParseKeyPolicy(s string) (KeyPolicy, error) {
	switch KeyPolicy(s) {
	case "":
		return KeyByURL, nil
	case KeyByURL, KeyByTitle:
		return KeyPolicy(s), nil
	default:
		return "", fmt.Errorf("unsupported dedup key policy %q, expected one of %v", s, []KeyPolicy{KeyByURL, KeyByTitle})
	}
}

// Key returns the exact, case-sensitive dedup key of an article. The URL
// policy falls back to the permalink for social posts without a url.
func (p KeyPolicy) Key(a domain.Article) string {
	if p == KeyByTitle {
		return a.Title
	}
	if a.URL != "" {
		return a.URL
	}
	return a.Link
}

type Deduplicator struct {
	policy KeyPolicy
}

func NewDeduplicator(policy KeyPolicy) *Deduplicator {
	return &Deduplicator{policy: policy}
}

func (d *Deduplicator) Policy() KeyPolicy {
	return d.policy
}

// FilterNew returns the candidates whose key matches no existing record.
// Candidates without a key are dropped and repeated keys within the batch
// keep their first occurrence.
func (d *Deduplicator) FilterNew(existing []domain.StoredArticle, candidates []domain.Article) []domain.Article {
	seen := make(map[string]struct{}, len(existing)+len(candidates))
	for _, e := range existing {
		seen[d.policy.Key(e.Article)] = struct{}{}
	}

	fresh := make([]domain.Article, 0, len(candidates))
	for _, c := range candidates {
		key := d.policy.Key(c)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		fresh = append(fresh, c)
	}
	return fresh
}
