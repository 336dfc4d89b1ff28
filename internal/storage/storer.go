package storage

import (
	"context"

	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
)

// Entry is an article paired with its dedup key.
type Entry struct {
	Key     string
	Article domain.Article
}

// Collection persists the articles of a single source.
type Collection interface {
	Source() domain.Source
	// FindAll returns every stored article in insertion order.
	FindAll(ctx context.Context) ([]domain.StoredArticle, error)
	// InsertIfAbsent atomically inserts each entry whose key is not yet
	// stored and returns how many were inserted. Ids are assigned here.
	InsertIfAbsent(ctx context.Context, entries []Entry) (int, error)
	// Replace swaps the whole collection for entries in one atomic step. On
	// error the previous contents are left untouched.
	Replace(ctx context.Context, entries []Entry) (int, error)
	// Purge removes every article of the collection.
	Purge(ctx context.Context) error
}

// UniqueEntries drops entries with an empty key and every repeat of a key
// already seen, keeping the first occurrence.
func UniqueEntries(entries []Entry) []Entry {
	seen := make(map[string]struct{}, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Key == "" {
			continue
		}
		if _, ok := seen[e.Key]; ok {
			continue
		}
		seen[e.Key] = struct{}{}
		out = append(out, e)
	}
	return out
}

// Store owns one collection per source.
type Store interface {
	Collection(source domain.Source) (Collection, error)
	// Healthy reports whether the backing database is reachable.
	Healthy(ctx context.Context) bool
	Close()
}

type Type string

const (
	ES    Type = "es"
	PG    Type = "pg"
	Mongo Type = "mongo"
	InMem Type = "in_mem"
)

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
	ErrUnknownCollection StorerError = "no collection configured for source: %s"
)

func (e StorerError) Error() string {
	return string(e)
}

// CollectionNames maps each source to its collection (table or index) name.
type CollectionNames map[domain.Source]string

func DefaultCollectionNames() CollectionNames {
	return CollectionNames{
		domain.SourceGuardian: "guardian_articles",
		domain.SourceNYTimes:  "nytimes_articles",
		domain.SourceReddit:   "reddit_articles",
	}
}
