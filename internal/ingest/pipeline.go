package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
	"github.com/DjordjeVuckovic/crypto-board/internal/source"
	"github.com/DjordjeVuckovic/crypto-board/internal/storage"
)

// Runner executes one ingestion cycle for a source.
type Runner interface {
	Source() domain.Source
	Run(ctx context.Context, query string) (*Result, error)
}

// Result describes a completed ingestion cycle. Articles is the full
// collection after the merge.
type Result struct {
	Source       domain.Source
	Articles     []domain.Article
	TotalResults int
	Fetched      int
	Inserted     int
	Rebuilt      bool
}

// Pipeline runs fetch, normalize, drift check, dedup and persist for one
// source.
type Pipeline struct {
	fetcher      source.Fetcher
	collection   storage.Collection
	dedup        *Deduplicator
	defaultQuery string
}

type PipelineOption func(*Pipeline)

func WithKeyPolicy(policy KeyPolicy) PipelineOption {
	return func(p *Pipeline) {
		p.dedup = NewDeduplicator(policy)
	}
}

func WithDefaultQuery(query string) PipelineOption {
	return func(p *Pipeline) {
		p.defaultQuery = query
	}
}

const DefaultQuery = "cryptocurrency"

func NewPipeline(f source.Fetcher, c storage.Collection, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		fetcher:      f,
		collection:   c,
		dedup:        NewDeduplicator(KeyByURL),
		defaultQuery: DefaultQuery,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) Source() domain.Source {
	return p.fetcher.Source()
}

// Run executes one ingestion cycle. An empty query falls back to the
// configured default. Fetch failures abort before any write, and a failed
// write leaves the stored collection as it was.
func (p *Pipeline) Run(ctx context.Context, query string) (*Result, error) {
	start := time.Now()
	src := p.Source()
	if query == "" {
		query = p.defaultQuery
	}

	batch, err := p.fetcher.FetchAll(ctx, query)
	if err != nil {
		slog.Error("Fetch failed", "source", src, "query", query, "error", err)
		return nil, err
	}

	candidates := NormalizeAll(batch.Items)

	existing, err := p.collection.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	// a drifted collection is rebuilt from the fetched batch alone
	rebuilt := DetectDrift(existing, src.CanonicalFields())
	if rebuilt {
		slog.Warn("Schema drift detected, rebuilding collection", "source", src, "existing", len(existing))
		existing = nil
	}

	fresh := p.dedup.FilterNew(existing, candidates)
	entries := make([]storage.Entry, 0, len(fresh))
	for _, a := range fresh {
		entries = append(entries, storage.Entry{Key: p.dedup.Policy().Key(a), Article: a})
	}

	inserted := 0
	switch {
	case rebuilt:
		inserted, err = p.collection.Replace(ctx, entries)
	case len(entries) > 0:
		inserted, err = p.collection.InsertIfAbsent(ctx, entries)
	}
	if err != nil {
		slog.Error("Persist failed", "source", src, "rebuilt", rebuilt, "error", err)
		return nil, err
	}

	stored, err := p.collection.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	articles := make([]domain.Article, 0, len(stored))
	for _, s := range stored {
		articles = append(articles, s.Article)
	}

	slog.Info("Ingestion completed",
		"source", src,
		"fetched", len(candidates),
		"new", len(fresh),
		"inserted", inserted,
		"stored", len(articles),
		"rebuilt", rebuilt,
		"duration", time.Since(start),
	)

	return &Result{
		Source:       src,
		Articles:     articles,
		TotalResults: batch.TotalResults,
		Fetched:      len(candidates),
		Inserted:     inserted,
		Rebuilt:      rebuilt,
	}, nil
}
