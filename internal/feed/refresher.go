package feed

import (
	"context"
	"log/slog"
	"time"
)

const DefaultRefreshInterval = time.Hour

type refreshable interface {
	Refresh(ctx context.Context) error
}

// Refresher keeps the feed cache warm by recomputing it on a fixed interval.
// It complements, and does not replace, recompute on miss.
type Refresher struct {
	Feed     refreshable
	Interval time.Duration
}

func NewRefresher(feed refreshable, interval time.Duration) *Refresher {
	return &Refresher{Feed: feed, Interval: interval}
}

// Start blocks until ctx is cancelled.
func (r *Refresher) Start(ctx context.Context) error {
	if r.Interval <= 0 {
		r.Interval = DefaultRefreshInterval
	}

	// initial run
	r.runOnce(ctx)

	t := time.NewTicker(r.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			r.runOnce(ctx)
		}
	}
}

func (r *Refresher) runOnce(ctx context.Context) {
	if err := r.Feed.Refresh(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Error("feed-refresher: refresh failed", "error", err)
	}
}
