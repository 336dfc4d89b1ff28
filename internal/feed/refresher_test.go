package feed

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRefresh struct {
	calls atomic.Int64
	err   error
}

func (c *countingRefresh) Refresh(ctx context.Context) error {
	c.calls.Add(1)
	return c.err
}

func TestRefresher_RunsImmediatelyAndOnTick(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := &countingRefresh{}
	r := NewRefresher(f, 10*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- r.Start(ctx) }()

	assert.Eventually(t, func() bool { return f.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop after cancellation")
	}
}

func TestRefresher_KeepsRunningAfterFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := &countingRefresh{err: errors.New("boom")}
	r := NewRefresher(f, 10*time.Millisecond)
	go func() { _ = r.Start(ctx) }()

	assert.Eventually(t, func() bool { return f.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestRefresher_DefaultInterval(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := &countingRefresh{}
	r := &Refresher{Feed: f}

	done := make(chan struct{})
	go func() {
		_ = r.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return f.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
	assert.Equal(t, DefaultRefreshInterval, r.Interval)
}
