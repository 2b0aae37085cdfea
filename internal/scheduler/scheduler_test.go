package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-feed-service/internal/observability"
)

type countingFetcher struct {
	calls atomic.Int32
	done  chan struct{}
	err   error
}

func newCountingFetcher(err error) *countingFetcher {
	return &countingFetcher{done: make(chan struct{}, 16), err: err}
}

func (f *countingFetcher) Fetch(_ context.Context) error {
	f.calls.Add(1)
	f.done <- struct{}{}
	return f.err
}

func waitFetch(t *testing.T, f *countingFetcher) {
	t.Helper()
	select {
	case <-f.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fetch")
	}
}

func TestRun_FetchesImmediatelyThenEveryInterval(t *testing.T) {
	clock := clockwork.NewFakeClock()
	f := newCountingFetcher(nil)
	s := New(f, time.Minute, clock, observability.DiscardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx) }()

	waitFetch(t, f)
	assert.Equal(t, int32(1), f.calls.Load())

	for i := 2; i <= 3; i++ {
		clock.Advance(time.Minute)
		waitFetch(t, f)
		assert.Equal(t, int32(i), f.calls.Load())
	}

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_FailureDoesNotStopTicks(t *testing.T) {
	clock := clockwork.NewFakeClock()
	f := newCountingFetcher(errors.New("feed down"))
	s := New(f, 30*time.Second, clock, observability.DiscardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Run(ctx) }()

	waitFetch(t, f)
	clock.Advance(30 * time.Second)
	waitFetch(t, f)

	assert.Equal(t, int32(2), f.calls.Load())
}

func TestRun_ZeroIntervalFetchesOnce(t *testing.T) {
	f := newCountingFetcher(nil)
	s := New(f, 0, clockwork.NewFakeClock(), observability.DiscardLogger())

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, int32(1), f.calls.Load())
}
