package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scoresync/pkg/journal"
	"scoresync/pkg/logger"
	"scoresync/pkg/record"
)

// fakeUpserter records calls and can be told to fail per player
type fakeUpserter struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

func (f *fakeUpserter) UpsertScore(ctx context.Context, name string, score int) (*record.ScoreRecord, error) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	shouldFail := f.fail[name]
	f.mu.Unlock()

	if shouldFail {
		return nil, errors.New("store unavailable")
	}
	return &record.ScoreRecord{ID: 1, PlayerName: name, Score: score, CreatedAt: "t"}, nil
}

func TestPoolDeliversCallback(t *testing.T) {
	store := &fakeUpserter{}
	p := NewPool(logger.Nop(), store, 2, 4)

	ctx := context.Background()
	p.Start(ctx)

	done := make(chan struct{})
	var got *record.ScoreRecord
	err := p.Submit(ctx, Job{
		Entry: journal.Entry{ID: "a", PlayerName: "Ann", Score: 10},
		Callback: func(rec *record.ScoreRecord, err error) {
			require.NoError(t, err)
			got = rec
			close(done)
		},
	})
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("callback never fired")
	}
	require.NotNil(t, got)
	assert.Equal(t, 10, got.Score)
}

func TestPoolReportsFailureOnce(t *testing.T) {
	store := &fakeUpserter{fail: map[string]bool{"Ann": true}}
	p := NewPool(logger.Nop(), store, 1, 4)

	ctx := context.Background()
	p.Start(ctx)

	done := make(chan error, 1)
	err := p.Submit(ctx, Job{
		Entry: journal.Entry{ID: "a", PlayerName: "Ann", Score: 10},
		Callback: func(rec *record.ScoreRecord, err error) {
			assert.Nil(t, rec)
			done <- err
		},
	})
	require.NoError(t, err)

	select {
	case cbErr := <-done:
		assert.Error(t, cbErr)
	case <-time.After(2 * time.Second):
		t.Fatal("callback never fired")
	}

	// Drain and confirm the failed job was attempted exactly once
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, p.Shutdown(shutdownCtx))

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, []string{"Ann"}, store.calls, "no in-pool retry of a failed submission")
}

func TestPoolShutdownDrainsQueue(t *testing.T) {
	store := &fakeUpserter{}
	p := NewPool(logger.Nop(), store, 2, 16)

	ctx := context.Background()
	p.Start(ctx)

	var fired atomic.Int32
	for i := 0; i < 10; i++ {
		require.NoError(t, p.Submit(ctx, Job{
			Entry: journal.Entry{ID: "x", PlayerName: "p", Score: i},
			Callback: func(rec *record.ScoreRecord, err error) {
				fired.Add(1)
			},
		}))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, p.Shutdown(shutdownCtx))
	assert.Equal(t, int32(10), fired.Load())
}

func TestPoolSubmitRespectsContext(t *testing.T) {
	store := &fakeUpserter{}
	p := NewPool(logger.Nop(), store, 1, 1)
	// Pool not started: the queue fills and Submit must block until ctx ends

	ctx := context.Background()
	require.NoError(t, p.Submit(ctx, Job{Entry: journal.Entry{ID: "a"}}))

	cancelled, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	err := p.Submit(cancelled, Job{Entry: journal.Entry{ID: "b"}})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
