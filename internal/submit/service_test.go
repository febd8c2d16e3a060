package submit

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scoresync/pkg/clock"
	"scoresync/pkg/journal"
	"scoresync/pkg/logger"
	"scoresync/pkg/record"
	"scoresync/pkg/worker"
)

type fakeUpserter struct {
	mu    sync.Mutex
	calls []string
	fail  bool
}

func (f *fakeUpserter) UpsertScore(ctx context.Context, name string, score int) (*record.ScoreRecord, error) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	fail := f.fail
	f.mu.Unlock()

	if fail {
		return nil, errors.New("store unavailable")
	}
	return &record.ScoreRecord{ID: 1, PlayerName: name, Score: score, CreatedAt: "t"}, nil
}

func newTestService(t *testing.T, store *fakeUpserter) (*Service, *journal.FileJournal) {
	t.Helper()
	jnl := journal.NewFileJournal(filepath.Join(t.TempDir(), "pending.jsonl"))
	pool := worker.NewPool(logger.Nop(), store, 1, 8)
	return NewService(logger.Nop(), jnl, pool, clock.New(clock.ModeUTC)), jnl
}

func waitCallback(t *testing.T, done chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("callback never fired")
	}
}

func TestEnqueueClearsJournalOnSuccess(t *testing.T) {
	store := &fakeUpserter{}
	svc, jnl := newTestService(t, store)

	ctx := context.Background()
	require.NoError(t, svc.Start(ctx))

	done := make(chan struct{})
	require.NoError(t, svc.Enqueue(ctx, "Ann", 10, func(rec *record.ScoreRecord, err error) {
		require.NoError(t, err)
		assert.Equal(t, 10, rec.Score)
		close(done)
	}))
	waitCallback(t, done)

	entries, err := jnl.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries, "a confirmed submission must leave the journal")
}

func TestEnqueueKeepsJournalOnFailure(t *testing.T) {
	store := &fakeUpserter{fail: true}
	svc, jnl := newTestService(t, store)

	ctx := context.Background()
	require.NoError(t, svc.Start(ctx))

	done := make(chan struct{})
	require.NoError(t, svc.Enqueue(ctx, "Ann", 10, func(rec *record.ScoreRecord, err error) {
		assert.Error(t, err)
		close(done)
	}))
	waitCallback(t, done)

	entries, err := jnl.Load(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1, "a failed submission stays journaled for the next run")
	assert.Equal(t, "Ann", entries[0].PlayerName)

	// The failure was attempted exactly once
	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, []string{"Ann"}, store.calls)
}

func TestStartReplaysJournal(t *testing.T) {
	store := &fakeUpserter{}
	svc, jnl := newTestService(t, store)

	ctx := context.Background()
	require.NoError(t, jnl.Append(ctx, journal.Entry{
		ID: "left-over", PlayerName: "bob", Score: 5, QueuedAt: "t",
	}))

	require.NoError(t, svc.Start(ctx))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, svc.Stop(shutdownCtx))

	store.mu.Lock()
	calls := append([]string(nil), store.calls...)
	store.mu.Unlock()
	assert.Equal(t, []string{"bob"}, calls)

	entries, err := jnl.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
