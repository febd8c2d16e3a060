// Package submit is the driver between a game host and the remote score
// store: scores are enqueued with a callback, journaled until confirmed,
// and pushed by a worker pool. A submission that fails is left in the
// journal and replayed once on the next service start, never retried
// in-process.
package submit

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"scoresync/pkg/clock"
	"scoresync/pkg/journal"
	"scoresync/pkg/logger"
	"scoresync/pkg/metrics"
	"scoresync/pkg/record"
	"scoresync/pkg/worker"

	"go.uber.org/zap"
)

// Service coordinates the journal and the submission pool
type Service struct {
	logger  *logger.Logger
	journal journal.Journal
	pool    *worker.Pool
	stamper *clock.Stamper
	seq     atomic.Uint64
}

// NewService creates a new submit service instance
func NewService(l *logger.Logger, j journal.Journal, p *worker.Pool, stamper *clock.Stamper) *Service {
	return &Service{
		logger:  l,
		journal: j,
		pool:    p,
		stamper: stamper,
	}
}

// Start launches the pool and replays journaled submissions left over
// from a previous run
func (s *Service) Start(ctx context.Context) error {
	s.logger.Info("starting submit service")
	s.pool.Start(ctx)

	entries, err := s.journal.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load journal: %w", err)
	}
	for _, e := range entries {
		metrics.SubmitReplayedTotal.Inc()
		s.logger.Info("replaying journaled submission",
			zap.String("player", e.PlayerName), zap.Int("score", e.Score))
		if err := s.dispatch(ctx, e, nil); err != nil {
			return err
		}
	}
	return nil
}

// Enqueue journals a submission and hands it to the pool. The callback
// fires exactly once with the confirmed record or the failure.
func (s *Service) Enqueue(ctx context.Context, name string, score int, cb worker.Callback) error {
	e := journal.Entry{
		ID:         s.nextID(),
		PlayerName: name,
		Score:      score,
		QueuedAt:   s.stamper.Now(),
	}
	if err := s.journal.Append(ctx, e); err != nil {
		return fmt.Errorf("failed to journal submission: %w", err)
	}
	metrics.SubmitEnqueuedTotal.Inc()
	return s.dispatch(ctx, e, cb)
}

// dispatch submits the entry with a callback that clears the journal
// entry once the store confirms it. A failed submission keeps its entry.
func (s *Service) dispatch(ctx context.Context, e journal.Entry, cb worker.Callback) error {
	return s.pool.Submit(ctx, worker.Job{
		Entry: e,
		Callback: func(rec *record.ScoreRecord, err error) {
			if err == nil {
				if rmErr := s.journal.Remove(context.Background(), e.ID); rmErr != nil {
					s.logger.Error("failed to clear journal entry", rmErr, zap.String("entry_id", e.ID))
				}
			}
			if cb != nil {
				cb(rec, err)
			}
		},
	})
}

// Stop drains the pool and closes the journal
func (s *Service) Stop(ctx context.Context) error {
	s.logger.Info("stopping submit service")

	errs := []error{}
	if err := s.pool.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to shut down pool: %w", err))
	}
	if err := s.journal.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close journal: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}
	return nil
}

func (s *Service) nextID() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), s.seq.Add(1))
}
