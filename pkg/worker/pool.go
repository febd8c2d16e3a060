package worker

import (
	"context"
	"sync"

	"scoresync/pkg/journal"
	"scoresync/pkg/logger"
	"scoresync/pkg/metrics"
	"scoresync/pkg/record"

	"go.uber.org/zap"
)

// Callback receives the outcome of one submission. The record is the
// canonical post-upsert record on success and nil on failure.
type Callback func(rec *record.ScoreRecord, err error)

// Job represents a unit of work for a worker
type Job struct {
	Entry    journal.Entry
	Callback Callback
}

// Upserter is the slice of the store client the pool needs
type Upserter interface {
	UpsertScore(ctx context.Context, name string, score int) (*record.ScoreRecord, error)
}

// Pool manages a collection of submission workers. Each job is one
// upsert attempt; a failed job is reported through its callback and
// never re-queued here.
type Pool struct {
	logger     *logger.Logger
	store      Upserter
	numWorkers int
	inputChan  chan Job
	wg         sync.WaitGroup
}

// NewPool creates a new Pool instance
func NewPool(l *logger.Logger, store Upserter, numWorkers, queueSize int) *Pool {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if queueSize <= 0 {
		queueSize = numWorkers * 2
	}
	return &Pool{
		logger:     l,
		store:      store,
		numWorkers: numWorkers,
		inputChan:  make(chan Job, queueSize),
	}
}

// Start initializes the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.runWorker(ctx, i)
	}
}

// Submit sends a job to the pool for processing
func (p *Pool) Submit(ctx context.Context, job Job) error {
	select {
	case p.inputChan <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) runWorker(ctx context.Context, id int) {
	defer p.wg.Done()

	p.logger.Debug("worker started", zap.Int("worker_id", id))

	for {
		select {
		case job, ok := <-p.inputChan:
			if !ok {
				return
			}
			p.process(ctx, job)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Pool) process(ctx context.Context, job Job) {
	rec, err := p.store.UpsertScore(ctx, job.Entry.PlayerName, job.Entry.Score)
	if err != nil {
		p.logger.Error("submission failed", err,
			zap.String("player", job.Entry.PlayerName),
			zap.Int("score", job.Entry.Score))
		metrics.SubmitFailedTotal.Inc()
	} else {
		metrics.SubmitConfirmedTotal.Inc()
	}
	if job.Callback != nil {
		job.Callback(rec, err)
	}
}

// Shutdown stops all workers and waits for them to finish
func (p *Pool) Shutdown(ctx context.Context) error {
	close(p.inputChan)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
