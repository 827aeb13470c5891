package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-pacs-sync/internal/logger"
)

type syncJob struct {
	runner    Runner
	workflows []string

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewSyncJob creates a syncJob that runs workflows, in order, on a ticker.
// The job is idle until Start is called.
func NewSyncJob(runner Runner, workflows []string, logger *logger.Logger) SyncJob {
	return &syncJob{
		runner:    runner,
		workflows: workflows,
		logger:    logger,
	}
}

// Start implements SyncJob. It stops any previously running job, then
// launches a background goroutine that runs one round right away and then
// every interval. If interval is zero or negative it defaults to 5 minutes.
// The goroutine exits when ctx is cancelled or Stop is called.
func (j *syncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		j.round(jobCtx)
		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.round(jobCtx)
			}
		}
	}()
}

// round runs every workflow once. A failed workflow does not stop the
// round; it is retried on the next tick.
func (j *syncJob) round(ctx context.Context) {
	for _, name := range j.workflows {
		if ctx.Err() != nil {
			return
		}
		if _, err := j.runner.RunWorkflow(ctx, name); err != nil && !errors.Is(err, context.Canceled) {
			j.logger.Err(err).
				Str("func", "syncJob.round").
				Str("workflow", name).
				Msg("scheduled workflow failed")
		}
	}
}

// Stop implements SyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is not
// running (no-op in that case).
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
