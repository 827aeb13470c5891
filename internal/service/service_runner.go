// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-pacs-sync/internal/logger"
	"github.com/MKhiriev/go-pacs-sync/internal/metrics"
	"github.com/MKhiriev/go-pacs-sync/internal/store"
	"github.com/MKhiriev/go-pacs-sync/internal/utils"
	"github.com/MKhiriev/go-pacs-sync/models"
)

type runner struct {
	workflows map[string]Workflow
	order     []string
	runs      store.RunRepository
	ids       *utils.UUIDGenerator

	mu      sync.Mutex
	running map[string]struct{}

	logger *logger.Logger
}

// NewRunner registers workflows by name. A workflow never runs twice at the
// same time; every finished run is written to runs.
func NewRunner(runs store.RunRepository, log *logger.Logger, workflows ...Workflow) Runner {
	r := &runner{
		workflows: make(map[string]Workflow, len(workflows)),
		runs:      runs,
		ids:       utils.NewUUIDGenerator(),
		running:   make(map[string]struct{}),
		logger:    log,
	}
	for _, w := range workflows {
		if _, dup := r.workflows[w.Name()]; !dup {
			r.order = append(r.order, w.Name())
		}
		r.workflows[w.Name()] = w
	}
	return r
}

func (r *runner) Workflows() []string {
	return append([]string(nil), r.order...)
}

func (r *runner) RunWorkflow(ctx context.Context, name string) (models.SyncRun, error) {
	w, ok := r.workflows[name]
	if !ok {
		return models.SyncRun{}, fmt.Errorf("%w: %q", ErrUnknownWorkflow, name)
	}

	if !r.acquire(name) {
		return models.SyncRun{}, fmt.Errorf("%w: %q", ErrWorkflowRunning, name)
	}
	defer r.release(name)

	run := models.SyncRun{
		RunID:     r.ids.Generate(),
		Workflow:  name,
		StartedAt: time.Now().UTC(),
	}

	log := r.logger.WithFields("run_id", run.RunID, "workflow", name)
	ctx = log.WithContext(utils.WithRunID(ctx, run.RunID))

	log.Info().Str("func", "runner.RunWorkflow").Msg("workflow started")

	report, err := w.Run(ctx)
	report.applyTo(&run)
	run.FinishedAt = time.Now().UTC()

	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = metrics.OutcomeError
		run.Error = err.Error()
		log.Err(err).Str("func", "runner.RunWorkflow").Msg("workflow aborted")
	}
	metrics.Runs.WithLabelValues(name, outcome).Inc()
	metrics.RunSeconds.WithLabelValues(name).Add(run.FinishedAt.Sub(run.StartedAt).Seconds())

	// a cancelled run is still recorded
	if saveErr := r.runs.SaveRun(context.WithoutCancel(ctx), run); saveErr != nil {
		log.Err(saveErr).Str("func", "runner.RunWorkflow").Msg("failed to record run")
	}

	log.Info().
		Str("func", "runner.RunWorkflow").
		Int("candidates", run.Candidates).
		Int("missing", run.Missing).
		Int("copied", run.Copied).
		Int("failed", run.Failed()).
		Dur("duration", run.FinishedAt.Sub(run.StartedAt)).
		Msg("workflow finished")

	return run, err
}

func (r *runner) RecentRuns(ctx context.Context, limit int) ([]models.SyncRun, error) {
	return r.runs.RecentRuns(ctx, limit)
}

func (r *runner) acquire(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.running[name]; busy {
		return false
	}
	r.running[name] = struct{}{}
	return true
}

func (r *runner) release(name string) {
	r.mu.Lock()
	delete(r.running, name)
	r.mu.Unlock()
}
