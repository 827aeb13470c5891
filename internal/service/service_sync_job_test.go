// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-pacs-sync/internal/logger"
	"github.com/MKhiriev/go-pacs-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyRunner считает вызовы RunWorkflow и запоминает порядок имён.
type spyRunner struct {
	calls atomic.Int64
	err   error

	mu    sync.Mutex
	names []string
}

func (s *spyRunner) RunWorkflow(_ context.Context, name string) (models.SyncRun, error) {
	s.calls.Add(1)
	s.mu.Lock()
	s.names = append(s.names, name)
	s.mu.Unlock()
	return models.SyncRun{Workflow: name}, s.err
}

func (s *spyRunner) Workflows() []string { return nil }

func (s *spyRunner) RecentRuns(context.Context, int) ([]models.SyncRun, error) { return nil, nil }

func (s *spyRunner) seen() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.names...)
}

// ── NewSyncJob ───────────────────────────────────────────────────────────────

func TestNewSyncJob_ReturnsInterface(t *testing.T) {
	job := NewSyncJob(&spyRunner{}, []string{"a"}, logger.Nop())
	require.NotNil(t, job)

	var _ SyncJob = job
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestSyncJob_Start_RunsEveryTick(t *testing.T) {
	spy := &spyRunner{}
	job := NewSyncJob(spy, []string{WorkflowSeriesSync}, logger.Nop())

	// первый раунд сразу, затем ~5 тиков за 55ms
	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "RunWorkflow должен быть вызван несколько раз, вызвано: %d", got)
}

func TestSyncJob_Round_RunsWorkflowsInOrder(t *testing.T) {
	spy := &spyRunner{}
	job := NewSyncJob(spy, []string{WorkflowSeriesSync, WorkflowDoseReports}, logger.Nop())

	job.Start(context.Background(), time.Hour)
	require.Eventually(t, func() bool { return spy.calls.Load() == 2 }, time.Second, 5*time.Millisecond)
	job.Stop()

	assert.Equal(t, []string{WorkflowSeriesSync, WorkflowDoseReports}, spy.seen())
}

func TestSyncJob_Stop_StopsGoroutine(t *testing.T) {
	spy := &spyRunner{}
	job := NewSyncJob(spy, []string{"a"}, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, callsAfterStop, spy.calls.Load(), "после Stop новых вызовов быть не должно")
}

func TestSyncJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	job := NewSyncJob(&spyRunner{}, nil, logger.Nop())

	assert.NotPanics(t, func() { job.Stop() })
}

func TestSyncJob_DoubleStop_NoPanic(t *testing.T) {
	job := NewSyncJob(&spyRunner{}, []string{"a"}, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	job.Stop()

	assert.NotPanics(t, func() { job.Stop() })
}

func TestSyncJob_Start_DefaultInterval(t *testing.T) {
	spy := &spyRunner{}
	job := NewSyncJob(spy, []string{"a"}, logger.Nop())

	// interval <= 0 → 5 минут: только стартовый раунд
	job.Start(context.Background(), 0)
	require.Eventually(t, func() bool { return spy.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	job.Stop()

	assert.Equal(t, int64(1), spy.calls.Load())
}

func TestSyncJob_Restart_StopsPrevious(t *testing.T) {
	spy := &spyRunner{}
	job := NewSyncJob(spy, []string{"a"}, logger.Nop())
	ctx := context.Background()

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	callsBefore := spy.calls.Load()
	assert.Greater(t, callsBefore, int64(0))

	// повторный Start внутри вызывает Stop()
	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	assert.Greater(t, spy.calls.Load(), callsBefore)
}

func TestSyncJob_ContextCancel_StopsJob(t *testing.T) {
	job := NewSyncJob(&spyRunner{}, []string{"a"}, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop завис после отмены контекста")
	}
}

func TestSyncJob_WorkflowError_DoesNotStopJob(t *testing.T) {
	spy := &spyRunner{err: assert.AnError}
	job := NewSyncJob(spy, []string{"a"}, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "несмотря на ошибки, раунды продолжаются: %d", got)
}
