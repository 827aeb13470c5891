package app

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pacs-sync/internal/config"
	"github.com/MKhiriev/go-pacs-sync/internal/handler"
	"github.com/MKhiriev/go-pacs-sync/internal/logger"
	"github.com/MKhiriev/go-pacs-sync/internal/server"
	"github.com/MKhiriev/go-pacs-sync/internal/service"
	"github.com/MKhiriev/go-pacs-sync/internal/store"
	"github.com/MKhiriev/go-pacs-sync/internal/workers"
	"github.com/MKhiriev/go-pacs-sync/models"
)

type App struct {
	cfg      *config.StructuredConfig
	storages *store.Storages
	services *service.Services

	logger *logger.Logger
}

func NewApp(ctx context.Context, cfg *config.StructuredConfig, build models.AppBuildInfo, log *logger.Logger) (*App, error) {
	endpoints, err := NewEndpoints(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("create endpoints: %w", err)
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create storages: %w", err)
	}

	services, err := service.NewServices(cfg, endpoints, storages.RunRepository, build, log)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create services: %w", err)
	}

	return &App{
		cfg:      cfg,
		storages: storages,
		services: services,
		logger:   log,
	}, nil
}

// RunWorkflow runs the named workflow once and logs its ledger entry. Item
// failures that did not abort the run surface as [ErrItemsFailed].
func (a *App) RunWorkflow(ctx context.Context, name string) error {
	run, err := a.services.Runner.RunWorkflow(ctx, name)
	if err != nil {
		return fmt.Errorf("workflow %s: %w", name, err)
	}

	a.logger.Info().
		Str("run_id", run.RunID).
		Str("workflow", run.Workflow).
		Int("candidates", run.Candidates).
		Int("missing", run.Missing).
		Int("copied", run.Copied).
		Int("failed", run.Failed()).
		Dur("took", run.FinishedAt.Sub(run.StartedAt)).
		Msg("workflow finished")

	if run.Failed() > 0 {
		return fmt.Errorf("workflow %s: %w: %d of %d", name, ErrItemsFailed, run.Failed(), run.Missing)
	}
	return nil
}

// Serve runs the status API and the scheduled sync job until ctx is done or
// either of them stops.
func (a *App) Serve(ctx context.Context) error {
	handlers, err := handler.NewHandlers(a.services, a.cfg.Server, a.logger)
	if err != nil {
		return fmt.Errorf("create handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, a.cfg.Server, a.logger)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	workers.NewWorkers(
		srv,
		syncJobWorker(a.services.SyncJob, a.cfg.Workers.SyncInterval.D()),
	).Run(ctx)

	return nil
}

func (a *App) Close() error {
	return a.storages.Close()
}

func syncJobWorker(job service.SyncJob, interval time.Duration) workers.Worker {
	return workers.WorkerFunc(func(ctx context.Context) {
		job.Start(ctx, interval)
		<-ctx.Done()
		job.Stop()
	})
}
