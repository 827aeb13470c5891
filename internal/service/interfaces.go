// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pacs-sync/internal/store"
	"github.com/MKhiriev/go-pacs-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=Workflow,Fetcher

// Workflow is one orchestration over the item stores. Run reports what it
// found and copied; a returned error means the run was aborted.
type Workflow interface {
	Name() string
	Run(ctx context.Context) (Report, error)
}

// Fetcher is the read side of a copy: anything items can be fetched from.
type Fetcher interface {
	store.Getter
	// Host returns the "host:port" recorded as provenance.
	Host() string
}

// Runner executes named workflows and records every run in the ledger.
type Runner interface {
	RunWorkflow(ctx context.Context, name string) (models.SyncRun, error)
	Workflows() []string
	RecentRuns(ctx context.Context, limit int) ([]models.SyncRun, error)
}

// SyncJob runs a fixed list of workflows on a ticker.
type SyncJob interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
