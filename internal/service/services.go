package service

import (
	"fmt"

	"github.com/MKhiriev/go-pacs-sync/internal/config"
	"github.com/MKhiriev/go-pacs-sync/internal/logger"
	"github.com/MKhiriev/go-pacs-sync/internal/store"
	"github.com/MKhiriev/go-pacs-sync/internal/tags"
	"github.com/MKhiriev/go-pacs-sync/models"
)

// Endpoints holds the store handles workflows are built from. A nil handle
// disables every workflow that needs it.
type Endpoints struct {
	Source      *store.ArchiveStore
	Destination *store.ArchiveStore
	Index       *store.IndexStore
	Measurer    store.Measurer
}

type Services struct {
	Runner         Runner
	AppInfoService AppInfoService
	SyncJob        SyncJob
}

func NewServices(cfg *config.StructuredConfig, endpoints Endpoints, runs store.RunRepository, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	workflows, err := NewWorkflows(cfg, endpoints, logger)
	if err != nil {
		return nil, err
	}

	appInfo, err := NewAppInfoService(build, logger)
	if err != nil {
		return nil, err
	}

	runner := NewRunner(runs, logger, workflows...)
	return &Services{
		Runner:         runner,
		AppInfoService: appInfo,
		SyncJob:        NewSyncJob(runner, cfg.Workers.Workflows, logger),
	}, nil
}

// NewWorkflows builds every workflow the configured endpoints allow. Each
// workflow gets its own scoped store handles.
func NewWorkflows(cfg *config.StructuredConfig, ep Endpoints, log *logger.Logger) ([]Workflow, error) {
	var workflows []Workflow
	names := cfg.Index.Names

	var files FilePipeline
	if cfg.Transforms.Anonymize && ep.Source != nil {
		anonymizer, err := NewAnonymizer(ep.Source.AtLevel(models.LevelInstances), cfg.Transforms)
		if err != nil {
			return nil, fmt.Errorf("build anonymizer: %w", err)
		}
		files.Transforms = append(files.Transforms, anonymizer.Transform)
		files.DestinationID = anonymizer.DestinationID
	}

	if ep.Source != nil && ep.Destination != nil {
		workflows = append(workflows, NewReplicateWorkflow(
			ep.Source.AtLevel(models.LevelInstances),
			ep.Destination.Instances(),
			files,
		))
	}

	if ep.Source != nil && ep.Index != nil {
		series := ep.Source.AtLevel(models.LevelSeries)
		instances := ep.Source.AtLevel(models.LevelInstances)

		workflows = append(workflows,
			NewSeriesSyncWorkflow(series, ep.Index.WithIndex(names.Series)),
			NewDoseReportWorkflow(
				DoseReportOptions{
					SeriesIndex:   names.Series,
					DoseIndex:     names.Dose,
					SeriesNumbers: cfg.Workflows.DoseSeriesNumbers,
					DoseFields:    cfg.Transforms.DoseFields,
					DoseDefault:   cfg.Transforms.DoseDefault,
				},
				ep.Index.WithIndex(names.Series),
				ep.Index.WithIndex(names.Dose),
				series,
				instances,
			),
		)

		if cfg.Workflows.RemoteModality != "" {
			workflows = append(workflows, NewRemoteIndexWorkflow(
				ep.Source.AtLevel(models.LevelStudies),
				models.RemoteQuery{Modality: cfg.Workflows.RemoteModality, Query: cfg.Workflows.RemoteQuery},
				ep.Source.Host(),
				ep.Index.WithIndex(names.Studies),
				tags.NewFlattener(cfg.Location(), log),
			))
		}

		if ep.Measurer != nil {
			workflows = append(workflows, NewPatientDimensionsWorkflow(
				PatientDimensionsOptions{
					SeriesIndex:     names.Series,
					DimensionsIndex: names.Dimensions,
					Location:        cfg.Location(),
				},
				ep.Index.WithIndex(names.Series),
				ep.Index.WithIndex(names.Dimensions),
				series,
				instances,
				ep.Measurer,
			))
		}
	}

	if ep.Source != nil && ep.Destination != nil && ep.Index != nil {
		workflows = append(workflows, NewConditionalReplicateWorkflow(
			ep.Index,
			cfg.Workflows.Query,
			ep.Source.AtLevel(models.LevelInstances),
			ep.Destination.Instances(),
			files,
		))
	}

	return workflows, nil
}
