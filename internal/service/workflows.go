// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pacs-sync/internal/logger"
	"github.com/MKhiriev/go-pacs-sync/internal/store"
	"github.com/MKhiriev/go-pacs-sync/models"
)

// Workflow names.
const (
	WorkflowReplicate            = "replicate"
	WorkflowSeriesSync           = "series-sync"
	WorkflowConditionalReplicate = "conditional-replicate"
	WorkflowDoseReports          = "dose-reports"
	WorkflowRemoteIndex          = "remote-index"
	WorkflowPatientDimensions    = "patient-dims"
)

// copyWorkflow copies whatever the destination is missing from the source.
type copyWorkflow struct {
	name string
	src  store.Source
	dest store.Destination
	kind models.ItemKind

	// candidates selects the items to consider; nil lists the source.
	candidates func(ctx context.Context) ([]models.ItemID, error)

	copier *Copier
}

// FilePipeline is applied to raw instance copies. DestinationID must be
// set when a transform changes the id an instance gets in the destination.
type FilePipeline struct {
	Transforms    []Transform
	DestinationID IDMapper
}

func (p FilePipeline) copier(workflow string) *Copier {
	return NewCopier(workflow, p.Transforms...).WithDestinationIDs(p.DestinationID)
}

// NewReplicateWorkflow copies raw instance payloads between two archives.
// src and dest are expected at the instances level.
func NewReplicateWorkflow(src store.Source, dest store.Destination, pipeline FilePipeline) Workflow {
	return &copyWorkflow{
		name:   WorkflowReplicate,
		src:    src,
		dest:   dest,
		kind:   models.KindFile,
		copier: pipeline.copier(WorkflowReplicate),
	}
}

// NewSeriesSyncWorkflow pushes the flattened tags of every series of src
// that dest does not hold yet.
func NewSeriesSyncWorkflow(src store.Source, dest store.Destination) Workflow {
	return &copyWorkflow{
		name:   WorkflowSeriesSync,
		src:    src,
		dest:   dest,
		kind:   models.KindTags,
		copier: NewCopier(WorkflowSeriesSync),
	}
}

// NewConditionalReplicateWorkflow replicates the instances selected by an
// index query. The query must return instance IDs.
func NewConditionalReplicateWorkflow(index store.Lister, query string, src store.Source, dest store.Destination, pipeline FilePipeline) Workflow {
	return &copyWorkflow{
		name: WorkflowConditionalReplicate,
		src:  src,
		dest: dest,
		kind: models.KindFile,
		candidates: func(ctx context.Context) ([]models.ItemID, error) {
			if query == "" {
				return nil, ErrEmptyQuery
			}
			return index.ListItems(ctx, query)
		},
		copier: pipeline.copier(WorkflowConditionalReplicate),
	}
}

func (w *copyWorkflow) Name() string {
	return w.name
}

func (w *copyWorkflow) Run(ctx context.Context) (Report, error) {
	var candidates []models.ItemID
	if w.candidates != nil {
		ids, err := w.candidates(ctx)
		if err != nil {
			return Report{}, fmt.Errorf("select candidates: %w", err)
		}
		// an empty selection must not fall back to listing the source
		candidates = append(make([]models.ItemID, 0, len(ids)), ids...)
	}

	logger.FromContext(ctx).Info().
		Str("func", "copyWorkflow.Run").
		Str("workflow", w.name).
		Str("kind", string(w.kind)).
		Msg("starting copy")

	return w.copier.CopyNewItems(ctx, w.src, w.dest, candidates, w.kind)
}
