package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-pacs-sync/internal/logger"
	"github.com/MKhiriev/go-pacs-sync/internal/store"
	"github.com/MKhiriev/go-pacs-sync/models"
)

// PatientDimensionsOptions names the indexes used by the patient
// dimensions workflow.
type PatientDimensionsOptions struct {
	SeriesIndex     string
	DimensionsIndex string
	Location        *time.Location
}

type patientDimensionsWorkflow struct {
	opts PatientDimensionsOptions

	seriesIndex store.Lister
	dimsIndex   store.Adder
	series      store.Getter
	source      *measuredSource

	copier *Copier
}

// NewPatientDimensionsWorkflow measures every instance of the CT localizer
// series that have no dimensions indexed yet and pushes the measurements to
// the dimensions index.
func NewPatientDimensionsWorkflow(opts PatientDimensionsOptions, seriesIndex store.Lister, dimsIndex store.Adder, series store.Getter, instances Fetcher, measurer store.Measurer) Workflow {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	return &patientDimensionsWorkflow{
		opts:        opts,
		seriesIndex: seriesIndex,
		dimsIndex:   dimsIndex,
		series:      series,
		source: &measuredSource{
			instances: instances,
			measurer:  measurer,
			now:       func() time.Time { return time.Now().In(loc) },
		},
		copier: NewCopier(WorkflowPatientDimensions),
	}
}

// UnsizedLocalizersQuery lists the CT localizer series of seriesIndex that
// have no AP dimension in dimsIndex.
func UnsizedLocalizersQuery(seriesIndex, dimsIndex string) string {
	return fmt.Sprintf(`search index=%s Modality=CT ImageType="*LOCALIZER*" `+
		`| table AccessionNumber SeriesNumber ID `+
		`| join type=left [search index=%s | table AccessionNumber AP_dim Lat_dim ] `+
		`| where isnull(AP_dim) | fields - AccessionNumber SeriesNumber AP_dim`,
		seriesIndex, dimsIndex)
}

func (w *patientDimensionsWorkflow) Name() string {
	return WorkflowPatientDimensions
}

func (w *patientDimensionsWorkflow) Run(ctx context.Context) (Report, error) {
	log := logger.FromContext(ctx)

	rows, err := w.seriesIndex.ListItems(ctx, UnsizedLocalizersQuery(w.opts.SeriesIndex, w.opts.DimensionsIndex))
	if err != nil {
		return Report{}, fmt.Errorf("list unsized localizers: %w", err)
	}

	var (
		expanded Report
		ids      []models.ItemID
	)
	for _, row := range rows {
		// rows keep the trailing empty columns of the table
		first, _, _ := strings.Cut(string(row), ",")
		seriesID := models.ItemID(strings.TrimSpace(first))
		if seriesID == "" {
			continue
		}

		instances, err := seriesInstances(ctx, w.series, seriesID)
		if err != nil {
			if ctx.Err() != nil {
				return expanded, ctx.Err()
			}
			log.Warn().Err(err).
				Str("func", "patientDimensionsWorkflow.Run").
				Str("item_id", string(seriesID)).
				Msg("failed to list localizer instances")
			expanded.Fail(seriesID, err)
			continue
		}
		ids = append(ids, instances...)
	}

	report, err := w.copier.CopyItems(ctx, w.source, w.dimsIndex, ids, models.KindTags)
	report.Candidates = len(rows)
	report.Failures = append(expanded.Failures, report.Failures...)
	return report, err
}
