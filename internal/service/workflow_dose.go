package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-pacs-sync/internal/logger"
	"github.com/MKhiriev/go-pacs-sync/internal/store"
	"github.com/MKhiriev/go-pacs-sync/models"
)

// DoseReportOptions names the indexes and series numbers used by the dose
// report workflow.
type DoseReportOptions struct {
	SeriesIndex   string
	DoseIndex     string
	SeriesNumbers []string
	DoseFields    []string
	DoseDefault   float64
}

type doseReportWorkflow struct {
	opts DoseReportOptions

	seriesIndex store.Lister
	doseIndex   store.Destination
	source      *firstInstanceSource

	copier *Copier
}

// NewDoseReportWorkflow indexes the dose reports of the series whose number
// marks them as dose series and which have no report in the dose index
// yet. series and instances are archive handles at the series and instance
// levels.
func NewDoseReportWorkflow(opts DoseReportOptions, seriesIndex store.Lister, doseIndex store.Destination, series store.Getter, instances Fetcher) Workflow {
	return &doseReportWorkflow{
		opts:        opts,
		seriesIndex: seriesIndex,
		doseIndex:   doseIndex,
		source:      &firstInstanceSource{series: series, instances: instances},
		copier: NewCopier(WorkflowDoseReports,
			ParentRef(FieldParentSeriesID),
			DoseDefaults(opts.DoseFields, opts.DoseDefault),
		),
	}
}

// DoseCandidatesQuery lists the series of index whose SeriesNumber is one
// of numbers.
func DoseCandidatesQuery(index string, numbers []string) string {
	terms := make([]string, len(numbers))
	for i, n := range numbers {
		terms[i] = "SeriesNumber = " + n
	}
	return fmt.Sprintf("search index=%s %s | table ID", index, strings.Join(terms, " OR "))
}

// CapturedDoseQuery lists the parent series already reported in index.
func CapturedDoseQuery(index string) string {
	return fmt.Sprintf("search index=%s | table %s", index, FieldParentSeriesID)
}

func (w *doseReportWorkflow) Name() string {
	return WorkflowDoseReports
}

func (w *doseReportWorkflow) Run(ctx context.Context) (Report, error) {
	log := logger.FromContext(ctx)

	candidates, err := w.seriesIndex.ListItems(ctx, DoseCandidatesQuery(w.opts.SeriesIndex, w.opts.SeriesNumbers))
	if err != nil {
		return Report{}, fmt.Errorf("list dose series: %w", err)
	}

	captured, err := listHeld(ctx, w.doseIndex, CapturedDoseQuery(w.opts.DoseIndex), "doseReportWorkflow.Run")
	if err != nil {
		return Report{Candidates: len(candidates)}, err
	}

	missing := SetDiff(candidates, captured)
	log.Debug().
		Str("func", "doseReportWorkflow.Run").
		Any("candidates", candidates).
		Any("new", missing).
		Int("captured", len(captured)).
		Msg("computed missing dose reports")

	report, err := w.copier.CopyItems(ctx, w.source, w.doseIndex, missing, models.KindTags)
	report.Candidates = len(candidates)
	return report, err
}
