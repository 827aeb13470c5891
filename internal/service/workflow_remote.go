package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pacs-sync/internal/logger"
	"github.com/MKhiriev/go-pacs-sync/internal/store"
	"github.com/MKhiriev/go-pacs-sync/internal/tags"
	"github.com/MKhiriev/go-pacs-sync/internal/utils"
	"github.com/MKhiriev/go-pacs-sync/models"
)

type remoteIndexWorkflow struct {
	querier   store.RemoteQuerier
	query     models.RemoteQuery
	host      string
	index     store.Destination
	flattener *tags.Flattener

	copier *Copier
}

// NewRemoteIndexWorkflow indexes the answers of a remote modality query
// relayed by the archive at host. Answers are keyed by [AnswerID].
func NewRemoteIndexWorkflow(querier store.RemoteQuerier, query models.RemoteQuery, host string, index store.Destination, flattener *tags.Flattener) Workflow {
	return &remoteIndexWorkflow{
		querier:   querier,
		query:     query,
		host:      host,
		index:     index,
		flattener: flattener,
		copier:    NewCopier(WorkflowRemoteIndex),
	}
}

// AnswerID derives the stable ID of a remote answer from its patient and
// study identifiers. ok is false when either is missing.
func AnswerID(a models.RemoteAnswer) (models.ItemID, bool) {
	if a.PatientID == "" || a.StudyInstanceUID == "" {
		return "", false
	}
	return models.ItemID(utils.SyntheticID(a.PatientID, a.StudyInstanceUID)), true
}

func (w *remoteIndexWorkflow) Name() string {
	return WorkflowRemoteIndex
}

func (w *remoteIndexWorkflow) Run(ctx context.Context) (Report, error) {
	log := logger.FromContext(ctx)

	answers, err := w.querier.QueryRemote(ctx, w.query)
	if err != nil {
		return Report{}, fmt.Errorf("query remote modality: %w", err)
	}

	src := &answerSource{
		answers:   make(map[models.ItemID]models.RemoteAnswer, len(answers)),
		flattener: w.flattener,
		host:      w.host,
	}
	ids := make([]models.ItemID, 0, len(answers))
	for _, a := range answers {
		id, ok := AnswerID(a)
		if !ok {
			log.Warn().
				Str("func", "remoteIndexWorkflow.Run").
				Str("patient_id", a.PatientID).
				Str("study_uid", a.StudyInstanceUID).
				Msg("skipping answer without patient or study identifier")
			continue
		}
		if _, dup := src.answers[id]; !dup {
			src.answers[id] = a
			ids = append(ids, id)
		}
	}

	existing, err := listHeld(ctx, w.index, "", "remoteIndexWorkflow.Run")
	if err != nil {
		return Report{Candidates: len(ids)}, err
	}

	report, err := w.copier.CopyItems(ctx, src, w.index, SetDiff(ids, existing), models.KindTags)
	report.Candidates = len(ids)
	return report, err
}
