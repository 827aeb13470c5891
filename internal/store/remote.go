package store

import (
	"context"
	"fmt"
	"net/url"

	"github.com/MKhiriev/go-pacs-sync/models"
)

// QueryRemote implements [RemoteQuerier]. The archive relays the query to
// the remote modality aliased q.Modality, then every answer is read back
// with simplified tags.
func (s *ArchiveStore) QueryRemote(ctx context.Context, q models.RemoteQuery) ([]models.RemoteAnswer, error) {
	if q.Level == "" {
		q.Level = "Study"
	}

	resp, err := s.transport.Post(ctx, "/modalities/"+url.PathEscape(q.Modality)+"/query", q, nil)
	if err != nil {
		return nil, fmt.Errorf("remote query %s: %w", q.Modality, err)
	}
	if err = resp.Err(); err != nil {
		return nil, fmt.Errorf("remote query %s: %w", q.Modality, err)
	}

	obj, ok := resp.Object()
	if !ok {
		return nil, fmt.Errorf("remote query %s: %w: expected a JSON object", q.Modality, ErrUnexpectedResponse)
	}
	qid, _ := obj["ID"].(string)
	if qid == "" {
		return nil, fmt.Errorf("remote query %s: %w: missing query id", q.Modality, ErrUnexpectedResponse)
	}

	base := "/queries/" + qid + "/answers"
	resp, err = s.transport.Get(ctx, base, nil)
	if err != nil {
		return nil, fmt.Errorf("list answers of %s: %w", qid, err)
	}
	if err = resp.Err(); err != nil {
		return nil, fmt.Errorf("list answers of %s: %w", qid, err)
	}
	indexes, ok := resp.Strings()
	if !ok {
		return nil, fmt.Errorf("list answers of %s: %w", qid, ErrUnexpectedResponse)
	}

	answers := make([]models.RemoteAnswer, 0, len(indexes))
	for _, n := range indexes {
		content, err := s.getObject(ctx, models.ItemID(qid), base+"/"+n+"/content", map[string]string{"simplify": ""})
		if err != nil {
			return nil, err
		}

		a := models.RemoteAnswer{Tags: content}
		a.PatientID, _ = content["PatientID"].(string)
		a.StudyInstanceUID, _ = content["StudyInstanceUID"].(string)
		a.SeriesInstanceUID, _ = content["SeriesInstanceUID"].(string)
		answers = append(answers, a)
	}

	s.logger.Info().
		Str("func", "ArchiveStore.QueryRemote").
		Str("modality", q.Modality).
		Int("answers", len(answers)).
		Msg("remote query done")

	return answers, nil
}
