package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pacs-sync/internal/store"
	"github.com/MKhiriev/go-pacs-sync/internal/tags"
	"github.com/MKhiriev/go-pacs-sync/models"
)

// seriesInstances returns the instance IDs listed in the info of series id.
func seriesInstances(ctx context.Context, series store.Getter, id models.ItemID) ([]models.ItemID, error) {
	info, err := series.GetItem(ctx, id, models.KindInfo)
	if err != nil {
		return nil, fmt.Errorf("series info %s: %w", id, err)
	}

	raw, _ := info.Info["Instances"].([]any)
	out := make([]models.ItemID, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, models.ItemID(s))
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoInstances, id)
	}
	return out, nil
}

// firstInstanceSource fetches, for a series ID, its first instance. The
// returned item keeps the series ID so that [ParentRef] can stamp it.
type firstInstanceSource struct {
	series    store.Getter
	instances Fetcher
}

func (s *firstInstanceSource) Host() string {
	return s.instances.Host()
}

func (s *firstInstanceSource) GetItem(ctx context.Context, id models.ItemID, kind models.ItemKind) (models.Item, error) {
	ids, err := seriesInstances(ctx, s.series, id)
	if err != nil {
		return models.Item{}, err
	}

	item, err := s.instances.GetItem(ctx, ids[0], kind)
	if err != nil {
		return models.Item{}, err
	}
	item.ID = id
	return item, nil
}

// answerSource serves remote query answers keyed by their synthetic ID.
type answerSource struct {
	answers   map[models.ItemID]models.RemoteAnswer
	flattener *tags.Flattener
	host      string
}

func (s *answerSource) Host() string {
	return s.host
}

func (s *answerSource) GetItem(_ context.Context, id models.ItemID, kind models.ItemKind) (models.Item, error) {
	if kind != models.KindTags {
		return models.Item{}, fmt.Errorf("%w: remote answers are tags only", store.ErrUnsupportedOperation)
	}
	a, ok := s.answers[id]
	if !ok {
		return models.Item{}, fmt.Errorf("%w: answer %s", store.ErrNotFound, id)
	}

	doc := make(map[string]any, len(a.Tags)+1)
	for k, v := range a.Tags {
		doc[k] = v
	}
	// answers often carry a date without a time
	if _, ok := doc[tags.FieldStudyDate]; ok {
		if _, ok := doc[tags.FieldStudyTime]; !ok {
			doc[tags.FieldStudyTime] = "000000"
		}
	}

	rec, err := s.flattener.Simplify(doc)
	if err != nil {
		return models.Item{}, err
	}
	rec[store.FieldID] = string(id)

	return models.Item{ID: id, Kind: models.KindTags, Tags: rec}, nil
}

// measuredSource measures instance payloads and serves the measurements as
// tag records stamped with the instance ID and the measuring time.
type measuredSource struct {
	instances Fetcher
	measurer  store.Measurer
	now       func() time.Time
}

func (s *measuredSource) Host() string {
	return s.instances.Host()
}

func (s *measuredSource) GetItem(ctx context.Context, id models.ItemID, kind models.ItemKind) (models.Item, error) {
	if kind != models.KindTags {
		return models.Item{}, fmt.Errorf("%w: measurements are tags only", store.ErrUnsupportedOperation)
	}

	file, err := s.instances.GetItem(ctx, id, models.KindFile)
	if err != nil {
		return models.Item{}, err
	}

	m, err := s.measurer.Measure(ctx, file.Raw)
	if err != nil {
		return models.Item{}, err
	}

	rec := make(models.Record, len(m)+2)
	for k, v := range m {
		rec[k] = v
	}
	rec[store.FieldID] = string(id)
	rec[tags.FieldCanonicalDateTime] = s.now()

	return models.Item{ID: id, Kind: models.KindTags, Tags: rec}, nil
}
