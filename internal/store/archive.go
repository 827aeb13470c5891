// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-pacs-sync/internal/adapter"
	"github.com/MKhiriev/go-pacs-sync/internal/logger"
	"github.com/MKhiriev/go-pacs-sync/internal/tags"
	"github.com/MKhiriev/go-pacs-sync/models"
)

// FieldID is the record field carrying the identifier of the item a record
// was built from.
const FieldID = "ID"

// ArchiveStore is a direct store over the archive REST API, scoped to one
// resource level. A handle never changes scope: [ArchiveStore.AtLevel]
// returns a new handle sharing the same transport.
type ArchiveStore struct {
	transport adapter.Transport
	level     models.Level
	flattener *tags.Flattener

	logger *logger.Logger
}

// NewArchiveStore returns a handle scoped to level.
func NewArchiveStore(transport adapter.Transport, level models.Level, flattener *tags.Flattener, log *logger.Logger) *ArchiveStore {
	return &ArchiveStore{
		transport: transport,
		level:     level,
		flattener: flattener,
		logger:    log,
	}
}

// AtLevel returns a handle on the same archive scoped to level.
func (s *ArchiveStore) AtLevel(level models.Level) *ArchiveStore {
	c := *s
	c.level = level
	return &c
}

// Level returns the scope of the handle.
func (s *ArchiveStore) Level() models.Level {
	return s.level
}

// Host implements [Source].
func (s *ArchiveStore) Host() string {
	return s.transport.Host()
}

// Instances returns the writable instance-level handle of the archive.
func (s *ArchiveStore) Instances() *ArchiveInstanceStore {
	return &ArchiveInstanceStore{ArchiveStore: s.AtLevel(models.LevelInstances)}
}

// ListItems implements [Lister]. The archive cannot filter, so a non-empty
// condition yields [ErrUnsupportedOperation].
func (s *ArchiveStore) ListItems(ctx context.Context, condition string) ([]models.ItemID, error) {
	if condition != "" {
		return nil, fmt.Errorf("%w: archive listing does not accept a condition", ErrUnsupportedOperation)
	}

	resp, err := s.transport.Get(ctx, "/"+string(s.level), nil)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.level, err)
	}
	if err = resp.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", s.level, err)
	}

	ids, ok := resp.Strings()
	if !ok {
		return nil, fmt.Errorf("list %s: %w: expected an array of identifiers", s.level, ErrUnexpectedResponse)
	}

	s.logger.Info().
		Str("func", "ArchiveStore.ListItems").
		Str("host", s.Host()).
		Int("count", len(ids)).
		Msgf("found %d candidate %s", len(ids), s.level)

	out := make([]models.ItemID, len(ids))
	for i, id := range ids {
		out[i] = models.ItemID(id)
	}
	return out, nil
}

// GetItem implements [Getter].
//
// KindTags reads the simplified tags (shared tags above instance level) and
// runs them through the flattener; the record gets an "ID" field set to id.
// KindInfo returns the archive's summary document and KindFile the raw
// payload.
func (s *ArchiveStore) GetItem(ctx context.Context, id models.ItemID, kind models.ItemKind) (models.Item, error) {
	base := "/" + string(s.level) + "/" + string(id)
	item := models.Item{ID: id, Kind: kind}

	switch kind {
	case models.KindTags:
		path := base + "/shared-tags"
		if s.level == models.LevelInstances {
			path = base + "/tags"
		}
		doc, err := s.getObject(ctx, id, path, map[string]string{"simplify": ""})
		if err != nil {
			return models.Item{}, err
		}
		rec, err := s.flattener.Simplify(doc)
		if err != nil {
			return models.Item{}, fmt.Errorf("simplify tags of %s: %w", id, err)
		}
		rec[FieldID] = string(id)
		item.Tags = rec

	case models.KindInfo:
		info, err := s.getObject(ctx, id, base, nil)
		if err != nil {
			return models.Item{}, err
		}
		item.Info = info

	case models.KindFile:
		resp, err := s.get(ctx, id, base+"/file", nil)
		if err != nil {
			return models.Item{}, err
		}
		item.Raw = resp.Raw

	default:
		return models.Item{}, fmt.Errorf("%w: item kind %q", ErrUnsupportedOperation, kind)
	}

	return item, nil
}

// Anonymize implements [InstanceAnonymizer].
func (s *ArchiveStore) Anonymize(ctx context.Context, id models.ItemID, req models.AnonymizeRequest) ([]byte, error) {
	resp, err := s.transport.Post(ctx, "/instances/"+string(id)+"/anonymize", req, nil)
	if err != nil {
		return nil, fmt.Errorf("anonymize %s: %w", id, err)
	}
	if err = s.mapStatus(id, resp); err != nil {
		return nil, fmt.Errorf("anonymize %s: %w", id, err)
	}
	return resp.Raw, nil
}

func (s *ArchiveStore) get(ctx context.Context, id models.ItemID, path string, params map[string]string) (*adapter.Response, error) {
	resp, err := s.transport.Get(ctx, path, params)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	if err = s.mapStatus(id, resp); err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	return resp, nil
}

func (s *ArchiveStore) getObject(ctx context.Context, id models.ItemID, path string, params map[string]string) (map[string]any, error) {
	resp, err := s.get(ctx, id, path, params)
	if err != nil {
		return nil, err
	}
	obj, ok := resp.Object()
	if !ok {
		return nil, fmt.Errorf("get %s: %w: expected a JSON object", path, ErrUnexpectedResponse)
	}
	return obj, nil
}

// mapStatus turns a 404 into [ErrNotFound] and any other non-2xx status
// into the adapter's sentinel for it.
func (s *ArchiveStore) mapStatus(id models.ItemID, resp *adapter.Response) error {
	err := resp.Err()
	if err == nil {
		return nil
	}
	if resp.Status == http.StatusNotFound || errors.Is(err, adapter.ErrNotFound) {
		return fmt.Errorf("%w: %s %s", ErrNotFound, s.level, id)
	}
	return err
}
