// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-pacs-sync/internal/adapter"
	"github.com/MKhiriev/go-pacs-sync/internal/logger"
	"github.com/MKhiriev/go-pacs-sync/internal/search"
	"github.com/MKhiriev/go-pacs-sync/internal/tags"
	"github.com/MKhiriev/go-pacs-sync/models"
)

const collectorEventPath = "services/collector/event"

// IndexStore is an indexed store over the search index, scoped to one index
// name. Listing runs a search job; adding pushes an event through the event
// collector, which uses its own credentials.
type IndexStore struct {
	searcher  search.Searcher
	collector adapter.Transport
	index     string

	logger *logger.Logger
}

// NewIndexStore returns a handle scoped to index. collector may be nil, in
// which case the handle is read-only.
func NewIndexStore(searcher search.Searcher, collector adapter.Transport, index string, log *logger.Logger) *IndexStore {
	return &IndexStore{
		searcher:  searcher,
		collector: collector,
		index:     index,
		logger:    log,
	}
}

// WithIndex returns a handle on the same index service scoped to index.
func (s *IndexStore) WithIndex(index string) *IndexStore {
	c := *s
	c.index = index
	return &c
}

// Index returns the scope of the handle.
func (s *IndexStore) Index() string {
	return s.index
}

// DefaultListQuery returns the query listing every distinct ID of index.
func DefaultListQuery(index string) string {
	return fmt.Sprintf("search index=%s | spath ID | dedup ID | table ID", index)
}

// ListItems implements [Lister]. condition is a complete search query; when
// empty, every distinct ID of the scoped index is listed.
func (s *IndexStore) ListItems(ctx context.Context, condition string) ([]models.ItemID, error) {
	if condition == "" {
		condition = DefaultListQuery(s.index)
	}

	rows, err := s.searcher.Run(ctx, condition)
	if err != nil {
		return nil, fmt.Errorf("list index %s: %w", s.index, err)
	}

	out := make([]models.ItemID, 0, len(rows))
	for _, row := range rows {
		if row = strings.TrimSpace(row); row != "" {
			out = append(out, models.ItemID(row))
		}
	}

	s.logger.Info().
		Str("func", "IndexStore.ListItems").
		Str("index", s.index).
		Int("count", len(out)).
		Msg("index listing done")

	return out, nil
}

// AddItem implements [Adder]. The event time is the canonical timestamp of
// the record; a record without one is rejected with
// [tags.ErrMissingRequiredField].
func (s *IndexStore) AddItem(ctx context.Context, item models.Item, prov models.Provenance) error {
	if s.collector == nil {
		return fmt.Errorf("%w: index handle %s has no event collector", ErrUnsupportedOperation, s.index)
	}
	if item.Tags == nil {
		return fmt.Errorf("%w: index accepts tag records only, got %q", ErrUnsupportedOperation, item.Kind)
	}

	at, err := tags.CanonicalTime(item.Tags)
	if err != nil {
		return fmt.Errorf("index event for %s: %w", item.ID, err)
	}

	event := models.IndexEvent{
		Time:       float64(at.UnixNano()) / 1e9,
		Host:       prov.Host,
		SourceType: models.SourceTypeJSON,
		Index:      s.index,
		Event:      item.Tags,
	}

	resp, err := s.collector.Post(ctx, collectorEventPath, event, nil)
	if err != nil {
		return fmt.Errorf("push event %s: %w", item.ID, err)
	}
	if err = resp.Err(); err != nil {
		return fmt.Errorf("push event %s: %w", item.ID, err)
	}

	return nil
}
