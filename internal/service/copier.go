// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pacs-sync/internal/logger"
	"github.com/MKhiriev/go-pacs-sync/internal/metrics"
	"github.com/MKhiriev/go-pacs-sync/internal/store"
	"github.com/MKhiriev/go-pacs-sync/models"
)

// Transform rewrites an item between fetch and push. Transforms run in the
// order they were given to the [Copier]; an error fails the item.
type Transform func(ctx context.Context, item models.Item) (models.Item, error)

// Report summarises one copy pass.
type Report struct {
	// Candidates is the number of items considered at the source.
	Candidates int
	// Missing is the number of candidates absent from the destination.
	Missing int

	Copied   []models.ItemID
	Failures []models.RunFailure
}

// Fail records a failed item.
func (r *Report) Fail(id models.ItemID, err error) {
	r.Failures = append(r.Failures, models.RunFailure{ItemID: id, Reason: err.Error()})
}

func (r Report) applyTo(run *models.SyncRun) {
	run.Candidates = r.Candidates
	run.Missing = r.Missing
	run.Copied = len(r.Copied)
	run.Failures = r.Failures
}

// IDMapper returns the id the copy of a source item will have once it is
// added to the destination.
type IDMapper func(ctx context.Context, id models.ItemID) (models.ItemID, error)

// Copier moves items between stores. It is stateless apart from its
// transform chain and may be shared by concurrent runs.
type Copier struct {
	workflow   string
	transforms []Transform
	destID     IDMapper
}

// NewCopier returns a Copier whose metrics are labelled with workflow.
func NewCopier(workflow string, transforms ...Transform) *Copier {
	return &Copier{
		workflow:   workflow,
		transforms: transforms,
	}
}

// WithDestinationIDs makes CopyNewItems compare candidates by the id their
// copy gets in the destination instead of by their source id. Needed when a
// transform changes the identity of the item, as anonymization does.
func (c *Copier) WithDestinationIDs(mapID IDMapper) *Copier {
	c.destID = mapID
	return c
}

// CopyNewItems copies the candidates that dest does not list yet. A nil
// candidates slice lists every item of src. Failing to list src is fatal;
// a dest that cannot be listed is treated as empty. Per-item failures end
// up in the report.
func (c *Copier) CopyNewItems(ctx context.Context, src store.Source, dest store.Destination, candidates []models.ItemID, kind models.ItemKind) (Report, error) {
	log := logger.FromContext(ctx)

	if candidates == nil {
		ids, err := src.ListItems(ctx, "")
		if err != nil {
			return Report{}, fmt.Errorf("list source items: %w", err)
		}
		candidates = ids
	}

	existing, err := listHeld(ctx, dest, "", "Copier.CopyNewItems")
	if err != nil {
		return Report{Candidates: len(candidates)}, err
	}

	missing := c.missing(ctx, candidates, existing)
	log.Debug().
		Str("func", "Copier.CopyNewItems").
		Any("candidates", candidates).
		Any("new", missing).
		Int("existing", len(existing)).
		Msg("computed new items")

	report, err := c.CopyItems(ctx, src, dest, missing, kind)
	report.Candidates = len(candidates)
	return report, err
}

// missing diffs candidates against existing, mapping candidates to their
// destination ids first when a mapper is set. A candidate that cannot be
// mapped counts as missing.
func (c *Copier) missing(ctx context.Context, candidates, existing []models.ItemID) []models.ItemID {
	if c.destID == nil || len(existing) == 0 {
		return SetDiff(candidates, existing)
	}

	held := make(map[models.ItemID]struct{}, len(existing))
	for _, id := range existing {
		held[id] = struct{}{}
	}

	var out []models.ItemID
	for _, id := range SetDiff(candidates, nil) {
		mapped, err := c.destID(ctx, id)
		if err != nil {
			logger.FromContext(ctx).Warn().Err(err).
				Str("func", "Copier.missing").
				Str("item_id", string(id)).
				Msg("cannot derive destination id, copying anyway")
			out = append(out, id)
			continue
		}
		if _, ok := held[mapped]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// CopyItems fetches every id from src in representation kind, runs the
// transform chain and adds the result to dest. A failing item is logged and
// recorded; the remaining items are still copied. The only error returned
// is the context's, once it is done.
func (c *Copier) CopyItems(ctx context.Context, src Fetcher, dest store.Adder, ids []models.ItemID, kind models.ItemKind) (Report, error) {
	log := logger.FromContext(ctx)
	report := Report{Candidates: len(ids), Missing: len(ids)}

	metrics.ItemsMissing.WithLabelValues(c.workflow).Set(float64(len(ids)))

	if len(ids) == 0 {
		log.Info().Str("func", "Copier.CopyItems").Msg("nothing to copy")
		return report, nil
	}

	host := src.Host()
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if err := c.copyOne(ctx, src, dest, id, kind, host); err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			log.Warn().Err(err).
				Str("func", "Copier.CopyItems").
				Str("item_id", string(id)).
				Msg("failed to copy item")
			report.Fail(id, err)
			metrics.ItemsFailed.WithLabelValues(c.workflow).Inc()
			continue
		}

		report.Copied = append(report.Copied, id)
		metrics.ItemsCopied.WithLabelValues(c.workflow).Inc()
	}

	log.Info().
		Str("func", "Copier.CopyItems").
		Int("copied", len(report.Copied)).
		Int("failed", len(report.Failures)).
		Msg("copy done")

	return report, nil
}

func (c *Copier) copyOne(ctx context.Context, src Fetcher, dest store.Adder, id models.ItemID, kind models.ItemKind, host string) error {
	item, err := src.GetItem(ctx, id, kind)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	prov := models.Provenance{Host: host, At: time.Now()}

	for _, transform := range c.transforms {
		if item, err = transform(ctx, item); err != nil {
			return fmt.Errorf("transform: %w", err)
		}
	}

	if err = dest.AddItem(ctx, item, prov); err != nil {
		return fmt.Errorf("push: %w", err)
	}
	return nil
}
