package service

import (
	"context"

	"github.com/MKhiriev/go-pacs-sync/internal/logger"
	"github.com/MKhiriev/go-pacs-sync/internal/store"
	"github.com/MKhiriev/go-pacs-sync/models"
)

// SetDiff returns the members of a that are not in b, in the order they
// first appear in a and without duplicates. When b is empty, a is returned
// deduplicated.
func SetDiff(a, b []models.ItemID) []models.ItemID {
	exclude := make(map[models.ItemID]struct{}, len(b))
	for _, id := range b {
		exclude[id] = struct{}{}
	}

	out := make([]models.ItemID, 0, len(a))
	for _, id := range a {
		if _, skip := exclude[id]; skip {
			continue
		}
		exclude[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// listHeld lists what dest already holds. A destination that cannot be
// listed is treated as empty, so every candidate gets copied; only the
// context's own error is returned.
func listHeld(ctx context.Context, dest store.Lister, condition, caller string) ([]models.ItemID, error) {
	held, err := dest.ListItems(ctx, condition)
	if err == nil {
		return held, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	logger.FromContext(ctx).Warn().Err(err).
		Str("func", caller).
		Msg("destination listing unavailable, assuming it holds nothing")
	return nil, nil
}
