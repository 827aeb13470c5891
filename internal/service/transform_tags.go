package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-pacs-sync/models"
)

// FieldParentSeriesID links a dose report to the series it was found in.
const FieldParentSeriesID = "ParentSeriesID"

// DoseDefaults returns a [Transform] making sure every "/"-separated field
// path exists in a tag record. Absent fields are set to def; present ones
// are left alone. When a path crosses a promoted list, every record in the
// list is filled.
func DoseDefaults(fields []string, def float64) Transform {
	paths := make([][]string, 0, len(fields))
	for _, f := range fields {
		if p := strings.Split(strings.Trim(f, "/"), "/"); len(p) > 0 && p[0] != "" {
			paths = append(paths, p)
		}
	}

	return func(_ context.Context, item models.Item) (models.Item, error) {
		if item.Kind != models.KindTags {
			return item, fmt.Errorf("%w: dose defaults need %q, got %q", ErrUnsupportedKind, models.KindTags, item.Kind)
		}

		rec := item.Tags.Clone()
		if rec == nil {
			rec = models.Record{}
		}
		for _, p := range paths {
			fillDefault(rec, p, def)
		}
		item.Tags = rec
		return item, nil
	}
}

func fillDefault(rec models.Record, path []string, def float64) {
	key := path[0]
	if len(path) == 1 {
		if _, ok := rec[key]; !ok {
			rec[key] = def
		}
		return
	}

	switch next := rec[key].(type) {
	case nil:
		child := models.Record{}
		rec[key] = child
		fillDefault(child, path[1:], def)
	case models.Record:
		fillDefault(next, path[1:], def)
	case models.List:
		for _, v := range next {
			if child, ok := v.(models.Record); ok {
				fillDefault(child, path[1:], def)
			}
		}
	}
}

// ParentRef returns a [Transform] stamping the copied item's ID into field.
// Sources that fetch a child on behalf of a parent keep the parent's ID on
// the item, so the stamp links the child back to it.
func ParentRef(field string) Transform {
	return func(_ context.Context, item models.Item) (models.Item, error) {
		if item.Kind != models.KindTags {
			return item, fmt.Errorf("%w: parent reference needs %q, got %q", ErrUnsupportedKind, models.KindTags, item.Kind)
		}

		rec := item.Tags.Clone()
		if rec == nil {
			rec = models.Record{}
		}
		rec[field] = string(item.ID)
		item.Tags = rec
		return item, nil
	}
}
