// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tags flattens archive tag documents into [models.Record] values
// suitable for a time-series index.
//
// Structured reports (SR) carry their payload as a tree of content items.
// [Flattener.SimplifyStructured] turns such a tree into nested records keyed
// by concept name, and [Flattener.Simplify] normalises a whole tag document:
// it nests the flattened report, parses the paired date/time fields and
// derives the canonical InstanceCreationDateTime used as the event time.
package tags

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-pacs-sync/internal/logger"
	"github.com/MKhiriev/go-pacs-sync/models"
)

// Field names read or produced by the flattener.
const (
	FieldConceptName       = "ConceptNameCodeSequence"
	FieldContentSequence   = "ContentSequence"
	FieldContentDate       = "ContentDate"
	FieldContentTime       = "ContentTime"
	FieldContentDateTime   = "ContentDateTime"
	FieldStudyDate         = "StudyDate"
	FieldStudyTime         = "StudyTime"
	FieldStudyDateTime     = "StudyDateTime"
	FieldSeriesDate        = "SeriesDate"
	FieldSeriesTime        = "SeriesTime"
	FieldSeriesDateTime    = "SeriesDateTime"
	FieldObservationDT     = "ObservationDateTime"
	FieldCreationDate      = "InstanceCreationDate"
	FieldCreationTime      = "InstanceCreationTime"
	FieldCanonicalDateTime = "InstanceCreationDateTime"
)

// Content item value types.
const (
	ValueText      = "TEXT"
	ValueNum       = "NUM"
	ValueUIDRef    = "UIDREF"
	ValueDateTime  = "DATETIME"
	ValueCode      = "CODE"
	ValueContainer = "CONTAINER"
)

// Flattener converts nested tag documents into flat records.
type Flattener struct {
	location *time.Location
	logger   *logger.Logger
}

// NewFlattener returns a Flattener parsing naive timestamps in loc (UTC when
// nil).
func NewFlattener(loc *time.Location, log *logger.Logger) *Flattener {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Flattener{location: loc, logger: log}
}

// SimplifyStructured flattens the ContentSequence of node. The second return
// value is false when a content item lacks a concept name or a value type; in
// that case the whole subtree is discarded.
func (f *Flattener) SimplifyStructured(node map[string]any) (models.Record, bool) {
	data := models.Record{}

	items, _ := node[FieldContentSequence].([]any)
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			f.logger.Debug().Msg("content item is not an object, aborting subtree")
			return nil, false
		}

		key, ok := codeMeaning(item, FieldConceptName)
		if !ok {
			f.logger.Debug().Msg("content item has no concept name, aborting subtree")
			return nil, false
		}
		valueType, ok := item["ValueType"].(string)
		if !ok {
			f.logger.Debug().Str("key", key).Msg("content item has no value type, aborting subtree")
			return nil, false
		}

		value, ok := f.contentValue(key, valueType, item)
		if !ok {
			continue
		}

		data.Put(key, value)
	}

	return data, true
}

func (f *Flattener) contentValue(key, valueType string, item map[string]any) (any, bool) {
	switch valueType {
	case ValueText:
		v, ok := item["TextValue"].(string)
		return v, ok
	case ValueNum:
		measured, ok := firstOf(item, "MeasuredValueSequence")
		if !ok {
			return nil, false
		}
		n, err := toFloat(measured["NumericValue"])
		if err != nil {
			f.logger.Debug().Err(err).Str("key", key).Msg("skipping unreadable numeric value")
			return nil, false
		}
		return n, true
	case ValueUIDRef:
		v, ok := item["UID"].(string)
		return v, ok
	case ValueDateTime:
		s, ok := item["DateTime"].(string)
		if !ok {
			return nil, false
		}
		t, err := ParseDateTime(s, f.location)
		if err != nil {
			f.logger.Debug().Err(err).Str("key", key).Msg("skipping unreadable date/time value")
			return nil, false
		}
		return t, true
	case ValueCode:
		return codeMeaning(item, "ConceptCodeSequence")
	case ValueContainer:
		nested, ok := f.SimplifyStructured(item)
		if !ok {
			return nil, false
		}
		return nested, true
	default:
		f.logger.Debug().Str("key", key).Str("value_type", valueType).Msg("unknown value type")
		return nil, false
	}
}

// Simplify normalises a full tag document. The input is not modified.
//
// A StudyDate/StudyTime pair is mandatory; without it Simplify returns
// [ErrMissingRequiredField]. InstanceCreationDateTime is always present in the
// result, falling back to the series and then the study timestamp.
func (f *Flattener) Simplify(doc map[string]any) (models.Record, error) {
	rec := convertRecord(doc)

	if key, ok := codeMeaning(doc, FieldConceptName); ok {
		if report, ok := f.SimplifyStructured(doc); ok {
			if t, ok := f.pairedDateTime(rec, FieldContentDate, FieldContentTime); ok {
				report[FieldContentDateTime] = t
			}

			for _, k := range []string{FieldConceptName, FieldContentSequence, FieldContentDate, FieldContentTime} {
				delete(rec, k)
			}
			rec[key] = report
		}
	}

	study, ok := f.pairedDateTime(rec, FieldStudyDate, FieldStudyTime)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequiredField, FieldStudyDateTime)
	}
	rec[FieldStudyDateTime] = study

	if t, ok := f.pairedDateTime(rec, FieldSeriesDate, FieldSeriesTime); ok {
		rec[FieldSeriesDateTime] = t
	}

	if s, ok := rec.Str(FieldObservationDT); ok {
		t, err := ParseDateTime(s, f.location)
		if err != nil {
			f.logger.Debug().Err(err).Msg("dropping unreadable ObservationDateTime")
			delete(rec, FieldObservationDT)
		} else {
			rec[FieldObservationDT] = t
		}
	}

	if t, ok := f.pairedDateTime(rec, FieldCreationDate, FieldCreationTime); ok {
		rec[FieldCanonicalDateTime] = t
	}

	if _, ok := rec[FieldCanonicalDateTime].(time.Time); !ok {
		if series, ok := rec[FieldSeriesDateTime]; ok {
			rec[FieldCanonicalDateTime] = series
		} else {
			rec[FieldCanonicalDateTime] = study
		}
	}

	return rec, nil
}

// CanonicalTime returns the canonical timestamp of a simplified record.
func CanonicalTime(rec models.Record) (time.Time, error) {
	t, ok := rec[FieldCanonicalDateTime].(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s", ErrMissingRequiredField, FieldCanonicalDateTime)
	}
	return t, nil
}

func (f *Flattener) pairedDateTime(rec models.Record, dateKey, timeKey string) (time.Time, bool) {
	d, ok := rec.Str(dateKey)
	if !ok {
		return time.Time{}, false
	}
	tm, ok := rec.Str(timeKey)
	if !ok {
		return time.Time{}, false
	}

	t, err := ParseDateTime(d+tm, f.location)
	if err != nil {
		f.logger.Debug().Err(err).Str("field", dateKey).Msg("unreadable date/time pair")
		return time.Time{}, false
	}
	return t, true
}

func codeMeaning(node map[string]any, seqKey string) (string, bool) {
	first, ok := firstOf(node, seqKey)
	if !ok {
		return "", false
	}
	s, ok := first["CodeMeaning"].(string)
	return s, ok
}

func firstOf(node map[string]any, seqKey string) (map[string]any, bool) {
	seq, ok := node[seqKey].([]any)
	if !ok || len(seq) == 0 {
		return nil, false
	}
	first, ok := seq[0].(map[string]any)
	return first, ok
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	default:
		return 0, fmt.Errorf("unsupported numeric value %T", v)
	}
}

func convertRecord(m map[string]any) models.Record {
	rec := make(models.Record, len(m))
	for k, v := range m {
		rec[k] = convertValue(v)
	}
	return rec
}

func convertValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return convertRecord(t)
	case []any:
		l := make(models.List, len(t))
		for i := range t {
			l[i] = convertValue(t[i])
		}
		return l
	default:
		return v
	}
}
