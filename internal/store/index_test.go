package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-pacs-sync/internal/adapter"
	"github.com/MKhiriev/go-pacs-sync/internal/config"
	"github.com/MKhiriev/go-pacs-sync/internal/logger"
	"github.com/MKhiriev/go-pacs-sync/internal/mock"
	"github.com/MKhiriev/go-pacs-sync/internal/tags"
	"github.com/MKhiriev/go-pacs-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestCollector(t *testing.T, handler http.HandlerFunc) adapter.Transport {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tr, err := adapter.NewHTTPTransport(config.Endpoint{Address: srv.URL, Token: "hec-token"}, logger.Nop())
	require.NoError(t, err)
	return tr
}

// ── ListItems ─────────────────────────────────────────────────────────────────

func TestIndexStore_ListItems_DefaultQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	searcher := mock.NewMockSearcher(ctrl)
	searcher.EXPECT().
		Run(gomock.Any(), "search index=dicom_series | spath ID | dedup ID | table ID").
		Return([]string{"a", " b ", ""}, nil)

	s := NewIndexStore(searcher, nil, "dicom_series", logger.Nop())
	ids, err := s.ListItems(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, []models.ItemID{"a", "b"}, ids)
}

func TestIndexStore_ListItems_Condition(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := "search index=dose_reports | table ParentSeriesID"
	searcher := mock.NewMockSearcher(ctrl)
	searcher.EXPECT().Run(gomock.Any(), q).Return(nil, nil)

	ids, err := NewIndexStore(searcher, nil, "dose_reports", logger.Nop()).ListItems(context.Background(), q)

	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestIndexStore_ListItems_SearchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boom := errors.New("boom")
	searcher := mock.NewMockSearcher(ctrl)
	searcher.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil, boom)

	_, err := NewIndexStore(searcher, nil, "x", logger.Nop()).ListItems(context.Background(), "")

	assert.ErrorIs(t, err, boom)
}

func TestIndexStore_WithIndex(t *testing.T) {
	s := NewIndexStore(nil, nil, "dicom_series", logger.Nop())

	dose := s.WithIndex("dose_reports")

	assert.Equal(t, "dicom_series", s.Index())
	assert.Equal(t, "dose_reports", dose.Index())
}

// ── AddItem ───────────────────────────────────────────────────────────────────

func TestIndexStore_AddItem_PostsEvent(t *testing.T) {
	var got map[string]any
	collector := newTestCollector(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/collector/event", r.URL.Path)
		assert.Equal(t, "Splunk hec-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"Success","code":0}`))
	})

	at := time.Date(2023, 1, 15, 10, 15, 30, 500_000_000, time.UTC)
	rec := models.Record{FieldID: "s1", "Modality": "CT", tags.FieldCanonicalDateTime: at}

	s := NewIndexStore(nil, collector, "dicom_series", logger.Nop())
	err := s.AddItem(context.Background(),
		models.Item{ID: "s1", Kind: models.KindTags, Tags: rec},
		models.Provenance{Host: "pacs:8042"})

	require.NoError(t, err)
	assert.InDelta(t, float64(at.Unix())+0.5, got["time"], 1e-6)
	assert.Equal(t, "pacs:8042", got["host"])
	assert.Equal(t, "_json", got["sourcetype"])
	assert.Equal(t, "dicom_series", got["index"])
	event, ok := got["event"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "CT", event["Modality"])
	assert.Equal(t, "s1", event[FieldID])
}

func TestIndexStore_AddItem_MissingCanonicalTime(t *testing.T) {
	collector := newTestCollector(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("collector must not be called")
	})

	err := NewIndexStore(nil, collector, "x", logger.Nop()).AddItem(context.Background(),
		models.Item{ID: "s1", Kind: models.KindTags, Tags: models.Record{"Modality": "CT"}},
		models.Provenance{})

	assert.ErrorIs(t, err, tags.ErrMissingRequiredField)
}

func TestIndexStore_AddItem_ReadOnlyHandle(t *testing.T) {
	err := NewIndexStore(nil, nil, "x", logger.Nop()).AddItem(context.Background(),
		models.Item{ID: "s1", Kind: models.KindTags, Tags: models.Record{}},
		models.Provenance{})

	assert.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestIndexStore_AddItem_RejectsFiles(t *testing.T) {
	collector := newTestCollector(t, func(w http.ResponseWriter, r *http.Request) {})

	err := NewIndexStore(nil, collector, "x", logger.Nop()).AddItem(context.Background(),
		models.Item{ID: "i1", Kind: models.KindFile, Raw: []byte("DICM")},
		models.Provenance{})

	assert.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestIndexStore_AddItem_CollectorRejects(t *testing.T) {
	collector := newTestCollector(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"text":"Invalid token","code":4}`))
	})

	rec := models.Record{tags.FieldCanonicalDateTime: time.Now()}
	err := NewIndexStore(nil, collector, "x", logger.Nop()).AddItem(context.Background(),
		models.Item{ID: "s1", Kind: models.KindTags, Tags: rec},
		models.Provenance{})

	assert.ErrorIs(t, err, adapter.ErrForbidden)
}
