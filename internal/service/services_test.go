package service

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-pacs-sync/internal/adapter"
	"github.com/MKhiriev/go-pacs-sync/internal/config"
	"github.com/MKhiriev/go-pacs-sync/internal/logger"
	"github.com/MKhiriev/go-pacs-sync/internal/mock"
	"github.com/MKhiriev/go-pacs-sync/internal/store"
	"github.com/MKhiriev/go-pacs-sync/internal/tags"
	"github.com/MKhiriev/go-pacs-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testArchive(t *testing.T, address string) *store.ArchiveStore {
	t.Helper()
	tr, err := adapter.NewHTTPTransport(config.Endpoint{Address: address}, logger.Nop())
	require.NoError(t, err)
	return store.NewArchiveStore(tr, models.LevelInstances, tags.NewFlattener(time.UTC, logger.Nop()), logger.Nop())
}

func workflowNames(ws []Workflow) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Name()
	}
	return out
}

func TestNewWorkflows_DependsOnEndpoints(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := testArchive(t, "http://src:8042")
	dst := testArchive(t, "http://dst:8042")
	index := store.NewIndexStore(nil, nil, "dicom_series", logger.Nop())

	tests := []struct {
		name   string
		mutate func(c *config.StructuredConfig)
		ep     Endpoints
		want   []string
	}{
		{"nothing", nil, Endpoints{}, []string{}},
		{"archives only", nil, Endpoints{Source: src, Destination: dst}, []string{WorkflowReplicate}},
		{"source and index", nil, Endpoints{Source: src, Index: index},
			[]string{WorkflowSeriesSync, WorkflowDoseReports}},
		{"remote modality", func(c *config.StructuredConfig) { c.Workflows.RemoteModality = "CT1" },
			Endpoints{Source: src, Index: index},
			[]string{WorkflowSeriesSync, WorkflowDoseReports, WorkflowRemoteIndex}},
		{"everything", func(c *config.StructuredConfig) { c.Workflows.RemoteModality = "CT1" },
			Endpoints{Source: src, Destination: dst, Index: index, Measurer: mock.NewMockMeasurer(ctrl)},
			[]string{WorkflowReplicate, WorkflowSeriesSync, WorkflowDoseReports, WorkflowRemoteIndex,
				WorkflowPatientDimensions, WorkflowConditionalReplicate}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}

			ws, err := NewWorkflows(cfg, tt.ep, logger.Nop())

			require.NoError(t, err)
			assert.Equal(t, tt.want, workflowNames(ws))
		})
	}
}

func TestNewWorkflows_AnonymizeNeedsValidKey(t *testing.T) {
	cfg := config.Defaults()
	cfg.Transforms.Anonymize = true

	_, err := NewWorkflows(cfg, Endpoints{Source: testArchive(t, "http://src:8042")}, logger.Nop())

	assert.ErrorIs(t, err, ErrInvalidPseudonymKey)
}

func TestNewServices(t *testing.T) {
	cfg := config.Defaults()

	s, err := NewServices(cfg, Endpoints{Source: testArchive(t, "http://a:1"), Destination: testArchive(t, "http://b:1")},
		store.NewMemoryRunRepository(10), models.NewAppBuildInfo("1.0.0", "", ""), logger.Nop())

	require.NoError(t, err)
	assert.Equal(t, []string{WorkflowReplicate}, s.Runner.Workflows())
	assert.NotNil(t, s.SyncJob)
	assert.NotNil(t, s.AppInfoService)
}
