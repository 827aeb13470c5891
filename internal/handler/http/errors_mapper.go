package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pacs-sync/internal/adapter"
	"github.com/MKhiriev/go-pacs-sync/internal/search"
	"github.com/MKhiriev/go-pacs-sync/internal/service"
	"github.com/MKhiriev/go-pacs-sync/internal/store"
)

var errorStatusMap = map[error]int{
	ErrInvalidLimit: http.StatusBadRequest,

	service.ErrUnknownWorkflow: http.StatusNotFound,
	service.ErrWorkflowRunning: http.StatusConflict,
	service.ErrEmptyQuery:      http.StatusBadRequest,

	store.ErrRunAlreadyRecorded: http.StatusConflict,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,

	search.ErrJobTimeout: http.StatusGatewayTimeout,
	search.ErrJobFailed:  http.StatusBadGateway,

	adapter.ErrUnauthorized: http.StatusBadGateway,
	adapter.ErrForbidden:    http.StatusBadGateway,
	adapter.ErrUnavailable:  http.StatusServiceUnavailable,
	adapter.ErrBadGateway:   http.StatusBadGateway,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
