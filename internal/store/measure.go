package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pacs-sync/internal/adapter"
	"github.com/MKhiriev/go-pacs-sync/models"
)

type measureClient struct {
	transport adapter.Transport
}

// NewMeasureClient returns a [Measurer] that posts instance payloads to an
// external measuring service (POST /measure, application/dicom) and reads
// back a JSON object of measurements.
func NewMeasureClient(transport adapter.Transport) Measurer {
	return &measureClient{transport: transport}
}

func (m *measureClient) Measure(ctx context.Context, payload []byte) (models.Measurement, error) {
	resp, err := m.transport.Post(ctx, "/measure", payload, map[string]string{"Content-Type": "application/dicom"})
	if err != nil {
		return nil, fmt.Errorf("measure: %w", err)
	}
	if err = resp.Err(); err != nil {
		return nil, fmt.Errorf("measure: %w", err)
	}

	obj, ok := resp.Object()
	if !ok {
		return nil, fmt.Errorf("measure: %w: expected a JSON object", ErrUnexpectedResponse)
	}
	return models.Measurement(obj), nil
}
