package app

import (
	"fmt"

	"github.com/MKhiriev/go-pacs-sync/internal/adapter"
	"github.com/MKhiriev/go-pacs-sync/internal/config"
	"github.com/MKhiriev/go-pacs-sync/internal/logger"
	"github.com/MKhiriev/go-pacs-sync/internal/search"
	"github.com/MKhiriev/go-pacs-sync/internal/service"
	"github.com/MKhiriev/go-pacs-sync/internal/store"
	"github.com/MKhiriev/go-pacs-sync/internal/tags"
	"github.com/MKhiriev/go-pacs-sync/models"
)

// NewEndpoints builds a store handle for every endpoint with an address.
// Unconfigured endpoints stay nil.
func NewEndpoints(cfg *config.StructuredConfig, log *logger.Logger) (service.Endpoints, error) {
	var ep service.Endpoints
	flattener := tags.NewFlattener(cfg.Location(), log)

	if cfg.Source.Address != "" {
		t, err := newTransport("source", cfg.Source, log)
		if err != nil {
			return service.Endpoints{}, err
		}
		ep.Source = store.NewArchiveStore(t, models.LevelInstances, flattener, log)
	}

	if cfg.Destination.Address != "" {
		t, err := newTransport("destination", cfg.Destination, log)
		if err != nil {
			return service.Endpoints{}, err
		}
		ep.Destination = store.NewArchiveStore(t, models.LevelInstances, flattener, log)
	}

	if cfg.Index.Search.Address != "" {
		t, err := newTransport("index search", cfg.Index.Search, log)
		if err != nil {
			return service.Endpoints{}, err
		}

		// without a collector the index is read-only
		var collector adapter.Transport
		if cfg.Index.Collector.Address != "" {
			collector, err = newTransport("event collector", cfg.Index.Collector, log)
			if err != nil {
				return service.Endpoints{}, err
			}
		}

		searcher := search.NewClient(t, search.OptionsFromConfig(cfg.Jobs), log)
		ep.Index = store.NewIndexStore(searcher, collector, cfg.Index.Names.Series, log)
	}

	if cfg.Measure.Address != "" {
		t, err := newTransport("measure", cfg.Measure, log)
		if err != nil {
			return service.Endpoints{}, err
		}
		ep.Measurer = store.NewMeasureClient(t)
	}

	return ep, nil
}

func newTransport(name string, cfg config.Endpoint, log *logger.Logger) (adapter.Transport, error) {
	t, err := adapter.NewHTTPTransport(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidEndpoint, name, err)
	}
	return t, nil
}
