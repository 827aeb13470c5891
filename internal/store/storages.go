package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pacs-sync/internal/config"
	"github.com/MKhiriev/go-pacs-sync/internal/logger"
)

// Storages groups the persistence backends used by the service layer.
type Storages struct {
	// RunRepository is the sync run ledger.
	RunRepository RunRepository

	db *DB
}

// NewStorages opens the ledger database configured in cfg and applies
// pending migrations. With an empty DSN the ledger lives in memory and is
// lost on exit.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	if cfg.DB.DSN == "" {
		log.Info().Str("func", "NewStorages").Msg("no ledger database configured, keeping runs in memory")
		return &Storages{RunRepository: NewMemoryRunRepository(maxRecentRuns)}, nil
	}

	db, err := NewConnect(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("ledger connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		RunRepository: NewRunRepository(db, log),
		db:            db,
	}, nil
}

// Close releases the ledger database, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
