// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-pacs-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Lister enumerates the item identifiers of a store. condition is a
// store-specific filter; an empty condition lists everything in scope.
type Lister interface {
	ListItems(ctx context.Context, condition string) ([]models.ItemID, error)
}

// Getter fetches one item in the requested representation.
type Getter interface {
	GetItem(ctx context.Context, id models.ItemID, kind models.ItemKind) (models.Item, error)
}

// Adder writes one item. prov describes where the item was read from.
type Adder interface {
	AddItem(ctx context.Context, item models.Item, prov models.Provenance) error
}

// Source is a store items can be copied from.
type Source interface {
	Lister
	Getter
	// Host returns the "host:port" recorded as provenance of copied items.
	Host() string
}

// Destination is a store items can be copied to.
type Destination interface {
	Lister
	Adder
}

// InstanceAnonymizer produces pseudonymized copies of archive instances.
type InstanceAnonymizer interface {
	// Anonymize returns the payload of an anonymized copy of instance id.
	// The source instance is left untouched.
	Anonymize(ctx context.Context, id models.ItemID, req models.AnonymizeRequest) ([]byte, error)
}

// RemoteQuerier queries a remote modality through the archive.
type RemoteQuerier interface {
	QueryRemote(ctx context.Context, q models.RemoteQuery) ([]models.RemoteAnswer, error)
}

// Measurer runs an external numeric routine on an instance payload.
type Measurer interface {
	Measure(ctx context.Context, payload []byte) (models.Measurement, error)
}

// RunRepository persists the sync run ledger.
type RunRepository interface {
	// SaveRun records run together with its failures.
	SaveRun(ctx context.Context, run models.SyncRun) error
	// RecentRuns returns at most limit runs, newest first.
	RecentRuns(ctx context.Context, limit int) ([]models.SyncRun, error)
}
