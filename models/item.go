// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"time"
)

// ItemID is an opaque identifier of a study, series or instance. It is unique
// within a store and only ever compared for set membership.
type ItemID string

// ItemKind selects the representation in which an item is fetched.
type ItemKind string

const (
	// KindFile is the raw payload (for instances: the DICOM file bytes).
	KindFile ItemKind = "file"
	// KindInfo is the store-native summary of an item.
	KindInfo ItemKind = "info"
	// KindTags is the flattened, normalised tag record.
	KindTags ItemKind = "tags"
)

// ParseItemKind converts a user supplied string into an [ItemKind].
func ParseItemKind(s string) (ItemKind, error) {
	switch k := ItemKind(s); k {
	case KindFile, KindInfo, KindTags:
		return k, nil
	}
	return "", fmt.Errorf("unknown item kind %q", s)
}

// Level is an archive resource level. Its value doubles as the REST path
// segment of the level.
type Level string

const (
	LevelStudies   Level = "studies"
	LevelSeries    Level = "series"
	LevelInstances Level = "instances"
)

// Item is a single record fetched from a store. Exactly one of Raw, Info or
// Tags is populated, according to Kind.
type Item struct {
	ID   ItemID
	Kind ItemKind

	Raw  []byte
	Info map[string]any
	Tags Record
}

// Provenance describes where an item came from. Indexed stores need it to
// build a complete event envelope.
type Provenance struct {
	// Host is the "host:port" of the originating store.
	Host string
	// At is the moment the item was read from the origin.
	At time.Time
}
