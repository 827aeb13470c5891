// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// IndexEvent is the envelope pushed to the index event collector. Field order
// follows the collector's documented layout.
type IndexEvent struct {
	// Time is the event time in epoch seconds, derived from the record's
	// canonical timestamp.
	Time float64 `json:"time"`
	// Host is the "host:port" of the store the record was read from.
	Host string `json:"host"`
	// SourceType is always "_json".
	SourceType string `json:"sourcetype"`
	// Index is the target index name.
	Index string `json:"index"`
	// Event is the flattened record itself.
	Event Record `json:"event"`
}

// SourceTypeJSON is the source type of every event produced by this module.
const SourceTypeJSON = "_json"
