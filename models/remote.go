// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RemoteQuery describes a query sent to a remote modality through the source
// archive.
type RemoteQuery struct {
	// Modality is the archive-side alias of the remote modality.
	Modality string `json:"-"`
	// Level is "Study" or "Series".
	Level string `json:"Level"`
	// Query holds the matching keys, e.g. {"StudyDate": "20230101-"}.
	Query map[string]string `json:"Query"`
}

// RemoteAnswer is a single answer returned by a remote query.
type RemoteAnswer struct {
	PatientID         string
	StudyInstanceUID  string
	SeriesInstanceUID string

	// Tags holds the answer content as returned by the archive.
	Tags map[string]any
}
