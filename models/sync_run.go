// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncRun summarises one execution of a workflow. It is written to the run
// ledger after the workflow returns.
type SyncRun struct {
	RunID      string    `json:"run_id"`
	Workflow   string    `json:"workflow"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Candidates is the number of items found at the source.
	Candidates int `json:"candidates"`
	// Missing is the number of candidates absent from the destination.
	Missing int `json:"missing"`
	// Copied is the number of items that landed at the destination.
	Copied int `json:"copied"`

	Failures []RunFailure `json:"failures,omitempty"`
	// Error holds the fatal error that aborted the run, if any.
	Error string `json:"error,omitempty"`
}

// Failed returns the number of items that could not be copied.
func (r SyncRun) Failed() int {
	return len(r.Failures)
}

// RunFailure records one item that failed to copy during a run.
type RunFailure struct {
	ItemID ItemID `json:"item_id"`
	Reason string `json:"reason"`
}
