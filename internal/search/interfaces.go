// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package search implements the asynchronous search-job protocol of the
// index: submit a query, poll the job until it is done, then page through
// its CSV results.
//
// A job moves through the states of [models.JobState]. Polling runs at a
// fixed interval and is bounded by a maximum wait, so a job that never
// finishes ends in [models.JobTimedOut] instead of blocking forever.
package search

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/searcher_mock.go -package=mock

// Searcher runs a query to completion and returns the result rows.
type Searcher interface {
	// Run submits query, waits for the job and returns every result row,
	// header excluded, with fields joined by ",".
	Run(ctx context.Context, query string) ([]string, error)
}
