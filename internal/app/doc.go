// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app wires configuration, stores, the run ledger and services into
// a runnable process.
//
// It backs both the one-shot workflow commands and the long-running serve
// mode, which runs the status API next to the scheduled sync job.
package app
