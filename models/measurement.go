// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Measurement is the output of an external pixel-data routine (for example
// patient dimensions measured on a CT localizer). The keys are free-form;
// the ingest workflow only adds ID and timestamp fields before pushing it.
type Measurement map[string]any
