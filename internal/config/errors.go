package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] and
// [StructuredConfig.Require].
var (
	// ErrInvalidJobsConfigs indicates invalid poller settings (for example,
	// a zero poll interval or page size).
	ErrInvalidJobsConfigs = errors.New("invalid jobs configuration")
	// ErrInvalidEndpointConfigs indicates a required endpoint address is
	// missing.
	ErrInvalidEndpointConfigs = errors.New("invalid endpoint configuration")
	// ErrInvalidTransformConfigs indicates invalid transform settings (for
	// example, anonymization without a pseudonym key).
	ErrInvalidTransformConfigs = errors.New("invalid transform configuration")
	// ErrInvalidWorkerConfigs indicates invalid periodic job settings (for
	// example, zero sync interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
