// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// validate checks the invariants that hold for every command.
func (cfg *StructuredConfig) validate() error {
	if cfg.Jobs.PollInterval <= 0 || cfg.Jobs.PageSize <= 0 || cfg.Jobs.ProgressEvery <= 0 {
		return ErrInvalidJobsConfigs
	}
	if cfg.Jobs.MaxWait.D() < cfg.Jobs.PollInterval.D() {
		return fmt.Errorf("%w: max wait shorter than poll interval", ErrInvalidJobsConfigs)
	}

	if cfg.Transforms.Anonymize && cfg.Transforms.PseudonymKey == "" {
		return fmt.Errorf("%w: anonymization requires a pseudonym key", ErrInvalidTransformConfigs)
	}
	if _, err := time.LoadLocation(cfg.Transforms.TimeZone); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTransformConfigs, err)
	}

	return nil
}

// Need names an endpoint a command depends on.
type Need int

const (
	NeedSource Need = iota
	NeedDestination
	NeedSearch
	NeedCollector
	NeedWorkers
	NeedRemoteModality
	NeedServer
)

// Require checks that the endpoints a command needs are configured.
func (cfg *StructuredConfig) Require(needs ...Need) error {
	for _, n := range needs {
		switch n {
		case NeedSource:
			if cfg.Source.Address == "" {
				return fmt.Errorf("%w: source address is empty", ErrInvalidEndpointConfigs)
			}
		case NeedDestination:
			if cfg.Destination.Address == "" {
				return fmt.Errorf("%w: destination address is empty", ErrInvalidEndpointConfigs)
			}
		case NeedSearch:
			if cfg.Index.Search.Address == "" {
				return fmt.Errorf("%w: index search address is empty", ErrInvalidEndpointConfigs)
			}
		case NeedCollector:
			if cfg.Index.Collector.Address == "" || cfg.Index.Collector.Token == "" {
				return fmt.Errorf("%w: event collector address and token are required", ErrInvalidEndpointConfigs)
			}
		case NeedWorkers:
			if cfg.Workers.SyncInterval <= 0 || len(cfg.Workers.Workflows) == 0 {
				return ErrInvalidWorkerConfigs
			}
		case NeedRemoteModality:
			if cfg.Workflows.RemoteModality == "" {
				return fmt.Errorf("%w: remote modality is empty", ErrInvalidEndpointConfigs)
			}
		case NeedServer:
			if cfg.Server.HTTPAddress == "" {
				return fmt.Errorf("%w: status API address is empty", ErrInvalidEndpointConfigs)
			}
		}
	}
	return nil
}

// Location returns the configured time zone; validate guarantees it loads.
func (cfg *StructuredConfig) Location() *time.Location {
	loc, err := time.LoadLocation(cfg.Transforms.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
