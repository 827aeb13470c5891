// Package config provides configuration loading, merging, and validation
// facilities for go-pacs-sync.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  0. Built-in defaults ([Defaults])
//  1. JSON config file (path from CONFIG or --config)
//  2. Environment variables
//  3. Command-line overrides supplied by the CLI
//
// The main entry point is [GetStructuredConfig].
package config
