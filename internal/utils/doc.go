// Package utils provides general-purpose helpers used across go-pacs-sync:
// run identifiers carried in a context, hash-derived synthetic identifiers,
// JSON response writing and HTTP client initialization.
package utils
