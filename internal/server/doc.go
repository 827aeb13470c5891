// Package server runs the status API.
//
// It owns the HTTP server lifecycle: startup, signal handling and graceful
// shutdown bounded by the configured timeout.
package server
