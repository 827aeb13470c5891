// Package http implements the status API of the sync service.
//
// It exposes the run ledger, on-demand workflow triggers, build info and the
// Prometheus metrics endpoint. Request tracing, access logging and response
// compression are handled here before requests reach the service layer.
package http
