// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the HTTP transport shared by the archive and index
// stores.
//
// The primary abstraction is [Transport]: a get/post collaborator that
// decodes JSON responses automatically, keeps the raw body of every response
// and never turns a non-2xx status into an error on its own. Callers decide
// what a status means; [Response.Err] maps the common ones to the sentinel
// values defined in errors.go so that [errors.Is] works across stores.
package adapter

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/transport_mock.go -package=mock

// Transport performs HTTP requests against one configured endpoint.
// Implementations are responsible for authentication, throttling and
// serialisation of request bodies.
type Transport interface {
	// Get issues GET <base><path> with the given query parameters.
	Get(ctx context.Context, path string, params map[string]string) (*Response, error)

	// Post issues POST <base><path>. Maps and structs are encoded as JSON,
	// []byte and string bodies are sent verbatim and url.Values are sent as a
	// form. headers are applied last and may override Content-Type.
	Post(ctx context.Context, path string, body any, headers map[string]string) (*Response, error)

	// Host returns the "host:port" of the endpoint, without credentials.
	Host() string
}
