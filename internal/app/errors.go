package app

import "errors"

var (
	// ErrItemsFailed is returned by RunWorkflow when the run finished but
	// some items could not be copied.
	ErrItemsFailed = errors.New("some items failed to copy")

	ErrInvalidEndpoint = errors.New("invalid endpoint")
)
