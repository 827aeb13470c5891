package service

import "errors"

var (
	ErrUnknownWorkflow = errors.New("unknown workflow")
	ErrWorkflowRunning = errors.New("workflow is already running")
	ErrEmptyQuery      = errors.New("empty index query")

	ErrUnsupportedKind     = errors.New("transform does not support item kind")
	ErrInvalidPseudonymKey = errors.New("invalid pseudonym key")
	ErrNoInstances         = errors.New("series has no instances")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
