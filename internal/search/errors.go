package search

import "errors"

var (
	// ErrJobTimeout is returned when a job is still running after the
	// configured maximum wait.
	ErrJobTimeout = errors.New("search job timed out")
	// ErrJobFailed is returned when the index reports the job as failed.
	ErrJobFailed = errors.New("search job failed")
	// ErrNoJobID is returned when the submit response carries no job id.
	ErrNoJobID = errors.New("search job id missing from response")
)
