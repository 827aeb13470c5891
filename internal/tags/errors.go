package tags

import "errors"

var (
	// ErrMissingRequiredField is returned when a mandatory field (the study
	// timestamp, or the canonical timestamp derived from it) is absent.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrBadDateTime is returned when a value matches none of the accepted
	// date/time layouts.
	ErrBadDateTime = errors.New("unrecognised date/time value")
)
