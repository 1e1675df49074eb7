package llm

import "errors"

var (
	// ErrUnavailable means the generator could not be reached.
	ErrUnavailable = errors.New("generator unavailable")
	// ErrTimeout means the request did not finish within its deadline.
	ErrTimeout = errors.New("generator request timed out")
	// ErrBadStatus means the generator answered with a non-success status.
	ErrBadStatus = errors.New("generator returned an error status")
	// ErrEmptyResponse means the generator answered without any text.
	ErrEmptyResponse = errors.New("generator returned no content")
)
