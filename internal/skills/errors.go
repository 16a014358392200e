package skills

import "errors"

var (
	// ErrInvalidInput marks empty or oversized caller input. It is never
	// retried and maps to a client error at the transport layer.
	ErrInvalidInput = errors.New("invalid input")

	// ErrExtractionFailed marks a failure of the text-understanding
	// capability. It is distinct from an empty extraction result, which is a
	// valid outcome.
	ErrExtractionFailed = errors.New("skill extraction failed")
)
