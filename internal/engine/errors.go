package engine

import "github.com/cockroachdb/errors"

// Sentinel errors for the pipeline. Wrap them to add context and check with errors.Is.
var (
	// ErrSourceNotFound indicates the dataset file could not be opened
	ErrSourceNotFound = errors.New("data source not found")

	// ErrMalformedValue indicates a non-empty year cell that is not a number
	ErrMalformedValue = errors.New("malformed value")

	// ErrUnsupportedOperation indicates an operation other than sum or average
	ErrUnsupportedOperation = errors.New("unsupported operation")
)
