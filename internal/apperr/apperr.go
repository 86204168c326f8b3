// Package apperr defines the sentinel errors shared across the engine and
// mapped to transport codes at the HTTP boundary.
package apperr

import "errors"

var (
	// ErrNotFound marks a missing candidate, job or application.
	ErrNotFound = errors.New("not found")

	// ErrServiceUnavailable marks an embedding/vector provider failure.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrInvalidFilter marks unsupported filter or sort parameters, rejected
	// before any retrieval or scoring work begins.
	ErrInvalidFilter = errors.New("invalid filter")
)
