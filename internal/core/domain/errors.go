package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyQuery indicates a search was submitted without any query text.
	ErrEmptyQuery = errors.New("empty query")

	// ErrSearchUnavailable indicates the search backend is not configured.
	ErrSearchUnavailable = errors.New("search backend unavailable")

	// ErrClipboardUnavailable indicates the system clipboard cannot be written.
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
)
