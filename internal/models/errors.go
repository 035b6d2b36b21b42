package models

import "errors"

var (
	// ErrInvalidInput marks requests that can never succeed as submitted.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks lookups of identifiers the history does not know.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable marks failures of an external store.
	ErrStoreUnavailable = errors.New("store unavailable")
)
