// Package apperr defines the error kinds shared across services so that the
// HTTP layer can map each failure to a status code with errors.Is/errors.As.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a uniqueness violation, e.g. a taken username.
	ErrConflict = errors.New("conflict")
	// ErrValidation indicates missing or malformed caller input.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthenticated indicates missing or invalid credentials.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// NetworkError is an ingestion fetch failure: DNS, connect, timeout, or an
// HTTP error status from the source site.
type NetworkError struct {
	// Status is the response status code, or 0 if the request never
	// completed.
	Status int
	// Err is the underlying transport error, if any.
	Err error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("network error: source returned status %d", e.Status)
	}
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError is an ingestion parse failure: one of the structural anchors
// (title, artist, content) was not found in the fetched page.
type ParseError struct {
	// Anchor names the missing element: "title", "artist" or "content".
	Anchor string
	// Selector is the CSS selector that failed to match, for diagnostics
	// when the upstream page layout changes.
	Selector string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s anchor not found (selector %q)", e.Anchor, e.Selector)
}

// DuplicateError indicates ingestion found an existing master song with the
// same (artist, title) pair. The existing record is never overwritten.
type DuplicateError struct {
	Artist string
	Title  string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("song %q by %s already exists", e.Title, e.Artist)
}

// StorageError wraps a persistence failure during a write. It is considered
// transient and safe for the caller to retry.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage error: %v", e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }
