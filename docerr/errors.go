// Package docerr defines the error kinds shared by all document operations.
// Callers classify failures with errors.Is against these sentinels; the
// wrapped message carries the operation-specific detail.
package docerr

import "errors"

var (
	// ErrNoDocument is returned when an operation requires an open document
	// and the session has none.
	ErrNoDocument = errors.New("no document is open")

	// ErrIndexOutOfRange is returned for a paragraph, table, row, or column
	// index outside the document's bounds.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidArgument is returned for an ambiguous or missing locator and
	// other malformed request parameters.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when a title or keyword anchor matches nothing.
	ErrNotFound = errors.New("not found")

	// ErrMapping indicates a low-level node could not be associated with its
	// structural wrapper. It is recovered locally during extraction and only
	// surfaces in logs.
	ErrMapping = errors.New("node mapping failed")
)
