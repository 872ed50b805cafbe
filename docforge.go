// Package docforge reads and edits Word documents while preserving their
// formatting. It extracts a document's structure as a flat sequence of
// addressable blocks, replaces block text while keeping the original run
// formatting, and rewrites whole heading-delimited sections with style
// propagation.
//
// Basic usage:
//
//	s, err := docforge.Open("report.docx")
//	if err != nil {
//	    // handle error
//	}
//	blocks, err := s.Blocks()
//
// Editing a block while keeping its formatting:
//
//	idx := 3
//	err = s.EditBlock(edit.BlockEdit{
//	    Paragraph: &idx,
//	    Text:      "Revised paragraph text.",
//	    Runs:      blocks[idx].(*block.Paragraph).Runs,
//	})
//	err = s.Save()
//
// For direct access to the document tree, the lower-level wml package is
// also available.
package docforge

import (
	"github.com/docforge/docforge/session"
)

// Open opens the document at path and returns a session for it.
//
// Example:
//
//	s, err := docforge.Open("report.docx", docforge.WithStateFile(""))
func Open(path string, opts ...Option) (*session.Session, error) {
	s := NewSession(opts...)
	if err := s.Open(path); err != nil {
		return nil, err
	}
	return s, nil
}

// Create writes a new empty document at path and returns a session for
// it. It fails if the file already exists.
func Create(path string, opts ...Option) (*session.Session, error) {
	s := NewSession(opts...)
	if err := s.Create(path); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSession returns a session with no document open. Use it with
// Session.Restore to resume the document recorded in the state file.
func NewSession(opts ...Option) *session.Session {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return session.New(cfg.logger, cfg.statePath)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	blocks := docforge.Must(s.Blocks())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
