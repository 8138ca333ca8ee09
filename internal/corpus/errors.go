// SPDX-License-Identifier: Apache-2.0

package corpus

import (
	"errors"
	"fmt"
)

var (
	ErrMissingDocument   = errors.New("document text not found")
	ErrLengthMismatch    = errors.New("restored length does not match source text")
	ErrDecode            = errors.New("cannot decode raw text")
	ErrDirectoryNotFound = errors.New("directory not found")
	ErrMalformedRow      = errors.New("malformed row")
	ErrDuplicateDocument = errors.New("duplicate document id")
)

// MissingDocumentError reports a document id referenced by a structured file
// for which no text (or no token table) is available.
type MissingDocumentError struct {
	Document string
	File     string
	// What names the missing resource, e.g. "source text" or "token table".
	What string
}

func (e *MissingDocumentError) Error() string {
	what := e.What
	if what == "" {
		what = "source text"
	}
	return fmt.Sprintf("%s for document %s referenced in %s not found; check that the raw data contains the file for this document", what, e.Document, e.File)
}

func (e *MissingDocumentError) Unwrap() error {
	return ErrMissingDocument
}

// MismatchError carries the diagnostic payload of a failed length check.
type MismatchError struct {
	Document string
	File     string
	// Row is the 1-based line number of the first offending row, or 0 when the
	// check failed at a document boundary.
	Row      int
	Expected int
	Actual   int
	Detail   string

	SourceText string
	ParseText  string
}

func (e *MismatchError) Error() string {
	msg := fmt.Sprintf("document %s: source text has %d non-whitespace characters but %s holds %d", e.Document, e.Expected, e.File, e.Actual)
	if e.Row > 0 {
		msg += fmt.Sprintf(" (first mismatch at row %d)", e.Row)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *MismatchError) Unwrap() error {
	return ErrLengthMismatch
}

// RowError locates a malformed row.
func RowError(file string, row int, format string, args ...any) error {
	return fmt.Errorf("%s:%d: %w: %s", file, row, ErrMalformedRow, fmt.Sprintf(format, args...))
}
