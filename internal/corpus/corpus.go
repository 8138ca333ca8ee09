// SPDX-License-Identifier: Apache-2.0

package corpus

import "context"

// Document is the dense non-whitespace character sequence of one raw source
// file. Chars must not be modified once harvested; each consuming file gets
// its own Cursor over it.
type Document struct {
	ID    string
	Path  string
	Chars []rune
}

// Len returns the number of available characters.
func (d Document) Len() int {
	return len(d.Chars)
}

func (d Document) String() string {
	return string(d.Chars)
}

// FileResult summarizes one rewritten structured file.
type FileResult struct {
	Path      string `json:"path"`
	Handler   string `json:"handler"`
	Documents int    `json:"documents"`
	Tokens    int    `json:"tokens"`
	Chars     int    `json:"chars"`
}

// Report is the outcome of a redact or restore run over one directory.
type Report struct {
	Dir   string       `json:"dir"`
	Files []FileResult `json:"files"`
}

// Count returns the number of files processed by the named handler.
func (r Report) Count(handler string) int {
	n := 0
	for _, f := range r.Files {
		if f.Handler == handler {
			n++
		}
	}
	return n
}

// Handler rewrites one structured file format. Lines arrive with surrounding
// whitespace trimmed and without the trailing newline.
type Handler interface {
	Name() string
	CanHandle(path string) bool
	Redact(ctx context.Context, path string, lines []string) ([]string, FileResult, error)
	Restore(ctx context.Context, sess *Session, path string, lines []string) ([]string, FileResult, error)
}
