// SPDX-License-Identifier: Apache-2.0

package formats

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/disrpt/underscores/internal/corpus"
)

var (
	newdocPattern = regexp.MustCompile(`# newdoc id ?= ?(\S+)`)
	textPattern   = regexp.MustCompile(`^(# ?text ?= ?)(.+)$`)
)

// TokenHandler rewrites CoNLL-U style token tables: the dependency layer
// (.conllu/.conll) and the tokenization layer (.tok). Column 1 is the token,
// column 2 the lemma; all other columns pass through.
type TokenHandler struct {
	name string
	exts []string
	// tokenLayer files restore against the token stream of the dependency
	// layer and carry no lemmas.
	tokenLayer bool
}

var _ corpus.Handler = (*TokenHandler)(nil)

// NewDependencyHandler handles .conllu and legacy .conll files.
func NewDependencyHandler() *TokenHandler {
	return &TokenHandler{name: "conllu", exts: []string{".conllu", ".conll"}}
}

// NewTokenizationHandler handles .tok files.
func NewTokenizationHandler() *TokenHandler {
	return &TokenHandler{name: "tok", exts: []string{".tok"}, tokenLayer: true}
}

func (h *TokenHandler) Name() string {
	return h.name
}

func (h *TokenHandler) CanHandle(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range h.exts {
		if ext == e {
			return true
		}
	}
	return false
}

func (h *TokenHandler) Redact(_ context.Context, path string, lines []string) ([]string, corpus.FileResult, error) {
	var res corpus.FileResult
	out := make([]string, 0, len(lines))
	skip := 0
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "# text"):
			if m := textPattern.FindStringSubmatch(line); m != nil {
				line = m[1] + corpus.BlankText(m[2])
			}
		case strings.HasPrefix(line, "# newdoc"):
			res.Documents++
		case strings.Contains(line, "\t"):
			fields := strings.Split(line, "\t")
			if len(fields) < 3 {
				return nil, res, corpus.RowError(path, i+1, "expected at least 3 columns, got %d", len(fields))
			}
			tok := fields[1]
			fields[2] = corpus.EncodeLemma(tok, fields[2]).String()
			if skip < 1 {
				n := utf8.RuneCountInString(tok)
				fields[1] = strings.Repeat("_", n)
				res.Tokens++
				res.Chars += n
			} else {
				skip--
			}
			span, isRange, err := corpus.SpanLength(fields[0])
			if err != nil {
				return nil, res, corpus.RowError(path, i+1, "%v", err)
			}
			if isRange {
				skip = span
			}
			line = strings.Join(fields, "\t")
		}
		out = append(out, line)
	}
	return out, res, nil
}

// document is the restore state of the document currently being read.
type document struct {
	id       string
	src      []rune
	cursor   *corpus.Cursor
	consumed int
	parse    strings.Builder
	table    *corpus.TokenTable
}

func (d *document) mismatch(sess *corpus.Session, path string, row, actual int, detail string) *corpus.MismatchError {
	source := string(d.src)
	if doc, ok := sess.Document(d.id); ok {
		source = doc.String()
	}
	return &corpus.MismatchError{
		Document:   d.id,
		File:       path,
		Row:        row,
		Expected:   len(d.src),
		Actual:     actual,
		Detail:     detail,
		SourceText: source,
		ParseText:  d.parse.String(),
	}
}

func (h *TokenHandler) Restore(ctx context.Context, sess *corpus.Session, path string, lines []string) ([]string, corpus.FileResult, error) {
	var (
		res  corpus.FileResult
		doc  *document
		skip int
	)
	out := make([]string, 0, len(lines))

	finish := func() error {
		if doc == nil {
			return nil
		}
		if doc.consumed != len(doc.src) {
			return doc.mismatch(sess, path, 0, doc.consumed, "")
		}
		sess.Commit(doc.id, doc.parse.String(), doc.table, h.tokenLayer)
		res.Documents++
		return nil
	}

	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, res, err
		}
		row := i + 1

		if m := newdocPattern.FindStringSubmatch(line); m != nil {
			if err := finish(); err != nil {
				return nil, res, err
			}
			src, ok := sess.Source(m[1], h.tokenLayer)
			if !ok {
				return nil, res, &corpus.MissingDocumentError{Document: m[1], File: path}
			}
			doc = &document{id: m[1], src: src, cursor: corpus.NewCursor(src), table: corpus.NewTokenTable()}
			skip = 0
		}

		switch {
		case strings.HasPrefix(line, "# text"):
			m := textPattern.FindStringSubmatch(line)
			if m == nil {
				break
			}
			if doc == nil {
				return nil, res, corpus.RowError(path, row, "sentence text before any newdoc marker")
			}
			restored, n, ok := restoreSentence(strings.TrimSpace(m[2]), doc.cursor)
			if !ok {
				detail := fmt.Sprintf("sentence text needs %d characters but only %d remain", n, doc.cursor.Remaining())
				return nil, res, doc.mismatch(sess, path, row, doc.consumed+n, detail)
			}
			line = m[1] + restored

		case strings.Contains(line, "\t"):
			if doc == nil {
				return nil, res, corpus.RowError(path, row, "token row before any newdoc marker")
			}
			fields := strings.Split(line, "\t")
			if len(fields) < 3 {
				return nil, res, corpus.RowError(path, row, "expected at least 3 columns, got %d", len(fields))
			}
			span, isRange, err := corpus.SpanLength(fields[0])
			if err != nil {
				return nil, res, corpus.RowError(path, row, "%v", err)
			}

			if skip < 1 {
				n := utf8.RuneCountInString(fields[1])
				tok, ok := doc.cursor.Take(n)
				if !ok {
					detail := fmt.Sprintf("token needs %d characters but only %d remain", n, doc.cursor.Remaining())
					return nil, res, doc.mismatch(sess, path, row, doc.consumed+n, detail)
				}
				doc.consumed += n
				res.Chars += n
				fields[1] = tok
			} else {
				skip--
			}

			if !isRange {
				doc.parse.WriteString(fields[1])
				doc.table.Append(fields[1])
				res.Tokens++
			}
			if !h.tokenLayer {
				lemma := corpus.ParseLemma(fields[2])
				// A multi-token row's "_" lemma is a real underscore.
				if lemma.Kind != corpus.LemmaVerbatim && !(isRange && lemma.Kind == corpus.LemmaIdentical) {
					fields[2] = lemma.Resolve(fields[1])
				}
			}
			if isRange {
				skip = span
			}
			line = strings.Join(fields, "\t")
		}
		out = append(out, line)
	}

	if err := finish(); err != nil {
		return nil, res, err
	}
	return out, res, nil
}

// restoreSentence fills the n non-whitespace characters of an underscored
// sentence from the cursor without consuming them; the token rows that follow
// consume the same characters. ok is false when fewer than n remain.
func restoreSentence(underscored string, cur *corpus.Cursor) (restored string, n int, ok bool) {
	var b strings.Builder
	for _, r := range underscored {
		if corpus.IsSpace(r) {
			b.WriteRune(r)
			continue
		}
		if c, found := cur.Peek(n); found {
			b.WriteRune(c)
		}
		n++
	}
	if n > cur.Remaining() {
		return "", n, false
	}
	return b.String(), n, true
}
