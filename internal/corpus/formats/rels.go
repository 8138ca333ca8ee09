// SPDX-License-Identifier: Apache-2.0

package formats

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disrpt/underscores/internal/corpus"
)

// Relation file columns.
const (
	relDoc = iota
	relUnit1Toks
	relUnit2Toks
	relUnit1Text
	relUnit2Text
	relSent1Toks
	relSent2Toks
	relUnit1Sent
	relUnit2Sent
	relDir
	relOrigLabel
	relLabel
	relColumns
)

// relFields pairs each underscored text column with the token reference that
// spells it out.
var relFields = []struct{ toks, text int }{
	{relUnit1Toks, relUnit1Text},
	{relUnit2Toks, relUnit2Text},
	{relSent1Toks, relUnit1Sent},
	{relSent2Toks, relUnit2Sent},
}

// RelsHandler rewrites relation tables. Their excerpts are rebuilt from the
// token tables of the dependency layer, so it must run after TokenHandlers.
type RelsHandler struct{}

var _ corpus.Handler = (*RelsHandler)(nil)

func NewRelsHandler() *RelsHandler {
	return &RelsHandler{}
}

func (h *RelsHandler) Name() string {
	return "rels"
}

func (h *RelsHandler) CanHandle(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".rels")
}

func splitRelation(path string, row int, line string) ([]string, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != relColumns {
		return nil, corpus.RowError(path, row, "expected %d columns, got %d", relColumns, len(fields))
	}
	return fields, nil
}

func (h *RelsHandler) Redact(_ context.Context, path string, lines []string) ([]string, corpus.FileResult, error) {
	var res corpus.FileResult
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if i == 0 || line == "" {
			out = append(out, line)
			continue
		}
		fields, err := splitRelation(path, i+1, line)
		if err != nil {
			return nil, res, err
		}
		for _, f := range relFields {
			fields[f.text] = corpus.BlankExcerpt(fields[f.text])
		}
		res.Tokens++
		out = append(out, strings.Join(fields, "\t"))
	}
	return out, res, nil
}

func (h *RelsHandler) Restore(ctx context.Context, sess *corpus.Session, path string, lines []string) ([]string, corpus.FileResult, error) {
	var (
		res         corpus.FileResult
		underscored int
		restored    int
	)
	docs := make(map[string]struct{})
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, res, err
		}
		if i == 0 || line == "" {
			out = append(out, line)
			continue
		}
		row := i + 1
		fields, err := splitRelation(path, row, line)
		if err != nil {
			return nil, res, err
		}
		docID := fields[relDoc]
		table, ok := sess.Table(docID)
		if !ok {
			return nil, res, &corpus.MissingDocumentError{Document: docID, File: path, What: "token table"}
		}
		docs[docID] = struct{}{}

		for _, f := range relFields {
			ids, err := corpus.ParseRange(fields[f.toks])
			if err != nil {
				return nil, res, corpus.RowError(path, row, "%v", err)
			}
			ex, err := corpus.RestoreExcerpt(fields[f.text], ids, table)
			underscored += ex.Underscored
			restored += ex.Restored
			if err != nil {
				return nil, res, relMismatch(sess, path, docID, row, underscored, restored, fields[f.text], err.Error())
			}
			fields[f.text] = ex.Text
		}
		if underscored != restored {
			detail := fmt.Sprintf("restored %d characters for %d underscores", restored, underscored)
			return nil, res, relMismatch(sess, path, docID, row, underscored, restored, strings.Join(fields, "\t"), detail)
		}
		res.Tokens++
		out = append(out, strings.Join(fields, "\t"))
	}
	res.Documents = len(docs)
	res.Chars = restored
	return out, res, nil
}

func relMismatch(sess *corpus.Session, path, docID string, row, expected, actual int, parse, detail string) *corpus.MismatchError {
	mm := &corpus.MismatchError{
		Document:  docID,
		File:      path,
		Row:       row,
		Expected:  expected,
		Actual:    actual,
		Detail:    detail,
		ParseText: parse,
	}
	if doc, ok := sess.Document(docID); ok {
		mm.SourceText = doc.String()
	}
	return mm
}
