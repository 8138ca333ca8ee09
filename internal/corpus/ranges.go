// SPDX-License-Identifier: Apache-2.0

package corpus

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseRange expands a token reference such as "3,5-7,9" into ids in order.
func ParseRange(ref string) ([]int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, nil
	}
	var ids []int
	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		if from, to, ok := strings.Cut(part, "-"); ok {
			start, err := strconv.Atoi(from)
			if err != nil {
				return nil, fmt.Errorf("invalid range %q: %w", part, err)
			}
			end, err := strconv.Atoi(to)
			if err != nil {
				return nil, fmt.Errorf("invalid range %q: %w", part, err)
			}
			if end < start {
				return nil, fmt.Errorf("invalid range %q: end before start", part)
			}
			for id := start; id <= end; id++ {
				ids = append(ids, id)
			}
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid token id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// SpanLength reports how many subordinate rows follow a multi-token row with
// the given id field. ok is false for ordinary ids.
func SpanLength(id string) (n int, ok bool, err error) {
	from, to, found := strings.Cut(id, "-")
	if !found {
		return 0, false, nil
	}
	start, err := strconv.Atoi(from)
	if err != nil {
		return 0, true, fmt.Errorf("invalid multi-token id %q: %w", id, err)
	}
	end, err := strconv.Atoi(to)
	if err != nil {
		return 0, true, fmt.Errorf("invalid multi-token id %q: %w", id, err)
	}
	if end < start {
		return 0, true, fmt.Errorf("invalid multi-token id %q: end before start", id)
	}
	return end - start + 1, true, nil
}

// IsSpace reports whether r separates text in raw and structured files. It
// extends unicode.IsSpace with the information separators U+001C to U+001F,
// which legacy files treat as whitespace.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// BlankText replaces every non-whitespace character with an underscore.
func BlankText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// BlankExcerpt is BlankText for relation excerpts: gap markers survive.
func BlankExcerpt(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], GapMarker) {
			b.WriteString(GapMarker)
			i += len(GapMarker)
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
		i += size
	}
	return b.String()
}

// Excerpt is the result of restoring one relation field.
type Excerpt struct {
	Text        string
	Underscored int
	Restored    int
	// Used is the number of token ids consumed.
	Used int
}

// RestoreExcerpt substitutes each whitespace-delimited underscore run in field
// with the surface string of the next id. Whitespace and gap markers pass
// through and are not counted. Every id must be used by exactly one run.
func RestoreExcerpt(field string, ids []int, table *TokenTable) (Excerpt, error) {
	var (
		b   strings.Builder
		ex  Excerpt
		run int
	)
	flush := func() error {
		if run == 0 {
			return nil
		}
		if ex.Used >= len(ids) {
			return fmt.Errorf("more underscore runs than the %d referenced token ids", len(ids))
		}
		id := ids[ex.Used]
		tok, ok := table.Lookup(id)
		if !ok {
			return fmt.Errorf("token id %d outside document of %d tokens", id, table.Len())
		}
		b.WriteString(tok)
		ex.Used++
		ex.Underscored += run
		ex.Restored += utf8.RuneCountInString(tok)
		run = 0
		return nil
	}
	for i := 0; i < len(field); {
		if strings.HasPrefix(field[i:], GapMarker) {
			if err := flush(); err != nil {
				return ex, err
			}
			b.WriteString(GapMarker)
			i += len(GapMarker)
			continue
		}
		r, size := utf8.DecodeRuneInString(field[i:])
		if IsSpace(r) {
			if err := flush(); err != nil {
				return ex, err
			}
			b.WriteRune(r)
		} else {
			run++
		}
		i += size
	}
	if err := flush(); err != nil {
		return ex, err
	}
	if ex.Used < len(ids) {
		return ex, fmt.Errorf("%d referenced token ids but only %d underscore runs", len(ids), ex.Used)
	}
	ex.Text = b.String()
	return ex, nil
}
