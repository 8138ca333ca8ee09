// SPDX-License-Identifier: Apache-2.0

package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/disrpt/underscores/internal/logger"
)

// DefaultStripMarkers are removed from raw text before whitespace is dropped.
// PDTB raw files carry ".START" codes that are not part of the text.
var DefaultStripMarkers = []string{".START"}

// Harvester reads raw licensed source files into Documents.
type Harvester struct {
	markers []string
	strict  bool
}

type HarvestOption func(*Harvester)

// WithStripMarkers replaces the boilerplate markers removed from raw text.
func WithStripMarkers(markers ...string) HarvestOption {
	return func(h *Harvester) {
		h.markers = markers
	}
}

// WithStrictIDs makes duplicate document ids an error instead of a warning.
func WithStrictIDs(strict bool) HarvestOption {
	return func(h *Harvester) {
		h.strict = strict
	}
}

func NewHarvester(opts ...HarvestOption) *Harvester {
	h := &Harvester{markers: DefaultStripMarkers}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Harvest maps each file's document id to its non-whitespace characters.
// When two files share an id the later one wins unless strict ids are on.
func (h *Harvester) Harvest(ctx context.Context, paths []string) (map[string]Document, error) {
	log := logger.FromContext(ctx)
	docs := make(map[string]Document, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read raw text %s: %w", path, err)
		}
		text, err := decodeText(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		id := DocumentID(path)
		if prev, ok := docs[id]; ok {
			if h.strict {
				return nil, fmt.Errorf("%w: %s provided by %s and %s", ErrDuplicateDocument, id, prev.Path, path)
			}
			log.Warn("duplicate document id, later file wins", "doc", id, "previous", prev.Path, "file", path)
		}
		docs[id] = Document{ID: id, Path: path, Chars: h.dense(text)}
	}
	log.Debug("harvested raw text", "files", len(paths), "documents", len(docs))
	return docs, nil
}

func (h *Harvester) dense(text string) []rune {
	for _, m := range h.markers {
		if m != "" {
			text = strings.ReplaceAll(text, m, "")
		}
	}
	chars := make([]rune, 0, len(text))
	for _, r := range text {
		if !IsSpace(r) {
			chars = append(chars, r)
		}
	}
	return chars
}

// DocumentID is the base name of path up to its first dot.
func DocumentID(path string) string {
	name := filepath.Base(path)
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return name
}

// decodeText reads UTF-8, falling back to Latin-1 for legacy files.
func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return string(decoded), nil
}
