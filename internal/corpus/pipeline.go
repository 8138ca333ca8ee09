// SPDX-License-Identifier: Apache-2.0

package corpus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/disrpt/underscores/internal/fsutil"
	"github.com/disrpt/underscores/internal/logger"
)

// DefaultDebugFile receives the source and reconstructed text of a document
// whose length check failed.
const DefaultDebugFile = "debug.txt"

// Pipeline dispatches the structured files of a directory to their handlers.
// Handler order matters: files are processed handler by handler, so the
// dependency layer must be registered before the tokenization layer, and both
// before relation files.
type Pipeline struct {
	handlers  []Handler
	debugFile string
}

// NewPipeline creates a Pipeline with the provided handlers.
func NewPipeline(handlers ...Handler) *Pipeline {
	return &Pipeline{handlers: handlers, debugFile: DefaultDebugFile}
}

// WithDebugFile sets where mismatch diagnostics are dumped. An empty path
// disables the dump.
func (p *Pipeline) WithDebugFile(path string) *Pipeline {
	p.debugFile = path
	return p
}

// RegisteredHandlers returns the names of all registered handlers.
func (p *Pipeline) RegisteredHandlers() []string {
	names := make([]string, len(p.handlers))
	for i, h := range p.handlers {
		names[i] = h.Name()
	}
	return names
}

type job struct {
	path    string
	handler Handler
}

// plan lists the files of dir in processing order.
func (p *Pipeline) plan(dir string) ([]job, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var jobs []job
	for _, h := range p.handlers {
		for _, name := range names {
			if h.CanHandle(name) {
				jobs = append(jobs, job{path: filepath.Join(dir, name), handler: h})
			}
		}
	}
	return jobs, nil
}

// Redact replaces licensed text in every structured file of dir.
func (p *Pipeline) Redact(ctx context.Context, dir string) (Report, error) {
	log := logger.FromContext(ctx)
	jobs, err := p.plan(dir)
	if err != nil {
		return Report{}, err
	}
	log.Info("found files", "count", len(jobs), "dir", dir)

	report := Report{Dir: dir}
	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		lines, err := fsutil.ReadLines(j.path)
		if err != nil {
			return report, fmt.Errorf("read %s: %w", j.path, err)
		}
		out, res, err := j.handler.Redact(ctx, j.path, lines)
		if err != nil {
			return report, fmt.Errorf("redact %s: %w", j.path, err)
		}
		if err := fsutil.WriteLinesAtomic(j.path, out); err != nil {
			return report, err
		}
		res.Path, res.Handler = j.path, j.handler.Name()
		report.Files = append(report.Files, res)
		log.Debug("redacted file", "file", j.path, "tokens", res.Tokens, "chars", res.Chars)
	}
	log.Info("replaced text with underscores", "files", len(report.Files), "dir", dir)
	return report, nil
}

// Restore re-inserts the harvested text into every structured file of dir.
// The first failing file stops the run; files already restored stay restored
// and the failing file is left untouched.
func (p *Pipeline) Restore(ctx context.Context, dir string, docs map[string]Document) (Report, error) {
	log := logger.FromContext(ctx)
	jobs, err := p.plan(dir)
	if err != nil {
		return Report{}, err
	}

	sess := NewSession(docs)
	report := Report{Dir: dir}
	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		lines, err := fsutil.ReadLines(j.path)
		if err != nil {
			return report, fmt.Errorf("read %s: %w", j.path, err)
		}
		out, res, err := j.handler.Restore(ctx, sess, j.path, lines)
		if err != nil {
			var mm *MismatchError
			if errors.As(err, &mm) {
				p.dump(ctx, mm)
			}
			return report, fmt.Errorf("restore %s: %w", j.path, err)
		}
		if err := fsutil.WriteLinesAtomic(j.path, out); err != nil {
			return report, err
		}
		res.Path, res.Handler = j.path, j.handler.Name()
		report.Files = append(report.Files, res)
		log.Debug("restored file", "file", j.path, "documents", res.Documents, "chars", res.Chars)
	}
	args := []any{"dir", dir}
	for _, name := range p.RegisteredHandlers() {
		args = append(args, name, report.Count(name))
	}
	log.Info("restored text", args...)
	return report, nil
}

func (p *Pipeline) dump(ctx context.Context, mm *MismatchError) {
	if p.debugFile == "" {
		return
	}
	content := mm.SourceText + "\n\n\n" + mm.ParseText
	if err := os.WriteFile(p.debugFile, []byte(content), 0o644); err != nil {
		logger.FromContext(ctx).Error("cannot write debug file", "path", p.debugFile, "err", err)
		return
	}
	logger.FromContext(ctx).Error("length mismatch, wrote debug file", "path", p.debugFile, "doc", mm.Document)
}
