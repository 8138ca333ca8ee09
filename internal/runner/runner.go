// SPDX-License-Identifier: Apache-2.0

// Package runner drives redaction and restoration corpus by corpus.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/disrpt/underscores/internal/corpus"
	"github.com/disrpt/underscores/internal/corpus/formats"
	"github.com/disrpt/underscores/internal/layout"
	"github.com/disrpt/underscores/internal/logger"
)

type Mode string

const (
	ModeRedact  Mode = "del"
	ModeRestore Mode = "add"
)

// ParseMode accepts the legacy add/del names as well as redact/restore.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "add", "restore":
		return ModeRestore, nil
	case "del", "redact":
		return ModeRedact, nil
	}
	return "", fmt.Errorf("unknown mode %q (expected add or del)", s)
}

// RawPathFunc supplies the raw text directory for a corpus.
type RawPathFunc func(ctx context.Context, c layout.Corpus) (string, error)

// Outcome is the result for one corpus of a multi-corpus run.
type Outcome struct {
	Corpus string        `json:"corpus"`
	Report corpus.Report `json:"report"`
	Err    error         `json:"-"`
}

type Runner struct {
	cfg       *layout.Config
	pipeline  *corpus.Pipeline
	harvester *corpus.Harvester
}

func New(cfg *layout.Config) *Runner {
	markers := cfg.StripMarkers
	if markers == nil {
		markers = corpus.DefaultStripMarkers
	}
	debugFile := cfg.DebugFile
	if debugFile == "" {
		debugFile = corpus.DefaultDebugFile
	}
	return &Runner{
		cfg:       cfg,
		pipeline:  formats.DefaultPipeline().WithDebugFile(debugFile),
		harvester: corpus.NewHarvester(corpus.WithStripMarkers(markers...), corpus.WithStrictIDs(cfg.StrictDocIDs)),
	}
}

func (r *Runner) Config() *layout.Config {
	return r.cfg
}

// Redact underscores the structured files of the named corpus.
func (r *Runner) Redact(ctx context.Context, name string) (corpus.Report, error) {
	c, err := r.cfg.Corpus(name)
	if err != nil {
		return corpus.Report{}, err
	}
	ctx = logger.ContextWithLogger(ctx, logger.FromContext(ctx).With("corpus", c.Name))
	return r.pipeline.Redact(ctx, r.cfg.DataDir(c))
}

// Restore harvests the raw text below rawRoot and restores the named corpus.
func (r *Runner) Restore(ctx context.Context, name, rawRoot string) (corpus.Report, error) {
	c, err := r.cfg.Corpus(name)
	if err != nil {
		return corpus.Report{}, err
	}
	if info, err := os.Stat(rawRoot); err != nil || !info.IsDir() {
		return corpus.Report{}, fmt.Errorf("%w: can't find directory at %s", corpus.ErrDirectoryNotFound, rawRoot)
	}
	log := logger.FromContext(ctx).With("corpus", c.Name)
	ctx = logger.ContextWithLogger(ctx, log)

	files, err := c.RawFiles(rawRoot)
	if err != nil {
		return corpus.Report{}, err
	}
	log.Info("found raw files", "count", len(files), "dir", rawRoot)
	docs, err := r.harvester.Harvest(ctx, files)
	if err != nil {
		return corpus.Report{}, err
	}
	return r.pipeline.Restore(ctx, r.cfg.DataDir(c), docs)
}

// Run applies mode to every corpus the selector names. Corpora are isolated:
// a failure is recorded and the run moves on, so completed corpora are never
// touched again. The returned error joins all failures.
func (r *Runner) Run(ctx context.Context, selector string, mode Mode, rawPath RawPathFunc) ([]Outcome, error) {
	corpora, err := r.cfg.Select(selector)
	if err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)

	var (
		outcomes []Outcome
		errs     []error
	)
	for _, c := range corpora {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		out := Outcome{Corpus: c.Name}
		switch mode {
		case ModeRedact:
			out.Report, out.Err = r.Redact(ctx, c.Name)
		case ModeRestore:
			var root string
			root, out.Err = rawPath(ctx, c)
			if out.Err == nil {
				out.Report, out.Err = r.Restore(ctx, c.Name, root)
			}
		default:
			out.Err = fmt.Errorf("unknown mode %q", mode)
		}
		if out.Err != nil {
			log.Error("corpus failed", "corpus", c.Name, "err", out.Err)
			errs = append(errs, fmt.Errorf("%s: %w", c.Name, out.Err))
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, errors.Join(errs...)
}
