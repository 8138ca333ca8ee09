// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/disrpt/underscores/internal/corpus"
	"github.com/disrpt/underscores/internal/runner"
)

// MetadataListCorpora describes the list_corpora tool.
var MetadataListCorpora = &mcp.Tool{
	Name:        "list_corpora",
	Description: "List the corpora whose licensed text can be redacted or restored, with their data directories and raw file patterns.",
	InputSchema: map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	},
}

// MetadataRedactCorpus describes the redact_corpus tool.
var MetadataRedactCorpus = &mcp.Tool{
	Name: "redact_corpus",
	Description: "Replace the licensed token, lemma and sentence text of a corpus with underscores of equal length, " +
		"rewriting its .conllu, .tok and .rels files in place so they can be redistributed.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"corpus"},
		"properties": map[string]interface{}{
			"corpus": map[string]interface{}{
				"type":        "string",
				"description": "Name of the corpus to redact, as returned by list_corpora.",
			},
		},
	},
}

// MetadataRestoreCorpus describes the restore_corpus tool.
var MetadataRestoreCorpus = &mcp.Tool{
	Name: "restore_corpus",
	Description: "Restore the text of an underscored corpus from a local copy of its licensed raw data. " +
		"Fails without rewriting the offending file when the raw text does not match the distributed annotations.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"corpus", "raw_path"},
		"properties": map[string]interface{}{
			"corpus": map[string]interface{}{
				"type":        "string",
				"description": "Name of the corpus to restore, as returned by list_corpora.",
			},
			"raw_path": map[string]interface{}{
				"type":        "string",
				"description": "Directory holding the licensed raw text, laid out as distributed by the publisher.",
			},
		},
	},
}

type InputListCorpora struct{}

type CorpusInfo struct {
	Name    string   `json:"name"`
	DataDir string   `json:"data_dir"`
	Raw     []string `json:"raw"`
}

type OutputListCorpora struct {
	Corpora []CorpusInfo `json:"corpora"`
}

type InputRedactCorpus struct {
	Corpus string `json:"corpus"`
}

type InputRestoreCorpus struct {
	Corpus  string `json:"corpus"`
	RawPath string `json:"raw_path"`
}

// OutputCorpus is the output of the redact and restore tools.
type OutputCorpus struct {
	Corpus string              `json:"corpus"`
	Dir    string              `json:"dir"`
	Files  []corpus.FileResult `json:"files"`
}

// Tools binds the tool handlers to a Runner.
type Tools struct {
	runner *runner.Runner
}

func NewTools(r *runner.Runner) *Tools {
	return &Tools{runner: r}
}

func (t *Tools) ListCorpora(_ context.Context, _ *mcp.CallToolRequest, _ InputListCorpora) (*mcp.CallToolResult, OutputListCorpora, error) {
	cfg := t.runner.Config()
	out := OutputListCorpora{Corpora: make([]CorpusInfo, 0, len(cfg.Corpora))}
	for _, c := range cfg.Corpora {
		out.Corpora = append(out.Corpora, CorpusInfo{Name: c.Name, DataDir: cfg.DataDir(c), Raw: c.Raw})
	}
	return nil, out, nil
}

func (t *Tools) RedactCorpus(ctx context.Context, _ *mcp.CallToolRequest, input InputRedactCorpus) (*mcp.CallToolResult, OutputCorpus, error) {
	if input.Corpus == "" {
		return nil, OutputCorpus{}, fmt.Errorf("corpus is required")
	}
	report, err := t.runner.Redact(ctx, input.Corpus)
	if err != nil {
		return nil, OutputCorpus{}, err
	}
	return nil, OutputCorpus{Corpus: input.Corpus, Dir: report.Dir, Files: report.Files}, nil
}

func (t *Tools) RestoreCorpus(ctx context.Context, _ *mcp.CallToolRequest, input InputRestoreCorpus) (*mcp.CallToolResult, OutputCorpus, error) {
	if input.Corpus == "" {
		return nil, OutputCorpus{}, fmt.Errorf("corpus is required")
	}
	if input.RawPath == "" {
		return nil, OutputCorpus{}, fmt.Errorf("raw_path is required")
	}
	report, err := t.runner.Restore(ctx, input.Corpus, input.RawPath)
	if err != nil {
		return nil, OutputCorpus{}, err
	}
	return nil, OutputCorpus{Corpus: input.Corpus, Dir: report.Dir, Files: report.Files}, nil
}
