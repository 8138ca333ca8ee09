// SPDX-License-Identifier: Apache-2.0

// Package layout describes where each corpus keeps its distributable files
// and where its licensed raw text is found.
package layout

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"
)

//go:embed default.yaml
var defaultConfig []byte

//go:embed schema.cue
var schemaSource string

// AllCorpora selects every configured corpus.
const AllCorpora = "all"

var ErrUnknownCorpus = errors.New("unknown corpus")

type Corpus struct {
	Name   string   `yaml:"name" json:"name"`
	Dir    string   `yaml:"dir" json:"dir"`
	Prompt string   `yaml:"prompt" json:"prompt,omitempty"`
	Raw    []string `yaml:"raw" json:"raw"`
}

type Config struct {
	DataRoot     string   `yaml:"data_root" json:"data_root"`
	DebugFile    string   `yaml:"debug_file" json:"debug_file"`
	StripMarkers []string `yaml:"strip_markers" json:"strip_markers"`
	StrictDocIDs bool     `yaml:"strict_doc_ids" json:"strict_doc_ids"`
	Corpora      []Corpus `yaml:"corpora" json:"corpora"`
}

// Default returns the built-in layout.
func Default() (*Config, error) {
	return Parse("default.yaml", defaultConfig)
}

// Load reads a layout file; an empty path yields the built-in layout.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	return Parse(path, data)
}

// Parse validates data against the layout schema and decodes it.
func Parse(name string, data []byte) (*Config, error) {
	if err := validate(name, data); err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal layout %s: %w", name, err)
	}
	if cfg.DataRoot == "" {
		cfg.DataRoot = "../data"
	}
	seen := make(map[string]bool, len(cfg.Corpora))
	for _, c := range cfg.Corpora {
		if seen[c.Name] {
			return nil, fmt.Errorf("layout %s: corpus %q defined twice", name, c.Name)
		}
		seen[c.Name] = true
	}
	return cfg, nil
}

func validate(name string, data []byte) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("layout schema: %w", err)
	}
	file, err := cueyaml.Extract(name, data)
	if err != nil {
		return fmt.Errorf("parse layout %s: %w", name, err)
	}
	value := ctx.BuildFile(file)
	if err := schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid layout %s: %w", name, err)
	}
	return nil
}

// Names lists the configured corpus names in order.
func (c *Config) Names() []string {
	names := make([]string, len(c.Corpora))
	for i, corpus := range c.Corpora {
		names[i] = corpus.Name
	}
	return names
}

// Corpus looks up a corpus by name.
func (c *Config) Corpus(name string) (Corpus, error) {
	for _, corpus := range c.Corpora {
		if corpus.Name == name {
			return corpus, nil
		}
	}
	return Corpus{}, fmt.Errorf("%w %q (expected one of %s or %s)", ErrUnknownCorpus, name, strings.Join(c.Names(), ", "), AllCorpora)
}

// Select resolves a corpus selector, which is a name or "all".
func (c *Config) Select(selector string) ([]Corpus, error) {
	if selector == "" || selector == AllCorpora {
		return c.Corpora, nil
	}
	corpus, err := c.Corpus(selector)
	if err != nil {
		return nil, err
	}
	return []Corpus{corpus}, nil
}

// DataDir is the directory holding the corpus' structured files.
func (c *Config) DataDir(corpus Corpus) string {
	return filepath.Join(c.DataRoot, corpus.Dir)
}

// RawFiles lists the raw text files of the corpus below root, sorted.
func (c Corpus) RawFiles(root string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range c.Raw {
		matches, err := doublestar.FilepathGlob(filepath.Join(root, filepath.FromSlash(pattern)), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid raw pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}
