// SPDX-License-Identifier: Apache-2.0

package runner_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disrpt/underscores/internal/corpus"
	"github.com/disrpt/underscores/internal/layout"
	"github.com/disrpt/underscores/internal/runner"
)

const conllu = "# newdoc id = wsj_0001\n# text = Pierre Vinken, 61\n1\tPierre\tPierre\tPROPN\n2\tVinken\tVinken\tPROPN\n3\t,\t,\tPUNCT\n4\t61\t61\tNUM\n"

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func setup(t *testing.T) (*runner.Runner, string, string) {
	t.Helper()
	root := t.TempDir()
	data := filepath.Join(root, "data")
	raw := filepath.Join(root, "raw")

	cfgText := fmt.Sprintf(`data_root: %q
debug_file: %q
corpora:
  - name: pdtb
    dir: eng.pdtb.pdtb
    raw: ["{0[0-9],1[0-9],2[0-4]}/wsj_*"]
  - name: tdb
    dir: tur.pdtb.tdb
    raw: ["*.txt"]
`, data, filepath.Join(root, "debug.txt"))
	cfg, err := layout.Parse("test.yaml", []byte(cfgText))
	require.NoError(t, err)

	write(t, filepath.Join(data, "eng.pdtb.pdtb", "eng.pdtb.pdtb_train.conllu"), conllu)
	write(t, filepath.Join(data, "tur.pdtb.tdb", "tur.pdtb.tdb_train.conllu"), "# newdoc id = 00001\n1\tBir\tbir\tDET\n")
	write(t, filepath.Join(raw, "pdtb", "00", "wsj_0001"), ".START\n\nPierre Vinken, 61\n")
	return runner.New(cfg), data, raw
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]runner.Mode{"add": runner.ModeRestore, "restore": runner.ModeRestore, "del": runner.ModeRedact, "redact": runner.ModeRedact} {
		got, err := runner.ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := runner.ParseMode("delete")
	assert.Error(t, err)
}

func TestRunner_RedactRestore(t *testing.T) {
	ctx := context.Background()
	r, data, raw := setup(t)
	path := filepath.Join(data, "eng.pdtb.pdtb", "eng.pdtb.pdtb_train.conllu")

	report, err := r.Redact(ctx, "pdtb")
	require.NoError(t, err)
	assert.Len(t, report.Files, 1)
	redacted, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(redacted), "1\t______\t_\tPROPN")
	assert.Contains(t, string(redacted), "# text = ______ _______ __")

	report, err = r.Restore(ctx, "pdtb", filepath.Join(raw, "pdtb"))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count("conllu"))
	restored, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, conllu, string(restored))
}

func TestRunner_RestoreMissingRawDir(t *testing.T) {
	r, _, raw := setup(t)
	_, err := r.Restore(context.Background(), "pdtb", filepath.Join(raw, "nowhere"))
	require.ErrorIs(t, err, corpus.ErrDirectoryNotFound)
}

func TestRunner_UnknownCorpus(t *testing.T) {
	r, _, _ := setup(t)
	_, err := r.Redact(context.Background(), "gum")
	require.ErrorIs(t, err, layout.ErrUnknownCorpus)
}

func TestRunner_RunIsolatesCorpora(t *testing.T) {
	ctx := context.Background()
	r, data, raw := setup(t)

	outcomes, err := r.Run(ctx, "all", runner.ModeRedact, nil)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	rawPath := func(_ context.Context, c layout.Corpus) (string, error) {
		return filepath.Join(raw, c.Name), nil
	}
	outcomes, err = r.Run(ctx, "all", runner.ModeRestore, rawPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tdb")
	require.Len(t, outcomes, 2)

	assert.NoError(t, outcomes[0].Err, "pdtb restores even though tdb fails")
	assert.ErrorIs(t, outcomes[1].Err, corpus.ErrDirectoryNotFound)

	restored, readErr := os.ReadFile(filepath.Join(data, "eng.pdtb.pdtb", "eng.pdtb.pdtb_train.conllu"))
	require.NoError(t, readErr)
	assert.Equal(t, conllu, string(restored))
}
