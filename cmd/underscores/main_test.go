// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disrpt/underscores/internal/layout"
)

const tdbConllu = "# newdoc id = 00001\n# text = Bir gün geldi.\n1\tBir\tbir\tDET\n2\tgün\tgün\tNOUN\n3\tgeldi\tgel\tVERB\n4\t.\t.\tPUNCT\n"

func writeLayout(t *testing.T) (config, data, raw string) {
	t.Helper()
	root := t.TempDir()
	data = filepath.Join(root, "data")
	raw = filepath.Join(root, "raw")
	config = filepath.Join(root, "layout.yaml")

	require.NoError(t, os.WriteFile(config, []byte(fmt.Sprintf(
		"data_root: %q\ndebug_file: %q\ncorpora:\n  - name: tdb\n    dir: tur.pdtb.tdb\n    prompt: Enter path for TDB raw/01/ folder\n    raw: ['*.txt']\n",
		data, filepath.Join(root, "debug.txt"))), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(data, "tur.pdtb.tdb"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(data, "tur.pdtb.tdb", "tur.pdtb.tdb_test.conllu"), []byte(tdbConllu), 0o644))
	require.NoError(t, os.MkdirAll(raw, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(raw, "00001.txt"), []byte("Bir gün\ngeldi.\n"), 0o644))
	return config, data, raw
}

func execute(args ...string) error {
	cmd := newRootCmd()
	cmd.SetArgs(append(args, "--log-level", "disabled"))
	return cmd.ExecuteContext(context.Background())
}

func TestRootCmd_RedactThenRestore(t *testing.T) {
	config, data, raw := writeLayout(t)
	path := filepath.Join(data, "tur.pdtb.tdb", "tur.pdtb.tdb_test.conllu")

	require.NoError(t, execute("tdb", "-m", "del", "--config", config))
	redacted, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(redacted), "3\t_____\tgel\tVERB")
	assert.Contains(t, string(redacted), "1\t___\t*LOWER*\tDET")

	require.NoError(t, execute("tdb", "--config", config, "--raw", "tdb="+raw))
	restored, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, tdbConllu, string(restored))
}

func TestRootCmd_Errors(t *testing.T) {
	config, _, _ := writeLayout(t)

	tests := []struct {
		name        string
		args        []string
		errContains string
	}{
		{name: "unknown mode", args: []string{"tdb", "-m", "delete", "--config", config}, errContains: "unknown mode"},
		{name: "unknown corpus", args: []string{"gum", "-m", "del", "--config", config}, errContains: "unknown corpus"},
		{name: "missing raw directory", args: []string{"tdb", "--config", config, "--raw", "tdb=/does/not/exist"}, errContains: "can't find directory"},
		{name: "too many args", args: []string{"tdb", "pdtb"}, errContains: "accepts at most 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestRawPathResolver(t *testing.T) {
	c := layout.Corpus{Name: "tdb", Prompt: "Enter path"}
	origTerminal, origPrompt := isTerminal, promptFunc
	t.Cleanup(func() { isTerminal, promptFunc = origTerminal, origPrompt })

	t.Run("flag value wins", func(t *testing.T) {
		path, err := rawPathResolver(map[string]string{"tdb": " /ldc/tdb "})(context.Background(), c)
		require.NoError(t, err)
		assert.Equal(t, "/ldc/tdb", path)
	})

	t.Run("non-interactive without flag", func(t *testing.T) {
		isTerminal = func() bool { return false }
		_, err := rawPathResolver(nil)(context.Background(), c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--raw tdb=<dir>")
	})

	t.Run("interactive prompt", func(t *testing.T) {
		isTerminal = func() bool { return true }
		promptFunc = func(got layout.Corpus) (string, error) {
			assert.Equal(t, "Enter path", got.Prompt)
			return "/typed/path", nil
		}
		path, err := rawPathResolver(map[string]string{"pdtb": "/x"})(context.Background(), c)
		require.NoError(t, err)
		assert.Equal(t, "/typed/path", path)
	})
}
