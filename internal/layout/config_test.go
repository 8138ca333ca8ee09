// SPDX-License-Identifier: Apache-2.0

package layout_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disrpt/underscores/internal/layout"
)

func touch(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
}

func TestDefault(t *testing.T) {
	cfg, err := layout.Default()
	require.NoError(t, err)

	assert.Equal(t, []string{"rstdt", "pdtb", "cdtb", "tdb"}, cfg.Names())
	assert.Equal(t, "../data", cfg.DataRoot)
	assert.Equal(t, "debug.txt", cfg.DebugFile)
	assert.Equal(t, []string{".START"}, cfg.StripMarkers)

	rst, err := cfg.Corpus("rstdt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("..", "data", "eng.rst.rstdt"), cfg.DataDir(rst))
	assert.NotEmpty(t, rst.Prompt)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		wantErr     bool
		errContains string
	}{
		{
			name: "minimal config gets default data root",
			data: "corpora:\n  - name: gum\n    dir: eng.rst.gum\n    raw: ['*.txt']\n",
		},
		{
			name:        "missing corpora",
			data:        "data_root: x\n",
			wantErr:     true,
			errContains: "invalid layout",
		},
		{
			name:        "unknown field rejected",
			data:        "colour: red\ncorpora:\n  - name: gum\n    dir: d\n    raw: ['*']\n",
			wantErr:     true,
			errContains: "invalid layout",
		},
		{
			name:        "corpus without raw patterns",
			data:        "corpora:\n  - name: gum\n    dir: d\n    raw: []\n",
			wantErr:     true,
			errContains: "invalid layout",
		},
		{
			name:        "reserved corpus name",
			data:        "corpora:\n  - name: all\n    dir: d\n    raw: ['*']\n",
			wantErr:     true,
			errContains: "invalid layout",
		},
		{
			name:        "duplicate corpus",
			data:        "corpora:\n  - name: a\n    dir: d\n    raw: ['*']\n  - name: a\n    dir: e\n    raw: ['*']\n",
			wantErr:     true,
			errContains: "defined twice",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := layout.Parse("test.yaml", []byte(tt.data))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "../data", cfg.DataRoot)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_root: /srv/data\nstrict_doc_ids: true\ncorpora:\n  - name: gum\n    dir: eng.rst.gum\n    raw: ['**/*.txt']\n"), 0o644))

	cfg, err := layout.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/data", cfg.DataRoot)
	assert.True(t, cfg.StrictDocIDs)

	_, err = layout.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestSelect(t *testing.T) {
	cfg, err := layout.Default()
	require.NoError(t, err)

	all, err := cfg.Select("all")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	one, err := cfg.Select("tdb")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "tur.pdtb.tdb", one[0].Dir)

	_, err = cfg.Select("gum")
	require.ErrorIs(t, err, layout.ErrUnknownCorpus)
}

func TestCorpus_RawFiles(t *testing.T) {
	cfg, err := layout.Default()
	require.NoError(t, err)

	t.Run("rstdt training and test", func(t *testing.T) {
		root := t.TempDir()
		touch(t, root,
			"RSTtrees-WSJ-main-1.0/TRAINING/wsj_0600.out.edus",
			"RSTtrees-WSJ-main-1.0/TEST/wsj_1129.out.edus",
			"RSTtrees-WSJ-main-1.0/TEST/wsj_1129.out.dis",
		)
		rst, err := cfg.Corpus("rstdt")
		require.NoError(t, err)
		files, err := rst.RawFiles(root)
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, filepath.Join(root, "RSTtrees-WSJ-main-1.0", "TEST", "wsj_1129.out.edus"), files[0])
	})

	t.Run("pdtb sections 00 to 24", func(t *testing.T) {
		root := t.TempDir()
		touch(t, root, "00/wsj_0001", "09/wsj_0900", "24/wsj_2400", "25/wsj_2500", "00/readme")
		pdtb, err := cfg.Corpus("pdtb")
		require.NoError(t, err)
		files, err := pdtb.RawFiles(root)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "00", "wsj_0001"),
			filepath.Join(root, "09", "wsj_0900"),
			filepath.Join(root, "24", "wsj_2400"),
		}, files)
	})

	t.Run("no matches", func(t *testing.T) {
		tdb, err := cfg.Corpus("tdb")
		require.NoError(t, err)
		files, err := tdb.RawFiles(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, files)
	})
}
