// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package output

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-docgen/pkg/types"
)

var fixedNow = time.Date(2026, 10, 16, 9, 5, 3, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestStem(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty uses timestamp", "", "documentation_20261016_090503"},
		{"whitespace uses timestamp", "   ", "documentation_20261016_090503"},
		{"plain stem", "guide", "guide"},
		{"extension dropped", "guide.md", "guide"},
		{"everything after first dot dropped", "guide.v2.html", "guide"},
		{"directory kept", "out/guide.md", "out/guide"},
		{"dot directory not cut", "./out/guide", "./out/guide"},
		{"hidden name falls back", ".hidden", ".hidden"},
		{"trailing slash falls back", "out/", "out/documentation_20261016_090503"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stem(tt.in, fixedNow))
		})
	}
}

func TestFileName(t *testing.T) {
	w := NewWriter(afero.NewMemMapFs(), "").WithClock(clock)

	assert.Equal(t, "documentation_20261016_090503.md", w.FileName("", types.FormatMarkdown))
	assert.Equal(t, "documentation_20261016_090503.html", w.FileName("", types.FormatHTML))
	assert.Equal(t, "report.md", w.FileName("report.pdf", types.FormatPDF))
}

func TestSave(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs, "/out").WithClock(clock)

	path, err := w.Save(types.GeneratedDocument{Text: "<html></html>", Format: types.FormatHTML}, "site")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/out", "site.html"), path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))

	info, err := fs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := afero.ReadDir(fs, "/out")
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not remain")
}

func TestSave_Overwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs, "/out").WithClock(clock)

	_, err := w.Save(types.GeneratedDocument{Text: "first", Format: types.FormatMarkdown}, "doc")
	require.NoError(t, err)
	path, err := w.Save(types.GeneratedDocument{Text: "second", Format: types.FormatMarkdown}, "doc")
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestSave_ReadOnlyFs(t *testing.T) {
	w := NewWriter(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/out").WithClock(clock)

	_, err := w.Save(types.GeneratedDocument{Text: "x", Format: types.FormatMarkdown}, "doc")
	assert.Error(t, err)
}

func TestSave_RealFilesystem(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(afero.NewOsFs(), dir).WithClock(clock)

	path, err := w.Save(types.GeneratedDocument{Text: "# Doc", Format: types.FormatMarkdown}, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "documentation_20261016_090503.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Doc", string(data))
}
