// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package output persists the generated document.
package output

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/petar-djukic/go-docgen/pkg/types"
)

const (
	defaultPrefix   = "documentation_"
	timestampLayout = "20060102_150405"
	filePerm        = 0o644
	dirPerm         = 0o755
)

// Writer saves documents under a directory.
type Writer struct {
	fs  afero.Fs
	dir string
	now func() time.Time
}

// NewWriter creates a Writer rooted at dir ("" means the working directory).
func NewWriter(fs afero.Fs, dir string) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{fs: fs, dir: dir, now: time.Now}
}

// WithClock replaces the time source used for default file names.
func (w *Writer) WithClock(now func() time.Time) *Writer {
	w.now = now
	return w
}

// FileName returns "<stem>.<ext>" for doc. An empty stem becomes
// documentation_<YYYYMMDD_HHMMSS>; a supplied stem loses everything from the
// first dot of its base name.
func (w *Writer) FileName(stem string, format types.Format) string {
	return Stem(stem, w.now()) + "." + format.Extension()
}

// Save writes doc atomically and returns the path written.
func (w *Writer) Save(doc types.GeneratedDocument, stem string) (string, error) {
	dest := filepath.Join(w.dir, w.FileName(stem, doc.Format))
	if err := w.fs.MkdirAll(filepath.Dir(dest), dirPerm); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	if err := w.writeAtomic(dest, []byte(doc.Text)); err != nil {
		return "", err
	}
	return dest, nil
}

// writeAtomic writes to a temp file in the destination directory and renames
// it into place.
func (w *Writer) writeAtomic(dest string, data []byte) error {
	tmp, err := afero.TempFile(w.fs, filepath.Dir(dest), "."+filepath.Base(dest)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = w.fs.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		_ = w.fs.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", dest, err)
	}
	if err := w.fs.Chmod(tmpName, filePerm); err != nil {
		_ = w.fs.Remove(tmpName)
		return fmt.Errorf("setting permissions on %s: %w", dest, err)
	}
	if err := w.fs.Rename(tmpName, dest); err != nil {
		_ = w.fs.Remove(tmpName)
		return fmt.Errorf("renaming into %s: %w", dest, err)
	}
	return nil
}

// Stem normalizes a user-supplied output name, or derives one from now.
func Stem(stem string, now time.Time) string {
	stem = strings.TrimSpace(stem)
	if stem == "" {
		return defaultPrefix + now.Format(timestampLayout)
	}
	dir, base := filepath.Split(stem)
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	if base == "" || base == "." {
		return dir + defaultPrefix + now.Format(timestampLayout)
	}
	return dir + base
}
