// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package locate selects the source files that feed a documentation run.
//
// Directories in the ignored set are pruned during the walk, files are
// filtered by extension, and files whose base name is in the priority set are
// placed ahead of everything else and never dropped by the file cap.
package locate

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// DefaultExtensions lists the file extensions considered source code.
var DefaultExtensions = []string{
	".py", ".js", ".ts", ".tsx", ".java", ".cs", ".go", ".php", ".rb", ".rs", ".c", ".cpp", ".h", ".hpp",
	".html", ".css", ".scss", ".sql", ".sh", ".kt", ".swift",
}

// DefaultIgnoredDirs lists directory base names that are never descended into.
var DefaultIgnoredDirs = []string{
	"node_modules", ".git", ".vscode", "__pycache__", "dist", "build", "target",
	"out", "bin", "obj", "vendor", "tmp", "temp", ".next", "docs",
}

// DefaultPriorityNames lists base names of high-value context files.
var DefaultPriorityNames = []string{
	"package.json", "README.md", "index.html", "App.tsx", "main.tsx", "vite.config.ts", "tailwind.config.ts",
}

// Ignorer reports whether a path, relative to the walk root, should be
// skipped. The git package provides a .gitignore-backed implementation.
type Ignorer interface {
	Ignored(relPath string, isDir bool) bool
}

// Config holds the selection sets. Nil slices fall back to the defaults.
type Config struct {
	Extensions    []string
	IgnoredDirs   []string
	PriorityNames []string
	Ignorer       Ignorer // Optional
}

// Locator walks a directory tree and returns the files to analyze.
type Locator struct {
	fs       afero.Fs
	exts     map[string]bool
	ignored  map[string]bool
	priority map[string]bool
	ignorer  Ignorer
}

// New creates a Locator reading from fs.
func New(fs afero.Fs, cfg Config) *Locator {
	return &Locator{
		fs:       fs,
		exts:     toSet(cfg.Extensions, DefaultExtensions),
		ignored:  toSet(cfg.IgnoredDirs, DefaultIgnoredDirs),
		priority: toSet(cfg.PriorityNames, DefaultPriorityNames),
		ignorer:  cfg.Ignorer,
	}
}

// Find walks root and returns priority files first, in encounter order,
// followed by at most maxFiles-len(priority) other files. Priority files are
// never truncated; maxFiles <= 0 yields priority files only.
//
// afero.Walk visits directory entries in lexical order, so the result is
// reproducible for a given tree.
func (l *Locator) Find(ctx context.Context, root string, maxFiles int) ([]string, error) {
	var priority, others []string

	err := afero.Walk(l.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip entries we cannot stat.
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		name := info.Name()
		if info.IsDir() {
			if path == root {
				return nil
			}
			if l.ignored[name] || l.skipByIgnorer(root, path, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if !l.exts[filepath.Ext(name)] {
			return nil
		}
		if l.skipByIgnorer(root, path, false) {
			return nil
		}

		if l.priority[name] {
			priority = append(priority, path)
		} else {
			others = append(others, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	room := maxFiles - len(priority)
	if room < 0 {
		room = 0
	}
	if room > len(others) {
		room = len(others)
	}

	files := make([]string, 0, len(priority)+room)
	files = append(files, priority...)
	files = append(files, others[:room]...)
	return files, nil
}

func (l *Locator) skipByIgnorer(root, path string, isDir bool) bool {
	if l.ignorer == nil {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return l.ignorer.Ignored(rel, isDir)
}

func toSet(values, fallback []string) map[string]bool {
	if values == nil {
		values = fallback
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
