// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Ignorer matches slash-separated paths relative to a root against the
// .gitignore files found under that root.
type Ignorer struct {
	matcher gitignore.Matcher
}

// LoadIgnorer reads every .gitignore below root. A tree without any
// .gitignore yields an Ignorer that matches nothing.
func LoadIgnorer(root string) (*Ignorer, error) {
	patterns, err := gitignore.ReadPatterns(osfs.New(root), nil)
	if err != nil {
		return nil, fmt.Errorf("reading .gitignore patterns: %w", err)
	}
	return NewIgnorer(patterns), nil
}

// NewIgnorer builds an Ignorer from already parsed patterns.
func NewIgnorer(patterns []gitignore.Pattern) *Ignorer {
	return &Ignorer{matcher: gitignore.NewMatcher(patterns)}
}

// Ignored reports whether relPath is excluded by the loaded rules.
func (i *Ignorer) Ignored(relPath string, isDir bool) bool {
	relPath = filepath.ToSlash(relPath)
	if relPath == "" || relPath == "." {
		return false
	}
	return i.matcher.Match(strings.Split(relPath, "/"), isDir)
}
