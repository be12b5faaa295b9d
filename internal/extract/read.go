// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/petar-djukic/go-docgen/pkg/types"
)

var (
	// ErrUndecodable indicates file content that is not valid UTF-8 text.
	ErrUndecodable = errors.New("content is not valid UTF-8 text")

	// ErrEmpty indicates a file with no content.
	ErrEmpty = errors.New("file is empty")
)

// ReadFile reads path from fs and returns its record with the path made
// relative to root.
func ReadFile(fs afero.Fs, root, path string) (types.FileRecord, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return types.FileRecord{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(data) == 0 {
		return types.FileRecord{}, fmt.Errorf("reading %s: %w", path, ErrEmpty)
	}
	if !utf8.Valid(data) {
		return types.FileRecord{}, fmt.Errorf("reading %s: %w", path, ErrUndecodable)
	}

	relPath, err := filepath.Rel(root, path)
	if err != nil {
		relPath = path
	}
	return types.FileRecord{Path: filepath.ToSlash(relPath), Content: string(data)}, nil
}
