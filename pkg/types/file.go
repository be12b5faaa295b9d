// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// FileRecord is a source file's decoded text, ready for prompt assembly.
type FileRecord struct {
	Path    string // File path relative to the analyzed directory
	Content string // UTF-8 text content
}

// RepoInfo describes the version-control state of the analyzed directory.
type RepoInfo struct {
	Branch string // Short branch name; empty for a detached HEAD
	Head   string // Abbreviated HEAD commit hash
	Dirty  bool   // Work tree has uncommitted changes
}
