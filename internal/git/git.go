// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package git reads repository state for the analyzed directory: the current
// branch and HEAD commit, whether the work tree is dirty, and the .gitignore
// rules that apply to it.
package git

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"

	"github.com/petar-djukic/go-docgen/pkg/types"
)

// shortHashLen is the number of hex digits reported for HEAD.
const shortHashLen = 7

// ErrNoGit is returned when the working directory is not inside a git repository.
var ErrNoGit = errors.New("not a git repository")

// Config configures repository access.
type Config struct {
	WorkDir string // Directory being documented; parents are searched for .git
}

// Repo wraps a go-git repository for the read-only operations we need.
type Repo struct {
	repo *gogit.Repository
	cfg  Config
}

// Open opens the repository containing cfg.WorkDir.
// Returns ErrNoGit if no repository is found.
func Open(cfg Config) (*Repo, error) {
	r, err := gogit.PlainOpenWithOptions(cfg.WorkDir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGit, err)
	}
	return &Repo{repo: r, cfg: cfg}, nil
}

// Describe reports the branch and abbreviated HEAD hash.
func (r *Repo) Describe() (*types.RepoInfo, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD: %w", err)
	}

	info := &types.RepoInfo{Head: head.Hash().String()}
	if len(info.Head) > shortHashLen {
		info.Head = info.Head[:shortHashLen]
	}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}

	dirty, err := r.IsDirty()
	if err != nil {
		return nil, err
	}
	info.Dirty = dirty
	return info, nil
}

// IsDirty returns true if the working tree has uncommitted changes
// (either staged or unstaged).
func (r *Repo) IsDirty() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("getting status: %w", err)
	}

	return !status.IsClean(), nil
}

// Describe opens the repository containing dir and describes it.
func Describe(dir string) (*types.RepoInfo, error) {
	r, err := Open(Config{WorkDir: dir})
	if err != nil {
		return nil, err
	}
	return r.Describe()
}
