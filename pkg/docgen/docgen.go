// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package docgen defines the public interface for go-docgen, a generator
// that turns a source tree into a single technical document using a
// text-generation service.
package docgen

import (
	"context"
	"errors"
	"time"
)

// Error types for the Generator API.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrBackend       = errors.New("inference backend setup failed")
)

// Backend names accepted in Config.Backend.
const (
	BackendOllama  = "ollama"
	BackendBedrock = "bedrock"
)

// Config configures a Generator instance. Zero values take defaults.
type Config struct {
	Directory   string        // Tree to document (default ".")
	Backend     string        // "ollama" (default) or "bedrock"
	Model       string        // Model identifier (default gemma3:1b for ollama; required for bedrock)
	Endpoint    string        // Ollama service root (default http://localhost:11434)
	Region      string        // AWS region (bedrock only, required)
	Profile     string        // AWS credential profile (bedrock only)
	Format      string        // markdown (default), html, or pdf
	Output      string        // Output file stem; empty means documentation_<timestamp>
	OutputDir   string        // Directory the document is written to (default ".")
	MaxFiles    int           // Maximum files analyzed (default 30)
	Timeout     time.Duration // Generation timeout (default 300s)
	Temperature float64       // Sampling temperature (default 0.7)
	TopP        float64       // Nucleus sampling threshold (default 0.9)
	MaxTokens   int           // Response token limit (bedrock only, default 4096)

	PreviewChars  int      // Per-file preview cap (default 2000)
	Extensions    []string // Supported extensions (default locate.DefaultExtensions)
	IgnoredDirs   []string // Directory names never descended into
	PriorityNames []string // Base names placed first and never capped

	RespectGitignore bool   // Skip paths matched by .gitignore files
	NoGit            bool   // Do not describe the repository in the prompt
	ProjectName      string // Name used in the prompt (default base name of Directory)
	Description      string // Optional overview passed to the model
}

// Result holds the outcome of a Generator.Run invocation.
type Result struct {
	Outcome         string   // written, nothing_to_do, unreachable, or no_document
	OutputPath      string   // Path of the saved document; empty unless written
	DocumentChars   int      // Characters in the sanitized document
	FilesFound      int      // Files selected by the locator
	FilesRead       int      // Files read and included in the prompt
	PromptChars     int      // Prompt length in characters
	EstimatedTokens int      // Rough prompt token estimate
	Branch          string   // Repository branch, when known
	Head            string   // Repository HEAD, when known
	Diagnostics     []string // User-facing messages in the order produced
	Markdown        string   `json:"-"` // Sanitized text before format conversion
}

// Generator documents a source tree.
type Generator interface {
	// Run checks the inference service, selects and reads files, builds one
	// prompt, generates the document, and saves it.
	Run(ctx context.Context) (*Result, error)
}
