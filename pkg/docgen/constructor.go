// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package docgen

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	internaldocgen "github.com/petar-djukic/go-docgen/internal/docgen"
	gitpkg "github.com/petar-djukic/go-docgen/internal/git"
	"github.com/petar-djukic/go-docgen/internal/llm"
	"github.com/petar-djukic/go-docgen/internal/locate"
	"github.com/petar-djukic/go-docgen/internal/prompt"
	"github.com/petar-djukic/go-docgen/pkg/types"
)

const (
	defaultDirectory = "."
	defaultMaxFiles  = 30
)

// New validates the config, builds the configured inference backend, and
// returns a ready-to-use Generator. It does not contact the service; the
// health check happens in Run.
func New(cfg Config, logger *zap.Logger) (Generator, error) {
	applyDefaults(&cfg)
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var backend llm.Backend
	switch cfg.Backend {
	case BackendBedrock:
		client, err := llm.NewBedrockClient(context.Background(), llm.BedrockConfig{
			ModelID:     cfg.Model,
			Region:      cfg.Region,
			Profile:     cfg.Profile,
			Temperature: cfg.Temperature,
			TopP:        cfg.TopP,
			Timeout:     cfg.Timeout,
			MaxTokens:   cfg.MaxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBackend, err)
		}
		backend = client
	default:
		backend = llm.NewOllamaClient(llm.ClientConfig{
			Endpoint:    cfg.Endpoint,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			TopP:        cfg.TopP,
			Timeout:     cfg.Timeout,
		})
	}

	return NewWithBackend(cfg, logger, backend)
}

// NewWithBackend creates a Generator that uses the given backend. Used for
// testing with mock services.
func NewWithBackend(cfg Config, logger *zap.Logger, backend llm.Backend) (Generator, error) {
	applyDefaults(&cfg)
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	format, _ := types.ParseFormat(cfg.Format)

	locCfg := locate.Config{
		Extensions:    cfg.Extensions,
		IgnoredDirs:   cfg.IgnoredDirs,
		PriorityNames: cfg.PriorityNames,
	}
	if cfg.RespectGitignore {
		ig, err := gitpkg.LoadIgnorer(cfg.Directory)
		if err != nil {
			return nil, err
		}
		locCfg.Ignorer = ig
	}

	var describe internaldocgen.RepoDescriber
	if !cfg.NoGit {
		describe = gitpkg.Describe
	}

	runner := internaldocgen.NewRunner(internaldocgen.Deps{
		Backend:      backend,
		Fs:           afero.NewOsFs(),
		Logger:       logger,
		DescribeRepo: describe,
		Directory:    cfg.Directory,
		MaxFiles:     cfg.MaxFiles,
		Format:       format,
		OutputStem:   cfg.Output,
		OutputDir:    cfg.OutputDir,
		ProjectName:  cfg.ProjectName,
		Description:  cfg.Description,
		Locator:      locCfg,
		Prompt:       prompt.Config{PreviewChars: cfg.PreviewChars},
	})

	return &generatorAdapter{runner: runner}, nil
}

// generatorAdapter adapts internal/docgen.Runner to the public Generator interface.
type generatorAdapter struct {
	runner *internaldocgen.Runner
}

func (a *generatorAdapter) Run(ctx context.Context) (*Result, error) {
	ir, err := a.runner.Run(ctx)
	if ir == nil {
		return &Result{}, err
	}
	res := &Result{
		Outcome:         ir.Outcome.String(),
		OutputPath:      ir.OutputPath,
		DocumentChars:   ir.DocumentChars,
		FilesFound:      ir.FilesFound,
		FilesRead:       ir.FilesRead,
		PromptChars:     ir.Prompt.Chars,
		EstimatedTokens: ir.Prompt.EstimatedTokens,
		Diagnostics:     ir.Diagnostics,
		Markdown:        ir.Markdown,
	}
	if ir.Repo != nil {
		res.Branch = ir.Repo.Branch
		res.Head = ir.Repo.Head
	}
	return res, err
}

// validateConfig checks that fields are usable after defaults are applied.
func validateConfig(cfg Config) error {
	if info, err := os.Stat(cfg.Directory); err != nil || !info.IsDir() {
		return fmt.Errorf("Directory %q does not exist or is not a directory", cfg.Directory)
	}
	if _, err := types.ParseFormat(cfg.Format); err != nil {
		return err
	}
	switch cfg.Backend {
	case BackendOllama:
	case BackendBedrock:
		if cfg.Model == "" {
			return fmt.Errorf("Model is required for the bedrock backend")
		}
		if cfg.Region == "" {
			return fmt.Errorf("Region is required for the bedrock backend")
		}
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", cfg.Backend, BackendOllama, BackendBedrock)
	}
	if cfg.MaxFiles < 0 {
		return fmt.Errorf("MaxFiles must not be negative, got %d", cfg.MaxFiles)
	}
	if cfg.Temperature < 0 {
		return fmt.Errorf("Temperature must not be negative, got %g", cfg.Temperature)
	}
	if cfg.TopP < 0 || cfg.TopP > 1 {
		return fmt.Errorf("TopP must be within [0, 1], got %g", cfg.TopP)
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("Timeout must not be negative, got %s", cfg.Timeout)
	}
	if cfg.PreviewChars < 0 {
		return fmt.Errorf("PreviewChars must not be negative, got %d", cfg.PreviewChars)
	}
	return nil
}

// applyDefaults fills in zero-value fields with their defaults. Backend
// clients default their own sampling and timeout settings.
func applyDefaults(cfg *Config) {
	if cfg.Directory == "" {
		cfg.Directory = defaultDirectory
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if cfg.Backend == "" {
		cfg.Backend = BackendOllama
	}
	if cfg.Format == "" {
		cfg.Format = string(types.FormatMarkdown)
	}
	if cfg.MaxFiles == 0 {
		cfg.MaxFiles = defaultMaxFiles
	}
	if cfg.Backend == BackendOllama && cfg.Model == "" {
		cfg.Model = llm.DefaultModel
	}
}
