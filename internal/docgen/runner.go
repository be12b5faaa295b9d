// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package docgen implements the documentation Runner, wiring the locator,
// extractor, prompt assembler, inference backend, and renderer into one
// sequential pass.
package docgen

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/petar-djukic/go-docgen/internal/extract"
	"github.com/petar-djukic/go-docgen/internal/llm"
	"github.com/petar-djukic/go-docgen/internal/locate"
	"github.com/petar-djukic/go-docgen/internal/output"
	"github.com/petar-djukic/go-docgen/internal/prompt"
	"github.com/petar-djukic/go-docgen/internal/render"
	"github.com/petar-djukic/go-docgen/pkg/types"
)

var (
	// ErrServiceUnavailable is returned when the health check fails. Nothing
	// is written.
	ErrServiceUnavailable = errors.New("inference service unavailable")

	// ErrNoDocument is returned when generation produced no usable text.
	// Nothing is written.
	ErrNoDocument = errors.New("no document produced")
)

// Outcome classifies how a run ended.
type Outcome int

const (
	OutcomeWritten     Outcome = iota // Document saved
	OutcomeNothingToDo                // No files found or none readable
	OutcomeUnreachable                // Health check failed
	OutcomeNoDocument                 // Generation failed or returned nothing usable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWritten:
		return "written"
	case OutcomeNothingToDo:
		return "nothing_to_do"
	case OutcomeUnreachable:
		return "unreachable"
	case OutcomeNoDocument:
		return "no_document"
	default:
		return "unknown"
	}
}

// RunResult holds the outcome of a Runner.Run invocation. This is the
// internal result type; pkg/docgen converts it to the public Result.
type RunResult struct {
	Outcome       Outcome
	OutputPath    string
	Markdown      string // Sanitized generated text before format conversion
	DocumentChars int
	FilesFound    int
	FilesRead     int
	Prompt        prompt.Stats
	Repo          *types.RepoInfo
	Diagnostics   []string
}

func (r *RunResult) diag(format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, fmt.Sprintf(format, args...))
}

// RepoDescriber reports version-control state for a directory.
type RepoDescriber func(dir string) (*types.RepoInfo, error)

// Deps holds injected dependencies for the runner.
type Deps struct {
	Backend      llm.Backend
	Fs           afero.Fs
	Logger       *zap.Logger
	DescribeRepo RepoDescriber // nil skips repository metadata
	Now          func() time.Time

	Directory   string
	MaxFiles    int
	Format      types.Format
	OutputStem  string // "" means a timestamped name
	OutputDir   string
	ProjectName string // "" means the base name of Directory
	Description string
	Locator     locate.Config
	Prompt      prompt.Config
}

// Runner orchestrates one documentation pass.
type Runner struct {
	deps Deps
}

// NewRunner creates a Runner with the given dependencies.
func NewRunner(deps Deps) *Runner {
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Format == "" {
		deps.Format = types.FormatMarkdown
	}
	return &Runner{deps: deps}
}

// Run executes the pipeline: health check, locate, read, extract, describe
// the repository, assemble, generate, sanitize, convert, save. Recoverable
// failures end the run with a nil error and diagnostics; an unreachable
// service or a missing document returns a sentinel error. No file is written
// unless every step before saving succeeds.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	log := r.deps.Logger
	backend := r.deps.Backend
	result := &RunResult{}

	// Step 1: Fail fast when the service is down.
	log.Info("checking inference service", zap.String("backend", backend.Name()))
	if err := backend.Ping(ctx); err != nil {
		result.Outcome = OutcomeUnreachable
		result.diag("Error: Cannot connect to %s. Make sure it is running.", backend.Name())
		result.diag("%s", backend.StartHint())
		log.Error("inference service unreachable", zap.Error(err))
		return result, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	// Step 2: Locate candidate files.
	log.Info("analyzing directory", zap.String("directory", r.deps.Directory))
	paths, err := locate.New(r.deps.Fs, r.deps.Locator).Find(ctx, r.deps.Directory, r.deps.MaxFiles)
	if err != nil {
		return result, fmt.Errorf("locating files: %w", err)
	}
	result.FilesFound = len(paths)
	if len(paths) == 0 {
		result.Outcome = OutcomeNothingToDo
		result.diag("No code files found in the project.")
		return result, nil
	}
	log.Info("found code files", zap.Int("count", len(paths)))

	// Steps 3-4: Read each file and extract documentation comments.
	files := make([]prompt.FileDocs, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		rec, err := extract.ReadFile(r.deps.Fs, r.deps.Directory, path)
		if err != nil {
			result.diag("Skipping file (could not read): %s", r.rel(path))
			log.Warn("skipping file", zap.String("path", path), zap.Error(err))
			continue
		}
		dialect := extract.DialectFor(rec.Path)
		entities := extract.Extract(rec.Content, dialect)
		log.Debug("read file",
			zap.String("path", rec.Path),
			zap.Stringer("dialect", dialect),
			zap.Int("entities", len(entities)))
		files = append(files, prompt.FileDocs{Record: rec, Dialect: dialect, Entities: entities})
	}
	result.FilesRead = len(files)
	if len(files) == 0 {
		result.Outcome = OutcomeNothingToDo
		result.diag("No files could be read successfully.")
		return result, nil
	}
	log.Info("read files", zap.Int("count", len(files)))

	// Step 5: Repository state is optional context.
	if r.deps.DescribeRepo != nil {
		info, err := r.deps.DescribeRepo(r.deps.Directory)
		if err != nil {
			log.Debug("no repository metadata", zap.Error(err))
		} else {
			result.Repo = info
		}
	}

	// Step 6: Assemble the prompt.
	text, stats, err := prompt.New(r.deps.Prompt).Assemble(prompt.Input{
		Format:      r.deps.Format,
		ProjectName: r.projectName(),
		Description: r.deps.Description,
		Repo:        result.Repo,
		Files:       files,
	})
	if err != nil {
		return result, fmt.Errorf("assembling prompt: %w", err)
	}
	result.Prompt = stats
	log.Info("prompt assembled",
		zap.Int("chars", stats.Chars),
		zap.Int("estimated_tokens", stats.EstimatedTokens))

	// Step 7: One generation request.
	log.Info("sending generation request",
		zap.String("backend", backend.Name()),
		zap.String("format", string(r.deps.Format)))
	gen := backend.Generate(ctx, text)
	if !gen.OK() {
		result.Outcome = OutcomeNoDocument
		switch gen.Outcome {
		case llm.OutcomeEmpty:
			result.diag("Warning: %s", gen.Detail)
		default:
			result.diag("Error connecting to %s: %s", backend.Name(), gen.Detail)
			result.Diagnostics = append(result.Diagnostics, backend.Remedy()...)
		}
		result.diag("Failed to generate documentation.")
		log.Error("generation failed",
			zap.Stringer("outcome", gen.Outcome),
			zap.String("detail", gen.Detail))
		return result, fmt.Errorf("%w: %s", ErrNoDocument, gen.Outcome)
	}

	// Step 8: Strip fences and reasoning spans.
	markdown := render.Sanitize(gen.Text)
	if strings.TrimSpace(markdown) == "" {
		result.Outcome = OutcomeNoDocument
		result.diag("Warning: generated text was empty after removing code fences and reasoning spans.")
		result.diag("Failed to generate documentation.")
		return result, fmt.Errorf("%w: empty after sanitizing", ErrNoDocument)
	}
	result.Markdown = markdown
	result.DocumentChars = len([]rune(markdown))

	// Step 9: Convert and save.
	doc := types.GeneratedDocument{Text: markdown, Format: r.deps.Format}
	if r.deps.Format == types.FormatHTML {
		html, err := render.ToHTML(markdown)
		if err != nil {
			return result, fmt.Errorf("converting to HTML: %w", err)
		}
		doc.Text = html
	}

	w := output.NewWriter(r.deps.Fs, r.deps.OutputDir).WithClock(r.deps.Now)
	path, err := w.Save(doc, r.deps.OutputStem)
	if err != nil {
		return result, fmt.Errorf("saving documentation: %w", err)
	}
	result.Outcome = OutcomeWritten
	result.OutputPath = path

	if r.deps.Format == types.FormatPDF {
		result.diag("Note: PDF conversion requires additional tools.")
		result.diag("The content has been saved as Markdown. To convert to PDF, you can use:")
		result.diag("- pandoc: 'pandoc -o output.pdf %s'", path)
		result.diag("- Or save as HTML with --format html and print it to PDF with a tool such as weasyprint")
	}

	log.Info("documentation saved",
		zap.String("path", path),
		zap.Int("chars", result.DocumentChars))
	return result, nil
}

func (r *Runner) rel(path string) string {
	rel, err := filepath.Rel(r.deps.Directory, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func (r *Runner) projectName() string {
	if r.deps.ProjectName != "" {
		return r.deps.ProjectName
	}
	abs, err := filepath.Abs(r.deps.Directory)
	if err != nil {
		return ""
	}
	return filepath.Base(abs)
}
