// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package prompt assembles the single instruction document sent to the
// inference backend.
package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/petar-djukic/go-docgen/internal/extract"
	"github.com/petar-djukic/go-docgen/pkg/types"
)

const (
	defaultPreviewChars  = 2000
	defaultMarker        = "..."
	defaultCharsPerToken = 4
	defaultPriorityHint  = "package.json, README.md, App.tsx, etc."
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var documentTmpl = template.Must(template.ParseFS(templateFS, "templates/document.tmpl"))

// formatInstructions holds the rendering instruction for each output format.
var formatInstructions = map[types.Format]string{
	types.FormatMarkdown: "Generate documentation in well-structured Markdown format.",
	types.FormatHTML:     "Generate documentation in HTML format with proper HTML5 structure.",
	types.FormatPDF:      "Generate documentation in Markdown format that will be converted to PDF.",
}

// Config configures prompt assembly. Zero values take the defaults.
type Config struct {
	PreviewChars  int    // Per-file content cap in characters (default 2000)
	Marker        string // Appended to truncated previews (default "...")
	CharsPerToken int    // Divisor for the token estimate (default 4)
	PriorityHint  string // File names the model is told to focus on first
}

// FileDocs pairs a file with the entities extracted from it.
type FileDocs struct {
	Record   types.FileRecord
	Dialect  extract.Dialect
	Entities []types.Entity
}

// Input is everything that goes into one prompt.
type Input struct {
	Format      types.Format
	ProjectName string
	Description string          // Optional project overview supplied by the user
	Repo        *types.RepoInfo // Optional
	Files       []FileDocs
}

// Stats reports prompt size. The token count is an estimate for logging and
// has no effect on assembly.
type Stats struct {
	Chars           int
	EstimatedTokens int
}

// Assembler renders prompts. It holds no state between calls.
type Assembler struct {
	cfg Config
}

// New creates an Assembler with defaults applied.
func New(cfg Config) *Assembler {
	if cfg.PreviewChars <= 0 {
		cfg.PreviewChars = defaultPreviewChars
	}
	if cfg.Marker == "" {
		cfg.Marker = defaultMarker
	}
	if cfg.CharsPerToken <= 0 {
		cfg.CharsPerToken = defaultCharsPerToken
	}
	if cfg.PriorityHint == "" {
		cfg.PriorityHint = defaultPriorityHint
	}
	return &Assembler{cfg: cfg}
}

type templateData struct {
	ProjectName        string
	Description        string
	Repo               *types.RepoInfo
	FormatInstructions string
	FileBlocks         []string
	DocBlocks          []string
	PriorityHint       string
}

// Assemble renders the prompt for in. The same input always yields the same
// bytes.
func (a *Assembler) Assemble(in Input) (string, Stats, error) {
	instructions, ok := formatInstructions[in.Format]
	if !ok {
		instructions = formatInstructions[types.FormatMarkdown]
	}

	data := templateData{
		ProjectName:        in.ProjectName,
		Description:        strings.TrimSpace(in.Description),
		Repo:               in.Repo,
		FormatInstructions: instructions,
		PriorityHint:       a.cfg.PriorityHint,
	}
	for _, f := range in.Files {
		data.FileBlocks = append(data.FileBlocks, a.FileBlock(f.Record))
		if block := DocBlock(f); block != "" {
			data.DocBlocks = append(data.DocBlocks, block)
		}
	}

	var buf bytes.Buffer
	if err := documentTmpl.Execute(&buf, data); err != nil {
		return "", Stats{}, fmt.Errorf("executing document template: %w", err)
	}

	text := strings.TrimSpace(buf.String())
	return text, a.Measure(text), nil
}

// FileBlock renders a file header followed by its content preview.
func (a *Assembler) FileBlock(rec types.FileRecord) string {
	return fmt.Sprintf("--- File: %s ---\n%s", rec.Path, Preview(rec.Content, a.cfg.PreviewChars, a.cfg.Marker))
}

// Measure returns the size statistics of text.
func (a *Assembler) Measure(text string) Stats {
	chars := utf8.RuneCountInString(text)
	return Stats{Chars: chars, EstimatedTokens: chars / a.cfg.CharsPerToken}
}

// DocBlock renders the extracted entities of one file, one "key: text" line
// each. It returns "" when the file has no entities.
func DocBlock(f FileDocs) string {
	if len(f.Entities) == 0 {
		return ""
	}
	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("--- %s from %s ---", f.Dialect, f.Record.Path))
	for _, e := range f.Entities {
		buf.WriteString(fmt.Sprintf("\n%s: %s", e.Key(), e.Doc))
	}
	return buf.String()
}

// Preview returns at most limit characters of content, followed by marker
// when content was cut.
func Preview(content string, limit int, marker string) string {
	if utf8.RuneCountInString(content) <= limit {
		return content
	}
	n := 0
	for i := range content {
		if n == limit {
			return content[:i] + marker
		}
		n++
	}
	return content
}
