// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package prompt

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-docgen/internal/extract"
	"github.com/petar-djukic/go-docgen/pkg/types"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		name    string
		content string
		limit   int
		want    string
	}{
		{"shorter than cap", "hello", 10, "hello"},
		{"exactly cap", "hello", 5, "hello"},
		{"longer than cap", "hello world", 5, "hello..."},
		{"empty", "", 5, ""},
		{"multibyte counted as characters", "héllo wörld", 7, "héllo w..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Preview(tt.content, tt.limit, "..."))
		})
	}
}

func TestPreview_LengthProperty(t *testing.T) {
	for _, n := range []int{0, 1, 1999, 2000, 2001, 5000} {
		content := strings.Repeat("x", n)
		got := Preview(content, 2000, "...")
		if n > 2000 {
			assert.Equal(t, 2000+3, utf8.RuneCountInString(got), "n=%d", n)
			assert.True(t, strings.HasSuffix(got, "..."))
		} else {
			assert.Equal(t, content, got, "n=%d", n)
		}
	}
}

func TestFileBlock_LargeFileIsCapped(t *testing.T) {
	a := New(Config{})
	content := strings.Repeat("a", 5000)

	block := a.FileBlock(types.FileRecord{Path: "src/big.ts", Content: content})

	header := "--- File: src/big.ts ---\n"
	require.True(t, strings.HasPrefix(block, header))
	preview := strings.TrimPrefix(block, header)
	assert.Equal(t, strings.Repeat("a", 2000)+"...", preview)
}

func TestDocBlock(t *testing.T) {
	t.Run("python entities", func(t *testing.T) {
		block := DocBlock(FileDocs{
			Record:  types.FileRecord{Path: "tool.py"},
			Dialect: extract.DialectPython,
			Entities: []types.Entity{
				{Keyword: "class", Name: "Tool", Doc: "A tool."},
				{Keyword: "def", Name: "run", Doc: "Runs it."},
			},
		})
		assert.Equal(t, "--- Docstrings from tool.py ---\nclass Tool: A tool.\ndef run: Runs it.", block)
	})

	t.Run("jsdoc entities", func(t *testing.T) {
		block := DocBlock(FileDocs{
			Record:   types.FileRecord{Path: "src/util.ts"},
			Dialect:  extract.DialectJSDoc,
			Entities: []types.Entity{{Keyword: "function", Name: "fmt", Doc: "Formats."}},
		})
		assert.Equal(t, "--- JSDoc from src/util.ts ---\nfunction fmt: Formats.", block)
	})

	t.Run("no entities", func(t *testing.T) {
		assert.Empty(t, DocBlock(FileDocs{Record: types.FileRecord{Path: "main.go"}}))
	})
}

func sampleInput(format types.Format) Input {
	return Input{
		Format:      format,
		ProjectName: "portfolio",
		Files: []FileDocs{
			{Record: types.FileRecord{Path: "App.tsx", Content: "export default function App() {}"}},
			{
				Record:   types.FileRecord{Path: "tool.py", Content: "def run():\n    \"\"\"Runs.\"\"\"\n"},
				Dialect:  extract.DialectPython,
				Entities: []types.Entity{{Keyword: "def", Name: "run", Doc: "Runs."}},
			},
		},
	}
}

func TestAssemble(t *testing.T) {
	a := New(Config{})

	text, stats, err := a.Assemble(sampleInput(types.FormatMarkdown))
	require.NoError(t, err)

	for _, heading := range []string{
		"# Project Documentation",
		"## 1. Project Overview",
		"## 2. Architecture and Design",
		"## 3. Key Components and Modules",
		"## 4. Development Setup",
		"## 5. Deployment",
		"## 6. File Documentation",
		"## 7. Best Practices and Guidelines",
	} {
		assert.Contains(t, text, heading)
	}
	assert.Contains(t, text, `("portfolio")`)
	assert.Contains(t, text, "Generate documentation in well-structured Markdown format.")
	assert.Contains(t, text, "--- Docstrings from tool.py ---\ndef run: Runs.")
	assert.Contains(t, text, "Do not include any backticks or code block markers in your response")

	appIdx := strings.Index(text, "--- File: App.tsx ---")
	toolIdx := strings.Index(text, "--- File: tool.py ---")
	require.NotEqual(t, -1, appIdx)
	require.NotEqual(t, -1, toolIdx)
	assert.Less(t, appIdx, toolIdx)

	assert.Equal(t, utf8.RuneCountInString(text), stats.Chars)
	assert.Equal(t, stats.Chars/4, stats.EstimatedTokens)
}

func TestAssemble_FormatInstructions(t *testing.T) {
	a := New(Config{})
	tests := []struct {
		format types.Format
		want   string
	}{
		{types.FormatMarkdown, "well-structured Markdown format"},
		{types.FormatHTML, "HTML format with proper HTML5 structure"},
		{types.FormatPDF, "Markdown format that will be converted to PDF"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			text, _, err := a.Assemble(sampleInput(tt.format))
			require.NoError(t, err)
			assert.Contains(t, text, tt.want)
		})
	}
}

func TestAssemble_Deterministic(t *testing.T) {
	a := New(Config{})
	in := sampleInput(types.FormatHTML)

	first, _, err := a.Assemble(in)
	require.NoError(t, err)
	second, _, err := New(Config{}).Assemble(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAssemble_OptionalSections(t *testing.T) {
	a := New(Config{})

	in := sampleInput(types.FormatMarkdown)
	in.Description = "  A portfolio site built with React.  "
	in.Repo = &types.RepoInfo{Branch: "main", Head: "abc1234"}

	text, _, err := a.Assemble(in)
	require.NoError(t, err)
	assert.Contains(t, text, "Project Overview:\nA portfolio site built with React.")
	assert.Contains(t, text, "Repository state: branch main at commit abc1234\n")

	in.Repo = &types.RepoInfo{Head: "def5678", Dirty: true}
	detached, _, err := a.Assemble(in)
	require.NoError(t, err)
	assert.Contains(t, detached, "Repository state: commit def5678 (with uncommitted changes)")

	plain, _, err := a.Assemble(sampleInput(types.FormatMarkdown))
	require.NoError(t, err)
	assert.NotContains(t, plain, "Project Overview:\n")
	assert.NotContains(t, plain, "Repository state:")
}

func TestAssemble_CustomConfig(t *testing.T) {
	a := New(Config{PreviewChars: 3, Marker: " [cut]", CharsPerToken: 2})

	text, stats, err := a.Assemble(Input{
		Format: types.FormatMarkdown,
		Files:  []FileDocs{{Record: types.FileRecord{Path: "a.go", Content: "package a"}}},
	})
	require.NoError(t, err)
	assert.Contains(t, text, "--- File: a.go ---\npac [cut]")
	assert.Equal(t, stats.Chars/2, stats.EstimatedTokens)
}
