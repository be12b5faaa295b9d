// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import (
	"fmt"
	"strings"
)

// Format selects how the generated documentation is persisted.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf" // Saved as markdown; no binary PDF is produced
)

// Formats lists every accepted output format.
var Formats = []Format{FormatMarkdown, FormatHTML, FormatPDF}

// ParseFormat resolves a user-supplied format name, ignoring case and
// surrounding whitespace.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want markdown, html, or pdf)", s)
}

// Extension returns the file extension, without the dot, of the persisted
// artifact for this format.
func (f Format) Extension() string {
	if f == FormatHTML {
		return "html"
	}
	return "md"
}

// GeneratedDocument is the post-processed text returned by the inference
// backend, tagged with the format it will be written in.
type GeneratedDocument struct {
	Text   string
	Format Format
}
