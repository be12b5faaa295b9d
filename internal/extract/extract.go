// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package extract reads source files and pulls documentation comments out of
// them with regular expressions.
//
// The matchers are heuristics, not parsers: they can miss documented
// declarations with unusual formatting and can attach a comment to the wrong
// declaration. Both outcomes are acceptable for prompt hints.
package extract

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/petar-djukic/go-docgen/pkg/types"
)

// Dialect identifies a documentation comment convention.
type Dialect int

const (
	DialectNone   Dialect = iota // No extraction
	DialectPython                // def/class followed by a triple-quoted docstring
	DialectJSDoc                 // /** ... */ block preceding a declaration
)

// String returns the label used in prompt headers.
func (d Dialect) String() string {
	switch d {
	case DialectPython:
		return "Docstrings"
	case DialectJSDoc:
		return "JSDoc"
	default:
		return "none"
	}
}

var dialectByExt = map[string]Dialect{
	".py":  DialectPython,
	".js":  DialectJSDoc,
	".ts":  DialectJSDoc,
	".tsx": DialectJSDoc,
}

// DialectFor returns the documentation dialect for a file path.
func DialectFor(path string) Dialect {
	return dialectByExt[filepath.Ext(path)]
}

var (
	pythonDocRe = regexp.MustCompile(`(?s)(def|class)\s+([^\s(]+).*?:\s*\n\s*"""(.*?)"""`)
	jsDocRe     = regexp.MustCompile(`(?s)/\*\*(.*?)\*/\s*(?:export\s+)?(function|class|const|let|var)\s+([^\s(=]+)`)
)

// Extract returns the documented entities found in content. Entities are
// ordered by the first occurrence of their key; when a key repeats within the
// same content the later documentation text replaces the earlier one.
func Extract(content string, dialect Dialect) []types.Entity {
	switch dialect {
	case DialectPython:
		return extractPython(content)
	case DialectJSDoc:
		return extractJSDoc(content)
	default:
		return nil
	}
}

func extractPython(content string) []types.Entity {
	var set entitySet
	for _, m := range pythonDocRe.FindAllStringSubmatch(content, -1) {
		set.put(types.Entity{
			Kind:    kindOf(m[1]),
			Keyword: m[1],
			Name:    m[2],
			Doc:     strings.TrimSpace(m[3]),
		})
	}
	return set.entities
}

func extractJSDoc(content string) []types.Entity {
	var set entitySet
	for _, m := range jsDocRe.FindAllStringSubmatch(content, -1) {
		set.put(types.Entity{
			Kind:    kindOf(m[2]),
			Keyword: m[2],
			Name:    m[3],
			Doc:     cleanJSDoc(m[1]),
		})
	}
	return set.entities
}

// cleanJSDoc trims each comment line, drops its leading asterisks, and
// removes lines left empty.
func cleanJSDoc(raw string) string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "*"))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func kindOf(keyword string) types.EntityKind {
	switch keyword {
	case "class":
		return types.KindClass
	case "def", "function":
		return types.KindFunction
	default:
		return types.KindVariable
	}
}

// entitySet keeps insertion order by key with last-write-wins values.
type entitySet struct {
	entities []types.Entity
	index    map[string]int
}

func (s *entitySet) put(e types.Entity) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	key := e.Key()
	if i, ok := s.index[key]; ok {
		s.entities[i] = e
		return
	}
	s.index[key] = len(s.entities)
	s.entities = append(s.entities, e)
}
