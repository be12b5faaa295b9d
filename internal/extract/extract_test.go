// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/petar-djukic/go-docgen/pkg/types"
)

const pythonSource = `import os

class Greeter(object):
    """Says hello."""

    def greet(self, name):
        """Return a greeting
        for name."""
        return "hi " + name
`

const jsSource = `import React from "react";

/**
 * Formats a date.
 *
 * @param d the date
 */
export function formatDate(d) {
  return d.toISOString();
}

/** Config object */
const config = {};

/** Hook for scrolling */
export const useSmoothScroll = () => {};

/** Widget */
export default class Widget {}
`

func TestDialectFor(t *testing.T) {
	tests := []struct {
		path string
		want Dialect
	}{
		{"tool.py", DialectPython},
		{"src/App.tsx", DialectJSDoc},
		{"lib/util.ts", DialectJSDoc},
		{"index.js", DialectJSDoc},
		{"main.go", DialectNone},
		{"README.md", DialectNone},
		{"Makefile", DialectNone},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DialectFor(tt.path))
		})
	}
}

func TestExtract_Python(t *testing.T) {
	got := Extract(pythonSource, DialectPython)

	want := []types.Entity{
		{Kind: types.KindClass, Keyword: "class", Name: "Greeter", Doc: "Says hello."},
		{Kind: types.KindFunction, Keyword: "def", Name: "greet", Doc: "Return a greeting\n        for name."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "class Greeter", got[0].Key())
	assert.Equal(t, "def greet", got[1].Key())
}

func TestExtract_PythonAttachesToEarlierDeclaration(t *testing.T) {
	// The lazy match from the undocumented def runs forward to the next
	// docstring, so the text lands on "plain" and "documented" is missed.
	src := "def plain(x):\n    return x\n\ndef documented():\n    \"\"\"Docs.\"\"\"\n"

	got := Extract(src, DialectPython)

	want := []types.Entity{
		{Kind: types.KindFunction, Keyword: "def", Name: "plain", Doc: "Docs."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_PythonNameAbsorbsColon(t *testing.T) {
	// The name pattern stops only at whitespace or "(", so a bare
	// "class Name:" can swallow its colon when a later colon completes the
	// match.
	src := "class Plain:\n    x = 1\n\n    def run(self):\n        \"\"\"Runs.\"\"\"\n"

	got := Extract(src, DialectPython)

	want := []types.Entity{
		{Kind: types.KindClass, Keyword: "class", Name: "Plain:", Doc: "Runs."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}

	single := Extract("class Solo:\n    \"\"\"Alone.\"\"\"\n", DialectPython)
	assert.Equal(t, "class Solo", single[0].Key())
}

func TestExtract_DuplicateKeyLastWins(t *testing.T) {
	src := `def run():
    """first"""

def other():
    """middle"""

def run():
    """second"""
`
	got := Extract(src, DialectPython)

	want := []types.Entity{
		{Kind: types.KindFunction, Keyword: "def", Name: "run", Doc: "second"},
		{Kind: types.KindFunction, Keyword: "def", Name: "other", Doc: "middle"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_JSDoc(t *testing.T) {
	got := Extract(jsSource, DialectJSDoc)

	want := []types.Entity{
		{Kind: types.KindFunction, Keyword: "function", Name: "formatDate", Doc: "Formats a date.\n@param d the date"},
		{Kind: types.KindVariable, Keyword: "const", Name: "config", Doc: "Config object"},
		{Kind: types.KindVariable, Keyword: "const", Name: "useSmoothScroll", Doc: "Hook for scrolling"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_JSDocClass(t *testing.T) {
	src := "/**\n * A button.\n */\nclass Button extends Base {}\n"

	got := Extract(src, DialectJSDoc)

	assert.Equal(t, []types.Entity{
		{Kind: types.KindClass, Keyword: "class", Name: "Button", Doc: "A button."},
	}, got)
}

func TestExtract_NoMatchesOrUnknownDialect(t *testing.T) {
	assert.Empty(t, Extract("package main\n\nfunc main() {}\n", DialectNone))
	assert.Empty(t, Extract("x = 1\n", DialectPython))
	assert.Empty(t, Extract("// just a line comment\nlet x = 1;\n", DialectJSDoc))
	assert.Empty(t, Extract(pythonSource, DialectJSDoc))
}

func TestExtract_Idempotent(t *testing.T) {
	for _, tc := range []struct {
		src     string
		dialect Dialect
	}{
		{pythonSource, DialectPython},
		{jsSource, DialectJSDoc},
	} {
		first := Extract(tc.src, tc.dialect)
		second := Extract(tc.src, tc.dialect)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("second run differs (-first +second):\n%s", diff)
		}
	}
}

func TestCleanJSDoc(t *testing.T) {
	raw := "\n   * Line one.\n   *\n   ** Line two.\n   "
	assert.Equal(t, "Line one.\nLine two.", cleanJSDoc(raw))
}
