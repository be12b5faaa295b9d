// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"regexp"
	"strings"
)

// Step is one text-to-text pass of a conversion pipeline.
type Step interface {
	Name() string
	Apply(text string) string
}

// Pipeline applies its steps in order.
type Pipeline []Step

// Apply runs every step over text.
func (p Pipeline) Apply(text string) string {
	for _, s := range p {
		text = s.Apply(text)
	}
	return text
}

// Names lists the step names in order.
func (p Pipeline) Names() []string {
	names := make([]string, len(p))
	for i, s := range p {
		names[i] = s.Name()
	}
	return names
}

// regexpStep replaces every match of re with repl.
type regexpStep struct {
	name string
	re   *regexp.Regexp
	repl string
}

func (s regexpStep) Name() string            { return s.name }
func (s regexpStep) Apply(text string) string { return s.re.ReplaceAllString(text, s.repl) }

// funcStep adapts a plain function to Step.
type funcStep struct {
	name string
	fn   func(string) string
}

func (s funcStep) Name() string            { return s.name }
func (s funcStep) Apply(text string) string { return s.fn(text) }

// HTMLSteps returns the markdown-to-HTML passes in the order they must run.
// The subset is deliberately small: headings of levels 1-3, flat "- " lists
// and paragraph breaks. Nested lists, tables, emphasis and links pass through
// untouched; the generation prompt forbids code fences and asks for a flat
// structure.
func HTMLSteps() Pipeline {
	return Pipeline{
		HeadingStep(1),
		HeadingStep(2),
		HeadingStep(3),
		ListItemStep(),
		ListGroupStep(),
		LineBreakStep(),
		ParagraphStep(),
	}
}

// HeadingStep converts lines starting with level '#' characters and a space.
func HeadingStep(level int) Step {
	return regexpStep{
		name: fmt.Sprintf("heading-%d", level),
		re:   regexp.MustCompile(fmt.Sprintf(`(?m)^%s (.*)$`, strings.Repeat("#", level))),
		repl: fmt.Sprintf("<h%d>${1}</h%d>", level, level),
	}
}

// ListItemStep wraps "- item" lines in <li>.
func ListItemStep() Step {
	return regexpStep{
		name: "list-item",
		re:   regexp.MustCompile(`(?m)^- (.*)$`),
		repl: "<li>${1}</li>",
	}
}

// ListGroupStep wraps each run of consecutive <li> lines in one <ul>.
func ListGroupStep() Step {
	return regexpStep{
		name: "list-group",
		re:   regexp.MustCompile(`(?:<li>[^\n]*</li>(?:\n|$))+`),
		repl: "<ul>\n${0}</ul>",
	}
}

// LineBreakStep turns a lone newline into <br> unless the next line opens a
// list or heading element.
func LineBreakStep() Step {
	return funcStep{name: "line-break", fn: func(text string) string {
		var buf strings.Builder
		for i := 0; i < len(text); i++ {
			if text[i] == '\n' && !newlineAt(text, i-1) && !newlineAt(text, i+1) && !opensBlock(text[i+1:]) {
				buf.WriteString("<br>")
				continue
			}
			buf.WriteByte(text[i])
		}
		return buf.String()
	}}
}

// ParagraphStep turns a blank line into a paragraph boundary unless the next
// line opens a list or heading element.
func ParagraphStep() Step {
	return funcStep{name: "paragraph", fn: func(text string) string {
		var buf strings.Builder
		for i := 0; i < len(text); i++ {
			if text[i] == '\n' && newlineAt(text, i+1) && !newlineAt(text, i-1) && !opensBlock(text[i+2:]) {
				buf.WriteString("</p>\n\n<p>")
				i++
				continue
			}
			buf.WriteByte(text[i])
		}
		return buf.String()
	}}
}

func newlineAt(text string, i int) bool {
	return i >= 0 && i < len(text) && text[i] == '\n'
}

var blockOpeners = []string{"<ul", "<ol", "<li", "<h1", "<h2", "<h3", "<h4", "<h5", "<h6"}

func opensBlock(rest string) bool {
	for _, p := range blockOpeners {
		if strings.HasPrefix(rest, p) {
			return true
		}
	}
	return false
}
