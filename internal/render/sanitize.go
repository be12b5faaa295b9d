// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package render cleans generated text and converts it to the requested
// output format.
package render

import "regexp"

var (
	fenceRe = regexp.MustCompile("(?s)```.*?```")
	thinkRe = regexp.MustCompile(`(?s)<think>.*?</think>`)
)

// Sanitize removes fenced code spans and <think>...</think> reasoning spans.
// Both matches are non-greedy and may span lines.
func Sanitize(text string) string {
	text = fenceRe.ReplaceAllString(text, "")
	return thinkRe.ReplaceAllString(text, "")
}
