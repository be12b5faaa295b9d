// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "# Title\n\nBody.", "# Title\n\nBody."},
		{"single fence", "before```go\nfunc main() {}\n```after", "beforeafter"},
		{"multiple fences", "a```x```b```\ny\n```c", "abc"},
		{"think span across lines", "<think>\nplanning\nmore\n</think>\n# Doc", "\n# Doc"},
		{"multiple think spans", "<think>a</think>one<think>b\n</think>two", "onetwo"},
		{"fence and think", "<think>x</think># Doc\n```\ncode\n```\nend", "# Doc\n\nend"},
		{"unpaired fence kept", "a ``` b", "a ``` b"},
		{"unclosed think kept", "<think>never closed", "<think>never closed"},
		{"non-greedy", "```a``` keep ```b```", " keep "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}
