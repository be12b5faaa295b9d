// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package llm talks to the text-generation backend that writes the
// documentation. One request per run, no streaming.
package llm

import (
	"context"
	"errors"
)

// ErrUnreachable indicates the backend failed its health check.
var ErrUnreachable = errors.New("inference service unreachable")

// Outcome tags a generation Result.
type Outcome int

const (
	OutcomeOK             Outcome = iota // Text holds the generated document
	OutcomeEmpty                         // The service answered without usable text
	OutcomeTransportError                // Network, timeout, or non-success status
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeEmpty:
		return "empty"
	case OutcomeTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Result is the tagged outcome of one generation request. Text is set only
// for OutcomeOK; Detail describes every other outcome.
type Result struct {
	Outcome Outcome
	Text    string
	Detail  string
}

// OK reports whether the result carries a document.
func (r Result) OK() bool {
	return r.Outcome == OutcomeOK
}

func ok(text string) Result {
	return Result{Outcome: OutcomeOK, Text: text}
}

func empty(detail string) Result {
	return Result{Outcome: OutcomeEmpty, Detail: detail}
}

func transportError(detail string) Result {
	return Result{Outcome: OutcomeTransportError, Detail: detail}
}

// Backend generates text from a single prompt.
type Backend interface {
	// Ping returns nil when the backend is ready to accept work.
	Ping(ctx context.Context) error
	// Generate submits prompt and never returns an error; failures are
	// reported through the Result outcome.
	Generate(ctx context.Context, prompt string) Result
	// Name identifies the backend and model in diagnostics.
	Name() string
	// Remedy returns follow-up steps for the user after a failed request.
	Remedy() []string
	// StartHint tells the user how to bring the backend up after Ping fails.
	StartHint() string
}

var (
	_ Backend = (*OllamaClient)(nil)
	_ Backend = (*BedrockClient)(nil)
)
