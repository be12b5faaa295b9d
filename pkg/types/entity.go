// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines shared types used across go-docgen packages.
package types

// EntityKind identifies the category of a documented declaration.
type EntityKind int

const (
	KindFunction EntityKind = iota // def / function declaration
	KindClass                      // class declaration
	KindVariable                   // const / let / var declaration
)

// String returns the human-readable name of the entity kind.
func (k EntityKind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// Entity is a declaration with its attached documentation text, as found by
// one of the pattern-based extractors.
type Entity struct {
	Kind    EntityKind // Category derived from the keyword
	Keyword string     // Declaration keyword as written (def, class, function, const, ...)
	Name    string     // Identifier following the keyword
	Doc     string     // Cleaned documentation text
}

// Key returns the per-file mapping key "<keyword> <name>".
func (e Entity) Key() string {
	return e.Keyword + " " + e.Name
}
