// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package engine routes query strings to the language engine selected for
// the session and normalizes every engine's output into a result.Set.
//
// The language set is closed: cypher and dotmotif, one handler each. A
// query that the engine rejects surfaces as ErrQueryExecution, which the
// session treats as recoverable; mixed value kinds under one variable
// surface as result.ErrInconsistentResultType and are never coerced.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AleutianAI/GraphLite/services/graphlite/engine/cypher"
	"github.com/AleutianAI/GraphLite/services/graphlite/engine/dotmotif"
	"github.com/AleutianAI/GraphLite/services/graphlite/graph"
	"github.com/AleutianAI/GraphLite/services/graphlite/result"
)

var (
	// ErrQueryExecution wraps any parse or execution failure from a
	// language engine.
	ErrQueryExecution = errors.New("query execution failed")

	// ErrUnknownLanguage indicates a language outside the supported set.
	ErrUnknownLanguage = errors.New("unknown query language")
)

// Language selects which engine a query is routed to.
type Language string

const (
	LanguageCypher   Language = "cypher"
	LanguageDotMotif Language = "dotmotif"
)

// ParseLanguage validates a user-supplied language name.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cypher":
		return LanguageCypher, nil
	case "dotmotif":
		return LanguageDotMotif, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: cypher, dotmotif)", ErrUnknownLanguage, s)
	}
}

// MultiLine reports whether the language's queries span multiple lines in
// the interactive session. DotMotif motifs are line-per-edge blocks
// submitted on a blank line; cypher queries are single lines.
func (l Language) MultiLine() bool {
	return l == LanguageDotMotif
}

// Engine is one query-language implementation.
type Engine interface {
	// Run executes a query against a read-only graph. The returned set
	// may be empty; empty is not an error.
	Run(ctx context.Context, g *graph.Graph, query string) (*result.Set, error)
}

// Dispatcher routes queries to the registered engines.
type Dispatcher struct {
	engines map[Language]Engine
}

// NewDispatcher builds a dispatcher with both supported engines.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		engines: map[Language]Engine{
			LanguageCypher:   cypher.New(),
			LanguageDotMotif: dotmotif.New(),
		},
	}
}

// Execute runs one query under the given language. Kind-consistency
// violations pass through unwrapped so callers can tell them apart from
// ordinary query failures.
func (d *Dispatcher) Execute(ctx context.Context, g *graph.Graph, query string, lang Language) (*result.Set, error) {
	eng, ok := d.engines[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}

	set, err := eng.Run(ctx, g, query)
	if err != nil {
		if errors.Is(err, result.ErrInconsistentResultType) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrQueryExecution, lang, err)
	}
	return set, nil
}
