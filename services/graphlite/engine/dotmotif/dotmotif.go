// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package dotmotif finds injective subgraph monomorphisms for motifs
// written one edge per line:
//
//	A -> B
//	B -> C
//	C !> A   # C must not point back at A
//
// Lines starting with '#' are comments. Every motif variable must be
// bound to a distinct graph node; positive edges must exist and negated
// edges must not. Result columns follow the order variables first appear
// in the motif text.
package dotmotif

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AleutianAI/GraphLite/services/graphlite/graph"
	"github.com/AleutianAI/GraphLite/services/graphlite/result"
)

// Engine runs dotmotif motifs. Stateless; safe for reuse across queries.
type Engine struct{}

func New() *Engine { return &Engine{} }

type motifEdge struct {
	from    string
	to      string
	negated bool
}

type motif struct {
	variables []string // first-appearance order
	edges     []motifEdge
}

// parse reads a motif block. At least one positive edge is required: a
// motif of only negations has no anchor to search from.
func parse(src string) (*motif, error) {
	m := &motif{}
	seen := map[string]bool{}
	record := func(name string) {
		if !seen[name] {
			seen[name] = true
			m.variables = append(m.variables, name)
		}
	}

	positives := 0
	for lineNo, line := range strings.Split(src, "\n") {
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		negated := false
		var parts []string
		switch {
		case strings.Contains(line, "!>"):
			negated = true
			parts = strings.SplitN(line, "!>", 2)
		case strings.Contains(line, "->"):
			parts = strings.SplitN(line, "->", 2)
		default:
			return nil, fmt.Errorf("line %d: expected 'A -> B' or 'A !> B', got %q", lineNo+1, line)
		}

		from := strings.TrimSpace(parts[0])
		to := strings.TrimSpace(parts[1])
		if !validVariable(from) || !validVariable(to) {
			return nil, fmt.Errorf("line %d: bad variable name in %q", lineNo+1, line)
		}

		record(from)
		record(to)
		m.edges = append(m.edges, motifEdge{from: from, to: to, negated: negated})
		if !negated {
			positives++
		}
	}

	if len(m.edges) == 0 {
		return nil, errors.New("empty motif")
	}
	if positives == 0 {
		return nil, errors.New("motif needs at least one positive edge")
	}
	return m, nil
}

func validVariable(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Run finds every injective assignment of motif variables to graph nodes
// satisfying all edge constraints. Search follows variable order with
// nodes tried in insertion order, so output is deterministic.
func (e *Engine) Run(ctx context.Context, g *graph.Graph, src string) (*result.Set, error) {
	m, err := parse(src)
	if err != nil {
		return nil, err
	}

	set := result.NewSet(m.variables)
	bound := make(map[string]result.Value, len(m.variables))
	used := map[string]bool{}

	if err := e.assign(ctx, g, m, 0, bound, used, set); err != nil {
		return nil, err
	}
	return set, nil
}

func (e *Engine) assign(ctx context.Context, g *graph.Graph, m *motif, varIdx int, bound map[string]result.Value, used map[string]bool, set *result.Set) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if varIdx == len(m.variables) {
		row := make([]result.Value, len(m.variables))
		for i, name := range m.variables {
			row[i] = bound[name]
		}
		return set.Append(row)
	}

	name := m.variables[varIdx]
	for _, n := range g.Nodes() {
		if used[n.ID.Key()] {
			continue
		}
		bound[name] = n.ID
		used[n.ID.Key()] = true

		if e.consistent(g, m, bound) {
			if err := e.assign(ctx, g, m, varIdx+1, bound, used, set); err != nil {
				return err
			}
		}

		delete(bound, name)
		delete(used, n.ID.Key())
	}
	return nil
}

// consistent checks every motif edge whose endpoints are both bound.
// Checking partial assignments prunes the search early.
func (e *Engine) consistent(g *graph.Graph, m *motif, bound map[string]result.Value) bool {
	for _, edge := range m.edges {
		from, okF := bound[edge.from]
		to, okT := bound[edge.to]
		if !okF || !okT {
			continue
		}
		exists := g.HasEdgeBetween(from, to)
		if edge.negated == exists {
			return false
		}
	}
	return true
}
