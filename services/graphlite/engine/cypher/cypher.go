// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package cypher executes a Cypher subset against an in-memory graph:
// MATCH path patterns with directed, reversed, or undirected
// relationships, WHERE comparisons joined by AND, RETURN projections, and
// LIMIT. Matching is a depth-first backtracking walk in node and edge
// insertion order, so results are deterministic for an unchanged graph.
package cypher

import (
	"context"
	"errors"
	"fmt"

	"github.com/AleutianAI/GraphLite/services/graphlite/graph"
	"github.com/AleutianAI/GraphLite/services/graphlite/result"
)

// Engine runs cypher queries. Stateless; safe for reuse across queries.
type Engine struct{}

func New() *Engine { return &Engine{} }

// binding holds one variable assignment during the walk. Node variables
// bind identifiers; relationship variables bind edges.
type binding struct {
	nodes map[string]result.Value
	edges map[string]*graph.Edge
}

func (b *binding) bindNode(name string, id result.Value) (added bool, ok bool) {
	if name == "" {
		return false, true
	}
	if prev, exists := b.nodes[name]; exists {
		return false, prev.Equal(id)
	}
	b.nodes[name] = id
	return true, true
}

// Run executes one query. The result schema is the RETURN list in
// declared order; projections of the same column name repeat.
func (e *Engine) Run(ctx context.Context, g *graph.Graph, src string) (*result.Set, error) {
	q, err := parse(src)
	if err != nil {
		return nil, err
	}

	columns := make([]string, len(q.returns))
	for i, item := range q.returns {
		columns[i] = item.column()
	}
	set := result.NewSet(columns)

	b := &binding{nodes: map[string]result.Value{}, edges: map[string]*graph.Edge{}}
	err = e.matchPatterns(ctx, g, q, 0, b, set)
	if err != nil && !errors.Is(err, errLimitReached) {
		return nil, err
	}
	return set, nil
}

// errLimitReached aborts the walk once LIMIT rows are emitted.
var errLimitReached = errors.New("limit reached")

func (e *Engine) matchPatterns(ctx context.Context, g *graph.Graph, q *query, patIdx int, b *binding, set *result.Set) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if patIdx == len(q.patterns) {
		return e.emit(g, q, b, set)
	}
	pat := q.patterns[patIdx]
	next := func() error { return e.matchPatterns(ctx, g, q, patIdx+1, b, set) }
	return e.matchPath(g, pat, 0, b, next)
}

// matchPath anchors nodes[segIdx] and extends along rels[segIdx] until the
// chain is exhausted, then calls cont for the next pattern.
func (e *Engine) matchPath(g *graph.Graph, pat pathPattern, segIdx int, b *binding, cont func() error) error {
	if segIdx == 0 {
		anchor := pat.nodes[0]
		// An already-bound variable anchors the walk to one node.
		if id, exists := b.nodes[anchor.variable]; anchor.variable != "" && exists {
			return e.extend(g, pat, 0, id, b, cont)
		}
		for _, n := range g.Nodes() {
			added, ok := b.bindNode(anchor.variable, n.ID)
			if !ok {
				continue
			}
			if err := e.extend(g, pat, 0, n.ID, b, cont); err != nil {
				return err
			}
			if added {
				delete(b.nodes, anchor.variable)
			}
		}
		return nil
	}
	return cont()
}

// extend walks rels[segIdx] from the node currently bound at
// nodes[segIdx].
func (e *Engine) extend(g *graph.Graph, pat pathPattern, segIdx int, at result.Value, b *binding, cont func() error) error {
	if segIdx == len(pat.rels) {
		return cont()
	}
	rel := pat.rels[segIdx]

	try := func(edge *graph.Edge, neighbor result.Value) error {
		if rel.relType != "" && !edgeHasType(edge, rel.relType) {
			return nil
		}
		if rel.variable != "" {
			if prev, exists := b.edges[rel.variable]; exists && prev != edge {
				return nil
			} else if !exists {
				b.edges[rel.variable] = edge
				defer delete(b.edges, rel.variable)
			}
		}

		target := pat.nodes[segIdx+1]
		added, ok := b.bindNode(target.variable, neighbor)
		if !ok {
			return nil
		}
		if added {
			defer delete(b.nodes, target.variable)
		}
		return e.extend(g, pat, segIdx+1, neighbor, b, cont)
	}

	if rel.dir == dirOut || rel.dir == dirAny {
		for _, edge := range g.Outgoing(at) {
			if err := try(edge, edge.To); err != nil {
				return err
			}
		}
	}
	if rel.dir == dirIn || rel.dir == dirAny {
		for _, edge := range g.Incoming(at) {
			if err := try(edge, edge.From); err != nil {
				return err
			}
		}
	}
	return nil
}

// emit checks WHERE filters against a complete binding and appends one
// row, honoring LIMIT.
func (e *Engine) emit(g *graph.Graph, q *query, b *binding, set *result.Set) error {
	for _, cmp := range q.filters {
		v, err := resolveValue(g, b, cmp.variable, cmp.property)
		if err != nil {
			return err
		}
		if !compare(v, cmp.op, cmp.literal) {
			return nil
		}
	}

	row := make([]result.Value, len(q.returns))
	for i, item := range q.returns {
		v, err := resolveValue(g, b, item.variable, item.property)
		if err != nil {
			return err
		}
		row[i] = v
	}
	if err := set.Append(row); err != nil {
		return err
	}
	if q.limit > 0 && set.Len() >= q.limit {
		return errLimitReached
	}
	return nil
}

// resolveValue looks up a variable (or its property) in the binding.
func resolveValue(g *graph.Graph, b *binding, variable, property string) (result.Value, error) {
	if edge, ok := b.edges[variable]; ok {
		if property == "" {
			return edge.Identifier(), nil
		}
		return result.FromAny(edge.Attrs[property]), nil
	}

	id, ok := b.nodes[variable]
	if !ok {
		return result.Value{}, fmt.Errorf("variable %q is not bound", variable)
	}
	if property == "" {
		return id, nil
	}
	node, ok := g.Node(id)
	if !ok {
		return result.Null(), nil
	}
	return result.FromAny(node.Attrs[property]), nil
}

func edgeHasType(edge *graph.Edge, relType string) bool {
	t, ok := edge.Attrs["type"]
	if !ok {
		return false
	}
	return fmt.Sprint(t) == relType
}

// compare evaluates a WHERE operator. Cross-kind comparisons are false
// except equality against null.
func compare(v result.Value, op string, lit result.Value) bool {
	switch op {
	case "=":
		return v.Equal(lit)
	case "<>", "!=":
		return !v.Equal(lit)
	}

	ln, lok := v.Num()
	rn, rok := lit.Num()
	if lok && rok {
		switch op {
		case "<":
			return ln < rn
		case "<=":
			return ln <= rn
		case ">":
			return ln > rn
		case ">=":
			return ln >= rn
		}
	}

	ls, lsok := v.Str()
	rs, rsok := lit.Str()
	if lsok && rsok {
		switch op {
		case "<":
			return ls < rs
		case "<=":
			return ls <= rs
		case ">":
			return ls > rs
		case ">=":
			return ls >= rs
		}
	}
	return false
}

func (r returnItem) column() string {
	if r.property != "" {
		return r.variable + "." + r.property
	}
	return r.variable
}
