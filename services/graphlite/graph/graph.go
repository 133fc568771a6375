// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package graph

import (
	"fmt"

	"github.com/AleutianAI/GraphLite/services/graphlite/result"
)

// Node is a vertex with a typed identifier and an open attribute map.
type Node struct {
	// ID is the identifier as the source format declared it. String and
	// numeric identifiers are distinct: node "1" and node 1 can coexist.
	ID result.Value

	// Attrs holds node attributes. Never nil.
	Attrs map[string]any
}

// Edge is a directed connection between two nodes with its own attributes.
type Edge struct {
	// From is the source node identifier.
	From result.Value

	// To is the target node identifier.
	To result.Value

	// Attrs holds edge attributes. Never nil.
	Attrs map[string]any
}

// Identifier returns a display form of the edge, used when a query binds an
// edge variable in a projection.
func (e *Edge) Identifier() result.Value {
	return result.String(fmt.Sprintf("%s->%s", e.From.Display(), e.To.Display()))
}

// Graph is a directed multigraph with insertion-ordered node iteration.
type Graph struct {
	nodes     map[string]*Node
	nodeOrder []string
	edges     []*Edge
	outgoing  map[string][]*Edge
	incoming  map[string][]*Edge
}

// New creates an empty directed graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]*Edge),
		incoming: make(map[string][]*Edge),
	}
}

// AddNode adds a node, or merges attributes into an existing node with the
// same identifier. Returns the stored node.
func (g *Graph) AddNode(id result.Value, attrs map[string]any) *Node {
	key := id.Key()
	if existing, ok := g.nodes[key]; ok {
		for k, v := range attrs {
			existing.Attrs[k] = v
		}
		return existing
	}
	if attrs == nil {
		attrs = make(map[string]any)
	}
	node := &Node{ID: id, Attrs: attrs}
	g.nodes[key] = node
	g.nodeOrder = append(g.nodeOrder, key)
	return node
}

// HasNode reports whether the identifier is present.
func (g *Graph) HasNode(id result.Value) bool {
	_, ok := g.nodes[id.Key()]
	return ok
}

// Node returns the node for an identifier.
func (g *Graph) Node(id result.Value) (*Node, bool) {
	n, ok := g.nodes[id.Key()]
	return n, ok
}

// AddEdge adds a directed edge, creating missing endpoints implicitly.
// Loaders that require endpoints to pre-exist check HasNode first.
func (g *Graph) AddEdge(from, to result.Value, attrs map[string]any) *Edge {
	g.AddNode(from, nil)
	g.AddNode(to, nil)
	if attrs == nil {
		attrs = make(map[string]any)
	}
	edge := &Edge{From: from, To: to, Attrs: attrs}
	g.edges = append(g.edges, edge)
	g.outgoing[from.Key()] = append(g.outgoing[from.Key()], edge)
	g.incoming[to.Key()] = append(g.incoming[to.Key()], edge)
	return edge
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodeOrder))
	for _, key := range g.nodeOrder {
		out = append(out, g.nodes[key])
	}
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []*Edge { return g.edges }

// Outgoing returns edges leaving the node.
func (g *Graph) Outgoing(id result.Value) []*Edge { return g.outgoing[id.Key()] }

// Incoming returns edges entering the node.
func (g *Graph) Incoming(id result.Value) []*Edge { return g.incoming[id.Key()] }

// HasEdgeBetween reports whether at least one edge runs from -> to.
func (g *Graph) HasEdgeBetween(from, to result.Value) bool {
	toKey := to.Key()
	for _, e := range g.outgoing[from.Key()] {
		if e.To.Key() == toKey {
			return true
		}
	}
	return false
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Degree returns the total degree (in + out) of a node. Self loops count
// twice, matching the usual directed-graph convention.
func (g *Graph) Degree(id result.Value) int {
	key := id.Key()
	return len(g.outgoing[key]) + len(g.incoming[key])
}
