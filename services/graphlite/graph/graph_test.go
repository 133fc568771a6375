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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/GraphLite/services/graphlite/result"
)

func TestGraph_AddNodeMergesAttributes(t *testing.T) {
	g := New()
	g.AddNode(result.String("a"), map[string]any{"color": "red"})
	g.AddNode(result.String("a"), map[string]any{"size": 3})

	require.Equal(t, 1, g.NodeCount())
	n, ok := g.Node(result.String("a"))
	require.True(t, ok)
	assert.Equal(t, "red", n.Attrs["color"])
	assert.Equal(t, 3, n.Attrs["size"])
}

func TestGraph_StringAndNumericIdsAreDistinct(t *testing.T) {
	g := New()
	g.AddNode(result.String("1"), nil)
	g.AddNode(result.Number(1), nil)
	assert.Equal(t, 2, g.NodeCount())
}

func TestGraph_AddEdgeCreatesEndpoints(t *testing.T) {
	g := New()
	g.AddEdge(result.String("a"), result.String("b"), map[string]any{"weight": 2.0})

	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount())
	assert.True(t, g.HasEdgeBetween(result.String("a"), result.String("b")))
	assert.False(t, g.HasEdgeBetween(result.String("b"), result.String("a")))

	out := g.Outgoing(result.String("a"))
	require.Len(t, out, 1)
	assert.Equal(t, 2.0, out[0].Attrs["weight"])
}

func TestGraph_ParallelEdges(t *testing.T) {
	g := New()
	g.AddEdge(result.String("a"), result.String("b"), nil)
	g.AddEdge(result.String("a"), result.String("b"), nil)
	assert.Equal(t, 2, g.EdgeCount())
	assert.Len(t, g.Outgoing(result.String("a")), 2)
	assert.Len(t, g.Incoming(result.String("b")), 2)
}

func TestGraph_NodesInsertionOrder(t *testing.T) {
	g := New()
	for _, id := range []string{"c", "a", "b"} {
		g.AddNode(result.String(id), nil)
	}
	var got []string
	for _, n := range g.Nodes() {
		got = append(got, n.ID.Display())
	}
	assert.Equal(t, []string{"c", "a", "b"}, got)
}

// chainGraph builds a -> b -> c plus an isolated node and a self loop on d.
func chainGraph() *Graph {
	g := New()
	g.AddEdge(result.String("a"), result.String("b"), nil)
	g.AddEdge(result.String("b"), result.String("c"), nil)
	g.AddNode(result.String("isolated"), nil)
	g.AddEdge(result.String("d"), result.String("d"), nil)
	return g
}

func TestComputeStats(t *testing.T) {
	g := chainGraph()
	s := ComputeStats(g)

	assert.Equal(t, 5, s.Nodes)
	assert.Equal(t, 3, s.Edges)
	assert.Equal(t, 1, s.Orphans)
	// a and c each have total degree 1.
	assert.Equal(t, 2, s.Leaves)
	assert.Equal(t, 1, s.SelfLoops)
	// b has in 1 + out 1 = 2; d's self loop also counts 2 but b was
	// inserted first.
	assert.Equal(t, "b", s.MaxDegreeNode.Display())
	assert.Equal(t, 2, s.MaxDegree)
	assert.InDelta(t, 3.0/20.0, s.Density, 1e-9)
}

func TestComputeStats_EmptyGraph(t *testing.T) {
	s := ComputeStats(New())
	assert.Zero(t, s.Nodes)
	assert.Zero(t, s.Density)
	assert.True(t, s.MaxDegreeNode.IsNull())
}

func TestStats_ResultSet(t *testing.T) {
	set := ComputeStats(chainGraph()).ResultSet()
	require.Equal(t, 1, set.Len())

	rec := set.Record(0)
	nodes, ok := rec.Get("Nodes")
	require.True(t, ok)
	assert.Equal(t, int64(5), nodes.Any())

	edges, ok := rec.Get("Edges")
	require.True(t, ok)
	assert.Equal(t, int64(3), edges.Any())
}
