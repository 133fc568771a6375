// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package cypher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/GraphLite/services/graphlite/graph"
	"github.com/AleutianAI/GraphLite/services/graphlite/result"
)

// socialGraph: alice -> bob -> carol, alice -> carol, dave isolated.
// Ages on each node; the alice->bob edge carries type KNOWS.
func socialGraph() *graph.Graph {
	g := graph.New()
	g.AddNode(result.String("alice"), map[string]any{"age": 30.0})
	g.AddNode(result.String("bob"), map[string]any{"age": 41.0})
	g.AddNode(result.String("carol"), map[string]any{"age": 25.0})
	g.AddNode(result.String("dave"), map[string]any{"age": 60.0})
	g.AddEdge(result.String("alice"), result.String("bob"), map[string]any{"type": "KNOWS", "since": 2019.0})
	g.AddEdge(result.String("bob"), result.String("carol"), nil)
	g.AddEdge(result.String("alice"), result.String("carol"), nil)
	return g
}

func run(t *testing.T, g *graph.Graph, q string) *result.Set {
	t.Helper()
	set, err := New().Run(context.Background(), g, q)
	require.NoError(t, err)
	return set
}

func rowStrings(set *result.Set, i int) []string {
	row := set.Row(i)
	out := make([]string, len(row))
	for j, v := range row {
		out[j] = v.Display()
	}
	return out
}

func TestMatchAllEdges(t *testing.T) {
	set := run(t, socialGraph(), "MATCH (a)-[]->(b) RETURN a, b")
	assert.Equal(t, []string{"a", "b"}, set.Columns())
	assert.Equal(t, 3, set.Len())
}

func TestMatchWithLimit(t *testing.T) {
	set := run(t, socialGraph(), "match (a)-[]->(b) return a, b limit 2")
	assert.Equal(t, 2, set.Len())
}

func TestMatchChain(t *testing.T) {
	set := run(t, socialGraph(), "MATCH (a)-[]->(b)-[]->(c) RETURN a, b, c")
	require.Equal(t, 1, set.Len())
	assert.Equal(t, []string{"alice", "bob", "carol"}, rowStrings(set, 0))
}

func TestMatchReversedArrow(t *testing.T) {
	set := run(t, socialGraph(), "MATCH (a)<-[]-(b) RETURN a, b")
	assert.Equal(t, 3, set.Len())
	// Every row's b->a edge exists in the graph.
	g := socialGraph()
	for i := 0; i < set.Len(); i++ {
		row := set.Row(i)
		assert.True(t, g.HasEdgeBetween(row[1], row[0]))
	}
}

func TestMatchUndirected(t *testing.T) {
	// Undirected matches each edge in both orientations.
	set := run(t, socialGraph(), "MATCH (a)-[]-(b) RETURN a, b")
	assert.Equal(t, 6, set.Len())
}

func TestWhereProperty(t *testing.T) {
	set := run(t, socialGraph(), "MATCH (a)-[]->(b) WHERE b.age > 40 RETURN a, b")
	require.Equal(t, 1, set.Len())
	assert.Equal(t, []string{"alice", "bob"}, rowStrings(set, 0))
}

func TestWhereAndConjunction(t *testing.T) {
	q := "MATCH (a)-[]->(b) WHERE a.age >= 30 AND b.age < 30 RETURN b"
	set := run(t, socialGraph(), q)
	require.Equal(t, 2, set.Len())
	assert.Equal(t, []string{"carol"}, rowStrings(set, 0))
}

func TestWhereNegativeLiteral(t *testing.T) {
	// Every age clears -1, so all three edges match.
	set := run(t, socialGraph(), "MATCH (a)-[]->(b) WHERE a.age > -1 RETURN a, b")
	assert.Equal(t, 3, set.Len())

	g := socialGraph()
	g.AddEdge(result.String("carol"), result.String("dave"), map[string]any{"weight": -2.5})
	set = run(t, g, "MATCH (a)-[r]->(b) WHERE r.weight <= -2.5 RETURN a, b")
	require.Equal(t, 1, set.Len())
	assert.Equal(t, []string{"carol", "dave"}, rowStrings(set, 0))
}

func TestWhereOnIdentifier(t *testing.T) {
	set := run(t, socialGraph(), "MATCH (a)-[]->(b) WHERE a = 'alice' RETURN b")
	assert.Equal(t, 2, set.Len())
}

func TestReturnProjection(t *testing.T) {
	set := run(t, socialGraph(), "MATCH (a)-[]->(b) WHERE b = 'bob' RETURN a.age, b.age")
	assert.Equal(t, []string{"a.age", "b.age"}, set.Columns())
	require.Equal(t, 1, set.Len())
	assert.Equal(t, result.Number(30), set.Row(0)[0])
	assert.Equal(t, result.Number(41), set.Row(0)[1])
}

func TestRelationshipType(t *testing.T) {
	set := run(t, socialGraph(), "MATCH (a)-[r:KNOWS]->(b) RETURN a, b, r.since")
	require.Equal(t, 1, set.Len())
	assert.Equal(t, []string{"alice", "bob", "2019"}, rowStrings(set, 0))
}

func TestRelationshipVariableIdentifier(t *testing.T) {
	set := run(t, socialGraph(), "MATCH (a)-[r]->(b) WHERE b = 'bob' RETURN r")
	require.Equal(t, 1, set.Len())
	assert.Equal(t, "alice->bob", set.Row(0)[0].Display())
}

func TestRepeatedVariableMustRebind(t *testing.T) {
	// (a)-[]->(a) only matches self-loops; socialGraph has none.
	set := run(t, socialGraph(), "MATCH (a)-[]->(a) RETURN a")
	assert.Equal(t, 0, set.Len())

	g := socialGraph()
	g.AddEdge(result.String("dave"), result.String("dave"), nil)
	set = run(t, g, "MATCH (a)-[]->(a) RETURN a")
	require.Equal(t, 1, set.Len())
	assert.Equal(t, []string{"dave"}, rowStrings(set, 0))
}

func TestMultiplePatterns(t *testing.T) {
	q := "MATCH (a)-[]->(b), (b)-[]->(c) RETURN a, c"
	set := run(t, socialGraph(), q)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, []string{"alice", "carol"}, rowStrings(set, 0))
}

func TestEmptyResultIsNotError(t *testing.T) {
	set := run(t, socialGraph(), "MATCH (a)-[]->(b) WHERE a.age > 999 RETURN a")
	assert.True(t, set.Empty())
	assert.Equal(t, []string{"a"}, set.Columns())
}

func TestDeterministicAcrossRuns(t *testing.T) {
	g := socialGraph()
	first := run(t, g, "MATCH (a)-[]->(b) RETURN a, b")
	second := run(t, g, "MATCH (a)-[]->(b) RETURN a, b")
	require.Equal(t, first.Len(), second.Len())
	for i := 0; i < first.Len(); i++ {
		assert.Equal(t, first.Row(i), second.Row(i))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"no match keyword", "RETURN a"},
		{"missing return", "MATCH (a)-[]->(b)"},
		{"unbound return variable", "MATCH (a) RETURN z"},
		{"unbound where variable", "MATCH (a) WHERE z.age > 1 RETURN a"},
		{"bad limit", "MATCH (a) RETURN a LIMIT zero"},
		{"unterminated string", "MATCH (a) WHERE a = 'oops RETURN a"},
		{"double-ended arrow", "MATCH (a)<-[]->(b) RETURN a"},
		{"trailing garbage", "MATCH (a) RETURN a extra"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Run(context.Background(), socialGraph(), tt.query)
			assert.Error(t, err)
		})
	}
}

func TestMixedIdentifierKindsRejected(t *testing.T) {
	g := graph.New()
	g.AddEdge(result.String("a"), result.String("b"), nil)
	g.AddEdge(result.Int(1), result.Int(2), nil)

	_, err := New().Run(context.Background(), g, "MATCH (x)-[]->(y) RETURN x, y")
	assert.ErrorIs(t, err, result.ErrInconsistentResultType)
}
