// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package dotmotif

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/GraphLite/services/graphlite/graph"
	"github.com/AleutianAI/GraphLite/services/graphlite/result"
)

// triangle: a -> b -> c -> a, plus an offshoot c -> d.
func triangle() *graph.Graph {
	g := graph.New()
	g.AddEdge(result.String("a"), result.String("b"), nil)
	g.AddEdge(result.String("b"), result.String("c"), nil)
	g.AddEdge(result.String("c"), result.String("a"), nil)
	g.AddEdge(result.String("c"), result.String("d"), nil)
	return g
}

func run(t *testing.T, g *graph.Graph, motif string) *result.Set {
	t.Helper()
	set, err := New().Run(context.Background(), g, motif)
	require.NoError(t, err)
	return set
}

func TestSingleEdgeMotif(t *testing.T) {
	set := run(t, triangle(), "A -> B")
	assert.Equal(t, []string{"A", "B"}, set.Columns())
	assert.Equal(t, 4, set.Len())

	g := triangle()
	for i := 0; i < set.Len(); i++ {
		row := set.Row(i)
		assert.True(t, g.HasEdgeBetween(row[0], row[1]))
	}
}

func TestTriangleMotif(t *testing.T) {
	motif := "A -> B\nB -> C\nC -> A\n"
	set := run(t, triangle(), motif)
	// Three rotations of the one triangle; injectivity forbids reuse.
	assert.Equal(t, 3, set.Len())
	assert.Equal(t, []string{"A", "B", "C"}, set.Columns())
}

func TestInjectivity(t *testing.T) {
	g := graph.New()
	g.AddEdge(result.String("x"), result.String("x"), nil)

	// A and B must be distinct nodes, so a lone self-loop matches nothing.
	set := run(t, g, "A -> B")
	assert.Equal(t, 0, set.Len())
}

func TestNegatedEdge(t *testing.T) {
	motif := "A -> B\nB !> A\n"
	set := run(t, triangle(), motif)
	// All four edges qualify: the triangle has no reciprocated pairs.
	assert.Equal(t, 4, set.Len())

	g := triangle()
	g.AddEdge(result.String("b"), result.String("a"), nil)
	set = run(t, g, motif)
	// a->b and b->a now reciprocate, removing both orientations.
	assert.Equal(t, 3, set.Len())
}

func TestCommentsAndBlankLines(t *testing.T) {
	motif := "# the chain\nA -> B\n\nB -> C  # second hop\n"
	set := run(t, triangle(), motif)
	assert.Equal(t, []string{"A", "B", "C"}, set.Columns())
	assert.Equal(t, 4, set.Len())
}

func TestVariableOrderFollowsFirstAppearance(t *testing.T) {
	set := run(t, triangle(), "Z -> Q\nQ -> W\n")
	assert.Equal(t, []string{"Z", "Q", "W"}, set.Columns())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		motif string
	}{
		{"empty", ""},
		{"comments only", "# nothing here\n"},
		{"bad operator", "A => B"},
		{"bad variable", "A -> 9lives"},
		{"only negations", "A !> B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Run(context.Background(), triangle(), tt.motif)
			assert.Error(t, err)
		})
	}
}

func TestDeterministicAcrossRuns(t *testing.T) {
	g := triangle()
	first := run(t, g, "A -> B\nB -> C\n")
	second := run(t, g, "A -> B\nB -> C\n")
	require.Equal(t, first.Len(), second.Len())
	for i := 0; i < first.Len(); i++ {
		assert.Equal(t, first.Row(i), second.Row(i))
	}
}
