// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/GraphLite/services/graphlite/graph"
	"github.com/AleutianAI/GraphLite/services/graphlite/result"
)

func chain() *graph.Graph {
	g := graph.New()
	g.AddEdge(result.String("a"), result.String("b"), nil)
	g.AddEdge(result.String("b"), result.String("c"), nil)
	return g
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{"cypher", LanguageCypher, false},
		{"CYPHER", LanguageCypher, false},
		{" dotmotif ", LanguageDotMotif, false},
		{"sparql", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLanguage(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownLanguage, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestMultiLine(t *testing.T) {
	assert.False(t, LanguageCypher.MultiLine())
	assert.True(t, LanguageDotMotif.MultiLine())
}

func TestExecuteRoutesCypher(t *testing.T) {
	d := NewDispatcher()
	set, err := d.Execute(context.Background(), chain(), "MATCH (a)-[]->(b) RETURN a, b", LanguageCypher)
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
}

func TestExecuteRoutesDotMotif(t *testing.T) {
	d := NewDispatcher()
	set, err := d.Execute(context.Background(), chain(), "A -> B", LanguageDotMotif)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, set.Columns())
	assert.Equal(t, 2, set.Len())
}

func TestExecuteWrapsEngineFailures(t *testing.T) {
	d := NewDispatcher()
	_, err := d.Execute(context.Background(), chain(), "not a query", LanguageCypher)
	assert.ErrorIs(t, err, ErrQueryExecution)

	_, err = d.Execute(context.Background(), chain(), "also not a motif", LanguageDotMotif)
	assert.ErrorIs(t, err, ErrQueryExecution)
}

func TestExecuteKindViolationPassesThrough(t *testing.T) {
	g := graph.New()
	g.AddEdge(result.String("a"), result.String("b"), nil)
	g.AddEdge(result.Int(1), result.Int(2), nil)

	d := NewDispatcher()
	_, err := d.Execute(context.Background(), g, "MATCH (x)-[]->(y) RETURN x, y", LanguageCypher)
	assert.ErrorIs(t, err, result.ErrInconsistentResultType)
	assert.NotErrorIs(t, err, ErrQueryExecution)
}

func TestExecuteUnknownLanguage(t *testing.T) {
	d := NewDispatcher()
	_, err := d.Execute(context.Background(), chain(), "MATCH (a) RETURN a", Language("gremlin"))
	assert.ErrorIs(t, err, ErrUnknownLanguage)
}
