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
	"github.com/AleutianAI/GraphLite/services/graphlite/result"
)

// Stats summarizes structural properties of a loaded graph. It feeds the
// --stats mode, which renders it through the same sink as query results.
type Stats struct {
	// Nodes is the vertex count.
	Nodes int

	// Edges is the edge count.
	Edges int

	// Density is edges / (nodes * (nodes - 1)) for a directed graph.
	// Zero for graphs with fewer than two nodes.
	Density float64

	// Orphans counts nodes with no edges at all.
	Orphans int

	// Leaves counts nodes with total degree exactly one.
	Leaves int

	// MaxDegreeNode is the identifier of the highest-degree node. Ties
	// resolve to the earliest-inserted node. Null for an empty graph.
	MaxDegreeNode result.Value

	// MaxDegree is the degree of MaxDegreeNode.
	MaxDegree int

	// SelfLoops counts edges whose endpoints coincide.
	SelfLoops int
}

// ComputeStats walks the graph once per metric family. The graph is
// read-only here, so this is safe at any point in a session.
func ComputeStats(g *Graph) Stats {
	s := Stats{
		Nodes:         g.NodeCount(),
		Edges:         g.EdgeCount(),
		MaxDegreeNode: result.Null(),
	}

	if s.Nodes > 1 {
		s.Density = float64(s.Edges) / float64(s.Nodes*(s.Nodes-1))
	}

	for _, n := range g.Nodes() {
		d := g.Degree(n.ID)
		switch d {
		case 0:
			s.Orphans++
		case 1:
			s.Leaves++
		}
		if d > s.MaxDegree || s.MaxDegreeNode.IsNull() {
			s.MaxDegree = d
			s.MaxDegreeNode = n.ID
		}
	}

	for _, e := range g.Edges() {
		if e.From.Key() == e.To.Key() {
			s.SelfLoops++
		}
	}

	return s
}

// ResultSet renders the stats as a single-record set with a fixed schema,
// so every output format of the sink applies unchanged.
func (s Stats) ResultSet() *result.Set {
	set := result.NewSet([]string{
		"Nodes", "Edges", "Density", "Orphans", "Leaves",
		"MaxDegreeNode", "MaxDegree", "SelfLoops",
	})
	// The schema is fixed; Append cannot fail here.
	_ = set.Append([]result.Value{
		result.Int(s.Nodes),
		result.Int(s.Edges),
		result.Number(s.Density),
		result.Int(s.Orphans),
		result.Int(s.Leaves),
		s.MaxDegreeNode,
		result.Int(s.MaxDegree),
		result.Int(s.SelfLoops),
	})
	return set
}
