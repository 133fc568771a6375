// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package graphio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AleutianAI/GraphLite/services/graphlite/graph"
)

// Write serializes the graph to the given path, choosing the format from
// the filename extension. Unsupported extensions yield
// ErrUnsupportedOutput.
func Write(g *graph.Graph, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".graphml":
		return writeGraphML(g, path)
	case ".gml":
		return writeGML(g, path)
	case ".csv", ".edgelist":
		return writeEdgelist(g, path)
	case ".json":
		return writeNodeLink(g, path)
	default:
		return fmt.Errorf("%w: no writer for %q", ErrUnsupportedOutput, filepath.Ext(path))
	}
}

// writeEdgelist emits a headered source,target CSV. A "weight" edge
// attribute, when every edge carries one, becomes a third column.
func writeEdgelist(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	defer f.Close()

	edges := g.Edges()
	weighted := len(edges) > 0
	for _, e := range edges {
		if _, ok := e.Attrs["weight"]; !ok {
			weighted = false
			break
		}
	}

	w := csv.NewWriter(f)
	header := []string{"source", "target"}
	if weighted {
		header = append(header, "weight")
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	for _, e := range edges {
		row := []string{e.From.Display(), e.To.Display()}
		if weighted {
			row = append(row, fmt.Sprint(e.Attrs["weight"]))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

// nodeLinkDoc is the node-link JSON layout shared by most graph tooling.
type nodeLinkDoc struct {
	Directed bool           `json:"directed"`
	Nodes    []nodeLinkNode `json:"nodes"`
	Links    []nodeLinkEdge `json:"links"`
}

type nodeLinkNode struct {
	ID    any            `json:"id"`
	Attrs map[string]any `json:"attributes,omitempty"`
}

type nodeLinkEdge struct {
	Source any            `json:"source"`
	Target any            `json:"target"`
	Attrs  map[string]any `json:"attributes,omitempty"`
}

func writeNodeLink(g *graph.Graph, path string) error {
	doc := nodeLinkDoc{Directed: true}
	for _, n := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, nodeLinkNode{ID: n.ID.Any(), Attrs: n.Attrs})
	}
	for _, e := range g.Edges() {
		doc.Links = append(doc.Links, nodeLinkEdge{
			Source: e.From.Any(), Target: e.To.Any(), Attrs: e.Attrs,
		})
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	out = append(out, '\n')
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
