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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AleutianAI/GraphLite/services/graphlite/graph"
	"github.com/AleutianAI/GraphLite/services/graphlite/result"
)

// openCypher CSV columns follow the Neo4j bulk-import convention: a
// ":ID"-suffixed column identifies a vertex, ":START_ID"/":END_ID" name an
// edge's endpoints, and ":TYPE" carries the relationship type. Plain
// columns become attributes.

// readOpenCypher assembles one graph from separate vertex and edge CSV
// files. Edges referencing undeclared vertices are handled per policy:
// created on the fly, or rejected with graph.ErrDanglingEdgeReference.
func readOpenCypher(vertexFiles, edgeFiles []string, policy DanglingPolicy) (*graph.Graph, error) {
	g := graph.New()

	for _, path := range vertexFiles {
		if err := readVertexFile(g, path); err != nil {
			return nil, err
		}
	}
	for _, path := range edgeFiles {
		if err := readEdgeFile(g, path, policy); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func readVertexFile(g *graph.Graph, path string) error {
	header, rows, err := readCSV(path)
	if err != nil {
		return err
	}

	idIdx := -1
	for i, col := range header {
		if strings.HasSuffix(col, ":ID") {
			idIdx = i
			break
		}
	}
	if idIdx < 0 {
		return fmt.Errorf("%w: %s: no \":ID\" column in header %v",
			ErrMissingColumn, path, header)
	}

	for _, row := range rows {
		attrs := map[string]any{}
		for i, cell := range row {
			if i == idIdx || i >= len(header) {
				continue
			}
			attrs[attrName(header[i])] = parseAttrValue(cell)
		}
		g.AddNode(result.String(row[idIdx]), attrs)
	}
	return nil
}

func readEdgeFile(g *graph.Graph, path string, policy DanglingPolicy) error {
	header, rows, err := readCSV(path)
	if err != nil {
		return err
	}

	startIdx, endIdx := -1, -1
	for i, col := range header {
		switch {
		case strings.HasSuffix(col, ":START_ID"):
			startIdx = i
		case strings.HasSuffix(col, ":END_ID"):
			endIdx = i
		}
	}
	if startIdx < 0 {
		return fmt.Errorf("%w: %s: no \":START_ID\" column in header %v",
			ErrMissingColumn, path, header)
	}
	if endIdx < 0 {
		return fmt.Errorf("%w: %s: no \":END_ID\" column in header %v",
			ErrMissingColumn, path, header)
	}

	for n, row := range rows {
		from := result.String(row[startIdx])
		to := result.String(row[endIdx])

		if policy == DanglingError {
			if !g.HasNode(from) {
				return fmt.Errorf("%w: %s: row %d: start vertex %q never declared",
					graph.ErrDanglingEdgeReference, path, n+2, row[startIdx])
			}
			if !g.HasNode(to) {
				return fmt.Errorf("%w: %s: row %d: end vertex %q never declared",
					graph.ErrDanglingEdgeReference, path, n+2, row[endIdx])
			}
		}

		attrs := map[string]any{}
		for i, cell := range row {
			if i == startIdx || i == endIdx || i >= len(header) {
				continue
			}
			attrs[attrName(header[i])] = parseAttrValue(cell)
		}
		g.AddEdge(from, to, attrs)
	}
	return nil
}

// attrName strips the openCypher type annotation from a header cell:
// "age:int" becomes "age" and the reserved ":TYPE" column becomes "type".
func attrName(col string) string {
	if col == ":TYPE" {
		return "type"
	}
	if name, _, found := strings.Cut(col, ":"); found && name != "" {
		return name
	}
	return col
}

func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrUnreadableGraph, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: reading header: %v", ErrUnreadableGraph, path, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s: %v", ErrUnreadableGraph, path, err)
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}
