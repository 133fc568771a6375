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
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AleutianAI/GraphLite/services/graphlite/graph"
	"github.com/AleutianAI/GraphLite/services/graphlite/result"
)

// candidateDelimiters are tried in order when guessing how an edgelist is
// split. Whitespace is the fallback when none of these fit.
var candidateDelimiters = []string{",", "\t", ";", "|"}

// guessDelimiter inspects up to the first five non-comment lines and
// returns the first candidate delimiter that splits every sampled line
// into the same number (>1) of fields. ok is false when no candidate
// fits, in which case the caller should split on whitespace.
func guessDelimiter(lines []string) (string, bool) {
	sample := make([]string, 0, 5)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		sample = append(sample, trimmed)
		if len(sample) == 5 {
			break
		}
	}
	if len(sample) == 0 {
		return "", false
	}

	for _, delim := range candidateDelimiters {
		count := strings.Count(sample[0], delim)
		if count == 0 {
			continue
		}
		consistent := true
		for _, line := range sample[1:] {
			if strings.Count(line, delim) != count {
				consistent = false
				break
			}
		}
		if consistent {
			return delim, true
		}
	}
	return "", false
}

// parseAttrValue turns a raw cell into a typed attribute. Numeric cells
// become float64; everything else stays a string.
func parseAttrValue(cell string) any {
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	return cell
}

// readEdgelist loads a headerless delimited file. The first two columns
// are source and target. A single extra column becomes a "weight"
// attribute; further columns get positional names (c3, c4, ...).
func readEdgelist(path string) (*graph.Graph, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	delim, ok := guessDelimiter(lines)
	g := graph.New()

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		var fields []string
		if ok {
			fields = strings.Split(trimmed, delim)
		} else {
			fields = strings.Fields(trimmed)
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: %s:%d: expected at least source and target, got %q",
				ErrUnreadableGraph, path, i+1, trimmed)
		}

		src := strings.TrimSpace(fields[0])
		tgt := strings.TrimSpace(fields[1])
		attrs := map[string]any{}
		switch {
		case len(fields) == 3:
			attrs["weight"] = parseAttrValue(strings.TrimSpace(fields[2]))
		case len(fields) > 3:
			for j, cell := range fields[2:] {
				attrs[fmt.Sprintf("c%d", j+3)] = parseAttrValue(strings.TrimSpace(cell))
			}
		}

		g.AddEdge(result.String(src), result.String(tgt), attrs)
	}
	return g, nil
}

// readHeaderedEdgelist loads a delimited file whose header row names the
// columns. The delimiter is guessed the same way as for headerless
// edgelists, so tab- and semicolon-separated files work too. sourceCol
// and targetCol pick the endpoint columns; every other column becomes an
// edge attribute keyed by its header.
func readHeaderedEdgelist(path, sourceCol, targetCol string) (*graph.Graph, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	comma := ','
	if delim, ok := guessDelimiter(lines); ok {
		comma = []rune(delim)[0]
	}

	r := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	r.Comma = comma
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: reading header: %v", ErrUnreadableGraph, path, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	srcIdx, tgtIdx := -1, -1
	for i, col := range header {
		switch col {
		case sourceCol:
			srcIdx = i
		case targetCol:
			tgtIdx = i
		}
	}
	if srcIdx < 0 {
		return nil, fmt.Errorf("%w: %s: source column %q not in header %v",
			ErrMissingColumn, path, sourceCol, header)
	}
	if tgtIdx < 0 {
		return nil, fmt.Errorf("%w: %s: target column %q not in header %v",
			ErrMissingColumn, path, targetCol, header)
	}

	g := graph.New()
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: %s:%d: %v", ErrUnreadableGraph, path, line, err)
		}

		attrs := map[string]any{}
		for i, cell := range row {
			if i == srcIdx || i == tgtIdx || i >= len(header) {
				continue
			}
			attrs[header[i]] = parseAttrValue(cell)
		}
		g.AddEdge(result.String(row[srcIdx]), result.String(row[tgtIdx]), attrs)
	}
	return g, nil
}

// readLines slurps a file into lines. Edgelists are small enough that
// whole-file reads keep the delimiter guesser simple.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableGraph, path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableGraph, path, err)
	}
	return lines, nil
}
