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
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/AleutianAI/GraphLite/services/graphlite/graph"
	"github.com/AleutianAI/GraphLite/services/graphlite/result"
)

// GML is a flat key/value format with bracketed blocks:
//
//	graph [
//	  directed 1
//	  node [ id 0 label "a" ]
//	  edge [ source 0 target 1 ]
//	]
//
// Nodes are relabeled by their "label" attribute when every node carries
// one, matching how most published GML datasets are consumed. The numeric
// id then only serves to join edges to nodes.

type gmlToken struct {
	text     string
	isString bool
}

func tokenizeGML(src string) []gmlToken {
	var tokens []gmlToken
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '#':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case unicode.IsSpace(rune(c)):
			i++
		case c == '[' || c == ']':
			tokens = append(tokens, gmlToken{text: string(c)})
			i++
		case c == '"':
			j := i + 1
			for j < len(src) && src[j] != '"' {
				j++
			}
			tokens = append(tokens, gmlToken{text: src[i+1 : min(j, len(src))], isString: true})
			i = j + 1
		default:
			j := i
			for j < len(src) && !unicode.IsSpace(rune(src[j])) && src[j] != '[' && src[j] != ']' {
				j++
			}
			tokens = append(tokens, gmlToken{text: src[i:j]})
			i = j
		}
	}
	return tokens
}

// gmlBlock is a parsed bracketed block: scalar values plus nested blocks.
type gmlBlock struct {
	scalars map[string]any
	nested  map[string][]*gmlBlock
}

func newGMLBlock() *gmlBlock {
	return &gmlBlock{scalars: map[string]any{}, nested: map[string][]*gmlBlock{}}
}

// parseGMLBlock consumes key/value pairs until a closing bracket or the
// token stream ends, returning the block and the next token index.
func parseGMLBlock(tokens []gmlToken, pos int) (*gmlBlock, int, error) {
	block := newGMLBlock()
	for pos < len(tokens) {
		tok := tokens[pos]
		if !tok.isString && tok.text == "]" {
			return block, pos + 1, nil
		}

		key := tok.text
		pos++
		if pos >= len(tokens) {
			return nil, pos, fmt.Errorf("key %q has no value", key)
		}

		val := tokens[pos]
		if !val.isString && val.text == "[" {
			nested, next, err := parseGMLBlock(tokens, pos+1)
			if err != nil {
				return nil, next, err
			}
			block.nested[key] = append(block.nested[key], nested)
			pos = next
			continue
		}

		if val.isString {
			block.scalars[key] = val.text
		} else if f, err := strconv.ParseFloat(val.text, 64); err == nil {
			block.scalars[key] = f
		} else {
			block.scalars[key] = val.text
		}
		pos++
	}
	return block, pos, nil
}

func readGML(path string) (*graph.Graph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableGraph, path, err)
	}

	tokens := tokenizeGML(string(raw))
	root, _, err := parseGMLBlock(tokens, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableGraph, path, err)
	}

	graphs := root.nested["graph"]
	if len(graphs) == 0 {
		return nil, fmt.Errorf("%w: %s: no graph block", ErrUnreadableGraph, path)
	}
	doc := graphs[0]

	directed := false
	if d, ok := doc.scalars["directed"].(float64); ok && d != 0 {
		directed = true
	}

	// Relabel by "label" only when every node has one.
	nodes := doc.nested["node"]
	relabel := len(nodes) > 0
	for _, n := range nodes {
		if _, ok := n.scalars["label"].(string); !ok {
			relabel = false
			break
		}
	}

	g := graph.New()
	idToValue := map[string]result.Value{}

	for _, n := range nodes {
		rawID, ok := n.scalars["id"]
		if !ok {
			return nil, fmt.Errorf("%w: %s: node block without id", ErrUnreadableGraph, path)
		}

		var id result.Value
		if relabel {
			id = result.String(n.scalars["label"].(string))
		} else {
			id = result.FromAny(rawID)
		}
		idToValue[fmt.Sprint(rawID)] = id

		attrs := map[string]any{}
		for k, v := range n.scalars {
			if k == "id" || (relabel && k == "label") {
				continue
			}
			attrs[k] = v
		}
		g.AddNode(id, attrs)
	}

	for _, e := range doc.nested["edge"] {
		srcRaw, okS := e.scalars["source"]
		tgtRaw, okT := e.scalars["target"]
		if !okS || !okT {
			return nil, fmt.Errorf("%w: %s: edge block without source/target",
				ErrUnreadableGraph, path)
		}

		from, ok := idToValue[fmt.Sprint(srcRaw)]
		if !ok {
			from = result.FromAny(srcRaw)
		}
		to, ok := idToValue[fmt.Sprint(tgtRaw)]
		if !ok {
			to = result.FromAny(tgtRaw)
		}

		attrs := map[string]any{}
		for k, v := range e.scalars {
			if k == "source" || k == "target" {
				continue
			}
			attrs[k] = v
		}

		g.AddEdge(from, to, attrs)
		if !directed && !from.Equal(to) {
			g.AddEdge(to, from, attrs)
		}
	}
	return g, nil
}

// writeGML serializes a graph as directed GML. Node ids are dense
// integers; the original identifier becomes the label.
func writeGML(g *graph.Graph, path string) error {
	var b strings.Builder
	b.WriteString("graph [\n")
	b.WriteString("  directed 1\n")

	ids := map[string]int{}
	for i, n := range g.Nodes() {
		ids[n.ID.Key()] = i
		b.WriteString("  node [\n")
		fmt.Fprintf(&b, "    id %d\n", i)
		fmt.Fprintf(&b, "    label %q\n", n.ID.Display())
		writeGMLAttrs(&b, n.Attrs)
		b.WriteString("  ]\n")
	}
	for _, e := range g.Edges() {
		b.WriteString("  edge [\n")
		fmt.Fprintf(&b, "    source %d\n", ids[e.From.Key()])
		fmt.Fprintf(&b, "    target %d\n", ids[e.To.Key()])
		writeGMLAttrs(&b, e.Attrs)
		b.WriteString("  ]\n")
	}
	b.WriteString("]\n")

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeGMLAttrs(b *strings.Builder, attrs map[string]any) {
	for _, k := range sortedKeys(attrs) {
		switch v := attrs[k].(type) {
		case float64:
			if v == float64(int64(v)) {
				fmt.Fprintf(b, "    %s %d\n", k, int64(v))
			} else {
				fmt.Fprintf(b, "    %s %g\n", k, v)
			}
		case bool:
			val := 0
			if v {
				val = 1
			}
			fmt.Fprintf(b, "    %s %d\n", k, val)
		default:
			fmt.Fprintf(b, "    %s %q\n", k, fmt.Sprint(v))
		}
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
