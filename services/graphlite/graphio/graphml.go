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
	"encoding/xml"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/AleutianAI/GraphLite/services/graphlite/graph"
	"github.com/AleutianAI/GraphLite/services/graphlite/result"
)

// graphmlDoc mirrors the subset of the GraphML schema the loader needs:
// <key> declarations for attribute typing, then nodes and edges with
// <data> payloads.
type graphmlDoc struct {
	XMLName xml.Name       `xml:"graphml"`
	Keys    []graphmlKey   `xml:"key"`
	Graphs  []graphmlGraph `xml:"graph"`
}

type graphmlKey struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	AttrName string `xml:"attr.name,attr"`
	AttrType string `xml:"attr.type,attr"`
}

type graphmlGraph struct {
	EdgeDefault string        `xml:"edgedefault,attr"`
	Nodes       []graphmlNode `xml:"node"`
	Edges       []graphmlEdge `xml:"edge"`
}

type graphmlNode struct {
	ID   string        `xml:"id,attr"`
	Data []graphmlData `xml:"data"`
}

type graphmlEdge struct {
	Source string        `xml:"source,attr"`
	Target string        `xml:"target,attr"`
	Data   []graphmlData `xml:"data"`
}

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// readGraphML parses a GraphML document. Attribute values are typed
// according to the document's <key> declarations; undeclared keys stay
// strings. An undirected edgedefault symmetrizes every edge.
func readGraphML(path string) (*graph.Graph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableGraph, path, err)
	}

	var doc graphmlDoc
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableGraph, path, err)
	}
	if len(doc.Graphs) == 0 {
		return nil, fmt.Errorf("%w: %s: no <graph> element", ErrUnreadableGraph, path)
	}

	keys := map[string]graphmlKey{}
	for _, k := range doc.Keys {
		keys[k.ID] = k
	}

	g := graph.New()
	for _, gx := range doc.Graphs {
		undirected := gx.EdgeDefault == "undirected"

		for _, n := range gx.Nodes {
			g.AddNode(result.String(n.ID), dataAttrs(n.Data, keys))
		}
		for _, e := range gx.Edges {
			attrs := dataAttrs(e.Data, keys)
			from := result.String(e.Source)
			to := result.String(e.Target)
			g.AddEdge(from, to, attrs)
			if undirected && e.Source != e.Target {
				g.AddEdge(to, from, attrs)
			}
		}
	}
	return g, nil
}

func dataAttrs(data []graphmlData, keys map[string]graphmlKey) map[string]any {
	attrs := map[string]any{}
	for _, d := range data {
		name := d.Key
		typ := ""
		if k, ok := keys[d.Key]; ok {
			if k.AttrName != "" {
				name = k.AttrName
			}
			typ = k.AttrType
		}
		attrs[name] = coerceGraphML(d.Value, typ)
	}
	return attrs
}

func coerceGraphML(raw, typ string) any {
	switch typ {
	case "int", "long":
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return float64(i)
		}
	case "float", "double":
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case "boolean":
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	}
	return raw
}

// writeGraphML serializes a graph as directed GraphML. Attribute keys are
// declared from the attribute names and types actually present.
func writeGraphML(g *graph.Graph, path string) error {
	doc := graphmlDoc{}

	nodeKeys := collectAttrKeys(g, true)
	edgeKeys := collectAttrKeys(g, false)
	keyID := func(domain, name string) string { return "d_" + domain + "_" + name }

	for _, k := range nodeKeys {
		doc.Keys = append(doc.Keys, graphmlKey{
			ID: keyID("node", k.name), For: "node", AttrName: k.name, AttrType: k.typ,
		})
	}
	for _, k := range edgeKeys {
		doc.Keys = append(doc.Keys, graphmlKey{
			ID: keyID("edge", k.name), For: "edge", AttrName: k.name, AttrType: k.typ,
		})
	}

	gx := graphmlGraph{EdgeDefault: "directed"}
	for _, n := range g.Nodes() {
		node := graphmlNode{ID: n.ID.Display()}
		for _, k := range nodeKeys {
			if v, ok := n.Attrs[k.name]; ok {
				node.Data = append(node.Data, graphmlData{
					Key: keyID("node", k.name), Value: fmt.Sprint(v),
				})
			}
		}
		gx.Nodes = append(gx.Nodes, node)
	}
	for _, e := range g.Edges() {
		edge := graphmlEdge{Source: e.From.Display(), Target: e.To.Display()}
		for _, k := range edgeKeys {
			if v, ok := e.Attrs[k.name]; ok {
				edge.Data = append(edge.Data, graphmlData{
					Key: keyID("edge", k.name), Value: fmt.Sprint(v),
				})
			}
		}
		gx.Edges = append(gx.Edges, edge)
	}
	doc.Graphs = []graphmlGraph{gx}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnsupportedOutput, path, err)
	}
	payload := append([]byte(xml.Header), out...)
	payload = append(payload, '\n')
	if err := os.WriteFile(path, payload, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

type attrKey struct {
	name string
	typ  string
}

// collectAttrKeys gathers the distinct attribute names used across nodes
// (or edges) with a GraphML type inferred from the first value seen.
func collectAttrKeys(g *graph.Graph, nodes bool) []attrKey {
	types := map[string]string{}
	record := func(attrs map[string]any) {
		for name, v := range attrs {
			if _, seen := types[name]; seen {
				continue
			}
			switch v.(type) {
			case float64, int, int64:
				types[name] = "double"
			case bool:
				types[name] = "boolean"
			default:
				types[name] = "string"
			}
		}
	}

	if nodes {
		for _, n := range g.Nodes() {
			record(n.Attrs)
		}
	} else {
		for _, e := range g.Edges() {
			record(e.Attrs)
		}
	}

	keys := make([]attrKey, 0, len(types))
	for name, typ := range types {
		keys = append(keys, attrKey{name: name, typ: typ})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].name < keys[j].name })
	return keys
}
