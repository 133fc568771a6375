// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package locator resolves a graph identifier string into a concrete
// loading strategy.
//
// An identifier can be a bare path, an HTTP(S) URL, or a structured URI
// with an explicit scheme prefix such as "edgelist://graph.txt",
// "h-edgelist(src:dst)://graph.csv", or the openCypher composite form
// "vertex:vertices.csv;edge:edges.csv".
//
// Resolution is pure: no file is opened and no network touched. Precedence
// is fixed and deterministic:
//
//  1. explicit scheme prefix (always wins, even over a conflicting
//     extension)
//  2. network scheme (http:// or https://)
//  3. recognized filename extension
//  4. headerless edgelist fallback
//
// The fallback means unknown extensions never fail resolution; if in doubt,
// try to read it as an edgelist. The only resolution error is an explicit
// prefix naming an unknown scheme.
package locator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnresolvedLocator is returned when an identifier uses scheme-prefix
// syntax with a scheme name outside the recognized set. Bare paths never
// produce this error.
var ErrUnresolvedLocator = errors.New("unresolved graph locator")

// Scheme is the input-format category a locator resolved to. The set is
// closed; every scheme maps to exactly one loading strategy.
type Scheme string

const (
	// SchemeURL is a remote graph fetched over HTTP(S). The concrete file
	// format is decided after download, from the downloaded content.
	SchemeURL Scheme = "url"

	// SchemeEdgelist is a headerless whitespace- or delimiter-separated
	// edge list. Also the universal fallback.
	SchemeEdgelist Scheme = "edgelist"

	// SchemeHeaderedEdgelist is a delimited file with a header row; the
	// source and target column names travel as parameters.
	SchemeHeaderedEdgelist Scheme = "h-edgelist"

	// SchemeOpenCypher is the vertex/edge CSV composite
	// ("vertex:a.csv;edge:b.csv").
	SchemeOpenCypher Scheme = "opencypher"

	// SchemeGraphML is a GraphML XML document.
	SchemeGraphML Scheme = "graphml"

	// SchemeGML is a Graph Modelling Language document.
	SchemeGML Scheme = "gml"

	// SchemeGPickle is a Python-pickled graph. Recognized so the loader
	// can report it precisely; it is not readable outside CPython.
	SchemeGPickle Scheme = "gpickle"
)

// Param is one scheme parameter. Order matters: h-edgelist parameters are
// positional (source column, then target column), and the openCypher
// composite lists role:path pairs in declaration order.
type Param struct {
	Key   string
	Value string
}

// Locator is the resolved description of where and how to load a graph.
// Immutable once returned by Resolve.
type Locator struct {
	// Scheme is the loading strategy.
	Scheme Scheme

	// Raw is the original identifier, kept for diagnostics.
	Raw string

	// Params are scheme parameters in declaration order.
	Params []Param

	// PathOrURL is the local path, or the full URL for SchemeURL.
	PathOrURL string
}

// Param returns the first parameter value for a key.
func (l Locator) Param(key string) (string, bool) {
	for _, p := range l.Params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// ParamValues returns every parameter value for a key, in order.
func (l Locator) ParamValues(key string) []string {
	var out []string
	for _, p := range l.Params {
		if p.Key == key {
			out = append(out, p.Value)
		}
	}
	return out
}

var (
	schemePrefixRe = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9+.-]*)(?:\(([^)]*)\))?://(.*)$`)
	openCypherRe   = regexp.MustCompile(`^vertex:(.+);edge:(.+)$`)
)

// extensionSchemes maps recognized filename extensions to schemes.
// Anything else falls back to the headerless edgelist reader.
var extensionSchemes = map[string]Scheme{
	".graphml":  SchemeGraphML,
	".gml":      SchemeGML,
	".gpickle":  SchemeGPickle,
	".csv":      SchemeEdgelist,
	".edgelist": SchemeEdgelist,
}

// Resolve maps an identifier string to a Locator. See the package comment
// for the precedence rules.
func Resolve(identifier string) (Locator, error) {
	if m := schemePrefixRe.FindStringSubmatch(identifier); m != nil {
		return resolvePrefix(identifier, m[1], m[2], m[3])
	}

	if m := openCypherRe.FindStringSubmatch(identifier); m != nil {
		return resolveOpenCypher(identifier, m[1], m[2])
	}

	return Locator{
		Scheme:    inferFromExtension(identifier),
		Raw:       identifier,
		PathOrURL: identifier,
	}, nil
}

// resolvePrefix handles explicit scheme(params)://rest identifiers.
func resolvePrefix(raw, scheme, params, rest string) (Locator, error) {
	switch strings.ToLower(scheme) {
	case "http", "https":
		return Locator{Scheme: SchemeURL, Raw: raw, PathOrURL: raw}, nil

	case "edgelist":
		return Locator{Scheme: SchemeEdgelist, Raw: raw, PathOrURL: rest}, nil

	case "h-edgelist":
		src, tgt, ok := strings.Cut(params, ":")
		if !ok || src == "" || tgt == "" {
			return Locator{}, fmt.Errorf(
				"%w: h-edgelist needs (source:target) column parameters, got %q",
				ErrUnresolvedLocator, params)
		}
		return Locator{
			Scheme: SchemeHeaderedEdgelist,
			Raw:    raw,
			Params: []Param{
				{Key: "source", Value: src},
				{Key: "target", Value: tgt},
			},
			PathOrURL: rest,
		}, nil

	case "graphml":
		return Locator{Scheme: SchemeGraphML, Raw: raw, PathOrURL: rest}, nil

	case "gml":
		return Locator{Scheme: SchemeGML, Raw: raw, PathOrURL: rest}, nil

	case "gpickle":
		return Locator{Scheme: SchemeGPickle, Raw: raw, PathOrURL: rest}, nil

	default:
		return Locator{}, fmt.Errorf("%w: unknown scheme %q", ErrUnresolvedLocator, scheme)
	}
}

// resolveOpenCypher handles the vertex:...;edge:... composite. Each side
// may list several comma-separated files.
func resolveOpenCypher(raw, vertexList, edgeList string) (Locator, error) {
	var params []Param
	for _, p := range strings.Split(vertexList, ",") {
		params = append(params, Param{Key: "vertex", Value: strings.TrimSpace(p)})
	}
	for _, p := range strings.Split(edgeList, ",") {
		params = append(params, Param{Key: "edge", Value: strings.TrimSpace(p)})
	}
	return Locator{Scheme: SchemeOpenCypher, Raw: raw, Params: params}, nil
}

// inferFromExtension maps a filename to a scheme, defaulting to edgelist.
func inferFromExtension(path string) Scheme {
	lower := strings.ToLower(path)
	for ext, scheme := range extensionSchemes {
		if strings.HasSuffix(lower, ext) {
			return scheme
		}
	}
	return SchemeEdgelist
}

// ExtensionRecognized reports whether the filename carries one of the
// extensions Resolve infers a scheme from. Callers use this to tell a
// deliberate edgelist apart from the fallback case.
func ExtensionRecognized(path string) bool {
	lower := strings.ToLower(path)
	for ext := range extensionSchemes {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Sniff inspects the leading bytes of an already-downloaded file and
// guesses a scheme from content when the filename alone was inconclusive.
// The second result is false when nothing matched.
func Sniff(head []byte) (Scheme, bool) {
	s := string(head)
	if strings.Contains(s, "<graphml") {
		return SchemeGraphML, true
	}
	if strings.Contains(s, "graph [") && strings.Contains(s, "node [") {
		return SchemeGML, true
	}
	if strings.Contains(s, "source,target") {
		return SchemeEdgelist, true
	}
	return "", false
}
