// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package graphio loads and writes graphs in the supported on-disk and
// remote representations.
//
// Loading dispatches on the resolved locator scheme: GraphML, GML,
// headerless and headered edgelists, and the openCypher vertex/edge CSV
// composite are read locally; URLs are fetched once into a scoped
// temporary file that is removed before the first query runs.
//
// Exactly one graph is constructed per process invocation. The loader has
// no reload path; a session owns its graph for life.
package graphio

import "errors"

// Sentinel errors for graph loading and writing.
var (
	// ErrNetworkFetch is returned when a remote download fails or answers
	// with a non-2xx status. Fetches are attempted exactly once.
	ErrNetworkFetch = errors.New("network fetch failed")

	// ErrUnreadableGraph is returned when a reader rejects the content of
	// an otherwise-resolvable input.
	ErrUnreadableGraph = errors.New("unreadable graph content")

	// ErrMissingColumn is returned when a declared header column is absent
	// from the actual header row.
	ErrMissingColumn = errors.New("declared column missing from header")

	// ErrUnsupportedOutput is returned by Write for an output filename
	// whose extension maps to no writer.
	ErrUnsupportedOutput = errors.New("unsupported output format")
)
