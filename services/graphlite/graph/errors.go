// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package graph provides the in-memory directed multigraph the session
// queries against.
//
// Nodes carry a typed identifier (string or numeric, preserved from the
// source format) and an open attribute map. Edges are directed, may repeat
// between the same endpoints, and carry their own attributes.
//
// # Ownership Model
//
// The graph owns its nodes and edges. Attribute maps passed to AddNode and
// AddEdge are stored as-is and MUST NOT be mutated by the caller afterwards.
//
// # Thread Safety
//
// Graph is NOT safe for concurrent mutation. The session builds it once at
// startup and every query afterwards only reads, so no locking discipline
// is needed: construct once, read many times.
package graph

import "errors"

// ErrDanglingEdgeReference is returned by strict loaders when an edge
// names an endpoint that was never declared as a vertex.
var ErrDanglingEdgeReference = errors.New("edge references undeclared vertex")
