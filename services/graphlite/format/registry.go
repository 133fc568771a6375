// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package format

import (
	"fmt"

	"github.com/AleutianAI/GraphLite/services/graphlite/result"
)

// Registry manages the available formatters.
type Registry struct {
	formatters map[FormatType]Formatter
}

// NewRegistry creates a registry with all default formatters.
func NewRegistry() *Registry {
	r := &Registry{formatters: make(map[FormatType]Formatter)}
	r.Register(NewCSVFormatter())
	r.Register(NewJSONFormatter())
	r.Register(NewJSONLFormatter())
	r.Register(NewMarkdownFormatter())
	r.Register(NewHTMLFormatter())
	r.Register(NewTableFormatter())
	return r
}

// Register adds or replaces a formatter under its own name.
func (r *Registry) Register(f Formatter) {
	r.formatters[f.Name()] = f
}

// Get returns the formatter for the given type.
func (r *Registry) Get(t FormatType) (Formatter, error) {
	f, ok := r.formatters[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFormatNotSupported, t)
	}
	return f, nil
}

// Format serializes a result set with the named formatter.
func (r *Registry) Format(set *result.Set, t FormatType) (string, error) {
	f, err := r.Get(t)
	if err != nil {
		return "", err
	}
	return f.Format(set)
}
