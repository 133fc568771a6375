// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package format renders result sets into the supported output
// representations and writes them to stdout or files.
package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AleutianAI/GraphLite/services/graphlite/result"
)

// ErrFormatNotSupported is returned when a format type is not supported.
var ErrFormatNotSupported = errors.New("format not supported")

// ErrOutputWrite is returned when a destination cannot be written. In an
// interactive session this is reported, never fatal.
var ErrOutputWrite = errors.New("output write failed")

// FormatType represents the type of output format.
type FormatType string

const (
	// FormatCSV is header-row CSV output.
	FormatCSV FormatType = "csv"

	// FormatJSON is a single JSON array of objects.
	FormatJSON FormatType = "json"

	// FormatJSONL is one JSON object per line.
	FormatJSONL FormatType = "jsonl"

	// FormatMarkdown is a markdown pipe table.
	FormatMarkdown FormatType = "markdown"

	// FormatTable is the aligned interactive table with row indexes.
	FormatTable FormatType = "table"

	// FormatHTML is an HTML table fragment, mainly for file saves.
	FormatHTML FormatType = "html"
)

// ParseFormatType validates a user-supplied format name.
func ParseFormatType(s string) (FormatType, error) {
	switch FormatType(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatJSONL:
		return FormatJSONL, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	case FormatTable:
		return FormatTable, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrFormatNotSupported, s)
	}
}

// Formatter formats a result set into one output representation.
type Formatter interface {
	// Format converts the result set to its serialized form.
	Format(set *result.Set) (string, error)

	// Name returns the format name.
	Name() FormatType
}
