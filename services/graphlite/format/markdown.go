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
	"strings"

	"github.com/AleutianAI/GraphLite/services/graphlite/result"
)

// MarkdownFormatter emits a pipe table with a header separator row.
type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter { return &MarkdownFormatter{} }

func (f *MarkdownFormatter) Name() FormatType { return FormatMarkdown }

func (f *MarkdownFormatter) Format(set *result.Set) (string, error) {
	var b strings.Builder

	writeRow := func(cells []string) {
		b.WriteString("| ")
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString(" |\n")
	}

	columns := set.Columns()
	writeRow(columns)

	separators := make([]string, len(columns))
	for i := range separators {
		separators[i] = "---"
	}
	writeRow(separators)

	for i := 0; i < set.Len(); i++ {
		row := set.Row(i)
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = escapeMarkdownCell(v.Display())
		}
		writeRow(cells)
	}
	return b.String(), nil
}

func escapeMarkdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
