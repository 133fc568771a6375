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
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AleutianAI/GraphLite/services/graphlite/result"
)

// Table styling follows the Aleutian palette used across our tooling.
var (
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#20B9B4"))

	tableIndexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2C4A54"))
)

// TableFormatter renders the aligned human-readable table used as the
// interactive default. Each record is prefixed with its row index.
type TableFormatter struct {
	// Plain disables lipgloss styling; set when output is not a TTY.
	Plain bool
}

func NewTableFormatter() *TableFormatter { return &TableFormatter{} }

func (f *TableFormatter) Name() FormatType { return FormatTable }

func (f *TableFormatter) Format(set *result.Set) (string, error) {
	columns := set.Columns()

	// Column widths: header vs widest cell.
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col)
	}
	cells := make([][]string, set.Len())
	for i := 0; i < set.Len(); i++ {
		row := set.Row(i)
		cells[i] = make([]string, len(row))
		for j, v := range row {
			cells[i][j] = v.Display()
			if len(cells[i][j]) > widths[j] {
				widths[j] = len(cells[i][j])
			}
		}
	}
	indexWidth := len(fmt.Sprint(set.Len()))
	if indexWidth < 1 {
		indexWidth = 1
	}

	var b strings.Builder

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = pad(col, widths[i])
	}
	headerLine := strings.Join(header, "  ")
	if f.Plain {
		b.WriteString(strings.Repeat(" ", indexWidth) + "  " + headerLine + "\n")
	} else {
		b.WriteString(strings.Repeat(" ", indexWidth) + "  " + tableHeaderStyle.Render(headerLine) + "\n")
	}

	for i := 0; i < set.Len(); i++ {
		idx := pad(fmt.Sprint(i), indexWidth)
		if !f.Plain {
			idx = tableIndexStyle.Render(idx)
		}
		b.WriteString(idx)
		for j, cell := range cells[i] {
			b.WriteString("  ")
			b.WriteString(pad(cell, widths[j]))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
