// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package session

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AleutianAI/GraphLite/services/graphlite/engine"
)

var statusStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#16858E")).
	Faint(true)

// statusLine builds the toolbar shown after load and after each query:
// language, graph size, and the last result count.
func statusLine(lang engine.Language, state State) string {
	parts := []string{
		string(lang),
		fmt.Sprintf("%d vertices", state.Graph.NodeCount()),
		fmt.Sprintf("%d edges", state.Graph.EdgeCount()),
	}
	if state.LastResults != nil {
		parts = append(parts, fmt.Sprintf("last: %d rows", state.LastResults.Len()))
	}
	return statusStyle.Render("[" + strings.Join(parts, " | ") + "]")
}
