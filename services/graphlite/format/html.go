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
	"html"
	"strings"

	"github.com/AleutianAI/GraphLite/services/graphlite/result"
)

// HTMLFormatter emits a standalone <table> fragment. Mainly used for
// file saves; browsers render the fragment without any wrapper document.
type HTMLFormatter struct{}

func NewHTMLFormatter() *HTMLFormatter { return &HTMLFormatter{} }

func (f *HTMLFormatter) Name() FormatType { return FormatHTML }

func (f *HTMLFormatter) Format(set *result.Set) (string, error) {
	var b strings.Builder
	b.WriteString("<table>\n")

	b.WriteString("  <thead>\n    <tr>")
	for _, col := range set.Columns() {
		b.WriteString("<th>")
		b.WriteString(html.EscapeString(col))
		b.WriteString("</th>")
	}
	b.WriteString("</tr>\n  </thead>\n")

	b.WriteString("  <tbody>\n")
	for i := 0; i < set.Len(); i++ {
		b.WriteString("    <tr>")
		for _, v := range set.Row(i) {
			b.WriteString("<td>")
			b.WriteString(html.EscapeString(v.Display()))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("  </tbody>\n</table>\n")
	return b.String(), nil
}
