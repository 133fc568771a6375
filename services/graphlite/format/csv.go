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
	"encoding/csv"
	"strings"

	"github.com/AleutianAI/GraphLite/services/graphlite/result"
)

// CSVFormatter emits a header row of column names followed by one row per
// record. Values containing the delimiter are quote-wrapped by the csv
// writer.
type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter { return &CSVFormatter{} }

func (f *CSVFormatter) Name() FormatType { return FormatCSV }

func (f *CSVFormatter) Format(set *result.Set) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write(set.Columns()); err != nil {
		return "", err
	}
	for i := 0; i < set.Len(); i++ {
		row := set.Row(i)
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = v.Display()
		}
		if err := w.Write(cells); err != nil {
			return "", err
		}
	}
	w.Flush()
	return b.String(), w.Error()
}
