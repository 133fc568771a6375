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
	"encoding/json"
	"strings"

	"github.com/AleutianAI/GraphLite/services/graphlite/result"
)

// Objects are assembled by hand so keys always appear in the result
// schema's declared order; map-based marshaling would sort them.

// JSONFormatter emits one JSON array of objects. Numbers stay numeric,
// strings stay quoted.
type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter { return &JSONFormatter{} }

func (f *JSONFormatter) Name() FormatType { return FormatJSON }

func (f *JSONFormatter) Format(set *result.Set) (string, error) {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < set.Len(); i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("\n  ")
		obj, err := encodeRecord(set.Columns(), set.Row(i))
		if err != nil {
			return "", err
		}
		b.WriteString(obj)
	}
	if set.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString("]\n")
	return b.String(), nil
}

// JSONLFormatter emits one JSON object per line, no enclosing array.
type JSONLFormatter struct{}

func NewJSONLFormatter() *JSONLFormatter { return &JSONLFormatter{} }

func (f *JSONLFormatter) Name() FormatType { return FormatJSONL }

func (f *JSONLFormatter) Format(set *result.Set) (string, error) {
	var b strings.Builder
	for i := 0; i < set.Len(); i++ {
		obj, err := encodeRecord(set.Columns(), set.Row(i))
		if err != nil {
			return "", err
		}
		b.WriteString(obj)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func encodeRecord(columns []string, row []result.Value) (string, error) {
	var b strings.Builder
	b.WriteString("{")
	for i, col := range columns {
		if i > 0 {
			b.WriteString(",")
		}
		key, err := json.Marshal(col)
		if err != nil {
			return "", err
		}
		val, err := json.Marshal(row[i].Any())
		if err != nil {
			return "", err
		}
		b.Write(key)
		b.WriteString(":")
		b.Write(val)
	}
	b.WriteString("}")
	return b.String(), nil
}
