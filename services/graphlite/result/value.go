// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package result defines the normalized record model shared by the query
// engines and the output formatters.
//
// Query engines produce heterogeneous shapes (tabular rows from Cypher,
// variable-binding maps from DotMotif). Both are normalized into a Set of
// records over a fixed column schema so every formatter can render them the
// same way.
//
// Values are a closed tagged union (string | number | bool | null) rather
// than bare interface{} so formatters serialize deterministically: numbers
// stay numeric in JSON, strings stay quoted, and a column never silently
// mixes types.
package result

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	// KindNull is the absent value.
	KindNull Kind = iota

	// KindString holds a string identifier or projected attribute.
	KindString

	// KindNumber holds a numeric identifier or projected attribute.
	KindNumber

	// KindBool holds a projected boolean attribute.
	KindBool
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is an immutable tagged union of the types a query can bind:
// node identifiers, edge identifiers, and projected scalars.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

// Null returns the absent value.
func Null() Value { return Value{kind: KindNull} }

// String wraps a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Int wraps an integer value as a number.
func Int(i int) Value { return Value{kind: KindNumber, num: float64(i)} }

// Bool wraps a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// FromAny converts an attribute value of unknown dynamic type. Types that
// have no variant (slices, maps) are stringified via fmt.Sprint so reading
// an exotic attribute degrades instead of failing.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case Value:
		return t
	default:
		return String(fmt.Sprint(t))
	}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string variant. Second result is false for other kinds.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Num returns the numeric variant. Second result is false for other kinds.
func (v Value) Num() (float64, bool) { return v.num, v.kind == KindNumber }

// BoolVal returns the bool variant. Second result is false for other kinds.
func (v Value) BoolVal() (bool, bool) { return v.b, v.kind == KindBool }

// Any unwraps the value for generic serialization. Integral numbers come
// back as int64 so JSON output has no spurious decimal points.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if v.num == math.Trunc(v.num) && math.Abs(v.num) < 1e15 {
			return int64(v.num)
		}
		return v.num
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// Display renders the value for tables and CSV cells.
func (v Value) Display() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if v.num == math.Trunc(v.num) && math.Abs(v.num) < 1e15 {
			return strconv.FormatInt(int64(v.num), 10)
		}
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Key returns a canonical map key. Distinct kinds never collide: numeric 1
// and string "1" key differently.
func (v Value) Key() string {
	switch v.kind {
	case KindString:
		return "s:" + v.str
	case KindNumber:
		return "n:" + v.Display()
	case KindBool:
		return "b:" + v.Display()
	default:
		return "null"
	}
}

// Equal reports deep equality of kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	default:
		return true
	}
}
