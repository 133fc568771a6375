// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package result

import (
	"errors"
	"fmt"
)

// Sentinel errors for result normalization.
var (
	// ErrInconsistentResultType is returned when an engine binds values of
	// different kinds to the same variable across records. The dispatcher
	// surfaces this instead of silently coercing.
	ErrInconsistentResultType = errors.New("inconsistent value types for result variable")

	// ErrSchemaMismatch is returned when a record's arity does not match
	// the set's column schema.
	ErrSchemaMismatch = errors.New("record does not match result schema")
)

// Record is one row of a Set: variable names bound to values, in schema
// order.
type Record struct {
	Columns []string
	Values  []Value
}

// Get returns the value bound to the named variable.
func (r Record) Get(column string) (Value, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i], true
		}
	}
	return Null(), false
}

// Set is an ordered sequence of records sharing one variable schema.
//
// An empty Set (zero records) is a valid query outcome, distinct from "no
// query run yet" which is represented by a nil *Set in session state.
type Set struct {
	columns []string
	rows    [][]Value

	// kinds tracks the settled kind per column. KindNull means the column
	// has only seen nulls so far.
	kinds []Kind
}

// NewSet creates an empty Set with the given column schema. Column order is
// the projection order declared by the query.
func NewSet(columns []string) *Set {
	return &Set{
		columns: append([]string(nil), columns...),
		kinds:   make([]Kind, len(columns)),
	}
}

// Columns returns the schema in projection order.
func (s *Set) Columns() []string { return s.columns }

// Len returns the number of records.
func (s *Set) Len() int { return len(s.rows) }

// Empty reports whether the set has no records.
func (s *Set) Empty() bool { return len(s.rows) == 0 }

// Append adds one record. The record must match the schema arity, and each
// value's kind must agree with the kind already settled for its column
// (nulls are always allowed).
func (s *Set) Append(values []Value) error {
	if len(values) != len(s.columns) {
		return fmt.Errorf("%w: got %d values for %d columns",
			ErrSchemaMismatch, len(values), len(s.columns))
	}
	for i, v := range values {
		if v.IsNull() {
			continue
		}
		if s.kinds[i] == KindNull {
			s.kinds[i] = v.Kind()
			continue
		}
		if s.kinds[i] != v.Kind() {
			return fmt.Errorf("%w: column %q is %s, got %s",
				ErrInconsistentResultType, s.columns[i], s.kinds[i], v.Kind())
		}
	}
	s.rows = append(s.rows, append([]Value(nil), values...))
	return nil
}

// Row returns the values of record i in schema order.
func (s *Set) Row(i int) []Value { return s.rows[i] }

// Record returns record i with its column names attached.
func (s *Set) Record(i int) Record {
	return Record{Columns: s.columns, Values: s.rows[i]}
}

// Each calls fn for every record in order, stopping on the first error.
func (s *Set) Each(fn func(i int, rec Record) error) error {
	for i := range s.rows {
		if err := fn(i, s.Record(i)); err != nil {
			return err
		}
	}
	return nil
}
