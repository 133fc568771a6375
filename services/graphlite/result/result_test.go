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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Kinds(t *testing.T) {
	tests := []struct {
		name    string
		value   Value
		kind    Kind
		display string
	}{
		{"string", String("alice"), KindString, "alice"},
		{"integral number", Number(42), KindNumber, "42"},
		{"fractional number", Number(2.5), KindNumber, "2.5"},
		{"bool", Bool(true), KindBool, "true"},
		{"null", Null(), KindNull, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.value.Kind())
			assert.Equal(t, tt.display, tt.value.Display())
		})
	}
}

func TestValue_Any_IntegralNumbersAreInts(t *testing.T) {
	assert.Equal(t, int64(7), Number(7).Any())
	assert.Equal(t, 7.5, Number(7.5).Any())
	assert.Equal(t, "x", String("x").Any())
	assert.Nil(t, Null().Any())
}

func TestValue_Key_DistinguishesKinds(t *testing.T) {
	// Numeric 1 and string "1" must not collide as node identifiers.
	assert.NotEqual(t, Number(1).Key(), String("1").Key())
	assert.Equal(t, Number(1).Key(), Int(1).Key())
}

func TestFromAny(t *testing.T) {
	assert.Equal(t, KindString, FromAny("s").Kind())
	assert.Equal(t, KindNumber, FromAny(3).Kind())
	assert.Equal(t, KindNumber, FromAny(int64(3)).Kind())
	assert.Equal(t, KindBool, FromAny(false).Kind())
	assert.Equal(t, KindNull, FromAny(nil).Kind())
	// Unrepresentable types degrade to their string form.
	assert.Equal(t, KindString, FromAny([]int{1, 2}).Kind())
}

func TestSet_AppendAndIterate(t *testing.T) {
	s := NewSet([]string{"a", "b"})
	require.True(t, s.Empty())

	require.NoError(t, s.Append([]Value{String("n1"), String("n2")}))
	require.NoError(t, s.Append([]Value{String("n2"), String("n3")}))

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"a", "b"}, s.Columns())

	rec := s.Record(1)
	v, ok := rec.Get("b")
	require.True(t, ok)
	assert.Equal(t, String("n3"), v)

	_, ok = rec.Get("missing")
	assert.False(t, ok)
}

func TestSet_Append_SchemaMismatch(t *testing.T) {
	s := NewSet([]string{"a", "b"})
	err := s.Append([]Value{String("only-one")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestSet_Append_InconsistentKinds(t *testing.T) {
	s := NewSet([]string{"id"})
	require.NoError(t, s.Append([]Value{Number(1)}))

	err := s.Append([]Value{String("two")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInconsistentResultType)
}

func TestSet_Append_NullsDoNotSettleKind(t *testing.T) {
	s := NewSet([]string{"v"})
	require.NoError(t, s.Append([]Value{Null()}))
	require.NoError(t, s.Append([]Value{Number(1)}))
	require.NoError(t, s.Append([]Value{Null()}))

	// After the kind settles to number, strings are rejected.
	assert.ErrorIs(t, s.Append([]Value{String("x")}), ErrInconsistentResultType)
}
