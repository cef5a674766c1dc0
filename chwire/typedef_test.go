// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimple(t *testing.T) {
	def, err := ParseTypeName("Int8")
	require.NoError(t, err)
	assert.Equal(t, "Int8", def.Base)
	assert.Empty(t, def.Wrappers)
	assert.Empty(t, def.Args)
}

func TestParseWrappers(t *testing.T) {
	def, err := ParseTypeName("LowCardinality(Nullable(String))")
	require.NoError(t, err)
	assert.Equal(t, "String", def.Base)
	assert.Equal(t, []Wrapper{WrapperLowCardinality, WrapperNullable}, def.Wrappers)

	// Wrapper keywords match case-insensitively.
	def, err = ParseTypeName("nullable(UInt32)")
	require.NoError(t, err)
	assert.Equal(t, "UInt32", def.Base)
	assert.Equal(t, []Wrapper{WrapperNullable}, def.Wrappers)
}

func TestParseArgs(t *testing.T) {
	def, err := ParseTypeName("DateTime64(3, 'Europe/Moscow')")
	require.NoError(t, err)
	assert.Equal(t, "DateTime64", def.Base)
	require.Len(t, def.Args, 2)
	assert.Equal(t, Argument{Kind: ArgInt, Int: 3}, def.Args[0])
	assert.Equal(t, Argument{Kind: ArgString, Str: "Europe/Moscow"}, def.Args[1])

	def, err = ParseTypeName("Map(String, Array(Nullable(Int64)))")
	require.NoError(t, err)
	require.Len(t, def.Args, 2)
	assert.Equal(t, Argument{Kind: ArgType, Str: "String"}, def.Args[0])
	assert.Equal(t, Argument{Kind: ArgType, Str: "Array(Nullable(Int64))"}, def.Args[1])

	def, err = ParseTypeName("SomeType(1.5, -2)")
	require.NoError(t, err)
	require.Len(t, def.Args, 2)
	assert.Equal(t, Argument{Kind: ArgDecimal, Str: "1.5"}, def.Args[0])
	assert.Equal(t, Argument{Kind: ArgInt, Int: -2}, def.Args[1])
}

func TestParseEnum(t *testing.T) {
	def, err := ParseTypeName("Enum8('value1' = 7, 'value2' = 5)")
	require.NoError(t, err)
	assert.Equal(t, "Enum8", def.Base)
	assert.Equal(t, []string{"value1", "value2"}, def.Keys)
	assert.Equal(t, []int64{7, 5}, def.Values)
}

func TestParseEnumEscapes(t *testing.T) {
	def, err := ParseTypeName(`Enum16('beta&&' = -3, '' = 0, 'alpha\'' = 3822)`)
	require.NoError(t, err)
	assert.Equal(t, []string{"beta&&", "", "alpha'"}, def.Keys)
	assert.Equal(t, []int64{-3, 0, 3822}, def.Values)

	// A backslash before a quote that is followed by " = " is a literal
	// backslash and the quote closes the label.
	def, err = ParseTypeName(`Enum8('KG;+\' = -114, 'b' = 2)`)
	require.NoError(t, err)
	assert.Equal(t, []string{`KG;+\`, "b"}, def.Keys)
	assert.Equal(t, []int64{-114, 2}, def.Values)

	// Same rule when the quote closes the whole argument list.
	def, err = ParseTypeName(`Enum8('it\'s' = 1, 'tail\' = 2)`)
	require.NoError(t, err)
	assert.Equal(t, []string{"it's", `tail\`}, def.Keys)
}

func TestParseEnumDuplicates(t *testing.T) {
	def, err := ParseTypeName("Enum8('a' = 1, 'a' = 2, 'b' = 1, 'b' = 3)")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, def.Keys)
	assert.Equal(t, []int64{1, 3}, def.Values)
}

func TestParseMalformed(t *testing.T) {
	for _, name := range []string{
		"",
		"   ",
		"Array(",
		"Array(String",
		"Tuple)",
		"(String)",
		"Enum8()",
		"Enum8(x = 1)",
		"Enum8('a' 1)",
		"DateTime64(3, 'unterminated)",
		"Nullable()",
	} {
		_, err := ParseTypeName(name)
		require.Error(t, err, "input %q", name)
		assert.True(t, errors.Is(err, ErrMalformedTypeName), "input %q got %v", name, err)
	}
}

func TestParseIdempotence(t *testing.T) {
	for _, name := range []string{
		"Int8",
		"Nullable(String)",
		"LowCardinality(Nullable(FixedString(16)))",
		"Array(Map(String, Int64))",
		"DateTime64(6, 'Europe/Moscow')",
		"Enum16('beta&&' = -3, '' = 0, 'alpha\\'' = 3822)",
		"Decimal(7, 3)",
	} {
		def, err := ParseTypeName(name)
		require.NoError(t, err, name)
		again, err := ParseTypeName(def.String())
		require.NoError(t, err, def.String())
		assert.Equal(t, def, again, "canonical form %q", def.String())
	}
}

func TestTypeDefString(t *testing.T) {
	def, err := ParseTypeName("LowCardinality(Nullable(String))")
	require.NoError(t, err)
	assert.Equal(t, "LowCardinality(Nullable(String))", def.String())

	def, err = ParseTypeName("Enum8('a' = 1)")
	require.NoError(t, err)
	assert.Equal(t, "Enum8('a' = 1)", def.String())
}
