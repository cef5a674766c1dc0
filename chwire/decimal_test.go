// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalDecode(t *testing.T) {
	c := mustResolve(t, "Decimal128(5)")
	wire := fromHex(t, "b8 6a 05 00 00 00 00 00 00 00 00 00 00 00 00 00")
	v, next, err := c.Decode(wire, 0)
	require.NoError(t, err)
	assert.Equal(t, 16, next)
	assert.True(t, decimal.RequireFromString("3.55").Equal(v.(decimal.Decimal)))

	out, err := c.Encode(v, nil)
	require.NoError(t, err)
	assert.Equal(t, wire, out)
}

func TestDecimalNegative(t *testing.T) {
	c := mustResolve(t, "Decimal32(2)")
	// -1.23 scaled by 100 is -123, two's complement over 4 bytes.
	wire := fromHex(t, "85 ff ff ff")
	v, _, err := c.Decode(wire, 0)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("-1.23").Equal(v.(decimal.Decimal)))

	out, err := c.Encode(decimal.RequireFromString("-1.23"), nil)
	require.NoError(t, err)
	assert.Equal(t, wire, out)
}

func TestDecimalWidthFromPrecision(t *testing.T) {
	for _, tc := range []struct {
		typeName string
		size     int
	}{
		{"Decimal(9, 2)", 4},
		{"Decimal(10, 2)", 8},
		{"Decimal(18, 4)", 8},
		{"Decimal(19, 4)", 16},
		{"Decimal(38, 10)", 16},
		{"Decimal(39, 10)", 32},
		{"Decimal(76, 2)", 32},
	} {
		c := mustResolve(t, tc.typeName)
		out, err := c.Encode(decimal.New(1, 0), nil)
		require.NoError(t, err, tc.typeName)
		assert.Len(t, out, tc.size, tc.typeName)
	}
}

func TestDecimalEncodeTruncatesTowardZero(t *testing.T) {
	c := mustResolve(t, "Decimal(9, 2)")
	out, err := c.Encode(decimal.RequireFromString("1.239"), nil)
	require.NoError(t, err)
	v, _, err := c.Decode(out, 0)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1.23").Equal(v.(decimal.Decimal)))

	out, err = c.Encode(decimal.RequireFromString("-1.239"), nil)
	require.NoError(t, err)
	v, _, err = c.Decode(out, 0)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("-1.23").Equal(v.(decimal.Decimal)))
}

func TestDecimalEncodeFromOtherTypes(t *testing.T) {
	c := mustResolve(t, "Decimal(9, 2)")
	out, err := c.Encode("2.50", nil)
	require.NoError(t, err)
	v, _, err := c.Decode(out, 0)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("2.5").Equal(v.(decimal.Decimal)))

	out, err = c.Encode(3, nil)
	require.NoError(t, err)
	v, _, err = c.Decode(out, 0)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("3").Equal(v.(decimal.Decimal)))
}
