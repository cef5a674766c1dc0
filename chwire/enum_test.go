// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnum8(t *testing.T) {
	c := mustResolve(t, "Enum8('value1' = 7, 'value2' = 5)")

	v, next, err := c.Decode([]byte{0x07}, 0)
	require.NoError(t, err)
	assert.Equal(t, "value1", v)
	assert.Equal(t, 1, next)

	v, _, err = c.Decode([]byte{0x05}, 0)
	require.NoError(t, err)
	assert.Equal(t, "value2", v)

	out, err := c.Encode("value1", nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x07}, out)

	// Raw codes encode too.
	out, err = c.Encode(5, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x05}, out)
}

func TestEnum16(t *testing.T) {
	c := mustResolve(t, `Enum16('beta&&' = -3, '' = 0, 'alpha\'' = 3822)`)

	v, next, err := c.Decode(fromHex(t, "ee 0e"), 0)
	require.NoError(t, err)
	assert.Equal(t, "alpha'", v)
	assert.Equal(t, 2, next)

	v, _, err = c.Decode(fromHex(t, "fd ff"), 0)
	require.NoError(t, err)
	assert.Equal(t, "beta&&", v)

	out, err := c.Encode("alpha'", nil)
	require.NoError(t, err)
	assert.Equal(t, fromHex(t, "ee 0e"), out)
}

func TestEnumBareWidth(t *testing.T) {
	c := mustResolve(t, "Enum('a' = 1, 'b' = 2)")
	v, next, err := c.Decode([]byte{0x02}, 0)
	require.NoError(t, err)
	assert.Equal(t, "b", v)
	assert.Equal(t, 1, next)

	// Codes outside the one-byte range widen to two bytes.
	c = mustResolve(t, "Enum('wide' = 1000)")
	v, next, err = c.Decode(fromHex(t, "e8 03"), 0)
	require.NoError(t, err)
	assert.Equal(t, "wide", v)
	assert.Equal(t, 2, next)
}

func TestEnumUnknown(t *testing.T) {
	c := mustResolve(t, "Enum8('a' = 1)")

	_, _, err := c.Decode([]byte{0x09}, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidValue))

	_, err = c.Encode("missing", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidValue))

	_, err = c.Encode(9, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidValue))
}
