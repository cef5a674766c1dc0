// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringDecode(t *testing.T) {
	c := mustResolve(t, "String")
	wire := fromHex(t, "0f 41 20 6c 6f 76 65 6c 79 20 73 74 72 69 6e 67")
	v, next, err := c.Decode(wire, 0)
	require.NoError(t, err)
	assert.Equal(t, "A lovely string", v)
	assert.Equal(t, len(wire), next)

	out, err := c.Encode(v, nil)
	require.NoError(t, err)
	assert.Equal(t, wire, out)
}

func TestStringEmpty(t *testing.T) {
	c := mustResolve(t, "String")
	v, next, err := c.Decode([]byte{0x00}, 0)
	require.NoError(t, err)
	assert.Equal(t, "", v)
	assert.Equal(t, 1, next)
}

func TestStringTruncatedBody(t *testing.T) {
	c := mustResolve(t, "String")
	_, _, err := c.Decode([]byte{0x0a, 'h', 'i'}, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTruncatedData))
}

func TestStringEncodeBytes(t *testing.T) {
	c := mustResolve(t, "String")
	out, err := c.Encode([]byte{0x00, 0xff}, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x00, 0xff}, out)
}

func TestFixedString(t *testing.T) {
	c := mustResolve(t, "FixedString(4)")

	v, next, err := c.Decode(fromHex(t, "61 62 00 00"), 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{'a', 'b', 0, 0}, v)
	assert.Equal(t, 4, next)

	// Short input zero-pads.
	out, err := c.Encode("ab", nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{'a', 'b', 0, 0}, out)

	// Over-length input is rejected.
	_, err = c.Encode("abcde", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidValue))

	_, _, err = c.Decode([]byte{1, 2}, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTruncatedData))
}

func TestNothing(t *testing.T) {
	c := mustResolve(t, "Nothing")
	v, next, err := c.Decode(nil, 0)
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, 0, next)

	out, err := c.Encode(nil, []byte{0xaa})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xaa}, out)
}
