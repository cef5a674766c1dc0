// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUvarintRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 300, 16383, 16384, 1<<32 - 1, 1<<64 - 1} {
		buf := appendUvarint(nil, v)
		got, next, err := readUvarint(buf, 0)
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Equal(t, len(buf), next)
	}
}

func TestUvarintMinimalEncoding(t *testing.T) {
	assert.Equal(t, []byte{0x00}, appendUvarint(nil, 0))
	assert.Equal(t, []byte{0x7f}, appendUvarint(nil, 127))
	assert.Equal(t, []byte{0x80, 0x01}, appendUvarint(nil, 128))
	assert.Equal(t, []byte{0xac, 0x02}, appendUvarint(nil, 300))
}

func TestUvarintAcceptsOverlong(t *testing.T) {
	// 1 encoded in two bytes with a redundant continuation.
	v, next, err := readUvarint([]byte{0x81, 0x00}, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
	assert.Equal(t, 2, next)
}

func TestUvarintTruncated(t *testing.T) {
	_, _, err := readUvarint([]byte{0x80}, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTruncatedData))

	_, _, err = readUvarint(nil, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTruncatedData))
}

func TestLEBStringHugeLength(t *testing.T) {
	// A declared length of 2^63 goes negative as an int; the bounds
	// check must reject it as truncation, not index the slice.
	wire := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	_, _, err := readLEBString(wire, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTruncatedData))

	c := mustResolve(t, "String")
	_, _, err = c.Decode(wire, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTruncatedData))
}

func TestLEBStringRoundTrip(t *testing.T) {
	buf := appendLEBString(nil, "A lovely string")
	assert.Equal(t, byte(0x0f), buf[0])
	s, next, err := readLEBString(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "A lovely string", s)
	assert.Equal(t, len(buf), next)

	_, _, err = readLEBString([]byte{0x05, 'a', 'b'}, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTruncatedData))
}
