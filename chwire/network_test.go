// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import (
	"net/netip"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID(t *testing.T) {
	c := mustResolve(t, "UUID")

	wire := fromHex(t, "6c 4a 9b 63 ad 80 a6 c4 97 e7 d6 75 33 71 5a ad")
	v, next, err := c.Decode(wire, 0)
	require.NoError(t, err)
	assert.Equal(t, 16, next)
	assert.Equal(t, "c4a680ad-639b-4a6c-ad5a-713375d6e797", v.(uuid.UUID).String())

	out, err := c.Encode(v, nil)
	require.NoError(t, err)
	assert.Equal(t, wire, out)

	// String input is accepted.
	out, err = c.Encode("c4a680ad-639b-4a6c-ad5a-713375d6e797", nil)
	require.NoError(t, err)
	assert.Equal(t, wire, out)
}

func TestIPv4(t *testing.T) {
	c := mustResolve(t, "IPv4")

	wire := fromHex(t, "01 00 34 58")
	v, next, err := c.Decode(wire, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, next)
	assert.Equal(t, "88.52.0.1", v.(netip.Addr).String())

	out, err := c.Encode(v, nil)
	require.NoError(t, err)
	assert.Equal(t, wire, out)

	out, err = c.Encode("88.52.0.1", nil)
	require.NoError(t, err)
	assert.Equal(t, wire, out)

	_, err = c.Encode(netip.MustParseAddr("2001:db8::1"), nil)
	require.Error(t, err)
}

func TestIPv6(t *testing.T) {
	c := mustResolve(t, "IPv6")

	addr := netip.MustParseAddr("2001:db8::1")
	wire, err := c.Encode(addr, nil)
	require.NoError(t, err)
	assert.Len(t, wire, 16)

	v, next, err := c.Decode(wire, 0)
	require.NoError(t, err)
	assert.Equal(t, 16, next)
	assert.Equal(t, addr, v)
}

func TestIPv6MappedV4(t *testing.T) {
	c := mustResolve(t, "IPv6")

	wire := fromHex(t, "00 00 00 00 00 00 00 00 00 00 ff ff 58 34 00 01")
	v, _, err := c.Decode(wire, 0)
	require.NoError(t, err)
	assert.Equal(t, "88.52.0.1", v.(netip.Addr).String())

	// A plain v4 address encodes back to the mapped form.
	out, err := c.Encode(v, nil)
	require.NoError(t, err)
	assert.Equal(t, wire, out)
}
