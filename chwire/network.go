// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import (
	"encoding/binary"
	"net/netip"

	"github.com/google/uuid"
)

func init() {
	registerType("UUID", func(r *Registry, def *TypeDef) (Codec, error) { return &uuidCodec{name: def.BaseName()}, nil })
	registerType("IPv4", func(r *Registry, def *TypeDef) (Codec, error) { return &ipv4Codec{name: def.BaseName()}, nil })
	registerType("IPv6", func(r *Registry, def *TypeDef) (Codec, error) { return &ipv6Codec{name: def.BaseName()}, nil })
}

// uuidCodec handles UUID. The wire layout is the two 8-byte halves of the
// canonical big-endian form, each half byte-reversed.
type uuidCodec struct {
	name string
}

func (c *uuidCodec) Name() string { return c.name }

func (c *uuidCodec) Decode(src []byte, loc int) (any, int, error) {
	if err := need(c.name, src, loc, 16); err != nil {
		return nil, 0, err
	}
	var b [16]byte
	for i := 0; i < 8; i++ {
		b[i] = src[loc+7-i]
		b[8+i] = src[loc+15-i]
	}
	return uuid.UUID(b), loc + 16, nil
}

func (c *uuidCodec) Encode(value any, dst []byte) ([]byte, error) {
	var u uuid.UUID
	switch x := value.(type) {
	case uuid.UUID:
		u = x
	case string:
		var err error
		u, err = uuid.Parse(x)
		if err != nil {
			return nil, errValue(c.name, "cannot parse %q as UUID", x)
		}
	default:
		return nil, errValue(c.name, "cannot encode %T as UUID", value)
	}
	var b [16]byte
	for i := 0; i < 8; i++ {
		b[i] = u[7-i]
		b[8+i] = u[15-i]
	}
	return append(dst, b[:]...), nil
}

// ipv4Codec handles IPv4: a little-endian uint32.
type ipv4Codec struct {
	name string
}

func (c *ipv4Codec) Name() string { return c.name }

func (c *ipv4Codec) Decode(src []byte, loc int) (any, int, error) {
	if err := need(c.name, src, loc, 4); err != nil {
		return nil, 0, err
	}
	v := binary.LittleEndian.Uint32(src[loc:])
	addr := netip.AddrFrom4([4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
	return addr, loc + 4, nil
}

func (c *ipv4Codec) Encode(value any, dst []byte) ([]byte, error) {
	addr, err := toAddr(c.name, value)
	if err != nil {
		return nil, err
	}
	if !addr.Is4() && !addr.Is4In6() {
		return nil, errValue(c.name, "not an IPv4 address")
	}
	b := addr.Unmap().As4()
	return append(dst, b[3], b[2], b[1], b[0]), nil
}

// ipv6Codec handles IPv6: 16 network-order bytes. An IPv4-mapped prefix
// (::ffff:a.b.c.d) decodes to the 4-byte address form.
type ipv6Codec struct {
	name string
}

func (c *ipv6Codec) Name() string { return c.name }

func (c *ipv6Codec) Decode(src []byte, loc int) (any, int, error) {
	if err := need(c.name, src, loc, 16); err != nil {
		return nil, 0, err
	}
	var b [16]byte
	copy(b[:], src[loc:loc+16])
	addr := netip.AddrFrom16(b)
	if addr.Is4In6() {
		addr = addr.Unmap()
	}
	return addr, loc + 16, nil
}

func (c *ipv6Codec) Encode(value any, dst []byte) ([]byte, error) {
	addr, err := toAddr(c.name, value)
	if err != nil {
		return nil, err
	}
	if addr.Is4() {
		b4 := addr.As4()
		addr = netip.AddrFrom16([16]byte{10: 0xff, 11: 0xff, 12: b4[0], 13: b4[1], 14: b4[2], 15: b4[3]})
	}
	b := addr.As16()
	return append(dst, b[:]...), nil
}

func toAddr(name string, value any) (netip.Addr, error) {
	switch x := value.(type) {
	case netip.Addr:
		return x, nil
	case string:
		addr, err := netip.ParseAddr(x)
		if err != nil {
			return netip.Addr{}, errValue(name, "cannot parse %q as IP address", x)
		}
		return addr, nil
	}
	return netip.Addr{}, errValue(name, "cannot encode %T as IP address", value)
}
