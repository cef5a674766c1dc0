// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import "math/big"

func init() {
	registerType("Int128", func(r *Registry, def *TypeDef) (Codec, error) { return &bigIntCodec{name: def.BaseName(), size: 16, signed: true}, nil })
	registerType("Int256", func(r *Registry, def *TypeDef) (Codec, error) { return &bigIntCodec{name: def.BaseName(), size: 32, signed: true}, nil })
	registerType("UInt128", func(r *Registry, def *TypeDef) (Codec, error) { return &bigIntCodec{name: def.BaseName(), size: 16}, nil })
	registerType("UInt256", func(r *Registry, def *TypeDef) (Codec, error) { return &bigIntCodec{name: def.BaseName(), size: 32}, nil })
}

// bigIntCodec handles the 128- and 256-bit integers as *big.Int. The wire
// form is little-endian, two's complement for the signed variants.
type bigIntCodec struct {
	name   string
	size   int
	signed bool
}

func (c *bigIntCodec) Name() string { return c.name }

func (c *bigIntCodec) Decode(src []byte, loc int) (any, int, error) {
	if err := need(c.name, src, loc, c.size); err != nil {
		return nil, 0, err
	}
	return bigIntFromLE(src[loc:loc+c.size], c.signed), loc + c.size, nil
}

func (c *bigIntCodec) Encode(value any, dst []byte) ([]byte, error) {
	var v *big.Int
	switch x := value.(type) {
	case *big.Int:
		v = x
	case int:
		v = big.NewInt(int64(x))
	case int64:
		v = big.NewInt(x)
	case uint64:
		v = new(big.Int).SetUint64(x)
	default:
		return nil, errValue(c.name, "cannot encode %T as big integer", value)
	}
	if !c.signed && v.Sign() < 0 {
		return nil, errValue(c.name, "negative value for unsigned type")
	}
	if c.signed {
		// Signed range is [-2^(k-1), 2^(k-1)-1]; BitLen alone cannot
		// tell 2^(k-1) from its legal negation.
		limit := new(big.Int).Lsh(big.NewInt(1), uint(c.size*8-1))
		if v.Cmp(limit) >= 0 || v.Cmp(new(big.Int).Neg(limit)) < 0 {
			return nil, errValue(c.name, "value exceeds %d-bit signed range", c.size*8)
		}
	} else if v.BitLen() > c.size*8 {
		return nil, errValue(c.name, "value exceeds %d bits", c.size*8)
	}
	return appendBigIntLE(dst, v, c.size), nil
}

// bigIntFromLE interprets size little-endian bytes, applying two's
// complement when signed and the top bit is set.
func bigIntFromLE(src []byte, signed bool) *big.Int {
	be := make([]byte, len(src))
	for i, b := range src {
		be[len(src)-1-i] = b
	}
	v := new(big.Int).SetBytes(be)
	if signed && len(src) > 0 && src[len(src)-1]&0x80 != 0 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(8*len(src))))
	}
	return v
}

// appendBigIntLE appends v as size little-endian two's-complement bytes.
func appendBigIntLE(dst []byte, v *big.Int, size int) []byte {
	tmp := v
	if v.Sign() < 0 {
		tmp = new(big.Int).Add(v, new(big.Int).Lsh(big.NewInt(1), uint(8*size)))
	}
	be := tmp.Bytes()
	buf := make([]byte, size)
	for i := 0; i < len(be) && i < size; i++ {
		buf[i] = be[len(be)-1-i]
	}
	return append(dst, buf...)
}
