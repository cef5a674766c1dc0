// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import "github.com/shopspring/decimal"

func init() {
	registerType("Decimal", newDecimal)
}

func newDecimal(r *Registry, def *TypeDef) (Codec, error) {
	var prec, scale int64
	switch {
	case def.Size == 0:
		if len(def.Args) != 2 || def.Args[0].Kind != ArgInt || def.Args[1].Kind != ArgInt {
			return nil, errInvalidParam(def.String(), "Decimal requires (precision, scale)")
		}
		prec, scale = def.Args[0].Int, def.Args[1].Int
	default:
		if len(def.Args) != 1 || def.Args[0].Kind != ArgInt {
			return nil, errInvalidParam(def.String(), "sized Decimal requires (scale)")
		}
		scale = def.Args[0].Int
		switch def.Size {
		case 32:
			prec = 9
		case 64:
			prec = 18
		case 128:
			prec = 38
		case 256:
			prec = 76
		default:
			return nil, errInvalidParam(def.String(), "unsupported Decimal width %d", def.Size)
		}
	}
	if prec < 1 || prec > 79 {
		return nil, errInvalidParam(def.String(), "precision %d out of range [1, 79]", prec)
	}
	if scale < 0 || scale > prec {
		return nil, errInvalidParam(def.String(), "scale %d out of range [0, %d]", scale, prec)
	}
	return &decimalCodec{
		name:  def.BaseName(),
		scale: int32(scale),
		size:  decimalByteSize(prec),
	}, nil
}

// decimalByteSize maps precision to storage width: up to 9 digits fit in
// 32 bits, 18 in 64, 38 in 128, and the rest in 256.
func decimalByteSize(prec int64) int {
	switch {
	case prec < 10:
		return 4
	case prec < 19:
		return 8
	case prec < 39:
		return 16
	default:
		return 32
	}
}

// decimalCodec handles Decimal(P, S) and the sized aliases. The wire form
// is the unscaled integer value in little-endian two's complement.
type decimalCodec struct {
	name  string
	scale int32
	size  int
}

func (c *decimalCodec) Name() string { return c.name }

func (c *decimalCodec) Decode(src []byte, loc int) (any, int, error) {
	if err := need(c.name, src, loc, c.size); err != nil {
		return nil, 0, err
	}
	unscaled := bigIntFromLE(src[loc:loc+c.size], true)
	return decimal.NewFromBigInt(unscaled, -c.scale), loc + c.size, nil
}

func (c *decimalCodec) Encode(value any, dst []byte) ([]byte, error) {
	var d decimal.Decimal
	switch x := value.(type) {
	case decimal.Decimal:
		d = x
	case int:
		d = decimal.NewFromInt(int64(x))
	case int64:
		d = decimal.NewFromInt(x)
	case float64:
		d = decimal.NewFromFloat(x)
	case string:
		var err error
		d, err = decimal.NewFromString(x)
		if err != nil {
			return nil, errValue(c.name, "cannot parse %q as decimal", x)
		}
	default:
		return nil, errValue(c.name, "cannot encode %T as decimal", value)
	}
	// Excess fractional digits truncate toward zero.
	unscaled := d.Shift(c.scale).Truncate(0).BigInt()
	if unscaled.BitLen() >= c.size*8 {
		return nil, errValue(c.name, "value overflows %d-byte decimal", c.size)
	}
	return appendBigIntLE(dst, unscaled, c.size), nil
}
