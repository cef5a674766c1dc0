// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import (
	"fmt"
	"math"
	"strings"
)

func init() {
	registerType("QBit", newQBit)
}

// qbitElement describes a supported QBit element type.
type qbitElement struct {
	bits int
}

var qbitElements = map[string]qbitElement{
	"BFLOAT16": {bits: 16},
	"FLOAT32":  {bits: 32},
	"FLOAT64":  {bits: 64},
}

var qbitCanonical = map[string]string{
	"BFLOAT16": "BFloat16",
	"FLOAT32":  "Float32",
	"FLOAT64":  "Float64",
}

func newQBit(r *Registry, def *TypeDef) (Codec, error) {
	if len(def.Args) != 2 {
		return nil, errInvalidParam(def.String(), "QBit requires (element type, dimension)")
	}
	elemName := ""
	switch def.Args[0].Kind {
	case ArgType, ArgString:
		elemName = def.Args[0].Str
	default:
		return nil, errInvalidParam(def.String(), "QBit element must be a type name")
	}
	elem, ok := qbitElements[strings.ToUpper(elemName)]
	if !ok {
		return nil, errInvalidParam(def.String(), "unsupported QBit element type %q", elemName)
	}
	if def.Args[1].Kind != ArgInt || def.Args[1].Int <= 0 || def.Args[1].Int > math.MaxInt32 {
		return nil, errInvalidParam(def.String(), "QBit dimension must be a positive integer")
	}
	dim := int(def.Args[1].Int)
	planeLen := (dim + 7) / 8
	name := fmt.Sprintf("QBit(%s, %d)", qbitCanonical[strings.ToUpper(elemName)], dim)
	return &qbitCodec{
		name:     name,
		elemName: qbitCanonical[strings.ToUpper(elemName)],
		bits:     elem.bits,
		dim:      dim,
		planeLen: planeLen,
	}, nil
}

// qbitCodec handles QBit(E, dim): the vector stored bit-transposed as E's
// bit width worth of FixedString planes, most significant plane first.
// BFloat16 elements are the top 16 bits of their float32 value.
type qbitCodec struct {
	name     string
	elemName string
	bits     int
	dim      int
	planeLen int
}

func (c *qbitCodec) Name() string { return c.name }

func (c *qbitCodec) Decode(src []byte, loc int) (any, int, error) {
	total := c.bits * c.planeLen
	if err := need(c.name, src, loc, total); err != nil {
		return nil, 0, err
	}
	planes := make([][]byte, c.bits)
	for p := range planes {
		planes[p] = src[loc : loc+c.planeLen]
		loc += c.planeLen
	}
	words := activeTransposer().untranspose(planes, c.bits, c.dim)
	switch c.elemName {
	case "Float64":
		out := make([]float64, c.dim)
		for i, w := range words {
			out[i] = math.Float64frombits(w)
		}
		return out, loc, nil
	case "Float32":
		out := make([]float32, c.dim)
		for i, w := range words {
			out[i] = math.Float32frombits(uint32(w))
		}
		return out, loc, nil
	default: // BFloat16
		out := make([]float32, c.dim)
		for i, w := range words {
			out[i] = math.Float32frombits(uint32(w) << 16)
		}
		return out, loc, nil
	}
}

func (c *qbitCodec) Encode(value any, dst []byte) ([]byte, error) {
	words, err := c.toWords(value)
	if err != nil {
		return nil, err
	}
	planes := activeTransposer().transpose(words, c.bits, c.dim)
	for _, plane := range planes {
		dst = append(dst, plane...)
	}
	return dst, nil
}

func (c *qbitCodec) toWords(value any) ([]uint64, error) {
	var f64 []float64
	switch x := value.(type) {
	case []float32:
		f64 = make([]float64, len(x))
		for i, v := range x {
			f64[i] = float64(v)
		}
	case []float64:
		f64 = x
	default:
		return nil, errValue(c.name, "cannot encode %T as vector", value)
	}
	if len(f64) != c.dim {
		return nil, errInvalidParam(c.name, "vector length %d does not match dimension %d", len(f64), c.dim)
	}
	words := make([]uint64, c.dim)
	switch c.elemName {
	case "Float64":
		for i, v := range f64 {
			words[i] = math.Float64bits(v)
		}
	case "Float32":
		for i, v := range f64 {
			words[i] = uint64(math.Float32bits(float32(v)))
		}
	default: // BFloat16
		for i, v := range f64 {
			words[i] = uint64(math.Float32bits(float32(v)) >> 16)
		}
	}
	return words, nil
}
