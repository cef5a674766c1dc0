// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import (
	"encoding/binary"
	"math"
)

func init() {
	registerType("Int8", func(r *Registry, def *TypeDef) (Codec, error) { return &intCodec{name: def.BaseName(), size: 1}, nil })
	registerType("Int16", func(r *Registry, def *TypeDef) (Codec, error) { return &intCodec{name: def.BaseName(), size: 2}, nil })
	registerType("Int32", func(r *Registry, def *TypeDef) (Codec, error) { return &intCodec{name: def.BaseName(), size: 4}, nil })
	registerType("Int64", func(r *Registry, def *TypeDef) (Codec, error) { return &intCodec{name: def.BaseName(), size: 8}, nil })
	registerType("UInt8", func(r *Registry, def *TypeDef) (Codec, error) { return &uintCodec{name: def.BaseName(), size: 1}, nil })
	registerType("UInt16", func(r *Registry, def *TypeDef) (Codec, error) { return &uintCodec{name: def.BaseName(), size: 2}, nil })
	registerType("UInt32", func(r *Registry, def *TypeDef) (Codec, error) { return &uintCodec{name: def.BaseName(), size: 4}, nil })
	registerType("UInt64", func(r *Registry, def *TypeDef) (Codec, error) { return &uintCodec{name: def.BaseName(), size: 8}, nil })
	registerType("Float32", func(r *Registry, def *TypeDef) (Codec, error) { return &floatCodec{name: def.BaseName(), size: 4}, nil })
	registerType("Float64", func(r *Registry, def *TypeDef) (Codec, error) { return &floatCodec{name: def.BaseName(), size: 8}, nil })
	registerType("Bool", func(r *Registry, def *TypeDef) (Codec, error) { return &boolCodec{name: def.BaseName()}, nil })
	registerType("Boolean", func(r *Registry, def *TypeDef) (Codec, error) { return &boolCodec{name: def.BaseName()}, nil })
}

// intCodec handles the fixed-width signed integers, little-endian.
type intCodec struct {
	name string
	size int
}

func (c *intCodec) Name() string { return c.name }

func (c *intCodec) Decode(src []byte, loc int) (any, int, error) {
	if err := need(c.name, src, loc, c.size); err != nil {
		return nil, 0, err
	}
	next := loc + c.size
	switch c.size {
	case 1:
		return int8(src[loc]), next, nil
	case 2:
		return int16(binary.LittleEndian.Uint16(src[loc:])), next, nil
	case 4:
		return int32(binary.LittleEndian.Uint32(src[loc:])), next, nil
	default:
		return int64(binary.LittleEndian.Uint64(src[loc:])), next, nil
	}
}

func (c *intCodec) Encode(value any, dst []byte) ([]byte, error) {
	v, ok := toInt64(value)
	if !ok {
		return nil, errValue(c.name, "cannot encode %T as integer", value)
	}
	return appendFixedLE(dst, uint64(v), c.size), nil
}

// uintCodec handles the fixed-width unsigned integers, little-endian.
type uintCodec struct {
	name string
	size int
}

func (c *uintCodec) Name() string { return c.name }

func (c *uintCodec) Decode(src []byte, loc int) (any, int, error) {
	if err := need(c.name, src, loc, c.size); err != nil {
		return nil, 0, err
	}
	next := loc + c.size
	switch c.size {
	case 1:
		return src[loc], next, nil
	case 2:
		return binary.LittleEndian.Uint16(src[loc:]), next, nil
	case 4:
		return binary.LittleEndian.Uint32(src[loc:]), next, nil
	default:
		return binary.LittleEndian.Uint64(src[loc:]), next, nil
	}
}

func (c *uintCodec) Encode(value any, dst []byte) ([]byte, error) {
	v, ok := toUint64(value)
	if !ok {
		return nil, errValue(c.name, "cannot encode %T as unsigned integer", value)
	}
	return appendFixedLE(dst, v, c.size), nil
}

// floatCodec handles Float32 and Float64.
type floatCodec struct {
	name string
	size int
}

func (c *floatCodec) Name() string { return c.name }

func (c *floatCodec) Decode(src []byte, loc int) (any, int, error) {
	if err := need(c.name, src, loc, c.size); err != nil {
		return nil, 0, err
	}
	next := loc + c.size
	if c.size == 4 {
		return math.Float32frombits(binary.LittleEndian.Uint32(src[loc:])), next, nil
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(src[loc:])), next, nil
}

func (c *floatCodec) Encode(value any, dst []byte) ([]byte, error) {
	v, ok := toFloat64(value)
	if !ok {
		return nil, errValue(c.name, "cannot encode %T as float", value)
	}
	if c.size == 4 {
		return appendFixedLE(dst, uint64(math.Float32bits(float32(v))), 4), nil
	}
	return appendFixedLE(dst, math.Float64bits(v), 8), nil
}

// boolCodec handles Bool, one byte, any nonzero decodes true.
type boolCodec struct {
	name string
}

func (c *boolCodec) Name() string { return c.name }

func (c *boolCodec) Decode(src []byte, loc int) (any, int, error) {
	if err := need(c.name, src, loc, 1); err != nil {
		return nil, 0, err
	}
	return src[loc] != 0, loc + 1, nil
}

func (c *boolCodec) Encode(value any, dst []byte) ([]byte, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, errValue(c.name, "cannot encode %T as bool", value)
	}
	if b {
		return append(dst, 1), nil
	}
	return append(dst, 0), nil
}

func appendFixedLE(dst []byte, v uint64, size int) []byte {
	for i := 0; i < size; i++ {
		dst = append(dst, byte(v>>(8*i)))
	}
	return dst
}

func toInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return int64(x), true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return int64(x), true
	}
	return 0, false
}

func toUint64(v any) (uint64, bool) {
	switch x := v.(type) {
	case uint:
		return uint64(x), true
	case uint8:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case uint64:
		return x, true
	case int:
		return uint64(x), true
	case int8:
		return uint64(x), true
	case int16:
		return uint64(x), true
	case int32:
		return uint64(x), true
	case int64:
		return uint64(x), true
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}
