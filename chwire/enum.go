// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import "encoding/binary"

func init() {
	registerType("Enum8", func(r *Registry, def *TypeDef) (Codec, error) { return newEnum(def, 1) })
	registerType("Enum16", func(r *Registry, def *TypeDef) (Codec, error) { return newEnum(def, 2) })
	registerType("Enum", func(r *Registry, def *TypeDef) (Codec, error) {
		if def.Size != 0 {
			return nil, errInvalidParam(def.String(), "unsupported enum width %d", def.Size)
		}
		return newEnum(def, enumWidth(def.Values))
	})
}

// enumWidth picks the narrowest width covering every code of a bare Enum.
func enumWidth(values []int64) int {
	for _, v := range values {
		if v < -128 || v > 127 {
			return 2
		}
	}
	return 1
}

func newEnum(def *TypeDef, width int) (Codec, error) {
	if len(def.Keys) == 0 {
		return nil, errInvalidParam(def.String(), "enum requires at least one label")
	}
	lo, hi := int64(-128), int64(127)
	if width == 2 {
		lo, hi = -32768, 32767
	}
	c := &enumCodec{
		name:    def.BaseName(),
		width:   width,
		toLabel: make(map[int64]string, len(def.Keys)),
		toCode:  make(map[string]int64, len(def.Keys)),
	}
	for i, k := range def.Keys {
		v := def.Values[i]
		if v < lo || v > hi {
			return nil, errInvalidParam(def.String(), "enum code %d out of range", v)
		}
		c.toLabel[v] = k
		c.toCode[k] = v
	}
	return c, nil
}

// enumCodec handles Enum8 and Enum16. Decoded values are the string
// labels; encoding accepts a label or a raw integer code.
type enumCodec struct {
	name    string
	width   int
	toLabel map[int64]string
	toCode  map[string]int64
}

func (c *enumCodec) Name() string { return c.name }

func (c *enumCodec) Decode(src []byte, loc int) (any, int, error) {
	if err := need(c.name, src, loc, c.width); err != nil {
		return nil, 0, err
	}
	var code int64
	if c.width == 1 {
		code = int64(int8(src[loc]))
	} else {
		code = int64(int16(binary.LittleEndian.Uint16(src[loc:])))
	}
	label, ok := c.toLabel[code]
	if !ok {
		return nil, 0, &WireError{Kind: KindInvalidValue, TypeName: c.name, Offset: loc, Message: "unknown enum code"}
	}
	return label, loc + c.width, nil
}

func (c *enumCodec) Encode(value any, dst []byte) ([]byte, error) {
	var code int64
	switch x := value.(type) {
	case string:
		v, ok := c.toCode[x]
		if !ok {
			return nil, errValue(c.name, "unknown enum label %q", x)
		}
		code = v
	default:
		v, ok := toInt64(value)
		if !ok {
			return nil, errValue(c.name, "cannot encode %T as enum", value)
		}
		if _, known := c.toLabel[v]; !known {
			return nil, errValue(c.name, "unknown enum code %d", v)
		}
		code = v
	}
	return appendFixedLE(dst, uint64(code), c.width), nil
}
