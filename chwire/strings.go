// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

func init() {
	registerType("String", func(r *Registry, def *TypeDef) (Codec, error) {
		return &stringCodec{name: def.BaseName()}, nil
	})
	registerType("FixedString", func(r *Registry, def *TypeDef) (Codec, error) {
		if len(def.Args) != 1 || def.Args[0].Kind != ArgInt || def.Args[0].Int <= 0 {
			return nil, errInvalidParam(def.String(), "FixedString requires a positive byte length")
		}
		return &fixedStringCodec{name: def.BaseName(), size: int(def.Args[0].Int)}, nil
	})
	registerType("Nothing", func(r *Registry, def *TypeDef) (Codec, error) {
		return &nothingCodec{name: def.BaseName()}, nil
	})
}

// stringCodec handles String: a LEB128 byte length followed by the bytes.
type stringCodec struct {
	name string
}

func (c *stringCodec) Name() string { return c.name }

func (c *stringCodec) Decode(src []byte, loc int) (any, int, error) {
	s, next, err := readLEBString(src, loc)
	if err != nil {
		return nil, 0, err
	}
	return s, next, nil
}

func (c *stringCodec) Encode(value any, dst []byte) ([]byte, error) {
	switch x := value.(type) {
	case string:
		return appendLEBString(dst, x), nil
	case []byte:
		dst = appendUvarint(dst, uint64(len(x)))
		return append(dst, x...), nil
	}
	return nil, errValue(c.name, "cannot encode %T as string", value)
}

// fixedStringCodec handles FixedString(N): exactly N raw bytes. Decoded
// values are byte slices; encoding zero-pads shorter input.
type fixedStringCodec struct {
	name string
	size int
}

func (c *fixedStringCodec) Name() string { return c.name }

func (c *fixedStringCodec) Decode(src []byte, loc int) (any, int, error) {
	if err := need(c.name, src, loc, c.size); err != nil {
		return nil, 0, err
	}
	out := make([]byte, c.size)
	copy(out, src[loc:loc+c.size])
	return out, loc + c.size, nil
}

func (c *fixedStringCodec) Encode(value any, dst []byte) ([]byte, error) {
	var b []byte
	switch x := value.(type) {
	case []byte:
		b = x
	case string:
		b = []byte(x)
	default:
		return nil, errValue(c.name, "cannot encode %T as fixed string", value)
	}
	if len(b) > c.size {
		return nil, errValue(c.name, "value of %d bytes exceeds width %d", len(b), c.size)
	}
	dst = append(dst, b...)
	for i := len(b); i < c.size; i++ {
		dst = append(dst, 0)
	}
	return dst, nil
}

// nothingCodec is the zero-width placeholder type.
type nothingCodec struct {
	name string
}

func (c *nothingCodec) Name() string { return c.name }

func (c *nothingCodec) Decode(src []byte, loc int) (any, int, error) {
	return nil, loc, nil
}

func (c *nothingCodec) Encode(value any, dst []byte) ([]byte, error) {
	return dst, nil
}
