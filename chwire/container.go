// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import "strings"

func init() {
	registerType("Array", newArray)
	registerType("Tuple", newTuple)
	registerType("Map", newMap)
	registerType("SimpleAggregateFunction", newSimpleAgg)
}

func newArray(r *Registry, def *TypeDef) (Codec, error) {
	if len(def.Args) != 1 {
		return nil, errInvalidParam(def.String(), "Array requires one element type")
	}
	elem, err := resolveTypeArg(r, def, def.Args[0])
	if err != nil {
		return nil, err
	}
	return &arrayCodec{name: "Array(" + elem.Name() + ")", elem: elem}, nil
}

// arrayCodec handles Array(T): a LEB128 element count followed by the
// elements back to back.
type arrayCodec struct {
	name string
	elem Codec
}

func (c *arrayCodec) Name() string { return c.name }

func (c *arrayCodec) Decode(src []byte, loc int) (any, int, error) {
	n, loc, err := readUvarint(src, loc)
	if err != nil {
		return nil, 0, err
	}
	out := make([]any, 0, capHint(n, src, loc))
	for i := uint64(0); i < n; i++ {
		var v any
		v, loc, err = c.elem.Decode(src, loc)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	return out, loc, nil
}

func (c *arrayCodec) Encode(value any, dst []byte) ([]byte, error) {
	items, err := toSlice(c.name, value)
	if err != nil {
		return nil, err
	}
	dst = appendUvarint(dst, uint64(len(items)))
	for _, v := range items {
		dst, err = c.elem.Encode(v, dst)
		if err != nil {
			return nil, err
		}
	}
	return dst, nil
}

func newTuple(r *Registry, def *TypeDef) (Codec, error) {
	if len(def.Args) == 0 {
		return nil, errInvalidParam(def.String(), "Tuple requires at least one element type")
	}
	elems := make([]Codec, len(def.Args))
	names := make([]string, len(def.Args))
	for i, arg := range def.Args {
		if arg.Kind != ArgType {
			return nil, errInvalidParam(def.String(), "Tuple element %d is not a type", i)
		}
		elem, err := r.Resolve(stripFieldName(arg.Str))
		if err != nil {
			return nil, err
		}
		elems[i] = elem
		names[i] = elem.Name()
	}
	return &tupleCodec{name: "Tuple(" + strings.Join(names, ", ") + ")", elems: elems}, nil
}

// stripFieldName drops the leading identifier of a named tuple element
// ("id UInt64" resolves as UInt64). A bare type name passes through.
func stripFieldName(s string) string {
	sp := strings.IndexByte(s, ' ')
	if sp < 0 || strings.ContainsAny(s[:sp], "(,") {
		return s
	}
	rest := strings.TrimSpace(s[sp:])
	if rest == "" {
		return s
	}
	if _, err := ParseTypeName(rest); err == nil {
		return rest
	}
	return s
}

// tupleCodec handles Tuple(T1, ..., Tn): the element values back to back
// with no count prefix.
type tupleCodec struct {
	name  string
	elems []Codec
}

func (c *tupleCodec) Name() string { return c.name }

func (c *tupleCodec) Decode(src []byte, loc int) (any, int, error) {
	out := make([]any, len(c.elems))
	var err error
	for i, elem := range c.elems {
		out[i], loc, err = elem.Decode(src, loc)
		if err != nil {
			return nil, 0, err
		}
	}
	return out, loc, nil
}

func (c *tupleCodec) Encode(value any, dst []byte) ([]byte, error) {
	items, err := toSlice(c.name, value)
	if err != nil {
		return nil, err
	}
	if len(items) != len(c.elems) {
		return nil, errValue(c.name, "tuple arity mismatch: got %d values, want %d", len(items), len(c.elems))
	}
	for i, elem := range c.elems {
		dst, err = elem.Encode(items[i], dst)
		if err != nil {
			return nil, err
		}
	}
	return dst, nil
}

func newMap(r *Registry, def *TypeDef) (Codec, error) {
	if len(def.Args) != 2 {
		return nil, errInvalidParam(def.String(), "Map requires key and value types")
	}
	key, err := resolveTypeArg(r, def, def.Args[0])
	if err != nil {
		return nil, err
	}
	val, err := resolveTypeArg(r, def, def.Args[1])
	if err != nil {
		return nil, err
	}
	return &mapCodec{name: "Map(" + key.Name() + ", " + val.Name() + ")", key: key, val: val}, nil
}

// mapCodec handles Map(K, V): a LEB128 entry count followed by key/value
// pairs. Decoding yields map[any]any; entry order on encode follows Go
// map iteration and is not stable.
type mapCodec struct {
	name string
	key  Codec
	val  Codec
}

func (c *mapCodec) Name() string { return c.name }

func (c *mapCodec) Decode(src []byte, loc int) (any, int, error) {
	n, loc, err := readUvarint(src, loc)
	if err != nil {
		return nil, 0, err
	}
	out := make(map[any]any, capHint(n, src, loc))
	for i := uint64(0); i < n; i++ {
		var k, v any
		k, loc, err = c.key.Decode(src, loc)
		if err != nil {
			return nil, 0, err
		}
		v, loc, err = c.val.Decode(src, loc)
		if err != nil {
			return nil, 0, err
		}
		// FixedString keys decode to []byte, which cannot index a map.
		if b, ok := k.([]byte); ok {
			k = string(b)
		}
		out[k] = v
	}
	return out, loc, nil
}

func (c *mapCodec) Encode(value any, dst []byte) ([]byte, error) {
	m, ok := value.(map[any]any)
	if !ok {
		return nil, errValue(c.name, "cannot encode %T as map", value)
	}
	dst = appendUvarint(dst, uint64(len(m)))
	var err error
	for k, v := range m {
		dst, err = c.key.Encode(k, dst)
		if err != nil {
			return nil, err
		}
		dst, err = c.val.Encode(v, dst)
		if err != nil {
			return nil, err
		}
	}
	return dst, nil
}

func newSimpleAgg(r *Registry, def *TypeDef) (Codec, error) {
	if len(def.Args) != 2 {
		return nil, errInvalidParam(def.String(), "SimpleAggregateFunction requires (function, type)")
	}
	inner, err := resolveTypeArg(r, def, def.Args[1])
	if err != nil {
		return nil, err
	}
	// The aggregate stores plain values of the inner type; the function
	// name only matters server-side.
	return inner, nil
}

// nullableCodec prefixes the inner value with a presence byte: 0 means a
// value follows, nonzero means NULL and nothing follows.
type nullableCodec struct {
	inner Codec
}

func (c *nullableCodec) Name() string { return "Nullable(" + c.inner.Name() + ")" }

func (c *nullableCodec) Decode(src []byte, loc int) (any, int, error) {
	if err := need(c.Name(), src, loc, 1); err != nil {
		return nil, 0, err
	}
	if src[loc] != 0 {
		return nil, loc + 1, nil
	}
	return c.inner.Decode(src, loc+1)
}

func (c *nullableCodec) Encode(value any, dst []byte) ([]byte, error) {
	if value == nil {
		return append(dst, 1), nil
	}
	return c.inner.Encode(value, append(dst, 0))
}

// lowCardCodec is transparent in RowBinary: the dictionary encoding only
// exists in the Native format, so values pass straight through.
type lowCardCodec struct {
	inner Codec
}

func (c *lowCardCodec) Name() string { return "LowCardinality(" + c.inner.Name() + ")" }

func (c *lowCardCodec) Decode(src []byte, loc int) (any, int, error) {
	return c.inner.Decode(src, loc)
}

func (c *lowCardCodec) Encode(value any, dst []byte) ([]byte, error) {
	return c.inner.Encode(value, dst)
}

// capHint bounds a wire-declared element count by the bytes actually
// remaining, so a hostile count cannot drive an oversized allocation.
func capHint(n uint64, src []byte, loc int) int {
	if rem := uint64(len(src) - loc); n > rem {
		n = rem
	}
	return int(n)
}

func toSlice(name string, value any) ([]any, error) {
	switch x := value.(type) {
	case []any:
		return x, nil
	case []string:
		out := make([]any, len(x))
		for i, v := range x {
			out[i] = v
		}
		return out, nil
	case []int64:
		out := make([]any, len(x))
		for i, v := range x {
			out[i] = v
		}
		return out, nil
	case []float64:
		out := make([]any, len(x))
		for i, v := range x {
			out[i] = v
		}
		return out, nil
	}
	return nil, errValue(name, "cannot encode %T as sequence", value)
}
