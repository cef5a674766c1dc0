// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import (
	"encoding/binary"
	"time"
)

func init() {
	registerType("Date", func(r *Registry, def *TypeDef) (Codec, error) {
		return &dateCodec{name: def.BaseName()}, nil
	})
	registerType("Date32", func(r *Registry, def *TypeDef) (Codec, error) {
		return &date32Codec{name: def.BaseName()}, nil
	})
	registerType("DateTime", newDateTime)
	registerType("DateTime64", newDateTime64)
}

const secondsPerDay = 86400

// dateCodec handles Date: days since the epoch as uint16. Decoded values
// are midnight UTC.
type dateCodec struct {
	name string
}

func (c *dateCodec) Name() string { return c.name }

func (c *dateCodec) Decode(src []byte, loc int) (any, int, error) {
	if err := need(c.name, src, loc, 2); err != nil {
		return nil, 0, err
	}
	days := int64(binary.LittleEndian.Uint16(src[loc:]))
	return time.Unix(days*secondsPerDay, 0).UTC(), loc + 2, nil
}

func (c *dateCodec) Encode(value any, dst []byte) ([]byte, error) {
	t, ok := value.(time.Time)
	if !ok {
		return nil, errValue(c.name, "cannot encode %T as date", value)
	}
	days := floorDiv(t.Unix(), secondsPerDay)
	if days < 0 || days > 65535 {
		return nil, errValue(c.name, "date out of range")
	}
	return appendFixedLE(dst, uint64(days), 2), nil
}

// date32Codec handles Date32: days since the epoch as int32, covering
// dates before 1970.
type date32Codec struct {
	name string
}

func (c *date32Codec) Name() string { return c.name }

func (c *date32Codec) Decode(src []byte, loc int) (any, int, error) {
	if err := need(c.name, src, loc, 4); err != nil {
		return nil, 0, err
	}
	days := int64(int32(binary.LittleEndian.Uint32(src[loc:])))
	return time.Unix(days*secondsPerDay, 0).UTC(), loc + 4, nil
}

func (c *date32Codec) Encode(value any, dst []byte) ([]byte, error) {
	t, ok := value.(time.Time)
	if !ok {
		return nil, errValue(c.name, "cannot encode %T as date", value)
	}
	days := floorDiv(t.Unix(), secondsPerDay)
	return appendFixedLE(dst, uint64(uint32(int32(days))), 4), nil
}

func newDateTime(r *Registry, def *TypeDef) (Codec, error) {
	loc, err := temporalLocation(def, 0)
	if err != nil {
		return nil, err
	}
	return &dateTimeCodec{name: def.BaseName(), loc: loc}, nil
}

// dateTimeCodec handles DateTime: seconds since the epoch as uint32,
// rendered in the declared time zone.
type dateTimeCodec struct {
	name string
	loc  *time.Location
}

func (c *dateTimeCodec) Name() string { return c.name }

func (c *dateTimeCodec) Decode(src []byte, loc int) (any, int, error) {
	if err := need(c.name, src, loc, 4); err != nil {
		return nil, 0, err
	}
	secs := int64(binary.LittleEndian.Uint32(src[loc:]))
	return time.Unix(secs, 0).In(c.loc), loc + 4, nil
}

func (c *dateTimeCodec) Encode(value any, dst []byte) ([]byte, error) {
	t, ok := value.(time.Time)
	if !ok {
		return nil, errValue(c.name, "cannot encode %T as datetime", value)
	}
	secs := t.Unix()
	if secs < 0 || secs > 0xffffffff {
		return nil, errValue(c.name, "timestamp out of range")
	}
	return appendFixedLE(dst, uint64(secs), 4), nil
}

func newDateTime64(r *Registry, def *TypeDef) (Codec, error) {
	if len(def.Args) < 1 || def.Args[0].Kind != ArgInt {
		return nil, errInvalidParam(def.String(), "DateTime64 requires a precision")
	}
	prec := def.Args[0].Int
	if prec < 0 || prec > 9 {
		return nil, errInvalidParam(def.String(), "precision %d out of range [0, 9]", prec)
	}
	loc, err := temporalLocation(def, 1)
	if err != nil {
		return nil, err
	}
	div := int64(1)
	for i := int64(0); i < prec; i++ {
		div *= 10
	}
	return &dateTime64Codec{name: def.BaseName(), div: div, loc: loc}, nil
}

// dateTime64Codec handles DateTime64(prec): a signed tick count at
// 10^prec ticks per second. Negative ticks use floor division so the
// sub-second remainder stays non-negative.
type dateTime64Codec struct {
	name string
	div  int64
	loc  *time.Location
}

func (c *dateTime64Codec) Name() string { return c.name }

func (c *dateTime64Codec) Decode(src []byte, loc int) (any, int, error) {
	if err := need(c.name, src, loc, 8); err != nil {
		return nil, 0, err
	}
	ticks := int64(binary.LittleEndian.Uint64(src[loc:]))
	secs := floorDiv(ticks, c.div)
	frac := ticks - secs*c.div
	nanos := frac * (1e9 / c.div)
	return time.Unix(secs, nanos).In(c.loc), loc + 8, nil
}

func (c *dateTime64Codec) Encode(value any, dst []byte) ([]byte, error) {
	t, ok := value.(time.Time)
	if !ok {
		return nil, errValue(c.name, "cannot encode %T as datetime", value)
	}
	ticks := t.Unix()*c.div + int64(t.Nanosecond())/(1e9/c.div)
	return appendFixedLE(dst, uint64(ticks), 8), nil
}

// temporalLocation reads an optional IANA time zone argument at index.
func temporalLocation(def *TypeDef, index int) (*time.Location, error) {
	if len(def.Args) <= index {
		return time.UTC, nil
	}
	arg := def.Args[index]
	if arg.Kind != ArgString {
		return nil, errInvalidParam(def.String(), "time zone must be a quoted string")
	}
	loc, err := time.LoadLocation(arg.Str)
	if err != nil {
		return nil, errInvalidParam(def.String(), "unknown time zone %q", arg.Str)
	}
	return loc, nil
}

// floorDiv rounds the quotient toward negative infinity, unlike Go's /
// which truncates toward zero.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
