// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import "fmt"

// Unsigned LEB128, the variable-length integer RowBinary uses for lengths
// and counts. Reads accept over-long encodings; writes always produce the
// minimal form.

// readUvarint decodes an unsigned LEB128 value at loc and returns the value
// and the offset just past it.
func readUvarint(src []byte, loc int) (uint64, int, error) {
	var v uint64
	var shift uint
	for {
		if loc >= len(src) {
			return 0, 0, errTruncated("UVarInt", loc, 1, 0)
		}
		b := src[loc]
		loc++
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, loc, nil
		}
		shift += 7
		if shift >= 64 {
			return 0, 0, &WireError{Kind: KindTruncatedData, TypeName: "UVarInt", Offset: loc, Message: "varint exceeds 64 bits"}
		}
	}
}

// appendUvarint appends the minimal LEB128 encoding of v to dst.
func appendUvarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// readLEBString reads a LEB128-prefixed byte string at loc.
func readLEBString(src []byte, loc int) (string, int, error) {
	n, loc, err := readUvarint(src, loc)
	if err != nil {
		return "", 0, err
	}
	// Compare as uint64: a length at or above 2^63 would go negative as
	// an int and slip past the bounds check into a slice panic.
	if n > uint64(len(src)-loc) {
		return "", 0, &WireError{
			Kind:     KindTruncatedData,
			TypeName: "String",
			Offset:   loc,
			Message:  fmt.Sprintf("need %d bytes, have %d", n, len(src)-loc),
		}
	}
	return string(src[loc : loc+int(n)]), loc + int(n), nil
}

// appendLEBString appends the LEB128-prefixed encoding of s to dst.
func appendLEBString(dst []byte, s string) []byte {
	dst = appendUvarint(dst, uint64(len(s)))
	return append(dst, s...)
}
