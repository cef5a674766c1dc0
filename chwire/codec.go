// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

// Codec encodes and decodes values of one ClickHouse type in RowBinary.
// Implementations are stateless and safe for concurrent use.
type Codec interface {
	// Name returns the canonical type name.
	Name() string
	// Decode reads one value at loc and returns the value and the offset
	// just past it. src is never modified.
	Decode(src []byte, loc int) (any, int, error)
	// Encode appends the wire form of value to dst and returns the
	// extended slice.
	Encode(value any, dst []byte) ([]byte, error)
}
