// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

// Package chwire implements the ClickHouse RowBinary wire format: the
// type-name grammar, a cached codec registry, per-type value codecs, and
// the row-level framing used by RowBinaryWithNamesAndTypes.
//
// The core is pure: [ParseTypeName] turns a server type name into a
// [TypeDef], [Resolve] returns the shared [Codec] for it, and
// [DecodeResponse] / [EncodeResponse] move whole result sets. On top of
// that, [Client] speaks the ClickHouse HTTP interface with optional
// zstd, lz4, or gzip body compression, [RowStream] reads results
// incrementally, and [NewRecord] bridges decoded responses to Apache
// Arrow records.
//
// Decoded values use the obvious Go types: sized integers, float32 and
// float64, string, time.Time, uuid.UUID, netip.Addr, decimal.Decimal,
// *big.Int for the 128- and 256-bit integers, []any for arrays and
// tuples, and nil for NULL.
package chwire
