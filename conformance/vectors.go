// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package conformance

// Vector is one canonical wire fixture: the type name, the RowBinary
// bytes of a single value, and optionally the printed form of the
// decoded value.
type Vector struct {
	// Name identifies the fixture in reports.
	Name string
	// TypeName is the ClickHouse type name to resolve.
	TypeName string
	// Hex is the wire encoding of one value, spaces ignored.
	Hex string
	// Repr, when non-empty, is compared against fmt.Sprint of the
	// decoded value. Left empty when the printed form is not stable
	// across platforms (time zone database differences, for one).
	Repr string
}

// Vectors returns the canonical fixture set. Every vector round-trips
// byte for byte: decode then encode reproduces Hex exactly.
func Vectors() []Vector {
	return []Vector{
		{
			Name:     "uint8",
			TypeName: "UInt8",
			Hex:      "40",
			Repr:     "64",
		},
		{
			Name:     "int16_negative",
			TypeName: "Int16",
			Hex:      "fe ff",
			Repr:     "-2",
		},
		{
			Name:     "uint64",
			TypeName: "UInt64",
			Hex:      "01 02 03 04 05 06 07 08",
			Repr:     "578437695752307201",
		},
		{
			Name:     "float64",
			TypeName: "Float64",
			Hex:      "00 00 00 00 00 00 f0 3f",
			Repr:     "1",
		},
		{
			Name:     "bool_true",
			TypeName: "Bool",
			Hex:      "01",
			Repr:     "true",
		},
		{
			Name:     "string",
			TypeName: "String",
			Hex:      "0f 41 20 6c 6f 76 65 6c 79 20 73 74 72 69 6e 67",
			Repr:     "A lovely string",
		},
		{
			Name:     "fixed_string",
			TypeName: "FixedString(4)",
			Hex:      "61 62 00 00",
			Repr:     "[97 98 0 0]",
		},
		{
			Name:     "enum8",
			TypeName: "Enum8('value1' = 7, 'value2' = 5)",
			Hex:      "07",
			Repr:     "value1",
		},
		{
			Name:     "enum16_escaped_label",
			TypeName: `Enum16('beta&&' = -3, '' = 0, 'alpha\'' = 3822)`,
			Hex:      "ee 0e",
			Repr:     "alpha'",
		},
		{
			Name:     "decimal128_scale5",
			TypeName: "Decimal128(5)",
			Hex:      "b8 6a 05 00 00 00 00 00 00 00 00 00 00 00 00 00",
			Repr:     "3.55",
		},
		{
			Name:     "date32_pre_epoch",
			TypeName: "Date32",
			Hex:      "fd f9 ff ff",
			Repr:     "1965-10-15 00:00:00 +0000 UTC",
		},
		{
			Name:     "date32_future",
			TypeName: "Date32",
			Hex:      "7a b9 00 00",
			Repr:     "2100-01-01 00:00:00 +0000 UTC",
		},
		{
			Name:     "datetime64_moscow",
			TypeName: "DateTime64(6, 'Europe/Moscow')",
			Hex:      "80 0b af 48 aa 8d 03 00",
		},
		{
			Name:     "uuid",
			TypeName: "UUID",
			Hex:      "6c 4a 9b 63 ad 80 a6 c4 97 e7 d6 75 33 71 5a ad",
			Repr:     "c4a680ad-639b-4a6c-ad5a-713375d6e797",
		},
		{
			Name:     "ipv4",
			TypeName: "IPv4",
			Hex:      "01 00 34 58",
			Repr:     "88.52.0.1",
		},
		{
			Name:     "ipv6_mapped_v4",
			TypeName: "IPv6",
			Hex:      "00 00 00 00 00 00 00 00 00 00 ff ff 58 34 00 01",
			Repr:     "88.52.0.1",
		},
		{
			Name:     "array_nullable_string",
			TypeName: "Array(Nullable(String))",
			Hex:      "04 00 07 73 74 72 69 6e 67 31 00 07 73 74 72 69 6e 67 32 01 00 03 73 74 34",
			Repr:     "[string1 string2 <nil> st4]",
		},
		{
			Name:     "tuple_mixed",
			TypeName: "Tuple(Boolean, String, Bool, Int16)",
			Hex:      "01 0f 41 20 6c 6f 76 65 6c 79 20 73 74 72 69 6e 67 00 77 23",
			Repr:     "[true A lovely string false 9079]",
		},
		{
			Name:     "map_single_entry",
			TypeName: "Map(String, UInt8)",
			Hex:      "01 03 6b 65 79 2a",
			Repr:     "map[key:42]",
		},
		{
			Name:     "nullable_null",
			TypeName: "Nullable(Int32)",
			Hex:      "01",
			Repr:     "<nil>",
		},
		{
			Name:     "low_cardinality_string",
			TypeName: "LowCardinality(String)",
			Hex:      "02 68 69",
			Repr:     "hi",
		},
		{
			Name:     "qbit_float32_dim8",
			TypeName: "QBit(Float32, 8)",
			Hex:      qbitOnesHex,
		},
	}
}

// qbitOnesHex is QBit(Float32, 8) carrying eight 1.0 values. 1.0f is
// 0x3f800000: bit 30 clear, bits 29..23 set, mantissa zero. Plane 0
// (bit 31) is zero, plane 1 (bit 30) is zero, planes 2 through 8
// (bits 29..23) are ff, everything below is zero.
const qbitOnesHex = "00 00 ff ff ff ff ff ff ff 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00"
