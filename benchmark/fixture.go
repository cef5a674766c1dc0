// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

// Package benchmark builds deterministic RowBinary payloads used by the
// encode/decode benchmarks and by load tests elsewhere.
package benchmark

import (
	"fmt"
	"math/rand"

	"github.com/Query-farm/chwire/chwire"
)

// ColumnNames and ColumnTypes describe the fixture response shape: a
// representative mix of fixed-width, variable-width, and composite
// columns.
var (
	ColumnNames = []string{"id", "score", "label", "flag", "tags"}
	ColumnTypes = []string{"UInt64", "Float64", "String", "Bool", "Array(Int64)"}
)

// Rows generates n deterministic rows matching ColumnTypes.
func Rows(n int) [][]any {
	rng := rand.New(rand.NewSource(1))
	rows := make([][]any, n)
	for i := range rows {
		tags := make([]any, rng.Intn(4))
		for j := range tags {
			tags[j] = rng.Int63n(1000)
		}
		rows[i] = []any{
			uint64(i),
			rng.Float64() * 100,
			fmt.Sprintf("label-%06d", rng.Intn(100000)),
			rng.Intn(2) == 1,
			tags,
		}
	}
	return rows
}

// BuildResponse encodes n fixture rows as a complete
// RowBinaryWithNamesAndTypes payload.
func BuildResponse(n int) []byte {
	buf, err := chwire.EncodeResponse(ColumnNames, ColumnTypes, Rows(n))
	if err != nil {
		panic(err)
	}
	return buf
}

// RandomVectors generates n deterministic float32 vectors of the given
// dimension for the QBit benchmarks.
func RandomVectors(n, dim int) [][]float32 {
	rng := rand.New(rand.NewSource(2))
	out := make([][]float32, n)
	for i := range out {
		v := make([]float32, dim)
		for j := range v {
			v[j] = rng.Float32()*2 - 1
		}
		out[i] = v
	}
	return out
}
