// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package benchmark

import (
	"testing"

	"github.com/Query-farm/chwire/chwire"
)

func BenchmarkDecodeResponse(b *testing.B) {
	buf := BuildResponse(1000)
	b.SetBytes(int64(len(buf)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := chwire.DecodeResponse(buf); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncodeRows(b *testing.B) {
	rows := Rows(1000)
	codecs := make([]chwire.Codec, len(ColumnTypes))
	for i, tn := range ColumnTypes {
		var err error
		codecs[i], err = chwire.Resolve(tn)
		if err != nil {
			b.Fatal(err)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := chwire.EncodeRows(rows, codecs, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkQBit(b *testing.B, fastPath bool) {
	chwire.SetQBitFastPath(fastPath)
	defer chwire.SetQBitFastPath(true)

	codec, err := chwire.Resolve("QBit(Float32, 768)")
	if err != nil {
		b.Fatal(err)
	}
	vectors := RandomVectors(64, 768)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var dst []byte
		for _, v := range vectors {
			dst, err = codec.Encode(v, dst[:0])
			if err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkQBitEncodeBulk(b *testing.B)   { benchmarkQBit(b, true) }
func BenchmarkQBitEncodeScalar(b *testing.B) { benchmarkQBit(b, false) }
