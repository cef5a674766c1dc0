// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import (
	"math/bits"
	"sync/atomic"
)

// A transposer converts between per-element bit patterns ("words", one
// per vector element) and bit planes. Plane 0 carries the most
// significant bit of every element; within a plane, element i lives in
// byte i>>3 at bit i&7.
type transposer interface {
	transpose(words []uint64, nbits, dim int) [][]byte
	untranspose(planes [][]byte, nbits, dim int) []uint64
}

var qbitFastPath atomic.Bool

func init() {
	qbitFastPath.Store(true)
}

// SetQBitFastPath selects the bulk bit-transposition path (the default)
// or the scalar reference path. Both produce identical bytes; the switch
// exists for debugging and benchmarking.
func SetQBitFastPath(enabled bool) {
	qbitFastPath.Store(enabled)
}

func activeTransposer() transposer {
	if qbitFastPath.Load() {
		return bulkTransposer{}
	}
	return scalarTransposer{}
}

// scalarTransposer is the straightforward bit-at-a-time reference.
type scalarTransposer struct{}

func (scalarTransposer) transpose(words []uint64, nbits, dim int) [][]byte {
	planeLen := (dim + 7) / 8
	planes := make([][]byte, nbits)
	for p := range planes {
		planes[p] = make([]byte, planeLen)
	}
	for elem, w := range words {
		for p := 0; p < nbits; p++ {
			if w&(1<<(nbits-1-p)) != 0 {
				planes[p][elem>>3] |= 1 << (elem & 7)
			}
		}
	}
	return planes
}

func (scalarTransposer) untranspose(planes [][]byte, nbits, dim int) []uint64 {
	words := make([]uint64, dim)
	for p, plane := range planes {
		mask := uint64(1) << (nbits - 1 - p)
		for elem := 0; elem < dim; elem++ {
			if plane[elem>>3]&(1<<(elem&7)) != 0 {
				words[elem] |= mask
			}
		}
	}
	return words
}

// bulkTransposer skips zero bytes and walks only the set bits of each
// word or plane byte, which wins on the sparse bit patterns typical of
// clustered float data.
type bulkTransposer struct{}

func (bulkTransposer) transpose(words []uint64, nbits, dim int) [][]byte {
	planeLen := (dim + 7) / 8
	planes := make([][]byte, nbits)
	for p := range planes {
		planes[p] = make([]byte, planeLen)
	}
	for elem, w := range words {
		byteIdx := elem >> 3
		bit := byte(1) << (elem & 7)
		for v := w; v != 0; v &= v - 1 {
			pos := bits.TrailingZeros64(v)
			planes[nbits-1-pos][byteIdx] |= bit
		}
	}
	return planes
}

func (bulkTransposer) untranspose(planes [][]byte, nbits, dim int) []uint64 {
	words := make([]uint64, dim)
	for p, plane := range planes {
		mask := uint64(1) << (nbits - 1 - p)
		for byteIdx, bv := range plane {
			base := byteIdx << 3
			for v := bv; v != 0; v &= v - 1 {
				elem := base + bits.TrailingZeros8(v)
				if elem < dim {
					words[elem] |= mask
				}
			}
		}
	}
	return words
}
