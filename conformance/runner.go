// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package conformance

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Query-farm/chwire/chwire"
)

// Result reports one vector's outcome. Err is nil on success.
type Result struct {
	Vector Vector
	Err    error
}

// Run checks every vector against reg: the type name must resolve, the
// bytes must decode to the expected printed form, decoding must consume
// the buffer exactly, and re-encoding must reproduce the bytes.
func Run(reg *chwire.Registry) []Result {
	vectors := Vectors()
	results := make([]Result, len(vectors))
	for i, v := range vectors {
		results[i] = Result{Vector: v, Err: check(reg, v)}
	}
	return results
}

func check(reg *chwire.Registry, v Vector) error {
	wire, err := hex.DecodeString(strings.ReplaceAll(v.Hex, " ", ""))
	if err != nil {
		return fmt.Errorf("bad fixture hex: %w", err)
	}
	codec, err := reg.Resolve(v.TypeName)
	if err != nil {
		return err
	}
	value, next, err := codec.Decode(wire, 0)
	if err != nil {
		return err
	}
	if next != len(wire) {
		return fmt.Errorf("decode consumed %d of %d bytes", next, len(wire))
	}
	if v.Repr != "" {
		if got := fmt.Sprint(value); got != v.Repr {
			return fmt.Errorf("decoded %q, want %q", got, v.Repr)
		}
	}
	encoded, err := codec.Encode(value, nil)
	if err != nil {
		return err
	}
	if !bytes.Equal(encoded, wire) {
		return fmt.Errorf("re-encode produced % x, want % x", encoded, wire)
	}
	return nil
}
