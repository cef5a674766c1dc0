// Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

// Package conformance holds the canonical RowBinary wire fixtures shared
// by the test suite and the chwire-conformance command. Each [Vector]
// pins one type's encoding of one value: the bytes, and where the
// printed form is platform-stable, the decoded representation.
//
// [Run] checks the full set against a registry: resolve, decode,
// compare, re-encode, and require byte equality. Fixtures here are the
// compatibility contract with other RowBinary implementations; change
// them only when the wire format itself changes.
package conformance
