// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package conformance

import (
	"testing"

	"github.com/Query-farm/chwire/chwire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorsPass(t *testing.T) {
	results := Run(chwire.NewRegistry())
	require.Len(t, results, len(Vectors()))
	for _, r := range results {
		assert.NoError(t, r.Err, r.Vector.Name)
	}
}

func TestVectorNamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, v := range Vectors() {
		assert.False(t, seen[v.Name], v.Name)
		seen[v.Name] = true
	}
}
