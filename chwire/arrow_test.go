// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	buf, err := EncodeResponse(testColNames, testColTypes, testRows)
	require.NoError(t, err)
	resp, err := DecodeResponse(buf)
	require.NoError(t, err)

	rec, err := NewRecord(resp)
	require.NoError(t, err)
	defer rec.Release()

	assert.Equal(t, int64(3), rec.NumRows())
	assert.Equal(t, int64(3), rec.NumCols())
	assert.Equal(t, arrow.PrimitiveTypes.Uint64, rec.Schema().Field(0).Type)
	assert.Equal(t, arrow.BinaryTypes.String, rec.Schema().Field(1).Type)
	assert.Equal(t, arrow.PrimitiveTypes.Float64, rec.Schema().Field(2).Type)

	ids := rec.Column(0).(*array.Uint64)
	assert.Equal(t, uint64(1), ids.Value(0))
	assert.Equal(t, uint64(3), ids.Value(2))

	names := rec.Column(1).(*array.String)
	assert.Equal(t, "ada", names.Value(0))
	assert.True(t, names.IsNull(1))
	assert.Equal(t, "grace", names.Value(2))
}

func TestNewRecordUnsupportedColumn(t *testing.T) {
	buf, err := EncodeResponse([]string{"a"}, []string{"Array(Int64)"}, [][]any{{[]any{int64(1)}}})
	require.NoError(t, err)
	resp, err := DecodeResponse(buf)
	require.NoError(t, err)

	_, err = NewRecord(resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Arrow mapping")
}

func TestRecordRowsRoundTrip(t *testing.T) {
	buf, err := EncodeResponse(testColNames, testColTypes, testRows)
	require.NoError(t, err)
	resp, err := DecodeResponse(buf)
	require.NoError(t, err)

	rec, err := NewRecord(resp)
	require.NoError(t, err)
	defer rec.Release()

	names, typeNames, rows, err := RecordRows(rec)
	require.NoError(t, err)
	assert.Equal(t, testColNames, names)
	assert.Equal(t, []string{"UInt64", "String", "Float64"}, typeNames)
	require.Len(t, rows, 3)
	assert.Equal(t, uint64(1), rows[0][0])
	assert.Equal(t, "ada", rows[0][1])
	assert.Nil(t, rows[1][1])
	assert.Equal(t, -0.25, rows[1][2])
}
