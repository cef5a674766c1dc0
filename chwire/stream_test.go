// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowStream(t *testing.T) {
	buf, err := EncodeResponse(testColNames, testColTypes, testRows)
	require.NoError(t, err)

	s, err := NewRowStream(bytes.NewReader(buf))
	require.NoError(t, err)
	assert.Equal(t, testColNames, s.Names())
	assert.Equal(t, testColTypes, s.TypeNames())

	for _, want := range testRows {
		row, err := s.Next()
		require.NoError(t, err)
		assert.Equal(t, want, row)
	}
	_, err = s.Next()
	assert.Equal(t, io.EOF, err)
}

func TestRowStreamOneByteReads(t *testing.T) {
	// The header and rows arrive one byte at a time; the stream must
	// keep refilling until each unit completes.
	buf, err := EncodeResponse(testColNames, testColTypes, testRows)
	require.NoError(t, err)

	s, err := NewRowStream(iotest.OneByteReader(bytes.NewReader(buf)))
	require.NoError(t, err)
	rows, err := s.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, testRows, rows)
}

func TestRowStreamTruncatedMidRow(t *testing.T) {
	buf, err := EncodeResponse(testColNames, testColTypes, testRows)
	require.NoError(t, err)

	s, err := NewRowStream(bytes.NewReader(buf[:len(buf)-3]))
	require.NoError(t, err)
	_, err = s.ReadAll()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTrailingData))
}

func TestRowStreamTruncatedHeader(t *testing.T) {
	buf, err := EncodeResponse(testColNames, testColTypes, nil)
	require.NoError(t, err)

	_, err = NewRowStream(bytes.NewReader(buf[:5]))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTruncatedData))
}

func TestRowStreamEmptyRows(t *testing.T) {
	buf, err := EncodeResponse(testColNames, testColTypes, nil)
	require.NoError(t, err)

	s, err := NewRowStream(bytes.NewReader(buf))
	require.NoError(t, err)
	rows, err := s.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, rows)
}
