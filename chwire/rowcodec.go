// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import (
	"errors"
	"fmt"
)

// Response is a decoded RowBinaryWithNamesAndTypes payload.
type Response struct {
	// Names holds the column names in wire order.
	Names []string
	// TypeNames holds the server-sent type names, verbatim.
	TypeNames []string
	// Codecs holds the resolved codec per column.
	Codecs []Codec
	// Rows holds the decoded values, one inner slice per row.
	Rows [][]any
}

// DecodeResponse decodes a complete RowBinaryWithNamesAndTypes buffer
// using the default registry.
func DecodeResponse(buf []byte) (*Response, error) {
	return defaultRegistry.DecodeResponse(buf)
}

// DecodeResponse decodes a complete RowBinaryWithNamesAndTypes buffer:
// a LEB128 column count, the column names, the type names, then the rows
// back to back until the buffer ends. Truncation inside the header is
// TruncatedData; rows that start but cannot complete are TrailingData.
func (r *Registry) DecodeResponse(buf []byte) (*Response, error) {
	names, typeNames, codecs, loc, err := r.decodeHeader(buf)
	if err != nil {
		return nil, err
	}
	rows, err := decodeRowsAt(buf, loc, codecs)
	if err != nil {
		return nil, err
	}
	return &Response{Names: names, TypeNames: typeNames, Codecs: codecs, Rows: rows}, nil
}

func (r *Registry) decodeHeader(buf []byte) ([]string, []string, []Codec, int, error) {
	numCols, loc, err := readUvarint(buf, 0)
	if err != nil {
		return nil, nil, nil, 0, fmt.Errorf("column count: %w", err)
	}
	// Every column costs at least one name byte and one type byte, so a
	// count beyond the remaining buffer can never complete.
	if numCols > uint64(len(buf)-loc) {
		return nil, nil, nil, 0, &WireError{
			Kind:    KindTruncatedData,
			Offset:  loc,
			Message: fmt.Sprintf("column count %d exceeds %d remaining bytes", numCols, len(buf)-loc),
		}
	}
	names := make([]string, numCols)
	for i := range names {
		names[i], loc, err = readLEBString(buf, loc)
		if err != nil {
			return nil, nil, nil, 0, fmt.Errorf("column name %d: %w", i, err)
		}
	}
	typeNames := make([]string, numCols)
	codecs := make([]Codec, numCols)
	for i := range typeNames {
		typeNames[i], loc, err = readLEBString(buf, loc)
		if err != nil {
			return nil, nil, nil, 0, fmt.Errorf("column type %d: %w", i, err)
		}
		codecs[i], err = r.Resolve(typeNames[i])
		if err != nil {
			return nil, nil, nil, 0, err
		}
	}
	return names, typeNames, codecs, loc, nil
}

// DecodeRows decodes headerless row data: the concatenated rows of the
// given column codecs, which must consume the buffer exactly.
func DecodeRows(buf []byte, codecs []Codec) ([][]any, error) {
	return decodeRowsAt(buf, 0, codecs)
}

func decodeRowsAt(buf []byte, loc int, codecs []Codec) ([][]any, error) {
	var rows [][]any
	for loc < len(buf) {
		rowStart := loc
		row, next, err := decodeRow(buf, loc, codecs)
		if err != nil {
			if errors.Is(err, ErrTruncatedData) && (len(rows) > 0 || rowStart > 0) {
				return nil, errTrailing(rowStart, "%d trailing bytes do not form a complete row: %v", len(buf)-rowStart, err)
			}
			return nil, err
		}
		if next == rowStart {
			// Zero-width rows cannot be framed against a byte count.
			return nil, errTrailing(rowStart, "%d bytes remain but rows consume nothing", len(buf)-rowStart)
		}
		rows = append(rows, row)
		loc = next
	}
	return rows, nil
}

func decodeRow(buf []byte, loc int, codecs []Codec) ([]any, int, error) {
	row := make([]any, len(codecs))
	var err error
	for i, c := range codecs {
		row[i], loc, err = c.Decode(buf, loc)
		if err != nil {
			return nil, 0, err
		}
	}
	return row, loc, nil
}

// EncodeRows appends the headerless wire form of rows to dst.
func EncodeRows(rows [][]any, codecs []Codec, dst []byte) ([]byte, error) {
	var err error
	for i, row := range rows {
		if len(row) != len(codecs) {
			return nil, errValue("", "row %d has %d values, want %d", i, len(row), len(codecs))
		}
		for j, c := range codecs {
			dst, err = c.Encode(row[j], dst)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i, j, err)
			}
		}
	}
	return dst, nil
}

// EncodeResponse builds a complete RowBinaryWithNamesAndTypes buffer,
// header included, resolving typeNames through the default registry.
func EncodeResponse(names []string, typeNames []string, rows [][]any) ([]byte, error) {
	return defaultRegistry.EncodeResponse(names, typeNames, rows)
}

// EncodeResponse builds a complete RowBinaryWithNamesAndTypes buffer.
func (r *Registry) EncodeResponse(names []string, typeNames []string, rows [][]any) ([]byte, error) {
	if len(names) != len(typeNames) {
		return nil, errValue("", "%d names for %d types", len(names), len(typeNames))
	}
	codecs := make([]Codec, len(typeNames))
	for i, tn := range typeNames {
		var err error
		codecs[i], err = r.Resolve(tn)
		if err != nil {
			return nil, err
		}
	}
	dst := appendUvarint(nil, uint64(len(names)))
	for _, n := range names {
		dst = appendLEBString(dst, n)
	}
	for _, tn := range typeNames {
		dst = appendLEBString(dst, tn)
	}
	return EncodeRows(rows, codecs, dst)
}
