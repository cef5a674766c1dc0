// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import (
	"errors"
	"io"
)

const streamChunkSize = 64 * 1024

// RowStream reads a RowBinaryWithNamesAndTypes payload incrementally from
// an io.Reader, yielding one row at a time without materializing the
// whole response. Not safe for concurrent use.
type RowStream struct {
	rd     io.Reader
	reg    *Registry
	names  []string
	types  []string
	codecs []Codec
	buf    []byte
	pos    int
	eof    bool
}

// NewRowStream opens a stream over rd, reading and resolving the header
// through the default registry before returning.
func NewRowStream(rd io.Reader) (*RowStream, error) {
	return newRowStream(rd, defaultRegistry)
}

func newRowStream(rd io.Reader, reg *Registry) (*RowStream, error) {
	s := &RowStream{rd: rd, reg: reg}
	for {
		names, typeNames, codecs, loc, err := reg.decodeHeader(s.buf)
		if err == nil {
			s.names, s.types, s.codecs = names, typeNames, codecs
			s.pos = loc
			return s, nil
		}
		if !errors.Is(err, ErrTruncatedData) || s.eof {
			return nil, err
		}
		if err := s.fill(); err != nil {
			return nil, err
		}
	}
}

// Names returns the column names from the stream header.
func (s *RowStream) Names() []string { return s.names }

// TypeNames returns the server-sent type names from the stream header.
func (s *RowStream) TypeNames() []string { return s.types }

// Next returns the next row, or io.EOF at a clean end of stream. A
// stream that ends mid-row fails with TrailingData.
func (s *RowStream) Next() ([]any, error) {
	for {
		if s.pos == len(s.buf) && s.eof {
			return nil, io.EOF
		}
		row, next, err := decodeRow(s.buf, s.pos, s.codecs)
		if err == nil {
			if next == s.pos {
				return nil, errTrailing(s.pos, "rows consume no bytes")
			}
			s.pos = next
			s.compact()
			return row, nil
		}
		if !errors.Is(err, ErrTruncatedData) {
			return nil, err
		}
		if s.eof {
			return nil, errTrailing(s.pos, "stream ended mid-row: %v", err)
		}
		if err := s.fill(); err != nil {
			return nil, err
		}
	}
}

// ReadAll drains the remaining rows.
func (s *RowStream) ReadAll() ([][]any, error) {
	var rows [][]any
	for {
		row, err := s.Next()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

func (s *RowStream) fill() error {
	chunk := make([]byte, streamChunkSize)
	n, err := s.rd.Read(chunk)
	if n > 0 {
		s.buf = append(s.buf, chunk[:n]...)
	}
	if err == io.EOF {
		s.eof = true
		return nil
	}
	return err
}

// compact drops consumed bytes once they dominate the buffer, keeping
// memory bounded on long streams.
func (s *RowStream) compact() {
	if s.pos < streamChunkSize || s.pos*2 < len(s.buf) {
		return
	}
	s.buf = append(s.buf[:0], s.buf[s.pos:]...)
	s.pos = 0
}
