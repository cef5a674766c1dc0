// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import "fmt"

// ErrorKind classifies codec and wire failures.
type ErrorKind string

const (
	KindMalformedTypeName ErrorKind = "MalformedTypeName"
	KindUnknownType       ErrorKind = "UnknownType"
	KindInvalidParameter  ErrorKind = "InvalidTypeParameter"
	KindTruncatedData     ErrorKind = "TruncatedData"
	KindTrailingData      ErrorKind = "TrailingData"
	KindInvalidValue      ErrorKind = "InvalidValue"
)

// WireError is the error type produced by the parser, registry, and codecs.
// TypeName is the type being processed when known, Offset the byte offset
// into the buffer for decode errors (-1 otherwise).
type WireError struct {
	Kind     ErrorKind
	TypeName string
	Offset   int
	Message  string
}

func (e *WireError) Error() string {
	switch {
	case e.TypeName != "" && e.Offset >= 0:
		return fmt.Sprintf("%s: %s at offset %d: %s", e.Kind, e.TypeName, e.Offset, e.Message)
	case e.TypeName != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.TypeName, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

// Is matches any *WireError with the same Kind, so callers can use
// errors.Is(err, ErrTruncatedData) against the kind sentinels below.
func (e *WireError) Is(target error) bool {
	t, ok := target.(*WireError)
	if !ok {
		return false
	}
	return t.Kind == "" || t.Kind == e.Kind
}

// Kind sentinels for use with errors.Is.
var (
	ErrMalformedTypeName = &WireError{Kind: KindMalformedTypeName, Offset: -1}
	ErrUnknownType       = &WireError{Kind: KindUnknownType, Offset: -1}
	ErrInvalidParameter  = &WireError{Kind: KindInvalidParameter, Offset: -1}
	ErrTruncatedData     = &WireError{Kind: KindTruncatedData, Offset: -1}
	ErrTrailingData      = &WireError{Kind: KindTrailingData, Offset: -1}
	ErrInvalidValue      = &WireError{Kind: KindInvalidValue, Offset: -1}
)

func errMalformed(name, format string, args ...any) *WireError {
	return &WireError{Kind: KindMalformedTypeName, TypeName: name, Offset: -1, Message: fmt.Sprintf(format, args...)}
}

func errUnknownType(name string) *WireError {
	return &WireError{Kind: KindUnknownType, TypeName: name, Offset: -1, Message: "no codec registered"}
}

func errInvalidParam(name, format string, args ...any) *WireError {
	return &WireError{Kind: KindInvalidParameter, TypeName: name, Offset: -1, Message: fmt.Sprintf(format, args...)}
}

func errTruncated(name string, loc, need, have int) *WireError {
	return &WireError{
		Kind:     KindTruncatedData,
		TypeName: name,
		Offset:   loc,
		Message:  fmt.Sprintf("need %d bytes, have %d", need, have),
	}
}

func errTrailing(loc int, format string, args ...any) *WireError {
	return &WireError{Kind: KindTrailingData, Offset: loc, Message: fmt.Sprintf(format, args...)}
}

func errValue(name, format string, args ...any) *WireError {
	return &WireError{Kind: KindInvalidValue, TypeName: name, Offset: -1, Message: fmt.Sprintf(format, args...)}
}

// need verifies that n bytes are available at loc.
func need(name string, src []byte, loc, n int) error {
	if loc < 0 || loc+n > len(src) {
		have := len(src) - loc
		if have < 0 {
			have = 0
		}
		return errTruncated(name, loc, n, have)
	}
	return nil
}
