// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the HTTP body compression scheme. The zero value
// disables compression.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
	CompressionGzip Compression = "gzip"
)

// ServerError is a ClickHouse exception surfaced over HTTP. Code is the
// server exception code (62 for syntax errors, 81 for unknown database,
// and so on), 0 when the server did not report one.
type ServerError struct {
	Code    int
	Message string
}

func (e *ServerError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("server error code %d: %s", e.Code, e.Message)
	}
	return "server error: " + e.Message
}

var exceptionCodeRe = regexp.MustCompile(`Code:\s*(\d+)`)

// newServerError builds a ServerError from an HTTP error response,
// preferring the exception-code header over the body text.
func newServerError(statusCode int, headerCode string, body []byte) error {
	msg := strings.TrimSpace(string(body))
	code := 0
	if headerCode != "" {
		code, _ = strconv.Atoi(headerCode)
	}
	if code == 0 {
		if m := exceptionCodeRe.FindStringSubmatch(msg); m != nil {
			code, _ = strconv.Atoi(m[1])
		}
	}
	if msg == "" {
		msg = http.StatusText(statusCode)
	}
	return &ServerError{Code: code, Message: msg}
}

func acceptEncoding(c Compression) string {
	switch c {
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	case CompressionGzip:
		return "gzip"
	default:
		return ""
	}
}

// decompressReader wraps body according to the response Content-Encoding.
func decompressReader(encoding string, body io.Reader) (io.ReadCloser, error) {
	switch encoding {
	case "":
		return io.NopCloser(body), nil
	case "zstd":
		zr, err := zstd.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		return zr.IOReadCloser(), nil
	case "gzip":
		gr, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		return gr, nil
	case "lz4":
		return io.NopCloser(lz4.NewReader(body)), nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", encoding)
	}
}

// compressBody compresses a request payload, returning the encoded bytes
// and the Content-Encoding value to send.
func compressBody(c Compression, payload []byte) ([]byte, string, error) {
	switch c {
	case CompressionNone:
		return payload, "", nil
	case CompressionZstd:
		var buf bytes.Buffer
		zw, err := zstd.NewWriter(&buf)
		if err != nil {
			return nil, "", fmt.Errorf("zstd writer: %w", err)
		}
		if _, err := zw.Write(payload); err != nil {
			return nil, "", err
		}
		if err := zw.Close(); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "zstd", nil
	case CompressionGzip:
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(payload); err != nil {
			return nil, "", err
		}
		if err := gw.Close(); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "gzip", nil
	case CompressionLZ4:
		var buf bytes.Buffer
		lw := lz4.NewWriter(&buf)
		if _, err := lw.Write(payload); err != nil {
			return nil, "", err
		}
		if err := lw.Close(); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "lz4", nil
	default:
		return nil, "", fmt.Errorf("unsupported compression %q", c)
	}
}
