// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// Client talks to a ClickHouse server over the HTTP interface, moving
// query results and inserts as RowBinary. Construct with NewClient; the
// zero value is not usable.
type Client struct {
	endpoint    *url.URL
	httpClient  *http.Client
	username    string
	password    string
	database    string
	compression Compression
	settings    map[string]string
	hooks       multiHook
	logger      *slog.Logger
	registry    *Registry
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Timeouts and
// transport tuning belong there.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithAuth sets the credentials sent on every request.
func WithAuth(username, password string) Option {
	return func(c *Client) { c.username, c.password = username, password }
}

// WithDatabase sets the default database for queries.
func WithDatabase(database string) Option {
	return func(c *Client) { c.database = database }
}

// WithCompression selects request and response body compression.
func WithCompression(comp Compression) Option {
	return func(c *Client) { c.compression = comp }
}

// WithSettings adds ClickHouse settings sent as query parameters on
// every request.
func WithSettings(settings map[string]string) Option {
	return func(c *Client) {
		for k, v := range settings {
			c.settings[k] = v
		}
	}
}

// WithQueryHook registers a hook observing every operation. Hooks run in
// registration order.
func WithQueryHook(h QueryHook) Option {
	return func(c *Client) { c.hooks = append(c.hooks, h) }
}

// WithLogger sets the structured logger. The default discards nothing
// and writes through slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRegistry substitutes the codec registry, mostly for tests.
func WithRegistry(r *Registry) Option {
	return func(c *Client) { c.registry = r }
}

// NewClient builds a client for an endpoint such as
// "http://localhost:8123".
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported endpoint scheme %q", u.Scheme)
	}
	c := &Client{
		endpoint:   u,
		httpClient: http.DefaultClient,
		settings:   map[string]string{},
		logger:     slog.Default(),
		registry:   defaultRegistry,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Ping checks server liveness via the /ping endpoint.
func (c *Client) Ping(ctx context.Context) error {
	info := QueryInfo{Operation: OpPing, Database: c.database}
	ctx, token := c.hooks.OnQueryStart(ctx, info)
	stats := &QueryStatistics{}

	u := *c.endpoint
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ping"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err == nil {
		var resp *http.Response
		resp, err = c.httpClient.Do(req)
		if err == nil {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				err = newServerError(resp.StatusCode, resp.Header.Get(headerExceptionCode), body)
			}
		}
	}
	c.hooks.OnQueryEnd(ctx, token, info, stats, err)
	return err
}

// Command executes a statement that returns no result set (DDL, SET,
// and the like).
func (c *Client) Command(ctx context.Context, sql string) error {
	info := QueryInfo{Operation: OpCommand, Query: sql, Database: c.database}
	ctx, token := c.hooks.OnQueryStart(ctx, info)
	stats := &QueryStatistics{}
	body, err := c.post(ctx, sql, nil, stats)
	if body != nil {
		body.Close()
	}
	c.hooks.OnQueryEnd(ctx, token, info, stats, err)
	return err
}

// Query runs sql and decodes the complete result set. The FORMAT clause
// is appended automatically.
func (c *Client) Query(ctx context.Context, sql string) (*Response, error) {
	info := QueryInfo{Operation: OpQuery, Query: sql, Database: c.database, Format: FormatRowBinaryWithNamesAndTypes}
	ctx, token := c.hooks.OnQueryStart(ctx, info)
	stats := &QueryStatistics{}
	resp, err := c.runQuery(ctx, sql, stats)
	c.hooks.OnQueryEnd(ctx, token, info, stats, err)
	return resp, err
}

func (c *Client) runQuery(ctx context.Context, sql string, stats *QueryStatistics) (*Response, error) {
	body, err := c.post(ctx, formatQuery(sql), nil, stats)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	stats.BytesRead = int64(len(raw))
	resp, err := c.registry.DecodeResponse(raw)
	if err != nil {
		return nil, err
	}
	stats.RowsRead = int64(len(resp.Rows))
	c.logger.DebugContext(ctx, "query complete", "rows", len(resp.Rows), "columns", len(resp.Names))
	return resp, nil
}

// QueryStream runs sql and returns an incremental row reader. The caller
// must drain or abandon the stream before reusing the client's
// connection; closing happens implicitly at end of stream.
func (c *Client) QueryStream(ctx context.Context, sql string) (*RowStream, error) {
	info := QueryInfo{Operation: OpQuery, Query: sql, Database: c.database, Format: FormatRowBinaryWithNamesAndTypes}
	ctx, token := c.hooks.OnQueryStart(ctx, info)
	stats := &QueryStatistics{}
	body, err := c.post(ctx, formatQuery(sql), nil, stats)
	if err != nil {
		c.hooks.OnQueryEnd(ctx, token, info, stats, err)
		return nil, err
	}
	stream, err := newRowStream(&countingReader{r: body, n: &stats.BytesRead}, c.registry)
	if err != nil {
		body.Close()
	}
	c.hooks.OnQueryEnd(ctx, token, info, stats, err)
	return stream, err
}

// Insert encodes rows as RowBinary and posts them into table. Column
// names select the insert columns; typeNames drive the encoding.
func (c *Client) Insert(ctx context.Context, table string, names []string, typeNames []string, rows [][]any) error {
	info := QueryInfo{Operation: OpInsert, Query: "INSERT INTO " + table, Database: c.database, Format: FormatRowBinary}
	ctx, token := c.hooks.OnQueryStart(ctx, info)
	stats := &QueryStatistics{}
	err := c.runInsert(ctx, table, names, typeNames, rows, stats)
	c.hooks.OnQueryEnd(ctx, token, info, stats, err)
	return err
}

func (c *Client) runInsert(ctx context.Context, table string, names []string, typeNames []string, rows [][]any, stats *QueryStatistics) error {
	if len(names) != len(typeNames) {
		return errValue("", "%d column names for %d types", len(names), len(typeNames))
	}
	codecs := make([]Codec, len(typeNames))
	for i, tn := range typeNames {
		var err error
		codecs[i], err = c.registry.Resolve(tn)
		if err != nil {
			return err
		}
	}
	payload, err := EncodeRows(rows, codecs, nil)
	if err != nil {
		return err
	}
	stats.RowsWritten = int64(len(rows))
	stats.BytesWritten = int64(len(payload))

	sql := fmt.Sprintf("INSERT INTO %s (%s) FORMAT %s", table, strings.Join(names, ", "), FormatRowBinary)
	body, err := c.post(ctx, sql, payload, stats)
	if body != nil {
		body.Close()
	}
	if err == nil {
		c.logger.DebugContext(ctx, "insert complete", "table", table, "rows", len(rows), "bytes", len(payload))
	}
	return err
}

// post sends the query (and optional data payload) and returns the
// decompressed response body on success.
func (c *Client) post(ctx context.Context, sql string, payload []byte, stats *QueryStatistics) (io.ReadCloser, error) {
	u := *c.endpoint
	q := u.Query()
	if c.database != "" {
		q.Set(paramDatabase, c.database)
	}
	for k, v := range c.settings {
		q.Set(k, v)
	}

	var reqBody []byte
	contentEncoding := ""
	if payload != nil {
		// Data payloads ride in the body, so the query moves to the
		// URL. The payload is what gets compressed.
		q.Set("query", sql)
		var err error
		reqBody, contentEncoding, err = compressBody(c.compression, payload)
		if err != nil {
			return nil, err
		}
	} else {
		reqBody = []byte(sql)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.username != "" {
		req.Header.Set(headerUser, c.username)
		req.Header.Set(headerKey, c.password)
	}
	if contentEncoding != "" {
		req.Header.Set("Content-Encoding", contentEncoding)
	}
	if ae := acceptEncoding(c.compression); ae != "" {
		req.Header.Set("Accept-Encoding", ae)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, newServerError(resp.StatusCode, resp.Header.Get(headerExceptionCode), body)
	}
	decomp, err := decompressReader(resp.Header.Get("Content-Encoding"), resp.Body)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}
	return &bodyReader{inner: decomp, raw: resp.Body}, nil
}

func formatQuery(sql string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(sql), ";")
	if strings.Contains(strings.ToUpper(trimmed), " FORMAT ") {
		return trimmed
	}
	return trimmed + " FORMAT " + FormatRowBinaryWithNamesAndTypes
}

// bodyReader closes both the decompressor and the underlying response
// body.
type bodyReader struct {
	inner io.ReadCloser
	raw   io.Closer
}

func (b *bodyReader) Read(p []byte) (int, error) { return b.inner.Read(p) }

func (b *bodyReader) Close() error {
	err := b.inner.Close()
	if cerr := b.raw.Close(); err == nil {
		err = cerr
	}
	return err
}

// countingReader tallies decompressed bytes into n as they pass through.
type countingReader struct {
	r io.Reader
	n *int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	*c.n += int64(n)
	return n, err
}
