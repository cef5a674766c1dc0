// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import "context"

// Operation names reported to query hooks.
const (
	OpPing    = "ping"
	OpCommand = "command"
	OpQuery   = "query"
	OpInsert  = "insert"
)

// QueryInfo describes one client operation for hook callbacks.
type QueryInfo struct {
	// Operation is one of the Op* constants.
	Operation string
	// Query is the SQL text, empty for ping.
	Query string
	// Database is the effective database, if set on the client.
	Database string
	// Format is the wire format in use, empty for ping and commands.
	Format string
}

// QueryStatistics accumulates counters for one operation. Fields are
// filled as far as the operation progressed before completion or failure.
type QueryStatistics struct {
	// RowsRead is the number of rows decoded from the response.
	RowsRead int64
	// BytesRead is the size of the response body after decompression.
	BytesRead int64
	// RowsWritten is the number of rows encoded for an insert.
	RowsWritten int64
	// BytesWritten is the size of the request body before compression.
	BytesWritten int64
}

// QueryHook observes client operations. OnQueryStart may return a
// replacement context (to carry a span) and an opaque token that is
// handed back to OnQueryEnd. Implementations must be safe for
// concurrent use.
type QueryHook interface {
	OnQueryStart(ctx context.Context, info QueryInfo) (context.Context, any)
	OnQueryEnd(ctx context.Context, token any, info QueryInfo, stats *QueryStatistics, err error)
}

// multiHook fans out to several hooks in registration order. End
// callbacks run in reverse order, innermost first.
type multiHook []QueryHook

func (m multiHook) OnQueryStart(ctx context.Context, info QueryInfo) (context.Context, any) {
	tokens := make([]any, len(m))
	for i, h := range m {
		ctx, tokens[i] = h.OnQueryStart(ctx, info)
	}
	return ctx, tokens
}

func (m multiHook) OnQueryEnd(ctx context.Context, token any, info QueryInfo, stats *QueryStatistics, err error) {
	tokens, _ := token.([]any)
	for i := len(m) - 1; i >= 0; i-- {
		var t any
		if i < len(tokens) {
			t = tokens[i]
		}
		m[i].OnQueryEnd(ctx, t, info, stats, err)
	}
}
