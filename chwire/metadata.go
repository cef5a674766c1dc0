// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

// Wire format names.
const (
	FormatRowBinary                  = "RowBinary"
	FormatRowBinaryWithNamesAndTypes = "RowBinaryWithNamesAndTypes"
)

// HTTP header and parameter names of the ClickHouse interface.
const (
	headerUser          = "X-ClickHouse-User"
	headerKey           = "X-ClickHouse-Key"
	headerFormat        = "X-ClickHouse-Format"
	headerQueryID       = "X-ClickHouse-Query-Id"
	headerExceptionCode = "X-ClickHouse-Exception-Code"
	headerSummary       = "X-ClickHouse-Summary"

	paramDatabase = "database"
	paramQueryID  = "query_id"
)
