// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import (
	"fmt"
	"net/netip"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewRecord converts a decoded response into an Arrow record. Scalar,
// string, temporal, and textual columns are supported; composite columns
// return an error. The caller releases the record.
func NewRecord(resp *Response) (arrow.Record, error) {
	fields := make([]arrow.Field, len(resp.Codecs))
	for i, c := range resp.Codecs {
		dt, err := arrowType(c)
		if err != nil {
			return nil, err
		}
		fields[i] = arrow.Field{Name: resp.Names[i], Type: dt, Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)
	mem := memory.NewGoAllocator()
	builder := array.NewRecordBuilder(mem, schema)
	defer builder.Release()

	for _, row := range resp.Rows {
		for i, v := range row {
			if err := appendArrowValue(builder.Field(i), v); err != nil {
				return nil, fmt.Errorf("column %q: %w", resp.Names[i], err)
			}
		}
	}
	return builder.NewRecord(), nil
}

// arrowType maps a codec to the Arrow type its values convert to.
func arrowType(c Codec) (arrow.DataType, error) {
	switch x := c.(type) {
	case *intCodec:
		switch x.size {
		case 1:
			return arrow.PrimitiveTypes.Int8, nil
		case 2:
			return arrow.PrimitiveTypes.Int16, nil
		case 4:
			return arrow.PrimitiveTypes.Int32, nil
		default:
			return arrow.PrimitiveTypes.Int64, nil
		}
	case *uintCodec:
		switch x.size {
		case 1:
			return arrow.PrimitiveTypes.Uint8, nil
		case 2:
			return arrow.PrimitiveTypes.Uint16, nil
		case 4:
			return arrow.PrimitiveTypes.Uint32, nil
		default:
			return arrow.PrimitiveTypes.Uint64, nil
		}
	case *floatCodec:
		if x.size == 4 {
			return arrow.PrimitiveTypes.Float32, nil
		}
		return arrow.PrimitiveTypes.Float64, nil
	case *boolCodec:
		return arrow.FixedWidthTypes.Boolean, nil
	case *stringCodec, *enumCodec, *uuidCodec, *ipv4Codec, *ipv6Codec, *decimalCodec:
		return arrow.BinaryTypes.String, nil
	case *fixedStringCodec:
		return arrow.BinaryTypes.Binary, nil
	case *dateCodec, *date32Codec:
		return arrow.FixedWidthTypes.Date32, nil
	case *dateTimeCodec, *dateTime64Codec:
		return arrow.FixedWidthTypes.Timestamp_us, nil
	case *nullableCodec:
		return arrowType(x.inner)
	case *lowCardCodec:
		return arrowType(x.inner)
	}
	return nil, fmt.Errorf("column type %s has no Arrow mapping", c.Name())
}

func appendArrowValue(b array.Builder, v any) error {
	if v == nil {
		b.AppendNull()
		return nil
	}
	switch bb := b.(type) {
	case *array.Int8Builder:
		bb.Append(v.(int8))
	case *array.Int16Builder:
		bb.Append(v.(int16))
	case *array.Int32Builder:
		bb.Append(v.(int32))
	case *array.Int64Builder:
		bb.Append(v.(int64))
	case *array.Uint8Builder:
		bb.Append(v.(uint8))
	case *array.Uint16Builder:
		bb.Append(v.(uint16))
	case *array.Uint32Builder:
		bb.Append(v.(uint32))
	case *array.Uint64Builder:
		bb.Append(v.(uint64))
	case *array.Float32Builder:
		bb.Append(v.(float32))
	case *array.Float64Builder:
		bb.Append(v.(float64))
	case *array.BooleanBuilder:
		bb.Append(v.(bool))
	case *array.StringBuilder:
		bb.Append(stringify(v))
	case *array.BinaryBuilder:
		bb.Append(v.([]byte))
	case *array.Date32Builder:
		t := v.(time.Time)
		bb.Append(arrow.Date32(t.Unix() / secondsPerDay))
	case *array.TimestampBuilder:
		t := v.(time.Time)
		bb.Append(arrow.Timestamp(t.UnixMicro()))
	default:
		return fmt.Errorf("unsupported Arrow builder %T", b)
	}
	return nil
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case uuid.UUID:
		return x.String()
	case netip.Addr:
		return x.String()
	case decimal.Decimal:
		return x.String()
	}
	return fmt.Sprint(v)
}

// RecordRows converts an Arrow record into column names, ClickHouse type
// names, and row values ready for Insert.
func RecordRows(rec arrow.Record) ([]string, []string, [][]any, error) {
	schema := rec.Schema()
	names := make([]string, schema.NumFields())
	typeNames := make([]string, schema.NumFields())
	for i := 0; i < schema.NumFields(); i++ {
		f := schema.Field(i)
		names[i] = f.Name
		tn, err := columnTypeName(f.Type)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("column %q: %w", f.Name, err)
		}
		typeNames[i] = tn
	}
	numRows := int(rec.NumRows())
	rows := make([][]any, numRows)
	for r := range rows {
		rows[r] = make([]any, len(names))
	}
	for col := 0; col < int(rec.NumCols()); col++ {
		arr := rec.Column(col)
		for r := 0; r < numRows; r++ {
			if arr.IsNull(r) {
				rows[r][col] = nil
				continue
			}
			v, err := arrowValue(arr, r)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("column %q: %w", names[col], err)
			}
			rows[r][col] = v
		}
	}
	return names, typeNames, rows, nil
}

func columnTypeName(dt arrow.DataType) (string, error) {
	switch dt.ID() {
	case arrow.INT8:
		return "Int8", nil
	case arrow.INT16:
		return "Int16", nil
	case arrow.INT32:
		return "Int32", nil
	case arrow.INT64:
		return "Int64", nil
	case arrow.UINT8:
		return "UInt8", nil
	case arrow.UINT16:
		return "UInt16", nil
	case arrow.UINT32:
		return "UInt32", nil
	case arrow.UINT64:
		return "UInt64", nil
	case arrow.FLOAT32:
		return "Float32", nil
	case arrow.FLOAT64:
		return "Float64", nil
	case arrow.BOOL:
		return "Bool", nil
	case arrow.STRING:
		return "String", nil
	case arrow.BINARY:
		return "String", nil
	case arrow.DATE32:
		return "Date32", nil
	case arrow.TIMESTAMP:
		return "DateTime64(6)", nil
	}
	return "", fmt.Errorf("no ClickHouse mapping for Arrow type %s", dt)
}

func arrowValue(arr arrow.Array, i int) (any, error) {
	switch a := arr.(type) {
	case *array.Int8:
		return a.Value(i), nil
	case *array.Int16:
		return a.Value(i), nil
	case *array.Int32:
		return a.Value(i), nil
	case *array.Int64:
		return a.Value(i), nil
	case *array.Uint8:
		return a.Value(i), nil
	case *array.Uint16:
		return a.Value(i), nil
	case *array.Uint32:
		return a.Value(i), nil
	case *array.Uint64:
		return a.Value(i), nil
	case *array.Float32:
		return a.Value(i), nil
	case *array.Float64:
		return a.Value(i), nil
	case *array.Boolean:
		return a.Value(i), nil
	case *array.String:
		return a.Value(i), nil
	case *array.Binary:
		return a.Value(i), nil
	case *array.Date32:
		return time.Unix(int64(a.Value(i))*secondsPerDay, 0).UTC(), nil
	case *array.Timestamp:
		return time.UnixMicro(int64(a.Value(i))).UTC(), nil
	}
	return nil, fmt.Errorf("unsupported Arrow array %T", arr)
}
