// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

// Package chwotel provides OpenTelemetry instrumentation for chwire
// clients. It implements the [chwire.QueryHook] interface to add
// distributed tracing and metrics to client operations.
//
// Usage:
//
//	client, err := chwire.NewClient(endpoint,
//		chwire.WithQueryHook(chwotel.NewHook(chwotel.DefaultConfig())))
package chwotel

import (
	"context"
	"fmt"
	"time"

	"github.com/Query-farm/chwire/chwire"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "chwire"

// Config configures OpenTelemetry instrumentation for a chwire client.
type Config struct {
	// TracerProvider supplies the tracer. Defaults to otel.GetTracerProvider().
	TracerProvider trace.TracerProvider
	// MeterProvider supplies the meter. Defaults to otel.GetMeterProvider().
	MeterProvider metric.MeterProvider
	// EnableTracing enables span creation. Default true.
	EnableTracing bool
	// EnableMetrics enables counter and histogram recording. Default true.
	EnableMetrics bool
	// RecordExceptions calls RecordError on the span for failed operations.
	// Default true.
	RecordExceptions bool
	// ServerAddress is the db.server.address attribute value, if set.
	ServerAddress string
	// CustomAttributes are added to every span.
	CustomAttributes []attribute.KeyValue
}

// DefaultConfig returns a Config with sensible defaults. TracerProvider
// and MeterProvider are resolved from the global OTel SDK when the hook
// is built.
func DefaultConfig() Config {
	return Config{
		EnableTracing:    true,
		EnableMetrics:    true,
		RecordExceptions: true,
	}
}

// NewHook builds a query hook recording OpenTelemetry spans and metrics.
// Install it with [chwire.WithQueryHook].
func NewHook(cfg Config) chwire.QueryHook {
	if cfg.TracerProvider == nil {
		cfg.TracerProvider = otel.GetTracerProvider()
	}
	if cfg.MeterProvider == nil {
		cfg.MeterProvider = otel.GetMeterProvider()
	}

	hook := &otelHook{
		cfg:    cfg,
		tracer: cfg.TracerProvider.Tracer(instrumentationName),
	}

	if cfg.EnableMetrics {
		meter := cfg.MeterProvider.Meter(instrumentationName)
		hook.requestCounter, _ = meter.Int64Counter("db.client.operations",
			metric.WithUnit("{operation}"),
			metric.WithDescription("Number of client operations"),
		)
		hook.durationHistogram, _ = meter.Float64Histogram("db.client.operation.duration",
			metric.WithUnit("s"),
			metric.WithDescription("Duration of client operations"),
		)
	}
	return hook
}

// otelHook implements chwire.QueryHook with OpenTelemetry tracing and metrics.
type otelHook struct {
	cfg               Config
	tracer            trace.Tracer
	requestCounter    metric.Int64Counter
	durationHistogram metric.Float64Histogram
}

// spanToken is the token returned by OnQueryStart.
type spanToken struct {
	span      trace.Span
	startTime time.Time
}

// OnQueryStart starts a client span for the operation.
func (h *otelHook) OnQueryStart(ctx context.Context, info chwire.QueryInfo) (context.Context, any) {
	if !h.cfg.EnableTracing {
		return ctx, &spanToken{startTime: time.Now()}
	}

	attrs := []attribute.KeyValue{
		attribute.String("db.system.name", "clickhouse"),
		attribute.String("db.operation.name", info.Operation),
	}
	if info.Database != "" {
		attrs = append(attrs, attribute.String("db.namespace", info.Database))
	}
	if info.Query != "" {
		attrs = append(attrs, attribute.String("db.query.text", info.Query))
	}
	if h.cfg.ServerAddress != "" {
		attrs = append(attrs, attribute.String("server.address", h.cfg.ServerAddress))
	}
	attrs = append(attrs, h.cfg.CustomAttributes...)

	ctx, span := h.tracer.Start(ctx, "clickhouse/"+info.Operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
	return ctx, &spanToken{span: span, startTime: time.Now()}
}

// OnQueryEnd records span attributes, metrics, and ends the span.
func (h *otelHook) OnQueryEnd(ctx context.Context, token any, info chwire.QueryInfo, stats *chwire.QueryStatistics, err error) {
	st, ok := token.(*spanToken)
	if !ok {
		return
	}

	duration := time.Since(st.startTime)

	status := "ok"
	if err != nil {
		status = "error"
	}

	if h.cfg.EnableMetrics {
		metricAttrs := metric.WithAttributes(
			attribute.String("db.system.name", "clickhouse"),
			attribute.String("db.operation.name", info.Operation),
			attribute.String("status", status),
		)
		if h.requestCounter != nil {
			h.requestCounter.Add(ctx, 1, metricAttrs)
		}
		if h.durationHistogram != nil {
			h.durationHistogram.Record(ctx, duration.Seconds(), metricAttrs)
		}
	}

	if st.span != nil && st.span.IsRecording() {
		if stats != nil {
			st.span.SetAttributes(
				attribute.Int64("db.clickhouse.rows_read", stats.RowsRead),
				attribute.Int64("db.clickhouse.bytes_read", stats.BytesRead),
				attribute.Int64("db.clickhouse.rows_written", stats.RowsWritten),
				attribute.Int64("db.clickhouse.bytes_written", stats.BytesWritten),
			)
		}

		if err != nil {
			st.span.SetStatus(codes.Error, err.Error())
			if h.cfg.RecordExceptions {
				st.span.RecordError(err)
			}
			errType := fmt.Sprintf("%T", err)
			if wireErr, ok := err.(*chwire.WireError); ok {
				errType = string(wireErr.Kind)
			}
			st.span.SetAttributes(attribute.String("error.type", errType))
		} else {
			st.span.SetStatus(codes.Ok, "")
		}

		st.span.End()
	}
}
