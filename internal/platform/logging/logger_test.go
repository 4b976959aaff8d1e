package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
)

func TestLoggerWritesKeyValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Output: zapcore.AddSync(&buf), Name: "importer"})

	logger.With("run_id", "r1").Warn("fetch failed", "url", "u1", "error", errors.New("boom"), "dangling")
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, `"msg":"fetch failed"`)
	assert.Contains(t, out, `"run_id":"r1"`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"dangling":null`)
	assert.Contains(t, out, `"logger":"importer"`)
	assert.NotContains(t, out, "hidden")
}

func TestLoggerAddsTraceIDs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Output: zapcore.AddSync(&buf)})

	traceID, err := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("0102030405060708")
	require.NoError(t, err)
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	logger.InfoContext(ctx, "with trace")
	assert.Contains(t, buf.String(), `"trace_id":"0102030405060708090a0b0c0d0e0f10"`)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, LevelDebug, ParseLevel(" DEBUG "))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("nope"))
}

func TestNilLoggerFallsBack(t *testing.T) {
	t.Parallel()

	var logger *Logger
	assert.NotPanics(t, func() { logger.Info("ok") })
}
