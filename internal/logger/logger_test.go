package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogger(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	original := Logger
	t.Cleanup(func() { Logger = original })

	Logger = slog.New(&StructuredJSONHandler{
		writer:      &buf,
		mu:          &sync.Mutex{},
		level:       level,
		timeFormat:  time.RFC3339,
		serviceName: "test-service",
		environment: "test",
	})
	return &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []StructuredLogEntry {
	t.Helper()
	var entries []StructuredLogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry StructuredLogEntry
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line: %s", line)
		entries = append(entries, entry)
	}
	return entries
}

func TestStructuredJSONHandler_BasicFields(t *testing.T) {
	buf := captureLogger(t, LevelDebug)

	Info(context.Background(), "Test message", "key", "value")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "Test message", entries[0].Message)
	assert.Equal(t, "INFO", entries[0].Level)
	assert.Equal(t, "test-service", entries[0].Service)
	assert.Equal(t, "test", entries[0].Environment)
	assert.Equal(t, "value", entries[0].Attributes["key"])
}

func TestStructuredJSONHandler_ContextValues(t *testing.T) {
	buf := captureLogger(t, LevelDebug)

	ctx := WithRequestID(context.Background(), "req-123")
	ctx = WithCorrelationID(ctx, "corr-456")
	ctx = WithComponent(ctx, ComponentNames.Handler)
	ctx = WithStage(ctx, LogStages.Resolution)

	Info(ctx, "Alias resolved", "alias", "gpt-demo")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "Handler", entries[0].Component)
	assert.Equal(t, "Resolution", entries[0].Stage)
	assert.Equal(t, "req-123", entries[0].Request["request_id"])
	assert.Equal(t, "corr-456", entries[0].Request["correlation_id"])
	assert.Equal(t, "gpt-demo", entries[0].Attributes["alias"])
}

func TestStructuredJSONHandler_ErrorSection(t *testing.T) {
	buf := captureLogger(t, LevelDebug)

	Error(context.Background(), "Upstream call failed", errors.New("boom"), "alias", "gpt-demo")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "ERROR", entries[0].Level)
	assert.Equal(t, "boom", entries[0].Error["message"])
	assert.Equal(t, "*errors.errorString", entries[0].Error["type"])
}

func TestStructuredJSONHandler_PrefixRouting(t *testing.T) {
	buf := captureLogger(t, LevelDebug)

	Info(context.Background(), "Request completed",
		"request_method", "POST",
		"response_status_code", 200,
		"response", map[string]interface{}{"duration_ms": 12},
	)

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "POST", entries[0].Request["method"])
	assert.EqualValues(t, 200, entries[0].Response["status_code"])
	assert.EqualValues(t, 12, entries[0].Response["duration_ms"])
	assert.Nil(t, entries[0].Attributes)
}

func TestStructuredJSONHandler_LevelFiltering(t *testing.T) {
	buf := captureLogger(t, LevelWarn)

	Debug(context.Background(), "hidden")
	Info(context.Background(), "hidden too")
	Warn(context.Background(), "visible")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "visible", entries[0].Message)
}

func TestStructuredJSONHandler_WithAttrs(t *testing.T) {
	buf := captureLogger(t, LevelDebug)

	Logger.With("alias", "claude").Info("bound")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "claude", entries[0].Attributes["alias"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"Warn", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"nonsense", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
	assert.Equal(t, "abc", RequestIDFromContext(WithRequestID(context.Background(), "abc")))
}
