package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/embedded"

	"github.com/yeuyeduyin/DataFX/provider/oteladapters"
)

func Test_NewSlogLogger_Construction(t *testing.T) {
	logger := oteladapters.NewSlogLogger("test-logger")
	assert.NotNil(t, logger)
}

func Test_SlogLogger_ForwardsLevelsAndAttributes(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	logger := oteladapters.NewSlogLoggerWithHandler(handler)

	logger.Debug("debug message", "key", "debug-value")
	logger.Info("info message", "key", "info-value")
	logger.Warn("warn message", "key", "warn-value")
	logger.Error("error message", "key", "error-value")

	output := buf.String()

	assert.Contains(t, output, "level=DEBUG")
	assert.Contains(t, output, `msg="debug message"`)
	assert.Contains(t, output, "key=debug-value")

	assert.Contains(t, output, "level=INFO")
	assert.Contains(t, output, "level=WARN")
	assert.Contains(t, output, "level=ERROR")
	assert.Contains(t, output, `msg="error message"`)
}

func Test_SlogLogger_RespectsHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	logger := oteladapters.NewSlogLoggerWithHandler(handler)

	logger.Debug("filtered out")
	logger.Info("let through")

	output := buf.String()

	assert.NotContains(t, output, "filtered out")
	assert.Contains(t, output, "let through")
}

// recordingOTelLogger captures emitted OpenTelemetry log records.
type recordingOTelLogger struct {
	embedded.Logger

	records []log.Record
}

func (l *recordingOTelLogger) Emit(_ context.Context, record log.Record) {
	l.records = append(l.records, record)
}

func (l *recordingOTelLogger) Enabled(context.Context, log.EnabledParameters) bool {
	return true
}

func Test_OTelLogger_EmitsRecordsWithSeverity(t *testing.T) {
	backend := &recordingOTelLogger{}
	logger := oteladapters.NewOTelLogger(backend)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	require.Len(t, backend.records, 4)
	assert.Equal(t, log.SeverityDebug, backend.records[0].Severity())
	assert.Equal(t, log.SeverityInfo, backend.records[1].Severity())
	assert.Equal(t, log.SeverityWarn, backend.records[2].Severity())
	assert.Equal(t, log.SeverityError, backend.records[3].Severity())

	assert.Equal(t, "info message", backend.records[1].Body().AsString())
}

func Test_OTelLogger_ConvertsKeyValuePairsToAttributes(t *testing.T) {
	backend := &recordingOTelLogger{}
	logger := oteladapters.NewOTelLogger(backend)

	logger.Info("with attributes", "item_count", 3, "outcome", "succeeded")

	require.Len(t, backend.records, 1)

	attrs := map[string]string{}
	backend.records[0].WalkAttributes(func(kv log.KeyValue) bool {
		attrs[kv.Key] = kv.Value.AsString()
		return true
	})

	assert.Equal(t, "3", attrs["item_count"])
	assert.Equal(t, "succeeded", attrs["outcome"])
}

func Test_OTelLogger_IgnoresDanglingKey(t *testing.T) {
	backend := &recordingOTelLogger{}
	logger := oteladapters.NewOTelLogger(backend)

	logger.Info("odd args", "only-a-key")

	require.Len(t, backend.records, 1)

	count := 0
	backend.records[0].WalkAttributes(func(log.KeyValue) bool {
		count++
		return true
	})

	assert.Equal(t, 0, count)
}
