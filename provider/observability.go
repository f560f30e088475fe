package provider

import (
	"time"
)

// Logger interface for retrieval progress, wiring warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector interface for collecting retrieval performance and
// operational metrics. Implementations can bridge to any metrics backend;
// the oteladapters subpackage provides an OpenTelemetry implementation.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}
