package provider

import (
	"context"
)

// Sink persists one item when invoked. The returned result is opaque to this
// library and discarded by the engine; only the error is acted upon.
type Sink interface {
	Invoke(ctx context.Context) (any, error)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context) (any, error)

// Invoke implements the Sink interface.
func (f SinkFunc) Invoke(ctx context.Context) (any, error) {
	return f(ctx)
}

// WriteBackHandler creates a Sink that persists one item. The engine
// consults it in two places: when an observable field of a published item is
// invalidated, and when an externally added entry must be pushed to the
// data source. Both times the sink receives the whole item, never a single
// field value.
type WriteBackHandler[T any] interface {
	CreateSink(item T) Sink
}

// WriteBackFunc adapts a function to the WriteBackHandler interface.
type WriteBackFunc[T any] func(item T) Sink

// CreateSink implements the WriteBackHandler interface.
func (f WriteBackFunc[T]) CreateSink(item T) Sink {
	return f(item)
}
