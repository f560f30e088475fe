package testdoubles

import (
	"context"
	"sync"

	"github.com/yeuyeduyin/DataFX/provider"
)

// RecordingHandler is a provider.WriteBackHandler that records every invoked
// item instead of persisting it. It is safe for concurrent use.
type RecordingHandler[T any] struct {
	mu    sync.Mutex
	items []T
	err   error
}

// NewRecordingHandler creates a new RecordingHandler instance.
func NewRecordingHandler[T any]() *RecordingHandler[T] {
	return &RecordingHandler[T]{}
}

// FailWith makes every subsequent sink invocation return err.
func (h *RecordingHandler[T]) FailWith(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.err = err
}

// CreateSink implements the provider.WriteBackHandler interface.
// The item is recorded when the sink is invoked, not when it is created.
func (h *RecordingHandler[T]) CreateSink(item T) provider.Sink {
	return provider.SinkFunc(func(_ context.Context) (any, error) {
		h.mu.Lock()
		defer h.mu.Unlock()

		if h.err != nil {
			return nil, h.err
		}

		h.items = append(h.items, item)

		return len(h.items), nil
	})
}

// Invocations returns a copy of the recorded items in invocation order.
func (h *RecordingHandler[T]) Invocations() []T {
	h.mu.Lock()
	defer h.mu.Unlock()

	items := make([]T, len(h.items))
	copy(items, h.items)

	return items
}

// Count returns the number of recorded invocations.
func (h *RecordingHandler[T]) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.items)
}
