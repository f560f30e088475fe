package provider

import (
	"context"
)

// DataReader is a pull-based cursor over values of type T, yielding one item
// at a time and signalling exhaustion.
//
// A DataReader is drained by a single goroutine; implementations do not need
// to be safe for concurrent use.
type DataReader[T any] interface {
	// Next advances the cursor. It returns false when the source is
	// exhausted, and an error when advancing failed. Next may block on I/O
	// and must honor cancellation of ctx.
	Next(ctx context.Context) (bool, error)

	// Get returns the item at the current cursor position. It fails when
	// called before the first Next or after Next reported exhaustion.
	Get() (T, error)
}

// SliceReader is a DataReader over a fixed slice, useful for fixtures and
// in-memory sources.
type SliceReader[T any] struct {
	items []T
	pos   int
}

// NewSliceReader creates a SliceReader yielding the given items in order.
func NewSliceReader[T any](items ...T) *SliceReader[T] {
	return &SliceReader[T]{items: items, pos: -1}
}

// Next implements the DataReader interface.
func (r *SliceReader[T]) Next(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if r.pos+1 >= len(r.items) {
		return false, nil
	}

	r.pos++

	return true, nil
}

// Get implements the DataReader interface.
func (r *SliceReader[T]) Get() (T, error) {
	if r.pos < 0 || r.pos >= len(r.items) {
		var zero T
		return zero, ErrNoCurrentItem
	}

	return r.items[r.pos], nil
}
