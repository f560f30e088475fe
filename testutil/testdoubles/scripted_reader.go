package testdoubles

import (
	"context"
	"errors"
)

// ErrScriptedFailure is returned by FailingReader once its failure point is reached.
var ErrScriptedFailure = errors.New("scripted reader failure")

// GateReader yields one item per Release call, letting tests control the
// pace of a retrieval precisely. Next blocks until either Release is called,
// all items are released, or the context is cancelled.
type GateReader[T any] struct {
	items   []T
	gate    chan struct{}
	pos     int
	current T
	hasItem bool
}

// NewGateReader creates a GateReader over the given items.
func NewGateReader[T any](items []T) *GateReader[T] {
	return &GateReader[T]{
		items: items,
		gate:  make(chan struct{}, len(items)),
		pos:   -1,
	}
}

// Release allows one further Next call to proceed.
func (r *GateReader[T]) Release() {
	r.gate <- struct{}{}
}

// ReleaseAll allows all remaining Next calls to proceed.
func (r *GateReader[T]) ReleaseAll() {
	for i := r.pos + 1; i < len(r.items); i++ {
		r.gate <- struct{}{}
	}
}

// Next implements the provider.DataReader interface.
func (r *GateReader[T]) Next(ctx context.Context) (bool, error) {
	if r.pos+1 >= len(r.items) {
		r.hasItem = false

		return false, nil
	}

	select {
	case <-ctx.Done():
		r.hasItem = false

		return false, ctx.Err()
	case <-r.gate:
		r.pos++
		r.current = r.items[r.pos]
		r.hasItem = true

		return true, nil
	}
}

// Get implements the provider.DataReader interface.
func (r *GateReader[T]) Get() (T, error) {
	if !r.hasItem {
		var zero T

		return zero, errors.New("no current item")
	}

	return r.current, nil
}

// FailingReader yields the first failAfter items and then fails with
// ErrScriptedFailure on the following Next call.
type FailingReader[T any] struct {
	items     []T
	failAfter int
	pos       int
	current   T
	hasItem   bool
}

// NewFailingReader creates a FailingReader that fails after failAfter items.
func NewFailingReader[T any](items []T, failAfter int) *FailingReader[T] {
	return &FailingReader[T]{
		items:     items,
		failAfter: failAfter,
		pos:       -1,
	}
}

// Next implements the provider.DataReader interface.
func (r *FailingReader[T]) Next(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		r.hasItem = false

		return false, err
	}

	if r.pos+1 >= r.failAfter {
		r.hasItem = false

		return false, ErrScriptedFailure
	}

	if r.pos+1 >= len(r.items) {
		r.hasItem = false

		return false, nil
	}

	r.pos++
	r.current = r.items[r.pos]
	r.hasItem = true

	return true, nil
}

// Get implements the provider.DataReader interface.
func (r *FailingReader[T]) Get() (T, error) {
	if !r.hasItem {
		var zero T

		return zero, errors.New("no current item")
	}

	return r.current, nil
}
