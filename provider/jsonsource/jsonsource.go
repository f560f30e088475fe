// Package jsonsource provides a streaming JSON data source for the provider
// engine.
//
// Reader decodes values of T incrementally from an io.Reader, one value per
// advance, without materializing the whole input. Two layouts are supported:
// a single top-level JSON array, and a stream of concatenated or
// newline-delimited values.
package jsonsource

import (
	"context"
	"errors"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var ErrDecodingFailed = errors.New("decoding json input failed")
var ErrNoCurrentValue = errors.New("no current value, Next was not called or reported exhaustion")

const bufferSize = 4096

type layout int

const (
	layoutArray layout = iota
	layoutStream
)

// Reader is a provider.DataReader decoding values of T from a JSON input stream.
type Reader[T any] struct {
	iter       *jsoniter.Iterator
	layout     layout
	current    T
	hasCurrent bool
}

// NewArrayReader creates a Reader over a single top-level JSON array of T values.
func NewArrayReader[T any](r io.Reader) *Reader[T] {
	return &Reader[T]{
		iter:   jsoniter.Parse(jsoniter.ConfigFastest, r, bufferSize),
		layout: layoutArray,
	}
}

// NewStreamReader creates a Reader over a stream of concatenated or
// newline-delimited JSON values of T.
func NewStreamReader[T any](r io.Reader) *Reader[T] {
	return &Reader[T]{
		iter:   jsoniter.Parse(jsoniter.ConfigFastest, r, bufferSize),
		layout: layoutStream,
	}
}

// Next implements the provider.DataReader interface.
func (r *Reader[T]) Next(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	more, err := r.advance()
	if err != nil {
		r.hasCurrent = false
		return false, errors.Join(ErrDecodingFailed, err)
	}

	if !more {
		r.hasCurrent = false
		return false, nil
	}

	var item T
	r.iter.ReadVal(&item)

	if decodeErr := r.iter.Error; decodeErr != nil && decodeErr != io.EOF {
		r.hasCurrent = false
		return false, errors.Join(ErrDecodingFailed, decodeErr)
	}

	r.current = item
	r.hasCurrent = true

	return true, nil
}

// advance positions the iterator on the next value, honoring the layout.
func (r *Reader[T]) advance() (bool, error) {
	switch r.layout {
	case layoutArray:
		more := r.iter.ReadArray()
		if err := r.iter.Error; err != nil && err != io.EOF {
			return false, err
		}

		return more, nil

	default:
		if r.iter.WhatIsNext() == jsoniter.InvalidValue {
			if err := r.iter.Error; err != nil && err != io.EOF {
				return false, err
			}

			return false, nil // clean end of stream
		}

		return true, nil
	}
}

// Get implements the provider.DataReader interface.
func (r *Reader[T]) Get() (T, error) {
	if !r.hasCurrent {
		var zero T
		return zero, ErrNoCurrentValue
	}

	return r.current, nil
}
