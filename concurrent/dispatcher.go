package concurrent

import (
	"context"
	"errors"
	"sync"
)

// ErrDispatcherClosed is returned when work is submitted to a closed Dispatcher.
var ErrDispatcherClosed = errors.New("dispatcher is closed")

const defaultQueueSize = 64

// Dispatcher is a single-goroutine serial execution context. All work
// submitted through Execute or Invoke runs on one goroutine, in submission
// order. Code that shares an observable.List across goroutines routes every
// mutation and every listener through the list's dispatcher.
type Dispatcher struct {
	tasks     chan func()
	closing   chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewDispatcher creates a Dispatcher and starts its goroutine.
// The caller is responsible for calling Close when done with it.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		tasks:   make(chan func(), defaultQueueSize),
		closing: make(chan struct{}),
		done:    make(chan struct{}),
	}

	go d.loop()

	return d
}

func (d *Dispatcher) loop() {
	defer close(d.done)

	for {
		select {
		case <-d.closing:
			return
		case fn := <-d.tasks:
			fn()
		}
	}
}

// Execute enqueues fn without waiting for it to run.
// Work submitted after Close is dropped.
func (d *Dispatcher) Execute(fn func()) {
	select {
	case <-d.closing:
	case d.tasks <- fn:
	}
}

// Invoke runs fn on the dispatcher goroutine and waits for it to finish.
// It returns ErrDispatcherClosed when the dispatcher was closed before fn
// could run, or the context error when ctx is done before fn was enqueued.
//
// Invoke must not be called from the dispatcher goroutine itself.
func (d *Dispatcher) Invoke(ctx context.Context, fn func()) error {
	ran := make(chan struct{})

	wrapped := func() {
		fn()
		close(ran)
	}

	select {
	case <-d.closing:
		return ErrDispatcherClosed
	case <-ctx.Done():
		return ctx.Err()
	case d.tasks <- wrapped:
	}

	select {
	case <-ran:
		return nil
	case <-d.done:
		// the dispatcher may have run fn and closed in the same instant
		select {
		case <-ran:
			return nil
		default:
			return ErrDispatcherClosed
		}
	}
}

// Close stops the dispatcher after the currently running task completes and
// waits for the goroutine to exit. Close is idempotent.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.closing)
	})

	<-d.done
}
