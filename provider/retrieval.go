package provider

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/yeuyeduyin/DataFX/observable"
)

// RetrievalState represents the lifecycle state of one retrieval.
type RetrievalState int

const (
	StatePending RetrievalState = iota
	StateRunning
	StateSucceeded
	StateFailed
	StateCancelled
)

// String returns the lowercase name of the state.
func (s RetrievalState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state is one of the three terminal states.
func (s RetrievalState) Terminal() bool {
	return s == StateSucceeded || s == StateFailed || s == StateCancelled
}

// Retrieval is the asynchronous handle for one Retrieve call. Exactly one
// Retrieval exists per call; handles are never reused.
//
// A Retrieval is an observable.Observable: invalidation listeners fire on
// every state transition, on the goroutine performing the transition.
// All methods are safe for concurrent use.
type Retrieval[T any] struct {
	id     uuid.UUID
	cancel context.CancelFunc
	done   chan struct{}

	mu        sync.Mutex
	state     RetrievalState
	cause     error
	result    *observable.List[T]
	listeners []*retrievalSub[T]
}

type retrievalSub[T any] struct {
	r       *Retrieval[T]
	fn      observable.InvalidationListener
	removed bool
}

func (s *retrievalSub[T]) Unsubscribe() {
	s.r.mu.Lock()
	s.removed = true
	s.r.mu.Unlock()
}

func newRetrieval[T any](cancel context.CancelFunc) *Retrieval[T] {
	return &Retrieval[T]{
		id:     uuid.New(),
		cancel: cancel,
		done:   make(chan struct{}),
		state:  StatePending,
	}
}

// ID returns the unique identifier of this retrieval.
func (r *Retrieval[T]) ID() uuid.UUID {
	return r.id
}

// State returns the current lifecycle state.
func (r *Retrieval[T]) State() RetrievalState {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state
}

// Err returns the failure cause once the retrieval has failed, and nil in
// every other state. Cancellation is not a failure and carries no cause.
func (r *Retrieval[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.cause
}

// Result returns the target list once the retrieval has succeeded.
// Before a terminal state it returns ErrRetrievalNotFinished; after a
// failure it returns the failure cause; after cancellation it returns
// ErrRetrievalCancelled.
func (r *Retrieval[T]) Result() (*observable.List[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case StateSucceeded:
		return r.result, nil
	case StateFailed:
		return nil, r.cause
	case StateCancelled:
		return nil, ErrRetrievalCancelled
	default:
		return nil, ErrRetrievalNotFinished
	}
}

// Done returns a channel that is closed when the retrieval reaches a
// terminal state.
func (r *Retrieval[T]) Done() <-chan struct{} {
	return r.done
}

// Await blocks until the retrieval reaches a terminal state or ctx is done.
// It returns the context error in the latter case; the terminal outcome is
// inspected through State, Err and Result.
func (r *Retrieval[T]) Await(ctx context.Context) error {
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Cancel requests cancellation. The publishing task checks the signal once
// per iteration and stops draining the reader without further appends; a
// retrieval whose task never started transitions to cancelled directly.
// Items already appended stay in the list and their field bindings stay
// attached.
func (r *Retrieval[T]) Cancel() {
	r.cancel()

	r.mu.Lock()
	if r.state != StatePending {
		r.mu.Unlock()
		return
	}

	r.state = StateCancelled
	close(r.done)
	listeners := r.snapshotListenersLocked()
	r.mu.Unlock()

	r.fire(listeners)
}

// AddListener implements the observable.Observable interface. A listener
// attached after the terminal transition is never fired.
func (r *Retrieval[T]) AddListener(fn observable.InvalidationListener) observable.Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub := &retrievalSub[T]{r: r, fn: fn}
	r.listeners = append(r.listeners, sub)

	return sub
}

// start transitions pending -> running. It reports false when the retrieval
// already reached a terminal state, most likely through Cancel.
func (r *Retrieval[T]) start() bool {
	r.mu.Lock()
	if r.state != StatePending {
		r.mu.Unlock()
		return false
	}

	r.state = StateRunning
	listeners := r.snapshotListenersLocked()
	r.mu.Unlock()

	r.fire(listeners)

	return true
}

func (r *Retrieval[T]) succeed(result *observable.List[T]) {
	r.finish(StateSucceeded, nil, result)
}

func (r *Retrieval[T]) fail(cause error) {
	r.finish(StateFailed, cause, nil)
}

func (r *Retrieval[T]) markCancelled() {
	r.finish(StateCancelled, nil, nil)
}

func (r *Retrieval[T]) finish(state RetrievalState, cause error, result *observable.List[T]) {
	r.mu.Lock()
	if r.state.Terminal() {
		r.mu.Unlock()
		return
	}

	r.state = state
	r.cause = cause
	r.result = result
	close(r.done)
	listeners := r.snapshotListenersLocked()
	r.mu.Unlock()

	r.fire(listeners)
}

func (r *Retrieval[T]) snapshotListenersLocked() []observable.InvalidationListener {
	listeners := make([]observable.InvalidationListener, 0, len(r.listeners))
	for _, sub := range r.listeners {
		if !sub.removed {
			listeners = append(listeners, sub.fn)
		}
	}

	return listeners
}

func (r *Retrieval[T]) fire(listeners []observable.InvalidationListener) {
	for _, fn := range listeners {
		fn(r)
	}
}
