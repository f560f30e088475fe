package provider

import (
	"sync"

	"github.com/yeuyeduyin/DataFX/concurrent"
	"github.com/yeuyeduyin/DataFX/observable"
)

const (
	logMsgRetrievalCompleted = "data retrieval completed"
	logMsgRetrievalCancelled = "data retrieval cancelled"
	logMsgRetrievalFailed    = "data retrieval failed"
	logMsgWriteBackFailed    = "write-back invocation failed"
	logMsgFieldNotAccessible = "skipping observable field that cannot be accessed"

	logAttrError       = "error"
	logAttrRetrievalID = "retrieval_id"
	logAttrItemCount   = "item_count"
	logAttrDurationMS  = "duration_ms"
	logAttrItemType    = "item_type"
	logAttrField       = "field"

	metricRetrievalDuration = "datafx.retrieval.duration"
	metricRetrievalItems    = "datafx.retrieval.items"
	metricRetrievalOutcomes = "datafx.retrieval.outcomes"
	metricWriteBackFailures = "datafx.writeback.failures"

	labelOutcome = "outcome"
)

// ListProvider fetches a collection of domain objects from a DataReader,
// publishes them incrementally into an observable.List, and optionally wires
// write-back so that field mutations and external additions are pushed to
// the data source.
//
// The target list is mutated exclusively on the provider's dispatcher.
// External code that appends to a shared list must route the append through
// the same dispatcher.
type ListProvider[T any] struct {
	logger  Logger
	metrics MetricsCollector

	mu                  sync.Mutex
	reader              DataReader[T]
	executor            concurrent.Executor
	dispatcher          *concurrent.Dispatcher
	ownsDispatcher      bool
	list                *observable.List[T]
	writeBackHandler    WriteBackHandler[T]
	entryAddedHandler   WriteBackHandler[T]
	onFailed            func(cause error)
	growthHookInstalled bool
}

// Option defines a functional option for configuring a ListProvider.
type Option[T any] func(*ListProvider[T]) error

// WithExecutor sets the execution context retrievals are submitted to.
// An executor that also implements concurrent.ContextExecutor receives the
// retrieval's context for cooperative submission.
func WithExecutor[T any](executor concurrent.Executor) Option[T] {
	return func(p *ListProvider[T]) error {
		p.executor = executor
		return nil
	}
}

// WithExistingList populates the given list in place instead of creating a
// fresh one. The list is not cleared; the caller is responsible for its
// prior contents.
func WithExistingList[T any](list *observable.List[T]) Option[T] {
	return func(p *ListProvider[T]) error {
		if list == nil {
			return ErrNilTargetList
		}

		p.list = list

		return nil
	}
}

// WithDispatcher sets the dispatcher owning the target list. Providers that
// share one list must share its dispatcher; the caller keeps the lifecycle.
// Without this option the provider creates its own dispatcher and stops it
// on Close.
func WithDispatcher[T any](dispatcher *concurrent.Dispatcher) Option[T] {
	return func(p *ListProvider[T]) error {
		if dispatcher == nil {
			return ErrNilDispatcher
		}

		p.dispatcher = dispatcher

		return nil
	}
}

// WithLogger sets the logger for the ListProvider.
//
// Debug level: per-item publication (development use)
// Info level: retrieval completion with counts and durations
// Warn level: skipped observable fields during write-back wiring
// Error level: retrieval failures reported by the default failure handler.
func WithLogger[T any](logger Logger) Option[T] {
	return func(p *ListProvider[T]) error {
		p.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the ListProvider. The collector
// receives retrieval durations, published item counts, terminal outcomes,
// and write-back failure counts.
func WithMetrics[T any](collector MetricsCollector) Option[T] {
	return func(p *ListProvider[T]) error {
		p.metrics = collector
		return nil
	}
}

// WithWriteBackHandler registers the handler invoked when an observable
// field of a published item is invalidated.
func WithWriteBackHandler[T any](handler WriteBackHandler[T]) Option[T] {
	return func(p *ListProvider[T]) error {
		if handler == nil {
			return ErrNilWriteBackHandler
		}

		p.writeBackHandler = handler

		return nil
	}
}

// WithAddEntryHandler registers the handler invoked for entries added to the
// target list by something other than a retrieval, once the first retrieval
// has completed successfully.
func WithAddEntryHandler[T any](handler WriteBackHandler[T]) Option[T] {
	return func(p *ListProvider[T]) error {
		if handler == nil {
			return ErrNilWriteBackHandler
		}

		p.entryAddedHandler = handler

		return nil
	}
}

// WithFailureHandler replaces the default failure reporting. The handler
// receives the failure cause of a retrieval and of write-back invocations.
func WithFailureHandler[T any](handler func(cause error)) Option[T] {
	return func(p *ListProvider[T]) error {
		p.onFailed = handler
		return nil
	}
}

// NewListProvider creates a ListProvider draining the given reader, with
// optional configuration. Without WithExistingList a fresh empty list is
// created; without WithDispatcher the provider creates and owns one.
func NewListProvider[T any](reader DataReader[T], options ...Option[T]) (*ListProvider[T], error) {
	if reader == nil {
		return nil, ErrNilDataReader
	}

	p := &ListProvider[T]{reader: reader}

	for _, option := range options {
		if err := option(p); err != nil {
			return nil, err
		}
	}

	if p.list == nil {
		p.list = observable.NewList[T]()
	}

	if p.dispatcher == nil {
		p.dispatcher = concurrent.NewDispatcher()
		p.ownsDispatcher = true
	}

	return p, nil
}

// SetReader replaces the data reader. The change affects only subsequent
// Retrieve calls.
func (p *ListProvider[T]) SetReader(reader DataReader[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.reader = reader
}

// Reader returns the current data reader.
func (p *ListProvider[T]) Reader() DataReader[T] {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.reader
}

// SetExecutor replaces the execution context. The change affects only
// subsequent Retrieve calls.
func (p *ListProvider[T]) SetExecutor(executor concurrent.Executor) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.executor = executor
}

// Executor returns the current execution context, nil when the default
// background executor is in use.
func (p *ListProvider[T]) Executor() concurrent.Executor {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.executor
}

// SetList replaces the target list. Subsequent retrievals publish into the
// new list; Data called afterwards wraps the new reference. The previous
// list keeps its contents and listeners.
func (p *ListProvider[T]) SetList(list *observable.List[T]) error {
	if list == nil {
		return ErrNilTargetList
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.list = list
	p.growthHookInstalled = false

	return nil
}

// SetWriteBackHandler registers or clears the field-level write-back
// handler. The change affects only subsequently published items.
func (p *ListProvider[T]) SetWriteBackHandler(handler WriteBackHandler[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.writeBackHandler = handler
}

// SetAddEntryHandler registers or clears the entry-added handler. The hook
// is attached to the list when a retrieval completes successfully and a
// handler is registered at that moment.
func (p *ListProvider[T]) SetAddEntryHandler(handler WriteBackHandler[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.entryAddedHandler = handler
}

// SetOnFailed replaces the default failure reporting, see WithFailureHandler.
func (p *ListProvider[T]) SetOnFailed(handler func(cause error)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.onFailed = handler
}

// Data returns a read-only view over the current target list reference.
// Each call wraps the reference anew; a view created before SetList keeps
// observing the old list.
func (p *ListProvider[T]) Data() observable.View[T] {
	p.mu.Lock()
	defer p.mu.Unlock()

	return observable.NewView(p.list)
}

// Dispatcher returns the dispatcher owning the target list. External code
// uses it to read or mutate the list from outside a retrieval.
func (p *ListProvider[T]) Dispatcher() *concurrent.Dispatcher {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.dispatcher
}

// Close stops the internally created dispatcher. Providers configured with
// WithDispatcher leave the lifecycle to the caller and Close does nothing.
func (p *ListProvider[T]) Close() error {
	p.mu.Lock()
	owns := p.ownsDispatcher
	dispatcher := p.dispatcher
	p.mu.Unlock()

	if owns {
		dispatcher.Close()
	}

	return nil
}
