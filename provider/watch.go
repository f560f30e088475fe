package provider

import (
	"context"
	"errors"

	"github.com/yeuyeduyin/DataFX/concurrent"
	"github.com/yeuyeduyin/DataFX/observable"
)

// installGrowthHook attaches the entry-added listener to the target list.
// It runs when a retrieval completes successfully, so the initial fetch's
// own appends are never observed as growth; the hook is installed at most
// once per list.
//
// The hook is a passive change observer: it cannot tell a later retrieval's
// appends from external ones, and both are pushed to the data source.
func (p *ListProvider[T]) installGrowthHook(list *observable.List[T], dispatcher *concurrent.Dispatcher) {
	p.mu.Lock()
	handler := p.entryAddedHandler
	if handler == nil || p.growthHookInstalled {
		p.mu.Unlock()
		return
	}
	p.growthHookInstalled = true
	p.mu.Unlock()

	_ = dispatcher.Invoke(context.Background(), func() {
		list.AddChangeListener(func(change observable.Change[T]) {
			p.pushAddedEntries(change, handler)
		})
	})
}

// pushAddedEntries invokes the entry-added handler for every element of the
// added sublist, in report order. Results are discarded; failures are
// reported but do not stop the remaining entries. Runs on the dispatcher.
func (p *ListProvider[T]) pushAddedEntries(change observable.Change[T], handler WriteBackHandler[T]) {
	for _, entry := range change.Added {
		sink := handler.CreateSink(entry)

		if _, err := sink.Invoke(context.Background()); err != nil {
			p.reportWriteBackFailure(errors.Join(ErrWriteBackFailed, err))
		}
	}
}
