// Package provider implements the data-synchronization engine: it drains a
// pluggable data source into a reactive list incrementally, and optionally
// wires each fetched item so that later mutations to its observable fields
// are pushed back to the data source.
//
// The engine has three parts:
//   - a cancellable publishing task that drains a DataReader and appends each
//     item to an observable.List on the list's owning dispatcher, preserving
//     reader order
//   - a field observer that discovers the observable fields of each published
//     item and attaches write-back listeners to them
//   - a collection-growth hook that pushes externally added entries to the
//     data source once the initial retrieval has completed
//
// Concrete readers and write-back transports live in the subpackages
// sqlengine, redisengine and jsonsource; the provider itself only knows the
// DataReader and WriteBackHandler contracts.
//
// Common usage pattern:
//
//	p, err := provider.NewListProvider(reader,
//		provider.WithWriteBackHandler[Book](writeBack))
//	if err != nil {
//		// handle error
//	}
//	defer p.Close()
//
//	retrieval := p.Retrieve()
//	if err := retrieval.Await(ctx); err != nil {
//		// handle error
//	}
//	books, err := retrieval.Result()
package provider
