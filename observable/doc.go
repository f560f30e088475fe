// Package observable provides the reactive primitives the data providers
// publish into: single-value cells, ordered lists with batched change
// notifications, and read-only views.
//
// The types in this package are deliberately not safe for concurrent use.
// All mutation and all listener dispatch must be confined to one execution
// context, typically a concurrent.Dispatcher owned by the code that created
// the value. Listeners run synchronously on the mutating goroutine, in
// subscription order.
//
// Subscriptions are held strongly by the observed value. A listener lives
// exactly as long as the value it observes is reachable; there is no
// weak-reference mechanism and none is needed.
//
// Key types:
//   - Property: a mutable observable cell holding one value
//   - List: an ordered observable sequence with per-event added sublists
//   - View: a read-only wrapper over a List
//
// Common usage pattern:
//
//	count := observable.NewProperty(0)
//	sub := count.AddListener(func(observable.Observable) {
//		fmt.Println("count changed to", count.Get())
//	})
//	count.Set(42)
//	sub.Unsubscribe()
package observable
