// Package concurrent provides the execution contexts the data providers run
// on: a plain background executor, a fixed-size worker pool with cooperative
// submission, and a single-goroutine serial dispatcher.
//
// The Dispatcher is the owning context for observable state. Everything that
// mutates a shared observable.List, and every listener attached to it, runs
// on the dispatcher goroutine; this single-writer discipline replaces locks
// on the observable types themselves.
package concurrent
