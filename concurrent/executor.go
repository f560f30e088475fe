package concurrent

import (
	"context"
)

// Executor runs submitted functions on some execution context.
type Executor interface {
	Execute(fn func())
}

// ContextExecutor is implemented by executors that support cooperative
// submission: submitted work carries a context and may be skipped once that
// context is cancelled.
type ContextExecutor interface {
	Executor

	// ExecuteContext submits fn; an implementation may drop it when ctx is
	// cancelled before the work starts, and must never run it afterwards.
	ExecuteContext(ctx context.Context, fn func())
}

// GoExecutor runs every submitted function on its own goroutine.
// It is the default execution context for retrievals.
type GoExecutor struct{}

// Execute implements the Executor interface.
func (GoExecutor) Execute(fn func()) {
	go fn()
}
