package concurrent

import (
	"context"
	"sync"
)

// Pool is a fixed-size worker pool. It supports cooperative submission:
// work submitted with a context is skipped when that context is cancelled
// before a worker picks it up.
type Pool struct {
	tasks     chan poolTask
	wg        sync.WaitGroup
	closeOnce sync.Once
}

type poolTask struct {
	ctx context.Context
	fn  func()
}

// NewPool creates a Pool with the given number of workers.
// A worker count below one is raised to one.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}

	p := &Pool{tasks: make(chan poolTask)}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for task := range p.tasks {
		if task.ctx != nil && task.ctx.Err() != nil {
			continue // cancelled while queued
		}

		task.fn()
	}
}

// Execute implements the Executor interface. It blocks until a worker
// accepts the work. Execute must not be called after Close.
func (p *Pool) Execute(fn func()) {
	p.tasks <- poolTask{fn: fn}
}

// ExecuteContext implements the ContextExecutor interface. The work is
// dropped when ctx is cancelled before a worker accepts it.
func (p *Pool) ExecuteContext(ctx context.Context, fn func()) {
	select {
	case <-ctx.Done():
	case p.tasks <- poolTask{ctx: ctx, fn: fn}:
	}
}

// Close stops accepting work and waits for in-flight tasks to finish.
// Close is idempotent.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.tasks)
	})

	p.wg.Wait()
}
