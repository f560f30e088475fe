package concurrent

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Dispatcher_InvokeRunsWorkAndWaits(t *testing.T) {
	dispatcher := NewDispatcher()
	defer dispatcher.Close()

	var ran bool
	err := dispatcher.Invoke(context.Background(), func() {
		ran = true
	})

	require.NoError(t, err)
	assert.True(t, ran)
}

func Test_Dispatcher_RunsWorkInSubmissionOrder(t *testing.T) {
	dispatcher := NewDispatcher()
	defer dispatcher.Close()

	const submissions = 100

	var order []int
	for i := 0; i < submissions; i++ {
		i := i
		dispatcher.Execute(func() {
			order = append(order, i)
		})
	}

	// a final Invoke flushes everything submitted before it
	err := dispatcher.Invoke(context.Background(), func() {})
	require.NoError(t, err)

	require.Len(t, order, submissions)
	for i, got := range order {
		assert.Equal(t, i, got)
	}
}

func Test_Dispatcher_SerializesConcurrentSubmitters(t *testing.T) {
	dispatcher := NewDispatcher()
	defer dispatcher.Close()

	const submitters = 8
	const perSubmitter = 50

	var counter int // only ever touched on the dispatcher goroutine

	var wg sync.WaitGroup
	wg.Add(submitters)
	for i := 0; i < submitters; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perSubmitter; j++ {
				_ = dispatcher.Invoke(context.Background(), func() {
					counter++
				})
			}
		}()
	}
	wg.Wait()

	var got int
	err := dispatcher.Invoke(context.Background(), func() {
		got = counter
	})

	require.NoError(t, err)
	assert.Equal(t, submitters*perSubmitter, got)
}

func Test_Dispatcher_InvokeAfterCloseReturnsError(t *testing.T) {
	dispatcher := NewDispatcher()
	dispatcher.Close()

	err := dispatcher.Invoke(context.Background(), func() {
		t.Fatal("work must not run on a closed dispatcher")
	})

	assert.ErrorIs(t, err, ErrDispatcherClosed)
}

func Test_Dispatcher_InvokeWithCancelledContextReturnsContextError(t *testing.T) {
	dispatcher := NewDispatcher()
	defer dispatcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// fill the queue so the cancelled-context branch is the one that can proceed
	block := make(chan struct{})
	dispatcher.Execute(func() { <-block })
	defer close(block)

	for i := 0; i < defaultQueueSize; i++ {
		dispatcher.Execute(func() {})
	}

	err := dispatcher.Invoke(ctx, func() {})

	assert.ErrorIs(t, err, context.Canceled)
}

func Test_Dispatcher_ExecuteAfterCloseDropsWork(t *testing.T) {
	dispatcher := NewDispatcher()
	dispatcher.Close()

	dispatcher.Execute(func() {
		t.Fatal("work must not run on a closed dispatcher")
	})
}

func Test_Dispatcher_CloseIsIdempotent(t *testing.T) {
	dispatcher := NewDispatcher()

	dispatcher.Close()
	dispatcher.Close()
}

func Test_GoExecutor_RunsWorkOnSeparateGoroutine(t *testing.T) {
	done := make(chan struct{})

	GoExecutor{}.Execute(func() {
		close(done)
	})

	<-done
}

func Test_Pool_ExecuteRunsSubmittedWork(t *testing.T) {
	pool := NewPool(2)

	done := make(chan struct{})
	pool.Execute(func() {
		close(done)
	})

	<-done
	pool.Close()
}

func Test_Pool_CloseWaitsForInFlightWork(t *testing.T) {
	pool := NewPool(1)

	var finished bool
	started := make(chan struct{})
	pool.Execute(func() {
		close(started)
		finished = true
	})

	<-started
	pool.Close()

	assert.True(t, finished)
}

func Test_Pool_ExecuteContextSkipsWorkCancelledWhileQueued(t *testing.T) {
	pool := NewPool(1)
	defer pool.Close()

	block := make(chan struct{})
	started := make(chan struct{})
	pool.Execute(func() {
		close(started)
		<-block
	})
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := make(chan struct{})
	go pool.ExecuteContext(ctx, func() {
		close(ran)
	})

	close(block)

	select {
	case <-ran:
		t.Fatal("cancelled work must not run")
	default:
	}
}

func Test_Pool_WorkerCountBelowOneIsRaisedToOne(t *testing.T) {
	pool := NewPool(0)

	done := make(chan struct{})
	pool.Execute(func() {
		close(done)
	})

	<-done
	pool.Close()
}
