package provider

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/yeuyeduyin/DataFX/concurrent"
	"github.com/yeuyeduyin/DataFX/observable"
)

// Retrieve starts one asynchronous retrieval and returns its handle
// immediately. The reader, executor, target list and write-back handler are
// snapshotted at call time; later Set calls affect only subsequent
// retrievals.
//
// Repeated calls start independent retrievals against the same target list.
// Items from concurrent retrievals interleave without any cross-retrieval
// ordering guarantee; within one retrieval, reader order is preserved.
func (p *ListProvider[T]) Retrieve() *Retrieval[T] {
	p.mu.Lock()
	reader := p.reader
	executor := p.executor
	dispatcher := p.dispatcher
	list := p.list
	writeBack := p.writeBackHandler
	p.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	retrieval := newRetrieval[T](cancel)

	task := func() {
		p.run(ctx, retrieval, reader, dispatcher, list, writeBack)
	}

	if executor == nil {
		concurrent.GoExecutor{}.Execute(task)
		return retrieval
	}

	if contextExecutor, ok := executor.(concurrent.ContextExecutor); ok {
		contextExecutor.ExecuteContext(ctx, task)
	} else {
		executor.Execute(task)
	}

	return retrieval
}

// run is the publishing task: it drains the reader sequentially and mirrors
// each produced item into the target list, checking for cancellation once
// per iteration.
func (p *ListProvider[T]) run(
	ctx context.Context,
	retrieval *Retrieval[T],
	reader DataReader[T],
	dispatcher *concurrent.Dispatcher,
	list *observable.List[T],
	writeBack WriteBackHandler[T],
) {

	if !retrieval.start() {
		return
	}

	start := time.Now()
	published := 0

	for {
		if ctx.Err() != nil {
			p.finishCancelled(retrieval, published, time.Since(start))
			return
		}

		ok, nextErr := reader.Next(ctx)
		if nextErr != nil {
			if ctx.Err() != nil {
				p.finishCancelled(retrieval, published, time.Since(start))
				return
			}

			p.finishFailed(retrieval, errors.Join(ErrReadingItemFailed, nextErr), time.Since(start))

			return
		}

		if !ok {
			break
		}

		item, getErr := reader.Get()
		if getErr != nil {
			p.finishFailed(retrieval, errors.Join(ErrReadingItemFailed, getErr), time.Since(start))
			return
		}

		if publishErr := p.publish(item, dispatcher, list, writeBack); publishErr != nil {
			p.finishFailed(retrieval, publishErr, time.Since(start))
			return
		}

		published++
	}

	p.finishSucceeded(retrieval, dispatcher, list, published, time.Since(start))
}

// publish appends the item on the owning dispatcher and, while still on that
// context, wires write-back listeners to the item's observable fields.
func (p *ListProvider[T]) publish(
	item T,
	dispatcher *concurrent.Dispatcher,
	list *observable.List[T],
	writeBack WriteBackHandler[T],
) error {

	invokeErr := dispatcher.Invoke(context.Background(), func() {
		list.Append(item)

		if writeBack != nil {
			p.wireWriteBack(item, writeBack)
		}
	})
	if invokeErr != nil {
		return errors.Join(ErrAppendingItemFailed, invokeErr)
	}

	return nil
}

func (p *ListProvider[T]) finishSucceeded(
	retrieval *Retrieval[T],
	dispatcher *concurrent.Dispatcher,
	list *observable.List[T],
	published int,
	duration time.Duration,
) {

	p.installGrowthHook(list, dispatcher)

	if p.logger != nil {
		p.logger.Info(logMsgRetrievalCompleted,
			logAttrRetrievalID, retrieval.ID().String(),
			logAttrItemCount, published,
			logAttrDurationMS, durationToMilliseconds(duration))
	}

	p.recordOutcome("succeeded", published, duration)

	// the terminal transition comes last so that everyone released by the
	// done channel observes the completed reporting
	retrieval.succeed(list)
}

func (p *ListProvider[T]) finishFailed(retrieval *Retrieval[T], cause error, duration time.Duration) {
	p.reportFailure(cause)
	p.recordOutcome("failed", 0, duration)
	retrieval.fail(cause)
}

func (p *ListProvider[T]) finishCancelled(retrieval *Retrieval[T], published int, duration time.Duration) {
	if p.logger != nil {
		p.logger.Info(logMsgRetrievalCancelled,
			logAttrRetrievalID, retrieval.ID().String(),
			logAttrItemCount, published,
			logAttrDurationMS, durationToMilliseconds(duration))
	}

	p.recordOutcome("cancelled", published, duration)
	retrieval.markCancelled()
}

// reportFailure is the default failure visibility: a registered failure
// handler wins, then the configured logger, then the standard error stream.
func (p *ListProvider[T]) reportFailure(cause error) {
	p.mu.Lock()
	handler := p.onFailed
	p.mu.Unlock()

	if handler != nil {
		handler(cause)
		return
	}

	if p.logger != nil {
		p.logger.Error(logMsgRetrievalFailed, logAttrError, cause.Error())
		return
	}

	fmt.Fprintf(os.Stderr, "DataFX default error handler: %v\n", cause)
}

func (p *ListProvider[T]) reportWriteBackFailure(cause error) {
	if p.metrics != nil {
		p.metrics.IncrementCounter(metricWriteBackFailures, map[string]string{})
	}

	p.reportFailure(cause)
}

func (p *ListProvider[T]) recordOutcome(outcome string, published int, duration time.Duration) {
	if p.metrics == nil {
		return
	}

	labels := map[string]string{labelOutcome: outcome}
	p.metrics.RecordDuration(metricRetrievalDuration, duration, labels)
	p.metrics.RecordValue(metricRetrievalItems, float64(published), labels)
	p.metrics.IncrementCounter(metricRetrievalOutcomes, labels)
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
