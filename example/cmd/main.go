// Command example demonstrates the retrieval engine end to end: it streams
// tasks from a JSON document into an observable list, wires write-back for
// field mutations, and pushes externally added entries to a sink.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/yeuyeduyin/DataFX/observable"
	"github.com/yeuyeduyin/DataFX/provider"
	"github.com/yeuyeduyin/DataFX/provider/jsonsource"
	"github.com/yeuyeduyin/DataFX/provider/oteladapters"
)

const tasksJSON = `[
	{"title": "write the report", "done": false},
	{"title": "review the numbers", "done": false},
	{"title": "ship the release", "done": true}
]`

type taskRecord struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// task is the observable domain object the list holds.
type task struct {
	Title *observable.Property[string]
	Done  *observable.Property[bool]
}

type taskReader struct {
	inner *jsonsource.Reader[taskRecord]
}

func (r *taskReader) Next(ctx context.Context) (bool, error) {
	return r.inner.Next(ctx)
}

func (r *taskReader) Get() (*task, error) {
	record, err := r.inner.Get()
	if err != nil {
		return nil, err
	}

	return &task{
		Title: observable.NewProperty(record.Title),
		Done:  observable.NewProperty(record.Done),
	}, nil
}

func main() {
	logger := oteladapters.NewSlogLoggerWithHandler(
		slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)

	// the sink stands in for a database or message broker
	persist := provider.WriteBackFunc[*task](func(item *task) provider.Sink {
		return provider.SinkFunc(func(_ context.Context) (any, error) {
			logger.Info("persisting task",
				"title", item.Title.Get(),
				"done", item.Done.Get())

			return nil, nil
		})
	})

	reader := &taskReader{inner: jsonsource.NewArrayReader[taskRecord](strings.NewReader(tasksJSON))}

	tasks, err := provider.NewListProvider[*task](
		reader,
		provider.WithLogger[*task](logger),
		provider.WithWriteBackHandler[*task](persist),
		provider.WithAddEntryHandler[*task](persist),
	)
	if err != nil {
		log.Fatalf("failed to create provider: %v", err)
	}
	defer func() { _ = tasks.Close() }()

	retrieval := tasks.Retrieve()
	if awaitErr := retrieval.Await(context.Background()); awaitErr != nil {
		log.Fatalf("waiting for retrieval: %v", awaitErr)
	}

	list, resultErr := retrieval.Result()
	if resultErr != nil {
		log.Fatalf("retrieval did not succeed: %v", resultErr)
	}

	dispatcher := tasks.Dispatcher()

	// completing a task triggers write-back of the whole item
	err = dispatcher.Invoke(context.Background(), func() {
		list.Get(0).Done.Set(true)
	})
	if err != nil {
		log.Fatalf("marking task done: %v", err)
	}

	// an entry added from outside a retrieval is pushed to the sink as well
	err = dispatcher.Invoke(context.Background(), func() {
		list.Append(&task{
			Title: observable.NewProperty("celebrate"),
			Done:  observable.NewProperty(false),
		})
	})
	if err != nil {
		log.Fatalf("appending task: %v", err)
	}

	err = dispatcher.Invoke(context.Background(), func() {
		for _, item := range list.Items() {
			logger.Info("task in list", "title", item.Title.Get(), "done", item.Done.Get())
		}
	})
	if err != nil {
		log.Fatalf("reading list: %v", err)
	}
}
