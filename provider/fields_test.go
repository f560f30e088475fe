package provider_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeuyeduyin/DataFX/observable"
	"github.com/yeuyeduyin/DataFX/provider"
	"github.com/yeuyeduyin/DataFX/testutil/testdoubles"
)

// note is a domain type whose observable fields are discovered reflectively.
type note struct {
	Title *observable.Property[string]
	Done  *observable.Property[bool]
	Draft *observable.Property[bool] `datafx:"transient"`
	Body  string
}

func newNote(title string) *note {
	return &note{
		Title: observable.NewProperty(title),
		Done:  observable.NewProperty(false),
		Draft: observable.NewProperty(true),
	}
}

// shieldedNote keeps one observable field unexported.
type shieldedNote struct {
	Title   *observable.Property[string]
	version *observable.Property[int]
}

// curatedNote enumerates its own observable fields and deliberately omits Done.
type curatedNote struct {
	Title *observable.Property[string]
	Done  *observable.Property[bool]
}

func (n *curatedNote) ObservableFields() []provider.NamedObservable {
	return []provider.NamedObservable{
		{Name: "Title", Value: n.Title},
	}
}

func retrieveAll[T any](t *testing.T, p *provider.ListProvider[T]) *provider.Retrieval[T] {
	t.Helper()

	retrieval := p.Retrieve()
	require.NoError(t, retrieval.Await(context.Background()))
	require.Equal(t, provider.StateSucceeded, retrieval.State())

	return retrieval
}

func setOnDispatcher[T any, V any](t *testing.T, p *provider.ListProvider[T], prop *observable.Property[V], value V) {
	t.Helper()

	err := p.Dispatcher().Invoke(context.Background(), func() {
		prop.Set(value)
	})
	require.NoError(t, err)
}

func Test_WriteBack_FieldInvalidationInvokesSinkWithWholeItem(t *testing.T) {
	item := newNote("draft title")
	handler := testdoubles.NewRecordingHandler[*note]()

	p, err := provider.NewListProvider(
		provider.NewSliceReader(item),
		provider.WithWriteBackHandler[*note](handler),
	)
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	retrieveAll(t, p)
	setOnDispatcher(t, p, item.Title, "final title")

	invocations := handler.Invocations()
	require.Len(t, invocations, 1)
	assert.Same(t, item, invocations[0])
}

func Test_WriteBack_EachInvalidationInvokesOneSink(t *testing.T) {
	item := newNote("title")
	handler := testdoubles.NewRecordingHandler[*note]()

	p, err := provider.NewListProvider(
		provider.NewSliceReader(item),
		provider.WithWriteBackHandler[*note](handler),
	)
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	retrieveAll(t, p)

	setOnDispatcher(t, p, item.Title, "first")
	setOnDispatcher(t, p, item.Done, true)
	setOnDispatcher(t, p, item.Title, "second")

	assert.Equal(t, 3, handler.Count())
}

func Test_WriteBack_TransientFieldsAreNotWired(t *testing.T) {
	item := newNote("title")
	handler := testdoubles.NewRecordingHandler[*note]()

	p, err := provider.NewListProvider(
		provider.NewSliceReader(item),
		provider.WithWriteBackHandler[*note](handler),
	)
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	retrieveAll(t, p)
	setOnDispatcher(t, p, item.Draft, false)

	assert.Equal(t, 0, handler.Count())
}

func Test_WriteBack_NilObservableFieldsAreSkipped(t *testing.T) {
	item := &note{Title: observable.NewProperty("only title")}
	handler := testdoubles.NewRecordingHandler[*note]()

	p, err := provider.NewListProvider(
		provider.NewSliceReader(item),
		provider.WithWriteBackHandler[*note](handler),
	)
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	retrieveAll(t, p)
	setOnDispatcher(t, p, item.Title, "changed")

	assert.Equal(t, 1, handler.Count())
}

func Test_WriteBack_FieldProviderEnumerationWinsOverReflection(t *testing.T) {
	item := &curatedNote{
		Title: observable.NewProperty("title"),
		Done:  observable.NewProperty(false),
	}
	handler := testdoubles.NewRecordingHandler[*curatedNote]()

	p, err := provider.NewListProvider(
		provider.NewSliceReader(item),
		provider.WithWriteBackHandler[*curatedNote](handler),
	)
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	retrieveAll(t, p)

	setOnDispatcher(t, p, item.Done, true)
	assert.Equal(t, 0, handler.Count())

	setOnDispatcher(t, p, item.Title, "renamed")
	assert.Equal(t, 1, handler.Count())
}

func Test_WriteBack_UnexportedFieldsAreWiredForPointerItems(t *testing.T) {
	item := &shieldedNote{
		Title:   observable.NewProperty("title"),
		version: observable.NewProperty(1),
	}
	handler := testdoubles.NewRecordingHandler[*shieldedNote]()

	p, err := provider.NewListProvider(
		provider.NewSliceReader(item),
		provider.WithWriteBackHandler[*shieldedNote](handler),
	)
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	retrieveAll(t, p)
	setOnDispatcher(t, p, item.version, 2)

	assert.Equal(t, 1, handler.Count())
}

func Test_WriteBack_InaccessibleFieldIsLoggedAndSkipped(t *testing.T) {
	loggerSpy := testdoubles.NewLoggerSpy()
	item := shieldedNote{
		Title:   observable.NewProperty("title"),
		version: observable.NewProperty(1),
	}
	handler := testdoubles.NewRecordingHandler[shieldedNote]()

	p, err := provider.NewListProvider(
		provider.NewSliceReader(item),
		provider.WithWriteBackHandler[shieldedNote](handler),
		provider.WithLogger[shieldedNote](loggerSpy),
	)
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	retrieveAll(t, p)

	assert.True(t, loggerSpy.HasMessage("warn", "skipping observable field that cannot be accessed"))

	// the exported field is still wired
	setOnDispatcher(t, p, item.Title, "changed")
	assert.Equal(t, 1, handler.Count())

	// the skipped field is not
	setOnDispatcher(t, p, item.version, 2)
	assert.Equal(t, 1, handler.Count())
}

func Test_WriteBack_NonStructItemsAreNotWired(t *testing.T) {
	handler := testdoubles.NewRecordingHandler[string]()

	p, err := provider.NewListProvider(
		provider.NewSliceReader("just a string"),
		provider.WithWriteBackHandler[string](handler),
	)
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	retrieveAll(t, p)

	assert.Equal(t, 0, handler.Count())
}

func Test_WriteBack_SinkFailureIsReportedAndCounted(t *testing.T) {
	metricsSpy := testdoubles.NewMetricsSpy()
	item := newNote("title")
	sinkErr := errors.New("persistence rejected the item")

	var reported error
	failing := provider.WriteBackFunc[*note](func(*note) provider.Sink {
		return provider.SinkFunc(func(context.Context) (any, error) {
			return nil, sinkErr
		})
	})

	p, err := provider.NewListProvider(
		provider.NewSliceReader(item),
		provider.WithWriteBackHandler[*note](failing),
		provider.WithMetrics[*note](metricsSpy),
		provider.WithFailureHandler[*note](func(cause error) { reported = cause }),
	)
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	retrieveAll(t, p)
	setOnDispatcher(t, p, item.Title, "changed")

	assert.ErrorIs(t, reported, provider.ErrWriteBackFailed)
	assert.ErrorIs(t, reported, sinkErr)
	assert.Equal(t, 1, metricsSpy.CounterCount("datafx.writeback.failures"))
}

func Test_WriteBack_HandlerRegisteredAfterRetrieveDoesNotAffectPublishedItems(t *testing.T) {
	item := newNote("title")
	handler := testdoubles.NewRecordingHandler[*note]()

	p, err := provider.NewListProvider(provider.NewSliceReader(item))
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	retrieveAll(t, p)
	p.SetWriteBackHandler(handler)

	setOnDispatcher(t, p, item.Title, "changed")
	assert.Equal(t, 0, handler.Count())
}
