// Package redisengine provides a Redis-backed data source and write-back
// transport for the provider engine.
//
// Items live in one Redis list whose entries are JSON encoded values of T.
// Source streams the list in chunks with LRANGE; WriteBack appends the JSON
// encoding of an item with RPUSH, so a round trip through both preserves
// order.
package redisengine

import (
	"context"
	"errors"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/yeuyeduyin/DataFX/provider"
)

var ErrNilClient = errors.New("nil redis client supplied")
var ErrEmptyKey = errors.New("empty redis key supplied")
var ErrInvalidChunkSize = errors.New("chunk size must be positive")
var ErrReadingValuesFailed = errors.New("reading values from redis failed")
var ErrDecodingValueFailed = errors.New("decoding redis value failed")
var ErrEncodingValueFailed = errors.New("encoding value for redis failed")
var ErrPushingValueFailed = errors.New("pushing value to redis failed")
var ErrNoCurrentValue = errors.New("no current value, Next was not called or reported exhaustion")

const defaultChunkSize = 64

var json = jsoniter.ConfigFastest

// Source is a provider.DataReader over a Redis list of JSON encoded values.
type Source[T any] struct {
	client *redis.Client
	key    string
	chunk  int64

	next       int64
	buf        []T
	pos        int
	current    T
	hasCurrent bool
}

type sourceConfig struct {
	chunk int64
}

// SourceOption defines a functional option for configuring a Source.
type SourceOption func(*sourceConfig) error

// WithChunkSize sets how many list entries one LRANGE fetches.
func WithChunkSize(size int64) SourceOption {
	return func(c *sourceConfig) error {
		if size < 1 {
			return ErrInvalidChunkSize
		}

		c.chunk = size

		return nil
	}
}

// NewSource creates a Source over the Redis list at key with optional configuration.
func NewSource[T any](client *redis.Client, key string, options ...SourceOption) (*Source[T], error) {
	if client == nil {
		return nil, ErrNilClient
	}

	if key == "" {
		return nil, ErrEmptyKey
	}

	config := sourceConfig{chunk: defaultChunkSize}
	for _, option := range options {
		if err := option(&config); err != nil {
			return nil, err
		}
	}

	return &Source[T]{client: client, key: key, chunk: config.chunk}, nil
}

// Next implements the provider.DataReader interface. Entries pushed while a
// pass is in flight are picked up as long as they land past the cursor.
func (s *Source[T]) Next(ctx context.Context) (bool, error) {
	if s.pos >= len(s.buf) {
		if err := s.fetchChunk(ctx); err != nil {
			return false, err
		}

		if len(s.buf) == 0 {
			s.hasCurrent = false
			return false, nil
		}
	}

	s.current = s.buf[s.pos]
	s.pos++
	s.hasCurrent = true

	return true, nil
}

// Get implements the provider.DataReader interface.
func (s *Source[T]) Get() (T, error) {
	if !s.hasCurrent {
		var zero T
		return zero, ErrNoCurrentValue
	}

	return s.current, nil
}

func (s *Source[T]) fetchChunk(ctx context.Context) error {
	values, err := s.client.LRange(ctx, s.key, s.next, s.next+s.chunk-1).Result()
	if err != nil {
		return errors.Join(ErrReadingValuesFailed, err)
	}

	s.buf = s.buf[:0]
	s.pos = 0

	for _, value := range values {
		var item T
		if decodeErr := json.UnmarshalFromString(value, &item); decodeErr != nil {
			return errors.Join(ErrDecodingValueFailed, decodeErr)
		}

		s.buf = append(s.buf, item)
	}

	s.next += int64(len(values))

	return nil
}

// WriteBack is a provider.WriteBackHandler that appends the JSON encoding of
// an item to a Redis list.
type WriteBack[T any] struct {
	client *redis.Client
	key    string
}

// NewWriteBack creates a WriteBack appending to the Redis list at key.
func NewWriteBack[T any](client *redis.Client, key string) (*WriteBack[T], error) {
	if client == nil {
		return nil, ErrNilClient
	}

	if key == "" {
		return nil, ErrEmptyKey
	}

	return &WriteBack[T]{client: client, key: key}, nil
}

// CreateSink implements the provider.WriteBackHandler interface.
// The sink's result is the list length after the push.
func (w *WriteBack[T]) CreateSink(item T) provider.Sink {
	return provider.SinkFunc(func(ctx context.Context) (any, error) {
		data, encodeErr := json.Marshal(item)
		if encodeErr != nil {
			return nil, errors.Join(ErrEncodingValueFailed, encodeErr)
		}

		length, pushErr := w.client.RPush(ctx, w.key, data).Result()
		if pushErr != nil {
			return nil, errors.Join(ErrPushingValueFailed, pushErr)
		}

		return length, nil
	})
}
