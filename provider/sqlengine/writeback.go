package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/yeuyeduyin/DataFX/provider"
	"github.com/yeuyeduyin/DataFX/provider/sqlengine/internal/adapters"
)

const (
	logMsgBuildInsertFailed = "failed to build insert query"
	logMsgDBExecFailed      = "database execution failed during write-back"
	logMsgItemWritten       = "item written back"
	logActionInsert         = "insert"

	logAttrRowsAffected = "rows_affected"
)

// RowValues maps one domain value onto the column values of its row.
type RowValues[T any] func(item T) map[string]any

// WriteBack is a provider.WriteBackHandler that persists items with an
// INSERT built from the registered RowValues mapping.
type WriteBack[T any] struct {
	db      adapters.DB
	table   string
	values  RowValues[T]
	dialect string
	logger  Logger
}

// NewWriteBackFromPGXPool creates a WriteBack using a pgx pool with optional configuration.
func NewWriteBackFromPGXPool[T any](pool *pgxpool.Pool, table string, values RowValues[T], options ...Option) (*WriteBack[T], error) {
	if pool == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newWriteBack(adapters.NewPGX(pool), table, values, options)
}

// NewWriteBackFromSQLDB creates a WriteBack using a database/sql handle with optional configuration.
func NewWriteBackFromSQLDB[T any](db *sql.DB, table string, values RowValues[T], options ...Option) (*WriteBack[T], error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newWriteBack(adapters.NewSQL(db), table, values, options)
}

// NewWriteBackFromSQLX creates a WriteBack using a sqlx handle with optional configuration.
func NewWriteBackFromSQLX[T any](db *sqlx.DB, table string, values RowValues[T], options ...Option) (*WriteBack[T], error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newWriteBack(adapters.NewSQLX(db), table, values, options)
}

func newWriteBack[T any](db adapters.DB, table string, values RowValues[T], options []Option) (*WriteBack[T], error) {
	if table == "" {
		return nil, ErrEmptyTableName
	}

	if values == nil {
		return nil, ErrNilRowValues
	}

	s, err := applyOptions(options)
	if err != nil {
		return nil, err
	}

	return &WriteBack[T]{
		db:      db,
		table:   table,
		values:  values,
		dialect: s.dialect,
		logger:  s.logger,
	}, nil
}

// CreateSink implements the provider.WriteBackHandler interface.
// The sink's result is the number of rows affected.
func (w *WriteBack[T]) CreateSink(item T) provider.Sink {
	return provider.SinkFunc(func(ctx context.Context) (any, error) {
		return w.write(ctx, item)
	})
}

func (w *WriteBack[T]) write(ctx context.Context, item T) (int64, error) {
	query, buildErr := w.buildInsertQuery(item)
	if buildErr != nil {
		if w.logger != nil {
			w.logger.Error(logMsgBuildInsertFailed, logAttrError, buildErr.Error())
		}

		return 0, buildErr
	}

	start := time.Now()
	result, execErr := w.db.Exec(ctx, query)
	duration := time.Since(start)

	if w.logger != nil {
		w.logger.Debug(logMsgSQLExecuted+logActionInsert, logAttrDurationMS, duration.Milliseconds(), logAttrQuery, query)
	}

	if execErr != nil {
		if w.logger != nil {
			w.logger.Error(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, query)
		}

		return 0, errors.Join(ErrExecutingWriteFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		return 0, errors.Join(ErrExecutingWriteFailed, rowsAffectedErr)
	}

	if w.logger != nil {
		w.logger.Info(logMsgItemWritten, logAttrRowsAffected, rowsAffected, logAttrDurationMS, duration.Milliseconds())
	}

	return rowsAffected, nil
}

func (w *WriteBack[T]) buildInsertQuery(item T) (string, error) {
	stmt := goqu.Dialect(w.dialect).
		Insert(w.table).
		Rows(goqu.Record(w.values(item)))

	query, _, toSQLErr := stmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return query, nil
}
