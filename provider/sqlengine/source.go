package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/yeuyeduyin/DataFX/provider/sqlengine/internal/adapters"
)

const (
	logMsgBuildSelectFailed = "failed to build select query"
	logMsgDBQueryFailed     = "database query execution failed"
	logMsgCloseRowsFailed   = "failed to close database rows"
	logMsgScanRowFailed     = "failed to scan database row"
	logMsgSQLExecuted       = "executed sql for: "
	logActionSelect         = "select"

	logAttrError      = "error"
	logAttrQuery      = "query"
	logAttrDurationMS = "duration_ms"
)

// RowScanner maps one database row onto a domain value. The scan callback
// has database/sql Scan semantics.
type RowScanner[T any] func(scan func(dest ...any) error) (T, error)

// Source is a provider.DataReader over a SQL table. The first advance
// executes one streaming select; each further advance scans the next row.
// After exhaustion the cursor is closed, and the next advance starts a
// fresh pass over the table.
type Source[T any] struct {
	db      adapters.DB
	table   string
	scan    RowScanner[T]
	columns []string
	orderBy string
	dialect string
	logger  Logger

	rows       adapters.Rows
	current    T
	hasCurrent bool
}

// NewSourceFromPGXPool creates a Source using a pgx pool with optional configuration.
func NewSourceFromPGXPool[T any](pool *pgxpool.Pool, table string, scan RowScanner[T], options ...Option) (*Source[T], error) {
	if pool == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newSource(adapters.NewPGX(pool), table, scan, options)
}

// NewSourceFromSQLDB creates a Source using a database/sql handle with optional configuration.
func NewSourceFromSQLDB[T any](db *sql.DB, table string, scan RowScanner[T], options ...Option) (*Source[T], error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newSource(adapters.NewSQL(db), table, scan, options)
}

// NewSourceFromSQLX creates a Source using a sqlx handle with optional configuration.
func NewSourceFromSQLX[T any](db *sqlx.DB, table string, scan RowScanner[T], options ...Option) (*Source[T], error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newSource(adapters.NewSQLX(db), table, scan, options)
}

func newSource[T any](db adapters.DB, table string, scan RowScanner[T], options []Option) (*Source[T], error) {
	if table == "" {
		return nil, ErrEmptyTableName
	}

	if scan == nil {
		return nil, ErrNilRowScanner
	}

	s, err := applyOptions(options)
	if err != nil {
		return nil, err
	}

	return &Source[T]{
		db:      db,
		table:   table,
		scan:    scan,
		columns: s.columns,
		orderBy: s.orderBy,
		dialect: s.dialect,
		logger:  s.logger,
	}, nil
}

// Next implements the provider.DataReader interface.
func (s *Source[T]) Next(ctx context.Context) (bool, error) {
	if s.rows == nil {
		if err := s.open(ctx); err != nil {
			return false, err
		}
	}

	if !s.rows.Next() {
		drainErr := s.rows.Err()
		s.closeRows()
		s.hasCurrent = false

		if drainErr != nil {
			return false, errors.Join(ErrQueryingRowsFailed, drainErr)
		}

		return false, nil
	}

	item, scanErr := s.scan(s.rows.Scan)
	if scanErr != nil {
		if s.logger != nil {
			s.logger.Error(logMsgScanRowFailed, logAttrError, scanErr.Error())
		}

		return false, errors.Join(ErrScanningRowFailed, scanErr)
	}

	s.current = item
	s.hasCurrent = true

	return true, nil
}

// Get implements the provider.DataReader interface.
func (s *Source[T]) Get() (T, error) {
	if !s.hasCurrent {
		var zero T
		return zero, ErrNoCurrentRow
	}

	return s.current, nil
}

// Close releases the row cursor. It is safe to call at any point and more
// than once; a source closed mid-pass starts a fresh pass on the next advance.
func (s *Source[T]) Close() error {
	if s.rows == nil {
		return nil
	}

	rows := s.rows
	s.rows = nil
	s.hasCurrent = false

	return rows.Close()
}

func (s *Source[T]) open(ctx context.Context) error {
	query, buildErr := s.buildSelectQuery()
	if buildErr != nil {
		if s.logger != nil {
			s.logger.Error(logMsgBuildSelectFailed, logAttrError, buildErr.Error())
		}

		return buildErr
	}

	start := time.Now()
	rows, queryErr := s.db.Query(ctx, query)
	s.logQueryWithDuration(query, logActionSelect, time.Since(start))

	if queryErr != nil {
		if s.logger != nil {
			s.logger.Error(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, query)
		}

		return errors.Join(ErrQueryingRowsFailed, queryErr)
	}

	s.rows = rows

	return nil
}

func (s *Source[T]) closeRows() {
	rows := s.rows
	s.rows = nil

	if closeErr := rows.Close(); closeErr != nil {
		if s.logger != nil {
			s.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

func (s *Source[T]) buildSelectQuery() (string, error) {
	stmt := goqu.Dialect(s.dialect).From(s.table)

	if len(s.columns) > 0 {
		selected := make([]any, len(s.columns))
		for i, column := range s.columns {
			selected[i] = column
		}

		stmt = stmt.Select(selected...)
	}

	if s.orderBy != "" {
		stmt = stmt.Order(goqu.I(s.orderBy).Asc())
	}

	query, _, toSQLErr := stmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return query, nil
}

// logQueryWithDuration logs SQL queries with execution time at debug level if the logger is configured.
func (s *Source[T]) logQueryWithDuration(query string, action string, duration time.Duration) {
	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, duration.Milliseconds(), logAttrQuery, query)
	}
}
