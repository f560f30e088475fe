package sqlengine

import (
	"errors"
)

var ErrNilDatabaseConnection = errors.New("nil database connection supplied")
var ErrEmptyTableName = errors.New("empty table name supplied")
var ErrNilRowScanner = errors.New("nil row scanner supplied")
var ErrNilRowValues = errors.New("nil row values mapping supplied")
var ErrEmptyDialect = errors.New("empty sql dialect supplied")
var ErrBuildingQueryFailed = errors.New("building sql query failed")
var ErrQueryingRowsFailed = errors.New("querying rows failed")
var ErrScanningRowFailed = errors.New("scanning row failed")
var ErrExecutingWriteFailed = errors.New("executing write-back statement failed")
var ErrNoCurrentRow = errors.New("no current row, Next was not called or reported exhaustion")

const defaultDialect = "postgres"

// Logger interface for SQL query logging, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type settings struct {
	columns []string
	orderBy string
	dialect string
	logger  Logger
}

// Option defines a functional option shared by Source and WriteBack
// factories. Options that only concern row streaming, WithColumns and
// WithOrderBy, have no effect on a WriteBack.
type Option func(*settings) error

// WithColumns restricts the selected columns. Without it the source selects
// every column; the RowScanner must match whichever shape applies.
func WithColumns(columns ...string) Option {
	return func(s *settings) error {
		s.columns = columns
		return nil
	}
}

// WithOrderBy orders the streamed rows ascending by the given column.
// Reader order is publication order, so this decides list order.
func WithOrderBy(column string) Option {
	return func(s *settings) error {
		s.orderBy = column
		return nil
	}
}

// WithDialect sets the goqu dialect used to build queries.
// The dialect must have been registered with goqu; postgres is the default
// and the only one this package imports.
func WithDialect(dialect string) Option {
	return func(s *settings) error {
		if dialect == "" {
			return ErrEmptyDialect
		}

		s.dialect = dialect

		return nil
	}
}

// WithLogger sets the logger.
//
// Debug level: generated SQL with execution timing (development use)
// Warn level: cleanup failures
// Error level: query building and execution failures.
func WithLogger(logger Logger) Option {
	return func(s *settings) error {
		s.logger = logger
		return nil
	}
}

func applyOptions(options []Option) (settings, error) {
	s := settings{dialect: defaultDialect}

	for _, option := range options {
		if err := option(&s); err != nil {
			return settings{}, err
		}
	}

	return s, nil
}
