// Package adapters wraps the supported database access libraries behind the
// minimal query/exec surface sqlengine needs.
package adapters

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

// DB defines the interface for database operations needed by sqlengine.
type DB interface {
	Query(ctx context.Context, query string) (Rows, error)
	Exec(ctx context.Context, query string) (Result, error)
}

// Rows defines the interface for streaming query results.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// Result defines the interface for execution results.
type Result interface {
	RowsAffected() (int64, error)
}

// PGX implements DB for a pgxpool.Pool.
type PGX struct {
	pool *pgxpool.Pool
}

// NewPGX creates a PGX adapter over the given pool.
func NewPGX(pool *pgxpool.Pool) *PGX {
	return &PGX{pool: pool}
}

// Query executes the query on the pool and returns wrapped rows.
func (a *PGX) Query(ctx context.Context, query string) (Rows, error) {
	rows, err := a.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	return &pgxRows{rows: rows}, nil
}

// Exec executes the statement on the pool and returns the wrapped result.
func (a *PGX) Exec(ctx context.Context, query string) (Result, error) {
	tag, err := a.pool.Exec(ctx, query)
	if err != nil {
		return nil, err
	}

	return pgxResult{tag: tag}, nil
}

type pgxRows struct {
	rows pgx.Rows
}

func (r *pgxRows) Next() bool {
	return r.rows.Next()
}

func (r *pgxRows) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

func (r *pgxRows) Err() error {
	return r.rows.Err()
}

func (r *pgxRows) Close() error {
	r.rows.Close()
	return nil
}

type pgxResult struct {
	tag pgconn.CommandTag
}

func (r pgxResult) RowsAffected() (int64, error) {
	return r.tag.RowsAffected(), nil
}

// SQL implements DB for a database/sql DB with any registered driver.
type SQL struct {
	db *sql.DB
}

// NewSQL creates a SQL adapter over the given database handle.
func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

// Query executes the query and returns wrapped rows.
func (a *SQL) Query(ctx context.Context, query string) (Rows, error) {
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return sqlRows{rows: rows}, nil
}

// Exec executes the statement and returns the wrapped result.
func (a *SQL) Exec(ctx context.Context, query string) (Result, error) {
	result, err := a.db.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return sqlResult{result: result}, nil
}

// SQLX implements DB for a sqlx.DB. Row streaming and execution go through
// the embedded database/sql handle.
type SQLX struct {
	db *sqlx.DB
}

// NewSQLX creates a SQLX adapter over the given database handle.
func NewSQLX(db *sqlx.DB) *SQLX {
	return &SQLX{db: db}
}

// Query executes the query and returns wrapped rows.
func (a *SQLX) Query(ctx context.Context, query string) (Rows, error) {
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return sqlRows{rows: rows}, nil
}

// Exec executes the statement and returns the wrapped result.
func (a *SQLX) Exec(ctx context.Context, query string) (Result, error) {
	result, err := a.db.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return sqlResult{result: result}, nil
}

type sqlRows struct {
	rows *sql.Rows
}

func (r sqlRows) Next() bool {
	return r.rows.Next()
}

func (r sqlRows) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

func (r sqlRows) Err() error {
	return r.rows.Err()
}

func (r sqlRows) Close() error {
	return r.rows.Close()
}

type sqlResult struct {
	result sql.Result
}

func (r sqlResult) RowsAffected() (int64, error) {
	return r.result.RowsAffected()
}
