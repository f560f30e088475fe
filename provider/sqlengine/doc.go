// Package sqlengine provides a SQL-backed data source and write-back
// transport for the provider engine.
//
// Source is a provider.DataReader that streams rows from one table through a
// single query built with goqu and maps each row onto a domain value with a
// caller-supplied RowScanner. WriteBack is a provider.WriteBackHandler that
// persists an item with an INSERT built from a caller-supplied RowValues
// mapping.
//
// Three database access libraries are supported through factory functions:
// pgxpool.Pool, database/sql and sqlx.DB. The queries are plain strings, so
// any driver registered with database/sql works; the SQL dialect defaults to
// postgres and can be changed with WithDialect.
//
// Common usage pattern:
//
//	source, err := sqlengine.NewSourceFromPGXPool(pool, "books",
//		func(scan func(dest ...any) error) (Book, error) {
//			var b Book
//			err := scan(&b.ID, &b.Title)
//			return b, err
//		},
//		sqlengine.WithColumns("id", "title"),
//		sqlengine.WithOrderBy("id"))
package sqlengine
