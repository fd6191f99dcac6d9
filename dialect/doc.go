// Package dialect provides database dialect abstraction for leap.
//
// This package defines the dialect names and the execution interfaces used by
// the statement builders, allowing leap to target multiple database backends.
//
// # Supported Dialects
//
// Precompilers exist for the following dialects:
//
//   - MySQL, MariaDB, Drizzle: backtick-quoted identifiers
//   - MsSQL: bracket-quoted identifiers, TOP / OFFSET FETCH paging
//   - Oracle, DB2: double-quoted identifiers, OFFSET FETCH paging
//   - SQLite, Postgres: double-quoted identifiers, LIMIT / OFFSET paging
//
// Firebird is supported as a target of the dialect translator only.
//
// # Dialect Constants
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.MsSQL    = "mssql"
//
// Parse accepts the usual driver spellings and returns the canonical name:
//
//	d, err := dialect.Parse("postgresql") // "postgres"
//
// # Driver Interface
//
// The package defines the Driver interface for database operations:
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// # Sub-packages
//
//   - dialect/sql: precompilers, statement builders and the database/sql driver
//   - dialect/sql/sqllex: SQL tokenizer
//   - dialect/sql/sqltranslate: MySQL to other dialect translation
//   - dialect/sql/schema: schema introspection
package dialect
