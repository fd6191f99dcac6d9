package dialect

import (
	"context"
	"fmt"
	"strings"
)

// Dialect names.
const (
	MySQL    = "mysql"
	MariaDB  = "mariadb"
	Drizzle  = "drizzle"
	MsSQL    = "mssql"
	Oracle   = "oracle"
	DB2      = "db2"
	SQLite   = "sqlite"
	Postgres = "postgres"

	// Firebird is only available as a translation target.
	Firebird = "firebird"
)

// aliases maps alternative spellings to dialect names.
var aliases = map[string]string{
	"mysql":      MySQL,
	"mariadb":    MariaDB,
	"drizzle":    Drizzle,
	"mssql":      MsSQL,
	"sqlserver":  MsSQL,
	"sqlsrv":     MsSQL,
	"oracle":     Oracle,
	"oci":        Oracle,
	"db2":        DB2,
	"ibm_db2":    DB2,
	"sqlite":     SQLite,
	"sqlite3":    SQLite,
	"postgres":   Postgres,
	"postgresql": Postgres,
	"pgsql":      Postgres,
	"firebird":   Firebird,
}

// Parse normalizes a dialect name. It accepts the common driver spellings
// ("postgresql", "sqlite3", "sqlserver", ...).
func Parse(name string) (string, error) {
	if d, ok := aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return d, nil
	}
	return "", fmt.Errorf("dialect: unknown dialect %q", name)
}

// Names returns the dialects that have a precompiler.
func Names() []string {
	return []string{MySQL, MariaDB, Drizzle, MsSQL, Oracle, DB2, SQLite, Postgres}
}

// IsMySQLFamily reports whether d shares MySQL's syntax.
func IsMySQLFamily(d string) bool {
	return d == MySQL || d == MariaDB || d == Drizzle
}

// ExecQuerier wraps the 2 database operations.
type ExecQuerier interface {
	// Exec executes a query that does not return records. For example, in SQL, INSERT or UPDATE.
	// It scans the result into the pointer v. For SQL drivers, it is dialect/sql.Result.
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a query that returns rows, typically a SELECT in SQL.
	// It scans the result into the pointer v. For SQL drivers, it is *dialect/sql.Rows.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the interface that wraps all necessary operations for leap clients.
type Driver interface {
	ExecQuerier
	// Tx starts and returns a new transaction.
	// The provided context is used until the transaction is committed or rolled back.
	Tx(context.Context) (Tx, error)
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}

// Tx wraps the Exec and Query operations in transaction.
type Tx interface {
	ExecQuerier
	Commit() error
	Rollback() error
}
