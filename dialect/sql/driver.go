package sql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/leapdb/leap"
	"github.com/leapdb/leap/dialect"
)

// Driver runs statements of one dialect on a database/sql pool. It
// implements dialect.Driver.
type Driver struct {
	Conn
}

// Open opens a pool with the database/sql driver driverName and wraps it.
// The dialect is derived from the driver name.
func Open(driverName, source string) (*Driver, error) {
	db, err := sql.Open(driverName, source)
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: open %s: %w", driverName, err)
	}
	return OpenDB(driverName, db), nil
}

// OpenDB wraps db. name is a dialect, one of its aliases, or the name of
// the database/sql driver behind db such as "pgx" or "sqlserver". Unknown
// names are kept as is; builders of such a driver fail with an
// InvalidArgument error.
func OpenDB(name string, db *sql.DB) *Driver {
	return &Driver{Conn{ExecQuerier: db, dialect: dialectOf(name)}}
}

// driverDialects maps database/sql driver names that are not dialect
// aliases.
var driverDialects = map[string]string{
	"pgx":      dialect.Postgres,
	"azuresql": dialect.MsSQL,
}

func dialectOf(name string) string {
	if d, ok := driverDialects[name]; ok {
		return d
	}
	if d, err := dialect.Parse(name); err == nil {
		return d
	}
	return name
}

// DB returns the wrapped pool.
func (d *Driver) DB() *sql.DB { return d.ExecQuerier.(*sql.DB) }

// Dialect implements dialect.Driver.
func (d *Driver) Dialect() string { return d.dialect }

// Quote implements ValueEscaper with the literal rules of the driver
// dialect.
func (d *Driver) Quote(s string) (string, error) {
	return QuoteString(d.dialect, s), nil
}

// Builder returns the statement builders of the driver dialect. String
// values are escaped through the driver.
func (d *Driver) Builder() *DialectBuilder {
	pc, err := NewPrecompiler(d.dialect, d)
	if err != nil {
		return &DialectBuilder{err: err}
	}
	return For(pc)
}

// Tx implements dialect.Driver.
func (d *Driver) Tx(ctx context.Context) (dialect.Tx, error) {
	return d.BeginTx(ctx, nil)
}

// BeginTx starts a transaction with the given options.
func (d *Driver) BeginTx(ctx context.Context, opts *TxOptions) (dialect.Tx, error) {
	tx, err := d.DB().BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: begin: %w", err)
	}
	return &Tx{Conn: Conn{ExecQuerier: tx, dialect: d.dialect}, Tx: tx}, nil
}

// Close closes the pool.
func (d *Driver) Close() error { return d.DB().Close() }

// Tx is a transaction of a Driver. It implements dialect.Tx.
type Tx struct {
	Conn
	driver.Tx
}

// ExecQuerier is the part of *sql.DB, *sql.Tx and *sql.Conn that Conn
// executes statements with.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Conn adapts an ExecQuerier to dialect.ExecQuerier. Args must be a []any;
// Exec scans into a nil or *Result, Query into a *Rows.
type Conn struct {
	ExecQuerier
	dialect string
}

// Exec implements dialect.ExecQuerier. Constraint violations are returned
// as leap.ConstraintError.
func (c Conn) Exec(ctx context.Context, query string, args, v any) (rerr error) {
	argv, err := argsOf("exec", args)
	if err != nil {
		return err
	}
	res, ok := v.(*Result)
	if v != nil && !ok {
		return fmt.Errorf("dialect/sql: exec: invalid type %T, expect *sql.Result", v)
	}
	ex, release, err := c.session(ctx)
	if err != nil {
		return fmt.Errorf("dialect/sql: exec: %w", err)
	}
	defer func() { rerr = errors.Join(rerr, release()) }()
	r, err := ex.ExecContext(ctx, query, argv...)
	if err != nil {
		werr := fmt.Errorf("dialect/sql: exec: %w", err)
		if IsConstraintError(err) {
			return leap.NewConstraintError(err.Error(), werr)
		}
		return werr
	}
	if res != nil {
		*res = r
	}
	return nil
}

// Query implements dialect.ExecQuerier. A connection pinned for session
// variables is released when the rows are closed.
func (c Conn) Query(ctx context.Context, query string, args, v any) error {
	rows, ok := v.(*Rows)
	if !ok {
		return fmt.Errorf("dialect/sql: query: invalid type %T, expect *sql.Rows", v)
	}
	argv, err := argsOf("query", args)
	if err != nil {
		return err
	}
	ex, release, err := c.session(ctx)
	if err != nil {
		return fmt.Errorf("dialect/sql: query: %w", err)
	}
	r, err := ex.QueryContext(ctx, query, argv...)
	if err != nil {
		return fmt.Errorf("dialect/sql: query: %w", errors.Join(err, release()))
	}
	rows.ColumnScanner = rowsWithCloser{r, release}
	return nil
}

func argsOf(op string, args any) ([]any, error) {
	switch args := args.(type) {
	case nil:
		return nil, nil
	case []any:
		return args, nil
	}
	return nil, fmt.Errorf("dialect/sql: %s: invalid type %T, expect []any for args", op, args)
}

var (
	_ dialect.Driver = (*Driver)(nil)
	_ dialect.Tx     = (*Tx)(nil)
	_ ValueEscaper   = (*Driver)(nil)
)

type (
	// Rows is the scan destination of Query.
	Rows struct{ ColumnScanner }
	// Result is an alias to sql.Result.
	Result = sql.Result
	// NullString is an alias to sql.NullString.
	NullString = sql.NullString
	// TxOptions is an alias to sql.TxOptions.
	TxOptions = sql.TxOptions
)

// ColumnScanner is the part of *sql.Rows that Rows exposes.
type ColumnScanner interface {
	Close() error
	ColumnTypes() ([]*sql.ColumnType, error)
	Columns() ([]string, error)
	Err() error
	Next() bool
	NextResultSet() bool
	Scan(dest ...any) error
}

// rowsWithCloser runs closer after the rows are closed.
type rowsWithCloser struct {
	ColumnScanner
	closer func() error
}

func (r rowsWithCloser) Close() error {
	return errors.Join(r.ColumnScanner.Close(), r.closer())
}
