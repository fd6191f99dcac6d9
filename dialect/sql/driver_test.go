package sql

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapdb/leap"
	"github.com/leapdb/leap/dialect"
)

func TestWithVars(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	drv := OpenDB(dialect.Postgres, db)
	mock.ExpectExec("SET foo = 'bar'").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec("RESET foo").WillReturnResult(sqlmock.NewResult(0, 0))
	rows := &Rows{}
	err = drv.Query(WithVar(context.Background(), "foo", "bar"), "SELECT 1", []any{}, rows)
	require.NoError(t, err)
	require.NoError(t, rows.Close(), "rows should be closed to release the connection")
	require.NoError(t, mock.ExpectationsWereMet())

	// A transaction is scoped to one connection, so nothing is reset.
	mock.ExpectBegin()
	mock.ExpectExec("SET foo = 'bar'").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectCommit()
	tx, err := drv.Tx(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Query(WithVar(context.Background(), "foo", "bar"), "SELECT 1", []any{}, rows))
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())

	v, ok := VarFromContext(WithIntVar(context.Background(), "n", 3), "n")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
}

func TestWithVarsQuoting(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	drv := OpenDB(dialect.MySQL, db)
	mock.ExpectExec(`SET SESSION foo = 'it\'s'`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM t").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("SET SESSION foo = DEFAULT").WillReturnResult(sqlmock.NewResult(0, 0))
	err = drv.Exec(WithVar(context.Background(), "foo", "it's"), "DELETE FROM t", []any{}, nil)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	err = drv.Query(WithVar(context.Background(), "foo; DROP TABLE users; --", "bar"), "SELECT 1", []any{}, &Rows{})
	require.Error(t, err)
	assert.True(t, leap.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "invalid session variable name")
}

func TestWithVarsDialects(t *testing.T) {
	tests := []struct {
		dialect string
		ctx     context.Context
		set     []string
		reset   []string
	}{
		{
			dialect: dialect.MsSQL,
			ctx:     WithVar(context.Background(), "tenant_id", "acme"),
			set:     []string{"EXEC sp_set_session_context @key = 'tenant_id', @value = 'acme'"},
			reset:   []string{"EXEC sp_set_session_context @key = 'tenant_id', @value = NULL"},
		},
		{
			dialect: dialect.SQLite,
			ctx:     WithIntVar(context.Background(), "busy_timeout", 5000),
			set:     []string{"PRAGMA busy_timeout = '5000'"},
		},
		{
			dialect: dialect.Postgres,
			ctx:     WithVar(WithVar(context.Background(), "app.user", "a"), "app.user", "b"),
			set:     []string{"SET app.user = 'a'", "SET app.user = 'b'"},
			reset:   []string{"RESET app.user"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
			require.NoError(t, err)
			defer db.Close()
			for _, q := range tt.set {
				mock.ExpectExec(q).WillReturnResult(sqlmock.NewResult(0, 0))
			}
			mock.ExpectExec("DELETE FROM t").WillReturnResult(sqlmock.NewResult(0, 0))
			for _, q := range tt.reset {
				mock.ExpectExec(q).WillReturnResult(sqlmock.NewResult(0, 0))
			}
			require.NoError(t, OpenDB(tt.dialect, db).Exec(tt.ctx, "DELETE FROM t", []any{}, nil))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	err = OpenDB(dialect.Oracle, db).Exec(WithVar(context.Background(), "nls_date_format", "YYYY"), "DELETE FROM t", []any{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session variables are not supported by oracle")

	v, ok := VarFromContext(tests[2].ctx, "app.user")
	assert.True(t, ok)
	assert.Equal(t, "b", v)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("no-such-driver", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dialect/sql: open no-such-driver")
}

func TestDriverDialect(t *testing.T) {
	tests := []struct {
		driver string
		want   string
	}{
		{dialect.Postgres, dialect.Postgres},
		{"pgx", dialect.Postgres},
		{"postgresql", dialect.Postgres},
		{dialect.MySQL, dialect.MySQL},
		{dialect.MariaDB, dialect.MariaDB},
		{"sqlserver", dialect.MsSQL},
		{"sqlite3", dialect.SQLite},
		{"mssql", dialect.MsSQL},
		{"azuresql", dialect.MsSQL},
		{"custom", "custom"},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			db, _, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			assert.Equal(t, tt.want, OpenDB(tt.driver, db).Dialect())
		})
	}
}

func TestDriverBuilder(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()
	drv := OpenDB("sqlserver", db)

	mock.ExpectQuery("SELECT TOP 1 [id] FROM [users] WHERE [name] = N'Zoë'").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	rows := &Rows{}
	err = drv.Builder().Select("id").From("users").Where("name", "=", "Zoë").Limit(1).
		Query(context.Background(), drv, rows)
	require.NoError(t, err)
	require.True(t, rows.Next())
	var id int
	require.NoError(t, rows.Scan(&id))
	assert.Equal(t, 7, id)
	require.NoError(t, rows.Close())

	mock.ExpectExec("DELETE TOP (5) FROM [sessions] WHERE [expired] = '1'").
		WillReturnResult(sqlmock.NewResult(0, 5))
	res, err := drv.Builder().Delete("sessions").Where("expired", "=", true).Limit(5).
		Exec(context.Background(), drv)
	require.NoError(t, err)
	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)
	require.NoError(t, mock.ExpectationsWereMet())

	q, err := drv.Quote("a'b")
	require.NoError(t, err)
	assert.Equal(t, "'a''b'", q)
}

func TestDriverUnknownDialectBuilder(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	_, err = OpenDB("custom", db).Builder().Select("a").Statement(false)
	require.Error(t, err)
	assert.True(t, leap.IsInvalidArgument(err))
}

func TestDriverExecConstraint(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	drv := OpenDB(dialect.MySQL, db)

	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a' for key 'email'"}
	mock.ExpectExec("INSERT INTO").WillReturnError(dup)
	err = drv.Exec(context.Background(), "INSERT INTO users (email) VALUES ('a')", []any{}, nil)
	require.Error(t, err)
	assert.True(t, leap.IsConstraintError(err))
	assert.True(t, IsUniqueConstraintError(err))
	var myErr *mysql.MySQLError
	require.True(t, errors.As(err, &myErr))
	assert.EqualValues(t, 1062, myErr.Number)

	mock.ExpectExec("DELETE").WillReturnError(errors.New("connection reset"))
	err = drv.Exec(context.Background(), "DELETE FROM users", []any{}, nil)
	require.Error(t, err)
	assert.False(t, leap.IsConstraintError(err))
	assert.Contains(t, err.Error(), "dialect/sql: exec")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	drv := OpenDB(dialect.SQLite, db)

	t.Run("Commit", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()
		tx, err := drv.Tx(context.Background())
		require.NoError(t, err)
		stmt, err := Dialect(dialect.SQLite).Insert("users").Column("name", "a").Statement(false)
		require.NoError(t, err)
		require.NoError(t, tx.Exec(context.Background(), stmt, []any{}, nil))
		require.NoError(t, tx.Commit())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO").WillReturnError(errors.New("UNIQUE constraint failed: users.name"))
		mock.ExpectRollback()
		tx, err := drv.Tx(context.Background())
		require.NoError(t, err)
		err = tx.Exec(context.Background(), `INSERT INTO "users" ("name") VALUES ('a')`, []any{}, nil)
		require.Error(t, err)
		assert.True(t, leap.IsConstraintError(err))
		require.NoError(t, tx.Rollback())
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDriverInvalidArgs(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	drv := OpenDB(dialect.Postgres, db)

	err = drv.Exec(context.Background(), "SELECT 1", "not a slice", nil)
	require.Error(t, err)
	err = drv.Query(context.Background(), "SELECT 1", []any{}, new(int))
	require.Error(t, err)
}

func TestValidVarName(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"search_path", true},
		{"schema.table", true},
		{"_private", true},
		{"", false},
		{"123foo", false},
		{"foo bar", false},
		{"foo;DROP TABLE", false},
		{"app.", false},
		{".app", false},
		{"a..b", false},
		{"foo'", false},
		{"foo$", false},
		{"[foo]", false},
		{string(make([]byte, 129)), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, validVarName(tt.input), tt.input)
	}
}

func BenchmarkDriver(b *testing.B) {
	db, mock, err := sqlmock.New()
	if err != nil {
		b.Fatal(err)
	}
	defer db.Close()
	drv := OpenDB(dialect.Postgres, db)
	sel := drv.Builder().Select("id").From("users").Where("id", "=", 1)

	b.Run("Query", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
			rows := &Rows{}
			_ = sel.Query(context.Background(), drv, rows)
			rows.Close()
		}
	})
}
