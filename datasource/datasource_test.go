package datasource

import (
	"bytes"
	"context"
	stdsql "database/sql"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapdb/leap"
	"github.com/leapdb/leap/dialect"
	"github.com/leapdb/leap/dialect/sql"
	"github.com/leapdb/leap/dialect/sql/schema"
)

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		in      Config
		dialect string
		driver  DriverKind
		wantErr string
	}{
		{in: Config{Dialect: "mysql"}, dialect: dialect.MySQL, driver: MySQL},
		{in: Config{Dialect: "MariaDB"}, dialect: dialect.MariaDB, driver: MySQL},
		{in: Config{Dialect: "postgresql"}, dialect: dialect.Postgres, driver: PQ},
		{in: Config{Dialect: "pgsql", Driver: PGX}, dialect: dialect.Postgres, driver: PGX},
		{in: Config{Dialect: "sqlite3"}, dialect: dialect.SQLite, driver: SQLite},
		{in: Config{Dialect: "sqlsrv"}, dialect: dialect.MsSQL, driver: SQLServer},
		{in: Config{Dialect: "oracle"}, wantErr: `datasource: no driver available for dialect "oracle"`},
		{in: Config{Dialect: "dbase"}, wantErr: "datasource: "},
	}
	for _, tt := range tests {
		t.Run(tt.in.Dialect, func(t *testing.T) {
			n, err := tt.in.Normalize()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.dialect, n.Dialect)
			assert.Equal(t, tt.driver, n.Driver)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "dsn", cfg: Config{Dialect: "postgres", DSN: "postgres://localhost/app"}},
		{name: "host", cfg: Config{Dialect: "mysql", Host: "localhost"}},
		{name: "sqlite path", cfg: Config{Dialect: "sqlite", Database: "app.db"}},
		{name: "sqlite without path", cfg: Config{Dialect: "sqlite"}, wantErr: "datasource: sqlite requires a database path or dsn"},
		{name: "missing host", cfg: Config{Dialect: "mssql"}, wantErr: "datasource: mssql requires a host or dsn"},
		{name: "port", cfg: Config{Dialect: "mysql", Host: "db", Port: 70000}, wantErr: "datasource: invalid port 70000"},
		{name: "limits", cfg: Config{Dialect: "mysql", Host: "db", MaxIdleConns: -1}, wantErr: "datasource: connection limits must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestDSN(t *testing.T) {
	t.Run("mysql", func(t *testing.T) {
		dsn, err := dsnBuilders[MySQL](Config{
			Host:     "db",
			User:     "app",
			Password: "secret",
			Database: "shop",
			Options:  map[string]string{"charset": "utf8mb4"},
		})
		require.NoError(t, err)
		mc, err := mysql.ParseDSN(dsn)
		require.NoError(t, err)
		assert.Equal(t, "app", mc.User)
		assert.Equal(t, "secret", mc.Passwd)
		assert.Equal(t, "tcp", mc.Net)
		assert.Equal(t, "db:3306", mc.Addr)
		assert.Equal(t, "shop", mc.DBName)
		assert.True(t, mc.ParseTime)
		assert.Contains(t, dsn, "charset=utf8mb4")
	})
	tests := []struct {
		name string
		kind DriverKind
		cfg  Config
		want string
	}{
		{
			name: "postgres",
			kind: PQ,
			cfg:  Config{Host: "db", User: "app", Password: "secret", Database: "shop"},
			want: "postgres://app:secret@db:5432/shop?sslmode=disable",
		},
		{
			name: "pgx with options",
			kind: PGX,
			cfg:  Config{Host: "db", Port: 6432, Database: "shop", Options: map[string]string{"sslmode": "require", "connect_timeout": "5"}},
			want: "postgres://db:6432/shop?connect_timeout=5&sslmode=require",
		},
		{
			name: "ipv6",
			kind: PQ,
			cfg:  Config{Host: "::1", Database: "shop"},
			want: "postgres://[::1]:5432/shop?sslmode=disable",
		},
		{
			name: "sqlserver",
			kind: SQLServer,
			cfg:  Config{Host: "db", User: "sa", Password: "pw", Database: "shop", Options: map[string]string{"encrypt": "disable"}},
			want: "sqlserver://sa:pw@db:1433?database=shop&encrypt=disable",
		},
		{
			name: "sqlite",
			kind: SQLite,
			cfg:  Config{Database: "app.db"},
			want: "app.db",
		},
		{
			name: "sqlite with pragma",
			kind: SQLite,
			cfg:  Config{Database: "app.db", Options: map[string]string{"_pragma": "foreign_keys(1)"}},
			want: "file:app.db?_pragma=foreign_keys%281%29",
		},
		{
			name: "explicit dsn",
			kind: PQ,
			cfg:  Config{DSN: "host=db dbname=shop", Host: "ignored"},
			want: "host=db dbname=shop",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn, err := dsnBuilders[tt.kind](tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, dsn)
		})
	}
}

func TestConfigRedacted(t *testing.T) {
	cfg := Config{Dialect: "postgres", Host: "db", User: "app", Password: "secret", Database: "shop"}
	assert.Equal(t, "postgres://app:xxxxx@db:5432/shop?sslmode=disable", cfg.Redacted())

	cfg = Config{Dialect: "mysql", Host: "db", User: "app", Password: "secret", Database: "shop"}
	redacted := cfg.Redacted()
	assert.NotContains(t, redacted, "secret")
	mc, err := mysql.ParseDSN(redacted)
	require.NoError(t, err)
	assert.Equal(t, "xxxxx", mc.Passwd)

	cfg = Config{Dialect: "sqlite", Database: "app.db"}
	assert.Equal(t, "app.db", cfg.Redacted())
	assert.Empty(t, Config{Dialect: "oracle"}.Redacted())
}

// mockRegistry registers a sqlmock factory for postgres/pq.
func mockRegistry(t *testing.T) (*Registry, sqlmock.Sqlmock, *[]Config) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	var seen []Config
	r := NewRegistry()
	require.NoError(t, r.Register("postgresql", PQ, func(_ context.Context, cfg Config) (*stdsql.DB, error) {
		seen = append(seen, cfg)
		return db, nil
	}))
	return r, mock, &seen
}

func TestRegistryOpen(t *testing.T) {
	ctx := context.Background()
	base := Config{Dialect: "pgsql", Host: "db", Database: "shop"}

	t.Run("plain", func(t *testing.T) {
		r, mock, seen := mockRegistry(t)
		drv, err := r.Open(ctx, base)
		require.NoError(t, err)
		require.IsType(t, &sql.Driver{}, drv)
		assert.Equal(t, dialect.Postgres, drv.Dialect())
		require.Len(t, *seen, 1)
		assert.Equal(t, dialect.Postgres, (*seen)[0].Dialect)
		assert.Equal(t, PQ, (*seen)[0].Driver)

		mock.ExpectExec("DELETE FROM users").WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, drv.Exec(ctx, "DELETE FROM users", []any{}, nil))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("debug", func(t *testing.T) {
		r, mock, _ := mockRegistry(t)
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		cfg := base
		cfg.Debug = true
		cfg.SlowThreshold = time.Second
		drv, err := r.Open(ctx, cfg, WithLogger(logger))
		require.NoError(t, err)
		require.IsType(t, &sql.DebugDriver{}, drv)
		assert.Contains(t, buf.String(), "data source opened")
		assert.Contains(t, buf.String(), "sslmode=disable")

		mock.ExpectExec("DELETE FROM users").WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, drv.Exec(ctx, "DELETE FROM users", []any{}, nil))
		assert.Contains(t, buf.String(), `query="DELETE FROM users"`)
		assert.Contains(t, buf.String(), "dialect=postgres kind=delete")
	})

	t.Run("stats", func(t *testing.T) {
		r, _, _ := mockRegistry(t)
		cfg := base
		cfg.SlowThreshold = 250 * time.Millisecond
		drv, err := r.Open(ctx, cfg)
		require.NoError(t, err)
		require.IsType(t, &sql.StatsDriver{}, drv)
		assert.Equal(t, 250*time.Millisecond, drv.(*sql.StatsDriver).SlowThreshold())
	})

	t.Run("unknown driver", func(t *testing.T) {
		r, _, _ := mockRegistry(t)
		cfg := base
		cfg.Driver = PGX
		_, err := r.Open(ctx, cfg)
		var uerr *UnknownDriverError
		require.ErrorAs(t, err, &uerr)
		assert.Equal(t, dialect.Postgres, uerr.Dialect)
		assert.Equal(t, PGX, uerr.Driver)
		assert.Equal(t, []DriverKind{PQ}, uerr.Available)
		assert.EqualError(t, err, `datasource: driver "pgx" is not available for dialect "postgres" (available: [postgres])`)
	})

	t.Run("factory error", func(t *testing.T) {
		r := NewRegistry()
		refused := errors.New("connection refused")
		require.NoError(t, r.Register(dialect.MySQL, MySQL, func(context.Context, Config) (*stdsql.DB, error) {
			return nil, refused
		}))
		_, err := r.Open(ctx, Config{Dialect: "mysql", Host: "db"})
		require.ErrorIs(t, err, refused)
		assert.EqualError(t, err, "datasource: open mysql: connection refused")
	})

	t.Run("invalid config", func(t *testing.T) {
		r, _, seen := mockRegistry(t)
		_, err := r.Open(ctx, Config{Dialect: "postgres"})
		require.Error(t, err)
		assert.Empty(t, *seen)
	})

	t.Run("register invalid dialect", func(t *testing.T) {
		err := NewRegistry().Register("dbase", MySQL, nil)
		assert.EqualError(t, err, `datasource: dialect: unknown dialect "dbase"`)
	})
}

func TestBuiltin(t *testing.T) {
	r := Builtin()
	assert.Same(t, r, Builtin())
	assert.Equal(t, []DriverKind{PGX, PQ}, r.Kinds(dialect.Postgres))
	assert.Equal(t, []DriverKind{MySQL}, r.Kinds(dialect.MariaDB))
	assert.Equal(t, []DriverKind{SQLServer}, r.Kinds(dialect.MsSQL))
	assert.Empty(t, r.Kinds(dialect.Oracle))

	_, err := Open(context.Background(), Config{Dialect: "db2", DSN: "x"})
	var uerr *UnknownDriverError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, dialect.DB2, uerr.Dialect)
}

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()
	drv, err := Open(ctx, Config{
		Dialect:      "sqlite3",
		Database:     filepath.Join(t.TempDir(), "app.db"),
		Options:      map[string]string{"_pragma": "foreign_keys(1)"},
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { drv.Close() })
	require.Equal(t, dialect.SQLite, drv.Dialect())

	for _, stmt := range []string{
		"CREATE TABLE users (id INTEGER PRIMARY KEY, email VARCHAR(255) NOT NULL UNIQUE, name TEXT)",
		"CREATE INDEX users_name ON users (name)",
		"CREATE TRIGGER users_audit AFTER INSERT ON users BEGIN SELECT 1; END",
		"CREATE VIEW active_users AS SELECT id FROM users",
	} {
		require.NoError(t, drv.Exec(ctx, stmt, []any{}, nil), stmt)
	}

	insert := sql.Dialect(dialect.SQLite).
		Insert("users").
		Column("email", "a@example.com").
		Column("name", "a")
	_, err = insert.Exec(ctx, drv)
	require.NoError(t, err)
	_, err = insert.Exec(ctx, drv)
	require.Error(t, err)
	assert.True(t, leap.IsConstraintError(err))

	ins, err := schema.NewInspector(drv)
	require.NoError(t, err)
	s, err := schema.Inspect(ctx, ins)
	require.NoError(t, err)
	assert.Equal(t, "main", s.Name)
	users, ok := s.Table("users")
	require.True(t, ok)
	require.Len(t, users.Columns, 3)
	assert.Equal(t, []string{"id"}, users.PrimaryKey())
	email, ok := users.Column("email")
	require.True(t, ok)
	assert.True(t, email.Unique)
	assert.False(t, email.Nullable)
	assert.EqualValues(t, 255, email.Size)
	_, ok = users.Index("users_name")
	assert.True(t, ok)
	require.Len(t, users.Triggers, 1)
	assert.Equal(t, "INSERT", users.Triggers[0].Event)
	assert.Equal(t, "AFTER", users.Triggers[0].Timing)
	require.Len(t, s.Views, 1)
	assert.Equal(t, "active_users", s.Views[0].Name)
}
