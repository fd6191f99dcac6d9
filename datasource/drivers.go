package datasource

import (
	"context"
	stdsql "database/sql"

	"github.com/leapdb/leap/dialect"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/microsoft/go-mssqldb"
	_ "modernc.org/sqlite"
)

// opener returns a Factory opening the database/sql driver kind with the
// DSN built for it.
func opener(kind DriverKind) Factory {
	return func(_ context.Context, cfg Config) (*stdsql.DB, error) {
		dsn, err := dsnBuilders[kind](cfg)
		if err != nil {
			return nil, err
		}
		return stdsql.Open(string(kind), dsn)
	}
}

func registerDrivers(r *Registry) {
	for _, d := range []string{dialect.MySQL, dialect.MariaDB, dialect.Drizzle} {
		_ = r.Register(d, MySQL, opener(MySQL))
	}
	_ = r.Register(dialect.Postgres, PQ, opener(PQ))
	_ = r.Register(dialect.Postgres, PGX, opener(PGX))
	_ = r.Register(dialect.SQLite, SQLite, opener(SQLite))
	_ = r.Register(dialect.MsSQL, SQLServer, opener(SQLServer))
}
