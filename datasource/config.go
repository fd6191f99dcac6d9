// Package datasource opens leap drivers from declarative configuration.
//
// A Config names a dialect and, optionally, the database/sql driver that
// serves it. Open resolves the pair in a Registry, builds the driver DSN
// and wraps the connection in a *sql.Driver:
//
//	drv, err := datasource.Open(ctx, datasource.Config{
//		Dialect:  "postgres",
//		Host:     "localhost",
//		User:     "app",
//		Database: "app",
//	})
package datasource

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/leapdb/leap/dialect"
)

// DriverKind names a database/sql driver.
type DriverKind string

// Supported driver kinds.
const (
	MySQL     DriverKind = "mysql"     // github.com/go-sql-driver/mysql
	PQ        DriverKind = "postgres"  // github.com/lib/pq
	PGX       DriverKind = "pgx"       // github.com/jackc/pgx/v5/stdlib
	SQLite    DriverKind = "sqlite"    // modernc.org/sqlite
	SQLServer DriverKind = "sqlserver" // github.com/microsoft/go-mssqldb
)

// defaultKinds is the driver used for a dialect when Config.Driver is empty.
var defaultKinds = map[string]DriverKind{
	dialect.MySQL:    MySQL,
	dialect.MariaDB:  MySQL,
	dialect.Drizzle:  MySQL,
	dialect.Postgres: PQ,
	dialect.SQLite:   SQLite,
	dialect.MsSQL:    SQLServer,
}

// Config describes a data source.
type Config struct {
	Dialect string     `koanf:"dialect" yaml:"dialect" json:"dialect"`
	Driver  DriverKind `koanf:"driver" yaml:"driver,omitempty" json:"driver,omitempty"`
	// DSN is passed to the driver as is. When empty, it is built from the
	// connection fields below.
	DSN      string            `koanf:"dsn" yaml:"dsn,omitempty" json:"dsn,omitempty"`
	Host     string            `koanf:"host" yaml:"host,omitempty" json:"host,omitempty"`
	Port     int               `koanf:"port" yaml:"port,omitempty" json:"port,omitempty"`
	User     string            `koanf:"user" yaml:"user,omitempty" json:"user,omitempty"`
	Password string            `koanf:"password" yaml:"password,omitempty" json:"-"`
	Database string            `koanf:"database" yaml:"database,omitempty" json:"database,omitempty"`
	Options  map[string]string `koanf:"options" yaml:"options,omitempty" json:"options,omitempty"`

	MaxOpenConns    int           `koanf:"max_open_conns" yaml:"max_open_conns,omitempty" json:"max_open_conns,omitempty"`
	MaxIdleConns    int           `koanf:"max_idle_conns" yaml:"max_idle_conns,omitempty" json:"max_idle_conns,omitempty"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" yaml:"conn_max_lifetime,omitempty" json:"conn_max_lifetime,omitempty"`
	// SlowThreshold enables query statistics; slower queries are logged.
	SlowThreshold time.Duration `koanf:"slow_threshold" yaml:"slow_threshold,omitempty" json:"slow_threshold,omitempty"`
	// Debug logs every statement.
	Debug bool `koanf:"debug" yaml:"debug,omitempty" json:"debug,omitempty"`
}

// Normalize returns a copy of c with its dialect name canonicalized and
// its driver kind defaulted.
func (c Config) Normalize() (Config, error) {
	d, err := dialect.Parse(c.Dialect)
	if err != nil {
		return c, fmt.Errorf("datasource: %w", err)
	}
	c.Dialect = d
	if c.Driver == "" {
		kind, ok := defaultKinds[d]
		if !ok {
			return c, &UnknownDriverError{Dialect: d}
		}
		c.Driver = kind
	}
	return c, nil
}

// Validate checks that c is complete enough to build a DSN.
func (c Config) Validate() error {
	n, err := c.Normalize()
	if err != nil {
		return err
	}
	switch {
	case n.DSN != "":
	case n.Driver == SQLite && n.Database == "":
		return fmt.Errorf("datasource: sqlite requires a database path or dsn")
	case n.Driver != SQLite && n.Host == "":
		return fmt.Errorf("datasource: %s requires a host or dsn", n.Dialect)
	}
	if n.Port < 0 || n.Port > 65535 {
		return fmt.Errorf("datasource: invalid port %d", n.Port)
	}
	if n.MaxOpenConns < 0 || n.MaxIdleConns < 0 {
		return fmt.Errorf("datasource: connection limits must not be negative")
	}
	return nil
}

func (c Config) addr(port int) string {
	if c.Port != 0 {
		port = c.Port
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}

// mysqlDSN formats a go-sql-driver/mysql DSN.
func mysqlDSN(c Config) (string, error) {
	if c.DSN != "" {
		return c.DSN, nil
	}
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = c.addr(3306)
	mc.DBName = c.Database
	mc.ParseTime = true
	for k, v := range c.Options {
		if mc.Params == nil {
			mc.Params = make(map[string]string)
		}
		mc.Params[k] = v
	}
	return mc.FormatDSN(), nil
}

// urlDSN formats a URL DSN as accepted by lib/pq, pgx and go-mssqldb.
// go-mssqldb takes the database as a query parameter.
func urlDSN(scheme string, port int, dbParam bool) func(Config) (string, error) {
	return func(c Config) (string, error) {
		if c.DSN != "" {
			return c.DSN, nil
		}
		u := &url.URL{Scheme: scheme, Host: c.addr(port)}
		if c.User != "" {
			u.User = url.UserPassword(c.User, c.Password)
		}
		q := url.Values{}
		for k, v := range c.Options {
			q.Set(k, v)
		}
		switch {
		case dbParam && c.Database != "":
			q.Set("database", c.Database)
		case !dbParam:
			u.Path = "/" + c.Database
		}
		if scheme == "postgres" && q.Get("sslmode") == "" {
			q.Set("sslmode", "disable")
		}
		u.RawQuery = q.Encode()
		return u.String(), nil
	}
}

// sqliteDSN formats a modernc.org/sqlite DSN. Options become query
// parameters, e.g. _pragma=foreign_keys(1).
func sqliteDSN(c Config) (string, error) {
	if c.DSN != "" {
		return c.DSN, nil
	}
	if len(c.Options) == 0 {
		return c.Database, nil
	}
	q := url.Values{}
	for k, v := range c.Options {
		q.Set(k, v)
	}
	return "file:" + c.Database + "?" + q.Encode(), nil
}

// Redacted returns the DSN of c with its password masked.
func (c Config) Redacted() string {
	n, err := c.Normalize()
	if err != nil {
		return ""
	}
	if n.Password != "" {
		n.Password = "xxxxx"
	}
	f, ok := dsnBuilders[n.Driver]
	if !ok {
		return ""
	}
	dsn, err := f(n)
	if err != nil {
		return ""
	}
	if n.Driver == MySQL {
		mc, err := mysql.ParseDSN(dsn)
		if err != nil {
			return ""
		}
		if mc.Passwd != "" {
			mc.Passwd = "xxxxx"
		}
		return mc.FormatDSN()
	}
	if u, err := url.Parse(dsn); err == nil && u.User != nil {
		return u.Redacted()
	}
	return dsn
}

var dsnBuilders = map[DriverKind]func(Config) (string, error){
	MySQL:     mysqlDSN,
	PQ:        urlDSN("postgres", 5432, false),
	PGX:       urlDSN("postgres", 5432, false),
	SQLite:    sqliteDSN,
	SQLServer: urlDSN("sqlserver", 1433, true),
}
