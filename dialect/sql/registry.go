package sql

import (
	"sort"
	"sync"

	"github.com/leapdb/leap"
	"github.com/leapdb/leap/dialect"
)

// PrecompilerFactory creates a precompiler that escapes strings with esc.
type PrecompilerFactory func(esc ValueEscaper) Precompiler

var (
	registryMu sync.RWMutex
	registry   = map[string]PrecompilerFactory{
		dialect.MySQL:    mysqlFamily(dialect.MySQL),
		dialect.MariaDB:  mysqlFamily(dialect.MariaDB),
		dialect.Drizzle:  mysqlFamily(dialect.Drizzle),
		dialect.MsSQL:    func(esc ValueEscaper) Precompiler { return NewMsSQLPrecompiler(esc) },
		dialect.Oracle:   func(esc ValueEscaper) Precompiler { return NewOraclePrecompiler(esc) },
		dialect.DB2:      func(esc ValueEscaper) Precompiler { return NewDB2Precompiler(esc) },
		dialect.SQLite:   func(esc ValueEscaper) Precompiler { return NewSQLitePrecompiler(esc) },
		dialect.Postgres: func(esc ValueEscaper) Precompiler { return NewPostgresPrecompiler(esc) },
	}
)

func mysqlFamily(name string) PrecompilerFactory {
	return func(esc ValueEscaper) Precompiler { return NewMySQLPrecompiler(name, esc) }
}

// RegisterPrecompiler adds or replaces the factory of a dialect.
func RegisterPrecompiler(name string, f PrecompilerFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = f
}

// NewPrecompiler returns the precompiler of the named dialect. A nil
// escaper selects the LocalEscaper of the dialect.
func NewPrecompiler(name string, esc ValueEscaper) (Precompiler, error) {
	d, err := dialect.Parse(name)
	if err != nil {
		d = name
	}
	registryMu.RLock()
	f, ok := registry[d]
	registryMu.RUnlock()
	if !ok {
		return nil, leap.NewInvalidArgumentError("NewPrecompiler", name, "no precompiler for dialect")
	}
	if esc == nil {
		esc = NewLocalEscaper(d)
	}
	return f(esc), nil
}

// Precompilers returns the sorted names of the registered dialects.
func Precompilers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
