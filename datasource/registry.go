package datasource

import (
	"context"
	stdsql "database/sql"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/leapdb/leap/dialect"
	"github.com/leapdb/leap/dialect/sql"
)

// Factory opens a database for a normalized Config.
type Factory func(ctx context.Context, cfg Config) (*stdsql.DB, error)

type key struct {
	dialect string
	kind    DriverKind
}

// Registry maps (dialect, driver kind) pairs to factories. It is safe for
// concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[key]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[key]Factory)}
}

// Register adds or replaces the factory of a dialect and driver kind.
func (r *Registry) Register(d string, kind DriverKind, f Factory) error {
	name, err := dialect.Parse(d)
	if err != nil {
		return fmt.Errorf("datasource: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[key{name, kind}] = f
	return nil
}

// Lookup returns the factory of a dialect and driver kind.
func (r *Registry) Lookup(d string, kind DriverKind) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[key{d, kind}]
	return f, ok
}

// Kinds returns the sorted driver kinds registered for a dialect.
func (r *Registry) Kinds(d string) []DriverKind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var kinds []DriverKind
	for k := range r.factories {
		if k.dialect == d {
			kinds = append(kinds, k.kind)
		}
	}
	slices.Sort(kinds)
	return kinds
}

// UnknownDriverError is returned when no factory serves a dialect and
// driver kind.
type UnknownDriverError struct {
	Dialect   string
	Driver    DriverKind
	Available []DriverKind
}

func (e *UnknownDriverError) Error() string {
	if e.Driver == "" {
		return fmt.Sprintf("datasource: no driver available for dialect %q", e.Dialect)
	}
	return fmt.Sprintf("datasource: driver %q is not available for dialect %q (available: %v)", e.Driver, e.Dialect, e.Available)
}

// OpenOption configures Open.
type OpenOption func(*openConfig)

type openConfig struct {
	logger *slog.Logger
	ping   bool
}

// WithLogger sets the logger of the debug and slow query logs.
func WithLogger(l *slog.Logger) OpenOption {
	return func(c *openConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithoutPing skips the connectivity check of Open.
func WithoutPing() OpenOption {
	return func(c *openConfig) {
		c.ping = false
	}
}

// Open opens cfg through the registry. The returned driver is a
// *sql.DebugDriver when cfg.Debug is set, a *sql.StatsDriver when
// cfg.SlowThreshold is set, and a *sql.Driver otherwise.
func (r *Registry) Open(ctx context.Context, cfg Config, opts ...OpenOption) (dialect.Driver, error) {
	oc := &openConfig{logger: slog.Default(), ping: true}
	for _, opt := range opts {
		opt(oc)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}
	f, ok := r.Lookup(cfg.Dialect, cfg.Driver)
	if !ok {
		return nil, &UnknownDriverError{Dialect: cfg.Dialect, Driver: cfg.Driver, Available: r.Kinds(cfg.Dialect)}
	}
	db, err := f(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("datasource: open %s: %w", cfg.Dialect, err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if oc.ping {
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("datasource: ping %s: %w", cfg.Dialect, err)
		}
	}
	oc.logger.DebugContext(ctx, "data source opened", "dialect", cfg.Dialect, "driver", cfg.Driver, "dsn", cfg.Redacted())
	drv := sql.OpenDB(cfg.Dialect, db)
	switch {
	case cfg.Debug:
		return sql.NewDebugDriver(drv, oc.logger), nil
	case cfg.SlowThreshold > 0:
		return sql.NewStatsDriver(drv, sql.WithSlowThreshold(cfg.SlowThreshold), sql.WithSlowQueryLog(oc.logger)), nil
	}
	return drv, nil
}

var (
	builtinOnce sync.Once
	builtin     *Registry
)

// Builtin returns the registry of the drivers linked into leap.
func Builtin() *Registry {
	builtinOnce.Do(func() {
		builtin = NewRegistry()
		registerDrivers(builtin)
	})
	return builtin
}

// Open opens cfg through the Builtin registry.
func Open(ctx context.Context, cfg Config, opts ...OpenOption) (dialect.Driver, error) {
	return Builtin().Open(ctx, cfg, opts...)
}
