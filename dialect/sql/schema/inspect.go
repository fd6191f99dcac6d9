package schema

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/leapdb/leap/dialect"
	"github.com/leapdb/leap/dialect/sql"
)

// Inspector reads the catalog of a database schema.
type Inspector interface {
	// Dialect returns the dialect of the inspected database.
	Dialect() string
	// Tables returns the base tables of the schema, without their columns.
	Tables(context.Context) ([]*Table, error)
	// Views returns the views of the schema.
	Views(context.Context) ([]*View, error)
	// Fields returns the columns of a table in ordinal order.
	Fields(ctx context.Context, table string) ([]*Column, error)
	// Indexes returns the indexes of a table.
	Indexes(ctx context.Context, table string) ([]*Index, error)
	// Triggers returns the triggers defined on a table.
	Triggers(ctx context.Context, table string) ([]*Trigger, error)
}

// InspectorOption configures NewInspector.
type InspectorOption func(*conn)

// WithSchema inspects the named schema (database in MySQL) instead of the
// current one. SQLite ignores it.
func WithSchema(name string) InspectorOption {
	return func(c *conn) {
		c.schema = name
	}
}

// NewInspector returns the Inspector for the driver dialect.
func NewInspector(drv dialect.Driver, opts ...InspectorOption) (Inspector, error) {
	return NewDialectInspector(drv, drv.Dialect(), opts...)
}

// NewDialectInspector returns the Inspector of dialect d running its
// queries on ex. ex may be a transaction.
func NewDialectInspector(ex dialect.ExecQuerier, d string, opts ...InspectorOption) (Inspector, error) {
	name, err := dialect.Parse(d)
	if err != nil {
		return nil, err
	}
	c := &conn{ExecQuerier: ex, dialect: name}
	for _, opt := range opts {
		opt(c)
	}
	switch {
	case dialect.IsMySQLFamily(name):
		return &MySQL{c}, nil
	case name == dialect.Postgres:
		return &Postgres{c}, nil
	case name == dialect.SQLite:
		return &SQLite{c}, nil
	case name == dialect.MsSQL:
		return &MsSQL{c}, nil
	}
	return nil, fmt.Errorf("dialect/sql/schema: inspection is not supported for dialect %q", name)
}

// conn is shared by the dialect inspectors.
type conn struct {
	dialect.ExecQuerier
	dialect string
	schema  string
}

// Dialect implements Inspector.
func (c *conn) Dialect() string { return c.dialect }

func (c *conn) builder() *sql.DialectBuilder { return sql.Dialect(c.dialect) }

// schemaValue returns the schema filter value, or current when no schema
// was configured.
func (c *conn) schemaValue(current string) any {
	if c.schema != "" {
		return c.schema
	}
	return sql.Raw(current)
}

// record is a scanned catalog row.
type record []sql.NullString

func (r record) text(i int) string { return r[i].String }

func (r record) nullable(i int) *string {
	if !r[i].Valid {
		return nil
	}
	s := r[i].String
	return &s
}

func (r record) flag(i int) bool {
	switch strings.ToUpper(strings.TrimSpace(r[i].String)) {
	case "YES", "Y":
		return true
	case "NO", "N", "":
		return false
	}
	b, err := strconv.ParseBool(r[i].String)
	if err != nil {
		n, _ := strconv.ParseInt(r[i].String, 10, 64)
		return n != 0
	}
	return b
}

func (r record) number(i int) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(r[i].String), 10, 64)
	return n
}

// query runs the selector and scans every row as strings.
func (c *conn) query(ctx context.Context, s *sql.Selector) ([]record, error) {
	rows := &sql.Rows{}
	if err := s.Query(ctx, c, rows); err != nil {
		return nil, err
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var records []record
	for rows.Next() {
		r := make(record, len(columns))
		dest := make([]any, len(columns))
		for i := range r {
			dest[i] = &r[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("dialect/sql/schema: scan: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// groupIndexes folds one-row-per-column index records into indexes. The
// record layout is name, column, unique, primary.
func groupIndexes(table string, records []record) []*Index {
	var (
		idxs   []*Index
		byName = make(map[string]*Index)
	)
	for _, r := range records {
		name := r.text(0)
		idx, ok := byName[name]
		if !ok {
			idx = &Index{Name: name, Table: table, Unique: r.flag(2), Primary: r.flag(3)}
			byName[name] = idx
			idxs = append(idxs, idx)
		}
		idx.Columns = append(idx.Columns, r.text(1))
	}
	return idxs
}

// groupTriggers folds one-row-per-event trigger records into triggers. The
// record layout is name, event, timing.
func groupTriggers(table string, records []record) []*Trigger {
	var (
		trs    []*Trigger
		byName = make(map[string]*Trigger)
	)
	for _, r := range records {
		name := r.text(0)
		tr, ok := byName[name]
		if !ok {
			tr = &Trigger{Name: name, Table: table, Event: r.text(1), Timing: r.text(2)}
			byName[name] = tr
			trs = append(trs, tr)
			continue
		}
		tr.Event += " OR " + r.text(1)
	}
	return trs
}

// InspectOption configures Inspect.
type InspectOption func(*inspectConfig)

type inspectConfig struct {
	concurrency int
	tables      []string
	views       bool
	logger      *slog.Logger
}

// WithConcurrency bounds the number of tables inspected at once.
func WithConcurrency(n int) InspectOption {
	return func(c *inspectConfig) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithTables limits the inspection to the named tables.
func WithTables(names ...string) InspectOption {
	return func(c *inspectConfig) {
		c.tables = append(c.tables, names...)
	}
}

// WithoutViews skips loading views.
func WithoutViews() InspectOption {
	return func(c *inspectConfig) {
		c.views = false
	}
}

// WithLogger sets the logger used for inspection progress.
func WithLogger(l *slog.Logger) InspectOption {
	return func(c *inspectConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Inspect loads the tables of the schema with their columns, indexes and
// triggers. Tables are inspected concurrently.
func Inspect(ctx context.Context, ins Inspector, opts ...InspectOption) (*Schema, error) {
	cfg := &inspectConfig{concurrency: 4, views: true, logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	tables, err := ins.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("dialect/sql/schema: list tables: %w", err)
	}
	if len(cfg.tables) > 0 {
		tables = slices.DeleteFunc(tables, func(t *Table) bool {
			return !slices.Contains(cfg.tables, t.Name)
		})
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.concurrency)
	for _, t := range tables {
		g.Go(func() error {
			if err := inspectTable(gctx, ins, t); err != nil {
				return fmt.Errorf("dialect/sql/schema: inspect table %q: %w", t.Name, err)
			}
			cfg.logger.DebugContext(gctx, "table inspected",
				"dialect", ins.Dialect(),
				"table", t.Name,
				"columns", len(t.Columns),
				"indexes", len(t.Indexes),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	s := &Schema{Tables: tables}
	if len(tables) > 0 {
		s.Name = tables[0].Schema
	}
	if cfg.views {
		if s.Views, err = ins.Views(ctx); err != nil {
			return nil, fmt.Errorf("dialect/sql/schema: list views: %w", err)
		}
	}
	return s, nil
}

func inspectTable(ctx context.Context, ins Inspector, t *Table) error {
	var err error
	if t.Columns, err = ins.Fields(ctx, t.Name); err != nil {
		return err
	}
	if t.Indexes, err = ins.Indexes(ctx, t.Name); err != nil {
		return err
	}
	if t.Triggers, err = ins.Triggers(ctx, t.Name); err != nil {
		return err
	}
	markKeys(t)
	return nil
}

// markKeys flags primary key and single-column unique columns from the
// table indexes.
func markKeys(t *Table) {
	for _, idx := range t.Indexes {
		switch {
		case idx.Primary:
			for _, name := range idx.Columns {
				if c, ok := t.Column(name); ok {
					c.PrimaryKey = true
				}
			}
		case idx.Unique && len(idx.Columns) == 1:
			if c, ok := t.Column(idx.Columns[0]); ok {
				c.Unique = true
			}
		}
	}
}
