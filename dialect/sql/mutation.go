package sql

import (
	"context"
	"slices"
	"strings"

	"github.com/leapdb/leap"
	"github.com/leapdb/leap/dialect"
)

// InsertBuilder is a builder for INSERT statements.
type InsertBuilder struct {
	builder
	table   string
	names   []string // raw column names, in order
	columns []string
	rows    [][]string
}

// Column adds a column and its value to a single-row insert.
func (i *InsertBuilder) Column(column string, value any) *InsertBuilder {
	if i.err != nil {
		return i
	}
	if len(i.rows) > 1 {
		i.fail(leap.NewBuildInstructionError("Column", "cannot add a column to a multi-row insert"))
		return i
	}
	if slices.Contains(i.names, column) {
		i.fail(leap.NewBuildInstructionError("Column", "duplicate column "+column))
		return i
	}
	col, err := i.pc.PrepareIdentifier(column)
	if err != nil {
		i.fail(err)
		return i
	}
	v, err := i.pc.PrepareValue(value)
	if err != nil {
		i.fail(err)
		return i
	}
	if len(i.rows) == 0 {
		i.rows = append(i.rows, nil)
	}
	i.names = append(i.names, column)
	i.columns = append(i.columns, col)
	i.rows[0] = append(i.rows[0], v)
	return i
}

// Row appends a row. The first row fixes the column set, sorted by name;
// every later row must carry exactly the same columns.
func (i *InsertBuilder) Row(values map[string]any) *InsertBuilder {
	if i.err != nil {
		return i
	}
	if len(values) == 0 {
		i.fail(leap.NewInvalidArgumentError("Row", values, "empty row"))
		return i
	}
	if len(i.names) == 0 {
		names := make([]string, 0, len(values))
		for k := range values {
			names = append(names, k)
		}
		slices.Sort(names)
		for _, n := range names {
			col, err := i.pc.PrepareIdentifier(n)
			if err != nil {
				i.fail(err)
				return i
			}
			i.columns = append(i.columns, col)
		}
		i.names = names
	} else if len(values) != len(i.names) {
		i.fail(leap.NewBuildInstructionError("Row", "row columns differ from the insert columns"))
		return i
	}
	row := make([]string, len(i.names))
	for j, n := range i.names {
		v, ok := values[n]
		if !ok {
			i.fail(leap.NewBuildInstructionError("Row", "row is missing column "+n))
			return i
		}
		s, err := i.pc.PrepareValue(v)
		if err != nil {
			i.fail(err)
			return i
		}
		row[j] = s
	}
	i.rows = append(i.rows, row)
	return i
}

// Statement implements Statement.
func (i *InsertBuilder) Statement(terminate bool) (string, error) {
	if err := i.poisoned("Statement"); err != nil {
		return "", err
	}
	if len(i.columns) == 0 {
		return "", leap.NewBuildInstructionError("Statement", "insert has no columns")
	}
	var b strings.Builder
	b.WriteString("INSERT INTO " + i.table + " (" + strings.Join(i.columns, ", ") + ") VALUES ")
	for j, row := range i.rows {
		if j > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(" + strings.Join(row, ", ") + ")")
	}
	if terminate {
		b.WriteString(";")
	}
	return b.String(), nil
}

// Exec renders and executes the statement.
func (i *InsertBuilder) Exec(ctx context.Context, ex dialect.ExecQuerier) (Result, error) {
	return exec(ctx, ex, i)
}

// filter holds the WHERE, ORDER BY and row limit of UPDATE and DELETE.
type filter struct {
	where   clauses
	orderBy []string
	prefix  string
	suffix  string
}

func (b *builder) mutationOrder(f *filter, column any, direction string, nulls []string) {
	if !dialect.IsMySQLFamily(b.pc.Dialect()) {
		b.fail(leap.NewBuildInstructionError("OrderBy", "ORDER BY on UPDATE and DELETE is not supported by "+b.pc.Dialect()))
		return
	}
	o, err := b.ordering(column, direction, nulls)
	if err != nil {
		b.fail(err)
		return
	}
	f.orderBy = append(f.orderBy, o)
}

func (b *builder) mutationLimit(f *filter, v any) {
	n := b.pc.PrepareNatural(v)
	if n == 0 {
		f.prefix, f.suffix = "", ""
		return
	}
	prefix, suffix, err := b.pc.PrepareMutationLimit(n)
	if err != nil {
		b.fail(err)
		return
	}
	f.prefix, f.suffix = prefix, suffix
}

func (f *filter) check() error { return f.where.check("WhereBlock") }

func (f *filter) render(b *strings.Builder) {
	if len(f.where) > 0 {
		b.WriteString(" WHERE " + f.where.String())
	}
	if len(f.orderBy) > 0 {
		b.WriteString(" ORDER BY " + strings.Join(f.orderBy, ", "))
	}
	if f.suffix != "" {
		b.WriteString(" " + f.suffix)
	}
}

// UpdateBuilder is a builder for UPDATE statements.
type UpdateBuilder struct {
	builder
	filter
	table string
	sets  []string
}

// Set adds a "column = value" assignment.
func (u *UpdateBuilder) Set(column any, value any) *UpdateBuilder {
	if u.err != nil {
		return u
	}
	col, err := u.pc.PrepareIdentifier(column)
	if err != nil {
		u.fail(err)
		return u
	}
	v, err := u.pc.PrepareValue(value)
	if err != nil {
		u.fail(err)
		return u
	}
	u.sets = append(u.sets, col+" = "+v)
	return u
}

// Where appends a predicate to the WHERE clause.
func (u *UpdateBuilder) Where(column any, operator string, value any, connector ...string) *UpdateBuilder {
	if u.err != nil {
		return u
	}
	u.where = u.appendPredicate("Where", u.where, column, operator, value, connector)
	return u
}

// WhereBlock opens or closes a parenthesized group in the WHERE clause.
func (u *UpdateBuilder) WhereBlock(paren string, connector ...string) *UpdateBuilder {
	if u.err != nil {
		return u
	}
	u.where = u.appendBlock(u.where, paren, connector)
	return u
}

// OrderBy appends an ORDER BY term. Only the MySQL family supports it.
func (u *UpdateBuilder) OrderBy(column any, direction string, nulls ...string) *UpdateBuilder {
	if u.err != nil {
		return u
	}
	u.mutationOrder(&u.filter, column, direction, nulls)
	return u
}

// Limit bounds the number of updated rows.
func (u *UpdateBuilder) Limit(v any) *UpdateBuilder {
	if u.err != nil {
		return u
	}
	u.mutationLimit(&u.filter, v)
	return u
}

// Statement implements Statement.
func (u *UpdateBuilder) Statement(terminate bool) (string, error) {
	if err := u.poisoned("Statement"); err != nil {
		return "", err
	}
	if len(u.sets) == 0 {
		return "", leap.NewBuildInstructionError("Statement", "update has no assignments")
	}
	if err := u.check(); err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("UPDATE ")
	if u.prefix != "" {
		b.WriteString(u.prefix + " ")
	}
	b.WriteString(u.table + " SET " + strings.Join(u.sets, ", "))
	u.render(&b)
	if terminate {
		b.WriteString(";")
	}
	return b.String(), nil
}

// Exec renders and executes the statement.
func (u *UpdateBuilder) Exec(ctx context.Context, ex dialect.ExecQuerier) (Result, error) {
	return exec(ctx, ex, u)
}

// DeleteBuilder is a builder for DELETE statements.
type DeleteBuilder struct {
	builder
	filter
	table string
}

// Where appends a predicate to the WHERE clause.
func (d *DeleteBuilder) Where(column any, operator string, value any, connector ...string) *DeleteBuilder {
	if d.err != nil {
		return d
	}
	d.where = d.appendPredicate("Where", d.where, column, operator, value, connector)
	return d
}

// WhereBlock opens or closes a parenthesized group in the WHERE clause.
func (d *DeleteBuilder) WhereBlock(paren string, connector ...string) *DeleteBuilder {
	if d.err != nil {
		return d
	}
	d.where = d.appendBlock(d.where, paren, connector)
	return d
}

// OrderBy appends an ORDER BY term. Only the MySQL family supports it.
func (d *DeleteBuilder) OrderBy(column any, direction string, nulls ...string) *DeleteBuilder {
	if d.err != nil {
		return d
	}
	d.mutationOrder(&d.filter, column, direction, nulls)
	return d
}

// Limit bounds the number of deleted rows.
func (d *DeleteBuilder) Limit(v any) *DeleteBuilder {
	if d.err != nil {
		return d
	}
	d.mutationLimit(&d.filter, v)
	return d
}

// Statement implements Statement.
func (d *DeleteBuilder) Statement(terminate bool) (string, error) {
	if err := d.poisoned("Statement"); err != nil {
		return "", err
	}
	if err := d.check(); err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("DELETE ")
	if d.prefix != "" {
		b.WriteString(d.prefix + " ")
	}
	b.WriteString("FROM " + d.table)
	d.render(&b)
	if terminate {
		b.WriteString(";")
	}
	return b.String(), nil
}

// Exec renders and executes the statement.
func (d *DeleteBuilder) Exec(ctx context.Context, ex dialect.ExecQuerier) (Result, error) {
	return exec(ctx, ex, d)
}

func exec(ctx context.Context, ex dialect.ExecQuerier, s Statement) (Result, error) {
	q, err := s.Statement(false)
	if err != nil {
		return nil, err
	}
	var res Result
	if err := ex.Exec(ctx, q, []any{}, &res); err != nil {
		return nil, err
	}
	return res, nil
}

var (
	_ Statement = (*InsertBuilder)(nil)
	_ Statement = (*UpdateBuilder)(nil)
	_ Statement = (*DeleteBuilder)(nil)
)
