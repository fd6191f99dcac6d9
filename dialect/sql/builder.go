package sql

import (
	"reflect"
	"strings"

	"github.com/leapdb/leap"
)

// Statement is implemented by the statement builders.
type Statement interface {
	// Statement renders the SQL text, with a trailing semicolon if
	// terminate is set.
	Statement(terminate bool) (string, error)
}

// DialectBuilder creates statement builders bound to one precompiler.
type DialectBuilder struct {
	pc  Precompiler
	err error
}

// Dialect returns a DialectBuilder for the named dialect using the
// connection-free LocalEscaper. An unknown dialect poisons every builder
// created from it.
//
//	sql.Dialect(dialect.Postgres).Select("id").From("users")
func Dialect(name string) *DialectBuilder {
	pc, err := NewPrecompiler(name, nil)
	return &DialectBuilder{pc: pc, err: err}
}

// For returns a DialectBuilder for the given precompiler.
func For(pc Precompiler) *DialectBuilder {
	if pc == nil {
		return &DialectBuilder{err: leap.NewInvalidArgumentError("For", nil, "nil precompiler")}
	}
	return &DialectBuilder{pc: pc}
}

// Precompiler returns the precompiler of the builder.
func (d *DialectBuilder) Precompiler() Precompiler { return d.pc }

func (d *DialectBuilder) builder() builder {
	return builder{pc: d.pc, err: d.err}
}

// Select returns a Selector for the given columns.
func (d *DialectBuilder) Select(columns ...any) *Selector {
	s := &Selector{builder: d.builder()}
	return s.Columns(columns...)
}

// Insert returns an InsertBuilder for table.
func (d *DialectBuilder) Insert(table any) *InsertBuilder {
	i := &InsertBuilder{builder: d.builder()}
	if i.err == nil {
		i.table, i.err = i.pc.PrepareIdentifier(table)
	}
	return i
}

// Update returns an UpdateBuilder for table.
func (d *DialectBuilder) Update(table any) *UpdateBuilder {
	u := &UpdateBuilder{builder: d.builder()}
	if u.err == nil {
		u.table, u.err = u.pc.PrepareIdentifier(table)
	}
	return u
}

// Delete returns a DeleteBuilder for table.
func (d *DialectBuilder) Delete(table any) *DeleteBuilder {
	del := &DeleteBuilder{builder: d.builder()}
	if del.err == nil {
		del.table, del.err = del.pc.PrepareIdentifier(table)
	}
	return del
}

// builder holds the state shared by all statement builders. The first
// error poisons the builder: later calls are no-ops and Statement reports
// the error.
type builder struct {
	pc   Precompiler
	err  error
	conn string // default connector, set by Or
}

// Err returns the first error recorded by the builder.
func (b *builder) Err() error { return b.err }

func (b *builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *builder) poisoned(op string) error {
	if b.err == nil {
		return nil
	}
	return &leap.PoisonedError{Op: op, Err: b.err}
}

func (b *builder) connector(conn []string) (string, error) {
	if len(conn) > 0 {
		return b.pc.PrepareConnector(conn[0])
	}
	if b.conn != "" {
		return b.conn, nil
	}
	return "AND", nil
}

// predicate lowers "column operator value".
func (b *builder) predicate(op string, column any, operator string, value any) (string, error) {
	col, err := b.pc.PrepareIdentifier(column)
	if err != nil {
		return "", err
	}
	opr, err := b.pc.PrepareOperator(operator, Comparison)
	if err != nil {
		return "", err
	}
	switch opr {
	case "BETWEEN", "NOT BETWEEN":
		rv := reflect.ValueOf(value)
		if (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) || rv.Len() != 2 {
			return "", leap.NewInvalidArgumentError(op, value, opr+" requires a pair of values")
		}
		lo, err := b.pc.PrepareValue(rv.Index(0).Interface())
		if err != nil {
			return "", err
		}
		hi, err := b.pc.PrepareValue(rv.Index(1).Interface())
		if err != nil {
			return "", err
		}
		return col + " " + opr + " " + lo + " AND " + hi, nil
	case "IN", "NOT IN":
		list, err := b.list(op, opr, value)
		if err != nil {
			return "", err
		}
		return col + " " + opr + " " + list, nil
	}
	if isNull(value) {
		switch opr {
		case "=":
			opr = "IS"
		case "!=", "<>":
			opr = "IS NOT"
		}
	}
	v, err := b.pc.PrepareValue(value)
	if err != nil {
		return "", err
	}
	return col + " " + opr + " " + v, nil
}

// list renders the right operand of IN and NOT IN.
func (b *builder) list(op, opr string, value any) (string, error) {
	switch v := value.(type) {
	case Statement:
		return b.pc.PrepareValue(v)
	case *Expression:
		s, err := v.Value(b.pc)
		if err != nil {
			return "", err
		}
		if !strings.HasPrefix(strings.TrimSpace(s), "(") {
			s = "(" + s + ")"
		}
		return s, nil
	case []byte:
		return "", leap.NewInvalidArgumentError(op, value, opr+" requires a list of values")
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return "", leap.NewInvalidArgumentError(op, value, opr+" requires a list of values")
	}
	if rv.Len() == 0 {
		return "", leap.NewInvalidArgumentError(op, value, opr+" requires a non-empty list")
	}
	return b.pc.PrepareValue(value)
}

func isNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// appendPredicate lowers a predicate and appends it to cs.
func (b *builder) appendPredicate(op string, cs clauses, column any, operator string, value any, conn []string) clauses {
	c, err := b.connector(conn)
	if err != nil {
		b.fail(err)
		return cs
	}
	frag, err := b.predicate(op, column, operator, value)
	if err != nil {
		b.fail(err)
		return cs
	}
	return append(cs, clause{connector: c, fragment: frag})
}

// appendBlock appends a grouping parenthesis to cs.
func (b *builder) appendBlock(cs clauses, paren string, conn []string) clauses {
	c, err := b.connector(conn)
	if err != nil {
		b.fail(err)
		return cs
	}
	p, err := b.pc.PrepareParenthesis(paren)
	if err != nil {
		b.fail(err)
		return cs
	}
	return append(cs, clause{connector: c, fragment: p})
}

// ordering lowers an ORDER BY term.
func (b *builder) ordering(column any, direction string, nulls []string) (string, error) {
	n := ""
	if len(nulls) > 0 {
		n = nulls[0]
	}
	return b.pc.PrepareOrdering(column, direction, n)
}

// clause is one entry of a WHERE, HAVING or ON list. The fragment is a
// prepared predicate or a single parenthesis.
type clause struct {
	connector string
	fragment  string
}

type clauses []clause

// check reports an error if the blocks opened by op are not all closed, or
// are closed before they are opened.
func (cs clauses) check(op string) error {
	depth := 0
	for _, c := range cs {
		switch c.fragment {
		case "(":
			depth++
		case ")":
			depth--
		}
		if depth < 0 {
			return leap.NewBuildInstructionError(op, "block closed without a matching open")
		}
	}
	if depth > 0 {
		return leap.NewBuildInstructionError(op, "block opened without a matching close")
	}
	return nil
}

// String renders the list. The first connector and connectors following
// "(" are dropped; ")" attaches without a connector.
func (cs clauses) String() string {
	var b strings.Builder
	afterOpen := true
	for _, c := range cs {
		switch {
		case c.fragment == ")":
			b.WriteString(")")
		case afterOpen:
			b.WriteString(c.fragment)
		default:
			b.WriteString(" " + c.connector + " " + c.fragment)
		}
		afterOpen = c.fragment == "("
	}
	return b.String()
}
