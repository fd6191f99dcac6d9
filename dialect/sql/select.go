package sql

import (
	"context"
	"strings"

	"github.com/leapdb/leap"
	"github.com/leapdb/leap/dialect"
)

// Selector is a builder for SELECT statements.
//
//	s := sql.Dialect(dialect.MySQL).Select("id").
//		From("users").
//		Where("email", "=", "x@y.com").
//		Limit(1)
//	query, err := s.Statement(false)
type Selector struct {
	builder
	distinct bool
	columns  []string
	from     string
	joins    []*join
	where    clauses
	groupBy  []string
	having   clauses
	orderBy  []string
	limit    int
	offset   int
	combine  []string
}

// join is one JOIN entry. At most one of on and using is set.
type join struct {
	table string
	on    clauses
	using []string
}

// Distinct sets the DISTINCT flag. Without arguments it enables it,
// otherwise the first argument is coerced with PrepareBoolean.
func (s *Selector) Distinct(v ...any) *Selector {
	if s.err != nil {
		return s
	}
	s.distinct = len(v) == 0 || s.pc.PrepareBoolean(v[0])
	return s
}

// Column appends a column with an optional alias. A column ending with
// "*" is prepared as a wildcard.
func (s *Selector) Column(column any, alias ...string) *Selector {
	if s.err != nil {
		return s
	}
	var (
		col string
		err error
	)
	if str, ok := column.(string); ok && strings.HasSuffix(strings.TrimSpace(str), "*") {
		col = s.pc.PrepareWildcard(str)
	} else if col, err = s.pc.PrepareIdentifier(column); err != nil {
		s.fail(err)
		return s
	}
	if len(alias) > 0 && alias[0] != "" {
		col += " AS " + s.pc.PrepareAlias(alias[0])
	}
	s.columns = append(s.columns, col)
	return s
}

// Columns appends columns without aliases.
func (s *Selector) Columns(columns ...any) *Selector {
	for _, c := range columns {
		s.Column(c)
	}
	return s
}

// From sets the table, or sub-select, to select from.
func (s *Selector) From(table any, alias ...string) *Selector {
	if s.err != nil {
		return s
	}
	t, err := s.pc.PrepareIdentifier(table)
	if err != nil {
		s.fail(err)
		return s
	}
	if len(alias) > 0 && alias[0] != "" {
		t += " AS " + s.pc.PrepareAlias(alias[0])
	}
	s.from = t
	return s
}

// Join appends a join of the given type ("" for a plain JOIN). Its
// constraint is set by a following On or Using call.
func (s *Selector) Join(typ string, table any, alias ...string) *Selector {
	if s.err != nil {
		return s
	}
	kw, err := s.pc.PrepareJoin(typ)
	if err != nil {
		s.fail(err)
		return s
	}
	t, err := s.pc.PrepareIdentifier(table)
	if err != nil {
		s.fail(err)
		return s
	}
	if len(alias) > 0 && alias[0] != "" {
		t += " AS " + s.pc.PrepareAlias(alias[0])
	}
	s.joins = append(s.joins, &join{table: kw + " " + t})
	return s
}

// lastJoin returns the join On and Using apply to.
func (s *Selector) lastJoin(op string) *join {
	if len(s.joins) == 0 {
		s.fail(leap.NewBuildInstructionError(op, "no preceding join"))
		return nil
	}
	return s.joins[len(s.joins)-1]
}

// On adds a "left operator right" constraint to the last join. Both sides
// are identifiers.
func (s *Selector) On(left any, operator string, right any, connector ...string) *Selector {
	if s.err != nil {
		return s
	}
	j := s.lastJoin("On")
	if j == nil {
		return s
	}
	if len(j.using) > 0 {
		s.fail(leap.NewBuildInstructionError("On", "join is already constrained by USING"))
		return s
	}
	c, err := s.connector(connector)
	if err != nil {
		s.fail(err)
		return s
	}
	l, err := s.pc.PrepareIdentifier(left)
	if err != nil {
		s.fail(err)
		return s
	}
	op, err := s.pc.PrepareOperator(operator, Comparison)
	if err != nil {
		s.fail(err)
		return s
	}
	r, err := s.pc.PrepareIdentifier(right)
	if err != nil {
		s.fail(err)
		return s
	}
	j.on = append(j.on, clause{connector: c, fragment: l + " " + op + " " + r})
	return s
}

// Using adds USING columns to the last join.
func (s *Selector) Using(columns ...any) *Selector {
	if s.err != nil {
		return s
	}
	j := s.lastJoin("Using")
	if j == nil {
		return s
	}
	if len(j.on) > 0 {
		s.fail(leap.NewBuildInstructionError("Using", "join is already constrained by ON"))
		return s
	}
	if len(columns) == 0 {
		s.fail(leap.NewInvalidArgumentError("Using", columns, "no columns"))
		return s
	}
	for _, c := range columns {
		col, err := s.pc.PrepareIdentifier(c)
		if err != nil {
			s.fail(err)
			return s
		}
		j.using = append(j.using, col)
	}
	return s
}

// Where appends a predicate to the WHERE clause. The connector defaults
// to AND.
//
//	s.Where("age", ">=", 18).Where("role", "IN", []string{"a", "b"}, "OR")
func (s *Selector) Where(column any, operator string, value any, connector ...string) *Selector {
	if s.err != nil {
		return s
	}
	s.where = s.appendPredicate("Where", s.where, column, operator, value, connector)
	return s
}

// WhereBlock opens or closes a parenthesized group in the WHERE clause.
func (s *Selector) WhereBlock(paren string, connector ...string) *Selector {
	if s.err != nil {
		return s
	}
	s.where = s.appendBlock(s.where, paren, connector)
	return s
}

// GroupBy appends GROUP BY expressions.
func (s *Selector) GroupBy(columns ...any) *Selector {
	if s.err != nil {
		return s
	}
	for _, c := range columns {
		col, err := s.pc.PrepareIdentifier(c)
		if err != nil {
			s.fail(err)
			return s
		}
		s.groupBy = append(s.groupBy, col)
	}
	return s
}

// Having appends a predicate to the HAVING clause. It requires GroupBy.
func (s *Selector) Having(column any, operator string, value any, connector ...string) *Selector {
	if s.err != nil {
		return s
	}
	if len(s.groupBy) == 0 {
		s.fail(leap.NewBuildInstructionError("Having", "HAVING requires a GROUP BY clause"))
		return s
	}
	s.having = s.appendPredicate("Having", s.having, column, operator, value, connector)
	return s
}

// HavingBlock opens or closes a parenthesized group in the HAVING clause.
func (s *Selector) HavingBlock(paren string, connector ...string) *Selector {
	if s.err != nil {
		return s
	}
	if len(s.groupBy) == 0 {
		s.fail(leap.NewBuildInstructionError("HavingBlock", "HAVING requires a GROUP BY clause"))
		return s
	}
	s.having = s.appendBlock(s.having, paren, connector)
	return s
}

// OrderBy appends an ORDER BY term. nulls is FIRST, LAST or DEFAULT.
func (s *Selector) OrderBy(column any, direction string, nulls ...string) *Selector {
	if s.err != nil {
		return s
	}
	o, err := s.ordering(column, direction, nulls)
	if err != nil {
		s.fail(err)
		return s
	}
	s.orderBy = append(s.orderBy, o)
	return s
}

// Limit sets the row limit. 0 means unbounded.
func (s *Selector) Limit(v any) *Selector {
	if s.err != nil {
		return s
	}
	s.limit = s.pc.PrepareNatural(v)
	return s
}

// Offset sets the number of rows to skip.
func (s *Selector) Offset(v any) *Selector {
	if s.err != nil {
		return s
	}
	s.offset = s.pc.PrepareNatural(v)
	return s
}

// Combine appends a set operation (UNION, INTERSECT, ...). The statement
// is a *Selector, an *Expression or a string starting with SELECT.
func (s *Selector) Combine(operator string, statement any) *Selector {
	if s.err != nil {
		return s
	}
	op, err := s.pc.PrepareOperator(operator, Set)
	if err != nil {
		s.fail(err)
		return s
	}
	var text string
	switch v := statement.(type) {
	case string:
		v = strings.TrimSpace(v)
		if !isSelect(v) {
			s.fail(leap.NewBuildInstructionError("Combine", "statement is not a SELECT"))
			return s
		}
		text = strings.TrimRight(v, "; \t\r\n")
	case *Selector:
		text, err = v.Statement(false)
	case *Expression:
		text, err = v.Value(s.pc)
	default:
		err = leap.NewInvalidArgumentError("Combine", statement, "expected a SELECT statement")
	}
	if err != nil {
		s.fail(err)
		return s
	}
	s.combine = append(s.combine, op+" "+text)
	return s
}

// Filter applies predicate functions to the selector.
func (s *Selector) Filter(preds ...func(*Selector)) *Selector {
	for _, p := range preds {
		if s.err != nil {
			return s
		}
		p(s)
	}
	return s
}

// Statement implements Statement.
func (s *Selector) Statement(terminate bool) (string, error) {
	if err := s.poisoned("Statement"); err != nil {
		return "", err
	}
	if err := s.where.check("WhereBlock"); err != nil {
		return "", err
	}
	if err := s.having.check("HavingBlock"); err != nil {
		return "", err
	}
	prefix, suffix := s.pc.PrepareLimit(s.limit, s.offset, len(s.orderBy) > 0)
	// OFFSET ... ROWS and FETCH ... ROWS ONLY end a query expression and
	// cannot precede a set operator.
	if len(s.combine) > 0 && (strings.HasSuffix(suffix, " ROWS") || strings.HasSuffix(suffix, " ROWS ONLY")) {
		return "", leap.NewBuildInstructionError("Combine", "paging with "+s.pc.Dialect()+" OFFSET/FETCH cannot be combined with a set operator")
	}
	var b strings.Builder
	b.WriteString("SELECT ")
	if s.distinct {
		b.WriteString("DISTINCT ")
	}
	if prefix != "" {
		b.WriteString(prefix + " ")
	}
	if len(s.columns) == 0 {
		b.WriteString("*")
	} else {
		b.WriteString(strings.Join(s.columns, ", "))
	}
	if s.from != "" {
		b.WriteString(" FROM " + s.from)
	}
	for _, j := range s.joins {
		b.WriteString(" " + j.table)
		switch {
		case len(j.on) > 0:
			b.WriteString(" ON " + j.on.String())
		case len(j.using) > 0:
			b.WriteString(" USING (" + strings.Join(j.using, ", ") + ")")
		}
	}
	if len(s.where) > 0 {
		b.WriteString(" WHERE " + s.where.String())
	}
	if len(s.groupBy) > 0 {
		b.WriteString(" GROUP BY " + strings.Join(s.groupBy, ", "))
	}
	if len(s.having) > 0 {
		b.WriteString(" HAVING " + s.having.String())
	}
	if len(s.orderBy) > 0 {
		b.WriteString(" ORDER BY " + strings.Join(s.orderBy, ", "))
	}
	if suffix != "" {
		b.WriteString(" " + suffix)
	}
	for _, c := range s.combine {
		b.WriteString(" " + c)
	}
	if terminate {
		b.WriteString(";")
	}
	return b.String(), nil
}

// String returns the statement, or an empty string if the builder failed.
func (s *Selector) String() string {
	q, err := s.Statement(false)
	if err != nil {
		return ""
	}
	return q
}

// Query renders the statement and executes it, scanning into rows.
func (s *Selector) Query(ctx context.Context, ex dialect.ExecQuerier, rows *Rows) error {
	q, err := s.Statement(false)
	if err != nil {
		return err
	}
	return ex.Query(ctx, q, []any{}, rows)
}

var _ Statement = (*Selector)(nil)
