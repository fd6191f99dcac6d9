package sql

import (
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/leapdb/leap"
)

// OperatorGroup selects the whitelist an operator is validated against.
type OperatorGroup string

// Operator groups.
const (
	Comparison OperatorGroup = "COMPARISON"
	Set        OperatorGroup = "SET"
)

// Ordering directions and NULL placements accepted by PrepareOrdering.
const (
	OrderAsc  = "ASC"
	OrderDesc = "DESC"

	NullsFirst   = "FIRST"
	NullsLast    = "LAST"
	NullsDefault = "DEFAULT"
)

// Precompiler lowers user supplied identifiers, values and keywords into
// SQL fragments that are legal for one dialect. Implementations are
// immutable and safe for concurrent use.
type Precompiler interface {
	// Dialect returns the dialect name.
	Dialect() string
	// Quote wraps a single identifier segment in the dialect quote pair
	// after stripping every character outside [A-Za-z0-9$_ ].
	Quote(segment string) string
	// PrepareAlias sanitizes and quotes an alias.
	PrepareAlias(alias string) string
	// PrepareIdentifier quotes a dotted identifier, or parenthesizes a
	// sub-select. Accepted types are string, Statement and *Expression.
	PrepareIdentifier(v any) (string, error)
	// PrepareValue renders v as a SQL literal.
	PrepareValue(v any) (string, error)
	// PrepareOperator validates op against the group whitelist and returns
	// its canonical spelling.
	PrepareOperator(op string, group OperatorGroup) (string, error)
	// PrepareJoin validates a join type and returns it with the JOIN keyword.
	// APPLY operators are returned as is.
	PrepareJoin(typ string) (string, error)
	// PrepareOrdering renders an ORDER BY term.
	PrepareOrdering(column any, direction, nulls string) (string, error)
	// PrepareParenthesis accepts exactly "(" or ")".
	PrepareParenthesis(p string) (string, error)
	// PrepareWildcard quotes a dotted identifier and terminates it with "*".
	PrepareWildcard(s string) string
	// PrepareNatural coerces v to a non-negative integer. It never fails.
	PrepareNatural(v any) int
	// PrepareBoolean coerces v to a bool. It never fails.
	PrepareBoolean(v any) bool
	// PrepareConnector validates AND/OR.
	PrepareConnector(c string) (string, error)
	// IsKeyword reports whether word is reserved in the dialect.
	IsKeyword(word string) bool
	// Keywords returns the sorted reserved word table.
	Keywords() []string
	// PrepareLimit renders SELECT paging. The prefix is placed right after
	// SELECT [DISTINCT]; the suffix follows the ORDER BY clause.
	PrepareLimit(limit, offset int, ordered bool) (prefix, suffix string)
	// PrepareMutationLimit renders a row limit for UPDATE and DELETE.
	PrepareMutationLimit(limit int) (prefix, suffix string, err error)
}

// rules are the per-dialect tables a precompiler validates against.
type rules struct {
	dialect     string
	open, close string
	notEqual    string
	nativeNulls bool
	comparison  map[string]struct{}
	set         map[string]struct{}
	joins       map[string]struct{}
	keywords    map[string]struct{}
}

func words(ws ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(ws))
	for _, w := range ws {
		m[w] = struct{}{}
	}
	return m
}

func merge(ms ...map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for _, m := range ms {
		for k := range m {
			out[k] = struct{}{}
		}
	}
	return out
}

var (
	standardComparison = words(
		"=", "!=", "<>", "<", "<=", ">", ">=",
		"BETWEEN", "NOT BETWEEN", "IN", "NOT IN",
		"LIKE", "NOT LIKE", "IS", "IS NOT",
	)
	standardSet   = words("UNION", "UNION ALL", "INTERSECT", "EXCEPT")
	standardJoins = words(
		"CROSS", "INNER", "LEFT", "LEFT OUTER", "RIGHT", "RIGHT OUTER",
		"FULL", "FULL OUTER",
	)
	naturalJoins = words(
		"NATURAL", "NATURAL INNER", "NATURAL LEFT", "NATURAL LEFT OUTER",
		"NATURAL RIGHT", "NATURAL RIGHT OUTER",
	)
)

// precompiler implements every dialect-independent part of Precompiler.
// Dialect types embed it and add paging.
type precompiler struct {
	*rules
	esc ValueEscaper
}

// normalize uppercases a keyword and collapses inner whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}

func (p *precompiler) Dialect() string { return p.dialect }

func (p *precompiler) Quote(segment string) string {
	return p.open + sanitize(strings.TrimSpace(segment)) + p.close
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
			return r
		case r == '$' || r == '_' || r == ' ':
			return r
		}
		return -1
	}, s)
}

func (p *precompiler) PrepareAlias(alias string) string { return p.Quote(alias) }

func (p *precompiler) PrepareIdentifier(v any) (string, error) {
	switch v := v.(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return "", leap.NewInvalidArgumentError("PrepareIdentifier", v, "empty identifier")
		}
		if isSelect(s) {
			return "(" + strings.TrimRight(s, "; \t\r\n") + ")", nil
		}
		segments := strings.Split(s, ".")
		for i, seg := range segments {
			if strings.TrimSpace(seg) == "*" {
				segments[i] = "*"
				continue
			}
			segments[i] = p.Quote(seg)
		}
		return strings.Join(segments, "."), nil
	case *Expression:
		return v.Value(p)
	case Statement:
		s, err := v.Statement(false)
		if err != nil {
			return "", err
		}
		return "(" + s + ")", nil
	default:
		return "", leap.NewInvalidArgumentError("PrepareIdentifier", v, "expected string, statement or expression")
	}
}

// isSelect reports whether s starts with the SELECT keyword.
func isSelect(s string) bool {
	if len(s) < 6 || !strings.EqualFold(s[:6], "SELECT") {
		return false
	}
	return len(s) == 6 || strings.IndexByte(" \t\r\n(*", s[6]) >= 0
}

func (p *precompiler) PrepareOperator(op string, group OperatorGroup) (string, error) {
	o := normalize(op)
	var allowed map[string]struct{}
	switch OperatorGroup(normalize(string(group))) {
	case Comparison:
		allowed = p.comparison
	case Set:
		allowed = p.set
	default:
		return "", leap.NewInvalidArgumentError("PrepareOperator", group, "unknown operator group")
	}
	if _, ok := allowed[o]; !ok {
		return "", leap.NewInvalidArgumentError("PrepareOperator", op, "operator not allowed in "+p.dialect)
	}
	if o == "!=" || o == "<>" {
		return p.notEqual, nil
	}
	return o, nil
}

func (p *precompiler) PrepareJoin(typ string) (string, error) {
	t := normalize(typ)
	if t == "STRAIGHT_JOIN" {
		t = "STRAIGHT"
	}
	t = strings.TrimSpace(strings.TrimSuffix(t, "JOIN"))
	if t == "" {
		return "JOIN", nil
	}
	if _, ok := p.joins[t]; !ok {
		return "", leap.NewInvalidArgumentError("PrepareJoin", typ, "join type not allowed in "+p.dialect)
	}
	switch {
	case strings.HasSuffix(t, "APPLY"):
		return t, nil
	case t == "STRAIGHT":
		return "STRAIGHT_JOIN", nil
	}
	return t + " JOIN", nil
}

func (p *precompiler) PrepareOrdering(column any, direction, nulls string) (string, error) {
	col, err := p.PrepareIdentifier(column)
	if err != nil {
		return "", err
	}
	dir := normalize(direction)
	switch dir {
	case "":
		dir = OrderAsc
	case OrderAsc, OrderDesc:
	default:
		return "", leap.NewInvalidArgumentError("PrepareOrdering", direction, "expected ASC or DESC")
	}
	n := normalize(nulls)
	switch n {
	case "", NullsDefault:
		return col + " " + dir, nil
	case NullsFirst, NullsLast:
	default:
		return "", leap.NewInvalidArgumentError("PrepareOrdering", nulls, "expected FIRST, LAST or DEFAULT")
	}
	if p.nativeNulls {
		return col + " " + dir + " NULLS " + n, nil
	}
	if n == NullsFirst {
		return "CASE WHEN " + col + " IS NULL THEN 0 ELSE 1 END, " + col + " " + dir, nil
	}
	return "CASE WHEN " + col + " IS NULL THEN 1 ELSE 0 END, " + col + " " + dir, nil
}

func (p *precompiler) PrepareParenthesis(s string) (string, error) {
	if s == "(" || s == ")" {
		return s, nil
	}
	return "", leap.NewInvalidArgumentError("PrepareParenthesis", s, `expected "(" or ")"`)
}

func (p *precompiler) PrepareWildcard(s string) string {
	segments := strings.Split(strings.TrimSpace(s), ".")
	if last := strings.TrimSpace(segments[len(segments)-1]); last == "*" || last == "" {
		segments = segments[:len(segments)-1]
	}
	out := make([]string, 0, len(segments)+1)
	for _, seg := range segments {
		out = append(out, p.Quote(seg))
	}
	return strings.Join(append(out, "*"), ".")
}

func (p *precompiler) PrepareNatural(v any) int {
	f, ok := numeric(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Abs(math.Floor(f))
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

// numeric mirrors a loose "is numeric" check: numbers and numeric strings.
func numeric(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return 0, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(rv.String()), 64)
		return f, err == nil
	}
	return 0, false
}

func (p *precompiler) PrepareBoolean(v any) bool {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Invalid:
		return false
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		s := strings.TrimSpace(rv.String())
		if s == "" || s == "0" {
			return false
		}
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
		return true
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	}
	if f, ok := numeric(rv.Interface()); ok {
		return f != 0
	}
	return true
}

func (p *precompiler) PrepareConnector(c string) (string, error) {
	switch n := normalize(c); n {
	case "AND", "OR":
		return n, nil
	}
	return "", leap.NewInvalidArgumentError("PrepareConnector", c, "expected AND or OR")
}

func (p *precompiler) IsKeyword(word string) bool {
	_, ok := p.keywords[strings.ToUpper(strings.TrimSpace(word))]
	return ok
}

func (p *precompiler) Keywords() []string {
	out := make([]string, 0, len(p.keywords))
	for k := range p.keywords {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func itoa(n int) string { return strconv.Itoa(n) }
