package sql

import (
	"cmp"
	"reflect"
	"slices"
	"strings"

	"github.com/leapdb/leap"
)

// ValuePreparer renders values as SQL literals. Every Precompiler is one.
type ValuePreparer interface {
	PrepareValue(v any) (string, error)
}

// Expression is a raw SQL fragment with named placeholders. It is emitted
// verbatim by the builders, after its placeholders are replaced with
// prepared values.
//
//	sql.Expr("COUNT(*) > :min", map[string]any{"min": 3})
type Expression struct {
	expr   string
	params map[string]any
	err    error
}

// Expr returns a new Expression. Placeholder keys without a leading colon
// get one.
func Expr(expr string, params map[string]any) *Expression {
	e := &Expression{expr: expr, params: make(map[string]any, len(params))}
	for k, v := range params {
		e.params[placeholder(k)] = v
	}
	return e
}

// Raw returns an Expression without placeholders.
func Raw(expr string) *Expression { return Expr(expr, nil) }

func placeholder(key string) string {
	if strings.HasPrefix(key, ":") {
		return key
	}
	return ":" + key
}

// Bind associates key with a pointer. The pointed value is read when the
// expression is resolved, not when it is bound.
func (e *Expression) Bind(key string, ptr any) *Expression {
	if rv := reflect.ValueOf(ptr); rv.Kind() != reflect.Pointer || rv.IsNil() {
		if e.err == nil {
			e.err = leap.NewInvalidArgumentError("Bind", ptr, "expected a non-nil pointer")
		}
		return e
	}
	e.params[placeholder(key)] = ptr
	return e
}

// Param associates key with a fixed value.
func (e *Expression) Param(key string, v any) *Expression {
	e.params[placeholder(key)] = v
	return e
}

// Params returns the placeholder keys in substitution order.
func (e *Expression) Params() []string {
	keys := make([]string, 0, len(e.params))
	for k := range e.params {
		keys = append(keys, k)
	}
	// Longer keys first, so ":ab" is never corrupted by ":a".
	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return keys
}

// Value resolves the expression. Every parameter is rendered with
// p.PrepareValue and substituted for its placeholder in a single pass.
// A nil p returns the raw text.
func (e *Expression) Value(p ValuePreparer) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	if p == nil || len(e.params) == 0 {
		return e.expr, nil
	}
	keys := e.Params()
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		v, err := p.PrepareValue(e.params[k])
		if err != nil {
			return "", err
		}
		pairs = append(pairs, k, v)
	}
	return strings.NewReplacer(pairs...).Replace(e.expr), nil
}

// String returns the unexpanded expression.
func (e *Expression) String() string { return e.expr }
