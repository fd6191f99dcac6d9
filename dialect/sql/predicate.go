package sql

import (
	"strings"
	"time"
)

// PredicateFunc is a constraint type for predicate functions.
// It allows generic field types to work with any predicate type that is
// based on func(*Selector).
type PredicateFunc interface {
	~func(*Selector)
}

// FieldEQ returns a predicate for "name = v". A nil v renders IS NULL.
func FieldEQ(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(name, "=", v) }
}

// FieldNEQ returns a predicate for "name <> v".
func FieldNEQ(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(name, "<>", v) }
}

// FieldGT returns a predicate for "name > v".
func FieldGT(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(name, ">", v) }
}

// FieldGTE returns a predicate for "name >= v".
func FieldGTE(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(name, ">=", v) }
}

// FieldLT returns a predicate for "name < v".
func FieldLT(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(name, "<", v) }
}

// FieldLTE returns a predicate for "name <= v".
func FieldLTE(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(name, "<=", v) }
}

// FieldIn returns a predicate for "name IN (vs...)".
func FieldIn[T any](name string, vs ...T) func(*Selector) {
	return func(s *Selector) { s.Where(name, "IN", vs) }
}

// FieldNotIn returns a predicate for "name NOT IN (vs...)".
func FieldNotIn[T any](name string, vs ...T) func(*Selector) {
	return func(s *Selector) { s.Where(name, "NOT IN", vs) }
}

// FieldBetween returns a predicate for "name BETWEEN lo AND hi".
func FieldBetween(name string, lo, hi any) func(*Selector) {
	return func(s *Selector) { s.Where(name, "BETWEEN", []any{lo, hi}) }
}

// FieldIsNull returns a predicate for "name IS NULL".
func FieldIsNull(name string) func(*Selector) {
	return func(s *Selector) { s.Where(name, "=", nil) }
}

// FieldNotNull returns a predicate for "name IS NOT NULL".
func FieldNotNull(name string) func(*Selector) {
	return func(s *Selector) { s.Where(name, "<>", nil) }
}

// FieldContains returns a predicate for "name LIKE '%v%'". v is used as a
// LIKE pattern, its wildcards are not escaped.
func FieldContains(name, v string) func(*Selector) {
	return func(s *Selector) { s.Where(name, "LIKE", "%"+v+"%") }
}

// FieldHasPrefix returns a predicate for "name LIKE 'v%'".
func FieldHasPrefix(name, v string) func(*Selector) {
	return func(s *Selector) { s.Where(name, "LIKE", v+"%") }
}

// FieldHasSuffix returns a predicate for "name LIKE '%v'".
func FieldHasSuffix(name, v string) func(*Selector) {
	return func(s *Selector) { s.Where(name, "LIKE", "%"+v) }
}

// FieldEqualFold returns a case-insensitive equality predicate.
func FieldEqualFold(name, v string) func(*Selector) {
	return func(s *Selector) { s.whereLower(name, "=", strings.ToLower(v)) }
}

// FieldContainsFold returns a case-insensitive FieldContains.
func FieldContainsFold(name, v string) func(*Selector) {
	return func(s *Selector) { s.whereLower(name, "LIKE", "%"+strings.ToLower(v)+"%") }
}

// whereLower compares LOWER(name) with v.
func (s *Selector) whereLower(name, op, v string) {
	if s.err != nil {
		return
	}
	col, err := s.pc.PrepareIdentifier(name)
	if err != nil {
		s.fail(err)
		return
	}
	s.Where(Raw("LOWER("+col+")"), op, v)
}

// And groups predicates in parentheses joined by AND.
func And(preds ...func(*Selector)) func(*Selector) {
	return group("AND", preds)
}

// Or groups predicates in parentheses joined by OR.
//
//	s.Filter(sql.Or(sql.FieldEQ("a", 1), sql.FieldEQ("b", 2)))
//	// ... WHERE (`a` = 1 OR `b` = 2)
func Or(preds ...func(*Selector)) func(*Selector) {
	return group("OR", preds)
}

func group(conn string, preds []func(*Selector)) func(*Selector) {
	return func(s *Selector) {
		if len(preds) == 0 {
			return
		}
		outer := s.conn
		s.WhereBlock("(")
		s.conn = conn
		for _, p := range preds {
			p(s)
		}
		s.conn = outer
		s.WhereBlock(")")
	}
}

// Field is a generic field that provides type-safe predicate methods for
// values of type T.
//
// Usage:
//
//	type UserPredicate func(*sql.Selector)
//	var Age = sql.IntField[UserPredicate]("age")
//	s.Filter(Age.GTE(18))
type Field[P PredicateFunc, T any] string

// Name returns the field name.
func (f Field[P, T]) Name() string { return string(f) }

// EQ returns a predicate that checks if the field equals the given value.
func (f Field[P, T]) EQ(v T) P { return P(FieldEQ(string(f), v)) }

// NEQ returns a predicate that checks if the field does not equal the given value.
func (f Field[P, T]) NEQ(v T) P { return P(FieldNEQ(string(f), v)) }

// In returns a predicate that checks if the field value is in the given list.
func (f Field[P, T]) In(vs ...T) P { return P(FieldIn(string(f), vs...)) }

// NotIn returns a predicate that checks if the field value is not in the given list.
func (f Field[P, T]) NotIn(vs ...T) P { return P(FieldNotIn(string(f), vs...)) }

// GT returns a predicate that checks if the field is greater than the given value.
func (f Field[P, T]) GT(v T) P { return P(FieldGT(string(f), v)) }

// GTE returns a predicate that checks if the field is greater than or equal to the given value.
func (f Field[P, T]) GTE(v T) P { return P(FieldGTE(string(f), v)) }

// LT returns a predicate that checks if the field is less than the given value.
func (f Field[P, T]) LT(v T) P { return P(FieldLT(string(f), v)) }

// LTE returns a predicate that checks if the field is less than or equal to the given value.
func (f Field[P, T]) LTE(v T) P { return P(FieldLTE(string(f), v)) }

// Between returns a predicate that checks if the field lies in [lo, hi].
func (f Field[P, T]) Between(lo, hi T) P { return P(FieldBetween(string(f), lo, hi)) }

// IsNull returns a predicate that checks if the field is NULL.
func (f Field[P, T]) IsNull() P { return P(FieldIsNull(string(f))) }

// NotNull returns a predicate that checks if the field is not NULL.
func (f Field[P, T]) NotNull() P { return P(FieldNotNull(string(f))) }

type (
	// IntField is a field of int values.
	IntField[P PredicateFunc] = Field[P, int]
	// Int64Field is a field of int64 values.
	Int64Field[P PredicateFunc] = Field[P, int64]
	// Float64Field is a field of float64 values.
	Float64Field[P PredicateFunc] = Field[P, float64]
	// BoolField is a field of bool values.
	BoolField[P PredicateFunc] = Field[P, bool]
	// TimeField is a field of time.Time values.
	TimeField[P PredicateFunc] = Field[P, time.Time]
)

// StringField is a generic string field that adds pattern matching to the
// predicates of Field.
type StringField[P PredicateFunc] string

func (f StringField[P]) field() Field[P, string] { return Field[P, string](f) }

// Name returns the field name.
func (f StringField[P]) Name() string { return string(f) }

// EQ returns a predicate that checks if the field equals the given value.
func (f StringField[P]) EQ(v string) P { return f.field().EQ(v) }

// NEQ returns a predicate that checks if the field does not equal the given value.
func (f StringField[P]) NEQ(v string) P { return f.field().NEQ(v) }

// In returns a predicate that checks if the field value is in the given list.
func (f StringField[P]) In(vs ...string) P { return f.field().In(vs...) }

// NotIn returns a predicate that checks if the field value is not in the given list.
func (f StringField[P]) NotIn(vs ...string) P { return f.field().NotIn(vs...) }

// GT returns a predicate that checks if the field is greater than the given value.
func (f StringField[P]) GT(v string) P { return f.field().GT(v) }

// GTE returns a predicate that checks if the field is greater than or equal to the given value.
func (f StringField[P]) GTE(v string) P { return f.field().GTE(v) }

// LT returns a predicate that checks if the field is less than the given value.
func (f StringField[P]) LT(v string) P { return f.field().LT(v) }

// LTE returns a predicate that checks if the field is less than or equal to the given value.
func (f StringField[P]) LTE(v string) P { return f.field().LTE(v) }

// Between returns a predicate that checks if the field lies in [lo, hi].
func (f StringField[P]) Between(lo, hi string) P { return f.field().Between(lo, hi) }

// Contains returns a predicate that checks if the field contains the given substring.
func (f StringField[P]) Contains(v string) P { return P(FieldContains(string(f), v)) }

// ContainsFold returns a predicate that checks if the field contains the given substring (case-insensitive).
func (f StringField[P]) ContainsFold(v string) P { return P(FieldContainsFold(string(f), v)) }

// HasPrefix returns a predicate that checks if the field has the given prefix.
func (f StringField[P]) HasPrefix(v string) P { return P(FieldHasPrefix(string(f), v)) }

// HasSuffix returns a predicate that checks if the field has the given suffix.
func (f StringField[P]) HasSuffix(v string) P { return P(FieldHasSuffix(string(f), v)) }

// EqualFold returns a predicate that checks if the field equals the given value (case-insensitive).
func (f StringField[P]) EqualFold(v string) P { return P(FieldEqualFold(string(f), v)) }

// IsNull returns a predicate that checks if the field is NULL.
func (f StringField[P]) IsNull() P { return f.field().IsNull() }

// NotNull returns a predicate that checks if the field is not NULL.
func (f StringField[P]) NotNull() P { return f.field().NotNull() }
