package sql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapdb/leap"
	"github.com/leapdb/leap/dialect"
)

func TestPredicates(t *testing.T) {
	type P func(*Selector)
	var (
		age     = IntField[P]("age")
		score   = Float64Field[P]("score")
		active  = BoolField[P]("active")
		created = TimeField[P]("created_at")
		name    = StringField[P]("name")
		ts      = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	)
	tests := []struct {
		name string
		pred func(*Selector)
		want string
	}{
		{"eq", FieldEQ("a", 1), "`a` = 1"},
		{"neq", FieldNEQ("a", 1), "`a` != 1"},
		{"gt", FieldGT("a", 1), "`a` > 1"},
		{"gte", FieldGTE("a", 1), "`a` >= 1"},
		{"lt", FieldLT("a", 1), "`a` < 1"},
		{"lte", FieldLTE("a", 1), "`a` <= 1"},
		{"in", FieldIn("a", 1, 2), "`a` IN (1, 2)"},
		{"not in", FieldNotIn("a", "x"), "`a` NOT IN ('x')"},
		{"between", FieldBetween("a", 1, 5), "`a` BETWEEN 1 AND 5"},
		{"is null", FieldIsNull("a"), "`a` IS NULL"},
		{"not null", FieldNotNull("a"), "`a` IS NOT NULL"},
		{"contains", FieldContains("a", "x"), "`a` LIKE '%x%'"},
		{"has prefix", FieldHasPrefix("a", "x"), "`a` LIKE 'x%'"},
		{"has suffix", FieldHasSuffix("a", "x"), "`a` LIKE '%x'"},
		{"equal fold", FieldEqualFold("a", "AbC"), "LOWER(`a`) = 'abc'"},
		{"contains fold", FieldContainsFold("a", "AbC"), "LOWER(`a`) LIKE '%abc%'"},
		{"and", And(FieldEQ("a", 1), FieldEQ("b", 2)), "(`a` = 1 AND `b` = 2)"},
		{"or", Or(FieldEQ("a", 1), FieldEQ("b", 2)), "(`a` = 1 OR `b` = 2)"},
		{"nested", Or(FieldEQ("a", 1), And(FieldEQ("b", 2), FieldEQ("c", 3))), "(`a` = 1 OR (`b` = 2 AND `c` = 3))"},
		{"int field", age.GTE(18), "`age` >= 18"},
		{"int field between", age.Between(18, 65), "`age` BETWEEN 18 AND 65"},
		{"int field in", age.In(1, 2), "`age` IN (1, 2)"},
		{"float field", score.LT(1.5), "`score` < 1.500000"},
		{"bool field", active.EQ(true), "`active` = '1'"},
		{"time field", created.GT(ts), "`created_at` > '2024-01-02 03:04:05'"},
		{"string field", name.NEQ("x"), "`name` != 'x'"},
		{"string field in", name.In("a", "b"), "`name` IN ('a', 'b')"},
		{"string field null", name.IsNull(), "`name` IS NULL"},
		{"string field prefix", name.HasPrefix("Ar"), "`name` LIKE 'Ar%'"},
		{"string field fold", name.EqualFold("ARIEL"), "LOWER(`name`) = 'ariel'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := Dialect(dialect.MySQL).Select().From("t").Filter(tt.pred).Statement(false)
			require.NoError(t, err)
			assert.Equal(t, "SELECT * FROM `t` WHERE "+tt.want, query)
		})
	}
	assert.Equal(t, "age", age.Name())
	assert.Equal(t, "name", name.Name())
}

func TestPredicateGroupConnector(t *testing.T) {
	query, err := Dialect(dialect.Postgres).Select().From("t").
		Filter(Or(FieldEQ("a", 1), FieldEQ("b", 2)), FieldEQ("c", 3), Or()).
		Statement(false)
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "t" WHERE ("a" = 1 OR "b" = 2) AND "c" = 3`, query)
}

func TestPredicateErrors(t *testing.T) {
	for _, pred := range []func(*Selector){
		FieldIn[int]("a"),
		FieldEqualFold("", "x"),
		Or(FieldEQ("a", 1), FieldEQ("b", struct{}{})),
	} {
		_, err := Dialect(dialect.MySQL).Select().From("t").Filter(pred).Statement(false)
		require.Error(t, err)
		assert.True(t, leap.IsInvalidArgument(err))
	}
}
