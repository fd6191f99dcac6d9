package sql

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapdb/leap"
	"github.com/leapdb/leap/dialect"
)

func TestSelector(t *testing.T) {
	tests := []struct {
		name  string
		input Statement
		want  string
	}{
		{
			name: "mysql lookup",
			input: Dialect(dialect.MySQL).Select("id").From("users").
				Where("email", "=", "x@y.com").
				Limit(1),
			want: "SELECT `id` FROM `users` WHERE `email` = 'x@y.com' LIMIT 1",
		},
		{
			name: "mssql lookup",
			input: Dialect(dialect.MsSQL).Select("id").From("users").
				Where("email", "=", "x@y.com").
				Limit(1),
			want: "SELECT TOP 1 [id] FROM [users] WHERE [email] = 'x@y.com'",
		},
		{
			name:  "oracle lookup",
			input: Dialect(dialect.Oracle).Select("id").From("users").Limit(1),
			want:  `SELECT "id" FROM "users" FETCH FIRST 1 ROWS ONLY`,
		},
		{
			name:  "wildcard",
			input: Dialect(dialect.Postgres).Select().From("t"),
			want:  `SELECT * FROM "t"`,
		},
		{
			name:  "qualified wildcard and alias",
			input: Dialect(dialect.MySQL).Select("u.*").Column("name", "n").From("users", "u"),
			want:  "SELECT `u`.*, `name` AS `n` FROM `users` AS `u`",
		},
		{
			name:  "null comparison",
			input: Dialect(dialect.Postgres).Select().From("t").Where("deleted_at", "=", nil).Where("owner", "!=", nil),
			want:  `SELECT * FROM "t" WHERE "deleted_at" IS NULL AND "owner" IS NOT NULL`,
		},
		{
			name:  "not equal normalization",
			input: Dialect(dialect.MySQL).Select().From("t").Where("a", "<>", 1),
			want:  "SELECT * FROM `t` WHERE `a` != 1",
		},
		{
			name:  "between",
			input: Dialect(dialect.SQLite).Select().From("t").Where("age", "between", []int{18, 65}),
			want:  `SELECT * FROM "t" WHERE "age" BETWEEN 18 AND 65`,
		},
		{
			name:  "in list",
			input: Dialect(dialect.MySQL).Select().From("t").Where("id", "in", []int{1, 2, 3}).Where("role", "NOT IN", []string{"a"}, "or"),
			want:  "SELECT * FROM `t` WHERE `id` IN (1, 2, 3) OR `role` NOT IN ('a')",
		},
		{
			name: "in subquery",
			input: Dialect(dialect.Postgres).Select("name").From("users").
				Where("id", "IN", Dialect(dialect.Postgres).Select("user_id").From("orders")),
			want: `SELECT "name" FROM "users" WHERE "id" IN (SELECT "user_id" FROM "orders")`,
		},
		{
			name:  "in expression",
			input: Dialect(dialect.Postgres).Select().From("t").Where("id", "IN", Raw("1, 2")),
			want:  `SELECT * FROM "t" WHERE "id" IN (1, 2)`,
		},
		{
			name: "where blocks",
			input: Dialect(dialect.MySQL).Select().From("t").
				Where("a", "=", 1).
				WhereBlock("(", "OR").
				Where("b", "=", 2).
				Where("c", "=", 3, "OR").
				WhereBlock(")"),
			want: "SELECT * FROM `t` WHERE `a` = 1 OR (`b` = 2 OR `c` = 3)",
		},
		{
			name: "left join",
			input: Dialect(dialect.MySQL).Select("u.id", "p.title").
				From("users", "u").
				Join("left", "posts", "p").
				On("u.id", "=", "p.user_id").
				On("p.author_id", "=", "u.id", "or"),
			want: "SELECT `u`.`id`, `p`.`title` FROM `users` AS `u` LEFT JOIN `posts` AS `p` ON `u`.`id` = `p`.`user_id` OR `p`.`author_id` = `u`.`id`",
		},
		{
			name:  "join using",
			input: Dialect(dialect.Postgres).Select().From("a").Join("", "b").Using("id", "org"),
			want:  `SELECT * FROM "a" JOIN "b" USING ("id", "org")`,
		},
		{
			name:  "straight join",
			input: Dialect(dialect.MySQL).Select().From("a").Join("STRAIGHT_JOIN", "b").On("a.id", "=", "b.a_id"),
			want:  "SELECT * FROM `a` STRAIGHT_JOIN `b` ON `a`.`id` = `b`.`a_id`",
		},
		{
			name:  "cross apply",
			input: Dialect(dialect.MsSQL).Select().From("a").Join("CROSS APPLY", "fn"),
			want:  "SELECT * FROM [a] CROSS APPLY [fn]",
		},
		{
			name: "group by having",
			input: Dialect(dialect.MySQL).Select("team", Raw("COUNT(*)")).From("users").
				GroupBy("team").
				Having(Raw("COUNT(*)"), ">", 1),
			want: "SELECT `team`, COUNT(*) FROM `users` GROUP BY `team` HAVING COUNT(*) > 1",
		},
		{
			name: "having block",
			input: Dialect(dialect.SQLite).Select().From("t").GroupBy("a").
				HavingBlock("(").Having(Raw("SUM(x)"), ">", 1).Having(Raw("SUM(y)"), "<", 2, "OR").HavingBlock(")"),
			want: `SELECT * FROM "t" GROUP BY "a" HAVING (SUM(x) > 1 OR SUM(y) < 2)`,
		},
		{
			name:  "ordering with native nulls",
			input: Dialect(dialect.Postgres).Select().From("t").OrderBy("name", "desc", "last").Limit(10).Offset(20),
			want:  `SELECT * FROM "t" ORDER BY "name" DESC NULLS LAST LIMIT 10 OFFSET 20`,
		},
		{
			name:  "ordering with synthesized nulls",
			input: Dialect(dialect.MySQL).Select().From("t").OrderBy("name", "ASC", "FIRST").OrderBy("id", ""),
			want:  "SELECT * FROM `t` ORDER BY CASE WHEN `name` IS NULL THEN 0 ELSE 1 END, `name` ASC, `id` ASC",
		},
		{
			name:  "mssql offset unordered",
			input: Dialect(dialect.MsSQL).Select("id").From("t").Limit(10).Offset(5),
			want:  "SELECT [id] FROM [t] ORDER BY (SELECT NULL) OFFSET 5 ROWS FETCH NEXT 10 ROWS ONLY",
		},
		{
			name:  "mssql offset ordered",
			input: Dialect(dialect.MsSQL).Select("id").From("t").OrderBy("id", "DESC").Offset(5),
			want:  "SELECT [id] FROM [t] ORDER BY [id] DESC OFFSET 5 ROWS",
		},
		{
			name:  "distinct top",
			input: Dialect(dialect.MsSQL).Select("id").Distinct().From("t").Limit("3"),
			want:  "SELECT DISTINCT TOP 3 [id] FROM [t]",
		},
		{
			name:  "distinct coerced",
			input: Dialect(dialect.MySQL).Select("id").Distinct("0").From("t"),
			want:  "SELECT `id` FROM `t`",
		},
		{
			name:  "negative limit",
			input: Dialect(dialect.DB2).Select().From("t").Limit(-5),
			want:  `SELECT * FROM "t" FETCH FIRST 5 ROWS ONLY`,
		},
		{
			name:  "sub-select",
			input: Dialect(dialect.Postgres).Select().From(Dialect(dialect.Postgres).Select("id").From("t"), "sub"),
			want:  `SELECT * FROM (SELECT "id" FROM "t") AS "sub"`,
		},
		{
			name:  "sub-select string",
			input: Dialect(dialect.MySQL).Select().From("SELECT 1;", "one"),
			want:  "SELECT * FROM (SELECT 1) AS `one`",
		},
		{
			name: "union",
			input: Dialect(dialect.MySQL).Select("id").From("a").
				Combine("union", Dialect(dialect.MySQL).Select("id").From("b")).
				Combine("union all", "select id from c;"),
			want: "SELECT `id` FROM `a` UNION SELECT `id` FROM `b` UNION ALL select id from c",
		},
		{
			name:  "minus",
			input: Dialect(dialect.Oracle).Select("id").From("a").Combine("MINUS", Raw(`SELECT "id" FROM "b"`)),
			want:  `SELECT "id" FROM "a" MINUS SELECT "id" FROM "b"`,
		},
		{
			name:  "no from",
			input: Dialect(dialect.Postgres).Select(Raw("NOW()")),
			want:  "SELECT NOW()",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := tt.input.Statement(false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, query)
		})
	}
}

func TestSelectorTerminate(t *testing.T) {
	s := Dialect(dialect.SQLite).Select("id").From("t")
	query, err := s.Statement(true)
	require.NoError(t, err)
	assert.Equal(t, `SELECT "id" FROM "t";`, query)
	assert.Equal(t, `SELECT "id" FROM "t"`, s.String())
}

func TestSelectorErrors(t *testing.T) {
	tests := []struct {
		name  string
		input *Selector
		kind  leap.Kind
	}{
		{"on without join", Dialect(dialect.MySQL).Select().From("a").On("a.id", "=", "b.id"), leap.KindInvalidBuildInstruction},
		{"using without join", Dialect(dialect.MySQL).Select().From("a").Using("id"), leap.KindInvalidBuildInstruction},
		{"using after on", Dialect(dialect.MySQL).Select().From("a").Join("", "b").On("a.id", "=", "b.id").Using("id"), leap.KindInvalidBuildInstruction},
		{"on after using", Dialect(dialect.MySQL).Select().From("a").Join("", "b").Using("id").On("a.id", "=", "b.id"), leap.KindInvalidBuildInstruction},
		{"using without columns", Dialect(dialect.MySQL).Select().From("a").Join("", "b").Using(), leap.KindInvalidArgument},
		{"having without group by", Dialect(dialect.MySQL).Select().From("a").Having("n", ">", 1), leap.KindInvalidBuildInstruction},
		{"having block without group by", Dialect(dialect.MySQL).Select().From("a").HavingBlock("("), leap.KindInvalidBuildInstruction},
		{"between scalar", Dialect(dialect.MySQL).Select().From("a").Where("n", "BETWEEN", 1), leap.KindInvalidArgument},
		{"between triple", Dialect(dialect.MySQL).Select().From("a").Where("n", "BETWEEN", []int{1, 2, 3}), leap.KindInvalidArgument},
		{"in scalar", Dialect(dialect.MySQL).Select().From("a").Where("n", "IN", 1), leap.KindInvalidArgument},
		{"in empty", Dialect(dialect.MySQL).Select().From("a").Where("n", "IN", []int{}), leap.KindInvalidArgument},
		{"in bytes", Dialect(dialect.MySQL).Select().From("a").Where("n", "IN", []byte("ab")), leap.KindInvalidArgument},
		{"bad operator", Dialect(dialect.MySQL).Select().From("a").Where("n", "===", 1), leap.KindInvalidArgument},
		{"bad connector", Dialect(dialect.MySQL).Select().From("a").Where("n", "=", 1, "XOR"), leap.KindInvalidArgument},
		{"bad parenthesis", Dialect(dialect.MySQL).Select().From("a").WhereBlock("{"), leap.KindInvalidArgument},
		{"bad join", Dialect(dialect.MySQL).Select().From("a").Join("FULL", "b"), leap.KindInvalidArgument},
		{"bad direction", Dialect(dialect.MySQL).Select().From("a").OrderBy("n", "sideways"), leap.KindInvalidArgument},
		{"bad column", Dialect(dialect.MySQL).Select(42), leap.KindInvalidArgument},
		{"combine non select", Dialect(dialect.MySQL).Select().From("a").Combine("UNION", "DELETE FROM b"), leap.KindInvalidBuildInstruction},
		{"combine bad operator", Dialect(dialect.Oracle).Select().From("a").Combine("EXCEPT", "SELECT 1"), leap.KindInvalidArgument},
		{"combine bad type", Dialect(dialect.MySQL).Select().From("a").Combine("UNION", 1), leap.KindInvalidArgument},
		{"unknown dialect", Dialect(dialect.Firebird).Select("a"), leap.KindInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := tt.input.Statement(false)
			require.Error(t, err)
			assert.Empty(t, query)
			assert.Equal(t, tt.kind, leap.KindOf(err))
			assert.ErrorIs(t, err, leap.ErrPoisoned)
			assert.Empty(t, tt.input.String())
		})
	}
}

func TestSelectorStatementErrors(t *testing.T) {
	tests := []struct {
		name  string
		input *Selector
		op    string
	}{
		{"unclosed where block", Dialect(dialect.MySQL).Select().From("t").WhereBlock("(").Where("x", "=", 1), "WhereBlock"},
		{"unopened where block", Dialect(dialect.MySQL).Select().From("t").Where("x", "=", 1).WhereBlock(")"), "WhereBlock"},
		{"closed before opened", Dialect(dialect.Postgres).Select().From("t").Where("x", "=", 1).WhereBlock(")").WhereBlock("("), "WhereBlock"},
		{"unclosed having block", Dialect(dialect.SQLite).Select().From("t").GroupBy("a").HavingBlock("(").Having("a", ">", 1), "HavingBlock"},
		{"mssql offset with union", Dialect(dialect.MsSQL).Select("id").From("a").Offset(5).Combine("UNION", "SELECT id FROM b"), "Combine"},
		{"oracle fetch with union", Dialect(dialect.Oracle).Select("id").From("a").Limit(5).Combine("UNION", `SELECT "id" FROM "b"`), "Combine"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.input.Err())
			query, err := tt.input.Statement(false)
			require.Error(t, err)
			assert.Empty(t, query)
			var berr *leap.BuildInstructionError
			require.True(t, errors.As(err, &berr))
			assert.Equal(t, tt.op, berr.Op)
			assert.NotErrorIs(t, err, leap.ErrPoisoned)
		})
	}

	// TOP needs no trailing clause, so a limit alone still combines.
	query, err := Dialect(dialect.MsSQL).Select("id").From("a").Limit(5).Combine("UNION", "SELECT id FROM b").Statement(false)
	require.NoError(t, err)
	assert.Equal(t, "SELECT TOP 5 [id] FROM [a] UNION SELECT id FROM b", query)
}

func TestSelectorPoisoning(t *testing.T) {
	s := Dialect(dialect.Postgres).Select("id").From("t").
		Where("a", "===", 1).
		Having("b", ">", 2).
		Where("c", "=", 3)
	first := s.Err()
	require.Error(t, first)

	_, err := s.Statement(false)
	require.Error(t, err)
	var perr *leap.PoisonedError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "Statement", perr.Op)
	assert.Equal(t, first, perr.Err)
	assert.ErrorIs(t, err, leap.ErrInvalidArgument)
	assert.NotErrorIs(t, err, leap.ErrInvalidBuildInstruction)

	var iae *leap.InvalidArgumentError
	require.True(t, errors.As(err, &iae))
	assert.Equal(t, "===", iae.Value)
}

func TestSelectorFilter(t *testing.T) {
	type UserPredicate func(*Selector)
	var (
		age   = IntField[UserPredicate]("age")
		email = StringField[UserPredicate]("email")
	)
	s := Dialect(dialect.MySQL).Select("id").From("users")
	preds := []UserPredicate{email.HasSuffix("@example.com"), Or(age.LT(18), age.GT(65))}
	for _, p := range preds {
		s.Filter(p)
	}
	query, err := s.Statement(false)
	require.NoError(t, err)
	assert.Equal(t, "SELECT `id` FROM `users` WHERE `email` LIKE '%@example.com' AND (`age` < 18 OR `age` > 65)", query)
}

func TestSelectorQuery(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()
	drv := OpenDB(dialect.Postgres, db)

	mock.ExpectQuery(`SELECT "id", "name" FROM "users" WHERE "age" >= 18 ORDER BY "id" ASC LIMIT 2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "a").AddRow(2, "b"))
	rows := &Rows{}
	err = Dialect(dialect.Postgres).Select("id", "name").From("users").
		Where("age", ">=", 18).
		OrderBy("id", OrderAsc).
		Limit(2).
		Query(context.Background(), drv, rows)
	require.NoError(t, err)
	var names []string
	for rows.Next() {
		var (
			id   int
			name string
		)
		require.NoError(t, rows.Scan(&id, &name))
		names = append(names, name)
	}
	require.NoError(t, rows.Close())
	assert.Equal(t, []string{"a", "b"}, names)
	require.NoError(t, mock.ExpectationsWereMet())

	// A poisoned selector never reaches the database.
	err = Dialect(dialect.Postgres).Select().From("t").Having("a", "=", 1).Query(context.Background(), drv, rows)
	require.Error(t, err)
	assert.True(t, leap.IsInvalidBuildInstruction(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
