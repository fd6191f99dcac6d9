package schema

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func usersTable() *Table {
	return NewTable("users").
		AddColumns(
			&Column{Name: "id", Type: "bigint", PrimaryKey: true},
			&Column{Name: "email", Type: "varchar(255)", Size: 255},
			&Column{Name: "name", Type: "varchar(64)", Size: 64, Nullable: true},
		).
		AddIndex("users_email", false, "email")
}

func TestValidateDiff(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Table) []*Table
		opts     []ValidateOption
		errors   []string
		warnings []string
	}{
		{
			name:   "no changes",
			mutate: func(t *Table) []*Table { return []*Table{t} },
		},
		{
			name:   "drop table",
			mutate: func(*Table) []*Table { return nil },
			errors: []string{"users: table will be dropped"},
		},
		{
			name:     "drop table allowed",
			mutate:   func(*Table) []*Table { return nil },
			opts:     []ValidateOption{AllowDropTable()},
			warnings: []string{"users: table will be dropped"},
		},
		{
			name: "drop column",
			mutate: func(t *Table) []*Table {
				t.Columns = t.Columns[:2]
				return []*Table{t}
			},
			errors: []string{"users.name: column will be dropped"},
		},
		{
			name: "drop column allowed",
			mutate: func(t *Table) []*Table {
				t.Columns = t.Columns[:2]
				return []*Table{t}
			},
			opts:     []ValidateOption{AllowDropColumn()},
			warnings: []string{"users.name: column will be dropped"},
		},
		{
			name: "new not null column",
			mutate: func(t *Table) []*Table {
				t.AddColumns(&Column{Name: "age", Type: "int"}, &Column{Name: "role", Type: "text", Default: strptr("'user'")})
				return []*Table{t}
			},
			warnings: []string{"users.age: new NOT NULL column without default value may fail if table has data"},
		},
		{
			name: "column changes",
			mutate: func(t *Table) []*Table {
				t.Columns[1] = &Column{Name: "email", Type: "text", Size: 100, Unique: true}
				return []*Table{t}
			},
			warnings: []string{
				"users.email: column type changing from varchar(255) to text",
				"users.email: column size reducing from 255 to 100 may truncate data",
				"users.email: adding UNIQUE constraint may fail if duplicate values exist",
			},
		},
		{
			name: "type case is ignored",
			mutate: func(t *Table) []*Table {
				t.Columns[0] = &Column{Name: "id", Type: "BIGINT", PrimaryKey: true}
				return []*Table{t}
			},
		},
		{
			name: "not null",
			mutate: func(t *Table) []*Table {
				t.Columns[2] = &Column{Name: "name", Type: "varchar(64)", Size: 64}
				return []*Table{t}
			},
			errors: []string{"users.name: column changing from NULL to NOT NULL may fail if column has NULL values"},
		},
		{
			name: "not null allowed",
			mutate: func(t *Table) []*Table {
				t.Columns[2] = &Column{Name: "name", Type: "varchar(64)", Size: 64}
				return []*Table{t}
			},
			opts:     []ValidateOption{AllowNullToNotNull()},
			warnings: []string{"users.name: column changing from NULL to NOT NULL may fail if column has NULL values"},
		},
		{
			name: "drop index",
			mutate: func(t *Table) []*Table {
				t.Indexes = nil
				return []*Table{t}
			},
			errors: []string{`users: index "users_email" will be dropped`},
		},
		{
			name: "drop index allowed",
			mutate: func(t *Table) []*Table {
				t.Indexes = nil
				return []*Table{t}
			},
			opts:     []ValidateOption{AllowDropIndex()},
			warnings: []string{`users: index "users_email" will be dropped`},
		},
		{
			name: "index becomes unique",
			mutate: func(t *Table) []*Table {
				t.Indexes[0] = &Index{Name: "users_email", Columns: []string{"email"}, Unique: true}
				return []*Table{t}
			},
			warnings: []string{`users: index "users_email" becoming UNIQUE may fail if duplicate values exist`},
		},
		{
			name: "new table",
			mutate: func(t *Table) []*Table {
				return []*Table{t, NewTable("posts").AddColumns(&Column{Name: "id", Type: "int"})}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateDiff([]*Table{usersTable()}, tt.mutate(usersTable()), tt.opts...)
			assert.Equal(t, tt.errors, messages(res.Errors), "errors")
			assert.Equal(t, tt.warnings, messages(res.Warnings), "warnings")
		})
	}
}

func messages(errs []*ValidationError) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}

func TestValidationResult(t *testing.T) {
	res := &ValidationResult{}
	assert.False(t, res.HasErrors())
	assert.False(t, res.HasWarnings())
	assert.False(t, res.HasBreakingChanges())
	assert.Equal(t, "No issues found", res.String())

	res = ValidateDiff([]*Table{usersTable()}, nil, AllowDropTable())
	assert.False(t, res.HasErrors())
	assert.True(t, res.HasWarnings())
	assert.True(t, res.HasBreakingChanges())
	assert.Equal(t, "Warnings:\n  - users: table will be dropped [BREAKING]\n", res.String())

	next := usersTable()
	next.Columns = next.Columns[:2]
	next.Columns[1].Type = "text"
	res = ValidateDiff([]*Table{usersTable()}, []*Table{next})
	assert.Equal(t, "Errors:\n"+
		"  - users.name: column will be dropped [BREAKING]\n"+
		"Warnings:\n"+
		"  - users.email: column type changing from varchar(255) to text\n", res.String())
}

func TestValidateTable(t *testing.T) {
	res := ValidateTable(usersTable())
	assert.False(t, res.HasErrors())
	assert.False(t, res.HasWarnings())

	bad := NewTable("t").
		AddColumns(&Column{Name: "a"}, &Column{Name: "a"}).
		AddIndex("i", false, "a").
		AddIndex("i", true, "b").
		AddIndex("empty", false).
		AddForeignKey(&ForeignKey{Columns: []string{"c"}, RefTable: "u", RefColumns: []string{"id", "x"}})
	res = ValidateTable(bad)
	assert.Equal(t, []string{"t: table has no primary key"}, messages(res.Warnings))
	assert.Equal(t, []string{
		"t.a: duplicate column name",
		"t: duplicate index name: i",
		`t: index "i" references non-existent column "b"`,
		`t: index "empty" has no columns`,
		`t: foreign key references non-existent column "c"`,
		`t: foreign key to "u" has 1 columns but references 2`,
	}, messages(res.Errors))

	pk := NewTable("p").AddColumns(&Column{Name: "id"})
	pk.Indexes = []*Index{{Name: "PRIMARY", Columns: []string{"id"}, Primary: true}}
	assert.Equal(t, []string{"id"}, pk.PrimaryKey())
	assert.False(t, ValidateTable(pk).HasWarnings())
}

func TestValidateSchema(t *testing.T) {
	posts := NewTable("posts").
		AddColumns(&Column{Name: "id", PrimaryKey: true}, &Column{Name: "author_id"}).
		AddForeignKey(&ForeignKey{Columns: []string{"author_id"}, RefTable: "users", RefColumns: []string{"id"}})
	res := ValidateSchema([]*Table{usersTable(), posts})
	require.False(t, res.HasErrors(), res.String())

	posts.AddForeignKey(&ForeignKey{Columns: []string{"author_id"}, RefTable: "users", RefColumns: []string{"uuid"}})
	posts.AddForeignKey(&ForeignKey{Columns: []string{"author_id"}, RefTable: "groups", RefColumns: []string{"id"}})
	res = ValidateSchema([]*Table{usersTable(), posts, usersTable()})
	assert.Equal(t, []string{
		`posts: foreign key references non-existent column "uuid" of table "users"`,
		`posts: foreign key references non-existent table "groups"`,
		"users: duplicate table name",
	}, messagesSorted(res.Errors))
}

func messagesSorted(errs []*ValidationError) []string {
	out := messages(errs)
	slices.Sort(out)
	return out
}
