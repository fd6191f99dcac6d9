package sql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	mssql "github.com/microsoft/go-mssqldb"
	"github.com/stretchr/testify/assert"

	"github.com/leapdb/leap"
)

type stateError string

func (e stateError) Error() string    { return "sqlstate " + string(e) }
func (e stateError) SQLState() string { return string(e) }

func TestConstraintErrors(t *testing.T) {
	tests := []struct {
		name                    string
		err                     error
		unique, foreignKey, chk bool
	}{
		{"nil", nil, false, false, false},
		{"plain", errors.New("connection refused"), false, false, false},
		{"pq unique", &pq.Error{Code: "23505"}, true, false, false},
		{"pq foreign key", &pq.Error{Code: "23503"}, false, true, false},
		{"pq check", &pq.Error{Code: "23514"}, false, false, true},
		{"sqlstate unique", stateError("23505"), true, false, false},
		{"wrapped sqlstate", fmt.Errorf("insert: %w", stateError("23503")), false, true, false},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062}, true, false, false},
		{"mysql parent row", &mysql.MySQLError{Number: 1451}, false, true, false},
		{"mysql child row", &mysql.MySQLError{Number: 1452}, false, true, false},
		{"mysql check", &mysql.MySQLError{Number: 3819}, false, false, true},
		{"mssql primary key", mssql.Error{Number: 2627}, true, false, false},
		{"mssql unique index", mssql.Error{Number: 2601}, true, false, false},
		{"mssql foreign key", mssql.Error{Number: 547, Message: `The INSERT statement conflicted with the FOREIGN KEY constraint "fk"`}, false, true, false},
		{"mssql check", mssql.Error{Number: 547, Message: `The INSERT statement conflicted with the CHECK constraint "ck"`}, false, false, true},
		{"sqlite unique", errors.New("UNIQUE constraint failed: users.email"), true, false, false},
		{"sqlite foreign key", errors.New("FOREIGN KEY constraint failed"), false, true, false},
		{"postgres text", errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`), true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, IsUniqueConstraintError(tt.err))
			assert.Equal(t, tt.foreignKey, IsForeignKeyConstraintError(tt.err))
			assert.Equal(t, tt.chk, IsCheckConstraintError(tt.err))
			assert.Equal(t, tt.unique || tt.foreignKey || tt.chk, IsConstraintError(tt.err))
		})
	}
	assert.True(t, IsConstraintError(leap.NewConstraintError("custom", nil)))
}
