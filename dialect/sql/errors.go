package sql

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	mssql "github.com/microsoft/go-mssqldb"

	"github.com/leapdb/leap"
)

// IsConstraintError returns true if the error resulted from a database constraint violation.
func IsConstraintError(err error) bool {
	return leap.IsConstraintError(err) ||
		IsUniqueConstraintError(err) ||
		IsForeignKeyConstraintError(err) ||
		IsCheckConstraintError(err)
}

// sqlStateError is an interface for errors that provide SQLSTATE codes.
// Implemented by: pgx (*pgconn.PgError) and some MySQL drivers.
type sqlStateError interface {
	SQLState() string
}

// PostgreSQL SQLSTATE codes for constraint violations (Class 23).
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// MySQL error numbers for constraint violations.
const (
	mysqlDuplicateEntry         = 1062
	mysqlForeignKeyParent       = 1451 // Cannot delete or update a parent row
	mysqlForeignKeyChild        = 1452 // Cannot add or update a child row
	mysqlCheckConstraintViolate = 3819
)

// SQL Server error numbers for constraint violations.
const (
	mssqlUniqueConstraint = 2627 // Violation of PRIMARY KEY or UNIQUE constraint
	mssqlUniqueIndex      = 2601 // Cannot insert duplicate key row
	mssqlConstraint       = 547  // INSERT/UPDATE/DELETE conflicted with a constraint
)

// violation is the classification shared by the IsXxxConstraintError helpers.
type violation struct {
	state    string
	mysql    []uint16
	mssql    func(*mssql.Error) bool
	messages []string
}

var (
	uniqueViolation = violation{
		state: pgUniqueViolation,
		mysql: []uint16{mysqlDuplicateEntry},
		mssql: func(e *mssql.Error) bool {
			return e.Number == mssqlUniqueConstraint || e.Number == mssqlUniqueIndex
		},
		messages: []string{
			"Error 1062",                 // MySQL (string fallback)
			"violates unique constraint", // Postgres (string fallback)
			"UNIQUE constraint failed",   // SQLite
		},
	}
	foreignKeyViolation = violation{
		state: pgForeignKeyViolation,
		mysql: []uint16{mysqlForeignKeyParent, mysqlForeignKeyChild},
		mssql: func(e *mssql.Error) bool {
			return e.Number == mssqlConstraint && strings.Contains(e.Message, "FOREIGN KEY")
		},
		messages: []string{
			"Error 1451",                      // MySQL (Cannot delete or update a parent row)
			"Error 1452",                      // MySQL (Cannot add or update a child row)
			"violates foreign key constraint", // Postgres
			"FOREIGN KEY constraint failed",   // SQLite
		},
	}
	checkViolation = violation{
		state: pgCheckViolation,
		mysql: []uint16{mysqlCheckConstraintViolate},
		mssql: func(e *mssql.Error) bool {
			return e.Number == mssqlConstraint && strings.Contains(e.Message, "CHECK")
		},
		messages: []string{
			"Error 3819",                // MySQL
			"violates check constraint", // Postgres
			"CHECK constraint failed",   // SQLite
		},
	}
)

func (v violation) match(err error) bool {
	if err == nil {
		return false
	}
	// SQLSTATE code (pgx).
	if e, ok := asError[sqlStateError](err); ok && e.SQLState() == v.state {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == v.state {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		for _, n := range v.mysql {
			if myErr.Number == n {
				return true
			}
		}
	}
	var msErr mssql.Error
	if errors.As(err, &msErr) && v.mssql(&msErr) {
		return true
	}
	// Fallback to string matching for drivers that don't expose codes.
	return containsAny(err.Error(), v.messages...)
}

// IsUniqueConstraintError reports if the error resulted from a DB uniqueness constraint violation.
// e.g. duplicate value in unique index.
func IsUniqueConstraintError(err error) bool { return uniqueViolation.match(err) }

// IsForeignKeyConstraintError reports if the error resulted from a database foreign-key constraint violation.
// e.g. parent row does not exist.
func IsForeignKeyConstraintError(err error) bool { return foreignKeyViolation.match(err) }

// IsCheckConstraintError reports if the error resulted from a database check constraint violation.
// e.g. a value does not satisfy a check condition.
func IsCheckConstraintError(err error) bool { return checkViolation.match(err) }

// asError attempts to extract an error implementing interface T from the error chain.
func asError[T any](err error) (T, bool) {
	var target T
	for err != nil {
		if e, ok := err.(T); ok {
			return e, true
		}
		err = errors.Unwrap(err)
	}
	return target, false
}

// containsAny returns true if s contains any of the substrings.
func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
