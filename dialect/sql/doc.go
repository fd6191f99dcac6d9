// Package sql provides dialect-aware SQL construction on top of database/sql.
//
// A Precompiler lowers identifiers, values, operators and keywords into
// fragments that are legal for one dialect (MySQL, MariaDB, Drizzle,
// MS SQL, Oracle, DB2, SQLite, PostgreSQL). The statement builders
// accumulate query structure and delegate every fragment to it.
//
// # Builder Types
//
//   - Selector: SELECT with joins, where/having groups, ordering, paging and set operations
//   - InsertBuilder: single and multi-row INSERT
//   - UpdateBuilder: UPDATE with SET, WHERE and dialect row limits
//   - DeleteBuilder: DELETE with WHERE and dialect row limits
//   - Expression: raw SQL with named placeholders
//
// # Dialect Support
//
//	import "github.com/leapdb/leap/dialect"
//
//	// SELECT `id` FROM `users` WHERE `email` = 'x@y.com' LIMIT 1
//	sql.Dialect(dialect.MySQL).Select("id").From("users").
//	    Where("email", "=", "x@y.com").
//	    Limit(1)
//
//	// SELECT TOP 1 [id] FROM [users] WHERE [email] = 'x@y.com'
//	sql.Dialect(dialect.MsSQL).Select("id").From("users").
//	    Where("email", "=", "x@y.com").
//	    Limit(1)
//
// # Errors
//
// Every fluent method validates its arguments immediately. The first
// failure is kept by the builder, later calls are ignored, and Statement
// returns a *leap.PoisonedError wrapping it:
//
//	s := sql.Dialect(dialect.Postgres).Select("id").From("t").Where("a", "===", 1)
//	_, err := s.Statement(false) // errors.Is(err, leap.ErrInvalidArgument)
//
// # Predicates
//
// Typed fields produce predicates that lower through Selector.Where:
//
//	var Email = sql.StringField[func(*sql.Selector)]("email")
//	s.Filter(Email.HasSuffix("@example.com"), sql.Or(Age.LT(18), Age.GT(65)))
//
// # Execution
//
// Driver wraps a *database/sql.DB. Its Builder method returns builders that
// escape strings with the driver dialect. WithVar attaches session
// variables to a context. StatsDriver counts statements per kind
// (ClassifyStatement) and reports slow ones, and DebugDriver logs every
// statement with log/slog.
package sql
