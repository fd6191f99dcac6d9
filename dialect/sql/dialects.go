package sql

import (
	"github.com/leapdb/leap"
	"github.com/leapdb/leap/dialect"
)

var mysqlRules = rules{
	open:     "`",
	close:    "`",
	notEqual: "!=",
	comparison: merge(standardComparison, words(
		"<=>", "REGEXP", "NOT REGEXP", "RLIKE", "NOT RLIKE", "SOUNDS LIKE",
	)),
	set:      words("UNION", "UNION ALL", "UNION DISTINCT", "INTERSECT", "EXCEPT"),
	joins:    merge(words("CROSS", "INNER", "LEFT", "LEFT OUTER", "RIGHT", "RIGHT OUTER", "STRAIGHT"), naturalJoins),
	keywords: mysqlKeywords,
}

// MySQLPrecompiler serves MySQL, MariaDB and Drizzle.
type MySQLPrecompiler struct{ precompiler }

// NewMySQLPrecompiler returns a precompiler for a MySQL family dialect.
func NewMySQLPrecompiler(name string, esc ValueEscaper) *MySQLPrecompiler {
	r := mysqlRules
	r.dialect = name
	return &MySQLPrecompiler{precompiler{rules: &r, esc: esc}}
}

// PrepareLimit implements Precompiler.
func (p *MySQLPrecompiler) PrepareLimit(limit, offset int, _ bool) (string, string) {
	switch {
	case limit > 0 && offset > 0:
		return "", "LIMIT " + itoa(limit) + " OFFSET " + itoa(offset)
	case limit > 0:
		return "", "LIMIT " + itoa(limit)
	case offset > 0:
		// MySQL has no OFFSET without LIMIT.
		return "", "LIMIT 18446744073709551615 OFFSET " + itoa(offset)
	}
	return "", ""
}

// PrepareMutationLimit implements Precompiler.
func (p *MySQLPrecompiler) PrepareMutationLimit(limit int) (string, string, error) {
	return "", "LIMIT " + itoa(limit), nil
}

var mssqlRules = rules{
	dialect:    dialect.MsSQL,
	open:       "[",
	close:      "]",
	notEqual:   "<>",
	comparison: merge(standardComparison, words("!<", "!>")),
	set:        standardSet,
	joins:      merge(standardJoins, words("CROSS APPLY", "OUTER APPLY")),
	keywords:   mssqlKeywords,
}

// MsSQLPrecompiler serves Microsoft SQL Server.
type MsSQLPrecompiler struct{ precompiler }

// NewMsSQLPrecompiler returns a SQL Server precompiler.
func NewMsSQLPrecompiler(esc ValueEscaper) *MsSQLPrecompiler {
	return &MsSQLPrecompiler{precompiler{rules: &mssqlRules, esc: esc}}
}

// PrepareLimit implements Precompiler. OFFSET ... FETCH requires an ORDER BY
// clause, so an unordered statement gets a constant one.
func (p *MsSQLPrecompiler) PrepareLimit(limit, offset int, ordered bool) (string, string) {
	if offset <= 0 {
		if limit > 0 {
			return "TOP " + itoa(limit), ""
		}
		return "", ""
	}
	suffix := "OFFSET " + itoa(offset) + " ROWS"
	if limit > 0 {
		suffix += " FETCH NEXT " + itoa(limit) + " ROWS ONLY"
	}
	if !ordered {
		suffix = "ORDER BY (SELECT NULL) " + suffix
	}
	return "", suffix
}

// PrepareMutationLimit implements Precompiler.
func (p *MsSQLPrecompiler) PrepareMutationLimit(limit int) (string, string, error) {
	return "TOP (" + itoa(limit) + ")", "", nil
}

var oracleRules = rules{
	dialect:     dialect.Oracle,
	open:        `"`,
	close:       `"`,
	notEqual:    "<>",
	nativeNulls: true,
	comparison:  standardComparison,
	set:         words("UNION", "UNION ALL", "INTERSECT", "MINUS"),
	joins:       merge(standardJoins, naturalJoins, words("NATURAL FULL", "NATURAL FULL OUTER")),
	keywords:    oracleKeywords,
}

// OraclePrecompiler serves Oracle.
type OraclePrecompiler struct{ precompiler }

// NewOraclePrecompiler returns an Oracle precompiler.
func NewOraclePrecompiler(esc ValueEscaper) *OraclePrecompiler {
	return &OraclePrecompiler{precompiler{rules: &oracleRules, esc: esc}}
}

// PrepareLimit implements Precompiler.
func (p *OraclePrecompiler) PrepareLimit(limit, offset int, _ bool) (string, string) {
	return "", fetchFirst(limit, offset)
}

// PrepareMutationLimit implements Precompiler.
func (p *OraclePrecompiler) PrepareMutationLimit(int) (string, string, error) {
	return "", "", unsupportedMutationLimit(p.dialect)
}

var db2Rules = rules{
	dialect:     dialect.DB2,
	open:        `"`,
	close:       `"`,
	notEqual:    "<>",
	nativeNulls: true,
	comparison:  standardComparison,
	set:         merge(standardSet, words("INTERSECT ALL", "EXCEPT ALL")),
	joins:       standardJoins,
	keywords:    db2Keywords,
}

// DB2Precompiler serves IBM DB2.
type DB2Precompiler struct{ precompiler }

// NewDB2Precompiler returns a DB2 precompiler.
func NewDB2Precompiler(esc ValueEscaper) *DB2Precompiler {
	return &DB2Precompiler{precompiler{rules: &db2Rules, esc: esc}}
}

// PrepareLimit implements Precompiler.
func (p *DB2Precompiler) PrepareLimit(limit, offset int, _ bool) (string, string) {
	return "", fetchFirst(limit, offset)
}

// PrepareMutationLimit implements Precompiler.
func (p *DB2Precompiler) PrepareMutationLimit(int) (string, string, error) {
	return "", "", unsupportedMutationLimit(p.dialect)
}

var sqliteRules = rules{
	dialect:  dialect.SQLite,
	open:     `"`,
	close:    `"`,
	notEqual: "!=",
	comparison: merge(standardComparison, words(
		"GLOB", "NOT GLOB", "MATCH", "NOT MATCH", "REGEXP", "NOT REGEXP",
		"IS DISTINCT FROM", "IS NOT DISTINCT FROM",
	)),
	set:      standardSet,
	joins:    merge(standardJoins, naturalJoins),
	keywords: sqliteKeywords,
}

// SQLitePrecompiler serves SQLite.
type SQLitePrecompiler struct{ precompiler }

// NewSQLitePrecompiler returns a SQLite precompiler.
func NewSQLitePrecompiler(esc ValueEscaper) *SQLitePrecompiler {
	return &SQLitePrecompiler{precompiler{rules: &sqliteRules, esc: esc}}
}

// PrepareLimit implements Precompiler.
func (p *SQLitePrecompiler) PrepareLimit(limit, offset int, _ bool) (string, string) {
	switch {
	case limit > 0 && offset > 0:
		return "", "LIMIT " + itoa(limit) + " OFFSET " + itoa(offset)
	case limit > 0:
		return "", "LIMIT " + itoa(limit)
	case offset > 0:
		return "", "LIMIT -1 OFFSET " + itoa(offset)
	}
	return "", ""
}

// PrepareMutationLimit implements Precompiler. UPDATE/DELETE ... LIMIT is a
// compile time option of SQLite and is not assumed.
func (p *SQLitePrecompiler) PrepareMutationLimit(int) (string, string, error) {
	return "", "", unsupportedMutationLimit(p.dialect)
}

var postgresRules = rules{
	dialect:     dialect.Postgres,
	open:        `"`,
	close:       `"`,
	notEqual:    "<>",
	nativeNulls: true,
	comparison: merge(standardComparison, words(
		"ILIKE", "NOT ILIKE", "SIMILAR TO", "NOT SIMILAR TO",
		"~", "~*", "!~", "!~*", "IS DISTINCT FROM", "IS NOT DISTINCT FROM",
	)),
	set:      merge(standardSet, words("INTERSECT ALL", "EXCEPT ALL")),
	joins:    merge(standardJoins, naturalJoins, words("NATURAL FULL", "NATURAL FULL OUTER")),
	keywords: postgresKeywords,
}

// PostgresPrecompiler serves PostgreSQL.
type PostgresPrecompiler struct{ precompiler }

// NewPostgresPrecompiler returns a PostgreSQL precompiler.
func NewPostgresPrecompiler(esc ValueEscaper) *PostgresPrecompiler {
	return &PostgresPrecompiler{precompiler{rules: &postgresRules, esc: esc}}
}

// PrepareLimit implements Precompiler.
func (p *PostgresPrecompiler) PrepareLimit(limit, offset int, _ bool) (string, string) {
	switch {
	case limit > 0 && offset > 0:
		return "", "LIMIT " + itoa(limit) + " OFFSET " + itoa(offset)
	case limit > 0:
		return "", "LIMIT " + itoa(limit)
	case offset > 0:
		return "", "OFFSET " + itoa(offset)
	}
	return "", ""
}

// PrepareMutationLimit implements Precompiler.
func (p *PostgresPrecompiler) PrepareMutationLimit(int) (string, string, error) {
	return "", "", unsupportedMutationLimit(p.dialect)
}

// fetchFirst renders SQL:2008 paging.
func fetchFirst(limit, offset int) string {
	switch {
	case limit > 0 && offset > 0:
		return "OFFSET " + itoa(offset) + " ROWS FETCH NEXT " + itoa(limit) + " ROWS ONLY"
	case limit > 0:
		return "FETCH FIRST " + itoa(limit) + " ROWS ONLY"
	case offset > 0:
		return "OFFSET " + itoa(offset) + " ROWS"
	}
	return ""
}

func unsupportedMutationLimit(d string) error {
	return leap.NewBuildInstructionError("Limit", "row limits on UPDATE and DELETE are not supported by "+d)
}

var (
	_ Precompiler = (*MySQLPrecompiler)(nil)
	_ Precompiler = (*MsSQLPrecompiler)(nil)
	_ Precompiler = (*OraclePrecompiler)(nil)
	_ Precompiler = (*DB2Precompiler)(nil)
	_ Precompiler = (*SQLitePrecompiler)(nil)
	_ Precompiler = (*PostgresPrecompiler)(nil)
)
