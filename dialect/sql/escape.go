package sql

import (
	"strings"
	"unicode/utf8"

	"github.com/lib/pq"

	"github.com/leapdb/leap/dialect"
)

// ValueEscaper quotes arbitrary strings as SQL literals. PrepareValue calls
// it for every string that is not empty and not date shaped.
// Implementations must be safe for concurrent use.
type ValueEscaper interface {
	Quote(s string) (string, error)
}

// LocalEscaper quotes strings without a database connection, following the
// escaping rules of its dialect.
type LocalEscaper struct {
	dialect string
}

// NewLocalEscaper returns an escaper for the given dialect.
func NewLocalEscaper(dialect string) LocalEscaper {
	return LocalEscaper{dialect: dialect}
}

// Quote implements ValueEscaper.
func (e LocalEscaper) Quote(s string) (string, error) {
	return QuoteString(e.dialect, s), nil
}

var mysqlEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	"\x00", `\0`,
	"\n", `\n`,
	"\r", `\r`,
	"\x1a", `\Z`,
)

// QuoteString returns s as a string literal of dialect d. MS SQL literals
// holding non-ASCII text get the N prefix.
func QuoteString(d, s string) string {
	switch {
	case dialect.IsMySQLFamily(d):
		return "'" + mysqlEscaper.Replace(s) + "'"
	case d == dialect.Postgres:
		return strings.TrimLeft(pq.QuoteLiteral(s), " ")
	case d == dialect.MsSQL:
		q := "'" + strings.ReplaceAll(s, "'", "''") + "'"
		if !isASCII(s) {
			q = "N" + q
		}
		return q
	default:
		return "'" + strings.ReplaceAll(s, "'", "''") + "'"
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
