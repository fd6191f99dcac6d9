package sqltranslate

import (
	"github.com/leapdb/leap"
	"github.com/leapdb/leap/dialect"
	"github.com/leapdb/leap/dialect/sql/sqllex"
)

// rewrite replaces a whole function call given its translated arguments.
// A nil result with a nil error leaves the call unchanged.
type rewrite func(name string, args [][]sqllex.Token) ([]sqllex.Token, error)

// limitStyle selects how LIMIT clauses are emitted.
type limitStyle int

const (
	limitKeep   limitStyle = iota // LIMIT n [OFFSET m] | LIMIT m, n
	limitOffset                   // LIMIT n [OFFSET m]
	limitFirst                    // FIRST n [SKIP m] after the statement keyword
	limitTop                      // TOP n after the statement keyword
)

// rules are the rewrites of one target dialect.
type rules struct {
	renames  map[string]string
	rewrites map[string]rewrite
	limit    limitStyle
}

var identity = &rules{limit: limitKeep}

var targets = map[string]*rules{
	dialect.MySQL:   identity,
	dialect.MariaDB: identity,
	dialect.Drizzle: identity,
	dialect.Firebird: {
		renames: map[string]string{
			"CEIL":   "CEILING",
			"IFNULL": "COALESCE",
			"LENGTH": "CHAR_LENGTH",
			"LCASE":  "LOWER",
			"UCASE":  "UPPER",
			"POW":    "POWER",
			"MID":    "SUBSTRING",
		},
		rewrites: map[string]rewrite{
			"CONCAT":    concat("||"),
			"CONVERT":   convert,
			"IF":        caseWhen,
			"SUBSTR":    substring("SUBSTRING", true, false),
			"SUBSTRING": substring("SUBSTRING", true, false),
		},
		limit: limitFirst,
	},
	dialect.MsSQL: {
		renames: map[string]string{
			"CHAR_LENGTH":      "LEN",
			"CHARACTER_LENGTH": "LEN",
			"LENGTH":           "DATALENGTH",
			"NOW":              "GETDATE",
			"SYSDATE":          "GETDATE",
			"UTC_TIMESTAMP":    "GETUTCDATE",
			"IFNULL":           "ISNULL",
			"CEIL":             "CEILING",
			"LOCATE":           "CHARINDEX",
			"DATABASE":         "DB_NAME",
			"LCASE":            "LOWER",
			"UCASE":            "UPPER",
			"POW":              "POWER",
			"UUID":             "NEWID",
		},
		rewrites: map[string]rewrite{
			"CONCAT":    concat("+"),
			"CONVERT":   convert,
			"IF":        ifBlock,
			"SUBSTR":    substring("SUBSTRING", false, true),
			"SUBSTRING": substring("SUBSTRING", false, true),
			"MID":       substring("SUBSTRING", false, true),
			"TRIM":      trim,
			"MD5":       hashBytes("MD5"),
			"SHA1":      hashBytes("SHA1"),
		},
		limit: limitTop,
	},
	dialect.Postgres: {
		renames: map[string]string{
			"IFNULL":   "COALESCE",
			"RAND":     "RANDOM",
			"DATABASE": "CURRENT_DATABASE",
			"LCASE":    "LOWER",
			"UCASE":    "UPPER",
			"POW":      "POWER",
			"UUID":     "GEN_RANDOM_UUID",
		},
		rewrites: map[string]rewrite{
			"CONVERT": convert,
			"IF":      caseWhen,
		},
		limit: limitOffset,
	},
	dialect.SQLite: {
		renames: map[string]string{
			"RAND":             "RANDOM",
			"CHAR_LENGTH":      "LENGTH",
			"CHARACTER_LENGTH": "LENGTH",
			"LCASE":            "LOWER",
			"UCASE":            "UPPER",
		},
		rewrites: map[string]rewrite{
			"CONCAT":    concat("||"),
			"CONVERT":   convert,
			"IF":        caseWhen,
			"SUBSTRING": substring("SUBSTR", false, false),
			"MID":       substring("SUBSTR", false, false),
		},
		limit: limitKeep,
	},
}

var (
	lparen = sqllex.New(sqllex.Parenthesis, "(")
	rparen = sqllex.New(sqllex.Parenthesis, ")")
	comma  = sqllex.New(sqllex.Comma, ",")
)

// words returns the keywords separated by single spaces and padded with a
// space on each side.
func words(ws ...string) []sqllex.Token {
	out := make([]sqllex.Token, 0, 2*len(ws)+1)
	for _, w := range ws {
		out = append(out, sqllex.Space(), sqllex.Word(w))
	}
	return append(out, sqllex.Space())
}

// concat joins the arguments with an infix operator.
func concat(op string) rewrite {
	return func(name string, args [][]sqllex.Token) ([]sqllex.Token, error) {
		if len(args) == 0 {
			return nil, leap.NewInvalidArgumentError("Translate", name, "CONCAT requires arguments")
		}
		var out []sqllex.Token
		for i, a := range args {
			if len(a) == 0 {
				return nil, leap.NewInvalidArgumentError("Translate", name, "empty CONCAT argument")
			}
			if i > 0 {
				out = append(out, words(op)...)
			}
			out = append(out, a...)
		}
		return out, nil
	}
}

// convert turns CONVERT(expr, type) into CAST(expr AS type). The
// CONVERT(expr USING charset) form is left alone.
func convert(_ string, args [][]sqllex.Token) ([]sqllex.Token, error) {
	if len(args) != 2 {
		return nil, nil
	}
	out := []sqllex.Token{sqllex.Word("CAST"), lparen}
	out = append(out, args[0]...)
	out = append(out, words("AS")...)
	out = append(out, args[1]...)
	return append(out, rparen), nil
}

func ifArgs(name string, args [][]sqllex.Token) error {
	if len(args) != 3 {
		return leap.NewInvalidArgumentError("Translate", name, "IF requires 3 arguments")
	}
	return nil
}

// caseWhen turns IF(c, t, e) into CASE WHEN c THEN t ELSE e END.
func caseWhen(name string, args [][]sqllex.Token) ([]sqllex.Token, error) {
	if err := ifArgs(name, args); err != nil {
		return nil, err
	}
	out := []sqllex.Token{sqllex.Word("CASE"), sqllex.Space(), sqllex.Word("WHEN"), sqllex.Space()}
	out = append(out, args[0]...)
	out = append(out, words("THEN")...)
	out = append(out, args[1]...)
	out = append(out, words("ELSE")...)
	out = append(out, args[2]...)
	return append(out, sqllex.Space(), sqllex.Word("END")), nil
}

// ifBlock turns IF(c, t, e) into IF c BEGIN t END ELSE BEGIN e END.
func ifBlock(name string, args [][]sqllex.Token) ([]sqllex.Token, error) {
	if err := ifArgs(name, args); err != nil {
		return nil, err
	}
	out := []sqllex.Token{sqllex.Word("IF"), sqllex.Space()}
	out = append(out, args[0]...)
	out = append(out, words("BEGIN")...)
	out = append(out, args[1]...)
	out = append(out, words("END", "ELSE", "BEGIN")...)
	out = append(out, args[2]...)
	return append(out, sqllex.Space(), sqllex.Word("END")), nil
}

// substring normalizes both SUBSTRING(expr FROM s [FOR l]) and
// SUBSTRING(expr, s[, l]). fromFor selects the keyword form for the
// output; needLength supplies LEN(expr) when the length is omitted.
func substring(to string, fromFor, needLength bool) rewrite {
	return func(name string, args [][]sqllex.Token) ([]sqllex.Token, error) {
		var expr, start, length []sqllex.Token
		switch len(args) {
		case 1:
			parts := split(args[0], func(t sqllex.Token) bool { return t.Is("FROM") || t.Is("FOR") })
			if len(parts) < 2 || len(parts) > 3 {
				return nil, nil
			}
			expr, start = parts[0], parts[1]
			if len(parts) == 3 {
				length = parts[2]
			}
		case 2:
			expr, start = args[0], args[1]
		case 3:
			expr, start, length = args[0], args[1], args[2]
		default:
			return nil, leap.NewInvalidArgumentError("Translate", name, "SUBSTRING requires 2 or 3 arguments")
		}
		if len(expr) == 0 || len(start) == 0 {
			return nil, leap.NewInvalidArgumentError("Translate", name, "empty SUBSTRING argument")
		}
		if length == nil && needLength {
			length = append([]sqllex.Token{sqllex.Word("LEN"), lparen}, expr...)
			length = append(length, rparen)
		}
		out := []sqllex.Token{sqllex.Word(to), lparen}
		out = append(out, expr...)
		if fromFor {
			out = append(out, words("FROM")...)
			out = append(out, start...)
			if length != nil {
				out = append(out, words("FOR")...)
				out = append(out, length...)
			}
			return append(out, rparen), nil
		}
		out = append(out, comma, sqllex.Space())
		out = append(out, start...)
		if length != nil {
			out = append(out, comma, sqllex.Space())
			out = append(out, length...)
		}
		return append(out, rparen), nil
	}
}

// trim turns TRIM(x) into LTRIM(RTRIM(x)). TRIM with BOTH, LEADING,
// TRAILING or FROM is left alone.
func trim(_ string, args [][]sqllex.Token) ([]sqllex.Token, error) {
	if len(args) != 1 {
		return nil, nil
	}
	for _, t := range args[0] {
		if t.Is("FROM") || t.Is("BOTH") || t.Is("LEADING") || t.Is("TRAILING") {
			return nil, nil
		}
	}
	out := []sqllex.Token{sqllex.Word("LTRIM"), lparen, sqllex.Word("RTRIM"), lparen}
	out = append(out, args[0]...)
	return append(out, rparen, rparen), nil
}

// hashBytes turns MD5(x) and SHA1(x) into HASHBYTES('ALG', x).
func hashBytes(alg string) rewrite {
	return func(_ string, args [][]sqllex.Token) ([]sqllex.Token, error) {
		if len(args) != 1 {
			return nil, nil
		}
		out := []sqllex.Token{sqllex.Word("HASHBYTES"), lparen, sqllex.New(sqllex.Literal, "'"+alg+"'"), comma, sqllex.Space()}
		out = append(out, args[0]...)
		return append(out, rparen), nil
	}
}

// limitClause is a parsed "LIMIT n [OFFSET m]" or "LIMIT m, n".
type limitClause struct {
	count  sqllex.Token
	offset sqllex.Token
	comma  bool // written as LIMIT m, n
	end    int  // index of the first node after the clause
}

func (c limitClause) hasOffset() bool { return c.offset.Text != "" }

func skipSpace(nodes []node, i int) int {
	for i < len(nodes) && !nodes[i].group && nodes[i].tok.Kind == sqllex.Whitespace {
		i++
	}
	return i
}

func operand(nodes []node, i int) (sqllex.Token, bool) {
	if i >= len(nodes) || nodes[i].group {
		return sqllex.Token{}, false
	}
	t := nodes[i].tok
	return t, t.Kind == sqllex.Number || t.Text == "?"
}

// parseLimit parses the clause starting at the LIMIT keyword nodes[i].
func parseLimit(nodes []node, i int) (limitClause, bool) {
	j := skipSpace(nodes, i+1)
	first, ok := operand(nodes, j)
	if !ok {
		return limitClause{}, false
	}
	c := limitClause{count: first, end: j + 1}
	k := skipSpace(nodes, c.end)
	if k >= len(nodes) || nodes[k].group {
		return c, true
	}
	switch t := nodes[k].tok; {
	case t.Kind == sqllex.Comma:
		m := skipSpace(nodes, k+1)
		second, ok := operand(nodes, m)
		if !ok {
			return limitClause{}, false
		}
		c = limitClause{count: second, offset: first, comma: true, end: m + 1}
	case t.Is("OFFSET"):
		m := skipSpace(nodes, k+1)
		second, ok := operand(nodes, m)
		if !ok {
			return limitClause{}, false
		}
		c.offset, c.end = second, m+1
	}
	return c, true
}

// limit rewrites the LIMIT clause at nodes[i]. It returns the index of the
// first node after the clause, or 0 when the clause is emitted unchanged.
func (p *pass) limit(out *sqllex.Stream, nodes []node, i int, stmt statement) (int, error) {
	style := p.rules.limit
	if style == limitKeep {
		return 0, nil
	}
	c, ok := parseLimit(nodes, i)
	if style == limitOffset {
		if !ok || !c.comma {
			return 0, nil
		}
		out.Append(sqllex.Word("LIMIT"), sqllex.Space(), c.count, sqllex.Space(), sqllex.Word("OFFSET"), sqllex.Space(), c.offset)
		return c.end, nil
	}
	if !ok {
		return 0, leap.NewInvalidArgumentError("Translate", "LIMIT", "malformed LIMIT clause")
	}
	if stmt.marker < 0 {
		return 0, leap.NewInvalidArgumentError("Translate", "LIMIT", "LIMIT outside of a statement")
	}
	out.TrimRight()
	if style == limitFirst {
		ins := []sqllex.Token{sqllex.Space(), sqllex.Word("FIRST"), sqllex.Space(), c.count}
		if c.hasOffset() {
			ins = append(ins, sqllex.Space(), sqllex.Word("SKIP"), sqllex.Space(), c.offset)
		}
		out.Insert(stmt.marker, ins...)
		return c.end, nil
	}
	if c.hasOffset() {
		return 0, leap.NewInvalidArgumentError("Translate", "OFFSET", "TOP does not support an offset")
	}
	at := stmt.marker
	if stmt.keyword != "SELECT" {
		out.Insert(at, sqllex.Space(), sqllex.Word("TOP"), sqllex.Space(), lparen, c.count, rparen)
		return c.end, nil
	}
	if k := skipStream(out, at); k < out.Len() && (out.At(k).Is("DISTINCT") || out.At(k).Is("ALL")) {
		at = k + 1
	}
	out.Insert(at, sqllex.Space(), sqllex.Word("TOP"), sqllex.Space(), c.count)
	return c.end, nil
}

func skipStream(s *sqllex.Stream, i int) int {
	for i < s.Len() && s.At(i).Kind == sqllex.Whitespace {
		i++
	}
	return i
}
