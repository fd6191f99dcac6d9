// Package sqltranslate rewrites MySQL statements into the SQL of other
// dialects.
//
// Translation works on the lossless token sequence produced by sqllex:
// function names are remapped, structural differences (CONCAT, CONVERT, IF,
// SUBSTRING, TRIM, MD5/SHA1) are rewritten with parenthesis-depth aware
// surgery, and LIMIT clauses are relocated for dialects that page with
// FIRST/SKIP or TOP. Everything else, whitespace and comments included, is
// emitted unchanged except that reserved words are uppercased.
//
//	out, err := sqltranslate.TranslateString("SELECT CONCAT(a, b) FROM t LIMIT 10", dialect.MySQL, dialect.MsSQL)
//	// SELECT TOP 10 a + b FROM t
package sqltranslate

import (
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapdb/leap"
	"github.com/leapdb/leap/dialect"
	"github.com/leapdb/leap/dialect/sql"
	"github.com/leapdb/leap/dialect/sql/sqllex"
)

// Translator converts statements from one dialect into another. A
// Translator is immutable and safe for concurrent use.
type Translator struct {
	source   string
	target   string
	keywords sql.Precompiler
	rules    *rules
}

// New returns a Translator from source to target. The source must be a
// MySQL family dialect.
func New(source, target string) (*Translator, error) {
	src, err := dialect.Parse(source)
	if err != nil || !dialect.IsMySQLFamily(src) {
		return nil, leap.NewInvalidArgumentError("Translate", source, "source dialect must be mysql, mariadb or drizzle")
	}
	dst, err := dialect.Parse(target)
	if err != nil {
		return nil, leap.NewInvalidArgumentError("Translate", target, "unknown target dialect")
	}
	r, ok := targets[dst]
	if !ok {
		return nil, leap.NewInvalidArgumentError("Translate", target, "translation target not supported")
	}
	kw, err := sql.NewPrecompiler(src, nil)
	if err != nil {
		return nil, err
	}
	return &Translator{source: src, target: dst, keywords: kw, rules: r}, nil
}

// Targets returns the sorted names of the supported target dialects.
func Targets() []string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Source returns the source dialect.
func (t *Translator) Source() string { return t.source }

// Target returns the target dialect.
func (t *Translator) Target() string { return t.target }

// Translate rewrites tokens. Statements holding Error tokens or unbalanced
// parentheses are rejected with a *leap.TokenizeError.
func (t *Translator) Translate(tokens []sqllex.Token) ([]sqllex.Token, error) {
	if err := sqllex.FirstError(tokens); err != nil {
		return nil, err
	}
	nodes, err := parse(tokens)
	if err != nil {
		return nil, err
	}
	p := &pass{Translator: t, upper: cases.Upper(language.Und)}
	return p.level(nodes)
}

// TranslateString tokenizes and translates a statement.
func (t *Translator) TranslateString(s string) (string, error) {
	tokens, err := t.Translate(sqllex.Tokenize(s))
	if err != nil {
		return "", err
	}
	return sqllex.Join(tokens), nil
}

// Translate rewrites tokens from source to target.
func Translate(tokens []sqllex.Token, source, target string) ([]sqllex.Token, error) {
	t, err := New(source, target)
	if err != nil {
		return nil, err
	}
	return t.Translate(tokens)
}

// TranslateString rewrites a statement from source to target.
func TranslateString(s, source, target string) (string, error) {
	t, err := New(source, target)
	if err != nil {
		return "", err
	}
	return t.TranslateString(s)
}

// node is a single token or a parenthesized group.
type node struct {
	tok   sqllex.Token // the token, or the opening parenthesis of a group
	inner []node
	close sqllex.Token
	group bool
}

func parse(tokens []sqllex.Token) ([]node, error) {
	nodes, _, err := parseLevel(tokens, 0, 0)
	return nodes, err
}

func parseLevel(tokens []sqllex.Token, i, depth int) ([]node, int, error) {
	var nodes []node
	for i < len(tokens) {
		t := tokens[i]
		switch {
		case t.IsOpen():
			inner, j, err := parseLevel(tokens, i+1, depth+1)
			if err != nil {
				return nil, 0, err
			}
			if j >= len(tokens) {
				return nil, 0, unbalanced(t)
			}
			nodes = append(nodes, node{tok: t, inner: inner, close: tokens[j], group: true})
			i = j + 1
		case t.IsClose():
			if depth == 0 {
				return nil, 0, unbalanced(t)
			}
			return nodes, i, nil
		default:
			nodes = append(nodes, node{tok: t})
			i++
		}
	}
	return nodes, i, nil
}

func unbalanced(t sqllex.Token) error {
	return &leap.TokenizeError{Offset: t.Offset, Text: t.Text, Reason: "unbalanced parenthesis"}
}

// pass holds the per-call state of a translation.
type pass struct {
	*Translator
	upper cases.Caser
}

// statement tracks the statement keyword of the current level.
type statement struct {
	keyword string
	marker  int // stream index right after the keyword; -1 when unset
}

// level translates the nodes of one nesting level.
func (p *pass) level(nodes []node) ([]sqllex.Token, error) {
	out := sqllex.NewStream()
	stmt := statement{marker: -1}
	for i := 0; i < len(nodes); i++ {
		n := nodes[i]
		if n.group {
			toks, err := p.group(n)
			if err != nil {
				return nil, err
			}
			out.Append(toks...)
			continue
		}
		tok := n.tok
		switch {
		case tok.Kind == sqllex.Semicolon:
			stmt = statement{marker: -1}
		case tok.IsWord():
			word := p.upper.String(tok.Text)
			if i+1 < len(nodes) && nodes[i+1].group {
				toks, ok, err := p.call(word, nodes[i+1])
				if err != nil {
					return nil, err
				}
				if ok {
					out.Append(toks...)
					i++
					continue
				}
			}
			if p.keywords.IsKeyword(word) {
				tok.Text = word
			}
			switch word {
			case "SELECT", "INSERT", "UPDATE", "DELETE":
				if stmt.marker < 0 {
					stmt = statement{keyword: word, marker: out.Len() + 1}
				}
			case "LIMIT":
				next, err := p.limit(out, nodes, i, stmt)
				if err != nil {
					return nil, err
				}
				if next > 0 {
					i = next - 1
					continue
				}
			}
		}
		out.Append(tok)
	}
	return out.Tokens(), nil
}

// group translates a parenthesized group, keeping its parentheses.
func (p *pass) group(n node) ([]sqllex.Token, error) {
	inner, err := p.level(n.inner)
	if err != nil {
		return nil, err
	}
	return wrap(n.tok, inner, n.close), nil
}

func wrap(l sqllex.Token, inner []sqllex.Token, r sqllex.Token) []sqllex.Token {
	out := make([]sqllex.Token, 0, len(inner)+2)
	out = append(out, l)
	out = append(out, inner...)
	return append(out, r)
}

// call translates a function call when the target rewrites or renames it.
// It reports false for calls that are emitted unchanged.
func (p *pass) call(name string, args node) ([]sqllex.Token, bool, error) {
	rw, structural := p.rules.rewrites[name]
	to, renamed := p.rules.renames[name]
	if !structural && !renamed {
		return nil, false, nil
	}
	inner, err := p.level(args.inner)
	if err != nil {
		return nil, false, err
	}
	if structural {
		toks, err := rw(name, split(inner, isComma))
		if err != nil {
			return nil, false, err
		}
		if toks != nil {
			return toks, true, nil
		}
	}
	if renamed {
		name = to
	}
	return append([]sqllex.Token{sqllex.Word(name)}, wrap(args.tok, inner, args.close)...), true, nil
}

// split cuts tokens at depth-0 separators and trims the parts. It returns
// nil when tokens hold nothing but whitespace.
func split(tokens []sqllex.Token, sep func(sqllex.Token) bool) [][]sqllex.Token {
	if len(sqllex.TrimSpace(tokens)) == 0 {
		return nil
	}
	var (
		parts [][]sqllex.Token
		depth int
		start int
	)
	for i, t := range tokens {
		switch {
		case t.IsOpen():
			depth++
		case t.IsClose():
			depth--
		case depth == 0 && sep(t):
			parts = append(parts, sqllex.TrimSpace(tokens[start:i]))
			start = i + 1
		}
	}
	return append(parts, sqllex.TrimSpace(tokens[start:]))
}

func isComma(t sqllex.Token) bool { return t.Kind == sqllex.Comma }
