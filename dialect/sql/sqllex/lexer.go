package sqllex

import (
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/leapdb/leap"
)

// Lexer produces the tokens of a SQL statement one at a time.
type Lexer struct {
	input string
	pos   int // start of the next token
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Reset restarts the lexer at the beginning of its input.
func (l *Lexer) Reset() { l.pos = 0 }

// Next returns the next token and false once the input is exhausted.
func (l *Lexer) Next() (Token, bool) {
	if l.pos >= len(l.input) {
		return Token{}, false
	}
	start := l.pos
	kind, end := l.scan(start)
	l.pos = end
	return Token{Text: l.input[start:end], Kind: kind, Offset: start}, true
}

// Tokenize returns all tokens of sql.
func Tokenize(sql string) []Token {
	l := NewLexer(sql)
	tokens := make([]Token, 0, len(sql)/3+1)
	for {
		t, ok := l.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, t)
	}
}

// All returns an iterator over the tokens of sql.
func All(sql string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		l := NewLexer(sql)
		for {
			t, ok := l.Next()
			if !ok || !yield(t) {
				return
			}
		}
	}
}

// FirstError returns a *leap.TokenizeError describing the first Error token,
// or nil when every span of the statement is well formed.
func FirstError(tokens []Token) error {
	for _, t := range tokens {
		if t.Kind == Error {
			return &leap.TokenizeError{Offset: t.Offset, Text: t.Text, Reason: reason(t.Text)}
		}
	}
	return nil
}

func reason(text string) string {
	switch {
	case strings.HasPrefix(text, "/*"):
		return "unterminated comment"
	case strings.HasPrefix(text, "["):
		return "malformed bracketed identifier"
	default:
		return "unterminated quoted literal"
	}
}

// scan classifies the token starting at i and returns its end offset.
// The end offset is always greater than i.
func (l *Lexer) scan(i int) (Kind, int) {
	s := l.input
	n := len(s)
	c := s[i]
	switch {
	case c == ',':
		return Comma, i + 1
	case c == '(' || c == ')':
		return Parenthesis, i + 1
	case c == '.':
		return Period, i + 1
	case c == ';':
		return Semicolon, i + 1
	case isSpace(c):
		return Whitespace, i + 1
	case c == '/':
		if i+1 < n && s[i+1] == '*' {
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				return Error, n
			}
			return Whitespace, i + 2 + end + 2
		}
		return Other, i + 1
	case c == '#':
		return Whitespace, lineEnd(s, i)
	case c == '-':
		if i+1 < n && s[i+1] == '-' {
			return Whitespace, lineEnd(s, i)
		}
		return Other, i + 1
	case c == '[':
		end := strings.IndexByte(s[i+1:], ']')
		if end < 0 {
			return Error, n
		}
		end += i + 1
		if strings.ContainsAny(s[i+1:end], "[\r\n") {
			return Error, end + 1
		}
		return Other, end + 1
	case c == '`' || c == '\'' || c == '"':
		return l.quoted(i, c)
	case c == '|':
		return Other, longest(s, i, "||")
	case c == '!':
		return Other, longest(s, i, "!=")
	case c == '<':
		return Other, longest(s, i, "<<<", "<<", "<=", "<>")
	case c == '>':
		return Other, longest(s, i, ">>>", ">>", ">=")
	case c == '0' && i+2 < n && (s[i+1] == 'x' || s[i+1] == 'X') && isHex(s[i+2]):
		j := i + 2
		for j < n && isHex(s[j]) {
			j++
		}
		return Other, j
	case isDigit(c):
		j := i
		for j < n && isDigit(s[j]) {
			j++
		}
		if j+1 < n && s[j] == '.' && isDigit(s[j+1]) {
			j++
			for j < n && isDigit(s[j]) {
				j++
			}
		}
		return Number, j
	case c == '_' || isLetter(c):
		j := i + 1
		for j < n && (s[j] == '_' || isLetter(s[j]) || isDigit(s[j])) {
			j++
		}
		return Other, j
	default:
		_, size := utf8.DecodeRuneInString(s[i:])
		return Other, i + size
	}
}

// quoted scans a literal delimited by q. A quote preceded by an odd number
// of backslashes is escaped.
func (l *Lexer) quoted(i int, q byte) (Kind, int) {
	s := l.input
	escaped := false
	for j := i + 1; j < len(s); j++ {
		switch c := s[j]; {
		case c == '\\':
			escaped = !escaped
		case c == q && !escaped:
			return Literal, j + 1
		default:
			escaped = false
		}
	}
	return Error, len(s)
}

// longest returns the end of the longest candidate operator found at i,
// falling back to the single byte at i.
func longest(s string, i int, candidates ...string) int {
	for _, op := range candidates {
		if strings.HasPrefix(s[i:], op) {
			return i + len(op)
		}
	}
	return i + 1
}

func lineEnd(s string, i int) int {
	if j := strings.IndexAny(s[i:], "\r\n"); j >= 0 {
		return i + j
	}
	return len(s)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f'
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isLetter(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }

func isHex(c byte) bool {
	return isDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
