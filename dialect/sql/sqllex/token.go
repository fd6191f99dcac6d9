// Package sqllex splits SQL statements into typed tokens.
//
// Tokenization is lossless: concatenating the Text of every token returned
// by Tokenize reproduces the input byte for byte, which is what lets the
// dialect translator rewrite statements by editing the token sequence.
package sqllex

import (
	"strings"
)

// Kind classifies a token.
type Kind int

// Token kinds.
const (
	Comma Kind = iota + 1
	Error
	Literal
	Number
	Other
	Parenthesis
	Period
	Semicolon
	Whitespace
)

var kindNames = [...]string{
	Comma:       "comma",
	Error:       "error",
	Literal:     "literal",
	Number:      "number",
	Other:       "other",
	Parenthesis: "parenthesis",
	Period:      "period",
	Semicolon:   "semicolon",
	Whitespace:  "whitespace",
}

// String returns the kind name.
func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Token is a typed span of a SQL statement.
type Token struct {
	Text   string `json:"text" yaml:"text"`
	Kind   Kind   `json:"kind" yaml:"kind"`
	Offset int    `json:"offset" yaml:"offset"` // byte offset in the tokenized input; -1 for synthesized tokens
}

// New returns a synthesized token that does not point into any input.
func New(kind Kind, text string) Token {
	return Token{Text: text, Kind: kind, Offset: -1}
}

// Space returns a single-space whitespace token.
func Space() Token { return New(Whitespace, " ") }

// Word returns an Other token holding a keyword, identifier or operator.
func Word(text string) Token { return New(Other, text) }

// IsWord reports whether the token is an unquoted identifier or keyword.
func (t Token) IsWord() bool {
	if t.Kind != Other || t.Text == "" {
		return false
	}
	c := t.Text[0]
	return c == '_' || isLetter(c)
}

// Is reports whether the token is the word w, ignoring case.
func (t Token) Is(w string) bool {
	return t.Kind == Other && strings.EqualFold(t.Text, w)
}

// IsComment reports whether the token is a comment. Comments are
// Whitespace tokens.
func (t Token) IsComment() bool {
	return t.Kind == Whitespace && t.Text != "" && !isSpace(t.Text[0])
}

// IsLineComment reports whether the token is a "--" or "#" comment, which
// ends at the next line break.
func (t Token) IsLineComment() bool {
	return t.IsComment() && t.Text[0] != '/'
}

// IsOpen reports whether the token is an opening parenthesis.
func (t Token) IsOpen() bool { return t.Kind == Parenthesis && t.Text == "(" }

// IsClose reports whether the token is a closing parenthesis.
func (t Token) IsClose() bool { return t.Kind == Parenthesis && t.Text == ")" }

// Join concatenates the text of the tokens.
func Join(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// TrimSpace drops leading and trailing whitespace tokens.
func TrimSpace(tokens []Token) []Token {
	i, j := 0, len(tokens)
	for i < j && tokens[i].Kind == Whitespace {
		i++
	}
	for j > i && tokens[j-1].Kind == Whitespace {
		j--
	}
	return tokens[i:j]
}

// Cleanse collapses every run of whitespace (comments included) into a
// single space token and drops leading and trailing whitespace.
func Cleanse(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind == Whitespace {
			if len(out) == 0 || out[len(out)-1].Kind == Whitespace {
				continue
			}
			out = append(out, Token{Text: " ", Kind: Whitespace, Offset: t.Offset})
			continue
		}
		out = append(out, t)
	}
	return TrimSpace(out)
}
