package sqllex

import "slices"

// Stream is an editable token sequence. Indices are logical positions in
// the current sequence; every edit shifts the positions after it.
type Stream struct {
	tokens []Token
}

// NewStream returns a stream holding a copy of tokens.
func NewStream(tokens ...Token) *Stream {
	return &Stream{tokens: slices.Clone(tokens)}
}

// Parse tokenizes sql into a stream.
func Parse(sql string) *Stream {
	return &Stream{tokens: Tokenize(sql)}
}

// Len returns the number of tokens.
func (s *Stream) Len() int { return len(s.tokens) }

// At returns the token at position i.
func (s *Stream) At(i int) Token { return s.tokens[i] }

// Tokens returns a copy of the sequence.
func (s *Stream) Tokens() []Token { return slices.Clone(s.tokens) }

// Slice returns a copy of the tokens in [i, j).
func (s *Stream) Slice(i, j int) []Token { return slices.Clone(s.tokens[i:j]) }

// Append adds tokens at the end of the stream.
func (s *Stream) Append(tokens ...Token) {
	s.tokens = append(s.tokens, tokens...)
}

// Insert inserts tokens before position i. Inserting at Len appends.
func (s *Stream) Insert(i int, tokens ...Token) {
	s.tokens = slices.Insert(s.tokens, i, tokens...)
}

// Remove removes the token at position i.
func (s *Stream) Remove(i int) {
	s.tokens = slices.Delete(s.tokens, i, i+1)
}

// RemoveRange removes the tokens in [i, j).
func (s *Stream) RemoveRange(i, j int) {
	s.tokens = slices.Delete(s.tokens, i, j)
}

// Replace replaces the tokens in [i, j) with tokens.
func (s *Stream) Replace(i, j int, tokens ...Token) {
	s.tokens = slices.Replace(s.tokens, i, j, tokens...)
}

// TrimRight removes trailing blank tokens. Comments are kept, and a
// trailing line comment keeps the line break that terminates it.
func (s *Stream) TrimRight() {
	n := len(s.tokens)
	j := n
	for j > 0 && s.tokens[j-1].Kind == Whitespace && !s.tokens[j-1].IsComment() {
		j--
	}
	if j > 0 && j < n && s.tokens[j-1].IsLineComment() {
		if s.tokens[j].Text == "\r" && j+1 < n && s.tokens[j+1].Text == "\n" {
			j++
		}
		j++
	}
	s.tokens = s.tokens[:j]
}

// String concatenates the token texts.
func (s *Stream) String() string { return Join(s.tokens) }
