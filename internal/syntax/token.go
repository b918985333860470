package syntax

import "strings"

// TokenKind defines the token classes produced by the lexer.
type TokenKind int

const (
	TokenIdent  TokenKind = iota // identifiers and keywords
	TokenNumber                  // numeric literals
	TokenString                  // "..." and '...' literals
	TokenPunct                   // operators and punctuation
	TokenEOF                     // end of input
)

// Token is a single lexical token together with the trivia that surrounds
// it. Leading trivia is everything since the previous token's trailing run;
// trailing trivia extends through the first end-of-line after the token.
type Token struct {
	Kind     TokenKind
	Text     string
	Offset   int // byte offset of Text in the original input
	Leading  TriviaRun
	Trailing TriviaRun
}

// Is reports whether the token has exactly the given text.
func (t Token) Is(text string) bool { return t.Text == text }

// Pos returns the offset of the token text, excluding leading trivia.
func (t Token) Pos() int { return t.Offset }

// End returns the offset just past the token text.
func (t Token) End() int { return t.Offset + len(t.Text) }

// Trivia returns the token's leading and trailing runs as one run, in order.
func (t Token) Trivia() TriviaRun { return t.Leading.Concat(t.Trailing) }

// render writes leading trivia, token text, and trailing trivia.
func (t Token) render(sb *strings.Builder) {
	sb.WriteString(t.Leading.Text())
	sb.WriteString(t.Text)
	sb.WriteString(t.Trailing.Text())
}

// RenderTokens reproduces the exact source text of a token sequence,
// including every piece of attached trivia.
func RenderTokens(toks []Token) string {
	var sb strings.Builder
	for _, t := range toks {
		t.render(&sb)
	}
	return sb.String()
}
