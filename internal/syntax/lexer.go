package syntax

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Lexer scans the input and produces tokens with attached trivia.
type Lexer struct {
	input    string
	position int
	tokens   []Token
}

// NewLexer returns a new Lexer over the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		tokens: make([]Token, 0),
	}
}

// multi-character operators, longest first
var longOperators = []string{
	"<<=", ">>=", "??=",
	"++", "--", "&&", "||", "==", "!=", "<=", ">=", "=>",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "??", "::",
}

// Tokenize scans the whole input. The returned slice always ends with an
// EOF token; trailing file trivia hangs off the EOF token's leading run.
func (l *Lexer) Tokenize() ([]Token, error) {
	for {
		leading, err := l.scanTrivia(false)
		if err != nil {
			return nil, err
		}

		if l.position >= len(l.input) {
			l.tokens = append(l.tokens, Token{Kind: TokenEOF, Offset: l.position, Leading: leading})
			return l.tokens, nil
		}

		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		tok.Leading = leading

		trailing, err := l.scanTrivia(true)
		if err != nil {
			return nil, err
		}
		tok.Trailing = trailing

		l.tokens = append(l.tokens, tok)
	}
}

// scanTrivia consumes whitespace and comments. In trailing mode it stops
// after the first end-of-line, which then belongs to the current token.
func (l *Lexer) scanTrivia(trailing bool) (TriviaRun, error) {
	var run TriviaRun
	for l.position < len(l.input) {
		c := l.input[l.position]
		switch {
		case c == ' ' || c == '\t':
			start := l.position
			for l.position < len(l.input) && (l.input[l.position] == ' ' || l.input[l.position] == '\t') {
				l.position++
			}
			run = append(run, Trivia{Kind: TriviaWhitespace, Text: l.input[start:l.position]})

		case c == '\n':
			l.position++
			run = append(run, Trivia{Kind: TriviaEndOfLine, Text: "\n"})
			if trailing {
				return run, nil
			}

		case c == '\r':
			start := l.position
			l.position++
			if l.position < len(l.input) && l.input[l.position] == '\n' {
				l.position++
			}
			run = append(run, Trivia{Kind: TriviaEndOfLine, Text: l.input[start:l.position]})
			if trailing {
				return run, nil
			}

		case c == '/' && l.position+1 < len(l.input) && l.input[l.position+1] == '/':
			start := l.position
			for l.position < len(l.input) && l.input[l.position] != '\n' && l.input[l.position] != '\r' {
				l.position++
			}
			run = append(run, Trivia{Kind: TriviaLineComment, Text: l.input[start:l.position]})

		case c == '/' && l.position+1 < len(l.input) && l.input[l.position+1] == '*':
			start := l.position
			l.position += 2
			closed := false
			for l.position+1 < len(l.input) {
				if l.input[l.position] == '*' && l.input[l.position+1] == '/' {
					l.position += 2
					closed = true
					break
				}
				l.position++
			}
			if !closed {
				return nil, fmt.Errorf("unterminated block comment at offset %d", start)
			}
			run = append(run, Trivia{Kind: TriviaBlockComment, Text: l.input[start:l.position]})

		default:
			return run, nil
		}
	}
	return run, nil
}

func (l *Lexer) scanToken() (Token, error) {
	start := l.position
	c := l.input[l.position]
	r, size := utf8.DecodeRuneInString(l.input[l.position:])

	switch {
	case isIdentStart(r):
		l.position += size
		l.scanIdentRest()
		return Token{Kind: TokenIdent, Text: l.input[start:l.position], Offset: start}, nil

	case c >= '0' && c <= '9':
		for l.position < len(l.input) {
			r, size := utf8.DecodeRuneInString(l.input[l.position:])
			if !isIdentPart(r) && r != '.' {
				break
			}
			l.position += size
		}
		return Token{Kind: TokenNumber, Text: l.input[start:l.position], Offset: start}, nil

	case c == '"' || c == '\'':
		quote := c
		l.position++
		for l.position < len(l.input) {
			if l.input[l.position] == '\\' {
				l.position += 2
				continue
			}
			if l.input[l.position] == quote {
				l.position++
				return Token{Kind: TokenString, Text: l.input[start:l.position], Offset: start}, nil
			}
			if l.input[l.position] == '\n' {
				break
			}
			l.position++
		}
		return Token{}, fmt.Errorf("unterminated literal at offset %d", start)

	default:
		for _, op := range longOperators {
			if len(l.input)-l.position >= len(op) && l.input[l.position:l.position+len(op)] == op {
				l.position += len(op)
				return Token{Kind: TokenPunct, Text: op, Offset: start}, nil
			}
		}
		l.position += size
		return Token{Kind: TokenPunct, Text: l.input[start:l.position], Offset: start}, nil
	}
}

// scanIdentRest consumes the remaining identifier runes after the start.
func (l *Lexer) scanIdentRest() {
	for l.position < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.position:])
		if !isIdentPart(r) {
			break
		}
		l.position += size
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '@' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
