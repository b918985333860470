package syntax

import "strings"

// ExprRun is an expression stored as a flat token run. The refactoring core
// never needs a full expression grammar; it inspects runs for the handful of
// shapes the terminal matcher cares about and otherwise re-emits them.
type ExprRun []Token

// Text renders the run with its interior trivia but without the leading
// trivia of the first token or the trailing trivia of the last, so the
// result can be embedded in a generated clause.
func (e ExprRun) Text() string {
	if len(e) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, tok := range e {
		if i > 0 {
			sb.WriteString(e[i-1].Trailing.Text())
			sb.WriteString(tok.Leading.Text())
		}
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

// IsEmpty reports whether the run holds no tokens.
func (e ExprRun) IsEmpty() bool { return len(e) == 0 }

// Ident returns the identifier text when the run is a single identifier.
func (e ExprRun) Ident() (string, bool) {
	if len(e) == 1 && e[0].Kind == TokenIdent {
		return e[0].Text, true
	}
	return "", false
}

// PostfixIncrementOperand returns the operand of a postfix `++` expression,
// or false when the run has another shape.
func (e ExprRun) PostfixIncrementOperand() (ExprRun, bool) {
	if len(e) < 2 || !e[len(e)-1].Is("++") {
		return nil, false
	}
	return e[:len(e)-1], true
}

// SingleArgCall matches the shape `receiver.Method(argument)` where the
// argument list holds exactly one top-level argument. The receiver is
// everything before the final member access.
func (e ExprRun) SingleArgCall() (recv ExprRun, method Token, arg ExprRun, ok bool) {
	if len(e) < 5 || !e[len(e)-1].Is(")") {
		return nil, Token{}, nil, false
	}

	// find the '(' matching the final ')'
	depth := 0
	open := -1
	for i := len(e) - 1; i >= 0; i-- {
		switch e[i].Text {
		case ")", "]":
			depth++
		case "(", "[":
			depth--
			if depth == 0 {
				open = i
			}
		}
		if open >= 0 {
			break
		}
	}
	if open < 2 {
		return nil, Token{}, nil, false
	}

	name := e[open-1]
	dot := e[open-2]
	if name.Kind != TokenIdent || !dot.Is(".") {
		return nil, Token{}, nil, false
	}

	arg = e[open+1 : len(e)-1]
	if len(arg) == 0 {
		return nil, Token{}, nil, false
	}
	depth = 0
	for _, tok := range arg {
		switch tok.Text {
		case "(", "[":
			depth++
		case ")", "]":
			depth--
		case ",":
			if depth == 0 {
				return nil, Token{}, nil, false
			}
		}
	}

	return e[:open-2], name, arg, true
}
