package foreach

import (
	"errors"
	"fmt"
	"strings"

	"github.com/linqfix/linqfix/internal/syntax"
)

// ErrNotConvertible means classification produced nothing useful: no clause
// could be decomposed and no leftover code exists, so the rewrite would be a
// no-op. The refactoring must be withheld rather than offered degenerate.
var ErrNotConvertible = errors.New("loop is not convertible to a query expression")

// linqNamespace provides the query operators; the builder requests that it
// be imported when the rewrite site cannot already see it.
const linqNamespace = "System.Linq"

// ClauseKind identifies a rendered query clause.
type ClauseKind int

const (
	ClauseFrom ClauseKind = iota
	ClauseWhere
	ClauseLet
	ClauseSelect
)

func (k ClauseKind) String() string {
	switch k {
	case ClauseFrom:
		return "from"
	case ClauseWhere:
		return "where"
	case ClauseLet:
		return "let"
	case ClauseSelect:
		return "select"
	default:
		panic("invalid clause kind")
	}
}

// Clause is one rendered pipeline step together with the trivia that must
// surround it in the output.
type Clause struct {
	Kind     ClauseKind
	Text     string
	Leading  syntax.TriviaRun
	Trailing syntax.TriviaRun
}

// Rewrite is the bundle handed to the hosting surface: the replacement text
// for the loop statement, any statement to delete elsewhere, and the
// namespace imports the rewrite requires.
type Rewrite struct {
	Strategy Strategy

	// Clauses is the full rendered pipeline, initial source clause first,
	// final projection clause last.
	Clauses []Clause

	// Replacement is the text that stands in for the original loop
	// statement. For the Default strategy it embeds the leftover terminal
	// statements verbatim.
	Replacement string

	// Leftover holds the terminal statements the replacement re-emits
	// unchanged, in original order.
	Leftover []syntax.Stmt

	// DeleteBreak is a `yield break` statement made redundant by the
	// rewrite, or nil.
	DeleteBreak *syntax.YieldStmt

	// RequiredUsings lists namespaces the host must ensure are imported.
	RequiredUsings []string
}

// Build renders the chain into a query pipeline and wraps it per strategy.
func Build(file *syntax.File, c *Chain, s Strategy) (*Rewrite, error) {
	if len(c.Nodes) == 0 && len(c.Terminal) == 0 {
		return nil, ErrNotConvertible
	}

	r := &Rewrite{Strategy: s, DeleteBreak: s.DeleteBreak}

	r.Clauses = append(r.Clauses, Clause{
		Kind: ClauseFrom,
		Text: fmt.Sprintf("from %s in %s", c.Loop.Name.Text, c.Loop.Source.Text()),
	})

	for _, n := range c.Nodes {
		cl := Clause{Leading: n.Leading, Trailing: n.Trailing}
		switch n.Kind {
		case NodeSource:
			cl.Kind = ClauseFrom
			cl.Text = fmt.Sprintf("from %s in %s", n.Loop.Name.Text, n.Loop.Source.Text())
		case NodeFilter:
			cl.Kind = ClauseWhere
			cl.Text = fmt.Sprintf("where %s", n.If.Cond.Text())
		case NodeBinding:
			cl.Kind = ClauseLet
			cl.Text = fmt.Sprintf("let %s = %s", n.Decl.Name.Text, n.Decl.Init.Text())
		}
		r.Clauses = append(r.Clauses, cl)
	}

	sel := s.Select
	if sel.IsEmpty() {
		sel = syntax.ExprRun{c.LastIdentifier()}
	}
	r.Clauses = append(r.Clauses, Clause{
		Kind:     ClauseSelect,
		Text:     fmt.Sprintf("select %s", sel.Text()),
		Leading:  c.LeadingLeftover.Concat(s.Trivia),
		Trailing: trailingLeftover(c),
	})

	query := renderClauses(r.Clauses)

	switch s.Kind {
	case StrategyCount:
		r.Replacement = fmt.Sprintf("%s += (%s).Count();", s.Modifying.Text(), query)
	case StrategyToList:
		r.Replacement = fmt.Sprintf("%s = (%s).ToList();", s.Modifying.Text(), query)
	case StrategyYieldReturn:
		r.Replacement = fmt.Sprintf("return %s;", query)
	default:
		r.Leftover = c.Terminal
		var body strings.Builder
		for _, st := range c.Terminal {
			body.WriteString(syntax.Render(st))
		}
		r.Replacement = fmt.Sprintf("foreach (var %s in %s)\n{%s\n}",
			c.LastIdentifier().Text, query, body.String())
	}

	if !file.HasUsing(linqNamespace) {
		r.RequiredUsings = []string{linqNamespace}
	}
	return r, nil
}

// trailingLeftover flattens the chain's close-brace trivia, already stored
// inner-to-outer, into one run.
func trailingLeftover(c *Chain) syntax.TriviaRun {
	var out syntax.TriviaRun
	for _, run := range c.TrailingLeftover {
		out = out.Concat(run)
	}
	return out
}

// renderClauses joins the pipeline, emitting each clause's own trivia and
// inserting a single space only where the trivia provides no separation.
func renderClauses(clauses []Clause) string {
	var sb strings.Builder
	for i, cl := range clauses {
		if i > 0 && needsSeparator(sb.String(), cl) {
			sb.WriteString(" ")
		}
		sb.WriteString(cl.Leading.Text())
		sb.WriteString(cl.Text)
		sb.WriteString(cl.Trailing.Text())
	}
	return sb.String()
}

func needsSeparator(emitted string, next Clause) bool {
	if emitted == "" {
		return false
	}
	last := emitted[len(emitted)-1]
	if last == ' ' || last == '\t' || last == '\n' || last == '\r' {
		return false
	}
	if len(next.Leading) > 0 {
		k := next.Leading[0].Kind
		if k == syntax.TriviaWhitespace || k == syntax.TriviaEndOfLine {
			return false
		}
	}
	return true
}
