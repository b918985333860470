package foreach

import (
	"github.com/linqfix/linqfix/internal/semantics"
	"github.com/linqfix/linqfix/internal/syntax"
)

// Classify descends from the loop body and builds the convertible clause
// chain in a single pass without backtracking. Descent stops at the first
// statement that cannot become a clause; everything from there to the end of
// its block lands in the terminal set and is never re-examined.
func Classify(loop *syntax.ForEachStmt, oracle semantics.Oracle) *Chain {
	c := &Chain{
		Loop:        loop,
		Oracle:      oracle,
		Identifiers: []syntax.Token{loop.Name},
	}

	var pending syntax.TriviaRun
	var closes []syntax.TriviaRun // close-brace trivia, outer-to-inner

	cur := loop.Body
	done := false
	for !done && cur != nil {
		switch s := cur.(type) {
		case *syntax.BlockStmt:
			pending = pending.Concat(tokenTrivia(s.Open))
			closes = append(closes, tokenTrivia(s.Close))
			if len(s.List) == 0 {
				cur = nil
				break
			}
			stop := -1
			for i, st := range s.List[:len(s.List)-1] {
				decl, ok := st.(*syntax.LocalDeclStmt)
				if !ok || !allInitialized(decl) {
					stop = i
					break
				}
				pending = c.appendDeclarators(decl, pending)
			}
			if stop >= 0 {
				c.Terminal = append([]syntax.Stmt{}, s.List[stop:]...)
				done = true
				break
			}
			cur = s.List[len(s.List)-1]

		case *syntax.ForEachStmt:
			c.Nodes = append(c.Nodes, Extended{
				Kind:     NodeSource,
				Loop:     s,
				Leading:  pending.Concat(s.ForEachTok.Leading),
				Trailing: s.Close.Trailing,
			})
			c.Identifiers = append(c.Identifiers, s.Name)
			pending = nil
			cur = s.Body

		case *syntax.IfStmt:
			if s.ElseTok != nil {
				c.Terminal = []syntax.Stmt{s}
				done = true
				break
			}
			c.Nodes = append(c.Nodes, Extended{
				Kind:     NodeFilter,
				If:       s,
				Leading:  pending.Concat(s.IfTok.Leading),
				Trailing: s.Close.Trailing,
			})
			pending = nil
			cur = s.Then

		case *syntax.LocalDeclStmt:
			// a declaration has no body to descend into; decomposing it
			// terminates the chain cleanly
			if !allInitialized(s) {
				c.Terminal = []syntax.Stmt{s}
				done = true
				break
			}
			pending = c.appendDeclarators(s, pending)
			cur = nil

		case *syntax.EmptyStmt:
			cur = nil

		default:
			c.Terminal = []syntax.Stmt{s}
			done = true
		}
	}

	c.LeadingLeftover = pending

	// collected outer-to-inner, stored inner-to-outer
	for i, j := 0, len(closes)-1; i < j; i, j = i+1, j-1 {
		closes[i], closes[j] = closes[j], closes[i]
	}
	c.TrailingLeftover = closes

	return c
}

// appendDeclarators decomposes an initialized declaration into one binding
// node per declared variable. The first variable takes the pending buffer
// plus the declaration's type trivia; later ones take the preceding
// separator's trailing trivia. Trailing trivia is whatever hangs off the end
// of the initializer, then the next separator's leading run or, for the last
// variable, the terminating semicolon's trivia. The pending buffer is
// consumed: the cleared buffer is returned.
func (c *Chain) appendDeclarators(decl *syntax.LocalDeclStmt, pending syntax.TriviaRun) syntax.TriviaRun {
	for i, d := range decl.Decls {
		var leading syntax.TriviaRun
		if i == 0 {
			leading = pending.Concat(runTrivia(decl.Type))
		} else {
			leading = decl.Commas[i-1].Trailing
		}
		trailing := d.Init[len(d.Init)-1].Trailing
		if i < len(decl.Commas) {
			trailing = trailing.Concat(decl.Commas[i].Leading)
		} else {
			trailing = trailing.Concat(tokenTrivia(decl.Semi))
		}
		c.Nodes = append(c.Nodes, Extended{
			Kind:     NodeBinding,
			Decl:     d,
			Leading:  leading,
			Trailing: trailing,
		})
		c.Identifiers = append(c.Identifiers, d.Name)
	}
	return nil
}

// allInitialized reports whether every declared variable has an initializer.
func allInitialized(decl *syntax.LocalDeclStmt) bool {
	for _, d := range decl.Decls {
		if !d.HasInitializer() {
			return false
		}
	}
	return true
}

// tokenTrivia returns the trivia surrounding a token, in order.
func tokenTrivia(t syntax.Token) syntax.TriviaRun {
	return t.Leading.Concat(t.Trailing)
}

// runTrivia flattens the trivia attached to every token of a run.
func runTrivia(run syntax.ExprRun) syntax.TriviaRun {
	var out syntax.TriviaRun
	for _, tok := range run {
		out = out.Concat(tokenTrivia(tok))
	}
	return out
}
