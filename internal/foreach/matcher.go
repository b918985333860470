package foreach

import (
	"context"

	"github.com/linqfix/linqfix/internal/syntax"
)

// Match selects the conversion strategy for the sealed chain. Only a
// terminal set of exactly one statement can match a specialized strategy;
// any other cardinality falls back to Default. Strategy selection is a pure
// function of the terminal shape and the oracle's answers.
//
// A context error aborts the match: the caller must treat it as "refactoring
// not applicable", never as a partial result.
func Match(ctx context.Context, c *Chain) (Strategy, error) {
	def := Strategy{Kind: StrategyDefault}

	if len(c.Terminal) != 1 {
		return def, nil
	}

	switch t := c.Terminal[0].(type) {
	case *syntax.ExprStmt:
		if operand, ok := t.Expr.PostfixIncrementOperand(); ok {
			return Strategy{
				Kind:      StrategyCount,
				Select:    syntax.ExprRun{c.Identifiers[0]},
				Modifying: operand,
				Trivia:    stmtTrivia(t),
			}, nil
		}
		recv, method, arg, ok := t.Expr.SingleArgCall()
		if !ok || !method.Is("Add") {
			return def, nil
		}
		if err := ctx.Err(); err != nil {
			return def, err
		}
		isListAdd, err := c.Oracle.ResolvesToListAdd(ctx, c.Loop, recv)
		if err != nil {
			return def, err
		}
		if isListAdd {
			return Strategy{
				Kind:      StrategyToList,
				Select:    arg,
				Modifying: recv,
				Trivia:    stmtTrivia(t),
			}, nil
		}
		return def, nil

	case *syntax.YieldStmt:
		if t.StmtKind() != syntax.KindYieldReturn {
			return def, nil
		}
		return c.matchYield(ctx, t)
	}

	return def, nil
}

// matchYield checks the strict shape required to turn a yielding loop into
// a plain return: the loop is a direct statement of its member's body, last
// ignoring local functions, and the member owns no other yields — except for
// a single trailing `yield break` paired for deletion.
func (c *Chain) matchYield(ctx context.Context, t *syntax.YieldStmt) (Strategy, error) {
	def := Strategy{Kind: StrategyDefault}

	if err := ctx.Err(); err != nil {
		return def, err
	}
	member, err := c.Oracle.EnclosingMember(ctx, c.Loop)
	if err != nil || member == nil {
		return def, err
	}

	var body []syntax.Stmt
	for _, s := range member.Body.List {
		if s.StmtKind() != syntax.KindLocalFunc {
			body = append(body, s)
		}
	}
	loopIdx := -1
	for i, s := range body {
		if s == syntax.Stmt(c.Loop) {
			loopIdx = i
		}
	}
	if loopIdx < 0 {
		// the loop is nested under some other statement; rewriting its
		// yield would change the member's remaining control flow
		return def, nil
	}

	yields := countOwnYields(member)
	last := len(body) - 1

	if yields == 1 && loopIdx == last {
		return Strategy{
			Kind:   StrategyYieldReturn,
			Select: t.Value,
			Trivia: stmtTrivia(t),
		}, nil
	}

	if yields == 2 && loopIdx == last-1 {
		if br, ok := body[last].(*syntax.YieldStmt); ok &&
			br.StmtKind() == syntax.KindYieldBreak && deletable(br) {
			return Strategy{
				Kind:        StrategyYieldReturn,
				Select:      t.Value,
				Trivia:      stmtTrivia(t),
				DeleteBreak: br,
			}, nil
		}
	}

	return def, nil
}

// countOwnYields counts the yield statements a member directly owns,
// excluding any inside nested local functions. Unmodeled statements are
// opaque token runs, so their yields are counted lexically; a `yield`
// identifier used as a plain name overcounts, which only means the
// rewrite conservatively stays off.
func countOwnYields(member *syntax.MethodDecl) int {
	count := 0
	syntax.Inspect(member.Body, func(s syntax.Stmt) bool {
		switch s.StmtKind() {
		case syntax.KindLocalFunc:
			return false
		case syntax.KindYieldReturn, syntax.KindYieldBreak:
			count++
		case syntax.KindOther:
			for _, tok := range s.Tokens() {
				if tok.Kind == syntax.TokenIdent && tok.Text == "yield" {
					count++
				}
			}
		}
		return true
	})
	return count
}

// deletable reports whether removing the statement loses no commentary.
func deletable(s syntax.Stmt) bool {
	for _, tok := range s.Tokens() {
		if tok.Leading.HasComment() || tok.Trailing.HasComment() {
			return false
		}
	}
	return true
}

// stmtTrivia returns the statement's outer trivia: the leading run of its
// first token and the trailing run of its last. Interior trivia travels
// with the expression runs themselves.
func stmtTrivia(s syntax.Stmt) syntax.TriviaRun {
	toks := s.Tokens()
	return toks[0].Leading.Concat(toks[len(toks)-1].Trailing)
}
