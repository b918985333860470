// Package foreach decides whether a foreach loop can be rewritten as an
// equivalent query expression and performs the rewrite. Classification walks
// the loop's statement chain top-down, the matcher picks a strategy from the
// statements where the walk stopped, and the builder renders the clause
// pipeline with every piece of source trivia reattached.
package foreach

import (
	"github.com/linqfix/linqfix/internal/semantics"
	"github.com/linqfix/linqfix/internal/syntax"
)

// NodeKind says which query clause an extended node becomes.
type NodeKind int

const (
	NodeSource  NodeKind = iota // nested foreach -> from clause
	NodeFilter                  // if without else -> where clause
	NodeBinding                 // initialized declarator -> let clause
)

func (k NodeKind) String() string {
	switch k {
	case NodeSource:
		return "from"
	case NodeFilter:
		return "where"
	case NodeBinding:
		return "let"
	default:
		panic("invalid node kind")
	}
}

// Extended is one semantic unit of the convertible chain, paired with the
// trivia that must be re-emitted verbatim around the generated clause.
type Extended struct {
	Kind NodeKind

	Loop *syntax.ForEachStmt // set for NodeSource
	If   *syntax.IfStmt      // set for NodeFilter
	Decl syntax.Declarator   // set for NodeBinding

	Leading  syntax.TriviaRun
	Trailing syntax.TriviaRun
}

// Chain is the sealed result of classifying one foreach loop. It is built
// exactly once and never mutated afterwards.
type Chain struct {
	// Loop is the root statement; it is implicit in Nodes.
	Loop *syntax.ForEachStmt

	// Oracle is the semantic collaborator the matcher consults.
	Oracle semantics.Oracle

	// Nodes is the convertible clause chain in descent order.
	Nodes []Extended

	// Identifiers holds every variable the chain introduces, root iteration
	// variable first, then one per nested loop or declared variable in the
	// order they come into scope.
	Identifiers []syntax.Token

	// Terminal holds the statements where descent stopped. Empty means the
	// chain terminated cleanly with no leftover code. When descent stopped
	// inside a block it holds every statement from the first unconvertible
	// one through the end of that block.
	Terminal []syntax.Stmt

	// LeadingLeftover is brace and comment trivia collected during descent
	// but not yet attached to any node when the walk stopped.
	LeadingLeftover syntax.TriviaRun

	// TrailingLeftover holds close-brace trivia runs. They are collected
	// outer-to-inner during descent and reversed before sealing, so the
	// stored order reads inner-to-outer on reconstruction.
	TrailingLeftover []syntax.TriviaRun
}

// LastIdentifier returns the most recently introduced identifier; with an
// empty clause chain that is the root iteration variable.
func (c *Chain) LastIdentifier() syntax.Token {
	return c.Identifiers[len(c.Identifiers)-1]
}
