// Package semantics answers the type-level questions the syntax tree alone
// cannot: what a call binds to and which member owns a statement. The
// refactoring core only depends on the Oracle interface, so tests can run
// against a fake without a real resolution engine.
package semantics

import (
	"context"

	"github.com/linqfix/linqfix/internal/syntax"
)

// Oracle is the semantic collaborator of the classifier and matcher. Every
// method takes a context; lookups may be expensive, and a cancellation must
// surface before the lookup starts so the caller can abandon the analysis.
type Oracle interface {
	// ResolvesToListAdd reports whether a one-argument `receiver.Add(arg)`
	// call at the given loop binds to the single-parameter Add member of
	// the generic list type on the receiver's static type.
	ResolvesToListAdd(ctx context.Context, loop *syntax.ForEachStmt, receiver syntax.ExprRun) (bool, error)

	// EnclosingMember returns the method whose body contains the statement,
	// or nil when the statement is not owned by any known member.
	EnclosingMember(ctx context.Context, stmt syntax.Stmt) (*syntax.MethodDecl, error)
}
