package semantics

import (
	"context"
	"strings"

	"github.com/linqfix/linqfix/internal/syntax"
)

// Resolver is a scope-table Oracle over a single parsed file. It tracks the
// declared types of method parameters and local variables and answers the
// list-Add question from those, including `var` declarations initialized
// with a list constructor.
type Resolver struct {
	file *syntax.File
}

var _ Oracle = (*Resolver)(nil)

// NewResolver returns a Resolver over the given file.
func NewResolver(file *syntax.File) *Resolver {
	return &Resolver{file: file}
}

// EnclosingMember walks the file's methods looking for the one whose body
// contains stmt.
func (r *Resolver) EnclosingMember(ctx context.Context, stmt syntax.Stmt) (*syntax.MethodDecl, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, m := range r.file.Methods() {
		if syntax.Contains(m.Body, stmt) {
			return m, nil
		}
	}
	return nil, nil
}

// ResolvesToListAdd resolves the receiver identifier against the enclosing
// member's parameters and local declarations and checks that its static
// type is the generic list type.
func (r *Resolver) ResolvesToListAdd(ctx context.Context, loop *syntax.ForEachStmt, receiver syntax.ExprRun) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	name, ok := receiver.Ident()
	if !ok {
		// only simple identifiers are resolvable without a full type engine
		return false, nil
	}

	member, err := r.EnclosingMember(ctx, loop)
	if err != nil || member == nil {
		return false, err
	}

	if typ, ok := lookupParam(member, name); ok {
		return isListType(typ), nil
	}

	found := false
	isList := false
	syntax.Inspect(member.Body, func(s syntax.Stmt) bool {
		decl, ok := s.(*syntax.LocalDeclStmt)
		if !ok {
			return !found
		}
		for _, d := range decl.Decls {
			if d.Name.Text != name {
				continue
			}
			found = true
			if decl.Type.Text() == "var" {
				isList = initializesList(d.Init)
			} else {
				isList = isListType(decl.Type.Text())
			}
		}
		return !found
	})
	return found && isList, nil
}

// lookupParam scans the raw parameter run for `Type name` pairs.
func lookupParam(m *syntax.MethodDecl, name string) (string, bool) {
	params := splitTopLevel(m.Params, ",")
	for _, param := range params {
		if len(param) < 2 {
			continue
		}
		last := param[len(param)-1]
		if last.Kind != syntax.TokenIdent || last.Text != name {
			continue
		}
		return syntax.ExprRun(param[:len(param)-1]).Text(), true
	}
	return "", false
}

// splitTopLevel splits a token run on the given separator, respecting
// parenthesis, bracket, and angle nesting inside generic arguments.
func splitTopLevel(run syntax.ExprRun, sep string) [][]syntax.Token {
	var out [][]syntax.Token
	var cur []syntax.Token
	depth := 0
	for _, tok := range run {
		switch tok.Text {
		case "(", "[", "<":
			depth++
		case ")", "]", ">":
			depth--
		case sep:
			if depth == 0 {
				out = append(out, cur)
				cur = nil
				continue
			}
		}
		cur = append(cur, tok)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// isListType reports whether the type text names the generic list type.
func isListType(typ string) bool {
	typ = strings.TrimSpace(typ)
	typ = strings.TrimPrefix(typ, "System.Collections.Generic.")
	return strings.HasPrefix(typ, "List<") && strings.HasSuffix(typ, ">")
}

// initializesList reports whether an initializer run constructs a list,
// e.g. `new List<int>()`. Constructor arguments and collection initializers
// are cut off before the type check.
func initializesList(init syntax.ExprRun) bool {
	if len(init) < 2 || !init[0].Is("new") {
		return false
	}
	typ := init[1:]
	for i, tok := range typ {
		if tok.Is("(") || tok.Is("{") {
			typ = typ[:i]
			break
		}
	}
	return isListType(syntax.ExprRun(typ).Text())
}
