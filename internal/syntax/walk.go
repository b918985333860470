package syntax

// Inspect walks the statement tree rooted at s in source order, calling f
// for every statement. If f returns false the statement's children are
// skipped.
func Inspect(s Stmt, f func(Stmt) bool) {
	if s == nil {
		return
	}
	if !f(s) {
		return
	}
	switch s := s.(type) {
	case *BlockStmt:
		for _, st := range s.List {
			Inspect(st, f)
		}
	case *ForEachStmt:
		Inspect(s.Body, f)
	case *IfStmt:
		Inspect(s.Then, f)
		if s.Else != nil {
			Inspect(s.Else, f)
		}
	case *LocalFuncStmt:
		Inspect(s.Body, f)
	}
}

// Contains reports whether target occurs in the tree rooted at s. Identity
// is pointer identity: statements are never copied after parsing.
func Contains(s Stmt, target Stmt) bool {
	found := false
	Inspect(s, func(n Stmt) bool {
		if n == target {
			found = true
		}
		return !found
	})
	return found
}
