package syntax

// StmtKind identifies the statement variants the classifier dispatches on.
type StmtKind int

const (
	KindBlock StmtKind = iota
	KindForEach
	KindIf
	KindLocalDecl
	KindEmpty
	KindExpr
	KindYieldReturn
	KindYieldBreak
	KindReturn
	KindLocalFunc
	KindOther
)

func (k StmtKind) String() string {
	switch k {
	case KindBlock:
		return "block"
	case KindForEach:
		return "foreach"
	case KindIf:
		return "if"
	case KindLocalDecl:
		return "local-declaration"
	case KindEmpty:
		return "empty"
	case KindExpr:
		return "expression"
	case KindYieldReturn:
		return "yield-return"
	case KindYieldBreak:
		return "yield-break"
	case KindReturn:
		return "return"
	case KindLocalFunc:
		return "local-function"
	case KindOther:
		return "other"
	default:
		panic("invalid statement kind")
	}
}

// Stmt is implemented by every statement node. Nodes are immutable once the
// parser returns; the refactoring core only reads them.
type Stmt interface {
	StmtKind() StmtKind
	// Tokens returns the statement's tokens in source order, trivia attached.
	Tokens() []Token
}

var (
	_ Stmt = (*BlockStmt)(nil)
	_ Stmt = (*ForEachStmt)(nil)
	_ Stmt = (*IfStmt)(nil)
	_ Stmt = (*LocalDeclStmt)(nil)
	_ Stmt = (*EmptyStmt)(nil)
	_ Stmt = (*ExprStmt)(nil)
	_ Stmt = (*YieldStmt)(nil)
	_ Stmt = (*ReturnStmt)(nil)
	_ Stmt = (*LocalFuncStmt)(nil)
	_ Stmt = (*OtherStmt)(nil)
)

// Pos returns the byte offset of the statement's first token text.
func Pos(s Stmt) int {
	toks := s.Tokens()
	return toks[0].Pos()
}

// End returns the byte offset just past the statement's last token text.
func End(s Stmt) int {
	toks := s.Tokens()
	return toks[len(toks)-1].End()
}

// Render reproduces the statement's exact source text, trivia included.
func Render(s Stmt) string {
	return RenderTokens(s.Tokens())
}

// BlockStmt is a brace-delimited statement list.
type BlockStmt struct {
	Open  Token
	List  []Stmt
	Close Token
}

func (s *BlockStmt) StmtKind() StmtKind { return KindBlock }
func (s *BlockStmt) Tokens() []Token {
	toks := []Token{s.Open}
	for _, st := range s.List {
		toks = append(toks, st.Tokens()...)
	}
	return append(toks, s.Close)
}

// ForEachStmt is `foreach (Type name in source) body`.
type ForEachStmt struct {
	ForEachTok Token
	Open       Token
	Type       ExprRun
	Name       Token
	In         Token
	Source     ExprRun
	Close      Token
	Body       Stmt
}

func (s *ForEachStmt) StmtKind() StmtKind { return KindForEach }
func (s *ForEachStmt) Tokens() []Token {
	toks := []Token{s.ForEachTok, s.Open}
	toks = append(toks, s.Type...)
	toks = append(toks, s.Name, s.In)
	toks = append(toks, s.Source...)
	toks = append(toks, s.Close)
	return append(toks, s.Body.Tokens()...)
}

// IfStmt is `if (cond) then` with an optional else branch.
type IfStmt struct {
	IfTok   Token
	Open    Token
	Cond    ExprRun
	Close   Token
	Then    Stmt
	ElseTok *Token
	Else    Stmt
}

func (s *IfStmt) StmtKind() StmtKind { return KindIf }
func (s *IfStmt) Tokens() []Token {
	toks := []Token{s.IfTok, s.Open}
	toks = append(toks, s.Cond...)
	toks = append(toks, s.Close)
	toks = append(toks, s.Then.Tokens()...)
	if s.ElseTok != nil {
		toks = append(toks, *s.ElseTok)
		toks = append(toks, s.Else.Tokens()...)
	}
	return toks
}

// Declarator is one `name = init` unit of a local declaration. Assign and
// Init are absent when the variable has no initializer.
type Declarator struct {
	Name   Token
	Assign *Token
	Init   ExprRun
}

// HasInitializer reports whether the declarator carries an initial value.
func (d Declarator) HasInitializer() bool { return d.Assign != nil }

func (d Declarator) tokens() []Token {
	toks := []Token{d.Name}
	if d.Assign != nil {
		toks = append(toks, *d.Assign)
		toks = append(toks, d.Init...)
	}
	return toks
}

// LocalDeclStmt is `Type a = x, b = y;`. Commas holds the separators between
// declarators, in order; len(Commas) == len(Decls)-1.
type LocalDeclStmt struct {
	Type   ExprRun
	Decls  []Declarator
	Commas []Token
	Semi   Token
}

func (s *LocalDeclStmt) StmtKind() StmtKind { return KindLocalDecl }
func (s *LocalDeclStmt) Tokens() []Token {
	toks := append([]Token{}, s.Type...)
	for i, d := range s.Decls {
		toks = append(toks, d.tokens()...)
		if i < len(s.Commas) {
			toks = append(toks, s.Commas[i])
		}
	}
	return append(toks, s.Semi)
}

// EmptyStmt is a lone semicolon.
type EmptyStmt struct {
	Semi Token
}

func (s *EmptyStmt) StmtKind() StmtKind { return KindEmpty }
func (s *EmptyStmt) Tokens() []Token    { return []Token{s.Semi} }

// ExprStmt is an expression followed by a semicolon.
type ExprStmt struct {
	Expr ExprRun
	Semi Token
}

func (s *ExprStmt) StmtKind() StmtKind { return KindExpr }
func (s *ExprStmt) Tokens() []Token {
	toks := append([]Token{}, s.Expr...)
	return append(toks, s.Semi)
}

// YieldStmt is `yield return expr;` or `yield break;`.
type YieldStmt struct {
	YieldTok Token
	KindTok  Token // "return" or "break"
	Value    ExprRun
	Semi     Token
}

func (s *YieldStmt) StmtKind() StmtKind {
	if s.KindTok.Is("break") {
		return KindYieldBreak
	}
	return KindYieldReturn
}

func (s *YieldStmt) Tokens() []Token {
	toks := []Token{s.YieldTok, s.KindTok}
	toks = append(toks, s.Value...)
	return append(toks, s.Semi)
}

// ReturnStmt is `return expr;`; Value may be empty.
type ReturnStmt struct {
	ReturnTok Token
	Value     ExprRun
	Semi      Token
}

func (s *ReturnStmt) StmtKind() StmtKind { return KindReturn }
func (s *ReturnStmt) Tokens() []Token {
	toks := []Token{s.ReturnTok}
	toks = append(toks, s.Value...)
	return append(toks, s.Semi)
}

// LocalFuncStmt is a function declared inside a method body. The yield
// matcher must skip these when counting a member's own yield statements.
type LocalFuncStmt struct {
	ReturnType ExprRun
	Name       Token
	Open       Token
	Params     ExprRun
	Close      Token
	Body       *BlockStmt
}

func (s *LocalFuncStmt) StmtKind() StmtKind { return KindLocalFunc }
func (s *LocalFuncStmt) Tokens() []Token {
	toks := append([]Token{}, s.ReturnType...)
	toks = append(toks, s.Name, s.Open)
	toks = append(toks, s.Params...)
	toks = append(toks, s.Close)
	return append(toks, s.Body.Tokens()...)
}

// OtherStmt is any construct the parser does not model (while, for, try,
// switch, ...). It is consumed as a balanced token run so classification can
// treat it as unconvertible instead of failing the whole file.
type OtherStmt struct {
	Toks []Token
}

func (s *OtherStmt) StmtKind() StmtKind { return KindOther }
func (s *OtherStmt) Tokens() []Token    { return s.Toks }

// UsingDirective is a file-level `using Some.Namespace;`.
type UsingDirective struct {
	UsingTok Token
	Name     ExprRun
	Semi     Token
}

func (u *UsingDirective) tokens() []Token {
	toks := []Token{u.UsingTok}
	toks = append(toks, u.Name...)
	return append(toks, u.Semi)
}

// Decl is a top-level declaration: a class or a method.
type Decl interface {
	declTokens() []Token
}

// MethodDecl is a method with a block body.
type MethodDecl struct {
	Modifiers  []Token
	ReturnType ExprRun
	Name       Token
	Open       Token
	Params     ExprRun
	Close      Token
	Body       *BlockStmt
}

func (m *MethodDecl) declTokens() []Token {
	toks := append([]Token{}, m.Modifiers...)
	toks = append(toks, m.ReturnType...)
	toks = append(toks, m.Name, m.Open)
	toks = append(toks, m.Params...)
	toks = append(toks, m.Close)
	return append(toks, m.Body.Tokens()...)
}

// ClassDecl is a class holding method members.
type ClassDecl struct {
	Modifiers []Token
	ClassTok  Token
	Name      Token
	Open      Token
	Members   []*MethodDecl
	Close     Token
}

func (c *ClassDecl) declTokens() []Token {
	toks := append([]Token{}, c.Modifiers...)
	toks = append(toks, c.ClassTok, c.Name, c.Open)
	for _, m := range c.Members {
		toks = append(toks, m.declTokens()...)
	}
	return append(toks, c.Close)
}

// File is a parsed compilation unit.
type File struct {
	Usings []*UsingDirective
	Decls  []Decl
	EOF    Token
}

// Methods returns every method in the file in source order, including
// class members.
func (f *File) Methods() []*MethodDecl {
	var out []*MethodDecl
	for _, d := range f.Decls {
		switch d := d.(type) {
		case *MethodDecl:
			out = append(out, d)
		case *ClassDecl:
			out = append(out, d.Members...)
		}
	}
	return out
}

// HasUsing reports whether a `using name;` directive is present.
func (f *File) HasUsing(name string) bool {
	for _, u := range f.Usings {
		if u.Name.Text() == name {
			return true
		}
	}
	return false
}
