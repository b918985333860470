package syntax

import "fmt"

// Parser consumes tokens produced by the lexer and builds a File.
type Parser struct {
	toks []Token
	pos  int
}

// Parse lexes and parses a compilation unit. A non-nil error means the
// input could not be modeled; callers treat that as "refactoring does not
// apply" rather than a fault.
func Parse(input string) (*File, error) {
	toks, err := NewLexer(input).Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	return p.parseFile()
}

// ParseStatement parses a single statement, mainly for tests and tools that
// operate on snippets rather than whole files.
func ParseStatement(input string) (Stmt, error) {
	toks, err := NewLexer(input).Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	s, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		return nil, p.errorf("unexpected %q after statement", p.cur().Text)
	}
	return s, nil
}

func (p *Parser) cur() Token { return p.toks[p.pos] }

func (p *Parser) peek(n int) Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos+n]
}

func (p *Parser) atEOF() bool { return p.cur().Kind == TokenEOF }

func (p *Parser) advance() Token {
	t := p.cur()
	if !p.atEOF() {
		p.pos++
	}
	return t
}

func (p *Parser) expect(text string) (Token, error) {
	if !p.cur().Is(text) {
		return Token{}, p.errorf("expected %q, found %q", text, p.cur().Text)
	}
	return p.advance(), nil
}

func (p *Parser) expectIdent() (Token, error) {
	if p.cur().Kind != TokenIdent {
		return Token{}, p.errorf("expected identifier, found %q", p.cur().Text)
	}
	return p.advance(), nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return fmt.Errorf("offset %d: %s", p.cur().Offset, fmt.Sprintf(format, args...))
}

func (p *Parser) parseFile() (*File, error) {
	f := &File{}

	for p.cur().Is("using") && !p.peek(1).Is("(") {
		u, err := p.parseUsing()
		if err != nil {
			return nil, err
		}
		f.Usings = append(f.Usings, u)
	}

	for !p.atEOF() {
		d, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		f.Decls = append(f.Decls, d)
	}

	f.EOF = p.cur()
	return f, nil
}

func (p *Parser) parseUsing() (*UsingDirective, error) {
	u := &UsingDirective{UsingTok: p.advance()}
	for !p.cur().Is(";") {
		if p.atEOF() {
			return nil, p.errorf("unterminated using directive")
		}
		u.Name = append(u.Name, p.advance())
	}
	u.Semi = p.advance()
	return u, nil
}

var modifierWords = map[string]bool{
	"public": true, "private": true, "protected": true, "internal": true,
	"static": true, "virtual": true, "override": true, "sealed": true,
	"abstract": true, "async": true, "partial": true,
}

func (p *Parser) parseModifiers() []Token {
	var mods []Token
	for p.cur().Kind == TokenIdent && modifierWords[p.cur().Text] {
		// `partial class` keeps partial as a modifier; a modifier word
		// followed by '(' or '.' is really a type or receiver, stop there.
		if p.peek(1).Is("(") || p.peek(1).Is(".") {
			break
		}
		mods = append(mods, p.advance())
	}
	return mods
}

func (p *Parser) parseDecl() (Decl, error) {
	mods := p.parseModifiers()

	if p.cur().Is("class") {
		c := &ClassDecl{Modifiers: mods, ClassTok: p.advance()}
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		c.Name = name
		if c.Open, err = p.expect("{"); err != nil {
			return nil, err
		}
		for !p.cur().Is("}") {
			if p.atEOF() {
				return nil, p.errorf("unterminated class body")
			}
			m, err := p.parseMethod(p.parseModifiers())
			if err != nil {
				return nil, err
			}
			c.Members = append(c.Members, m)
		}
		c.Close = p.advance()
		return c, nil
	}

	return p.parseMethod(mods)
}

func (p *Parser) parseMethod(mods []Token) (*MethodDecl, error) {
	m := &MethodDecl{Modifiers: mods}

	rt, ok := p.tryType()
	if !ok {
		return nil, p.errorf("expected method return type, found %q", p.cur().Text)
	}
	m.ReturnType = rt

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	m.Name = name

	if m.Open, err = p.expect("("); err != nil {
		return nil, err
	}
	if m.Params, m.Close, err = p.scanUntilCloseParen(); err != nil {
		return nil, err
	}
	if m.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	return m, nil
}

// tryType speculatively scans a type name: a dotted identifier with optional
// generic arguments, array ranks, and a nullable marker. On failure the
// parser position is restored and ok is false.
func (p *Parser) tryType() (ExprRun, bool) {
	start := p.pos
	if p.cur().Kind != TokenIdent {
		return nil, false
	}

	run := ExprRun{p.advance()}
	for p.cur().Is(".") && p.peek(1).Kind == TokenIdent {
		run = append(run, p.advance(), p.advance())
	}

	if p.cur().Is("<") {
		depth := 0
		for {
			t := p.cur()
			switch {
			case t.Is("<"):
				depth++
			case t.Is(">"):
				depth--
			case t.Kind == TokenIdent, t.Is(","), t.Is("."), t.Is("["), t.Is("]"), t.Is("?"):
				// allowed inside generic arguments
			default:
				p.pos = start
				return nil, false
			}
			run = append(run, p.advance())
			if depth == 0 {
				break
			}
			if p.atEOF() {
				p.pos = start
				return nil, false
			}
		}
	}

	for p.cur().Is("[") && p.peek(1).Is("]") {
		run = append(run, p.advance(), p.advance())
	}
	if p.cur().Is("?") {
		run = append(run, p.advance())
	}
	return run, true
}

func (p *Parser) parseBlock() (*BlockStmt, error) {
	open, err := p.expect("{")
	if err != nil {
		return nil, err
	}
	b := &BlockStmt{Open: open}
	for !p.cur().Is("}") {
		if p.atEOF() {
			return nil, p.errorf("unterminated block")
		}
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		b.List = append(b.List, s)
	}
	b.Close = p.advance()
	return b, nil
}

func (p *Parser) parseStmt() (Stmt, error) {
	switch {
	case p.cur().Is("{"):
		return p.parseBlock()
	case p.cur().Is(";"):
		return &EmptyStmt{Semi: p.advance()}, nil
	case p.cur().Is("foreach"):
		return p.parseForEach()
	case p.cur().Is("if"):
		return p.parseIf()
	case p.cur().Is("yield") && (p.peek(1).Is("return") || p.peek(1).Is("break")):
		return p.parseYield()
	case p.cur().Is("return"):
		return p.parseReturn()
	}

	// local declaration or local function?
	save := p.pos
	if rt, ok := p.tryType(); ok && p.cur().Kind == TokenIdent {
		switch {
		case p.peek(1).Is("("):
			return p.parseLocalFunc(rt)
		case p.peek(1).Is("=") || p.peek(1).Is(",") || p.peek(1).Is(";"):
			return p.parseLocalDecl(rt)
		}
	}
	p.pos = save

	if expr, semi, ok := p.scanExprStmt(); ok {
		return &ExprStmt{Expr: expr, Semi: semi}, nil
	}
	return p.parseOther()
}

func (p *Parser) parseForEach() (*ForEachStmt, error) {
	fe := &ForEachStmt{ForEachTok: p.advance()}

	var err error
	if fe.Open, err = p.expect("("); err != nil {
		return nil, err
	}
	for !(p.cur().Kind == TokenIdent && p.peek(1).Is("in")) {
		if p.atEOF() || p.cur().Is(")") {
			return nil, p.errorf("malformed foreach header")
		}
		fe.Type = append(fe.Type, p.advance())
	}
	if fe.Type.IsEmpty() {
		return nil, p.errorf("foreach header is missing an iteration type")
	}
	fe.Name = p.advance()
	fe.In = p.advance()
	if fe.Source, fe.Close, err = p.scanUntilCloseParen(); err != nil {
		return nil, err
	}
	if fe.Source.IsEmpty() {
		return nil, p.errorf("foreach header is missing a source expression")
	}
	if fe.Body, err = p.parseStmt(); err != nil {
		return nil, err
	}
	return fe, nil
}

func (p *Parser) parseIf() (*IfStmt, error) {
	s := &IfStmt{IfTok: p.advance()}

	var err error
	if s.Open, err = p.expect("("); err != nil {
		return nil, err
	}
	if s.Cond, s.Close, err = p.scanUntilCloseParen(); err != nil {
		return nil, err
	}
	if s.Cond.IsEmpty() {
		return nil, p.errorf("if statement is missing a condition")
	}
	if s.Then, err = p.parseStmt(); err != nil {
		return nil, err
	}
	if p.cur().Is("else") {
		elseTok := p.advance()
		s.ElseTok = &elseTok
		if s.Else, err = p.parseStmt(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (p *Parser) parseYield() (*YieldStmt, error) {
	s := &YieldStmt{YieldTok: p.advance(), KindTok: p.advance()}

	var err error
	if s.KindTok.Is("return") {
		if s.Value, err = p.scanUntilSemi(); err != nil {
			return nil, err
		}
		if s.Value.IsEmpty() {
			return nil, p.errorf("yield return is missing a value")
		}
	}
	if s.Semi, err = p.expect(";"); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *Parser) parseReturn() (*ReturnStmt, error) {
	s := &ReturnStmt{ReturnTok: p.advance()}

	var err error
	if s.Value, err = p.scanUntilSemi(); err != nil {
		return nil, err
	}
	if s.Semi, err = p.expect(";"); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *Parser) parseLocalFunc(rt ExprRun) (Stmt, error) {
	save := p.pos
	f := &LocalFuncStmt{ReturnType: rt, Name: p.advance()}

	var err error
	if f.Open, err = p.expect("("); err != nil {
		return nil, err
	}
	if f.Params, f.Close, err = p.scanUntilCloseParen(); err != nil {
		return nil, err
	}
	if !p.cur().Is("{") {
		// expression-bodied or malformed: fall back to an opaque statement
		p.pos = save - len(rt)
		return p.parseOther()
	}
	if f.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	return f, nil
}

func (p *Parser) parseLocalDecl(typ ExprRun) (*LocalDeclStmt, error) {
	d := &LocalDeclStmt{Type: typ}
	for {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		decl := Declarator{Name: name}
		if p.cur().Is("=") {
			assign := p.advance()
			decl.Assign = &assign
			if decl.Init, err = p.scanInitializer(); err != nil {
				return nil, err
			}
			if decl.Init.IsEmpty() {
				return nil, p.errorf("declarator %q has an empty initializer", name.Text)
			}
		}
		d.Decls = append(d.Decls, decl)

		if p.cur().Is(",") {
			d.Commas = append(d.Commas, p.advance())
			continue
		}
		if d.Semi, err = p.expect(";"); err != nil {
			return nil, err
		}
		return d, nil
	}
}

// parseOther consumes one unmodeled statement as a balanced token run.
func (p *Parser) parseOther() (Stmt, error) {
	var toks []Token
	depth := 0
	braces := 0
	sawBrace := false
	for !p.atEOF() {
		if p.cur().Is("}") && braces == 0 {
			break // the enclosing block's close brace
		}
		t := p.advance()
		toks = append(toks, t)
		switch t.Text {
		case "(", "[":
			depth++
		case ")", "]":
			depth--
		case "{":
			braces++
			sawBrace = true
		case "}":
			braces--
		}
		if braces == 0 && depth == 0 && (t.Is(";") || (sawBrace && t.Is("}"))) {
			break
		}
	}
	if len(toks) == 0 {
		return nil, p.errorf("expected statement, found %q", p.cur().Text)
	}
	return &OtherStmt{Toks: toks}, nil
}

// scanUntilCloseParen collects tokens after an already-consumed '(' up to
// its matching ')'. The close token is returned separately.
func (p *Parser) scanUntilCloseParen() (ExprRun, Token, error) {
	depth := 1
	var run ExprRun
	for !p.atEOF() {
		t := p.cur()
		switch t.Text {
		case "(":
			depth++
		case ")":
			depth--
			if depth == 0 {
				return run, p.advance(), nil
			}
		case "{", "}":
			return nil, Token{}, p.errorf("unbalanced parenthesis before %q", t.Text)
		}
		run = append(run, p.advance())
	}
	return nil, Token{}, p.errorf("unterminated parenthesized expression")
}

// scanUntilSemi collects tokens up to a top-level ';' without consuming it.
func (p *Parser) scanUntilSemi() (ExprRun, error) {
	depth := 0
	var run ExprRun
	for !p.atEOF() {
		t := p.cur()
		switch t.Text {
		case "(", "[":
			depth++
		case ")", "]":
			depth--
		case "{", "}":
			return nil, p.errorf("unexpected %q in expression", t.Text)
		case ";":
			if depth == 0 {
				return run, nil
			}
		}
		if depth < 0 {
			return nil, p.errorf("unbalanced %q in expression", t.Text)
		}
		run = append(run, p.advance())
	}
	return nil, p.errorf("unterminated expression")
}

// scanInitializer collects tokens up to a top-level ',' or ';'.
func (p *Parser) scanInitializer() (ExprRun, error) {
	depth := 0
	var run ExprRun
	for !p.atEOF() {
		t := p.cur()
		switch t.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			if depth == 0 {
				return nil, p.errorf("unbalanced %q in initializer", t.Text)
			}
			depth--
		case ",", ";":
			if depth == 0 {
				return run, nil
			}
		}
		run = append(run, p.advance())
	}
	return nil, p.errorf("unterminated initializer")
}

// scanExprStmt speculatively scans `expr ;`. On failure the position is
// restored so the caller can try the opaque-statement path.
func (p *Parser) scanExprStmt() (ExprRun, Token, bool) {
	start := p.pos
	depth := 0
	var run ExprRun
	for !p.atEOF() {
		t := p.cur()
		if t.Is(";") && depth == 0 {
			if len(run) == 0 {
				break
			}
			return run, p.advance(), true
		}
		switch t.Text {
		case "(", "[":
			depth++
		case ")", "]":
			depth--
		case "{", "}":
			depth = -1 // force failure, blocks belong to parseOther
		}
		if depth < 0 {
			break
		}
		run = append(run, p.advance())
	}
	p.pos = start
	return nil, Token{}, false
}
