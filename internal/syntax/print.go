package syntax

import "strings"

// Text reproduces the file's exact source text. Together with Parse this
// forms the round-trip guarantee the rewriter relies on: nothing the lexer
// saw is ever dropped or reordered by the tree itself.
func (f *File) Text() string {
	var sb strings.Builder
	for _, u := range f.Usings {
		sb.WriteString(RenderTokens(u.tokens()))
	}
	for _, d := range f.Decls {
		sb.WriteString(RenderTokens(d.declTokens()))
	}
	f.EOF.render(&sb)
	return sb.String()
}
