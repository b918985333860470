package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name: "method with foreach",
			input: `using System;
using System.Collections.Generic;

class C
{
    void M(List<int> ys)
    {
        foreach (int x in xs)
        {
            // keep only positives
            if (x > 0)
            {
                ys.Add(x * 2); // double it
            }
        }
    }
}
`,
		},
		{
			name: "multi declarator locals",
			input: `class C
{
    void M()
    {
        foreach (var x in xs)
        {
            int y = x * 2, z = y + 1;
            Console.WriteLine(z);
        }
    }
}
`,
		},
		{
			name: "yield pair",
			input: `class C
{
    IEnumerable<int> M()
    {
        foreach (var x in xs)
        {
            yield return x;
        }
        yield break;
    }
}
`,
		},
		{
			name: "unmodeled statements survive verbatim",
			input: `class C
{
    void M()
    {
        while (true) { Tick(); }
        for (int i = 0; i < 10; i++) { Tock(i); }
    }
}
`,
		},
		{
			name: "local function",
			input: `class C
{
    IEnumerable<int> M()
    {
        int Twice(int v) { return v * 2; }
        foreach (var x in xs)
        {
            yield return Twice(x);
        }
    }
}
`,
		},
		{
			name:  "top level method",
			input: "void M() { x++; }\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			file, err := Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.input, file.Text())
		})
	}
}

func TestParseFileShape(t *testing.T) {
	src := `using System;
using System.Linq;

class C
{
    void A() { }
    int B() { return 1; }
}

void Free() { }
`
	file, err := Parse(src)
	require.NoError(t, err)

	require.Len(t, file.Usings, 2)
	assert.True(t, file.HasUsing("System.Linq"))
	assert.False(t, file.HasUsing("System.Text"))

	methods := file.Methods()
	require.Len(t, methods, 3)
	assert.Equal(t, "A", methods[0].Name.Text)
	assert.Equal(t, "B", methods[1].Name.Text)
	assert.Equal(t, "Free", methods[2].Name.Text)
}

func TestParseForEachHeader(t *testing.T) {
	stmt, err := ParseStatement("foreach (KeyValuePair<string, int> kv in map) { }")
	require.NoError(t, err)

	loop, ok := stmt.(*ForEachStmt)
	require.True(t, ok)
	assert.Equal(t, "KeyValuePair<string, int>", loop.Type.Text())
	assert.Equal(t, "kv", loop.Name.Text)
	assert.Equal(t, "map", loop.Source.Text())
}

func TestParseLocalDecl(t *testing.T) {
	stmt, err := ParseStatement("int a = 1, b, c = 3;")
	require.NoError(t, err)

	decl, ok := stmt.(*LocalDeclStmt)
	require.True(t, ok)
	assert.Equal(t, "int", decl.Type.Text())
	require.Len(t, decl.Decls, 3)
	require.Len(t, decl.Commas, 2)

	assert.True(t, decl.Decls[0].HasInitializer())
	assert.Equal(t, "1", decl.Decls[0].Init.Text())
	assert.False(t, decl.Decls[1].HasInitializer())
	assert.Equal(t, "c", decl.Decls[2].Name.Text)
	assert.Equal(t, "3", decl.Decls[2].Init.Text())
}

func TestParseStatementKinds(t *testing.T) {
	tests := []struct {
		input    string
		expected StmtKind
	}{
		{input: ";", expected: KindEmpty},
		{input: "{ x++; }", expected: KindBlock},
		{input: "x++;", expected: KindExpr},
		{input: "ys.Add(x);", expected: KindExpr},
		{input: "int x = 1;", expected: KindLocalDecl},
		{input: "List<int>? xs = null;", expected: KindLocalDecl},
		{input: "int[] a = b;", expected: KindLocalDecl},
		{input: "System.Collections.Generic.List<int> l = x;", expected: KindLocalDecl},
		{input: "yield return x;", expected: KindYieldReturn},
		{input: "yield break;", expected: KindYieldBreak},
		{input: "return x;", expected: KindReturn},
		{input: "return;", expected: KindReturn},
		{input: "foreach (var x in xs) x++;", expected: KindForEach},
		{input: "if (a) b++;", expected: KindIf},
		{input: "if (a) { b++; } else { c++; }", expected: KindIf},
		{input: "int F(int a) { return a; }", expected: KindLocalFunc},
		{input: "while (true) { x++; }", expected: KindOther},
		{input: "for (int i = 0; i < n; i++) { x++; }", expected: KindOther},
		{input: "switch (x) { }", expected: KindOther},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			stmt, err := ParseStatement(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, stmt.StmtKind())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unterminated class", input: "class C {"},
		{name: "unterminated block", input: "void M() {"},
		{name: "foreach without in", input: "void M() { foreach (x) { } }"},
		{name: "foreach without source", input: "void M() { foreach (var x in) { } }"},
		{name: "if without condition", input: "void M() { if () { } }"},
		{name: "unterminated using", input: "using System"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.input)
			assert.Error(t, err)
		})
	}
}

func TestStmtPosEnd(t *testing.T) {
	src := "void M() { x++; }"
	file, err := Parse(src)
	require.NoError(t, err)

	body := file.Methods()[0].Body
	require.Len(t, body.List, 1)

	stmt := body.List[0]
	assert.Equal(t, "x++;", src[Pos(stmt):End(stmt)])
}

func TestInspectSkipsPrunedSubtrees(t *testing.T) {
	src := `void M() {
    if (a)
    {
        foreach (var x in xs) { x++; }
    }
}
`
	file, err := Parse(src)
	require.NoError(t, err)

	var kinds []StmtKind
	Inspect(file.Methods()[0].Body, func(s Stmt) bool {
		kinds = append(kinds, s.StmtKind())
		return s.StmtKind() != KindForEach
	})
	assert.Equal(t, []StmtKind{KindBlock, KindIf, KindBlock, KindForEach}, kinds)
}

func TestContains(t *testing.T) {
	file, err := Parse("void M() { foreach (var x in xs) { x++; } }")
	require.NoError(t, err)

	body := file.Methods()[0].Body
	loop := body.List[0].(*ForEachStmt)
	inner := loop.Body.(*BlockStmt).List[0]

	assert.True(t, Contains(body, inner))
	assert.False(t, Contains(loop.Body, body))
}
