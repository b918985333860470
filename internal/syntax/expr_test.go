package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exprOf(t *testing.T, input string) ExprRun {
	t.Helper()
	stmt, err := ParseStatement(input)
	require.NoError(t, err)
	es, ok := stmt.(*ExprStmt)
	require.True(t, ok, "expected an expression statement")
	return es.Expr
}

func TestExprRunText(t *testing.T) {
	// interior trivia is kept, outer trivia is not
	run := exprOf(t, "  x  *  2 ;")
	assert.Equal(t, "x  *  2", run.Text())
}

func TestPostfixIncrementOperand(t *testing.T) {
	tests := []struct {
		input   string
		operand string
		ok      bool
	}{
		{input: "count++;", operand: "count", ok: true},
		{input: "counts[i]++;", operand: "counts[i]", ok: true},
		{input: "++count;", ok: false},
		{input: "count--;", ok: false},
		{input: "count;", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			operand, ok := exprOf(t, tc.input).PostfixIncrementOperand()
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.operand, operand.Text())
			}
		})
	}
}

func TestSingleArgCall(t *testing.T) {
	tests := []struct {
		input  string
		recv   string
		method string
		arg    string
		ok     bool
	}{
		{input: "ys.Add(x);", recv: "ys", method: "Add", arg: "x", ok: true},
		{input: "ys.Add(x * 2);", recv: "ys", method: "Add", arg: "x * 2", ok: true},
		{input: "this.items.Add(Make(x));", recv: "this.items", method: "Add", arg: "Make(x)", ok: true},
		{input: "ys.Add(Pair(a, b));", recv: "ys", method: "Add", arg: "Pair(a, b)", ok: true},
		{input: "ys.Add(a, b);", ok: false}, // two arguments
		{input: "ys.Add();", ok: false},     // no argument
		{input: "Add(x);", ok: false},       // no receiver
		{input: "ys.Add;", ok: false},       // not a call
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			recv, method, arg, ok := exprOf(t, tc.input).SingleArgCall()
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.recv, recv.Text())
				assert.Equal(t, tc.method, method.Text)
				assert.Equal(t, tc.arg, arg.Text())
			}
		})
	}
}
