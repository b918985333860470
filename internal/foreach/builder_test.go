package foreach

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linqfix/linqfix/internal/syntax"
)

// buildFixture classifies, matches, and builds the first loop of src with an
// oracle that treats every Add receiver as a list.
func buildFixture(t *testing.T, src string) (*Rewrite, error) {
	t.Helper()
	file, loop, _ := parseLoop(t, src)

	oracle := &fakeOracle{
		listAdd: func(syntax.ExprRun) (bool, error) { return true, nil },
		member:  file.Methods()[0],
	}
	c := Classify(loop, oracle)

	s, err := Match(context.Background(), c)
	require.NoError(t, err)
	return Build(file, c, s)
}

func TestBuildReplacement(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		strategy StrategyKind
		expected string
	}{
		{
			name:     "to-list",
			src:      `class C { void M(List<int> ys) { foreach (int x in xs) { if (x > 0) { ys.Add(x * 2); } } } }`,
			strategy: StrategyToList,
			expected: "ys = (from x in xs where x > 0   select x * 2  ).ToList();",
		},
		{
			name:     "count",
			src:      `class C { void M() { foreach (var x in xs) { if (x > 0) { n++; } } } }`,
			strategy: StrategyCount,
			expected: "n += (from x in xs where x > 0   select x  ).Count();",
		},
		{
			name:     "yield return",
			src:      `class C { IEnumerable<int> M() { foreach (var x in xs) { yield return x * 2; } } }`,
			strategy: StrategyYieldReturn,
			expected: "return from x in xs  select x * 2 ;",
		},
		{
			name:     "default keeps the loop and its leftovers",
			src:      `class C { void M() { foreach (var x in xs) { Console.WriteLine(x); } } }`,
			strategy: StrategyDefault,
			expected: "foreach (var x in from x in xs select x )\n{Console.WriteLine(x); \n}",
		},
		{
			name:     "nested loop iterates the last identifier",
			src:      `class C { void M() { foreach (var x in xs) { foreach (var y in x.Items) { Console.WriteLine(y); } } } }`,
			strategy: StrategyDefault,
			expected: "foreach (var y in from x in xs from y in x.Items  select y  )\n{Console.WriteLine(y); \n}",
		},
		{
			name:     "declarators become let clauses",
			src:      `class C { void M() { foreach (var x in xs) { int y = x * 2, z = y + 1; Use(z); } } }`,
			strategy: StrategyDefault,
			expected: "foreach (var z in from x in xs  let y = x * 2 let z = y + 1 select z )\n{Use(z); \n}",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := buildFixture(t, tc.src)
			require.NoError(t, err)

			assert.Equal(t, tc.strategy, r.Strategy.Kind)
			assert.Equal(t, tc.expected, r.Replacement)
		})
	}
}

func TestBuildClauses(t *testing.T) {
	src := `class C { void M() { foreach (var x in xs) { int y = x * 2, z = y + 1; Use(z); } } }`
	r, err := buildFixture(t, src)
	require.NoError(t, err)

	var kinds []ClauseKind
	var texts []string
	for _, cl := range r.Clauses {
		kinds = append(kinds, cl.Kind)
		texts = append(texts, cl.Text)
	}

	assert.Equal(t, []ClauseKind{ClauseFrom, ClauseLet, ClauseLet, ClauseSelect}, kinds)
	assert.Equal(t, []string{"from x in xs", "let y = x * 2", "let z = y + 1", "select z"}, texts)
}

func TestBuildYieldPairedBreak(t *testing.T) {
	src := `class C { IEnumerable<int> M() { foreach (var x in xs) { yield return x; } yield break; } }`
	r, err := buildFixture(t, src)
	require.NoError(t, err)

	assert.Equal(t, "return from x in xs  select x ;", r.Replacement)
	require.NotNil(t, r.DeleteBreak)
	assert.Equal(t, syntax.KindYieldBreak, r.DeleteBreak.StmtKind())
}

func TestBuildNotConvertible(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "empty body",
			src:  `class C { void M() { foreach (var x in xs) { } } }`,
		},
		{
			name: "empty statement body",
			src:  `class C { void M() { foreach (var x in xs) ; } }`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := buildFixture(t, tc.src)
			assert.ErrorIs(t, err, ErrNotConvertible)
		})
	}
}

func TestBuildRequiredUsings(t *testing.T) {
	without := `class C { void M() { foreach (var x in xs) { n++; } } }`
	r, err := buildFixture(t, without)
	require.NoError(t, err)
	assert.Equal(t, []string{"System.Linq"}, r.RequiredUsings)

	with := `using System.Linq; class C { void M() { foreach (var x in xs) { n++; } } }`
	r, err = buildFixture(t, with)
	require.NoError(t, err)
	assert.Empty(t, r.RequiredUsings)
}

func TestBuildPreservesComments(t *testing.T) {
	src := `class C
{
    void M(List<int> ys)
    {
        foreach (int x in xs)
        {
            // keep only positives
            if (x > 0)
            {
                ys.Add(x * 2); // double it
            } // end filter
        }
    }
}
`
	r, err := buildFixture(t, src)
	require.NoError(t, err)
	require.Equal(t, StrategyToList, r.Strategy.Kind)

	assert.Contains(t, r.Replacement, "// keep only positives")
	assert.Contains(t, r.Replacement, "// double it")
	assert.Contains(t, r.Replacement, "// end filter")
}
