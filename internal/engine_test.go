package internal

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/linqfix/linqfix/internal/types"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(nil)
	require.NoError(t, err)
	return engine
}

func TestRunSource(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		strategies []string
	}{
		{
			name:       "counting loop",
			source:     `class C { void M() { foreach (var x in xs) { if (x > 0) { n++; } } } }`,
			strategies: []string{"count"},
		},
		{
			name:       "list accumulation through a parameter",
			source:     `class C { void M(List<int> ys) { foreach (int x in xs) { ys.Add(x * 2); } } }`,
			strategies: []string{"to-list"},
		},
		{
			name:       "list accumulation through a var local",
			source:     `class C { void M() { var ys = new List<int>(); foreach (int x in xs) { ys.Add(x); } } }`,
			strategies: []string{"to-list"},
		},
		{
			name:       "add on a non-list receiver stays default",
			source:     `class C { void M(HashSet<int> ys) { foreach (int x in xs) { ys.Add(x); } } }`,
			strategies: []string{"default"},
		},
		{
			name:       "yielding loop",
			source:     `class C { IEnumerable<int> M() { foreach (var x in xs) { yield return x; } } }`,
			strategies: []string{"yield-return"},
		},
		{
			name:       "two independent loops",
			source:     `class C { void A() { foreach (var x in xs) { n++; } } void B() { foreach (var y in ys) { m++; } } }`,
			strategies: []string{"count", "count"},
		},
		{
			name:       "empty loop yields no candidate",
			source:     `class C { void M() { foreach (var x in xs) { } } }`,
			strategies: nil,
		},
	}

	engine := newTestEngine(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			candidates, err := engine.RunSource(context.Background(), "test.cs", []byte(tc.source))
			require.NoError(t, err)

			var strategies []string
			for _, cand := range candidates {
				strategies = append(strategies, cand.Strategy)
			}
			assert.Equal(t, tc.strategies, strategies)
		})
	}
}

func TestRunSourceConvertedLoopCoversNestedLoops(t *testing.T) {
	source := `class C { void M() { foreach (var x in xs) { foreach (var y in x.Items) { Use(y); } } } }`

	engine := newTestEngine(t)
	candidates, err := engine.RunSource(context.Background(), "test.cs", []byte(source))
	require.NoError(t, err)

	// the outer rewrite embeds the inner loop as a from clause; offering the
	// inner loop separately would produce overlapping edits
	require.Len(t, candidates, 1)
	assert.Contains(t, candidates[0].Suggestion, "from y in x.Items")
}

func TestRunSourcePositions(t *testing.T) {
	source := `class C
{
    void M()
    {
        foreach (var x in xs)
        {
            n++;
        }
    }
}
`
	engine := newTestEngine(t)
	candidates, err := engine.RunSource(context.Background(), "test.cs", []byte(source))
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	cand := candidates[0]
	assert.Equal(t, 5, cand.Start.Line)
	assert.Equal(t, 9, cand.Start.Column)
	assert.Equal(t, 8, cand.End.Line)

	span := source[cand.Start.Offset:cand.End.Offset]
	assert.True(t, strings.HasPrefix(span, "foreach"))
	assert.True(t, strings.HasSuffix(span, "}"))
}

func TestRunSourceDeletionSpan(t *testing.T) {
	source := `class C { IEnumerable<int> M() { foreach (var x in xs) { yield return x; } yield break; } }`

	engine := newTestEngine(t)
	candidates, err := engine.RunSource(context.Background(), "test.cs", []byte(source))
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	cand := candidates[0]
	assert.Equal(t, "yield-return", cand.Strategy)
	require.Len(t, cand.Deletions, 1)
	assert.Equal(t, "yield break;", source[cand.Deletions[0].Start:cand.Deletions[0].End])
}

func TestRunSourceRequiredUsings(t *testing.T) {
	source := `class C { void M() { foreach (var x in xs) { n++; } } }`

	engine := newTestEngine(t)
	candidates, err := engine.RunSource(context.Background(), "test.cs", []byte(source))
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, []string{"System.Linq"}, candidates[0].RequiredUsings)

	withUsing := "using System.Linq;\n" + source
	candidates, err = engine.RunSource(context.Background(), "test.cs", []byte(withUsing))
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Empty(t, candidates[0].RequiredUsings)
}

func TestRunSourceDisabledStrategy(t *testing.T) {
	source := `class C { void M() { foreach (var x in xs) { n++; } } }`

	engine, err := NewEngine(map[string]tt.ConfigStrategy{
		"count": {Disabled: true},
	})
	require.NoError(t, err)

	candidates, err := engine.RunSource(context.Background(), "test.cs", []byte(source))
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestRunSourceParseError(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.RunSource(context.Background(), "test.cs", []byte("class C {"))
	assert.Error(t, err)
}

func TestRunSourceCanceled(t *testing.T) {
	source := `class C { void M(List<int> ys) { foreach (int x in xs) { ys.Add(x); } } }`

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := newTestEngine(t)
	_, err := engine.RunSource(ctx, "test.cs", []byte(source))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunIgnoredPath(t *testing.T) {
	engine := newTestEngine(t)
	engine.IgnorePath("skip/me.cs")

	// an ignored path is never even read
	candidates, err := engine.Run(context.Background(), "skip/me.cs")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestPositionAt(t *testing.T) {
	source := []byte("ab\ncd\n")
	lines := lineStarts(source)

	tests := []struct {
		offset int
		line   int
		column int
	}{
		{offset: 0, line: 1, column: 1},
		{offset: 1, line: 1, column: 2},
		{offset: 3, line: 2, column: 1},
		{offset: 4, line: 2, column: 2},
		{offset: 6, line: 3, column: 1},
	}

	for _, tc := range tests {
		pos := positionAt(tc.offset, lines)
		assert.Equal(t, tc.line, pos.Line, "offset %d", tc.offset)
		assert.Equal(t, tc.column, pos.Column, "offset %d", tc.offset)
		assert.Equal(t, tc.offset, pos.Offset)
	}
}
