package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/linqfix/linqfix/internal/foreach"
	"github.com/linqfix/linqfix/internal/semantics"
	"github.com/linqfix/linqfix/internal/syntax"
	tt "github.com/linqfix/linqfix/internal/types"
)

// Engine manages the conversion analysis: it parses a file, classifies every
// foreach loop, and collects the rewrites worth offering.
type Engine struct {
	disabledStrategies map[string]bool
	ignoredPaths       map[string]bool
}

// NewEngine creates a new analysis engine configured by the per-strategy
// settings from the config file.
func NewEngine(strategies map[string]tt.ConfigStrategy) (*Engine, error) {
	engine := &Engine{
		disabledStrategies: make(map[string]bool),
		ignoredPaths:       make(map[string]bool),
	}
	for name, s := range strategies {
		if s.Disabled {
			engine.disabledStrategies[name] = true
		}
	}
	return engine, nil
}

// DisableStrategy suppresses candidates produced by the named strategy.
func (e *Engine) DisableStrategy(name string) {
	e.disabledStrategies[name] = true
}

// IgnorePath excludes a path from analysis.
func (e *Engine) IgnorePath(path string) {
	e.ignoredPaths[path] = true
}

// Run analyzes the given file and returns the conversion candidates found
// in it, in source order.
func (e *Engine) Run(ctx context.Context, filename string) ([]tt.Candidate, error) {
	if e.ignoredPaths[filename] {
		return nil, nil
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return e.RunSource(ctx, filename, content)
}

// RunSource analyzes in-memory source. A parse failure means the file
// cannot be modeled; the caller reports it and no rewrite is offered.
func (e *Engine) RunSource(ctx context.Context, filename string, source []byte) ([]tt.Candidate, error) {
	file, err := syntax.Parse(string(source))
	if err != nil {
		return nil, fmt.Errorf("error parsing file: %w", err)
	}

	lines := lineStarts(source)
	oracle := semantics.NewResolver(file)

	var candidates []tt.Candidate
	var analysisErr error
	for _, method := range file.Methods() {
		syntax.Inspect(method.Body, func(s syntax.Stmt) bool {
			if analysisErr != nil {
				return false
			}
			loop, ok := s.(*syntax.ForEachStmt)
			if !ok {
				return true
			}
			cand, err := e.analyzeLoop(ctx, file, oracle, loop, filename, lines)
			if err != nil {
				analysisErr = err
				return false
			}
			if cand == nil {
				return true
			}
			candidates = append(candidates, *cand)
			// an offered loop already covers its nested loops; converting
			// both would produce overlapping edits
			return false
		})
	}
	if analysisErr != nil {
		return nil, analysisErr
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Start.Offset < candidates[j].Start.Offset
	})
	return candidates, nil
}

// analyzeLoop runs the classifier, matcher, and builder for one loop. A nil
// candidate with a nil error means the refactoring is withheld for this
// loop; a non-nil error aborts the whole analysis (cancellation).
func (e *Engine) analyzeLoop(
	ctx context.Context,
	file *syntax.File,
	oracle semantics.Oracle,
	loop *syntax.ForEachStmt,
	filename string,
	lines []int,
) (*tt.Candidate, error) {
	chain := foreach.Classify(loop, oracle)

	strategy, err := foreach.Match(ctx, chain)
	if err != nil {
		return nil, err
	}
	if e.disabledStrategies[strategy.Kind.String()] {
		return nil, nil
	}

	rewrite, err := foreach.Build(file, chain, strategy)
	if errors.Is(err, foreach.ErrNotConvertible) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	cand := &tt.Candidate{
		Strategy:       strategy.Kind.String(),
		Filename:       filename,
		Message:        fmt.Sprintf("foreach loop can be converted to a query expression (%s)", strategy.Kind),
		Suggestion:     rewrite.Replacement,
		Start:          positionAt(syntax.Pos(loop), lines),
		End:            positionAt(syntax.End(loop), lines),
		RequiredUsings: rewrite.RequiredUsings,
	}
	if rewrite.DeleteBreak != nil {
		cand.Deletions = append(cand.Deletions, tt.Span{
			Start: syntax.Pos(rewrite.DeleteBreak),
			End:   syntax.End(rewrite.DeleteBreak),
		})
	}
	return cand, nil
}

// lineStarts returns the byte offset of each line start.
func lineStarts(source []byte) []int {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// positionAt converts a byte offset into a line/column position.
func positionAt(offset int, lines []int) tt.Position {
	line := sort.Search(len(lines), func(i int) bool { return lines[i] > offset }) - 1
	return tt.Position{
		Line:   line + 1,
		Column: offset - lines[line] + 1,
		Offset: offset,
	}
}
