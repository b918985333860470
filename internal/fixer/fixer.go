package fixer

import (
	"fmt"
	"os"
	"sort"

	tt "github.com/linqfix/linqfix/internal/types"
)

// Fixer applies conversion candidates to source files.
type Fixer struct {
	DryRun bool
}

// New returns a Fixer.
func New(dryRun bool) *Fixer {
	return &Fixer{DryRun: dryRun}
}

type edit struct {
	span tt.Span
	text string
}

// Fix rewrites the file in place, replacing each candidate's loop with its
// suggestion and removing statements the rewrite made redundant. Edits are
// applied rightmost-first so earlier offsets stay valid.
func (f *Fixer) Fix(filename string, candidates []tt.Candidate) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if f.DryRun {
		for _, cand := range candidates {
			fmt.Printf("Would convert loop in %s at line %d (%s strategy)\n",
				filename, cand.Start.Line, cand.Strategy)
			fmt.Printf("Suggestion:\n%s\n", cand.Suggestion)
		}
		return nil
	}

	edits := collectEdits(candidates, len(content))
	if len(edits) == 0 {
		return nil
	}

	result := string(content)
	for _, e := range edits {
		result = result[:e.span.Start] + e.text + result[e.span.End:]
	}

	fixed, err := EnsureUsings([]byte(result), CollectRequiredUsings(candidates))
	if err != nil {
		return err
	}

	if err := os.WriteFile(filename, fixed, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Printf("Converted %d loop(s) in %s\n", len(candidates), filename)
	return nil
}

// collectEdits gathers replacement and deletion edits, drops any that fall
// outside the file or overlap an already accepted edit, and orders them by
// descending start offset.
func collectEdits(candidates []tt.Candidate, size int) []edit {
	var edits []edit
	for _, cand := range candidates {
		edits = append(edits, edit{
			span: tt.Span{Start: cand.Start.Offset, End: cand.End.Offset},
			text: cand.Suggestion,
		})
		for _, del := range cand.Deletions {
			edits = append(edits, edit{span: del})
		}
	}

	sort.Slice(edits, func(i, j int) bool {
		return edits[i].span.Start > edits[j].span.Start
	})

	var accepted []edit
	prevStart := size + 1
	for _, e := range edits {
		if e.span.Start < 0 || e.span.End > size || e.span.Start > e.span.End {
			continue
		}
		if e.span.End > prevStart {
			continue // overlaps the edit after it
		}
		accepted = append(accepted, e)
		prevStart = e.span.Start
	}
	return accepted
}
