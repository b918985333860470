package fixer

import (
	"fmt"
	"strings"

	tt "github.com/linqfix/linqfix/internal/types"
)

// EnsureUsings adds missing using directives to the source. Insertion is
// idempotent: a namespace already imported is left alone, and the directive
// goes after the last existing using, or at the top of the file.
func EnsureUsings(src []byte, usings []string) ([]byte, error) {
	if len(usings) == 0 {
		return src, nil
	}

	lines := strings.Split(string(src), "\n")

	var missing []string
	for _, ns := range usings {
		if !hasUsing(lines, ns) {
			missing = append(missing, ns)
		}
	}
	if len(missing) == 0 {
		return src, nil
	}

	// scan only the directive header: a `using` statement inside a method
	// body must not attract the insertion point
	insertAt := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "using ") && strings.HasSuffix(trimmed, ";") {
			insertAt = i + 1
			continue
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		break
	}

	var directives []string
	for _, ns := range missing {
		directives = append(directives, fmt.Sprintf("using %s;", ns))
	}

	out := make([]string, 0, len(lines)+len(directives))
	out = append(out, lines[:insertAt]...)
	out = append(out, directives...)
	out = append(out, lines[insertAt:]...)
	return []byte(strings.Join(out, "\n")), nil
}

// hasUsing checks whether the namespace is already imported.
func hasUsing(lines []string, ns string) bool {
	want := fmt.Sprintf("using %s;", ns)
	for _, line := range lines {
		if strings.TrimSpace(line) == want {
			return true
		}
	}
	return false
}

// CollectRequiredUsings gathers all unique required namespaces from the
// given candidates.
func CollectRequiredUsings(candidates []tt.Candidate) []string {
	seen := make(map[string]bool)
	var usings []string
	for _, cand := range candidates {
		for _, ns := range cand.RequiredUsings {
			if !seen[ns] {
				seen[ns] = true
				usings = append(usings, ns)
			}
		}
	}
	return usings
}
