package syntax

import "strings"

// TriviaKind classifies a single piece of non-semantic text.
type TriviaKind int

const (
	TriviaWhitespace TriviaKind = iota // spaces and tabs
	TriviaEndOfLine                    // "\n" or "\r\n"
	TriviaLineComment                  // // ...
	TriviaBlockComment                 // /* ... */
)

// Trivia is one formatting or comment token. It never carries meaning for
// the classifier, but it must survive every rewrite byte for byte.
type Trivia struct {
	Kind TriviaKind
	Text string
}

// TriviaRun is an ordered sequence of trivia. Runs are value types: once a
// run is handed to an extended node it is never shared with the tree again.
type TriviaRun []Trivia

// Text renders the run exactly as it appeared in the source.
func (r TriviaRun) Text() string {
	var sb strings.Builder
	for _, t := range r {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// HasComment reports whether the run contains a line or block comment.
func (r TriviaRun) HasComment() bool {
	for _, t := range r {
		if t.Kind == TriviaLineComment || t.Kind == TriviaBlockComment {
			return true
		}
	}
	return false
}

// HasNewline reports whether the run contains an end-of-line.
func (r TriviaRun) HasNewline() bool {
	for _, t := range r {
		if t.Kind == TriviaEndOfLine {
			return true
		}
	}
	return false
}

// Concat returns a new run holding r followed by others, leaving r intact.
func (r TriviaRun) Concat(others ...TriviaRun) TriviaRun {
	out := make(TriviaRun, 0, len(r))
	out = append(out, r...)
	for _, o := range others {
		out = append(out, o...)
	}
	return out
}
