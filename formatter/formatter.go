// Package formatter renders conversion candidates for terminal output.
package formatter

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/linqfix/linqfix/internal"
	tt "github.com/linqfix/linqfix/internal/types"
)

var (
	strategyStyle   = color.New(color.FgYellow, color.Bold)
	fileStyle       = color.New(color.FgCyan, color.Bold)
	lineStyle       = color.New(color.FgHiBlue, color.Bold)
	messageStyle    = color.New(color.FgRed, color.Bold)
	suggestionStyle = color.New(color.FgGreen, color.Bold)
	noteStyle       = color.New(color.FgWhite)
)

// candidateFormatter supplies the per-strategy trailing note.
type candidateFormatter interface {
	Note(c tt.Candidate) string
}

func getCandidateFormatter(strategy string) candidateFormatter {
	switch strategy {
	case "count":
		return countFormatter{}
	case "to-list":
		return toListFormatter{}
	case "yield-return":
		return yieldFormatter{}
	default:
		return generalFormatter{}
	}
}

type generalFormatter struct{}

func (generalFormatter) Note(tt.Candidate) string {
	return "the loop keeps iterating; unconvertible statements stay in its body"
}

type countFormatter struct{}

func (countFormatter) Note(tt.Candidate) string {
	return "the increment statement is absorbed into Count()"
}

type toListFormatter struct{}

func (toListFormatter) Note(tt.Candidate) string {
	return "the Add call is absorbed into ToList()"
}

type yieldFormatter struct{}

func (yieldFormatter) Note(c tt.Candidate) string {
	if len(c.Deletions) > 0 {
		return "returns the sequence directly; the trailing yield break is removed"
	}
	return "returns the sequence directly instead of yielding element by element"
}

// GenerateFormattedCandidates formats candidates into a human-readable
// report with the original snippet and the proposed replacement.
func GenerateFormattedCandidates(candidates []tt.Candidate, snippet *internal.SourceCode) string {
	var builder strings.Builder
	for _, cand := range candidates {
		builder.WriteString(buildCandidate(cand, snippet, getCandidateFormatter(cand.Strategy)))
		builder.WriteString("\n")
	}
	return builder.String()
}

func buildCandidate(cand tt.Candidate, snippet *internal.SourceCode, cf candidateFormatter) string {
	var sb strings.Builder

	sb.WriteString(strategyStyle.Sprintf("convert-to-query (%s)", cand.Strategy))
	sb.WriteString(": ")
	sb.WriteString(messageStyle.Sprint(cand.Message))
	sb.WriteString("\n")

	sb.WriteString(" --> ")
	sb.WriteString(fileStyle.Sprint(cand.Filename))
	sb.WriteString(":")
	sb.WriteString(lineStyle.Sprintf("%d:%d", cand.Start.Line, cand.Start.Column))
	sb.WriteString("\n")

	maxWidth := lineNumWidth(cand.End.Line)
	for line := cand.Start.Line; line <= cand.End.Line && line <= len(snippet.Lines); line++ {
		sb.WriteString(lineStyle.Sprintf("%*d | ", maxWidth, line))
		sb.WriteString(snippet.Lines[line-1])
		sb.WriteString("\n")
	}

	sb.WriteString(suggestionStyle.Sprint("suggestion:"))
	sb.WriteString("\n")
	for _, line := range strings.Split(cand.Suggestion, "\n") {
		sb.WriteString(fmt.Sprintf("%s | %s\n", strings.Repeat(" ", maxWidth), line))
	}

	sb.WriteString(noteStyle.Sprintf("note: %s", cf.Note(cand)))
	if len(cand.RequiredUsings) > 0 {
		sb.WriteString(noteStyle.Sprintf("; adds using %s", strings.Join(cand.RequiredUsings, ", ")))
	}
	sb.WriteString("\n")

	return sb.String()
}

func lineNumWidth(line int) int {
	width := 1
	for line >= 10 {
		line /= 10
		width++
	}
	return width
}
