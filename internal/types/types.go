package types

import "fmt"

// Position is a location in a source file.
type Position struct {
	Line   int // 1-based
	Column int // 1-based, in bytes
	Offset int // 0-based byte offset
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open byte range in a file.
type Span struct {
	Start int
	End   int
}

// Candidate represents one proposed foreach-to-query rewrite.
type Candidate struct {
	Strategy       string
	Filename       string
	Message        string
	Suggestion     string // replacement text for the loop statement
	Start          Position
	End            Position
	Deletions      []Span   // statements elsewhere made redundant by the rewrite
	RequiredUsings []string // namespaces the applied fix must import
}

// ConfigStrategy holds the per-strategy settings from the config file.
type ConfigStrategy struct {
	Disabled bool `yaml:"disabled"`
}

// Config is the content of a .linqfix.yaml file.
type Config struct {
	Name        string                    `yaml:"name"`
	Strategies  map[string]ConfigStrategy `yaml:"strategies"`
	IgnorePaths []string                  `yaml:"ignore-paths"`
}
