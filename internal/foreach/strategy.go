package foreach

import "github.com/linqfix/linqfix/internal/syntax"

// StrategyKind identifies the shape of the final rewritten construct.
type StrategyKind int

const (
	// StrategyDefault keeps the loop, iterating the query expression.
	StrategyDefault StrategyKind = iota

	// StrategyCount replaces a counting loop with a Count() call.
	StrategyCount

	// StrategyToList replaces list accumulation with a ToList() call.
	StrategyToList

	// StrategyYieldReturn replaces a yielding loop with a return of the
	// lazily produced sequence.
	StrategyYieldReturn
)

func (k StrategyKind) String() string {
	switch k {
	case StrategyDefault:
		return "default"
	case StrategyCount:
		return "count"
	case StrategyToList:
		return "to-list"
	case StrategyYieldReturn:
		return "yield-return"
	default:
		panic("invalid strategy kind")
	}
}

// Strategy is the matcher's verdict plus the payload the builder needs to
// render it.
type Strategy struct {
	Kind StrategyKind

	// Select is the projection expression; nil means "select the last
	// introduced identifier" (the Default shape).
	Select syntax.ExprRun

	// Modifying identifies what the terminal statement was mutating: the
	// incremented operand for Count, the accumulation target for ToList.
	Modifying syntax.ExprRun

	// Trivia is the consumed terminal statement's outer trivia, re-emitted
	// around the projection clause.
	Trivia syntax.TriviaRun

	// DeleteBreak is a paired `yield break` made redundant by the rewrite;
	// the host must remove it.
	DeleteBreak *syntax.YieldStmt
}
