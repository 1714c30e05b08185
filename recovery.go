package distill

import "context"

// FallbackResult is the output of one recovery strategy execution.
type FallbackResult struct {
	// Success reports whether the strategy produced usable content.
	Success bool

	// Content stands in for the faulted stage's output. For faults
	// before the conversion stage it is an HTML fragment; for
	// conversion and later it is final text.
	Content string

	// Warnings and Errors collected while the strategy ran.
	Warnings []string
	Errors   []string

	// StrategyName identifies the strategy that produced this result.
	StrategyName string
}

// Strategy is a registered fallback handler for unexpected stage
// faults. Strategies are tried in ascending priority order, ties
// broken by registration order; the first success wins.
//
// Gate failures never reach strategies. They drive the pipeline's own
// stage branching.
type Strategy interface {
	// Name identifies the strategy in diagnostics and FallbacksUsed.
	Name() string

	// Priority orders execution; lower runs first.
	Priority() int

	// CanHandle reports whether the strategy applies to the faulted
	// run's context.
	CanHandle(pctx *Context) bool

	// Execute attempts to produce stand-in output for the faulted
	// stage. It must honor ctx cancellation: the registry abandons,
	// but cannot preempt, an execution that overruns its timeout.
	Execute(ctx context.Context, pctx *Context) (*FallbackResult, error)

	// Description explains what the strategy does.
	Description() string
}
