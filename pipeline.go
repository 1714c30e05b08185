package distill

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Stage identifies one step of the extraction pipeline.
type Stage string

// Pipeline stages in execution order. Gate failures advance to the
// next extraction stage; unexpected faults go to recovery.
const (
	StageInit        Stage = "init"
	StageSitePlugin  Stage = "site_plugin"
	StageSemantic    Stage = "semantic_query"
	StageReadability Stage = "readability_extract"
	StageScorePrune  Stage = "score_prune"
	StageConvert     Stage = "convert"
	StagePostProcess Stage = "post_process"
	StageQuality     Stage = "quality_assess"
)

// Input is one captured document to process.
type Input struct {
	// HTML is the captured markup. It is parsed, never fetched.
	HTML string `json:"html"`

	// SourceURL selects site-specific rules and presets. It is never
	// dereferenced.
	SourceURL string `json:"sourceUrl"`

	// Title is passthrough metadata from the capture layer.
	Title string `json:"title"`
}

// Validate returns an error if the input cannot start a pipeline run.
func (in *Input) Validate() error {
	if strings.TrimSpace(in.HTML) == "" {
		return Errorf(EINVALID, "captured markup required")
	}
	return nil
}

// Config controls pipeline behavior for one run.
type Config struct {
	// MaxContentLength truncates oversized captures once, before any
	// stage runs, recording a warning.
	MaxContentLength int `json:"maxContentLength"`

	// StrategyTimeout bounds each recovery strategy execution.
	// It bounds waiting, not the strategy's actual termination.
	StrategyTimeout time.Duration `json:"strategyTimeout"`

	// MaxRetries bounds retries of transient faults before the
	// recovery registry is consulted. Zero selects the default;
	// a negative value disables transient retries.
	MaxRetries int `json:"maxRetries"`

	// RetryDelay is the fixed delay between transient retries. Zero
	// selects the default; a negative value retries immediately.
	RetryDelay time.Duration `json:"retryDelay"`

	// RuleSets names the enabled boilerplate rule sets.
	RuleSets []string `json:"ruleSets"`

	// DisableCache skips result-cache lookup and storage.
	DisableCache bool `json:"disableCache"`
}

// DefaultConfig returns the configuration used when the caller
// specifies nothing.
func DefaultConfig() Config {
	return Config{
		MaxContentLength: 2_000_000,
		StrategyTimeout:  30 * time.Second,
		MaxRetries:       3,
		RetryDelay:       500 * time.Millisecond,
		RuleSets:         []string{RuleSetSafe, RuleSetAggressive},
	}
}

// Named boilerplate rule sets.
const (
	RuleSetSafe       = "safe"
	RuleSetAggressive = "aggressive"
)

// RuleSetEnabled reports whether a named rule set is enabled.
func (c Config) RuleSetEnabled(name string) bool {
	for _, rs := range c.RuleSets {
		if rs == name {
			return true
		}
	}
	return false
}

// Context carries the mutable state of one pipeline run between
// stages. Each stage consumes the previous stage's output; upstream
// state is never mutated.
type Context struct {
	// RunID correlates diagnostics across concurrent runs.
	RunID string

	// Stage is the stage currently executing.
	Stage Stage

	// Tree is the working tree snapshot, exclusively owned by this
	// run. Nil until parsing succeeds.
	Tree Node

	// Input and Config are fixed for the duration of the run.
	Input  Input
	Config Config

	// Warnings and Errors accumulate across stages.
	Warnings []string
	Errors   []string

	// Retries counts transient-fault retries spent so far.
	Retries int

	// StartedAt is when the run began.
	StartedAt time.Time

	// Fault is the error that handed control to recovery, when set.
	Fault error
}

// Warnf appends a formatted warning to the run.
func (c *Context) Warnf(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

// Stats describes how a result was produced.
type Stats struct {
	// StageDurations records wall time per executed stage.
	StageDurations map[Stage]time.Duration `json:"perStageDuration"`

	// FallbacksUsed lists failed gate stages and successful recovery
	// strategies, in the order they were consumed.
	FallbacksUsed []string `json:"fallbacksUsed"`

	// QualityScore is the final candidate's quality score, 0-100.
	QualityScore int `json:"qualityScore"`
}

// ProcessingResult is the pipeline's output for one captured document.
// Success is false only when recovery was exhausted or the input never
// started a run; a gate failure rescued by a later stage still yields
// Success true with FallbacksUsed populated.
type ProcessingResult struct {
	Success  bool     `json:"success"`
	Content  string   `json:"content"`
	Title    string   `json:"title,omitempty"`
	Stats    Stats    `json:"stats"`
	Warnings []string `json:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// Processor runs the extraction pipeline for one captured document.
// Implementations never return an error and never panic: every fault
// is caught, classified, and folded into the result.
type Processor interface {
	Process(ctx context.Context, input Input, cfg Config) *ProcessingResult
}
