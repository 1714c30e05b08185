package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ham-zax/distill"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	html, err := readInput(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	input := distill.Input{
		HTML:      html,
		SourceURL: c.URL,
		Title:     c.Title,
	}
	cfg := distill.Config{
		MaxContentLength: c.MaxLength,
		RuleSets:         c.RuleSets,
		DisableCache:     c.NoCache,
	}

	result := deps.Processor.Process(deps.Ctx, input, cfg)

	for _, w := range result.Warnings {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", w)
	}

	if !result.Success {
		for _, e := range result.Errors {
			fmt.Fprintf(deps.Stderr, "error: %s\n", e)
		}
		if deps.Verbose {
			dumpDiagnostics(deps)
		}
		return distill.Errorf(distill.EINTERNAL, "extraction failed for %s", c.File)
	}

	if c.Stats {
		fmt.Fprintf(deps.Stderr, "quality: %d\n", result.Stats.QualityScore)
		if len(result.Stats.FallbacksUsed) > 0 {
			fmt.Fprintf(deps.Stderr, "fallbacks: %s\n", strings.Join(result.Stats.FallbacksUsed, ", "))
		}
		for stage, d := range result.Stats.StageDurations {
			fmt.Fprintf(deps.Stderr, "stage %s: %s\n", stage, d)
		}
	}

	fmt.Fprint(deps.Stdout, result.Content)
	return nil
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func dumpDiagnostics(deps *Dependencies) {
	for _, e := range deps.Diag.Entries() {
		fmt.Fprintf(deps.Stderr, "diag %s [%s] %s\n", e.RunID, e.Stage, e.Message)
	}
}
