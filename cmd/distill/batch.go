package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ham-zax/distill"
	"golang.org/x/sync/errgroup"
)

// Run executes the batch command. Files are processed concurrently;
// one failed file does not stop the rest.
func (c *BatchCmd) Run(deps *Dependencies) error {
	if c.OutDir != "" {
		if err := os.MkdirAll(c.OutDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	concurrency := c.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(concurrency)

	var mu sync.Mutex
	failed := 0

	for _, file := range c.Files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			err := c.processFile(deps, file)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				fmt.Fprintf(deps.Stderr, "fail %s: %s\n", file, err)
			} else {
				fmt.Fprintf(deps.Stderr, "ok   %s\n", file)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "%d processed, %d failed\n", len(c.Files)-failed, failed)
	if failed > 0 {
		return distill.Errorf(distill.EINTERNAL, "%d of %d files failed", failed, len(c.Files))
	}
	return nil
}

func (c *BatchCmd) processFile(deps *Dependencies, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	cfg := distill.Config{DisableCache: c.NoCache}
	result := deps.Processor.Process(deps.Ctx, distill.Input{HTML: string(data)}, cfg)
	if !result.Success {
		return distill.Errorf(distill.EINTERNAL, "extraction failed: %s", strings.Join(result.Errors, "; "))
	}

	return os.WriteFile(c.outputPath(file), []byte(result.Content), 0644)
}

// outputPath derives the markdown path for an input file.
func (c *BatchCmd) outputPath(file string) string {
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)) + ".md"
	if c.OutDir != "" {
		return filepath.Join(c.OutDir, base)
	}
	return filepath.Join(filepath.Dir(file), base)
}
