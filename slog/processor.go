// Package slog provides logging decorators for distill services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/ham-zax/distill"
)

// Ensure LoggingProcessor implements distill.Processor.
var _ distill.Processor = (*LoggingProcessor)(nil)

// LoggingProcessor wraps a Processor with structured logging of each
// run's outcome, quality score, and fallbacks.
type LoggingProcessor struct {
	next   distill.Processor
	logger *slog.Logger
}

// NewLoggingProcessor creates a new LoggingProcessor.
func NewLoggingProcessor(next distill.Processor, logger *slog.Logger) *LoggingProcessor {
	return &LoggingProcessor{next: next, logger: logger}
}

// Process delegates to the wrapped processor and logs the run.
func (p *LoggingProcessor) Process(ctx context.Context, input distill.Input, cfg distill.Config) *distill.ProcessingResult {
	begin := time.Now()
	result := p.next.Process(ctx, input, cfg)

	attrs := []any{
		"url", input.SourceURL,
		"success", result.Success,
		"quality", result.Stats.QualityScore,
		"warnings", len(result.Warnings),
		"duration", time.Since(begin),
	}
	if len(result.Stats.FallbacksUsed) > 0 {
		attrs = append(attrs, "fallbacks", result.Stats.FallbacksUsed)
	}

	if result.Success {
		p.logger.Info("process", attrs...)
	} else {
		p.logger.Error("process", append(attrs, "errors", result.Errors)...)
	}
	return result
}
