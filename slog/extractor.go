package slog

import (
	"log/slog"
	"time"

	"github.com/ham-zax/distill"
)

// Ensure LoggingExtractor implements distill.Extractor.
var _ distill.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   distill.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next distill.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(rawHTML string) (*distill.ExtractResult, error) {
	begin := time.Now()
	result, err := e.next.Extract(rawHTML)
	if err != nil {
		e.logger.Error("extract",
			"input_bytes", len(rawHTML),
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}

	e.logger.Debug("extract",
		"input_bytes", len(rawHTML),
		"output_bytes", len(result.Content),
		"title", result.Title,
		"duration", time.Since(begin),
	)
	return result, nil
}
