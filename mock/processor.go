package mock

import (
	"context"

	"github.com/ham-zax/distill"
)

var _ distill.Processor = (*Processor)(nil)

// Processor is a mock implementation of distill.Processor.
type Processor struct {
	ProcessFn func(ctx context.Context, input distill.Input, cfg distill.Config) *distill.ProcessingResult
}

func (p *Processor) Process(ctx context.Context, input distill.Input, cfg distill.Config) *distill.ProcessingResult {
	return p.ProcessFn(ctx, input, cfg)
}
