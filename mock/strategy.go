package mock

import (
	"context"

	"github.com/ham-zax/distill"
)

var _ distill.Strategy = (*Strategy)(nil)

// Strategy is a mock implementation of distill.Strategy.
type Strategy struct {
	NameFn        func() string
	PriorityFn    func() int
	CanHandleFn   func(pctx *distill.Context) bool
	ExecuteFn     func(ctx context.Context, pctx *distill.Context) (*distill.FallbackResult, error)
	DescriptionFn func() string
}

func (s *Strategy) Name() string {
	return s.NameFn()
}

func (s *Strategy) Priority() int {
	return s.PriorityFn()
}

func (s *Strategy) CanHandle(pctx *distill.Context) bool {
	return s.CanHandleFn(pctx)
}

func (s *Strategy) Execute(ctx context.Context, pctx *distill.Context) (*distill.FallbackResult, error) {
	return s.ExecuteFn(ctx, pctx)
}

func (s *Strategy) Description() string {
	return s.DescriptionFn()
}
