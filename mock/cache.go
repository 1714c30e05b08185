package mock

import (
	"context"

	"github.com/ham-zax/distill"
)

var _ distill.ResultCache = (*ResultCache)(nil)

// ResultCache is a mock implementation of distill.ResultCache.
type ResultCache struct {
	GetFn func(ctx context.Context, fingerprint string) (*distill.ProcessingResult, error)
	PutFn func(ctx context.Context, fingerprint string, result *distill.ProcessingResult) error
}

func (c *ResultCache) Get(ctx context.Context, fingerprint string) (*distill.ProcessingResult, error) {
	return c.GetFn(ctx, fingerprint)
}

func (c *ResultCache) Put(ctx context.Context, fingerprint string, result *distill.ProcessingResult) error {
	return c.PutFn(ctx, fingerprint, result)
}
