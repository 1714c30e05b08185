package pipeline

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ham-zax/distill"
)

// Registry holds prioritized recovery strategies for unexpected stage
// faults. It is an explicit object injected into the pipeline, so
// tests can build isolated registries instead of sharing process-wide
// state.
type Registry struct {
	mu         sync.RWMutex
	strategies []distill.Strategy
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a strategy. Strategies sharing a priority run in
// registration order.
func (r *Registry) Register(s distill.Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies = append(r.strategies, s)
}

// Strategies returns the registered strategies sorted ascending by
// priority, ties in registration order.
func (r *Registry) Strategies() []distill.Strategy {
	r.mu.RLock()
	out := make([]distill.Strategy, len(r.strategies))
	copy(out, r.strategies)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority() < out[j].Priority()
	})
	return out
}

// Recover tries every applicable strategy in priority order and
// returns the first success. A strategy that faults or times out is
// logged and skipped; it never aborts the recovery attempt. When all
// strategies fail, the returned result has Success false and carries
// every collected warning and error, to be combined with the original
// fault.
//
// Each execution races against the timeout. The loser of the race is
// abandoned, not preempted: cancellation flows through the context,
// so this is cooperative and best-effort, not a resource guarantee.
func (r *Registry) Recover(ctx context.Context, pctx *distill.Context, timeout time.Duration) *distill.FallbackResult {
	var warnings, errs []string

	for _, s := range r.Strategies() {
		if !canHandle(s, pctx) {
			continue
		}

		res, err := r.execute(ctx, s, pctx, timeout)
		if err != nil {
			errs = append(errs, fmt.Sprintf("strategy %s: %s", s.Name(), err))
			continue
		}
		if res == nil || !res.Success {
			warnings = append(warnings, fmt.Sprintf("strategy %s produced no usable result", s.Name()))
			continue
		}

		res.StrategyName = s.Name()
		res.Warnings = append(warnings, res.Warnings...)
		res.Errors = append(errs, res.Errors...)
		return res
	}

	return &distill.FallbackResult{
		Success:  false,
		Warnings: warnings,
		Errors:   errs,
	}
}

// canHandle shields the registry from a predicate that panics.
func canHandle(s distill.Strategy, pctx *distill.Context) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return s.CanHandle(pctx)
}

type outcome struct {
	res *distill.FallbackResult
	err error
}

// execute runs one strategy against the timeout.
func (r *Registry) execute(ctx context.Context, s distill.Strategy, pctx *distill.Context, timeout time.Duration) (*distill.FallbackResult, error) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ch := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: distill.Errorf(distill.EINTERNAL, "strategy %s panicked: %v", s.Name(), r)}
			}
		}()
		res, err := s.Execute(cctx, pctx)
		ch <- outcome{res: res, err: err}
	}()

	select {
	case o := <-ch:
		return o.res, o.err
	case <-cctx.Done():
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, distill.Errorf(distill.ETIMEOUT, "strategy %s exceeded %s", s.Name(), timeout)
	}
}
