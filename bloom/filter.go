// Package bloom provides fingerprint presence testing using Bloom
// filters, fronting the result cache so misses skip the database.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter wraps a Bloom filter for fingerprint deduplication. Safe for
// concurrent use.
type Filter struct {
	mu sync.RWMutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a fingerprint to the filter.
func (f *Filter) Add(fingerprint string) {
	f.mu.Lock()
	f.f.AddString(fingerprint)
	f.mu.Unlock()
}

// Test returns true if the fingerprint might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(fingerprint string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.f.TestString(fingerprint)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return uint(f.f.ApproximatedSize())
}
