package distill

import "context"

// ResultCache persists processing results keyed by a fingerprint of
// the captured content and the configuration that processed it.
// Entries expire after an implementation-defined TTL.
type ResultCache interface {
	// Get returns the cached result for a fingerprint.
	// Returns ENOTFOUND if the entry is absent or expired.
	Get(ctx context.Context, fingerprint string) (*ProcessingResult, error)

	// Put stores a result under a fingerprint, replacing any
	// previous entry.
	Put(ctx context.Context, fingerprint string, result *ProcessingResult) error
}
