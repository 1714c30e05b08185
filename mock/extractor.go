package mock

import "github.com/ham-zax/distill"

var _ distill.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of distill.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*distill.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*distill.ExtractResult, error) {
	return e.ExtractFn(html)
}
