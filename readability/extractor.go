package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/ham-zax/distill"
)

// Ensure Extractor implements distill.Extractor at compile time.
var _ distill.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*distill.ExtractResult, error) {
	if rawHTML == "" {
		return nil, distill.Errorf(distill.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &distill.ExtractResult{
		Content: article.Content,
		Title:   article.Title,
		Excerpt: article.Excerpt,
		Byline:  article.Byline,
	}, nil
}
