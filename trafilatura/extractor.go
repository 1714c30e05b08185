package trafilatura

import (
	"bytes"
	"strings"

	"github.com/ham-zax/distill"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements distill.Extractor at compile time.
var _ distill.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
// The pipeline uses it as the alternate engine behind the
// re-extraction recovery strategy.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var content string
	if result.ContentNode != nil {
		content, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &distill.ExtractResult{
		Content: content,
		Title:   result.Metadata.Title,
		Excerpt: result.Metadata.Description,
		Byline:  result.Metadata.Author,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
