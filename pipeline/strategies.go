package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ham-zax/distill"
)

// Built-in strategy priorities. Lower runs first.
const (
	PriorityReextract   = 10
	PrioritySalvageText = 20
	PriorityStripTags   = 40
)

// DefaultRegistry returns a registry with the built-in strategies.
// The alternate extractor backs the re-extraction strategy; nil skips
// it.
func DefaultRegistry(alternate distill.Extractor) *Registry {
	r := NewRegistry()
	if alternate != nil {
		r.Register(&ReextractStrategy{Extractor: alternate})
	}
	r.Register(&SalvageTextStrategy{})
	r.Register(&StripTagsStrategy{})
	return r
}

// Ensure built-in strategies satisfy the interface at compile time.
var (
	_ distill.Strategy = (*ReextractStrategy)(nil)
	_ distill.Strategy = (*SalvageTextStrategy)(nil)
	_ distill.Strategy = (*StripTagsStrategy)(nil)
)

// ReextractStrategy retries extraction with an alternate
// general-purpose engine. A fault in one engine rarely reproduces in
// another.
type ReextractStrategy struct {
	Extractor distill.Extractor
}

func (s *ReextractStrategy) Name() string  { return "reextract" }
func (s *ReextractStrategy) Priority() int { return PriorityReextract }

func (s *ReextractStrategy) Description() string {
	return "re-runs extraction with an alternate engine"
}

func (s *ReextractStrategy) CanHandle(pctx *distill.Context) bool {
	return s.Extractor != nil && pctx != nil && pctx.Input.HTML != ""
}

func (s *ReextractStrategy) Execute(ctx context.Context, pctx *distill.Context) (*distill.FallbackResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := s.Extractor.Extract(pctx.Input.HTML)
	if err != nil {
		return nil, err
	}
	if len(res.Content) < 100 {
		return &distill.FallbackResult{
			Warnings: []string{"alternate extractor output too short"},
		}, nil
	}

	return &distill.FallbackResult{
		Success: true,
		Content: res.Content,
	}, nil
}

// SalvageTextStrategy rebuilds paragraphs from the run's working tree.
// It loses structure beyond block boundaries but preserves the text.
type SalvageTextStrategy struct{}

func (s *SalvageTextStrategy) Name() string  { return "salvage_text" }
func (s *SalvageTextStrategy) Priority() int { return PrioritySalvageText }

func (s *SalvageTextStrategy) Description() string {
	return "rebuilds paragraphs from the working tree's visible text"
}

func (s *SalvageTextStrategy) CanHandle(pctx *distill.Context) bool {
	return pctx != nil && pctx.Tree != nil
}

func (s *SalvageTextStrategy) Execute(ctx context.Context, pctx *distill.Context) (*distill.FallbackResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	for _, block := range distill.FindAll(pctx.Tree, "p, h1, h2, h3, h4, h5, h6, li, blockquote, pre") {
		text := strings.TrimSpace(block.Text())
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "<p>%s</p>\n", text)
	}

	if b.Len() == 0 {
		if text := strings.TrimSpace(pctx.Tree.Text()); text != "" {
			fmt.Fprintf(&b, "<p>%s</p>\n", text)
		}
	}
	if b.Len() == 0 {
		return &distill.FallbackResult{
			Warnings: []string{"working tree holds no visible text"},
		}, nil
	}

	return &distill.FallbackResult{
		Success: true,
		Content: b.String(),
	}, nil
}

var (
	strippedBlockRe = regexp.MustCompile(`(?is)<(script|style|noscript|template)\b[^>]*>.*?</\s*(script|style|noscript|template)\s*>`)
	tagRe           = regexp.MustCompile(`<[^>]*>`)
)

// StripTagsStrategy is the bluntest fallback: strip markup from the
// raw capture and keep whatever text remains. It works even when the
// capture never parsed into a tree.
type StripTagsStrategy struct{}

func (s *StripTagsStrategy) Name() string  { return "strip_tags" }
func (s *StripTagsStrategy) Priority() int { return PriorityStripTags }

func (s *StripTagsStrategy) Description() string {
	return "strips markup from the raw capture"
}

func (s *StripTagsStrategy) CanHandle(pctx *distill.Context) bool {
	return pctx != nil && pctx.Input.HTML != ""
}

func (s *StripTagsStrategy) Execute(ctx context.Context, pctx *distill.Context) (*distill.FallbackResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := strippedBlockRe.ReplaceAllString(pctx.Input.HTML, " ")
	text = tagRe.ReplaceAllString(text, " ")
	text = strings.Join(strings.Fields(text), " ")

	if len(text) < 50 {
		return &distill.FallbackResult{
			Warnings: []string{"stripped capture holds too little text"},
		}, nil
	}

	return &distill.FallbackResult{
		Success:  true,
		Content:  text,
		Warnings: []string{"content recovered by stripping markup; structure lost"},
	}, nil
}
