package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ham-zax/distill"
)

var _ distill.SitePlugin = (*DocsPlugin)(nil)

// contentSelectors name each framework's main content column, most
// specific first.
var contentSelectors = map[Framework][]string{
	FrameworkDocusaurus: {"article .theme-doc-markdown", "article .markdown", "main article"},
	FrameworkMkDocs:     {"article.md-content__inner", ".md-content article", ".md-content"},
	FrameworkSphinx:     {"div[role='main'] .body", ".rst-content .document", "div.body"},
	FrameworkVitePress:  {".VPDoc .vp-doc", "#VPContent main"},
	FrameworkVuePress:   {".theme-default-content"},
	FrameworkGitBook:    {"main [data-testid='page.contentEditor']", "main"},
	FrameworkNextra:     {"article.nextra-body", "main .nextra-content", "main"},
}

// chromeSelector matches navigation furniture that generators embed
// inside the content column itself.
const chromeSelector = ".table-of-contents, .md-sidebar, .toctree-wrapper, nav, aside, .breadcrumbs, .pagination-nav, .edit-this-page, .theme-edit-link"

// DocsPlugin recognizes pages produced by common documentation
// generators and extracts their content column directly, skipping the
// general-purpose chain. Generated sites have rigid, well-known
// markup, so a selector lift beats heuristics on both precision and
// cost.
type DocsPlugin struct{}

// NewDocsPlugin returns a DocsPlugin.
func NewDocsPlugin() *DocsPlugin {
	return &DocsPlugin{}
}

// Name returns the plugin's identifier.
func (p *DocsPlugin) Name() string {
	return "docs"
}

// CanHandle accepts any web URL; framework detection happens against
// the markup during Extract, not the URL.
func (p *DocsPlugin) CanHandle(sourceURL string) bool {
	return strings.HasPrefix(sourceURL, "http://") || strings.HasPrefix(sourceURL, "https://")
}

// Extract detects the framework and lifts its content column. An
// unrecognized framework or empty content column reports score zero,
// letting the standard chain take over.
func (p *DocsPlugin) Extract(input distill.Input) (*distill.PluginResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input.HTML))
	if err != nil {
		return nil, distill.Errorf(distill.EINVALID, "failed to parse HTML: %v", err)
	}

	framework := Detect(doc)
	if framework == FrameworkUnknown {
		return &distill.PluginResult{}, nil
	}

	var content *goquery.Selection
	for _, selector := range contentSelectors[framework] {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			content = sel
			break
		}
	}
	if content == nil {
		return &distill.PluginResult{}, nil
	}

	content.Find(chromeSelector).Remove()

	html, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, distill.Errorf(distill.EINTERNAL, "failed to serialize content: %v", err)
	}

	return &distill.PluginResult{
		Score:       scoreContent(content),
		ContentHTML: html,
		Title:       pageTitle(doc, content),
	}, nil
}

// scoreContent is the plugin's self-reported confidence. A recognized
// framework with a substantial content column is a strong signal; thin
// columns score low so the standard chain runs instead.
func scoreContent(content *goquery.Selection) int {
	text := strings.Join(strings.Fields(content.Text()), " ")
	switch {
	case len(text) >= 1000:
		return 90
	case len(text) >= 300:
		return 75
	case len(text) >= 100:
		return 60
	default:
		return 20
	}
}

// pageTitle prefers the content's own heading over site-wide metadata,
// which tends to carry the site name.
func pageTitle(doc *goquery.Document, content *goquery.Selection) string {
	if h := content.Find("h1").First(); h.Length() > 0 {
		return strings.TrimSpace(h.Text())
	}
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && og != "" {
		return strings.TrimSpace(og)
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
