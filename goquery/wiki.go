package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ham-zax/distill"
)

var _ distill.SitePlugin = (*WikiPlugin)(nil)

// wikiChromeSelector matches MediaWiki furniture inside the parser
// output: edit links, reference markers, info/nav boxes, and the
// table of contents.
const wikiChromeSelector = ".mw-editsection, .reference, .infobox, .navbox, .sidebar, .metadata, .hatnote, #toc, .toc, .mw-jump-link, .catlinks"

// WikiPlugin extracts article bodies from MediaWiki sites. MediaWiki
// markup is stable across installs, so the parser output div can be
// lifted directly.
type WikiPlugin struct{}

// NewWikiPlugin returns a WikiPlugin.
func NewWikiPlugin() *WikiPlugin {
	return &WikiPlugin{}
}

// Name returns the plugin's identifier.
func (p *WikiPlugin) Name() string {
	return "wiki"
}

// CanHandle matches MediaWiki-style article URLs.
func (p *WikiPlugin) CanHandle(sourceURL string) bool {
	lower := strings.ToLower(sourceURL)
	return strings.Contains(lower, "wikipedia.org/wiki/") ||
		strings.Contains(lower, "/wiki/") && strings.HasPrefix(lower, "http")
}

// Extract lifts the MediaWiki parser output. Pages without one report
// score zero so the standard chain takes over.
func (p *WikiPlugin) Extract(input distill.Input) (*distill.PluginResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input.HTML))
	if err != nil {
		return nil, distill.Errorf(distill.EINVALID, "failed to parse HTML: %v", err)
	}

	content := doc.Find(".mw-parser-output").First()
	if content.Length() == 0 {
		content = doc.Find("#mw-content-text").First()
	}
	if content.Length() == 0 {
		return &distill.PluginResult{}, nil
	}

	content.Find(wikiChromeSelector).Remove()

	html, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, distill.Errorf(distill.EINTERNAL, "failed to serialize content: %v", err)
	}

	title := strings.TrimSpace(doc.Find("#firstHeading").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	return &distill.PluginResult{
		Score:       scoreContent(content),
		ContentHTML: html,
		Title:       title,
	}, nil
}
