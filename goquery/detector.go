// Package goquery implements site-specific extraction plugins on top
// of CSS-selector queries. The docs plugin recognizes common
// documentation generators and lifts their main content column
// directly; the wiki plugin does the same for MediaWiki sites.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Framework identifies a documentation site generator.
type Framework string

const (
	FrameworkUnknown    Framework = ""
	FrameworkDocusaurus Framework = "docusaurus"
	FrameworkMkDocs     Framework = "mkdocs"
	FrameworkSphinx     Framework = "sphinx"
	FrameworkVitePress  Framework = "vitepress"
	FrameworkVuePress   Framework = "vuepress"
	FrameworkGitBook    Framework = "gitbook"
	FrameworkNextra     Framework = "nextra"
)

// markers are structural fingerprints unique to each generator,
// checked in order. Earlier entries are more specific; VitePress must
// precede VuePress because it descends from it.
var markers = []struct {
	framework Framework
	selector  string
}{
	{FrameworkDocusaurus, "#__docusaurus_skipToContent_fallback"},
	{FrameworkDocusaurus, ".theme-doc-sidebar-container"},
	{FrameworkMkDocs, "[data-md-color-scheme]"},
	{FrameworkMkDocs, "[data-md-component]"},
	{FrameworkSphinx, ".toctree-wrapper"},
	{FrameworkSphinx, ".wy-nav-side"},
	{FrameworkSphinx, ".sphinxsidebar"},
	{FrameworkVitePress, "#VPContent"},
	{FrameworkVitePress, ".VPDoc"},
	{FrameworkVuePress, ".theme-default-content"},
	{FrameworkVuePress, ".sidebar-links"},
	{FrameworkGitBook, "[data-testid='space.sidebar']"},
	{FrameworkGitBook, "[data-testid='page.desktopTableOfContents']"},
	{FrameworkNextra, ".nextra-nav-container"},
	{FrameworkNextra, "article.nextra-body"},
}

// generatorPrefixes map meta generator values to frameworks. The meta
// tag is the most reliable signal when present.
var generatorPrefixes = map[string]Framework{
	"docusaurus": FrameworkDocusaurus,
	"mkdocs":     FrameworkMkDocs,
	"sphinx":     FrameworkSphinx,
	"vitepress":  FrameworkVitePress,
	"vuepress":   FrameworkVuePress,
	"gitbook":    FrameworkGitBook,
	"nextra":     FrameworkNextra,
}

// Detect identifies the documentation framework behind a parsed page.
// Returns FrameworkUnknown when no fingerprint matches.
func Detect(doc *goquery.Document) Framework {
	if generator, ok := doc.Find(`meta[name="generator"]`).Attr("content"); ok {
		lower := strings.ToLower(generator)
		for prefix, framework := range generatorPrefixes {
			if strings.HasPrefix(lower, prefix) {
				return framework
			}
		}
	}

	for _, m := range markers {
		if doc.Find(m.selector).Length() > 0 {
			return m.framework
		}
	}
	return FrameworkUnknown
}
