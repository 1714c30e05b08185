package distill

// PluginResult is a site plugin's self-reported extraction: a score on
// the same scale the quality gates use, plus the extracted content.
type PluginResult struct {
	// Score is the plugin's own estimate of extraction quality, 0-100.
	// The orchestrator only honors a shortcut when Score >= 60 and
	// the content is at least 100 characters long.
	Score int

	// ContentHTML is the extracted main content as an HTML fragment.
	ContentHTML string

	// Title is the plugin-extracted title, when available.
	Title string
}

// SitePlugin is an optional stage-zero extractor specialized for a
// site family. A plugin that reports a strong result short-circuits
// the general pipeline straight to conversion; a weak or failed result
// falls through to the standard chain.
//
// Plugins are selected by source URL only. They never fetch.
type SitePlugin interface {
	// Name identifies the plugin in diagnostics.
	Name() string

	// CanHandle reports whether the plugin applies to a source URL.
	CanHandle(sourceURL string) bool

	// Extract runs the specialized extraction against the captured
	// markup.
	Extract(input Input) (*PluginResult, error)
}
