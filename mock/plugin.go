package mock

import "github.com/ham-zax/distill"

var _ distill.SitePlugin = (*SitePlugin)(nil)

// SitePlugin is a mock implementation of distill.SitePlugin.
type SitePlugin struct {
	NameFn      func() string
	CanHandleFn func(sourceURL string) bool
	ExtractFn   func(input distill.Input) (*distill.PluginResult, error)
}

func (p *SitePlugin) Name() string {
	return p.NameFn()
}

func (p *SitePlugin) CanHandle(sourceURL string) bool {
	return p.CanHandleFn(sourceURL)
}

func (p *SitePlugin) Extract(input distill.Input) (*distill.PluginResult, error) {
	return p.ExtractFn(input)
}
