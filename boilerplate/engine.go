// Package boilerplate implements the two-pass rule-driven cleaner that
// strips structural and decorative content from captured trees.
package boilerplate

import (
	"strings"

	"github.com/ham-zax/distill"
)

// Engine applies filter rule sets to content trees. The SAFE set runs
// on every input and is idempotent; the AGGRESSIVE set runs only on
// the scoring-path branch, strictly after SAFE, to delete content
// orphaned by unwrapping.
type Engine struct {
	// MaxHeadingDistance bounds how many ancestors the preservation
	// heuristic climbs when looking for a technical heading.
	MaxHeadingDistance int

	// BypassSignalThreshold is the number of preservation signals at
	// document scope at which the general-purpose extractor stage is
	// skipped in favor of the scoring path.
	BypassSignalThreshold int
}

// NewEngine returns an Engine with default tuning.
func NewEngine() *Engine {
	return &Engine{
		MaxHeadingDistance:    3,
		BypassSignalThreshold: 3,
	}
}

// Apply runs one rule pass over a clone of the tree and returns the
// cleaned clone; the input tree is never mutated. Matches protected by
// ShouldPreserve are skipped.
//
// Preservation protects a node from rules matching that node only. A
// Remove rule matching an ancestor still deletes the whole subtree,
// preserved descendants included.
func (e *Engine) Apply(tree distill.Node, rules []distill.Rule) distill.Node {
	if tree == nil {
		return nil
	}

	clean := tree.Clone()
	for _, rule := range rules {
		for _, n := range distill.FindAll(clean, rule.Selector) {
			if e.ShouldPreserve(n) {
				continue
			}
			switch rule.Action {
			case distill.ActionRemove:
				n.Remove()
			case distill.ActionUnwrap:
				n.Unwrap()
			}
		}
	}
	return clean
}

// Clean applies the enabled rule sets for a pipeline branch: SAFE
// always, then AGGRESSIVE when requested.
func (e *Engine) Clean(tree distill.Node, cfg distill.Config, aggressive bool) distill.Node {
	clean := tree
	if cfg.RuleSetEnabled(distill.RuleSetSafe) {
		clean = e.Apply(clean, SafeRules())
	}
	if aggressive && cfg.RuleSetEnabled(distill.RuleSetAggressive) {
		clean = e.Apply(clean, AggressiveRules())
	}
	return clean
}

// codeClassTokens mark code and language blocks by class.
var codeClassTokens = map[string]bool{
	"chroma":      true,
	"code":        true,
	"codeblock":   true,
	"highlight":   true,
	"hljs":        true,
	"shiki":       true,
	"snippet":     true,
	"sourcecode":  true,
	"syntax":      true,
	"prettyprint": true,
}

// technicalHeadingTerms suggest the section under a heading carries
// technical content worth keeping.
var technicalHeadingTerms = []string{
	"api", "argument", "code", "command", "config", "example",
	"install", "option", "parameter", "reference", "setup", "snippet",
	"syntax", "usage",
}

// ShouldPreserve reports whether a node carries content the filter
// passes must not destroy: explicit content markers, code or language
// blocks, or proximity to a heading suggesting technical content.
// This predicate is the sole seam between both passes and legitimate
// content.
func (e *Engine) ShouldPreserve(n distill.Node) bool {
	if n == nil {
		return false
	}
	if hasContentMarker(n) || isCodeBlock(n) {
		return true
	}
	return e.nearTechnicalHeading(n)
}

func hasContentMarker(n distill.Node) bool {
	switch n.Kind() {
	case "main", "article":
		return true
	}
	if n.Attr("role") == "main" {
		return true
	}
	if strings.Contains(n.Attr("itemprop"), "articleBody") {
		return true
	}
	return n.Attr("data-preserve") != ""
}

func isCodeBlock(n distill.Node) bool {
	switch n.Kind() {
	case "pre", "code", "samp", "kbd":
		return true
	}
	class := strings.ToLower(n.Attr("class"))
	if strings.Contains(class, "language-") {
		return true
	}
	for _, tok := range strings.Fields(class) {
		if codeClassTokens[tok] {
			return true
		}
	}
	return false
}

// nearTechnicalHeading climbs a bounded number of ancestors and checks
// their direct heading children for technical terms.
func (e *Engine) nearTechnicalHeading(n distill.Node) bool {
	anc := n
	for hops := 0; anc != nil && hops <= e.MaxHeadingDistance; hops++ {
		for _, c := range anc.Children() {
			if !isHeading(c) {
				continue
			}
			if headingIsTechnical(c.Text()) {
				return true
			}
		}
		anc = anc.Parent()
	}
	return false
}

func isHeading(n distill.Node) bool {
	switch n.Kind() {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

func headingIsTechnical(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range technicalHeadingTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// ShouldBypassReadability reuses the preservation signal at document
// scope to decide, once per run, whether the general-purpose extractor
// stage should be skipped in favor of the scoring path. Pages dense
// with code blocks lose too much through generic extraction.
func (e *Engine) ShouldBypassReadability(tree distill.Node) bool {
	if tree == nil {
		return false
	}

	signals := 0
	distill.Walk(tree, func(n distill.Node) bool {
		if isCodeBlock(n) {
			signals++
			// A code block's descendants would recount the same signal.
			return false
		}
		return true
	})
	return signals >= e.BypassSignalThreshold
}
