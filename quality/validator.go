// Package quality computes candidate metrics and the gate verdicts
// that drive the pipeline's stage branching.
package quality

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ham-zax/distill"
)

// Gate thresholds. Gate A judges semantic and plugin shortcuts, Gate B
// general-purpose extractor output, Gate C the scoring fallback, which
// is the last resort and never blocks.
const (
	GateAMinScore       = 60
	GateAMinCharacters  = 500
	GateAMinParagraphs  = 2
	GateAMaxLinkDensity = 0.4
	GateAMinStructure   = 30

	GateBMinScore       = 40
	GateBMinCharacters  = 300
	GateBMaxLinkDensity = 0.5
)

// blockSelector matches the text-bearing blocks counted as paragraphs.
const blockSelector = "p, li, blockquote, pre, dd, h1, h2, h3, h4, h5, h6"

const headingSelector = "h1, h2, h3, h4, h5, h6"

// semanticSelector matches the containers feeding the structure score.
const semanticSelector = "main, article, section"

// Validator computes quality metrics and gate verdicts. Metrics are
// recomputed for every candidate, never cached.
type Validator struct{}

// NewValidator returns a Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Metrics measures a candidate node. A nil candidate yields zeroes.
func (v *Validator) Metrics(n distill.Node) distill.Metrics {
	if n == nil {
		return distill.Metrics{}
	}

	text := n.Text()
	m := distill.Metrics{
		CharacterCount: utf8.RuneCountInString(text),
		HeadingCount:   len(distill.FindAll(n, headingSelector)),
	}

	paragraphChars := 0
	for _, block := range distill.FindAll(n, blockSelector) {
		blockText := strings.TrimSpace(block.Text())
		if blockText == "" {
			continue
		}
		m.ParagraphCount++
		paragraphChars += utf8.RuneCountInString(blockText)
	}
	if m.ParagraphCount > 0 {
		m.AvgParagraphLength = float64(paragraphChars) / float64(m.ParagraphCount)
	}

	if len(text) > 0 {
		linked := 0
		for _, a := range distill.FindAll(n, "a") {
			linked += len(a.Text())
		}
		if linked > len(text) {
			linked = len(text)
		}
		m.LinkDensity = float64(linked) / float64(len(text))
	}

	if serialized := len(n.HTML()); serialized > 0 {
		m.SignalToNoise = float64(len(text)) / float64(serialized)
	}

	structure := 25*len(distill.FindAll(n, semanticSelector)) + 15*m.HeadingCount
	if structure > 100 {
		structure = 100
	}
	m.StructureScore = structure

	return m
}

// Score reduces metrics to a weighted 0-100 quality score: length up
// to 30, paragraph count up to 20, inverse link density up to 20,
// signal-to-noise up to 15, structure up to 15.
func (v *Validator) Score(m distill.Metrics) int {
	score := 0

	length := m.CharacterCount / 25
	if length > 30 {
		length = 30
	}
	score += length

	paragraphs := 5 * m.ParagraphCount
	if paragraphs > 20 {
		paragraphs = 20
	}
	score += paragraphs

	score += int((1 - m.LinkDensity) * 20)
	score += int(m.SignalToNoise * 15)
	score += m.StructureScore * 15 / 100

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// GateA judges semantic-query and site-plugin candidates. It is the
// strictest gate: only a clearly article-shaped candidate should skip
// the general-purpose extractor.
func (v *Validator) GateA(n distill.Node) distill.GateResult {
	m := v.Metrics(n)
	r := distill.GateResult{Score: v.Score(m), Metrics: m}

	if r.Score < GateAMinScore {
		r.FailureReasons = append(r.FailureReasons, fmt.Sprintf("quality score %d below %d", r.Score, GateAMinScore))
	}
	if m.CharacterCount < GateAMinCharacters {
		r.FailureReasons = append(r.FailureReasons, fmt.Sprintf("character count %d below %d", m.CharacterCount, GateAMinCharacters))
	}
	if m.ParagraphCount < GateAMinParagraphs {
		r.FailureReasons = append(r.FailureReasons, fmt.Sprintf("paragraph count %d below %d", m.ParagraphCount, GateAMinParagraphs))
	}
	if m.LinkDensity > GateAMaxLinkDensity {
		r.FailureReasons = append(r.FailureReasons, fmt.Sprintf("link density %.2f above %.2f", m.LinkDensity, GateAMaxLinkDensity))
	}
	if m.StructureScore < GateAMinStructure {
		r.FailureReasons = append(r.FailureReasons, fmt.Sprintf("structure score %d below %d", m.StructureScore, GateAMinStructure))
	}

	r.Passed = len(r.FailureReasons) == 0
	return r
}

// GateB judges general-purpose extractor output. Absent or empty
// output scores zero and fails automatically.
func (v *Validator) GateB(n distill.Node) distill.GateResult {
	if n == nil || strings.TrimSpace(n.Text()) == "" {
		return distill.GateResult{
			FailureReasons: []string{"no extractor output"},
		}
	}

	m := v.Metrics(n)
	r := distill.GateResult{Score: v.Score(m), Metrics: m}

	if r.Score < GateBMinScore {
		r.FailureReasons = append(r.FailureReasons, fmt.Sprintf("quality score %d below %d", r.Score, GateBMinScore))
	}
	if m.CharacterCount < GateBMinCharacters {
		r.FailureReasons = append(r.FailureReasons, fmt.Sprintf("character count %d below %d", m.CharacterCount, GateBMinCharacters))
	}
	if m.LinkDensity > GateBMaxLinkDensity {
		r.FailureReasons = append(r.FailureReasons, fmt.Sprintf("link density %.2f above %.2f", m.LinkDensity, GateBMaxLinkDensity))
	}

	r.Passed = len(r.FailureReasons) == 0
	return r
}

// GateC judges the scoring fallback. It always passes, since the
// pipeline's last resort must yield something, but the score is still
// computed and reported for diagnostics.
func (v *Validator) GateC(n distill.Node) distill.GateResult {
	m := v.Metrics(n)
	return distill.GateResult{
		Passed:  true,
		Score:   v.Score(m),
		Metrics: m,
	}
}
