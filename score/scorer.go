// Package score implements the heuristic content scorer and subtree
// pruner used by the extraction pipeline's last-resort stage.
package score

import (
	"fmt"
	"strings"

	"github.com/ham-zax/distill"
)

// Tunable defaults. The prune threshold is inclusive: direct children
// of a winning candidate scoring at or below it are discarded. Earlier
// revisions of the scoring logic shipped -5; the current default is 0.
const (
	DefaultPruneThreshold = 0
	DefaultMinTextLength  = 50
)

// Score contributions per container kind. Semantic content containers
// gain, structural chrome loses.
var containerBonus = map[string]int{
	"main":    20,
	"article": 20,
	"section": 10,
	"div":     5,
	"nav":     -50,
	"header":  -50,
	"footer":  -50,
	"aside":   -50,
}

// candidateKinds are the container kinds considered content islands.
var candidateKinds = map[string]bool{
	"main":    true,
	"article": true,
	"section": true,
	"div":     true,
	"td":      true,
}

var negativeKeywords = map[string]bool{
	"ad": true, "ads": true, "advert": true, "advertisement": true,
	"banner": true, "breadcrumb": true, "comment": true, "comments": true,
	"cookie": true, "disclaimer": true, "footer": true, "masthead": true,
	"menu": true, "nav": true, "navbar": true, "newsletter": true,
	"popup": true, "promo": true, "related": true, "share": true,
	"sidebar": true, "social": true, "sponsor": true, "subscribe": true,
	"widget": true,
}

var positiveKeywords = map[string]bool{
	"article": true, "blog": true, "body": true, "content": true,
	"entry": true, "main": true, "post": true, "story": true,
	"text": true,
}

// Scorer assigns heuristic content scores to nodes. Scoring is
// deterministic: identical input always yields an identical score.
type Scorer struct {
	// PruneThreshold is the inclusive score at or below which
	// PruneNode discards direct children.
	PruneThreshold int

	// MinTextLength is the visible-text floor below which a node
	// scores zero, too small to be main content.
	MinTextLength int

	// Preserve exempts a node from pruning regardless of its score.
	// Optional; the pipeline wires this to the boilerplate filter's
	// preservation check so code blocks survive the prune.
	Preserve func(n distill.Node) bool

	// OnWarning receives diagnostics for faults swallowed during
	// scoring. Optional.
	OnWarning func(msg string)
}

// NewScorer returns a Scorer with default tuning.
func NewScorer() *Scorer {
	return &Scorer{
		PruneThreshold: DefaultPruneThreshold,
		MinTextLength:  DefaultMinTextLength,
	}
}

// ScoreNode computes the heuristic content score of a node. Scores may
// be negative. Invisible nodes and nodes below the text-length floor
// score zero. Faults during scoring never propagate: the node scores
// zero and a warning is recorded.
func (s *Scorer) ScoreNode(n distill.Node) int {
	c := s.scoreCandidate(n)
	if c == nil {
		return 0
	}
	return c.Score
}

// ScoreCandidate is ScoreNode plus the rationale behind each
// contribution.
func (s *Scorer) ScoreCandidate(n distill.Node) *distill.Candidate {
	if c := s.scoreCandidate(n); c != nil {
		return c
	}
	return &distill.Candidate{Node: n}
}

func (s *Scorer) scoreCandidate(n distill.Node) (c *distill.Candidate) {
	defer func() {
		if r := recover(); r != nil {
			s.warnf("scoring fault: %v", r)
			c = nil
		}
	}()

	if n == nil {
		return nil
	}

	c = &distill.Candidate{Node: n}
	if !n.Visible() {
		c.Rationale = append(c.Rationale, "invisible: score 0")
		return c
	}

	text := n.Text()
	if len(text) < s.minTextLength() {
		c.Rationale = append(c.Rationale, fmt.Sprintf("text below %d chars: score 0", s.minTextLength()))
		return c
	}

	add := func(points int, format string, args ...any) {
		if points == 0 {
			return
		}
		c.Score += points
		c.Rationale = append(c.Rationale, fmt.Sprintf(format+": %+d", append(args, points)...))
	}

	add(containerBonus[n.Kind()], "container <%s>", n.Kind())

	neg, pos := keywordMatches(n)
	if neg != "" {
		add(-50, "negative keyword %q", neg)
	}
	if pos != "" {
		add(25, "positive keyword %q", pos)
	}

	if density := linkDensity(n); density > 0.3 {
		penalty := int(density * density * float64(len(text)) * 0.5)
		add(-penalty, "link density %.2f", density)
	}

	add(len(text)/100, "text length %d", len(text))

	if len(distill.FindAll(n, "table")) > 0 {
		add(30, "tabular content")
	}

	if p := countBlocks(n, "p"); p > 0 {
		add(2*p, "%d paragraphs", p)
	}

	if h := countHeadings(n); h > 0 {
		capped := h
		if capped > 5 {
			capped = 5
		}
		add(3*capped, "%d headings", h)
	}

	return c
}

// FindBestCandidate scores the content islands of a tree and returns
// the maximum-scoring one. Ties resolve to the first island in
// document order. The root itself competes.
func (s *Scorer) FindBestCandidate(root distill.Node) *distill.Candidate {
	if root == nil {
		return nil
	}

	best := s.ScoreCandidate(root)
	distill.Walk(root, func(n distill.Node) bool {
		if n == root || !candidateKinds[n.Kind()] {
			return true
		}
		if c := s.ScoreCandidate(n); c.Score > best.Score {
			best = c
		}
		return true
	})
	return best
}

// PruneNode clones the winner, scores each direct child, and discards
// children scoring at or below the prune threshold. The original tree
// is never mutated.
func (s *Scorer) PruneNode(winner distill.Node) distill.Node {
	if winner == nil {
		return nil
	}

	pruned := winner.Clone()
	for _, child := range pruned.Children() {
		if s.Preserve != nil && s.Preserve(child) {
			continue
		}
		if s.ScoreNode(child) <= s.PruneThreshold {
			child.Remove()
		}
	}
	return pruned
}

func (s *Scorer) minTextLength() int {
	if s.MinTextLength > 0 {
		return s.MinTextLength
	}
	return DefaultMinTextLength
}

func (s *Scorer) warnf(format string, args ...any) {
	if s.OnWarning != nil {
		s.OnWarning(fmt.Sprintf(format, args...))
	}
}

// keywordMatches returns the first negative and positive keyword found
// among the node's class and id tokens.
func keywordMatches(n distill.Node) (negative, positive string) {
	tokens := strings.FieldsFunc(
		strings.ToLower(n.Attr("class")+" "+n.Attr("id")),
		func(r rune) bool {
			return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
		},
	)
	for _, tok := range tokens {
		if negative == "" && negativeKeywords[tok] {
			negative = tok
		}
		if positive == "" && positiveKeywords[tok] {
			positive = tok
		}
	}
	return negative, positive
}

// linkDensity is anchor text length over total text length.
func linkDensity(n distill.Node) float64 {
	total := len(n.Text())
	if total == 0 {
		return 0
	}
	linked := 0
	for _, a := range distill.FindAll(n, "a") {
		linked += len(a.Text())
	}
	if linked > total {
		linked = total
	}
	return float64(linked) / float64(total)
}

// countBlocks counts non-empty elements of a kind within the subtree.
func countBlocks(n distill.Node, kind string) int {
	count := 0
	for _, el := range distill.FindAll(n, kind) {
		if strings.TrimSpace(el.Text()) != "" {
			count++
		}
	}
	return count
}

func countHeadings(n distill.Node) int {
	return len(distill.FindAll(n, "h1, h2, h3, h4, h5, h6"))
}
