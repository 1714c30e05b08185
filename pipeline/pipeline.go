// Package pipeline implements the quality-gated stage orchestrator:
// it sequences extraction stages, branches on gate verdicts, retries
// transient faults, and hands unexpected faults to the recovery
// registry. No fault escapes Process.
package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/ham-zax/distill"
	"github.com/ham-zax/distill/boilerplate"
	"github.com/ham-zax/distill/quality"
	"github.com/ham-zax/distill/score"
)

// Ensure Pipeline implements distill.Processor at compile time.
var _ distill.Processor = (*Pipeline)(nil)

// ParseFunc builds a content tree from captured markup.
type ParseFunc func(html string) (distill.Node, error)

// Pipeline runs the staged extraction state machine. All collaborators
// are injected at construction; Scorer, Filter, and Validator fall
// back to defaults when nil. Cache, Plugins, Recovery, and Diag are
// optional.
//
// A Pipeline is safe for concurrent use: runs share no mutable state
// beyond the read-mostly rule configuration and the bounded
// diagnostic log.
type Pipeline struct {
	Parse     ParseFunc
	Extractor distill.Extractor
	Converter distill.Converter

	Cache   distill.ResultCache
	Plugins []distill.SitePlugin

	Scorer    *score.Scorer
	Filter    *boilerplate.Engine
	Validator *quality.Validator

	Recovery *Registry
	Diag     *DiagnosticLog
}

// Plugin shortcut thresholds: a site plugin only short-circuits the
// chain when it reports at least this score and this much visible
// text. Markup bytes do not count; a tag-heavy fragment with little
// text stays on the standard chain.
const (
	pluginMinScore    = 60
	pluginMinTextRune = 100
)

// Process runs the extraction pipeline for one captured document. It
// never returns an error: faults are caught, classified, and folded
// into the result. Success is false only when the input never started
// a run or recovery was exhausted.
func (p *Pipeline) Process(ctx context.Context, input distill.Input, cfg distill.Config) (result *distill.ProcessingResult) {
	cfg = normalize(cfg)
	pctx := &distill.Context{
		RunID:     uuid.NewString(),
		Stage:     distill.StageInit,
		Input:     input,
		Config:    cfg,
		StartedAt: time.Now(),
	}
	stats := distill.Stats{StageDurations: make(map[distill.Stage]time.Duration)}

	defer func() {
		if r := recover(); r != nil {
			result = p.failed(pctx, stats, distill.Errorf(distill.EINTERNAL, "pipeline fault: %v", r))
		}
	}()

	if err := input.Validate(); err != nil {
		return p.failed(pctx, stats, err)
	}

	fingerprint := Fingerprint(input.HTML, cfg)
	if p.Cache != nil && !cfg.DisableCache {
		if cached, err := p.Cache.Get(ctx, fingerprint); err == nil && cached != nil {
			p.diagf(pctx, "cache hit")
			return cached
		}
	}

	// Oversized input is truncated once, before any stage runs.
	if len(input.HTML) > cfg.MaxContentLength {
		input.HTML = input.HTML[:cfg.MaxContentLength]
		pctx.Input = input
		pctx.Warnf("capture truncated to %d bytes", cfg.MaxContentLength)
	}

	// Init: build the working tree and run the SAFE pass.
	var tree distill.Node
	candidateHTML := ""
	err := p.guard(ctx, pctx, &stats, distill.StageInit, func() error {
		parsed, err := p.Parse(input.HTML)
		if err != nil {
			return err
		}
		tree = p.filter().Clean(parsed, cfg, false)
		pctx.Tree = tree
		return nil
	})
	if err != nil {
		html, ok := p.rescue(ctx, pctx, &stats, err)
		if !ok {
			return p.failed(pctx, stats, distill.Errorf(distill.EEXHAUSTED, "recovery exhausted after %s fault: %v", pctx.Stage, err))
		}
		candidateHTML = html
	}

	var candidate distill.Node
	titleFromExtraction := ""
	gateScore := 0

	// Stage 0: a site plugin may short-circuit straight to conversion.
	if candidateHTML == "" {
		if plugin := p.pluginFor(input.SourceURL); plugin != nil {
			var pr *distill.PluginResult
			textLen := 0
			perr := p.guard(ctx, pctx, &stats, distill.StageSitePlugin, func() error {
				res, err := plugin.Extract(input)
				if err != nil {
					return err
				}
				pr = res
				if pr != nil {
					textLen = p.textLength(pr.ContentHTML)
				}
				return nil
			})
			switch {
			case perr != nil:
				// The standard chain is a faulted plugin's natural
				// fallback; recovery is not consulted.
				pctx.Warnf("site plugin %s failed: %v", plugin.Name(), perr)
			case pr != nil && pr.Score >= pluginMinScore && textLen >= pluginMinTextRune:
				p.diagf(pctx, "plugin %s short-circuit, score %d", plugin.Name(), pr.Score)
				candidateHTML = pr.ContentHTML
				titleFromExtraction = pr.Title
				gateScore = pr.Score
			case pr != nil:
				pctx.Warnf("site plugin %s result too weak, score %d, text %d", plugin.Name(), pr.Score, textLen)
			}
		}
	}

	if candidateHTML == "" {
		// The bypass decision is made exactly once: a branch, never a
		// retry.
		bypass := false
		gerr := p.guard(ctx, pctx, &stats, distill.StageSemantic, func() error {
			bypass = p.filter().ShouldBypassReadability(tree)
			if bypass {
				return nil
			}

			// Semantic query against the cleaned tree.
			sem := semanticCandidate(tree)
			if gate := p.validator().GateA(sem); gate.Passed {
				candidate = sem
				gateScore = gate.Score
			} else {
				stats.FallbacksUsed = append(stats.FallbacksUsed, string(distill.StageSemantic))
				pctx.Warnf("semantic candidate rejected: %s", strings.Join(gate.FailureReasons, "; "))
			}
			return nil
		})
		if gerr != nil {
			html, ok := p.rescue(ctx, pctx, &stats, gerr)
			if !ok {
				return p.failed(pctx, stats, distill.Errorf(distill.EEXHAUSTED, "recovery exhausted after %s fault: %v", pctx.Stage, gerr))
			}
			candidateHTML = html
		}

		if !bypass && candidateHTML == "" && candidate == nil {
			var exNode distill.Node
			rerr := p.guard(ctx, pctx, &stats, distill.StageReadability, func() error {
				res, err := p.Extractor.Extract(input.HTML)
				if err != nil {
					// Transient faults surface for retry; an engine
					// that simply found nothing degrades through
					// Gate B instead of invoking recovery.
					if IsTransient(err) {
						return err
					}
					pctx.Warnf("extractor failed: %v", err)
					return nil
				}
				if res == nil || strings.TrimSpace(res.Content) == "" {
					return nil // Gate B fails absent output
				}
				titleFromExtraction = res.Title
				parsed, perr := p.Parse(res.Content)
				if perr != nil {
					return nil // unparseable output fails Gate B
				}
				exNode = parsed
				return nil
			})
			if rerr != nil {
				html, ok := p.rescue(ctx, pctx, &stats, rerr)
				if !ok {
					return p.failed(pctx, stats, distill.Errorf(distill.EEXHAUSTED, "recovery exhausted after %s fault: %v", pctx.Stage, rerr))
				}
				candidateHTML = html
			} else if gate := p.validator().GateB(exNode); gate.Passed {
				candidate = exNode
				gateScore = gate.Score
			} else {
				stats.FallbacksUsed = append(stats.FallbacksUsed, string(distill.StageReadability))
				pctx.Warnf("extractor output rejected: %s", strings.Join(gate.FailureReasons, "; "))
			}
		} else if bypass {
			p.diagf(pctx, "general extractor bypassed: preservation signals at document scope")
		}

		if candidate == nil && candidateHTML == "" {
			// Last resort: heuristic scoring and pruning. Gate C never
			// blocks.
			serr := p.guard(ctx, pctx, &stats, distill.StageScorePrune, func() error {
				// Orphan cleanup runs only on the bypass branch,
				// strictly after SAFE.
				if bypass && cfg.RuleSetEnabled(distill.RuleSetAggressive) {
					tree = p.filter().Apply(tree, boilerplate.AggressiveRules())
					pctx.Tree = tree
				}

				scorer := *p.scorer()
				scorer.OnWarning = func(msg string) { pctx.Warnf("%s", msg) }
				scorer.Preserve = p.filter().ShouldPreserve

				best := scorer.FindBestCandidate(tree)
				if best == nil || best.Node == nil {
					candidate = tree
				} else {
					candidate = scorer.PruneNode(best.Node)
				}
				gateScore = p.validator().GateC(candidate).Score
				return nil
			})
			if serr != nil {
				html, ok := p.rescue(ctx, pctx, &stats, serr)
				if !ok {
					return p.failed(pctx, stats, distill.Errorf(distill.EEXHAUSTED, "recovery exhausted after %s fault: %v", pctx.Stage, serr))
				}
				candidateHTML = html
			}
		}
	}

	if candidateHTML == "" && candidate != nil {
		candidateHTML = candidate.HTML()
	}

	// Convert the winning candidate to markdown.
	markdown := ""
	err = p.guard(ctx, pctx, &stats, distill.StageConvert, func() error {
		md, cerr := p.Converter.Convert(candidateHTML)
		if cerr != nil {
			return cerr
		}
		markdown = md
		return nil
	})
	if err != nil {
		// Recovered output for conversion faults is final text.
		text, ok := p.rescue(ctx, pctx, &stats, err)
		if !ok {
			return p.failed(pctx, stats, distill.Errorf(distill.EEXHAUSTED, "recovery exhausted after %s fault: %v", pctx.Stage, err))
		}
		markdown = text
	}

	_ = p.guard(ctx, pctx, &stats, distill.StagePostProcess, func() error {
		markdown = postProcess(markdown)
		return nil
	})

	_ = p.guard(ctx, pctx, &stats, distill.StageQuality, func() error {
		// Metrics are recomputed on the final candidate, never reused
		// from a gate.
		if candidate != nil {
			v := p.validator()
			gateScore = v.Score(v.Metrics(candidate))
		}
		return nil
	})
	stats.QualityScore = gateScore

	result = &distill.ProcessingResult{
		Success:  true,
		Content:  markdown,
		Title:    firstNonEmpty(input.Title, titleFromExtraction, headingTitle(candidate)),
		Stats:    stats,
		Warnings: pctx.Warnings,
		Errors:   pctx.Errors,
	}

	if p.Cache != nil && !cfg.DisableCache {
		if err := p.Cache.Put(ctx, fingerprint, result); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("cache store failed: %v", err))
		}
	}

	p.diagf(pctx, "run complete, quality %d", stats.QualityScore)
	return result
}

// guard runs one stage with panic recovery and bounded transient
// retries, recording its duration.
func (p *Pipeline) guard(ctx context.Context, pctx *distill.Context, stats *distill.Stats, stage distill.Stage, fn func() error) error {
	pctx.Stage = stage
	start := time.Now()
	defer func() {
		stats.StageDurations[stage] += time.Since(start)
	}()

	attempt := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = distill.Errorf(distill.EINTERNAL, "stage %s panicked: %v", stage, r)
			}
		}()
		return fn()
	}

	err := attempt()
	for retries := 0; err != nil && retries < pctx.Config.MaxRetries && IsTransient(err); retries++ {
		pctx.Retries++
		pctx.Warnf("retrying %s after transient fault: %v", stage, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pctx.Config.RetryDelay):
		}
		err = attempt()
	}
	return err
}

// rescue hands a stage fault to the recovery registry. On success the
// returned content stands in for the faulted stage's output and the
// winning strategy is recorded in FallbacksUsed.
func (p *Pipeline) rescue(ctx context.Context, pctx *distill.Context, stats *distill.Stats, fault error) (string, bool) {
	pctx.Fault = fault
	p.diagf(pctx, "stage %s fault: %v", pctx.Stage, fault)

	if p.Recovery == nil {
		pctx.Errors = append(pctx.Errors, fault.Error())
		return "", false
	}

	fb := p.Recovery.Recover(ctx, pctx, pctx.Config.StrategyTimeout)
	pctx.Warnings = append(pctx.Warnings, fb.Warnings...)
	pctx.Errors = append(pctx.Errors, fb.Errors...)
	if !fb.Success {
		pctx.Errors = append(pctx.Errors, fault.Error())
		return "", false
	}

	stats.FallbacksUsed = append(stats.FallbacksUsed, fb.StrategyName)
	pctx.Warnf("stage %s recovered via %s", pctx.Stage, fb.StrategyName)
	return fb.Content, true
}

func (p *Pipeline) failed(pctx *distill.Context, stats distill.Stats, fault error) *distill.ProcessingResult {
	p.diagf(pctx, "run failed: %v", fault)
	return &distill.ProcessingResult{
		Success:  false,
		Stats:    stats,
		Warnings: pctx.Warnings,
		Errors:   append(pctx.Errors, fault.Error()),
	}
}

func (p *Pipeline) pluginFor(sourceURL string) distill.SitePlugin {
	if sourceURL == "" {
		return nil
	}
	for _, plugin := range p.Plugins {
		if plugin.CanHandle(sourceURL) {
			return plugin
		}
	}
	return nil
}

func (p *Pipeline) diagf(pctx *distill.Context, format string, args ...any) {
	if p.Diag == nil {
		return
	}
	p.Diag.Append(DiagnosticEntry{
		Time:    time.Now(),
		RunID:   pctx.RunID,
		Stage:   pctx.Stage,
		Message: fmt.Sprintf(format, args...),
	})
}

var (
	defaultScorer    = score.NewScorer()
	defaultFilter    = boilerplate.NewEngine()
	defaultValidator = quality.NewValidator()
)

func (p *Pipeline) scorer() *score.Scorer {
	if p.Scorer != nil {
		return p.Scorer
	}
	return defaultScorer
}

func (p *Pipeline) filter() *boilerplate.Engine {
	if p.Filter != nil {
		return p.Filter
	}
	return defaultFilter
}

func (p *Pipeline) validator() *quality.Validator {
	if p.Validator != nil {
		return p.Validator
	}
	return defaultValidator
}

// textLength measures the visible text of a markup fragment in runes.
// Unparseable fragments measure zero.
func (p *Pipeline) textLength(html string) int {
	n, err := p.Parse(html)
	if err != nil || n == nil {
		return 0
	}
	return utf8.RuneCountInString(n.Text())
}

// semanticCandidate picks the most substantial semantic container.
func semanticCandidate(tree distill.Node) distill.Node {
	var best distill.Node
	bestLen := -1
	for _, n := range distill.FindAll(tree, `main, article, [role="main"], [itemprop~="articleBody"]`) {
		if l := len(n.Text()); l > bestLen {
			best, bestLen = n, l
		}
	}
	return best
}

func headingTitle(candidate distill.Node) string {
	if candidate == nil {
		return ""
	}
	if h := distill.First(candidate, "h1, h2, h3"); h != nil {
		return strings.TrimSpace(h.Text())
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// postProcess normalizes converted output: trailing space stripped per
// line, blank runs collapsed, single trailing newline.
func postProcess(markdown string) string {
	lines := strings.Split(markdown, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	out := strings.Join(lines, "\n")
	out = blankRunRe.ReplaceAllString(out, "\n\n")
	out = strings.TrimSpace(out)
	if out == "" {
		return ""
	}
	return out + "\n"
}

// normalize fills zero config fields with defaults.
func normalize(cfg distill.Config) distill.Config {
	def := distill.DefaultConfig()
	if cfg.MaxContentLength <= 0 {
		cfg.MaxContentLength = def.MaxContentLength
	}
	if cfg.StrategyTimeout <= 0 {
		cfg.StrategyTimeout = def.StrategyTimeout
	}
	// Zero means unset for retries; a negative value is the explicit
	// way to ask for none.
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = def.MaxRetries
	} else if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = def.RetryDelay
	} else if cfg.RetryDelay < 0 {
		cfg.RetryDelay = 0
	}
	if cfg.RuleSets == nil {
		cfg.RuleSets = def.RuleSets
	}
	return cfg
}
