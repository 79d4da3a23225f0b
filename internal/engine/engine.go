// Package engine is the stable facade over inference, mask
// generation, pattern learning, and rule optimization. External
// surfaces (CLI, services) talk to an Engine; the internal packages
// stay free to change shape underneath it.
package engine

import (
	"runtime"

	"github.com/johns/ruleforge/internal/config"
	"github.com/johns/ruleforge/internal/gen"
	"github.com/johns/ruleforge/internal/infer"
	"github.com/johns/ruleforge/internal/mask"
	"github.com/johns/ruleforge/internal/optimize"
	"github.com/johns/ruleforge/internal/patterns"
	"github.com/johns/ruleforge/internal/rule"
)

// Engine binds the configured thresholds, worker counts, and charset
// overrides to the core operations.
type Engine struct {
	cfg  config.Config
	opts infer.Options
}

// New builds an engine from config.
func New(cfg config.Config) *Engine {
	return &Engine{cfg: cfg, opts: cfg.InferOptions()}
}

func (e *Engine) workers() int {
	if e.cfg.Workers > 0 {
		return e.cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// InferBatch infers a rule for every base/observed pair, in input
// order.
func (e *Engine) InferBatch(pairs []infer.Pair) []infer.Record {
	return infer.InferBatch(pairs, e.opts, e.workers())
}

// Analyze runs a corpus against a dictionary and learns its patterns,
// returning the per-password records and the filled cache. The cache
// is fingerprinted by corpus content.
func (e *Engine) Analyze(corpus, dictionary []string) ([]infer.Record, patterns.Cache) {
	records := infer.Analyze(corpus, dictionary, e.opts, e.workers())
	cache := patterns.New(patterns.Fingerprint(corpus))
	for _, rec := range records {
		cache.Record(rec)
		if rec.Rule == nil {
			cache.Harvest(rec.Observed)
		}
	}
	return records, cache
}

// GenerateMask enumerates candidates for a mask pattern, applying the
// configured custom character classes. limit < 0 means no limit; the
// caller owns checking EstimateSize before asking for everything.
func (e *Engine) GenerateMask(pattern string, limit int) ([]string, error) {
	m, err := mask.Parse(pattern, e.cfg.CustomClasses())
	if err != nil {
		return nil, err
	}
	return mask.Generate(m, limit), nil
}

// MergeCaches folds pattern caches into one.
func (e *Engine) MergeCaches(caches []patterns.Cache) patterns.Cache {
	return patterns.MergeAll(caches)
}

// Optimize prunes sample-equivalent rules from the set.
func (e *Engine) Optimize(rs *rule.RuleSet, sample []string) (*rule.RuleSet, optimize.Stats) {
	return optimize.Optimize(rs, sample, optimize.Options{Workers: e.workers()})
}

// ApplyRule applies a rule to one word.
func (e *Engine) ApplyRule(r rule.Rule, word string) string {
	return r.Apply(word)
}

// Candidates generates ranked password variations of base from a
// learned cache, filtered by the configured policy.
func (e *Engine) Candidates(base string, cache patterns.Cache, topN int, minConf float64) []gen.Candidate {
	cands := gen.Candidates(base, cache, topN, minConf)
	out := cands[:0]
	for _, c := range cands {
		if e.cfg.Policy.Validate(c.Word) {
			out = append(out, c)
		}
	}
	return out
}
