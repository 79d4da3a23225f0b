// Package report renders human-readable summaries of learned pattern
// caches and analysis runs.
package report

import (
	"sort"

	"github.com/johns/ruleforge/internal/infer"
	"github.com/johns/ruleforge/internal/patterns"
)

// PatternStat is one pattern with its count and share of its category.
type PatternStat struct {
	Key     string
	Count   int
	Percent float64
}

// Summary holds aggregate metrics computed from a pattern cache.
type Summary struct {
	Fingerprint   string
	CorpusSize    int
	SchemaVersion string

	TotalAppends       int
	TotalPrepends      int
	TotalSubstitutions int

	TopAppends       []PatternStat
	TopPrepends      []PatternStat
	TopSubstitutions []PatternStat

	// MatchKinds breaks an analysis run down by outcome; empty when the
	// summary was computed from a cache alone.
	MatchKinds map[string]int
}

// topLimit caps each category's listing in the summary.
const topLimit = 10

// Compute builds a Summary from a cache.
func Compute(c patterns.Cache) Summary {
	s := Summary{
		Fingerprint:   c.SourceFingerprint,
		CorpusSize:    c.CorpusSize,
		SchemaVersion: c.SchemaVersion,
	}
	s.TotalAppends, s.TopAppends = rank(c.Appends)
	s.TotalPrepends, s.TopPrepends = rank(c.Prepends)
	s.TotalSubstitutions, s.TopSubstitutions = rank(c.Substitutions)
	return s
}

// ComputeRun builds a Summary from a cache plus the inference records
// that produced it, adding the per-outcome breakdown.
func ComputeRun(c patterns.Cache, records []infer.Record) Summary {
	s := Compute(c)
	s.MatchKinds = make(map[string]int)
	for _, rec := range records {
		s.MatchKinds[rec.Kind.String()]++
	}
	return s
}

// rank sorts one pattern category by count (ties by key) and computes
// each entry's share of the category total.
func rank(m map[string]int) (total int, top []PatternStat) {
	for _, v := range m {
		total += v
	}
	top = make([]PatternStat, 0, len(m))
	for k, v := range m {
		top = append(top, PatternStat{Key: k, Count: v})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Key < top[j].Key
	})
	if len(top) > topLimit {
		top = top[:topLimit]
	}
	for i := range top {
		top[i].Percent = 100 * float64(top[i].Count) / float64(total)
	}
	return total, top
}
