// Package gen turns a learned pattern cache back into concrete guess
// material: candidate passwords for a single base word, and weighted
// hashcat-style rule sets for external cracking tools.
package gen

import (
	"sort"

	"github.com/johns/ruleforge/internal/patterns"
	"github.com/johns/ruleforge/internal/rule"
)

// Candidate is one generated password with the confidence of the
// pattern that produced it.
type Candidate struct {
	Word       string
	Confidence float64
}

// Confidence damping for derived variants. A capitalized or
// substituted form of a learned suffix pattern is less certain than
// the suffix itself.
const (
	capitalizedFactor = 0.8
	substitutedBase   = 0.5
	substitutedFactor = 0.4
)

// Candidates generates password variations of base from the cache's
// learned patterns: raw appends and prepends, capitalize-plus-append,
// and substitution variants. Results are deduplicated (highest
// confidence wins), sorted by confidence, and cut to topN.
func Candidates(base string, c patterns.Cache, topN int, minConf float64) []Candidate {
	if base == "" || topN <= 0 {
		return nil
	}
	appends := topCounts(c.Appends, topN)
	prepends := topCounts(c.Prepends, topN)
	appendTotal := total(c.Appends)
	prependTotal := total(c.Prepends)

	best := make(map[string]float64)
	consider := func(word string, conf float64) {
		if conf < minConf {
			return
		}
		if conf > best[word] {
			best[word] = conf
		}
	}

	for _, a := range appends {
		consider(base+a.Key, frequency(a.Count, appendTotal))
	}
	for _, p := range prepends {
		consider(p.Key+base, frequency(p.Count, prependTotal))
	}

	if capped := capitalized(base); capped != base {
		for _, a := range appends {
			consider(capped+a.Key, frequency(a.Count, appendTotal)*capitalizedFactor)
		}
	}

	for key := range c.Substitutions {
		from, to, ok := patterns.SplitSubKey(key)
		if !ok {
			continue
		}
		sub := rule.Rule{rule.Substitute(from, to)}.Apply(base)
		if sub == base {
			continue
		}
		consider(sub, substitutedBase)
		for _, a := range appends {
			consider(sub+a.Key, frequency(a.Count, appendTotal)*substitutedFactor)
		}
	}

	out := make([]Candidate, 0, len(best))
	for word, conf := range best {
		out = append(out, Candidate{Word: word, Confidence: conf})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Word < out[j].Word
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

// Per-category caps on how many learned patterns feed the rule export.
const (
	ruleAppends   = 50
	rulePrepends  = 20
	ruleSubCombos = 10
)

// Rules exports the cache as a weighted rule set: the case presets,
// append and prepend rules for the learned literals, substitution
// rules, and the common capitalize-plus-append combo. Weights carry
// the pattern's relative frequency so downstream tools can sort. The
// set is cut to max rules, base presets first, then by weight.
func Rules(c patterns.Cache, max int) *rule.RuleSet {
	rs := rule.NewRuleSet()
	if max <= 0 {
		return rs
	}
	rs.Add(rule.Rule{})
	rs.Add(rule.Rule{rule.Simple(rule.KindCapitalize)})
	rs.Add(rule.Rule{rule.Simple(rule.KindUppercase)})
	rs.Add(rule.Rule{rule.Simple(rule.KindLowercase)})

	type weighted struct {
		r rule.Rule
		w float64
	}
	var ranked []weighted
	add := func(r rule.Rule, w float64) {
		ranked = append(ranked, weighted{r: r, w: w})
	}

	appendTotal := total(c.Appends)
	topApp := topCounts(c.Appends, ruleAppends)
	for _, a := range topApp {
		w := frequency(a.Count, appendTotal)
		add(appendRule(a.Key), w)
		add(append(rule.Rule{rule.Simple(rule.KindCapitalize)}, appendRule(a.Key)...), w*capitalizedFactor)
	}

	prependTotal := total(c.Prepends)
	for _, p := range topCounts(c.Prepends, rulePrepends) {
		add(prependRule(p.Key), frequency(p.Count, prependTotal))
	}

	subTotal := total(c.Substitutions)
	for _, s := range topCounts(c.Substitutions, ruleSubCombos) {
		from, to, ok := patterns.SplitSubKey(s.Key)
		if !ok {
			continue
		}
		w := frequency(s.Count, subTotal)
		add(rule.Rule{rule.Substitute(from, to)}, w)
		for _, a := range topApp {
			if len(a.Key) > 0 {
				combo := append(rule.Rule{rule.Substitute(from, to)}, appendRule(a.Key)...)
				add(combo, w*substitutedFactor)
			}
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].w > ranked[j].w })
	for _, entry := range ranked {
		if rs.Len() >= max {
			break
		}
		rs.AddWeighted(entry.r, entry.w)
	}
	return rs
}

func appendRule(suffix string) rule.Rule {
	var r rule.Rule
	for _, c := range suffix {
		r = append(r, rule.Append(c))
	}
	return r
}

// prependRule emits the prefix back-to-front: prepends stack at the
// head, so the last emitted character lands first.
func prependRule(prefix string) rule.Rule {
	rs := []rune(prefix)
	var r rule.Rule
	for i := len(rs) - 1; i >= 0; i-- {
		r = append(r, rule.Prepend(rs[i]))
	}
	return r
}

func capitalized(word string) string {
	return rule.Rule{rule.Simple(rule.KindCapitalize)}.Apply(word)
}

type counted struct {
	Key   string
	Count int
}

func topCounts(m map[string]int, n int) []counted {
	out := make([]counted, 0, len(m))
	for k, v := range m {
		out = append(out, counted{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func total(m map[string]int) int {
	sum := 0
	for _, v := range m {
		sum += v
	}
	return sum
}

func frequency(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) / float64(total)
}
