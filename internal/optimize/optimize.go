// Package optimize prunes functionally redundant rules from a rule
// set. Two rules are considered equivalent when they produce the same
// output multiset over a sample wordlist; equivalence is therefore
// relative to the sample, not a proof over all inputs. A diverse
// sample makes false merges unlikely in practice.
package optimize

import (
	"crypto/sha256"
	"runtime"
	"sort"
	"sync"

	"github.com/johns/ruleforge/internal/rule"
)

// Options tune the optimizer run.
type Options struct {
	// Workers sizes the evaluation pool; <= 0 means GOMAXPROCS.
	Workers int
	// Abort, when closed, stops the run between rules. The returned set
	// then holds only the rules evaluated so far.
	Abort <-chan struct{}
}

// Stats summarizes one optimizer run.
type Stats struct {
	Original        int
	Optimized       int
	Removed         int
	RedundantGroups int
}

type fingerprint [sha256.Size]byte

// Optimize returns a new set keeping one survivor per output-multiset
// equivalence class. The survivor is the rule with the fewest
// operations after normalization, then the shorter encoding, then the
// earlier position in the input set. Input order of survivors is
// preserved, so the result is deterministic.
func Optimize(rs *rule.RuleSet, sample []string, opts Options) (*rule.RuleSet, Stats) {
	if len(sample) == 0 {
		sample = SampleWords()
	}
	rules := rs.Rules()
	stats := Stats{Original: len(rules)}

	prints := evaluate(rules, sample, opts)

	// Pick the survivor of each class on a first pass, keyed by output
	// fingerprint, so the second pass can emit them in input order.
	type classEntry struct {
		idx  int
		ops  int
		enc  string
		size int
	}
	classes := make(map[fingerprint]classEntry)
	for i, r := range rules {
		if prints[i] == nil {
			break // aborted mid-run
		}
		norm := rule.Normalize(r)
		entry := classEntry{idx: i, ops: len(norm), enc: rule.Encode(r)}
		cur, seen := classes[*prints[i]]
		if !seen {
			entry.size = 1
			classes[*prints[i]] = entry
			continue
		}
		cur.size++
		if entry.ops < cur.ops || (entry.ops == cur.ops && len(entry.enc) < len(cur.enc)) {
			entry.size = cur.size
			classes[*prints[i]] = entry
			continue
		}
		classes[*prints[i]] = cur
	}

	survivors := make(map[int]bool, len(classes))
	for _, entry := range classes {
		survivors[entry.idx] = true
		if entry.size > 1 {
			stats.RedundantGroups++
		}
	}

	out := rule.NewRuleSet()
	for i, r := range rules {
		if survivors[i] {
			out.AddWeighted(r, rs.Weight(r))
		}
	}
	stats.Optimized = out.Len()
	stats.Removed = stats.Original - stats.Optimized
	return out, stats
}

// evaluate computes the output fingerprint of every rule on a worker
// pool. A nil entry means the run was aborted before that rule; abort
// leaves a prefix of completed entries per worker stripe.
func evaluate(rules []rule.Rule, sample []string, opts Options) []*fingerprint {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(rules) {
		workers = len(rules)
	}
	prints := make([]*fingerprint, len(rules))
	if len(rules) == 0 {
		return prints
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			for i := start; i < len(rules); i += workers {
				select {
				case <-opts.Abort:
					return
				default:
				}
				fp := outputFingerprint(rules[i], sample)
				prints[i] = &fp
			}
		}(w)
	}
	wg.Wait()
	return prints
}

// outputFingerprint hashes the sorted output multiset of r over the
// sample. Sorting makes the hash independent of sample order for
// equal multisets and keeps duplicates significant.
func outputFingerprint(r rule.Rule, sample []string) fingerprint {
	outputs := make([]string, len(sample))
	for i, word := range sample {
		outputs[i] = r.Apply(word)
	}
	sort.Strings(outputs)

	h := sha256.New()
	for _, out := range outputs {
		h.Write([]byte(out))
		h.Write([]byte{0})
	}
	var fp fingerprint
	h.Sum(fp[:0])
	return fp
}

// Dedupe removes exact-encoding duplicates, preserving first-seen
// order. Cheaper than Optimize when functional equivalence is not
// needed.
func Dedupe(rules []rule.Rule) []rule.Rule {
	seen := make(map[string]bool, len(rules))
	out := make([]rule.Rule, 0, len(rules))
	for _, r := range rules {
		enc := rule.Encode(r)
		if seen[enc] {
			continue
		}
		seen[enc] = true
		out = append(out, r)
	}
	return out
}
