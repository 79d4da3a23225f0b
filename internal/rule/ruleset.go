package rule

import (
	"sort"
	"strings"

	"go.uber.org/multierr"
)

// RuleSet is an ordered set of rules, unique by canonical encoding,
// each optionally carrying a frequency weight.
type RuleSet struct {
	rules   []Rule
	weights map[string]float64
	index   map[string]int
}

// NewRuleSet returns an empty rule set.
func NewRuleSet() *RuleSet {
	return &RuleSet{
		weights: make(map[string]float64),
		index:   make(map[string]int),
	}
}

// Add inserts r if its encoding is not already present. Returns true
// when the rule was added.
func (rs *RuleSet) Add(r Rule) bool {
	return rs.AddWeighted(r, 0)
}

// AddWeighted inserts r with a frequency weight. A rule already in the
// set keeps its position; the larger weight wins.
func (rs *RuleSet) AddWeighted(r Rule, weight float64) bool {
	key := Encode(r)
	if _, ok := rs.index[key]; ok {
		if weight > rs.weights[key] {
			rs.weights[key] = weight
		}
		return false
	}
	rs.index[key] = len(rs.rules)
	rs.rules = append(rs.rules, r)
	if weight > 0 {
		rs.weights[key] = weight
	}
	return true
}

// Contains reports whether a rule with the same encoding is present.
func (rs *RuleSet) Contains(r Rule) bool {
	_, ok := rs.index[Encode(r)]
	return ok
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int { return len(rs.rules) }

// Rules returns the rules in insertion order. The slice is shared;
// callers must not mutate it.
func (rs *RuleSet) Rules() []Rule { return rs.rules }

// Weight returns the frequency weight recorded for r, zero if none.
func (rs *RuleSet) Weight(r Rule) float64 { return rs.weights[Encode(r)] }

// ParseRuleSet reads hashcat-style rule text: one rule per line, blank
// lines and '#' comments skipped. Lines that fail to decode are
// collected into the returned error (one DecodeError per bad line) but
// never abort the parse; every good line still lands in the set.
func ParseRuleSet(text string) (*RuleSet, error) {
	rs := NewRuleSet()
	var errs error
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		r, err := Decode(line)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		rs.Add(r)
	}
	return rs, errs
}

// ExportHashcat renders the set as a hashcat rule file: the identity
// rule first, then the remaining encodings sorted for stable diffs.
func (rs *RuleSet) ExportHashcat() []byte {
	encs := make([]string, 0, len(rs.rules))
	for _, r := range rs.rules {
		enc := Encode(r)
		if enc == string(tokIdentity) {
			continue
		}
		encs = append(encs, enc)
	}
	sort.Strings(encs)

	var b strings.Builder
	b.WriteByte(tokIdentity)
	b.WriteByte('\n')
	for _, enc := range encs {
		b.WriteString(enc)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
