package optimize

import (
	"sort"
	"testing"

	"github.com/johns/ruleforge/internal/rule"
)

func mustDecode(t *testing.T, text string) rule.Rule {
	t.Helper()
	r, err := rule.Decode(text)
	if err != nil {
		t.Fatalf("Decode(%q): %v", text, err)
	}
	return r
}

func setFrom(t *testing.T, encodings ...string) *rule.RuleSet {
	t.Helper()
	rs := rule.NewRuleSet()
	for _, enc := range encodings {
		rs.Add(mustDecode(t, enc))
	}
	return rs
}

func encodings(rs *rule.RuleSet) []string {
	out := make([]string, 0, rs.Len())
	for _, r := range rs.Rules() {
		out = append(out, rule.Encode(r))
	}
	return out
}

func TestOptimize_RemovesRedundantRule(t *testing.T) {
	// Substituting twice changes nothing after the first pass.
	rs := setFrom(t, "sa@", "sa@sa@", "u")
	out, stats := Optimize(rs, nil, Options{})
	if out.Len() != 2 {
		t.Fatalf("kept %v, want 2 rules", encodings(out))
	}
	if !out.Contains(mustDecode(t, "sa@")) || !out.Contains(mustDecode(t, "u")) {
		t.Errorf("kept %v", encodings(out))
	}
	if stats.Removed != 1 || stats.RedundantGroups != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestOptimize_ShorterEncodingSurvives(t *testing.T) {
	// A double toggle at one position cancels to the identity.
	rs := setFrom(t, "T0T0", ":")
	out, _ := Optimize(rs, nil, Options{})
	got := encodings(out)
	if len(got) != 1 || got[0] != ":" {
		t.Errorf("kept %v, want only :", got)
	}
}

func TestOptimize_DistinctRulesAllKept(t *testing.T) {
	rs := setFrom(t, "u", "l", "c", "$1", "^1", "r")
	out, stats := Optimize(rs, nil, Options{Workers: 3})
	if out.Len() != rs.Len() {
		t.Fatalf("kept %v", encodings(out))
	}
	if stats.Removed != 0 || stats.RedundantGroups != 0 {
		t.Errorf("stats = %+v", stats)
	}
	// Survivor order follows input order.
	want := []string{"u", "l", "c", "$1", "^1", "r"}
	got := encodings(out)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestOptimize_WeightsCarried(t *testing.T) {
	rs := rule.NewRuleSet()
	r := mustDecode(t, "$1")
	rs.AddWeighted(r, 0.75)
	out, _ := Optimize(rs, nil, Options{})
	if got := out.Weight(r); got != 0.75 {
		t.Errorf("weight = %v, want 0.75", got)
	}
}

// Every output the original set could produce on the sample is still
// producible by the optimized set.
func TestOptimize_OutputSetPreserved(t *testing.T) {
	rs := setFrom(t, "u", "c$1", "sa@", "sa@sa@", "l$2$3", "T0T0", ":")
	sample := SampleWords()
	out, _ := Optimize(rs, sample, Options{})

	produce := func(set *rule.RuleSet) []string {
		seen := make(map[string]bool)
		for _, r := range set.Rules() {
			for _, w := range sample {
				seen[r.Apply(w)] = true
			}
		}
		all := make([]string, 0, len(seen))
		for s := range seen {
			all = append(all, s)
		}
		sort.Strings(all)
		return all
	}

	before, after := produce(rs), produce(out)
	if len(before) != len(after) {
		t.Fatalf("output count %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("output mismatch at %d: %q vs %q", i, before[i], after[i])
		}
	}
}

func TestOptimize_Abort(t *testing.T) {
	abort := make(chan struct{})
	close(abort)
	rs := setFrom(t, "u", "l", "c")
	out, stats := Optimize(rs, nil, Options{Abort: abort})
	if out.Len() != 0 {
		t.Errorf("kept %v after abort", encodings(out))
	}
	if stats.Original != 3 || stats.Optimized != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestDedupe(t *testing.T) {
	rules := []rule.Rule{
		mustDecode(t, "u"),
		mustDecode(t, "$1"),
		mustDecode(t, "u"),
		mustDecode(t, "$1"),
		mustDecode(t, "l"),
	}
	out := Dedupe(rules)
	got := make([]string, len(out))
	for i, r := range out {
		got[i] = rule.Encode(r)
	}
	want := []string{"u", "$1", "l"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestSampleWords_Diverse(t *testing.T) {
	words := SampleWords()
	if len(words) < 50 {
		t.Fatalf("only %d sample words", len(words))
	}
	seen := make(map[string]bool)
	for _, w := range words {
		if seen[w] {
			t.Errorf("duplicate sample word %q", w)
		}
		seen[w] = true
	}
}
