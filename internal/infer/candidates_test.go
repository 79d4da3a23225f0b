package infer

import (
	"testing"

	"github.com/johns/ruleforge/internal/rule"
)

func TestInferAgainst_PrefersExactOverPrefix(t *testing.T) {
	dict := []string{"pass", "password"}
	rec := InferAgainst(dict, "p@ssw0rd", DefaultOptions())
	if rec.Base != "password" {
		t.Errorf("base = %q, want password", rec.Base)
	}
	if rec.Kind != MatchExact {
		t.Errorf("kind = %v, want exact", rec.Kind)
	}
}

func TestInferAgainst_PrefersFewerOperations(t *testing.T) {
	// Both words match as a prefix; "passwords1" needs one append,
	// "password" needs three.
	dict := []string{"password", "passwords1"}
	rec := InferAgainst(dict, "passwords12", DefaultOptions())
	if rec.Base != "passwords1" {
		t.Errorf("base = %q, want passwords1 (fewer ops)", rec.Base)
	}
}

func TestBetter_TieBreaks(t *testing.T) {
	tests := []struct {
		name string
		a, b Record
		want bool
	}{
		{"kind beats ops", Record{Kind: MatchExact, OperationCount: 5}, Record{Kind: MatchPrefix, OperationCount: 1}, true},
		{"prefix over substring", Record{Kind: MatchSubstring}, Record{Kind: MatchPrefix}, false},
		{"fewer ops", Record{Kind: MatchFuzzy, OperationCount: 2}, Record{Kind: MatchFuzzy, OperationCount: 4}, true},
		{"longer base on full tie", Record{Kind: MatchExact, Base: "password"}, Record{Kind: MatchExact, Base: "pass"}, true},
		{"equal keeps incumbent", Record{Kind: MatchExact, Base: "pass"}, Record{Kind: MatchExact, Base: "word"}, false},
	}
	for _, tc := range tests {
		if got := better(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: better = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestInferAgainst_NoCandidate(t *testing.T) {
	rec := InferAgainst([]string{"dragon", "monkey"}, "zzzzzz", DefaultOptions())
	if rec.Rule != nil {
		t.Errorf("rule = %v, want nil", rec.Rule)
	}
	if rec.Kind != MatchNone {
		t.Errorf("kind = %v, want no-match", rec.Kind)
	}
}

func TestInferAgainst_EmptyDictionary(t *testing.T) {
	rec := InferAgainst(nil, "password", DefaultOptions())
	if rec.Rule != nil || rec.Kind != MatchNone {
		t.Errorf("got %+v, want empty no-match", rec)
	}
}

func TestInferBatch_OrderPreserved(t *testing.T) {
	pairs := []Pair{
		{"password", "Password123"},
		{"admin", "ADMIN!"},
		{"xyz", "completely-unrelated-string-of-length-40"},
		{"dragon", "dr@gon"},
	}
	recs := InferBatch(pairs, DefaultOptions(), 3)
	if len(recs) != len(pairs) {
		t.Fatalf("count = %d, want %d", len(recs), len(pairs))
	}
	for i, rec := range recs {
		if rec.Observed != pairs[i].Observed {
			t.Errorf("record %d out of order: %q", i, rec.Observed)
		}
	}
	if got := rule.Encode(recs[0].Rule); got != "c$1$2$3" {
		t.Errorf("record 0 rule = %q", got)
	}
	if recs[2].Kind != MatchTooComplex {
		t.Errorf("record 2 kind = %v, want too-complex", recs[2].Kind)
	}
}

func TestInferBatch_Empty(t *testing.T) {
	if recs := InferBatch(nil, DefaultOptions(), 4); len(recs) != 0 {
		t.Errorf("count = %d, want 0", len(recs))
	}
}

func TestAnalyze_OneRecordPerPassword(t *testing.T) {
	corpus := []string{"Password1", "dr@gon", "no-base-here-at-all"}
	dict := []string{"password", "dragon"}
	recs := Analyze(corpus, dict, DefaultOptions(), 2)
	if len(recs) != 3 {
		t.Fatalf("count = %d, want 3", len(recs))
	}
	if recs[0].Base != "password" || recs[1].Base != "dragon" {
		t.Errorf("bases = %q, %q", recs[0].Base, recs[1].Base)
	}
	if recs[2].Rule != nil {
		t.Errorf("record 2 rule = %v, want nil", recs[2].Rule)
	}
}
