package gen

import (
	"strings"
	"testing"

	"github.com/johns/ruleforge/internal/patterns"
	"github.com/johns/ruleforge/internal/rule"
)

func learnedCache() patterns.Cache {
	c := patterns.New("fp")
	c.CorpusSize = 100
	c.Appends["123"] = 60
	c.Appends["!"] = 30
	c.Appends["2024"] = 10
	c.Prepends["x"] = 10
	c.Prepends["9"] = 8
	c.Substitutions[patterns.SubKey('a', '@')] = 20
	return c
}

func words(cands []Candidate) map[string]float64 {
	out := make(map[string]float64, len(cands))
	for _, c := range cands {
		out[c.Word] = c.Confidence
	}
	return out
}

func TestCandidates_RankedByConfidence(t *testing.T) {
	cands := Candidates("password", learnedCache(), 20, 0.01)
	if len(cands) == 0 {
		t.Fatal("no candidates")
	}
	if cands[0].Word != "password123" {
		t.Errorf("top candidate = %q, want password123", cands[0].Word)
	}
	for i := 1; i < len(cands); i++ {
		if cands[i].Confidence > cands[i-1].Confidence {
			t.Fatalf("not sorted at %d: %+v", i, cands[i])
		}
	}

	got := words(cands)
	for _, want := range []string{"password!", "xpassword", "Password123", "p@ssword", "p@ssword123"} {
		if _, ok := got[want]; !ok {
			t.Errorf("missing candidate %q", want)
		}
	}
	if got["Password123"] >= got["password123"] {
		t.Error("capitalized variant should score below the raw append")
	}
}

func TestCandidates_MinConfidenceGate(t *testing.T) {
	cands := Candidates("password", learnedCache(), 50, 0.9)
	for _, c := range cands {
		if c.Confidence < 0.9 {
			t.Errorf("candidate %q below gate: %v", c.Word, c.Confidence)
		}
	}
}

func TestCandidates_TopNCut(t *testing.T) {
	if got := Candidates("password", learnedCache(), 3, 0); len(got) != 3 {
		t.Errorf("count = %d, want 3", len(got))
	}
	if got := Candidates("", learnedCache(), 10, 0); got != nil {
		t.Errorf("empty base produced %v", got)
	}
}

func TestCandidates_Deterministic(t *testing.T) {
	a := Candidates("admin", learnedCache(), 20, 0)
	b := Candidates("admin", learnedCache(), 20, 0)
	if len(a) != len(b) {
		t.Fatalf("counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("order differs at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestRules_ContainsExpectedShapes(t *testing.T) {
	rs := Rules(learnedCache(), 100)
	text := string(rs.ExportHashcat())

	for _, want := range []string{":", "c", "u", "l", "$1$2$3", "c$1$2$3", "^x", "sa@", "sa@$1$2$3"} {
		if !containsLine(text, want) {
			t.Errorf("missing rule %q in export", want)
		}
	}

	appendRule, err := rule.Decode("$1$2$3")
	if err != nil {
		t.Fatal(err)
	}
	if rs.Weight(appendRule) <= 0 {
		t.Error("append rule has no weight")
	}
	if rs.Weight(appendRule) <= rs.Weight(mustDecode(t, "$2$0$2$4")) {
		t.Error("frequent append should outweigh rare one")
	}
}

func TestRules_MaxCut(t *testing.T) {
	rs := Rules(learnedCache(), 6)
	if rs.Len() != 6 {
		t.Errorf("len = %d, want 6", rs.Len())
	}
	// Base presets always survive the cut.
	for _, enc := range []string{":", "c", "u", "l"} {
		if !rs.Contains(mustDecode(t, enc)) {
			t.Errorf("missing base rule %q", enc)
		}
	}
}

func TestRules_EmptyCache(t *testing.T) {
	rs := Rules(patterns.New("fp"), 10)
	if rs.Len() != 4 {
		t.Errorf("len = %d, want the 4 base presets", rs.Len())
	}
}

func mustDecode(t *testing.T, text string) rule.Rule {
	t.Helper()
	r, err := rule.Decode(text)
	if err != nil {
		t.Fatalf("Decode(%q): %v", text, err)
	}
	return r
}

func containsLine(text, line string) bool {
	for _, l := range strings.Split(text, "\n") {
		if l == line {
			return true
		}
	}
	return false
}
