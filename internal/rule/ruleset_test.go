package rule

import (
	"errors"
	"strings"
	"testing"
)

func TestRuleSet_AddDeduplicates(t *testing.T) {
	rs := NewRuleSet()
	r := Rule{Simple(KindCapitalize), Append('1')}
	if !rs.Add(r) {
		t.Fatal("first Add returned false")
	}
	if rs.Add(Rule{Simple(KindCapitalize), Append('1')}) {
		t.Error("duplicate Add returned true")
	}
	if rs.Len() != 1 {
		t.Errorf("Len = %d, want 1", rs.Len())
	}
	if !rs.Contains(r) {
		t.Error("Contains = false for added rule")
	}
}

func TestRuleSet_WeightKeepsMax(t *testing.T) {
	rs := NewRuleSet()
	r := Rule{Append('!')}
	rs.AddWeighted(r, 0.2)
	rs.AddWeighted(r, 0.5)
	rs.AddWeighted(r, 0.1)
	if got := rs.Weight(r); got != 0.5 {
		t.Errorf("Weight = %v, want 0.5", got)
	}
}

func TestParseRuleSet(t *testing.T) {
	text := `# generated rules
:
c$1$2$3
sa@so0

u
`
	rs, err := ParseRuleSet(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rs.Len() != 4 {
		t.Errorf("Len = %d, want 4", rs.Len())
	}
}

func TestParseRuleSet_CollectsErrorsKeepsGoodLines(t *testing.T) {
	text := "c\nZZZ\n$1\ns\n"
	rs, err := ParseRuleSet(text)
	if err == nil {
		t.Fatal("want error for bad lines")
	}
	if rs.Len() != 2 {
		t.Errorf("Len = %d, want 2 surviving rules", rs.Len())
	}
	if !errors.Is(err, ErrUnknownToken) {
		t.Error("aggregate missing ErrUnknownToken")
	}
	if !errors.Is(err, ErrMissingArgument) {
		t.Error("aggregate missing ErrMissingArgument")
	}
}

func TestExportHashcat(t *testing.T) {
	rs := NewRuleSet()
	rs.Add(Rule{Simple(KindUppercase)})
	rs.Add(Rule{Simple(KindCapitalize), Append('1')})
	rs.Add(Rule{})

	out := string(rs.ExportHashcat())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != ":" {
		t.Errorf("first line = %q, want identity", lines[0])
	}
	if len(lines) != 3 {
		t.Fatalf("line count = %d, want 3", len(lines))
	}
	// Remaining lines sorted.
	if lines[1] != "c$1" || lines[2] != "u" {
		t.Errorf("sorted body = %v", lines[1:])
	}
}
