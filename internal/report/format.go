package report

import (
	"fmt"
	"strings"
)

// Format renders a Summary as aligned terminal output.
func Format(s Summary) string {
	var b strings.Builder

	b.WriteString("Pattern cache report\n")
	b.WriteString("\nOverview\n")
	fmt.Fprintf(&b, "  %-20s %s\n", "fingerprint", shortFingerprint(s.Fingerprint))
	fmt.Fprintf(&b, "  %-20s %d\n", "corpus size", s.CorpusSize)
	fmt.Fprintf(&b, "  %-20s %s\n", "schema", s.SchemaVersion)
	fmt.Fprintf(&b, "  %-20s %d appends / %d prepends / %d substitutions\n",
		"observations", s.TotalAppends, s.TotalPrepends, s.TotalSubstitutions)

	if len(s.MatchKinds) > 0 {
		b.WriteString("\nOutcomes\n")
		for _, kind := range []string{"exact", "prefix", "substring", "fuzzy", "too-complex", "no-match"} {
			if n := s.MatchKinds[kind]; n > 0 {
				fmt.Fprintf(&b, "  %-20s %d\n", kind, n)
			}
		}
	}

	writeCategory(&b, "Top appends", s.TopAppends)
	writeCategory(&b, "Top prepends", s.TopPrepends)
	writeCategory(&b, "Top substitutions", s.TopSubstitutions)

	if s.TotalAppends+s.TotalPrepends+s.TotalSubstitutions == 0 {
		b.WriteString("\n  No patterns learned yet.\n")
	}
	return b.String()
}

func writeCategory(b *strings.Builder, title string, stats []PatternStat) {
	if len(stats) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", title)
	for _, p := range stats {
		fmt.Fprintf(b, "  %-16q %5d (%.1f%%)\n", p.Key, p.Count, p.Percent)
	}
}

func shortFingerprint(fp string) string {
	if fp == "" {
		return "-"
	}
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
