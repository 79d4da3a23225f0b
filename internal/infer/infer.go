package infer

import (
	"strings"
	"unicode"

	"github.com/johns/ruleforge/internal/rule"
)

// MatchKind classifies how a base word was matched to an observed
// password.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchExact
	MatchPrefix
	MatchSubstring
	MatchFuzzy
	MatchTooComplex
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchPrefix:
		return "prefix"
	case MatchSubstring:
		return "substring"
	case MatchFuzzy:
		return "fuzzy"
	case MatchTooComplex:
		return "too-complex"
	}
	return "no-match"
}

// Tunable inference thresholds. Heuristics, not structural limits.
const (
	DefaultMaxOperations = 12
	DefaultMinSimilarity = 0.6
)

// Options control the inference budget and matching thresholds.
type Options struct {
	// MaxOperations caps the rule length; inference needing more
	// operations reports TooComplex with no rule.
	MaxOperations int
	// MinSimilarity gates fuzzy matches: partial reconstructions on a
	// base word less similar than this are rejected.
	MinSimilarity float64
	// Substitutions is the known leet table consulted by the
	// character layer. Nil means DefaultSubstitutions.
	Substitutions SubTable
}

// DefaultOptions returns the standard thresholds.
func DefaultOptions() Options {
	return Options{
		MaxOperations: DefaultMaxOperations,
		MinSimilarity: DefaultMinSimilarity,
		Substitutions: DefaultSubstitutions(),
	}
}

func (o Options) withDefaults() Options {
	if o.MaxOperations <= 0 {
		o.MaxOperations = DefaultMaxOperations
	}
	if o.MinSimilarity <= 0 {
		o.MinSimilarity = DefaultMinSimilarity
	}
	if o.Substitutions == nil {
		o.Substitutions = DefaultSubstitutions()
	}
	return o
}

// Record is the result of inferring how a base word became an
// observed password. A nil Rule means inference failed under the
// budget; Kind says why. When Rule is non-nil, Rule.Apply(Base)
// reproduces Observed exactly.
type Record struct {
	Base           string
	Observed       string
	Rule           rule.Rule
	OperationCount int
	Kind           MatchKind
	Similarity     float64
}

// Infer reconstructs a minimal rule transforming base into observed.
// Layers, in order: case (Uppercase / Lowercase / Capitalize /
// per-position toggles), known character substitutions, then length
// (literal appends, prepends when the base occurs inside the
// password, truncation for partial matches). Failure is a normal
// outcome, reported in Kind, never an error.
func Infer(base, observed string, opts Options) Record {
	opts = opts.withDefaults()
	rec := Record{
		Base:       base,
		Observed:   observed,
		Kind:       MatchNone,
		Similarity: Similarity(strings.ToLower(base), strings.ToLower(observed)),
	}
	if base == "" || observed == "" {
		if base == observed {
			rec.Kind = MatchExact
			rec.Rule = rule.Rule{}
		}
		return rec
	}

	br, or := []rune(base), []rune(observed)
	explained := explainedPrefix(br, or, opts.Substitutions)

	var ops rule.Rule
	var kind MatchKind
	var ok bool

	if explained == len(br) {
		ops, kind, ok = directRule(br, or, explained, opts.Substitutions)
	} else if idx := substringIndex(br, or, opts.Substitutions); idx > 0 {
		ops, kind, ok = substringRule(br, or, idx, opts.Substitutions)
	} else {
		ops, kind, ok = directRule(br, or, explained, opts.Substitutions)
	}
	if !ok {
		return rec
	}

	if len(ops) > opts.MaxOperations {
		rec.Kind = MatchTooComplex
		return rec
	}
	if kind == MatchFuzzy && rec.Similarity < opts.MinSimilarity {
		return rec
	}
	if ops.Apply(base) != observed {
		// A substitution collided with another occurrence of the same
		// character; the rule algebra cannot express this transform.
		return rec
	}

	rec.Rule = ops
	rec.OperationCount = len(ops)
	rec.Kind = kind
	return rec
}

// explainedPrefix counts leading positions where observed matches base
// up to case or a known substitution.
func explainedPrefix(br, or []rune, table SubTable) int {
	n := len(br)
	if len(or) < n {
		n = len(or)
	}
	for i := 0; i < n; i++ {
		if !foldEqual(br[i], or[i]) && !table.Allows(unicode.ToLower(br[i]), or[i]) {
			return i
		}
	}
	return n
}

// directRule explains observed as cased/substituted base, truncated if
// only a prefix of base matched, plus appended tail characters.
func directRule(br, or []rune, explained int, table SubTable) (rule.Rule, MatchKind, bool) {
	caseOps, ok := caseLayer(br, or, explained)
	if !ok {
		return nil, MatchNone, false
	}

	cased := []rune(rule.Rule(caseOps).Apply(string(br)))
	subs := subLayer(cased, br, or, explained, 0, table)

	var ops rule.Rule
	ops = append(ops, caseOps...)
	ops = append(ops, subs...)

	kind := MatchExact
	if explained < len(br) {
		drop := len(br) - explained
		if drop > 35 {
			return nil, MatchNone, false
		}
		ops = append(ops, rule.TruncateRight(drop))
		kind = MatchFuzzy
	} else if len(or) > len(br) {
		kind = MatchPrefix
	}

	for _, c := range or[explained:] {
		ops = append(ops, rule.Append(c))
	}
	return ops, kind, true
}

// substringRule explains observed as prefix + base + suffix, where the
// leet-normalized base starts at rune offset idx of observed.
func substringRule(br, or []rune, idx int, table SubTable) (rule.Rule, MatchKind, bool) {
	var ops rule.Rule

	// Substitutions first, while the word is still just the base;
	// prepended characters must not be rewritten by them.
	region := or[idx : idx+len(br)]
	ops = append(ops, subLayer(br, br, region, len(br), idx, table)...)

	// Prepends apply front-first, so emit the prefix reversed.
	for i := idx - 1; i >= 0; i-- {
		ops = append(ops, rule.Prepend(or[i]))
	}

	for _, c := range or[idx+len(br):] {
		ops = append(ops, rule.Append(c))
	}

	// Case differences are fixed last, positioned on the final string.
	for i := 0; i < len(br); i++ {
		if isLetter(br[i]) && isLetter(region[i]) && foldEqual(br[i], region[i]) && br[i] != region[i] {
			if idx+i > 35 {
				return nil, MatchNone, false
			}
			ops = append(ops, rule.ToggleAt(idx+i))
		}
	}
	return ops, MatchSubstring, true
}

// caseLayer derives the case operations turning base's case pattern
// into observed's over the explained region. Returns false when the
// pattern needs a toggle at an unencodable position.
func caseLayer(br, or []rune, explained int) (rule.Rule, bool) {
	region := or[:explained]
	baseRegion := br[:explained]

	if caseEqualRegion(baseRegion, region) {
		return nil, true
	}
	if allLetterCase(region, unicode.IsUpper) && !allLetterCase(baseRegion, unicode.IsUpper) {
		return rule.Rule{rule.Simple(rule.KindUppercase)}, true
	}
	if allLetterCase(region, unicode.IsLower) && !allLetterCase(baseRegion, unicode.IsLower) {
		return rule.Rule{rule.Simple(rule.KindLowercase)}, true
	}
	if explained > 0 && isLetter(br[0]) && unicode.IsLower(br[0]) && unicode.IsUpper(region[0]) &&
		caseEqualRegion(baseRegion[1:], region[1:]) {
		return rule.Rule{rule.Simple(rule.KindCapitalize)}, true
	}

	// Mixed case matching no preset: explicit per-position toggles.
	var ops rule.Rule
	for i := 0; i < explained; i++ {
		if isLetter(br[i]) && isLetter(region[i]) && foldEqual(br[i], region[i]) && br[i] != region[i] {
			if i > 35 {
				return nil, false
			}
			ops = append(ops, rule.ToggleAt(i))
		}
	}
	return ops, true
}

// subLayer emits one Substitute per distinct known substitution in the
// explained region. cased holds the base after case operations, so the
// substitute source matches what the rule will actually see.
func subLayer(cased, br, or []rune, explained, offset int, table SubTable) rule.Rule {
	var ops rule.Rule
	seen := make(map[[2]rune]bool)
	for i := 0; i < explained && i < len(or); i++ {
		if foldEqual(br[i], or[i]) {
			continue
		}
		if !table.Allows(unicode.ToLower(br[i]), or[i]) {
			continue
		}
		from := br[i]
		if i < len(cased) {
			from = cased[i]
		}
		pair := [2]rune{from, or[i]}
		if seen[pair] {
			continue
		}
		seen[pair] = true
		ops = append(ops, rule.Substitute(from, or[i]))
	}
	return ops
}

// substringIndex locates the leet-normalized base inside the
// leet-normalized observed password, returning the rune offset or -1.
// Offset 0 is excluded; that is the direct-prefix case.
func substringIndex(br, or []rune, table SubTable) int {
	inv := table.inverse()
	normBase := normalize(br, inv)
	normObs := normalize(or, inv)
	idx := strings.Index(normObs, normBase)
	if idx <= 0 {
		return -1
	}
	// Both normalizations are rune-for-rune, so convert the byte
	// offset back to a rune offset.
	return len([]rune(normObs[:idx]))
}

// normalize lowercases and reverses known leet substitutions.
func normalize(rs []rune, inv map[rune]rune) string {
	out := make([]rune, len(rs))
	for i, c := range rs {
		if base, ok := inv[c]; ok {
			out[i] = base
			continue
		}
		out[i] = unicode.ToLower(c)
	}
	return string(out)
}

func foldEqual(a, b rune) bool {
	return unicode.ToLower(a) == unicode.ToLower(b)
}

func isLetter(c rune) bool { return unicode.IsLetter(c) }

// allLetterCase reports whether the region contains at least one
// letter and every letter satisfies pred.
func allLetterCase(rs []rune, pred func(rune) bool) bool {
	seen := false
	for _, c := range rs {
		if !isLetter(c) {
			continue
		}
		if !pred(c) {
			return false
		}
		seen = true
	}
	return seen
}

// caseEqualRegion reports whether letter case already agrees at every
// corresponding position.
func caseEqualRegion(a, b []rune) bool {
	for i := range a {
		if isLetter(a[i]) && isLetter(b[i]) && a[i] != b[i] && foldEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
