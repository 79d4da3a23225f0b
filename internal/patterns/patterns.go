// Package patterns accumulates transformation statistics harvested
// from inference runs. A Cache is a plain value: merging two caches is
// pure and order-independent, so worker pools can fill private caches
// and fold them together at the end.
package patterns

import (
	"math"
	"time"
	"unicode"

	"github.com/johns/ruleforge/internal/infer"
	"github.com/johns/ruleforge/internal/rule"
)

// CurrentSchema is the cache schema version, bumped on incompatible
// layout changes. Readers accept any version with the same major.
const CurrentSchema = "1.0.0"

// Cache holds transformation frequencies for one corpus (or a merged
// family of corpora, identified by the combined fingerprint).
type Cache struct {
	// Appends and Prepends count literal suffix/prefix strings, e.g.
	// "123" observed as a whole appended run.
	Appends  map[string]int `json:"appends"`
	Prepends map[string]int `json:"prepends"`
	// Substitutions keys are the two-rune "from,to" pair, e.g. "a@".
	Substitutions map[string]int `json:"substitutions"`

	SourceFingerprint string    `json:"source_fingerprint"`
	CorpusSize        int       `json:"corpus_size"`
	CreatedAt         time.Time `json:"created_at"`
	SchemaVersion     string    `json:"schema_version"`
}

// New returns an empty cache for the corpus identified by fingerprint.
func New(fingerprint string) Cache {
	return Cache{
		Appends:           make(map[string]int),
		Prepends:          make(map[string]int),
		Substitutions:     make(map[string]int),
		SourceFingerprint: fingerprint,
		CreatedAt:         time.Now().UTC(),
		SchemaVersion:     CurrentSchema,
	}
}

// SubKey builds the substitution map key for a from/to rune pair.
func SubKey(from, to rune) string {
	return string(from) + string(to)
}

// SplitSubKey is the inverse of SubKey. ok is false for malformed keys.
func SplitSubKey(key string) (from, to rune, ok bool) {
	rs := []rune(key)
	if len(rs) != 2 {
		return 0, 0, false
	}
	return rs[0], rs[1], true
}

// Record folds one inference record into the cache. The corpus size
// advances for every processed password, matched or not, so
// frequencies stay honest about how much evidence backs them.
func (c *Cache) Record(rec infer.Record) {
	c.CorpusSize++
	if rec.Rule == nil {
		return
	}

	var suffix, prefix []rune
	for _, op := range rec.Rule {
		switch op.Kind {
		case rule.KindAppend:
			suffix = append(suffix, op.To)
		case rule.KindPrepend:
			// Prepends run front-first, so the emitted order is the
			// reverse of the final prefix.
			prefix = append([]rune{op.To}, prefix...)
		case rule.KindSubstitute:
			c.Substitutions[SubKey(op.From, op.To)]++
		}
	}
	if len(suffix) > 0 {
		c.Appends[string(suffix)]++
	}
	if len(prefix) > 0 {
		c.Prepends[string(prefix)]++
	}
}

// Harvest counts the raw non-letter prefix and suffix runs of a
// password that matched no dictionary word, so common decorations
// still inform the store. CorpusSize does not advance; Record already
// accounted for the password.
func (c *Cache) Harvest(password string) {
	rs := []rune(password)
	start, end := 0, len(rs)
	for start < end && !unicode.IsLetter(rs[start]) {
		start++
	}
	for end > start && !unicode.IsLetter(rs[end-1]) {
		end--
	}
	if start == end {
		// No letter core, nothing to anchor the decorations to.
		return
	}
	if start > 0 {
		c.Prepends[string(rs[:start])]++
	}
	if end < len(rs) {
		c.Appends[string(rs[end:])]++
	}
}

// Merge combines two caches into a new one. Counts and corpus sizes
// sum; the fingerprint combines order-independently, so Merge is
// commutative and associative and safe to use as a parallel fold.
func Merge(a, b Cache) Cache {
	out := New(combineFingerprints(a.SourceFingerprint, b.SourceFingerprint))
	out.CorpusSize = a.CorpusSize + b.CorpusSize
	out.CreatedAt = earlier(a.CreatedAt, b.CreatedAt)
	sumInto(out.Appends, a.Appends, b.Appends)
	sumInto(out.Prepends, a.Prepends, b.Prepends)
	sumInto(out.Substitutions, a.Substitutions, b.Substitutions)
	return out
}

// MergeAll folds a slice of caches into one. An empty slice yields an
// empty cache with an empty fingerprint.
func MergeAll(caches []Cache) Cache {
	if len(caches) == 0 {
		return New("")
	}
	out := caches[0]
	for _, c := range caches[1:] {
		out = Merge(out, c)
	}
	return out
}

// Intersect keeps only the patterns present in every cache, at the
// minimum observed count. Useful for isolating habits common to all
// corpora rather than quirks of one.
func Intersect(caches []Cache) Cache {
	if len(caches) == 0 {
		return New("")
	}
	out := New(caches[0].SourceFingerprint)
	out.CorpusSize = caches[0].CorpusSize
	out.CreatedAt = caches[0].CreatedAt
	for k, v := range caches[0].Appends {
		out.Appends[k] = v
	}
	for k, v := range caches[0].Prepends {
		out.Prepends[k] = v
	}
	for k, v := range caches[0].Substitutions {
		out.Substitutions[k] = v
	}
	for _, c := range caches[1:] {
		out.SourceFingerprint = combineFingerprints(out.SourceFingerprint, c.SourceFingerprint)
		if c.CorpusSize < out.CorpusSize {
			out.CorpusSize = c.CorpusSize
		}
		out.CreatedAt = earlier(out.CreatedAt, c.CreatedAt)
		minInto(out.Appends, c.Appends)
		minInto(out.Prepends, c.Prepends)
		minInto(out.Substitutions, c.Substitutions)
	}
	return out
}

// Confidence maps an observation count against the corpus size onto
// [0, 1]. The square root damps the raw frequency so rare-but-real
// patterns are not scored near zero, while staying monotone: more
// observations raise it, a bigger corpus lowers it.
func Confidence(count, corpusSize int) float64 {
	if count <= 0 || corpusSize <= 0 {
		return 0
	}
	conf := math.Sqrt(float64(count) / float64(corpusSize))
	if conf > 1 {
		return 1
	}
	return conf
}

// Similarity scores how alike two caches' habits are, as a weighted
// Jaccard index over the union of all pattern keys: sum of min counts
// over sum of max counts. Identical caches score 1, disjoint ones 0.
func Similarity(a, b Cache) float64 {
	var minSum, maxSum int
	accumulate := func(am, bm map[string]int) {
		for k, av := range am {
			bv := bm[k]
			minSum += min(av, bv)
			maxSum += max(av, bv)
		}
		for k, bv := range bm {
			if _, seen := am[k]; !seen {
				maxSum += bv
			}
		}
	}
	accumulate(a.Appends, b.Appends)
	accumulate(a.Prepends, b.Prepends)
	accumulate(a.Substitutions, b.Substitutions)
	if maxSum == 0 {
		return 1
	}
	return float64(minSum) / float64(maxSum)
}

func sumInto(dst, a, b map[string]int) {
	for k, v := range a {
		dst[k] += v
	}
	for k, v := range b {
		dst[k] += v
	}
}

func minInto(dst, other map[string]int) {
	for k, v := range dst {
		ov, present := other[k]
		if !present {
			delete(dst, k)
			continue
		}
		if ov < v {
			dst[k] = ov
		}
	}
}

func earlier(a, b time.Time) time.Time {
	if a.IsZero() {
		return b
	}
	if b.IsZero() || a.Before(b) {
		return a
	}
	return b
}
