package infer

// InferAgainst tries every dictionary word as the base for observed
// and returns the best record. Preference order: match kind (exact,
// then prefix, then substring, then fuzzy), then fewer operations,
// then the longer base word. Ties after that keep the earlier
// dictionary entry, so results are deterministic for a fixed
// dictionary order.
func InferAgainst(dictionary []string, observed string, opts Options) Record {
	opts = opts.withDefaults()
	best := Record{Observed: observed, Kind: MatchNone}
	sawTooComplex := false

	for _, word := range dictionary {
		rec := Infer(word, observed, opts)
		if rec.Kind == MatchTooComplex {
			sawTooComplex = true
		}
		if rec.Rule == nil {
			continue
		}
		if best.Rule == nil || better(rec, best) {
			best = rec
		}
	}

	if best.Rule == nil && sawTooComplex {
		best.Kind = MatchTooComplex
	}
	return best
}

// kindRank orders match kinds by preference; lower is better.
func kindRank(k MatchKind) int {
	switch k {
	case MatchExact:
		return 0
	case MatchPrefix:
		return 1
	case MatchSubstring:
		return 2
	case MatchFuzzy:
		return 3
	}
	return 4
}

func better(a, b Record) bool {
	if ra, rb := kindRank(a.Kind), kindRank(b.Kind); ra != rb {
		return ra < rb
	}
	if a.OperationCount != b.OperationCount {
		return a.OperationCount < b.OperationCount
	}
	return len(a.Base) > len(b.Base)
}
