package infer

import (
	"runtime"
	"sync"
)

// Pair is one unit of inference work.
type Pair struct {
	Base     string
	Observed string
}

// InferBatch infers every pair on a worker pool. Each pair is a pure
// computation, so workers share nothing; results come back in input
// order. workers <= 0 means GOMAXPROCS.
func InferBatch(pairs []Pair, opts Options, workers int) []Record {
	opts = opts.withDefaults()
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(pairs) {
		workers = len(pairs)
	}
	results := make([]Record, len(pairs))
	if len(pairs) == 0 {
		return results
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			for i := start; i < len(pairs); i += workers {
				results[i] = Infer(pairs[i].Base, pairs[i].Observed, opts)
			}
		}(w)
	}
	wg.Wait()
	return results
}

// Analyze runs every corpus password against the dictionary, one
// record per password, in corpus order. Passwords with no usable base
// word still produce a record (Kind NoMatch or TooComplex) so corpus
// accounting stays exact.
func Analyze(corpus, dictionary []string, opts Options, workers int) []Record {
	opts = opts.withDefaults()
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(corpus) {
		workers = len(corpus)
	}
	results := make([]Record, len(corpus))
	if len(corpus) == 0 {
		return results
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			for i := start; i < len(corpus); i += workers {
				results[i] = InferAgainst(dictionary, corpus[i], opts)
			}
		}(w)
	}
	wg.Wait()
	return results
}
