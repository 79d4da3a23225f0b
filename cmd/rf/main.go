package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/johns/ruleforge/internal/cachefile"
	"github.com/johns/ruleforge/internal/check"
	"github.com/johns/ruleforge/internal/config"
	"github.com/johns/ruleforge/internal/engine"
	"github.com/johns/ruleforge/internal/mask"
	"github.com/johns/ruleforge/internal/patterns"
	"github.com/johns/ruleforge/internal/report"
	"github.com/johns/ruleforge/internal/rule"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("load config: %v", err)
	}
	eng := engine.New(cfg)

	switch os.Args[1] {
	case "infer":
		if len(os.Args) < 4 {
			fatal("usage: rf infer <dictionary> <corpus>")
		}
		runInfer(eng, cfg, os.Args[2], os.Args[3])

	case "mask":
		if len(os.Args) < 3 {
			fatal("usage: rf mask <pattern> [--limit n]")
		}
		limit := intFlag(os.Args[3:], "--limit", 10000)
		runMask(eng, cfg, os.Args[2], limit)

	case "optimize":
		if len(os.Args) < 3 {
			fatal("usage: rf optimize <rulefile>")
		}
		runOptimize(eng, os.Args[2])

	case "merge":
		if len(os.Args) < 4 {
			fatal("usage: rf merge <cache> <cache>...")
		}
		runMerge(eng, cfg, os.Args[2:])

	case "report":
		if len(os.Args) < 3 {
			fatal("usage: rf report <cache>")
		}
		cache, err := cachefile.Load(os.Args[2])
		if err != nil {
			fatal("%v", err)
		}
		fmt.Print(report.Format(report.Compute(cache)))

	case "check":
		rep := check.Run(cfg)
		fmt.Print(rep.Format())
		if rep.HasFailures() {
			os.Exit(1)
		}

	case "version":
		fmt.Printf("rf v%s (ruleforge)\n", version)

	case "help", "--help", "-h":
		usage()

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func runInfer(eng *engine.Engine, cfg config.Config, dictPath, corpusPath string) {
	dict, err := readLines(dictPath)
	if err != nil {
		fatal("read dictionary: %v", err)
	}
	corpus, err := readLines(corpusPath)
	if err != nil {
		fatal("read corpus: %v", err)
	}

	records, cache := eng.Analyze(corpus, dict)
	for _, rec := range records {
		enc := "-"
		if rec.Rule != nil {
			enc = rule.Encode(rec.Rule)
		}
		fmt.Printf("%s\t%s\t%s\t%s\n", rec.Observed, rec.Base, enc, rec.Kind)
	}

	path, err := cachefile.Save(cfg.CacheDir, cache)
	if err != nil {
		fatal("save cache: %v", err)
	}
	fmt.Fprintf(os.Stderr, "cache: %s\n", path)
}

func runMask(eng *engine.Engine, cfg config.Config, pattern string, limit int) {
	m, err := mask.Parse(pattern, cfg.CustomClasses())
	if err != nil {
		fatal("%v", err)
	}
	size := mask.EstimateSize(m)
	if !size.IsInt64() || size.Int64() > int64(limit) {
		fmt.Fprintf(os.Stderr, "keyspace %s, printing first %d (raise with --limit)\n", size, limit)
	}
	candidates, err := eng.GenerateMask(pattern, limit)
	if err != nil {
		fatal("%v", err)
	}
	for _, c := range candidates {
		fmt.Println(c)
	}
}

func runOptimize(eng *engine.Engine, rulePath string) {
	text, err := os.ReadFile(rulePath)
	if err != nil {
		fatal("read rules: %v", err)
	}
	rs, err := rule.ParseRuleSet(string(text))
	if err != nil {
		fmt.Fprintf(os.Stderr, "rf: skipping bad lines: %v\n", err)
	}
	out, stats := eng.Optimize(rs, nil)
	os.Stdout.Write(out.ExportHashcat())
	fmt.Fprintf(os.Stderr, "%d rules -> %d (%d removed, %d redundant groups)\n",
		stats.Original, stats.Optimized, stats.Removed, stats.RedundantGroups)
}

func runMerge(eng *engine.Engine, cfg config.Config, paths []string) {
	caches := make([]patterns.Cache, 0, len(paths))
	for _, p := range paths {
		c, err := cachefile.Load(p)
		if err != nil {
			fatal("%v", err)
		}
		caches = append(caches, c)
	}
	merged := eng.MergeCaches(caches)
	path, err := cachefile.Save(cfg.CacheDir, merged)
	if err != nil {
		fatal("save merged cache: %v", err)
	}
	fmt.Printf("merged %d caches (%d passwords) -> %s\n", len(caches), merged.CorpusSize, path)
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func intFlag(args []string, flag string, def int) int {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			if n, err := strconv.Atoi(args[i+1]); err == nil {
				return n
			}
		}
	}
	return def
}

func usage() {
	fmt.Fprintf(os.Stderr, `rf v%s — password transformation rule engine

Usage:
  rf infer <dictionary> <corpus>   Infer rules and learn patterns
  rf mask <pattern> [--limit n]    Enumerate a mask keyspace
  rf optimize <rulefile>           Remove redundant rules
  rf merge <cache> <cache>...      Merge pattern caches
  rf report <cache>                Summarize a pattern cache
  rf check                         Verify configuration and caches
  rf version                       Print version
  rf help                          Show this help

Configuration: ~/.config/ruleforge/config.toml
`, version)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "rf: "+format+"\n", args...)
	os.Exit(1)
}
