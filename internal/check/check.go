package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/johns/ruleforge/internal/cachedb"
	"github.com/johns/ruleforge/internal/cachefile"
	"github.com/johns/ruleforge/internal/config"
	"github.com/johns/ruleforge/internal/policy"
)

// Status represents the outcome of a single check.
type Status int

const (
	Pass Status = iota
	Warn
	Fail
)

func (s Status) String() string {
	switch s {
	case Pass:
		return "pass"
	case Warn:
		return "warn"
	case Fail:
		return "FAIL"
	default:
		return "unknown"
	}
}

// Result holds the outcome of a single check.
type Result struct {
	Name   string
	Status Status
	Detail string
}

// Report aggregates all check results.
type Report struct {
	Results []Result
}

// HasFailures returns true if any result has Fail status.
func (r Report) HasFailures() bool {
	for _, res := range r.Results {
		if res.Status == Fail {
			return true
		}
	}
	return false
}

// Format returns the human-readable report string.
func (r Report) Format() string {
	if len(r.Results) == 0 {
		return "rf check\n\n  no checks ran\n"
	}

	// Find max name length for alignment.
	maxName := 0
	for _, res := range r.Results {
		if len(res.Name) > maxName {
			maxName = len(res.Name)
		}
	}

	var b strings.Builder
	b.WriteString("rf check\n\n")

	var passed, warnings, failures int
	for _, res := range r.Results {
		switch res.Status {
		case Pass:
			passed++
		case Warn:
			warnings++
		case Fail:
			failures++
		}
		fmt.Fprintf(&b, "  %-4s  %-*s  %s\n", res.Status, maxName, res.Name, res.Detail)
	}

	fmt.Fprintf(&b, "\n%d passed, %d warning, %d failure\n", passed, warnings, failures)
	return b.String()
}

// CheckConfig reports the resolved config path. Always passes — broken TOML
// is caught by config.Load before we get here.
func CheckConfig() Result {
	cfgPath := filepath.Join(config.ConfigDir(), "config.toml")
	return Result{
		Name:   "config",
		Status: Pass,
		Detail: config.CompressHome(cfgPath),
	}
}

// CheckCacheDir checks whether the pattern cache directory exists and
// reports how many cache files it holds.
func CheckCacheDir(dir string) Result {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return Result{Name: "cache-dir", Status: Warn, Detail: config.CompressHome(dir) + " not created yet (run rf infer)"}
	}
	entries, err := cachefile.List(dir)
	if err != nil {
		return Result{Name: "cache-dir", Status: Fail, Detail: err.Error()}
	}
	return Result{Name: "cache-dir", Status: Pass, Detail: fmt.Sprintf("%s (%d caches)", config.CompressHome(dir), len(entries))}
}

// CheckCaches loads every cache file in the directory and reports one
// result per file: readable caches pass, stale schemas and corrupt
// files fail.
func CheckCaches(dir string) []Result {
	entries, err := cachefile.List(dir)
	if err != nil || len(entries) == 0 {
		return nil
	}

	var results []Result
	for _, e := range entries {
		name := "cache:" + shortFingerprint(e.Fingerprint)
		c, err := cachefile.Load(e.Path)
		switch {
		case errors.Is(err, cachefile.ErrSchemaVersion):
			results = append(results, Result{Name: name, Status: Fail, Detail: "schema version mismatch (re-run rf infer)"})
		case err != nil:
			results = append(results, Result{Name: name, Status: Fail, Detail: "unreadable: " + err.Error()})
		default:
			results = append(results, Result{Name: name, Status: Pass, Detail: fmt.Sprintf("%d passwords, schema %s", c.CorpusSize, c.SchemaVersion)})
		}
	}
	return results
}

// CheckCatalog opens the sqlite catalog and counts its entries.
// A missing catalog is fine; an unopenable one is not.
func CheckCatalog(path string) Result {
	if _, err := os.Stat(path); err != nil {
		return Result{Name: "catalog", Status: Warn, Detail: config.CompressHome(path) + " not created yet"}
	}
	db, err := cachedb.Open(path)
	if err != nil {
		return Result{Name: "catalog", Status: Fail, Detail: err.Error()}
	}
	defer db.Close()

	infos, err := db.List(context.Background())
	if err != nil {
		return Result{Name: "catalog", Status: Fail, Detail: err.Error()}
	}
	return Result{Name: "catalog", Status: Pass, Detail: fmt.Sprintf("%s (%d entries)", config.CompressHome(path), len(infos))}
}

// CheckPolicy compiles the configured policy's blacklist patterns.
func CheckPolicy(p policy.Policy) Result {
	if err := p.Compile(); err != nil {
		return Result{Name: "policy", Status: Fail, Detail: err.Error()}
	}
	return Result{Name: "policy", Status: Pass, Detail: p.String()}
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}

// Run executes all checks against the given config and returns a report.
func Run(cfg config.Config) Report {
	var results []Result

	results = append(results, CheckConfig())
	results = append(results, CheckCacheDir(cfg.CacheDir))
	results = append(results, CheckCaches(cfg.CacheDir)...)
	results = append(results, CheckCatalog(cfg.CatalogPath()))
	results = append(results, CheckPolicy(cfg.Policy))

	return Report{Results: results}
}
