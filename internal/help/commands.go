package help

import "strings"

// Version is the rf release version, set at build time via -ldflags.
// Defaults to "dev" when built without version injection (e.g. `go run`).
var Version = "dev"

// Flag describes a command-line flag.
type Flag struct {
	Name string // e.g. "--limit <n>"
	Desc string
}

// Arg describes a positional argument.
type Arg struct {
	Name     string
	Desc     string
	Optional bool
}

// Command describes an rf subcommand (or the top-level binary when Name is "").
type Command struct {
	Name        string // "infer", "mask", etc; "" for top-level
	Synopsis    string // one-line description (lowercase, for --help header)
	Brief       string // short description for usage table (capitalized)
	Usage       string // full usage line, e.g. "rf mask <pattern> [--limit n]"
	TableUsage  string // shortened usage for the top-level table (if different from Usage)
	Args        []Arg
	Flags       []Flag
	Description string   // multi-line prose (stored verbatim)
	Examples    []string // one per line, without leading 2-space indent
	SeeAlso     []string // man page cross-refs, e.g. "rf(1)"
}

// tableUsage returns TableUsage if set, otherwise Usage.
func (c Command) tableUsage() string {
	if c.TableUsage != "" {
		return c.TableUsage
	}
	return c.Usage
}

// ManName returns the man page name: "rf" for top-level, "rf-<name>" for subs.
func (c Command) ManName() string {
	if c.Name == "" {
		return "rf"
	}
	return "rf-" + strings.ReplaceAll(c.Name, " ", "-")
}

// TopLevel is the top-level rf command (used by FormatUsage).
var TopLevel = Command{
	Name:     "",
	Synopsis: "password transformation rule engine",
}

var CmdInfer = Command{
	Name:       "infer",
	Synopsis:   "infer transformation rules from observed passwords",
	Brief:      "Infer rules and learn patterns",
	Usage:      "rf infer <dictionary> <corpus>",
	TableUsage: "rf infer <dict> <corpus>",
	Args: []Arg{
		{Name: "dictionary", Desc: "Wordlist of base words, one per line"},
		{Name: "corpus", Desc: "Observed passwords, one per line"},
	},
	Description: `Matches every corpus password against the dictionary and reconstructs
the minimal transformation rule (case changes, character substitutions,
appended or prepended literals) that produces it. Prints one record per
password and saves the learned pattern frequencies as a cache file
named by the corpus fingerprint.

Passwords with no usable base word are still reported, so the corpus
accounting stays exact.`,
	Examples: []string{
		"rf infer rockyou-bases.txt breach-corpus.txt",
	},
	SeeAlso: []string{"rf(1)", "rf-report(1)", "rf-merge(1)"},
}

var CmdMask = Command{
	Name:     "mask",
	Synopsis: "enumerate a mask keyspace",
	Brief:    "Enumerate a mask keyspace",
	Usage:    "rf mask <pattern> [--limit n]",
	Args: []Arg{
		{Name: "pattern", Desc: "Mask pattern, e.g. ?u?l?l?l?d?d"},
	},
	Flags: []Flag{
		{Name: "--limit <n>", Desc: "Maximum candidates to print (default 10000)"},
	},
	Description: `Expands a hashcat-style mask: ?l lowercase, ?u uppercase, ?d digits,
?s specials, ?a all printable ASCII, ?h hex, ?1-?9 custom classes from
the config, ?? a literal question mark. Any other character stands for
itself. Candidates print in odometer order, rightmost position varying
fastest.

The full keyspace size is reported up front; the enumeration itself
never materializes more than the limit.`,
	Examples: []string{
		"rf mask '?u?l?l?l?d?d'          Capitalized 4-letter word plus 2 digits",
		"rf mask 'admin?d?d' --limit 50  Literal prefix, first 50 only",
	},
	SeeAlso: []string{"rf(1)"},
}

var CmdOptimize = Command{
	Name:     "optimize",
	Synopsis: "remove redundant rules from a rule file",
	Brief:    "Remove redundant rules",
	Usage:    "rf optimize <rulefile>",
	Args: []Arg{
		{Name: "rulefile", Desc: "Hashcat rule file, one rule per line"},
	},
	Description: `Evaluates every rule against a built-in sample wordlist and keeps one
survivor per output equivalence class, preferring the rule with the
fewest operations, then the shorter encoding. Writes the pruned set to
stdout and the removal statistics to stderr.

Equivalence is relative to the sample wordlist, not a proof over all
inputs.`,
	Examples: []string{
		"rf optimize best64.rule > best64-pruned.rule",
	},
	SeeAlso: []string{"rf(1)", "rf-infer(1)"},
}

var CmdMerge = Command{
	Name:       "merge",
	Synopsis:   "merge learned pattern caches",
	Brief:      "Merge pattern caches",
	Usage:      "rf merge <cache> <cache>...",
	TableUsage: "rf merge <cache>...",
	Args: []Arg{
		{Name: "cache", Desc: "Two or more pattern cache files"},
	},
	Description: `Combines pattern caches from separate corpora into one: counts and
corpus sizes sum, and the merged cache gets a combined fingerprint
that is independent of merge order. The result is saved to the cache
directory.`,
	Examples: []string{
		"rf merge ~/.cache/ruleforge/patterns_*.json.zst",
	},
	SeeAlso: []string{"rf(1)", "rf-infer(1)", "rf-report(1)"},
}

var CmdReport = Command{
	Name:     "report",
	Synopsis: "summarize a pattern cache",
	Brief:    "Summarize a pattern cache",
	Usage:    "rf report <cache>",
	Args: []Arg{
		{Name: "cache", Desc: "Pattern cache file"},
	},
	Description: `Prints corpus size, total observations, and the most frequent appends,
prepends, and substitutions with their share of each category.`,
	SeeAlso: []string{"rf(1)", "rf-infer(1)"},
}

var CmdCheck = Command{
	Name:     "check",
	Synopsis: "verify configuration and cache health",
	Brief:    "Verify configuration and caches",
	Usage:    "rf check",
	Description: `Runs environment checks: config file location, cache directory and its
cache files (schema version and readability), the sqlite catalog, and
the configured policy. Exits non-zero when any check fails.`,
	SeeAlso: []string{"rf(1)"},
}

// Subcommands lists every rf subcommand in usage-table order.
var Subcommands = []Command{
	CmdInfer, CmdMask, CmdOptimize, CmdMerge, CmdReport, CmdCheck,
}
