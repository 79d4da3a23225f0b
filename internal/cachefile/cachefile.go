// Package cachefile persists pattern caches as zstd-compressed JSON
// files named by corpus fingerprint. Readers fail closed: a cache
// written by an incompatible schema or damaged on disk is an error,
// never a silently partial load.
package cachefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/blang/semver/v4"
	"github.com/klauspost/compress/zstd"

	"github.com/johns/ruleforge/internal/patterns"
)

// ErrSchemaVersion reports a cache written under an incompatible
// schema major version.
var ErrSchemaVersion = errors.New("incompatible cache schema version")

// ErrNotFound reports that no cache file exists for a fingerprint.
var ErrNotFound = errors.New("cache not found")

// Save writes the cache to dir as patterns_<fingerprint>.json.zst and
// returns the file path. The directory is created if missing.
func Save(dir string, c patterns.Cache) (string, error) {
	if c.SourceFingerprint == "" {
		return "", fmt.Errorf("cache has no fingerprint")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	destPath := Path(dir, c.SourceFingerprint)
	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create cache file: %w", err)
	}
	defer dest.Close()

	encoder, err := zstd.NewWriter(dest)
	if err != nil {
		return "", fmt.Errorf("create zstd encoder: %w", err)
	}

	if err := json.NewEncoder(encoder).Encode(c); err != nil {
		encoder.Close()
		return "", fmt.Errorf("encode cache: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("finalize compression: %w", err)
	}
	return destPath, nil
}

// Load reads one cache file, verifying the schema version.
func Load(path string) (patterns.Cache, error) {
	var c patterns.Cache

	src, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("open cache: %w", err)
	}
	defer src.Close()

	decoder, err := zstd.NewReader(src)
	if err != nil {
		return c, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer decoder.Close()

	if err := json.NewDecoder(decoder).Decode(&c); err != nil {
		return patterns.Cache{}, fmt.Errorf("decode cache %s: %w", path, err)
	}
	if err := checkSchema(c.SchemaVersion); err != nil {
		return patterns.Cache{}, fmt.Errorf("cache %s: %w", path, err)
	}
	return c, nil
}

// LoadByFingerprint loads the cache for one corpus fingerprint from
// dir. Missing files report ErrNotFound.
func LoadByFingerprint(dir, fingerprint string) (patterns.Cache, error) {
	path := Path(dir, fingerprint)
	if _, err := os.Stat(path); err != nil {
		return patterns.Cache{}, fmt.Errorf("%w: %s", ErrNotFound, fingerprint)
	}
	return Load(path)
}

// Entry describes one cache file on disk without loading its counts.
type Entry struct {
	Path        string
	Fingerprint string
	Size        int64
	ModTime     time.Time
}

// List returns the cache files in dir, sorted by directory order.
// Files that do not match the cache naming pattern are skipped.
func List(dir string) ([]Entry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cache dir: %w", err)
	}

	var entries []Entry
	for _, f := range files {
		fp, ok := fingerprintFromName(f.Name())
		if !ok {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Path:        filepath.Join(dir, f.Name()),
			Fingerprint: fp,
			Size:        info.Size(),
			ModTime:     info.ModTime(),
		})
	}
	return entries, nil
}

// Cleanup removes cache files not modified within olderThan and
// returns the number removed.
func Cleanup(dir string, olderThan time.Duration) (int, error) {
	entries, err := List(dir)
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().Add(-olderThan)
	removed := 0
	for _, e := range entries {
		if e.ModTime.After(cutoff) {
			continue
		}
		if err := os.Remove(e.Path); err != nil {
			return removed, fmt.Errorf("remove stale cache: %w", err)
		}
		removed++
	}
	return removed, nil
}

// Path returns the deterministic cache file path for a fingerprint.
func Path(dir, fingerprint string) string {
	return filepath.Join(dir, "patterns_"+fingerprint+".json.zst")
}

func fingerprintFromName(name string) (string, bool) {
	if !strings.HasPrefix(name, "patterns_") || !strings.HasSuffix(name, ".json.zst") {
		return "", false
	}
	fp := strings.TrimSuffix(strings.TrimPrefix(name, "patterns_"), ".json.zst")
	if fp == "" {
		return "", false
	}
	return fp, true
}

// checkSchema accepts any version sharing the current schema's major.
func checkSchema(version string) error {
	v, err := semver.Parse(version)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrSchemaVersion, version)
	}
	cur := semver.MustParse(patterns.CurrentSchema)
	if v.Major != cur.Major {
		return fmt.Errorf("%w: file %s, supported %d.x", ErrSchemaVersion, version, cur.Major)
	}
	return nil
}
