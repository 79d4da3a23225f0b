// Package cachedb keeps a sqlite catalog of pattern caches so external
// tooling can browse many corpora without decompressing cache files.
// The catalog is a projection of the cache files, never the source of
// truth; Put simply overwrites whatever was indexed for a fingerprint.
package cachedb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/johns/ruleforge/internal/patterns"
)

const schema = `
CREATE TABLE IF NOT EXISTS cache (
	fingerprint    TEXT PRIMARY KEY,
	corpus_size    INTEGER NOT NULL,
	created_at     TEXT NOT NULL,
	schema_version TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS pattern (
	fingerprint TEXT NOT NULL,
	kind        TEXT NOT NULL,
	key         TEXT NOT NULL,
	count       INTEGER NOT NULL,
	PRIMARY KEY (fingerprint, kind, key)
);
CREATE INDEX IF NOT EXISTS pattern_by_count
	ON pattern (fingerprint, kind, count DESC);
`

const (
	kindAppend     = "append"
	kindPrepend    = "prepend"
	kindSubstitute = "substitute"
)

// DB is an open cache catalog.
type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the catalog at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	// modernc.org/sqlite serializes writers; a single connection avoids
	// SQLITE_BUSY on concurrent Put calls.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create catalog schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close releases the underlying connection.
func (d *DB) Close() error { return d.db.Close() }

// Put indexes a cache, replacing any previous rows for its fingerprint.
func (d *DB) Put(ctx context.Context, c patterns.Cache) error {
	if c.SourceFingerprint == "" {
		return fmt.Errorf("cache has no fingerprint")
	}
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM pattern WHERE fingerprint = ?`, c.SourceFingerprint); err != nil {
		return fmt.Errorf("clear patterns: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO cache (fingerprint, corpus_size, created_at, schema_version)
		 VALUES (?, ?, ?, ?)`,
		c.SourceFingerprint, c.CorpusSize, c.CreatedAt.UTC().Format(time.RFC3339Nano),
		c.SchemaVersion); err != nil {
		return fmt.Errorf("insert cache row: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO pattern (fingerprint, kind, key, count) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare pattern insert: %w", err)
	}
	defer stmt.Close()

	insert := func(kind string, counts map[string]int) error {
		for key, count := range counts {
			if _, err := stmt.ExecContext(ctx, c.SourceFingerprint, kind, key, count); err != nil {
				return fmt.Errorf("insert %s pattern: %w", kind, err)
			}
		}
		return nil
	}
	if err := insert(kindAppend, c.Appends); err != nil {
		return err
	}
	if err := insert(kindPrepend, c.Prepends); err != nil {
		return err
	}
	if err := insert(kindSubstitute, c.Substitutions); err != nil {
		return err
	}
	return tx.Commit()
}

// Info describes one indexed cache.
type Info struct {
	Fingerprint   string
	CorpusSize    int
	CreatedAt     time.Time
	SchemaVersion string
}

// List returns the indexed caches, newest first.
func (d *DB) List(ctx context.Context) ([]Info, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT fingerprint, corpus_size, created_at, schema_version
		 FROM cache ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list caches: %w", err)
	}
	defer rows.Close()

	var infos []Info
	for rows.Next() {
		var info Info
		var created string
		if err := rows.Scan(&info.Fingerprint, &info.CorpusSize, &created, &info.SchemaVersion); err != nil {
			return nil, fmt.Errorf("scan cache row: %w", err)
		}
		info.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Counted is one pattern with its observation count.
type Counted struct {
	Key   string
	Count int
}

// TopAppends returns the n most frequent appended suffixes of one
// corpus, most frequent first.
func (d *DB) TopAppends(ctx context.Context, fingerprint string, n int) ([]Counted, error) {
	return d.top(ctx, fingerprint, kindAppend, n)
}

// TopSubstitutions returns the n most frequent substitution pairs of
// one corpus, keyed as in patterns.SubKey.
func (d *DB) TopSubstitutions(ctx context.Context, fingerprint string, n int) ([]Counted, error) {
	return d.top(ctx, fingerprint, kindSubstitute, n)
}

func (d *DB) top(ctx context.Context, fingerprint, kind string, n int) ([]Counted, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT key, count FROM pattern
		 WHERE fingerprint = ? AND kind = ?
		 ORDER BY count DESC, key ASC LIMIT ?`, fingerprint, kind, n)
	if err != nil {
		return nil, fmt.Errorf("query %s patterns: %w", kind, err)
	}
	defer rows.Close()

	var out []Counted
	for rows.Next() {
		var c Counted
		if err := rows.Scan(&c.Key, &c.Count); err != nil {
			return nil, fmt.Errorf("scan pattern row: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete drops one cache and its patterns from the catalog.
func (d *DB) Delete(ctx context.Context, fingerprint string) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM pattern WHERE fingerprint = ?`, fingerprint); err != nil {
		return fmt.Errorf("delete patterns: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM cache WHERE fingerprint = ?`, fingerprint); err != nil {
		return fmt.Errorf("delete cache row: %w", err)
	}
	return tx.Commit()
}
