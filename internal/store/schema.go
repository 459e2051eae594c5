package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schemaStatements creates the tables backing the crawl registry and index
// snapshots, in the "any persistent key/value store with atomic batched
// writes suffices" shape named by the external interface.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		url_id         TEXT PRIMARY KEY,
		url            TEXT NOT NULL UNIQUE,
		title          TEXT NOT NULL DEFAULT '',
		last_modified  TIMESTAMPTZ,
		size           INTEGER NOT NULL DEFAULT 0,
		fetched        BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS words (
		word_id TEXT PRIMARY KEY,
		word    TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS body_index (
		word_id  TEXT PRIMARY KEY REFERENCES words(word_id),
		postings TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS title_index (
		word_id  TEXT PRIMARY KEY REFERENCES words(word_id),
		postings TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS forward_index (
		url_id TEXT PRIMARY KEY REFERENCES documents(url_id),
		words  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS children (
		url_id   TEXT PRIMARY KEY REFERENCES documents(url_id),
		children TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS parents (
		url_id  TEXT PRIMARY KEY REFERENCES documents(url_id),
		parents TEXT NOT NULL
	)`,
}

// EnsureSchema creates every table used by the snapshot if it does not
// already exist.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
