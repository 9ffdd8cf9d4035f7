// Package archive persists finished tournament runs to SQLite. It sits
// outside the simulation core: the engine only ever reports in-memory
// results, and callers opt in to archiving them here.
package archive

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the current schema version.
const SchemaVersion = 1

// schemaV1 is the initial schema for the run archive.
const schemaV1 = `
-- One row per tournament run
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,
    seed INTEGER NOT NULL,
    rounds INTEGER NOT NULL,
    noise REAL NOT NULL DEFAULT 0,
    agent_count INTEGER NOT NULL,
    match_count INTEGER NOT NULL,
    failure_count INTEGER NOT NULL DEFAULT 0
);

-- Final ranking of each run
CREATE TABLE IF NOT EXISTS standings (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    rank INTEGER NOT NULL,
    agent TEXT NOT NULL,
    strategy TEXT NOT NULL,
    score INTEGER NOT NULL,
    matches INTEGER NOT NULL,
    avg_per_round REAL NOT NULL,
    PRIMARY KEY (run_id, rank)
);

-- Per-pairing outcomes of each run
CREATE TABLE IF NOT EXISTS matches (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    idx INTEGER NOT NULL,
    agent_a TEXT NOT NULL,
    agent_b TEXT NOT NULL,
    score_a INTEGER NOT NULL,
    score_b INTEGER NOT NULL,
    rounds INTEGER NOT NULL,
    PRIMARY KEY (run_id, idx)
);
CREATE INDEX IF NOT EXISTS idx_matches_agents ON matches(run_id, agent_a, agent_b);

CREATE TABLE IF NOT EXISTS schema_meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// InitSchema creates the archive tables if they do not exist and records
// the schema version.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	_, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO schema_meta (key, value) VALUES ('version', ?)`,
		fmt.Sprintf("%d", SchemaVersion))
	if err != nil {
		return fmt.Errorf("recording schema version: %w", err)
	}
	return nil
}
