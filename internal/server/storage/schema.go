// FILE: internal/server/storage/schema.go
package storage

import "time"

// CompetitorRecord represents a row in the competitors table
type CompetitorRecord struct {
	CompetitorID string    `db:"competitor_id"`
	DisplayName  string    `db:"display_name"`
	JoinedAt     time.Time `db:"joined_at"`
}

// ScoreRecord represents the per-competitor aggregate score row. Exactly one
// row exists per competitor; it is created at first submission or at first
// rank lookup, never duplicated.
type ScoreRecord struct {
	CompetitorID    string    `db:"competitor_id"`
	CumulativeScore int64     `db:"cumulative_score"`
	LastUpdated     time.Time `db:"last_updated"`
}

// SessionEntryRecord represents one scoring event in the append-only log
type SessionEntryRecord struct {
	EntryID      int64     `db:"entry_id"`
	CompetitorID string    `db:"competitor_id"`
	Delta        int64     `db:"delta"`
	Mode         string    `db:"mode"`
	SubmittedAt  time.Time `db:"submitted_at"`
}

// RankedRow is one row of a ranked view computed from the score table
type RankedRow struct {
	CompetitorID    string
	DisplayName     string
	CumulativeScore int64
	Rank            int64
}

// SnapshotRecord represents a row in the leaderboard_snapshots table
type SnapshotRecord struct {
	SnapshotID      int64     `db:"snapshot_id"`
	TakenAt         time.Time `db:"taken_at"`
	CompetitorID    string    `db:"competitor_id"`
	CumulativeScore int64     `db:"cumulative_score"`
	Rank            int64     `db:"rank"`
}

// Schema defines the SQLite database structure.
// Timestamps that participate in ordering (joined_at in particular, the score
// tie-breaker) are stored as unix nanoseconds so comparisons never depend on
// text formats.
const Schema = `
CREATE TABLE IF NOT EXISTS competitors (
	competitor_id TEXT PRIMARY KEY,
	display_name TEXT NOT NULL,
	joined_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS score_records (
	competitor_id TEXT PRIMARY KEY,
	cumulative_score INTEGER NOT NULL DEFAULT 0 CHECK(cumulative_score >= 0),
	last_updated INTEGER NOT NULL,
	FOREIGN KEY (competitor_id) REFERENCES competitors(competitor_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_score_records_rank ON score_records(cumulative_score DESC);

CREATE TABLE IF NOT EXISTS session_entries (
	entry_id INTEGER PRIMARY KEY AUTOINCREMENT,
	competitor_id TEXT NOT NULL,
	delta INTEGER NOT NULL CHECK(delta >= 0),
	mode TEXT NOT NULL DEFAULT 'default',
	submitted_at INTEGER NOT NULL,
	FOREIGN KEY (competitor_id) REFERENCES competitors(competitor_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_session_entries_competitor ON session_entries(competitor_id);
CREATE INDEX IF NOT EXISTS idx_session_entries_submitted ON session_entries(submitted_at);

CREATE TABLE IF NOT EXISTS leaderboard_snapshots (
	snapshot_id INTEGER PRIMARY KEY AUTOINCREMENT,
	taken_at INTEGER NOT NULL,
	competitor_id TEXT NOT NULL,
	cumulative_score INTEGER NOT NULL,
	rank INTEGER NOT NULL,
	UNIQUE(taken_at, competitor_id)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_taken_at ON leaderboard_snapshots(taken_at);
`
