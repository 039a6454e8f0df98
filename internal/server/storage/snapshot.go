// FILE: internal/server/storage/snapshot.go
package storage

import (
	"context"
	"database/sql"
	"time"
)

// RecordSnapshot asynchronously persists a ranked view for audit. Snapshots
// are advisory: when the store is degraded or the write queue is full they
// are dropped rather than blocking the caller.
func (s *Store) RecordSnapshot(takenAt time.Time, rows []RankedRow) error {
	if !s.healthStatus.Load() {
		return nil // Silently drop if degraded
	}

	select {
	case s.writeChan <- func(tx *sql.Tx) error {
		query := `INSERT INTO leaderboard_snapshots (taken_at, competitor_id, cumulative_score, rank)
			VALUES (?, ?, ?, ?)`
		for _, row := range rows {
			if _, err := tx.Exec(query, takenAt.UnixNano(), row.CompetitorID, row.CumulativeScore, row.Rank); err != nil {
				return err
			}
		}
		return nil
	}:
		return nil
	default:
		// Channel full, drop write
		s.logger.Warn("storage write queue full, dropping leaderboard snapshot")
		return nil
	}
}

// QuerySnapshots returns the most recent snapshot rows, newest snapshot first
func (s *Store) QuerySnapshots(ctx context.Context, limit int64) ([]SnapshotRecord, error) {
	query := `SELECT snapshot_id, taken_at, competitor_id, cumulative_score, rank
		FROM leaderboard_snapshots
		ORDER BY taken_at DESC, rank ASC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, wrapStoreErr("query snapshots", err)
	}
	defer rows.Close()

	var records []SnapshotRecord
	for rows.Next() {
		var record SnapshotRecord
		var takenAt int64
		if err := rows.Scan(&record.SnapshotID, &takenAt, &record.CompetitorID, &record.CumulativeScore, &record.Rank); err != nil {
			return nil, wrapStoreErr("scan snapshot", err)
		}
		record.TakenAt = time.Unix(0, takenAt).UTC()
		records = append(records, record)
	}
	return records, rows.Err()
}
