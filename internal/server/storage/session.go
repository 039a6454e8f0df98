// FILE: internal/server/storage/session.go
package storage

import (
	"context"
	"time"
)

// Session entries are written only inside SubmitScore's transaction and are
// never updated or deleted. The queries here serve the audit CLI; the ranking
// path does not read this table.

// QuerySessionEntries returns entries for a competitor, newest first.
// An empty competitorID matches all competitors; a zero since matches all time.
func (s *Store) QuerySessionEntries(ctx context.Context, competitorID string, since time.Time, limit int64) ([]SessionEntryRecord, error) {
	query := `SELECT entry_id, competitor_id, delta, mode, submitted_at
		FROM session_entries
		WHERE (? = '' OR competitor_id = ?) AND submitted_at >= ?
		ORDER BY entry_id DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, competitorID, competitorID, since.UnixNano(), limit)
	if err != nil {
		return nil, wrapStoreErr("query session entries", err)
	}
	defer rows.Close()

	var entries []SessionEntryRecord
	for rows.Next() {
		var entry SessionEntryRecord
		var submittedAt int64
		if err := rows.Scan(&entry.EntryID, &entry.CompetitorID, &entry.Delta, &entry.Mode, &submittedAt); err != nil {
			return nil, wrapStoreErr("scan session entry", err)
		}
		entry.SubmittedAt = time.Unix(0, submittedAt).UTC()
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// CountSessionEntries returns the total number of logged submissions
func (s *Store) CountSessionEntries(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM session_entries`).Scan(&count)
	if err != nil {
		return 0, wrapStoreErr("count session entries", err)
	}
	return count, nil
}
