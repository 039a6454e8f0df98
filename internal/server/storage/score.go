// FILE: internal/server/storage/score.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/server/core"
)

// Ranking total order: cumulative score descending, then earlier join time,
// then competitor id. Deterministic and stable for equal scores; used
// identically by TopN and RankOf so the two views never disagree on ties.
const rankOrder = `s.cumulative_score DESC, c.joined_at ASC, s.competitor_id ASC`

// SubmitScore applies one submission as a single atomic unit: append the
// session entry, then read-modify-write the score record, then commit.
// Transactions begin in IMMEDIATE mode, so the read of the current score
// happens under the writer lock and never observes a value another in-flight
// submission is about to overwrite. On any failure the whole unit rolls back;
// a session entry without its score update (or vice versa) cannot persist.
func (s *Store) SubmitScore(ctx context.Context, competitorID string, delta int64, mode string, now time.Time) (*SessionEntryRecord, int64, error) {
	entry := &SessionEntryRecord{
		CompetitorID: competitorID,
		Delta:        delta,
		Mode:         mode,
		SubmittedAt:  now.UTC(),
	}
	var newScore int64

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		exists, err := s.competitorExists(tx, competitorID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("submit for %s: %w", competitorID, core.ErrCompetitorNotFound)
		}

		res, err := tx.Exec(
			`INSERT INTO session_entries (competitor_id, delta, mode, submitted_at) VALUES (?, ?, ?, ?)`,
			competitorID, delta, mode, entry.SubmittedAt.UnixNano(),
		)
		if err != nil {
			return wrapStoreErr(fmt.Sprintf("append session entry for %s", competitorID), err)
		}
		entry.EntryID, err = res.LastInsertId()
		if err != nil {
			return wrapStoreErr("session entry id", err)
		}

		var current int64
		err = tx.QueryRow(
			`SELECT cumulative_score FROM score_records WHERE competitor_id = ?`,
			competitorID,
		).Scan(&current)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// First submission creates the score record
			newScore = delta
			_, err = tx.Exec(
				`INSERT INTO score_records (competitor_id, cumulative_score, last_updated) VALUES (?, ?, ?)`,
				competitorID, newScore, now.UnixNano(),
			)
		case err != nil:
			return wrapStoreErr(fmt.Sprintf("read score for %s", competitorID), err)
		default:
			newScore = current + delta
			_, err = tx.Exec(
				`UPDATE score_records SET cumulative_score = ?, last_updated = ? WHERE competitor_id = ?`,
				newScore, now.UnixNano(), competitorID,
			)
		}
		if err != nil {
			return wrapStoreErr(fmt.Sprintf("update score for %s", competitorID), err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return entry, newScore, nil
}

// TopN returns the n best-ranked competitors in rank order. The query walks
// the score index, so cost scales with n rather than with the table size.
func (s *Store) TopN(ctx context.Context, n int64) ([]RankedRow, error) {
	query := `SELECT s.competitor_id, c.display_name, s.cumulative_score
		FROM score_records s
		JOIN competitors c ON c.competitor_id = s.competitor_id
		ORDER BY ` + rankOrder + `
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, wrapStoreErr("query top-n", err)
	}
	defer rows.Close()

	ranked := make([]RankedRow, 0, n)
	for rows.Next() {
		var row RankedRow
		if err := rows.Scan(&row.CompetitorID, &row.DisplayName, &row.CumulativeScore); err != nil {
			return nil, wrapStoreErr("scan top-n row", err)
		}
		row.Rank = int64(len(ranked)) + 1
		ranked = append(ranked, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("iterate top-n rows", err)
	}
	return ranked, nil
}

// RankOf computes one competitor's rank: its 1-based position under the
// ranking order, found by counting competitors that order strictly before it.
// Runs as a plain snapshot read; it never blocks submissions and never sees a
// partially committed one. Returns core.ErrCompetitorNotFound if the
// competitor has no score record yet.
func (s *Store) RankOf(ctx context.Context, competitorID string) (*RankedRow, error) {
	var row RankedRow
	var joinedAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT s.competitor_id, c.display_name, s.cumulative_score, c.joined_at
		FROM score_records s
		JOIN competitors c ON c.competitor_id = s.competitor_id
		WHERE s.competitor_id = ?`,
		competitorID,
	).Scan(&row.CompetitorID, &row.DisplayName, &row.CumulativeScore, &joinedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("rank of %s: %w", competitorID, core.ErrCompetitorNotFound)
	}
	if err != nil {
		return nil, wrapStoreErr(fmt.Sprintf("rank of %s", competitorID), err)
	}

	var ahead int64
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*)
		FROM score_records s
		JOIN competitors c ON c.competitor_id = s.competitor_id
		WHERE s.cumulative_score > ?
		   OR (s.cumulative_score = ? AND (c.joined_at < ? OR (c.joined_at = ? AND s.competitor_id < ?)))`,
		row.CumulativeScore, row.CumulativeScore, joinedAt, joinedAt, competitorID,
	).Scan(&ahead)
	if err != nil {
		return nil, wrapStoreErr(fmt.Sprintf("count ahead of %s", competitorID), err)
	}

	row.Rank = ahead + 1
	return &row, nil
}
