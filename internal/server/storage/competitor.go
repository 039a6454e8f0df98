// FILE: internal/server/storage/competitor.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/server/core"
)

// CreateCompetitor creates a competitor with transaction isolation to prevent
// duplicate registrations racing each other
func (s *Store) CreateCompetitor(ctx context.Context, record CompetitorRecord) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		exists, err := s.competitorExists(tx, record.CompetitorID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("create competitor %s: %w", record.CompetitorID, core.ErrCompetitorExists)
		}

		query := `INSERT INTO competitors (competitor_id, display_name, joined_at) VALUES (?, ?, ?)`
		if _, err := tx.Exec(query, record.CompetitorID, record.DisplayName, record.JoinedAt.UnixNano()); err != nil {
			return wrapStoreErr(fmt.Sprintf("create competitor %s", record.CompetitorID), err)
		}
		return nil
	})
}

// EnsureCompetitor provisions a competitor and its score record if either is
// missing, in a single transaction. Idempotent: concurrent callers for the
// same id all succeed and exactly one row of each kind exists afterwards.
func (s *Store) EnsureCompetitor(ctx context.Context, competitorID, displayName string, now time.Time) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		query := `INSERT OR IGNORE INTO competitors (competitor_id, display_name, joined_at) VALUES (?, ?, ?)`
		if _, err := tx.Exec(query, competitorID, displayName, now.UnixNano()); err != nil {
			return wrapStoreErr(fmt.Sprintf("provision competitor %s", competitorID), err)
		}

		query = `INSERT OR IGNORE INTO score_records (competitor_id, cumulative_score, last_updated) VALUES (?, 0, ?)`
		if _, err := tx.Exec(query, competitorID, now.UnixNano()); err != nil {
			return wrapStoreErr(fmt.Sprintf("provision score record %s", competitorID), err)
		}
		return nil
	})
}

// GetCompetitor retrieves a competitor by id
func (s *Store) GetCompetitor(ctx context.Context, competitorID string) (*CompetitorRecord, error) {
	var record CompetitorRecord
	var joinedAt int64
	query := `SELECT competitor_id, display_name, joined_at FROM competitors WHERE competitor_id = ?`

	err := s.db.QueryRowContext(ctx, query, competitorID).Scan(
		&record.CompetitorID, &record.DisplayName, &joinedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get competitor %s: %w", competitorID, core.ErrCompetitorNotFound)
	}
	if err != nil {
		return nil, wrapStoreErr(fmt.Sprintf("get competitor %s", competitorID), err)
	}
	record.JoinedAt = time.Unix(0, joinedAt).UTC()
	return &record, nil
}

// CountCompetitors returns the number of registered competitors
func (s *Store) CountCompetitors(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM competitors`).Scan(&count)
	if err != nil {
		return 0, wrapStoreErr("count competitors", err)
	}
	return count, nil
}

// competitorExists verifies id uniqueness within a transaction
func (s *Store) competitorExists(tx *sql.Tx, competitorID string) (bool, error) {
	var count int
	err := tx.QueryRow(`SELECT COUNT(*) FROM competitors WHERE competitor_id = ?`, competitorID).Scan(&count)
	if err != nil {
		return false, wrapStoreErr("check competitor", err)
	}
	return count > 0, nil
}
