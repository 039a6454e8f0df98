package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/server/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "leaderboard.db"), true)
	require.NoError(t, err)
	require.NoError(t, store.InitDB())
	t.Cleanup(func() { store.Close() })
	return store
}

func mustCreateCompetitor(t *testing.T, store *Store, id, name string, joinedAt time.Time) {
	t.Helper()

	err := store.CreateCompetitor(context.Background(), CompetitorRecord{
		CompetitorID: id,
		DisplayName:  name,
		JoinedAt:     joinedAt,
	})
	require.NoError(t, err)
}

func TestSubmitScoreAccumulates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	mustCreateCompetitor(t, store, "alice", "Alice", now)

	entry, total, err := store.SubmitScore(ctx, "alice", 100, "arcade", now)
	require.NoError(t, err)
	require.Equal(t, int64(100), total)
	require.NotZero(t, entry.EntryID)

	_, total, err = store.SubmitScore(ctx, "alice", 50, "arcade", now)
	require.NoError(t, err)
	require.Equal(t, int64(150), total)

	_, total, err = store.SubmitScore(ctx, "alice", 0, "arcade", now)
	require.NoError(t, err)
	require.Equal(t, int64(150), total)

	row, err := store.RankOf(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, int64(150), row.CumulativeScore)
}

func TestSubmitScoreUnknownCompetitorRollsBack(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, _, err := store.SubmitScore(ctx, "ghost", 10, "arcade", time.Now().UTC())
	require.ErrorIs(t, err, core.ErrCompetitorNotFound)

	// The whole unit rolled back: no session entry persisted
	count, err := store.CountSessionEntries(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestSubmitScoreFailureRollsBackWholeUnit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	mustCreateCompetitor(t, store, "alice", "Alice", now)
	_, _, err := store.SubmitScore(ctx, "alice", 100, "arcade", now)
	require.NoError(t, err)

	// A negative delta violates the session_entries check constraint after
	// the competitor check passes, failing mid-transaction
	_, _, err = store.SubmitScore(ctx, "alice", -5, "arcade", now)
	require.Error(t, err)

	// Neither the log entry nor any score change survived
	count, err := store.CountSessionEntries(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	row, err := store.RankOf(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, int64(100), row.CumulativeScore)
}

func TestTopNOrdersByScoreThenJoinTime(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Now().UTC()

	mustCreateCompetitor(t, store, "early", "Early", base)
	mustCreateCompetitor(t, store, "late", "Late", base.Add(time.Second))
	mustCreateCompetitor(t, store, "top", "Top", base.Add(2*time.Second))

	_, _, err := store.SubmitScore(ctx, "top", 300, "arcade", base)
	require.NoError(t, err)
	_, _, err = store.SubmitScore(ctx, "early", 100, "arcade", base)
	require.NoError(t, err)
	_, _, err = store.SubmitScore(ctx, "late", 100, "arcade", base)
	require.NoError(t, err)

	rows, err := store.TopN(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.Equal(t, "top", rows[0].CompetitorID)
	require.Equal(t, int64(1), rows[0].Rank)

	// Equal scores: the earlier join ranks higher
	require.Equal(t, "early", rows[1].CompetitorID)
	require.Equal(t, int64(2), rows[1].Rank)
	require.Equal(t, "late", rows[2].CompetitorID)
	require.Equal(t, int64(3), rows[2].Rank)
}

func TestRankOfMatchesTopNPositions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Now().UTC()

	ids := []string{"a", "b", "c", "d"}
	scores := []int64{40, 10, 40, 25}
	for i, id := range ids {
		mustCreateCompetitor(t, store, id, id, base.Add(time.Duration(i)*time.Second))
		_, _, err := store.SubmitScore(ctx, id, scores[i], "arcade", base)
		require.NoError(t, err)
	}

	rows, err := store.TopN(ctx, int64(len(ids)))
	require.NoError(t, err)
	require.Len(t, rows, len(ids))

	for _, row := range rows {
		single, err := store.RankOf(ctx, row.CompetitorID)
		require.NoError(t, err)
		require.Equal(t, row.Rank, single.Rank, "rank of %s", row.CompetitorID)
		require.Equal(t, row.CumulativeScore, single.CumulativeScore)
	}
}

func TestRankOfUnknownCompetitor(t *testing.T) {
	store := newTestStore(t)

	_, err := store.RankOf(context.Background(), "ghost")
	require.ErrorIs(t, err, core.ErrCompetitorNotFound)
}

func TestEnsureCompetitorIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.EnsureCompetitor(ctx, "newbie", "newbie", now))
	require.NoError(t, store.EnsureCompetitor(ctx, "newbie", "newbie", now.Add(time.Minute)))

	count, err := store.CountCompetitors(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	row, err := store.RankOf(ctx, "newbie")
	require.NoError(t, err)
	require.Zero(t, row.CumulativeScore)
}

func TestEnsureCompetitorPreservesExistingScore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	mustCreateCompetitor(t, store, "vet", "Veteran", now)
	_, _, err := store.SubmitScore(ctx, "vet", 500, "arcade", now)
	require.NoError(t, err)

	// Provisioning an already-scored competitor must not touch the record
	require.NoError(t, store.EnsureCompetitor(ctx, "vet", "vet", now))

	row, err := store.RankOf(ctx, "vet")
	require.NoError(t, err)
	require.Equal(t, int64(500), row.CumulativeScore)
}

func TestSnapshotRecordAndQuery(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	takenAt := time.Now().UTC()

	rows := []RankedRow{
		{CompetitorID: "a", CumulativeScore: 200, Rank: 1},
		{CompetitorID: "b", CumulativeScore: 100, Rank: 2},
	}
	require.NoError(t, store.RecordSnapshot(takenAt, rows))

	// The snapshot write is async; poll until it lands
	require.Eventually(t, func() bool {
		records, err := store.QuerySnapshots(ctx, 10)
		return err == nil && len(records) == 2
	}, 2*time.Second, 10*time.Millisecond)

	records, err := store.QuerySnapshots(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, "a", records[0].CompetitorID)
	require.Equal(t, int64(1), records[0].Rank)
}
