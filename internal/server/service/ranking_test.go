package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/server/core"
)

func TestTopNRejectsOutOfRangeLimits(t *testing.T) {
	svc, _ := newTestService(t, Options{MaxTopLimit: 50})
	ctx := context.Background()

	_, _, err := svc.TopN(ctx, 0)
	require.ErrorIs(t, err, core.ErrInvalidLimit)

	_, _, err = svc.TopN(ctx, -3)
	require.ErrorIs(t, err, core.ErrInvalidLimit)

	_, _, err = svc.TopN(ctx, 51)
	require.ErrorIs(t, err, core.ErrInvalidLimit)
}

// A cache miss and the hit that follows it must agree on the data; only
// the origin tag differs.
func TestTopNCacheStoreAgreement(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	for _, id := range []string{"alice", "bob", "carol"} {
		mustRegister(t, svc, id)
	}
	_, err := svc.Submit(ctx, "alice", 300, "")
	require.NoError(t, err)
	_, err = svc.Submit(ctx, "bob", 200, "")
	require.NoError(t, err)
	_, err = svc.Submit(ctx, "carol", 100, "")
	require.NoError(t, err)

	fromStore, origin, err := svc.TopN(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, core.OriginStore, origin)

	fromCache, origin, err := svc.TopN(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, core.OriginCache, origin)
	require.Equal(t, fromStore, fromCache)
}

func TestRankOfCacheStoreAgreement(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	mustRegister(t, svc, "alice")
	_, err := svc.Submit(ctx, "alice", 75, "")
	require.NoError(t, err)

	fromStore, origin, err := svc.RankOf(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, core.OriginStore, origin)

	fromCache, origin, err := svc.RankOf(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, core.OriginCache, origin)
	require.Equal(t, fromStore, fromCache)
}

// A rank lookup for a competitor nobody registered provisions a zero-score
// record instead of failing, and repeating it changes nothing.
func TestRankOfProvisionsUnknownCompetitor(t *testing.T) {
	svc, store := newTestService(t, Options{})
	ctx := context.Background()

	entry, origin, err := svc.RankOf(ctx, "walk-in")
	require.NoError(t, err)
	require.Equal(t, core.OriginStore, origin)
	require.Zero(t, entry.CumulativeScore)
	require.Equal(t, int64(1), entry.Rank)

	again, _, err := svc.RankOf(ctx, "walk-in")
	require.NoError(t, err)
	require.Equal(t, entry.Rank, again.Rank)

	count, err := store.CountCompetitors(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestRanksShiftAcrossSubmissions(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	mustRegister(t, svc, "a")
	mustRegister(t, svc, "b")

	_, err := svc.Submit(ctx, "a", 10, "")
	require.NoError(t, err)

	entryA, _, err := svc.RankOf(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, int64(1), entryA.Rank)

	entryB, _, err := svc.RankOf(ctx, "b")
	require.NoError(t, err)
	require.Equal(t, int64(2), entryB.Rank)

	_, err = svc.Submit(ctx, "b", 20, "")
	require.NoError(t, err)

	entryB, _, err = svc.RankOf(ctx, "b")
	require.NoError(t, err)
	require.Equal(t, int64(1), entryB.Rank)
	require.Equal(t, int64(20), entryB.CumulativeScore)

	entryA, _, err = svc.RankOf(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, int64(2), entryA.Rank)

	entries, _, err := svc.TopN(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "b", entries[0].CompetitorID)
	require.Equal(t, "a", entries[1].CompetitorID)
}

func TestRankOrderingIsTotal(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	ids := []string{"p1", "p2", "p3", "p4", "p5"}
	scores := []int64{50, 10, 40, 10, 30}
	for i, id := range ids {
		mustRegister(t, svc, id)
		_, err := svc.Submit(ctx, id, scores[i], "")
		require.NoError(t, err)
	}

	entries, _, err := svc.TopN(ctx, int64(len(ids)))
	require.NoError(t, err)
	require.Len(t, entries, len(ids))

	for i, entry := range entries {
		require.Equal(t, int64(i+1), entry.Rank)
		if i > 0 {
			require.GreaterOrEqual(t, entries[i-1].CumulativeScore, entry.CumulativeScore)
		}
	}
}

// A cached view written with no later invalidation survives only until its
// TTL; after expiry the next read recomputes from the store.
func TestStaleCacheEntryDiesAtTTL(t *testing.T) {
	svc, store := newTestService(t, Options{CacheTTL: 50 * time.Millisecond})
	ctx := context.Background()

	mustRegister(t, svc, "alice")
	_, err := svc.Submit(ctx, "alice", 10, "")
	require.NoError(t, err)

	entries, origin, err := svc.TopN(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, core.OriginStore, origin)
	require.Equal(t, int64(10), entries[0].CumulativeScore)

	// Write around the service so no invalidation happens
	_, _, err = store.SubmitScore(ctx, "alice", 90, "default", time.Now().UTC())
	require.NoError(t, err)

	entries, origin, err = svc.TopN(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, core.OriginCache, origin)
	require.Equal(t, int64(10), entries[0].CumulativeScore)

	time.Sleep(80 * time.Millisecond)

	entries, origin, err = svc.TopN(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, core.OriginStore, origin)
	require.Equal(t, int64(100), entries[0].CumulativeScore)
}
