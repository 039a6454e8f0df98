package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/server/cache"
	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/server/core"
	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/server/storage"
)

func newTestService(t *testing.T, opts Options) (*Service, *storage.Store) {
	t.Helper()

	store, err := storage.NewStore(filepath.Join(t.TempDir(), "leaderboard.db"), true)
	require.NoError(t, err)
	require.NoError(t, store.InitDB())

	svc := New(store, cache.NewMemory(time.Minute), opts)
	t.Cleanup(func() { svc.Shutdown() })
	return svc, store
}

func mustRegister(t *testing.T, svc *Service, id string) {
	t.Helper()

	_, err := svc.RegisterCompetitor(context.Background(), id, id)
	require.NoError(t, err)
}

func TestSubmitRejectsNegativeDelta(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	mustRegister(t, svc, "alice")

	_, err := svc.Submit(context.Background(), "alice", -1, "")
	require.ErrorIs(t, err, core.ErrInvalidScore)
}

func TestSubmitUnknownCompetitor(t *testing.T) {
	svc, _ := newTestService(t, Options{})

	_, err := svc.Submit(context.Background(), "ghost", 10, "")
	require.ErrorIs(t, err, core.ErrCompetitorNotFound)
}

func TestSubmitReturnsCommittedTotal(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()
	mustRegister(t, svc, "alice")

	result, err := svc.Submit(ctx, "alice", 100, "arcade")
	require.NoError(t, err)
	require.Equal(t, int64(100), result.Delta)
	require.Equal(t, int64(100), result.CumulativeScore)
	require.NotZero(t, result.EntryID)

	result, err = svc.Submit(ctx, "alice", 50, "arcade")
	require.NoError(t, err)
	require.Equal(t, int64(150), result.CumulativeScore)
}

// Two concurrent submissions to the same competitor must both land: the
// final total is the sum, never one overwriting the other.
func TestConcurrentSubmissionsNoLostUpdate(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()
	mustRegister(t, svc, "alice")

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, delta := range []int64{100, 50} {
		wg.Add(1)
		go func(d int64) {
			defer wg.Done()
			_, err := svc.Submit(ctx, "alice", d, "")
			errs <- err
		}(delta)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	entry, _, err := svc.RankOf(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, int64(150), entry.CumulativeScore)
}

func TestConcurrentSubmissionsAccumulate(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()
	mustRegister(t, svc, "alice")

	const workers = 20
	const delta = 7

	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Submit(ctx, "alice", delta, "")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	entry, _, err := svc.RankOf(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, int64(workers*delta), entry.CumulativeScore)
}

// A read after Submit returns must see the new total, even when the
// previous view was cached.
func TestSubmitInvalidatesCachedViews(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()
	mustRegister(t, svc, "alice")

	_, err := svc.Submit(ctx, "alice", 10, "")
	require.NoError(t, err)

	// Prime both cached views
	_, origin, err := svc.TopN(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, core.OriginStore, origin)
	_, origin, err = svc.RankOf(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, core.OriginStore, origin)

	_, err = svc.Submit(ctx, "alice", 90, "")
	require.NoError(t, err)

	entries, origin, err := svc.TopN(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, core.OriginStore, origin)
	require.Equal(t, int64(100), entries[0].CumulativeScore)

	entry, origin, err := svc.RankOf(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, core.OriginStore, origin)
	require.Equal(t, int64(100), entry.CumulativeScore)
}

// faultyCache fails every operation, standing in for an unreachable backend
type faultyCache struct{}

var errCacheDown = errors.New("cache backend unreachable")

func (faultyCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errCacheDown
}
func (faultyCache) Put(context.Context, string, []byte, time.Duration) error {
	return errCacheDown
}
func (faultyCache) Invalidate(context.Context, string) error { return errCacheDown }

func (faultyCache) InvalidateByPrefix(context.Context, string) error { return errCacheDown }

func (faultyCache) Close() error { return nil }

// Cache failures never fail requests: submissions commit and reads fall
// through to the store.
func TestCacheFailureDoesNotFailRequests(t *testing.T) {
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "leaderboard.db"), true)
	require.NoError(t, err)
	require.NoError(t, store.InitDB())

	svc := New(store, faultyCache{}, Options{})
	t.Cleanup(func() { svc.Shutdown() })
	ctx := context.Background()
	mustRegister(t, svc, "alice")

	result, err := svc.Submit(ctx, "alice", 42, "")
	require.NoError(t, err)
	require.Equal(t, int64(42), result.CumulativeScore)

	entries, origin, err := svc.TopN(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, core.OriginStore, origin)
	require.Len(t, entries, 1)

	entry, origin, err := svc.RankOf(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, core.OriginStore, origin)
	require.Equal(t, int64(42), entry.CumulativeScore)
}
