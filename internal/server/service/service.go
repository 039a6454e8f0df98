package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/server/cache"
	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/server/storage"
)

const (
	DefaultMode        = "default"
	DefaultCacheTTL    = 30 * time.Second
	DefaultMaxTopLimit = 100
)

// Options bound the service's external interactions
type Options struct {
	CacheTTL     time.Duration // lifetime of cached ranked views
	StoreTimeout time.Duration // per-operation store deadline
	MaxTopLimit  int64         // upper bound on top-N requests
	SnapshotTopN int64         // rows persisted per leaderboard snapshot
}

// Service coordinates score submissions, ranking reads, and the cache-aside
// protocol between them. It is the only writer of the score tables and the
// only invalidator of the cache.
type Service struct {
	store  *storage.Store
	cache  cache.Cache
	opts   Options
	locks  *lockTable
	logger *slog.Logger
}

// New creates a service instance over the given store and cache
func New(store *storage.Store, c cache.Cache, opts Options) *Service {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = 5 * time.Second
	}
	if opts.MaxTopLimit <= 0 {
		opts.MaxTopLimit = DefaultMaxTopLimit
	}
	if opts.SnapshotTopN <= 0 {
		opts.SnapshotTopN = opts.MaxTopLimit
	}
	return &Service{
		store:  store,
		cache:  c,
		opts:   opts,
		locks:  newLockTable(),
		logger: slog.Default().With("component", "service"),
	}
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// storeCtx bounds a store operation with the configured timeout
func (s *Service) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opts.StoreTimeout)
}

// Shutdown gracefully shuts down the service
func (s *Service) Shutdown() error {
	var errs []error

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RunSnapshotJob periodically persists the current top of the leaderboard
// for audit. Snapshots are advisory and never interfere with submissions.
func (s *Service) RunSnapshotJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.snapshotOnce(ctx)
		}
	}
}

func (s *Service) snapshotOnce(ctx context.Context) {
	opCtx, cancel := s.storeCtx(ctx)
	defer cancel()

	rows, err := s.store.TopN(opCtx, s.opts.SnapshotTopN)
	if err != nil {
		s.logger.Warn("snapshot query failed", "error", err)
		return
	}
	if len(rows) == 0 {
		return
	}
	if err := s.store.RecordSnapshot(time.Now().UTC(), rows); err != nil {
		s.logger.Warn("snapshot write failed", "error", err)
	}
}
