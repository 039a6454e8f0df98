// FILE: internal/server/service/ranking.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/server/cache"
	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/server/core"
	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/server/storage"
)

// TopN returns the n best-ranked competitors, cache-aside: serve the cached
// view when present, otherwise compute from the store and populate the cache.
// The returned origin tags which path served the result.
func (s *Service) TopN(ctx context.Context, n int64) ([]core.RankedEntry, core.Origin, error) {
	if n < 1 || n > s.opts.MaxTopLimit {
		return nil, "", fmt.Errorf("top %d (max %d): %w", n, s.opts.MaxTopLimit, core.ErrInvalidLimit)
	}

	key := cache.TopKey(n)
	var cached []core.RankedEntry
	if s.cacheGet(ctx, key, &cached) {
		return cached, core.OriginCache, nil
	}

	opCtx, cancel := s.storeCtx(ctx)
	rows, err := s.store.TopN(opCtx, n)
	cancel()
	if err != nil {
		return nil, "", err
	}

	entries := make([]core.RankedEntry, len(rows))
	for i, row := range rows {
		entries[i] = rankedEntry(row)
	}

	s.cachePut(ctx, key, entries)
	return entries, core.OriginStore, nil
}

// RankOf returns one competitor's ranked entry, cache-aside like TopN.
// An unknown competitor is provisioned with a zero score record rather than
// rejected, which makes the lookup total and idempotent; fresh competitors
// rank behind every scored one.
func (s *Service) RankOf(ctx context.Context, competitorID string) (*core.RankedEntry, core.Origin, error) {
	key := cache.RankKey(competitorID)
	var cached core.RankedEntry
	if s.cacheGet(ctx, key, &cached) {
		return &cached, core.OriginCache, nil
	}

	opCtx, cancel := s.storeCtx(ctx)
	defer cancel()

	row, err := s.store.RankOf(opCtx, competitorID)
	if errors.Is(err, core.ErrCompetitorNotFound) {
		// Provision in its own unit of work, then recompute. EnsureCompetitor
		// is idempotent, so concurrent first lookups cannot create duplicates.
		if err := s.store.EnsureCompetitor(opCtx, competitorID, competitorID, time.Now().UTC()); err != nil {
			return nil, "", err
		}
		row, err = s.store.RankOf(opCtx, competitorID)
	}
	if err != nil {
		return nil, "", err
	}

	entry := rankedEntry(*row)
	s.cachePut(ctx, key, &entry)
	return &entry, core.OriginStore, nil
}

func rankedEntry(row storage.RankedRow) core.RankedEntry {
	return core.RankedEntry{
		CompetitorID:    row.CompetitorID,
		DisplayName:     row.DisplayName,
		CumulativeScore: row.CumulativeScore,
		Rank:            row.Rank,
	}
}

// cacheGet loads and decodes a cached value. Any cache failure is treated as
// a miss: the read path must keep working from the store when the cache is
// down or the entry is garbled.
func (s *Service) cacheGet(ctx context.Context, key string, out any) bool {
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache read failed, falling back to store", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("cache entry undecodable, falling back to store", "key", key, "error", err)
		return false
	}
	return true
}

// cachePut encodes and stores a value with the configured TTL. Failures are
// logged and swallowed; a missing cache entry only costs the next reader a
// store query.
func (s *Service) cachePut(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	if err := s.cache.Put(ctx, key, data, s.opts.CacheTTL); err != nil {
		s.logger.Warn("cache write failed", "key", key, "error", err)
	}
}
