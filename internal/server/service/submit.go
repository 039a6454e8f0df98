// FILE: internal/server/service/submit.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/server/cache"
	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/server/core"
)

// Submit applies one score submission. Sequence:
//
//  1. validate the delta (no store access on bad input)
//  2. take the competitor's lock, run the atomic append+update unit, commit
//  3. release the lock, then invalidate the affected cache entries
//  4. return the committed result
//
// Invalidation runs strictly after commit: invalidating first would let a
// reader rebuild the cache from a score the transaction later rolls back.
// It also runs strictly before returning, so a caller that reads after Submit
// returns never sees its own write missing. A failed invalidation is logged and
// swallowed: the submission is already durable and the stale entry dies at
// TTL expiry.
//
// Submit never retries internally. A timeout may fire after the commit, so
// retrying here could double-apply the delta; idempotent retry is the
// caller's concern.
func (s *Service) Submit(ctx context.Context, competitorID string, delta int64, mode string) (*core.SubmitResult, error) {
	if delta < 0 {
		return nil, fmt.Errorf("delta %d: %w", delta, core.ErrInvalidScore)
	}
	if mode == "" {
		mode = DefaultMode
	}

	unlock := s.locks.Lock(competitorID)

	opCtx, cancel := s.storeCtx(ctx)
	entry, total, err := s.store.SubmitScore(opCtx, competitorID, delta, mode, time.Now().UTC())
	cancel()
	unlock()

	if err != nil {
		return nil, err
	}

	s.invalidateAfterWrite(ctx, competitorID)

	return &core.SubmitResult{
		EntryID:         entry.EntryID,
		CompetitorID:    competitorID,
		Delta:           delta,
		CumulativeScore: total,
		SubmittedAt:     entry.SubmittedAt,
	}, nil
}

// invalidateAfterWrite drops every cached view a committed submission can
// affect: all top-N shapes, since any write can shift any rank, and the
// competitor's own rank entry.
func (s *Service) invalidateAfterWrite(ctx context.Context, competitorID string) {
	if err := s.cache.InvalidateByPrefix(ctx, cache.TopPrefix); err != nil {
		s.logger.Warn("top-n cache invalidation failed after commit",
			"competitor", competitorID, "error", err)
	}
	if err := s.cache.Invalidate(ctx, cache.RankKey(competitorID)); err != nil {
		s.logger.Warn("rank cache invalidation failed after commit",
			"competitor", competitorID, "error", err)
	}
}
