// FILE: internal/server/service/competitor.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/server/core"
	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/server/storage"
)

// RegisterCompetitor creates a competitor. An empty id gets a generated UUID.
// The score record is not created here; it appears at first submission or
// first rank lookup.
func (s *Service) RegisterCompetitor(ctx context.Context, competitorID, displayName string) (*core.Competitor, error) {
	if competitorID == "" {
		competitorID = uuid.NewString()
	}
	if displayName == "" {
		displayName = competitorID
	}

	record := storage.CompetitorRecord{
		CompetitorID: competitorID,
		DisplayName:  displayName,
		JoinedAt:     time.Now().UTC(),
	}

	opCtx, cancel := s.storeCtx(ctx)
	defer cancel()

	if err := s.store.CreateCompetitor(opCtx, record); err != nil {
		return nil, err
	}

	return &core.Competitor{
		CompetitorID: record.CompetitorID,
		DisplayName:  record.DisplayName,
		JoinedAt:     record.JoinedAt,
	}, nil
}

// GetCompetitor returns a registered competitor
func (s *Service) GetCompetitor(ctx context.Context, competitorID string) (*core.Competitor, error) {
	opCtx, cancel := s.storeCtx(ctx)
	defer cancel()

	record, err := s.store.GetCompetitor(opCtx, competitorID)
	if err != nil {
		return nil, err
	}
	return &core.Competitor{
		CompetitorID: record.CompetitorID,
		DisplayName:  record.DisplayName,
		JoinedAt:     record.JoinedAt,
	}, nil
}
