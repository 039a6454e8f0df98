package core

import "time"

// Origin tags a read result with where it was served from
type Origin string

const (
	OriginCache Origin = "cache"
	OriginStore Origin = "store"
)

// SubmitScoreRequest is the body of POST /api/leaderboard/submit
type SubmitScoreRequest struct {
	CompetitorID string `json:"competitor_id" validate:"required,min=1,max=64"`
	Score        int64  `json:"score" validate:"min=0"`
	Mode         string `json:"mode,omitempty" validate:"omitempty,max=32"`
}

// CreateCompetitorRequest is the body of POST /api/leaderboard/competitors.
// CompetitorID is optional; a UUID is assigned when omitted.
type CreateCompetitorRequest struct {
	CompetitorID string `json:"competitor_id,omitempty" validate:"omitempty,min=1,max=64"`
	DisplayName  string `json:"display_name" validate:"required,min=1,max=64"`
}

// RankedEntry is one row of a ranked view: a competitor annotated with its
// 1-based position under the total order (score desc, join time asc, id asc)
type RankedEntry struct {
	CompetitorID    string `json:"competitor_id"`
	DisplayName     string `json:"display_name"`
	CumulativeScore int64  `json:"score"`
	Rank            int64  `json:"rank"`
}

// SubmitResult reports one accepted submission: the durable log entry id and
// the committed cumulative score it produced
type SubmitResult struct {
	EntryID         int64     `json:"entry_id"`
	CompetitorID    string    `json:"competitor_id"`
	Delta           int64     `json:"score"`
	CumulativeScore int64     `json:"total_score"`
	SubmittedAt     time.Time `json:"timestamp"`
}

// Competitor is the public view of a registered competitor
type Competitor struct {
	CompetitorID string    `json:"competitor_id"`
	DisplayName  string    `json:"display_name"`
	JoinedAt     time.Time `json:"joined_at"`
}

// ErrorResponse is the JSON error envelope returned by all endpoints
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
