package core

import "errors"

// Error codes
const (
	ErrCodeCompetitorNotFound = "COMPETITOR_NOT_FOUND"
	ErrCodeCompetitorExists   = "COMPETITOR_EXISTS"
	ErrCodeInvalidScore       = "INVALID_SCORE"
	ErrCodeInvalidLimit       = "INVALID_LIMIT"
	ErrCodeStoreError         = "STORE_ERROR"
	ErrCodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	ErrCodeInvalidContent     = "INVALID_CONTENT_TYPE"
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Sentinel errors shared by the service and storage layers. Storage wraps
// them with operation context; handlers map them to codes via errors.Is.
var (
	// ErrCompetitorNotFound is terminal: submissions require a registered competitor
	ErrCompetitorNotFound = errors.New("competitor not found")

	// ErrCompetitorExists is returned when registering an id that is already taken
	ErrCompetitorExists = errors.New("competitor already exists")

	// ErrInvalidScore rejects negative score deltas before any store access
	ErrInvalidScore = errors.New("score delta must be a non-negative integer")

	// ErrInvalidLimit rejects top-N limits outside [1, MaxTopLimit]
	ErrInvalidLimit = errors.New("limit out of range")

	// ErrStoreUnavailable marks transient store failures (lock wait timeout,
	// connection loss). Callers may retry with backoff; the coordinator never
	// retries a write whose commit status is unknown.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// CodeFor maps a service error to its HTTP error code
func CodeFor(err error) string {
	switch {
	case errors.Is(err, ErrCompetitorNotFound):
		return ErrCodeCompetitorNotFound
	case errors.Is(err, ErrCompetitorExists):
		return ErrCodeCompetitorExists
	case errors.Is(err, ErrInvalidScore):
		return ErrCodeInvalidScore
	case errors.Is(err, ErrInvalidLimit):
		return ErrCodeInvalidLimit
	case errors.Is(err, ErrStoreUnavailable):
		return ErrCodeStoreError
	default:
		return ErrCodeInternalError
	}
}
