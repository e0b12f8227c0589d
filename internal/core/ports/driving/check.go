package driving

import (
	"context"

	"github.com/jordannanyan/plagiarism-backend/internal/core/domain"
)

// RunCheckInput is the request to check one document against the corpus.
type RunCheckInput struct {
	// DocID is the user document to check. Must be positive.
	DocID int64

	// RequestedBy identifies the caller for the request row.
	RequestedBy string

	// MaxCandidates caps how many LSH candidates are compared exactly.
	// Zero means the default; the orchestrator never compares more than 50.
	MaxCandidates int
}

// RunCheckOutput summarises a completed check for the POST /api/checks
// response.
type RunCheckOutput struct {
	CheckID         int64   `json:"check_id"`
	ResultID        int64   `json:"result_id"`
	Similarity      float64 `json:"similarity"`
	Threshold       float64 `json:"threshold"`
	CandidatesCount int     `json:"candidates_count"`
	MatchesInserted int     `json:"matches_inserted"`
}

// CheckDetails is the GET /api/checks/{id} payload: the request row, its
// result (nil while processing or after failure) and an optional truncated
// normalised-text preview.
type CheckDetails struct {
	Request domain.CheckRequest
	Result  *domain.CheckResult
	Preview string
}

// CheckService runs plagiarism checks and exposes their outcomes.
type CheckService interface {
	// RunCheck executes the full pipeline for one document synchronously
	// and persists the outcome. The request row always ends in a terminal
	// state, done or failed.
	RunCheck(ctx context.Context, in RunCheckInput) (*RunCheckOutput, error)

	// GetCheck returns a check with its result and matches (ordered by
	// match_score descending), optionally with a text preview.
	GetCheck(ctx context.Context, checkID int64, withPreview bool) (*CheckDetails, error)

	// Verify attaches the single human verdict to a result.
	Verify(ctx context.Context, note *domain.VerificationNote) error
}
