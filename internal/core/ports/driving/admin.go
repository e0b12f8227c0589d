package driving

import (
	"context"

	"github.com/jordannanyan/plagiarism-backend/internal/core/domain"
)

// CorpusService manages reference corpus membership.
type CorpusService interface {
	// Add registers a corpus document and returns its id.
	Add(ctx context.Context, doc domain.CorpusDocument) (int64, error)

	// List returns all corpus documents by ascending id.
	List(ctx context.Context) ([]domain.CorpusDocument, error)

	// SetActive flips whether a document participates in checks.
	SetActive(ctx context.Context, id int64, active bool) error
}

// ParamService manages the algorithm parameter history.
type ParamService interface {
	// Set activates a new parameter tuple, closing the previous one.
	Set(ctx context.Context, params domain.AlgorithmParams) (int64, error)

	// Active returns the currently active tuple.
	Active(ctx context.Context) (*domain.AlgorithmParams, error)

	// History returns the full parameter history, newest first.
	History(ctx context.Context) ([]domain.AlgorithmParams, error)
}
