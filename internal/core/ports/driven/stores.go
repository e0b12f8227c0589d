package driven

import (
	"context"
	"time"

	"github.com/jordannanyan/plagiarism-backend/internal/core/domain"
)

// ParamStore persists the algorithm parameter history.
type ParamStore interface {
	// Active returns the parameter row active at now: the most recently
	// activated row with active_from <= now < coalesce(active_to, +inf).
	// Returns domain.ErrNoActiveParams when none qualifies.
	Active(ctx context.Context, now time.Time) (*domain.AlgorithmParams, error)

	// Append closes the currently open row (active_to = activation instant)
	// and inserts the new row. Returns the new row id.
	Append(ctx context.Context, params domain.AlgorithmParams) (int64, error)

	// History returns every row, newest activation first.
	History(ctx context.Context) ([]domain.AlgorithmParams, error)
}

// DocumentStore persists user-submitted documents.
type DocumentStore interface {
	// SaveDocument stores or updates a document, assigning the id on insert.
	SaveDocument(ctx context.Context, doc *domain.UserDocument) error

	// GetDocument retrieves a document by id. Returns domain.ErrNotFound
	// when absent.
	GetDocument(ctx context.Context, id int64) (*domain.UserDocument, error)
}

// CorpusStore persists the reference corpus.
type CorpusStore interface {
	// Save stores or updates a corpus document, assigning the id on insert.
	Save(ctx context.Context, doc *domain.CorpusDocument) error

	// Get retrieves a corpus document by id.
	Get(ctx context.Context, id int64) (*domain.CorpusDocument, error)

	// List returns every corpus document, active or not, by ascending id.
	List(ctx context.Context) ([]domain.CorpusDocument, error)

	// ListActive returns the active corpus by ascending id. The orchestrator
	// calls this once per check and treats the slice as a snapshot.
	ListActive(ctx context.Context) ([]domain.CorpusDocument, error)

	// SetActive flips corpus membership.
	SetActive(ctx context.Context, id int64, active bool) error
}

// CheckStore persists check requests, results, match spans and
// verification notes.
type CheckStore interface {
	// CreateRequest inserts a request row, assigning its id.
	CreateRequest(ctx context.Context, req *domain.CheckRequest) error

	// UpdateRequestStatus moves a request through its state machine.
	// Entering a terminal state sets finished_at.
	UpdateRequestStatus(ctx context.Context, id int64, status domain.CheckStatus, at time.Time) error

	// GetRequest retrieves a request by id.
	GetRequest(ctx context.Context, id int64) (*domain.CheckRequest, error)

	// SaveResult inserts the result row and all its match rows in a single
	// transaction: either everything commits or nothing does. Assigns the
	// result and match ids.
	SaveResult(ctx context.Context, result *domain.CheckResult) error

	// GetResultByCheck retrieves the result of a check with its matches
	// ordered by match_score descending. Returns domain.ErrNotFound when
	// the check has no result.
	GetResultByCheck(ctx context.Context, checkID int64) (*domain.CheckResult, error)

	// SaveVerification stores the single verification note of a result.
	// A second note for the same result returns domain.ErrInvalidInput.
	SaveVerification(ctx context.Context, note *domain.VerificationNote) error

	// GetVerification retrieves the note attached to a result.
	GetVerification(ctx context.Context, resultID int64) (*domain.VerificationNote, error)
}
