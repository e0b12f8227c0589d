package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jordannanyan/plagiarism-backend/internal/core/domain"
	"github.com/jordannanyan/plagiarism-backend/internal/core/ports/driven"
)

// Ensure CheckStore implements the interface.
var _ driven.CheckStore = (*CheckStore)(nil)

// CheckStore is an in-memory check request/result store. Result and match
// rows are stored together so the atomicity contract holds trivially.
type CheckStore struct {
	mu         sync.RWMutex
	nextReqID  int64
	nextResID  int64
	nextNoteID int64

	requests map[int64]domain.CheckRequest
	results  map[int64]domain.CheckResult // keyed by check id
	notes    map[int64]domain.VerificationNote

	// FailSaveResult forces SaveResult to fail, for atomicity tests.
	FailSaveResult bool
}

// NewCheckStore creates an empty check store.
func NewCheckStore() *CheckStore {
	return &CheckStore{
		nextReqID:  1,
		nextResID:  1,
		nextNoteID: 1,
		requests:   make(map[int64]domain.CheckRequest),
		results:    make(map[int64]domain.CheckResult),
		notes:      make(map[int64]domain.VerificationNote),
	}
}

// CreateRequest inserts a request row.
func (s *CheckStore) CreateRequest(_ context.Context, req *domain.CheckRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req.ID = s.nextReqID
	s.nextReqID++
	s.requests[req.ID] = *req
	return nil
}

// UpdateRequestStatus moves a request through its state machine.
func (s *CheckStore) UpdateRequestStatus(_ context.Context, id int64, status domain.CheckStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !req.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidInput, req.Status, status)
	}

	req.Status = status
	if status == domain.CheckStatusProcessing {
		req.StartedAt = &at
	}
	if status.IsTerminal() {
		req.FinishedAt = &at
	}
	s.requests[id] = req
	return nil
}

// GetRequest retrieves a request by id.
func (s *CheckStore) GetRequest(_ context.Context, id int64) (*domain.CheckRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &req, nil
}

// SaveResult stores the result with its matches, all or nothing.
func (s *CheckStore) SaveResult(_ context.Context, result *domain.CheckResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailSaveResult {
		return fmt.Errorf("forced save failure")
	}

	result.ID = s.nextResID
	s.nextResID++
	for i := range result.Matches {
		result.Matches[i].ID = int64(i + 1)
		result.Matches[i].ResultID = result.ID
	}
	s.results[result.CheckID] = *result
	return nil
}

// GetResultByCheck retrieves a result with matches by match_score descending.
func (s *CheckStore) GetResultByCheck(_ context.Context, checkID int64) (*domain.CheckResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.results[checkID]
	if !ok {
		return nil, domain.ErrNotFound
	}

	matches := make([]domain.CheckMatch, len(result.Matches))
	copy(matches, result.Matches)
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].MatchScore > matches[j].MatchScore })
	result.Matches = matches
	return &result, nil
}

// SaveVerification stores the single note of a result.
func (s *CheckStore) SaveVerification(_ context.Context, note *domain.VerificationNote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.notes[note.ResultID]; exists {
		return fmt.Errorf("%w: result %d already verified", domain.ErrInvalidInput, note.ResultID)
	}
	note.ID = s.nextNoteID
	s.nextNoteID++
	s.notes[note.ResultID] = *note
	return nil
}

// GetVerification retrieves the note attached to a result.
func (s *CheckStore) GetVerification(_ context.Context, resultID int64) (*domain.VerificationNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[resultID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &note, nil
}
