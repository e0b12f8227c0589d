// Package memory provides in-memory store implementations used by service
// tests and the CLI dry-run mode. Behaviour mirrors the sqlite adapter.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jordannanyan/plagiarism-backend/internal/core/domain"
	"github.com/jordannanyan/plagiarism-backend/internal/core/ports/driven"
)

// Ensure ParamStore implements the interface.
var _ driven.ParamStore = (*ParamStore)(nil)

// ParamStore is an in-memory algorithm parameter history.
type ParamStore struct {
	mu     sync.RWMutex
	nextID int64
	rows   []domain.AlgorithmParams
}

// NewParamStore creates an empty parameter store.
func NewParamStore() *ParamStore {
	return &ParamStore{nextID: 1}
}

// Active returns the most recently activated row covering now.
func (s *ParamStore) Active(_ context.Context, now time.Time) (*domain.AlgorithmParams, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best *domain.AlgorithmParams
	for i := range s.rows {
		row := s.rows[i]
		if !row.ActiveAt(now) {
			continue
		}
		if best == nil || row.ActiveFrom.After(best.ActiveFrom) {
			copied := row
			best = &copied
		}
	}
	if best == nil {
		return nil, domain.ErrNoActiveParams
	}
	return best, nil
}

// Append closes the open row and inserts the new one.
func (s *ParamStore) Append(_ context.Context, params domain.AlgorithmParams) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rows {
		if s.rows[i].ActiveTo == nil {
			closedAt := params.ActiveFrom
			s.rows[i].ActiveTo = &closedAt
		}
	}

	params.ID = s.nextID
	s.nextID++
	s.rows = append(s.rows, params)
	return params.ID, nil
}

// History returns all rows, newest activation first.
func (s *ParamStore) History(_ context.Context) ([]domain.AlgorithmParams, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.AlgorithmParams, len(s.rows))
	copy(out, s.rows)
	sort.Slice(out, func(i, j int) bool { return out[i].ActiveFrom.After(out[j].ActiveFrom) })
	return out, nil
}
