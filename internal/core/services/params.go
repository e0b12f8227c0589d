package services

import (
	"context"
	"time"

	"github.com/jordannanyan/plagiarism-backend/internal/core/domain"
	"github.com/jordannanyan/plagiarism-backend/internal/core/ports/driven"
	"github.com/jordannanyan/plagiarism-backend/internal/core/ports/driving"
	"github.com/jordannanyan/plagiarism-backend/internal/logger"
)

// Ensure ParamService implements the interface.
var _ driving.ParamService = (*ParamService)(nil)

// ParamService manages the append-only algorithm parameter history.
type ParamService struct {
	store driven.ParamStore
	now   func() time.Time
}

// NewParamService creates a parameter service.
func NewParamService(store driven.ParamStore) *ParamService {
	return &ParamService{store: store, now: time.Now}
}

// Set validates and activates a new parameter tuple. The previously open
// row is closed at the activation instant; running checks keep the snapshot
// they read at start.
func (s *ParamService) Set(ctx context.Context, params domain.AlgorithmParams) (int64, error) {
	if err := params.Validate(); err != nil {
		return 0, err
	}
	if params.ActiveFrom.IsZero() {
		params.ActiveFrom = s.now()
	}

	id, err := s.store.Append(ctx, params)
	if err != nil {
		return 0, err
	}
	logger.Info("params %d activated: k=%d w=%d threshold=%.2f", id, params.K, params.W, params.Threshold)
	return id, nil
}

// Active returns the currently active tuple.
func (s *ParamService) Active(ctx context.Context) (*domain.AlgorithmParams, error) {
	return s.store.Active(ctx, s.now())
}

// History returns the full parameter history, newest first.
func (s *ParamService) History(ctx context.Context) ([]domain.AlgorithmParams, error) {
	return s.store.History(ctx)
}
