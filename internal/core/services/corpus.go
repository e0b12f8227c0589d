package services

import (
	"context"
	"fmt"

	"github.com/jordannanyan/plagiarism-backend/internal/core/domain"
	"github.com/jordannanyan/plagiarism-backend/internal/core/ports/driven"
	"github.com/jordannanyan/plagiarism-backend/internal/core/ports/driving"
	"github.com/jordannanyan/plagiarism-backend/internal/logger"
)

// Ensure CorpusService implements the interface.
var _ driving.CorpusService = (*CorpusService)(nil)

// CorpusService manages reference corpus membership.
type CorpusService struct {
	store driven.CorpusStore
}

// NewCorpusService creates a corpus service.
func NewCorpusService(store driven.CorpusStore) *CorpusService {
	return &CorpusService{store: store}
}

// Add registers a corpus document and returns its id.
func (s *CorpusService) Add(ctx context.Context, doc domain.CorpusDocument) (int64, error) {
	if doc.Title == "" {
		return 0, fmt.Errorf("%w: corpus title is required", domain.ErrInvalidInput)
	}
	if !doc.SourceType.IsValid() {
		return 0, fmt.Errorf("%w: unknown source type %q", domain.ErrInvalidInput, doc.SourceType)
	}
	if doc.PathText == "" {
		return 0, fmt.Errorf("%w: corpus path_text is required", domain.ErrInvalidInput)
	}

	if err := s.store.Save(ctx, &doc); err != nil {
		return 0, fmt.Errorf("%w: saving corpus document: %v", domain.ErrPersistence, err)
	}
	logger.Info("corpus %d (%s) registered, active=%t", doc.ID, doc.Title, doc.IsActive)
	return doc.ID, nil
}

// List returns all corpus documents by ascending id.
func (s *CorpusService) List(ctx context.Context) ([]domain.CorpusDocument, error) {
	return s.store.List(ctx)
}

// SetActive flips whether a document participates in checks. Running checks
// are unaffected: they operate on the membership snapshot taken at start.
func (s *CorpusService) SetActive(ctx context.Context, id int64, active bool) error {
	if id <= 0 {
		return fmt.Errorf("%w: corpus id must be positive", domain.ErrInvalidInput)
	}
	return s.store.SetActive(ctx, id, active)
}
