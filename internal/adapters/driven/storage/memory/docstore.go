package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jordannanyan/plagiarism-backend/internal/core/domain"
	"github.com/jordannanyan/plagiarism-backend/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory user document store.
type DocumentStore struct {
	mu     sync.RWMutex
	nextID int64
	docs   map[int64]domain.UserDocument
}

// NewDocumentStore creates an empty document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{nextID: 1, docs: make(map[int64]domain.UserDocument)}
}

// SaveDocument stores or updates a document.
func (s *DocumentStore) SaveDocument(_ context.Context, doc *domain.UserDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.ID == 0 {
		doc.ID = s.nextID
		s.nextID++
	}
	s.docs[doc.ID] = *doc
	return nil
}

// GetDocument retrieves a document by id.
func (s *DocumentStore) GetDocument(_ context.Context, id int64) (*domain.UserDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// Ensure CorpusStore implements the interface.
var _ driven.CorpusStore = (*CorpusStore)(nil)

// CorpusStore is an in-memory corpus store.
type CorpusStore struct {
	mu     sync.RWMutex
	nextID int64
	docs   map[int64]domain.CorpusDocument
}

// NewCorpusStore creates an empty corpus store.
func NewCorpusStore() *CorpusStore {
	return &CorpusStore{nextID: 1, docs: make(map[int64]domain.CorpusDocument)}
}

// Save stores or updates a corpus document.
func (s *CorpusStore) Save(_ context.Context, doc *domain.CorpusDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.ID == 0 {
		doc.ID = s.nextID
		s.nextID++
	}
	s.docs[doc.ID] = *doc
	return nil
}

// Get retrieves a corpus document by id.
func (s *CorpusStore) Get(_ context.Context, id int64) (*domain.CorpusDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// List returns every corpus document by ascending id.
func (s *CorpusStore) List(_ context.Context) ([]domain.CorpusDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(func(domain.CorpusDocument) bool { return true }), nil
}

// ListActive returns the active corpus by ascending id.
func (s *CorpusStore) ListActive(_ context.Context) ([]domain.CorpusDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(func(d domain.CorpusDocument) bool { return d.IsActive }), nil
}

// SetActive flips corpus membership.
func (s *CorpusStore) SetActive(_ context.Context, id int64, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.IsActive = active
	s.docs[id] = doc
	return nil
}

func (s *CorpusStore) sorted(keep func(domain.CorpusDocument) bool) []domain.CorpusDocument {
	out := make([]domain.CorpusDocument, 0, len(s.docs))
	for _, d := range s.docs {
		if keep(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
