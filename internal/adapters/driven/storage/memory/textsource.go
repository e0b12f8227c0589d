package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jordannanyan/plagiarism-backend/internal/core/domain"
	"github.com/jordannanyan/plagiarism-backend/internal/core/ports/driven"
)

// Ensure TextSource implements the interface.
var _ driven.TextSource = (*TextSource)(nil)

// TextSource serves normalised text from a path-keyed map.
type TextSource struct {
	mu    sync.RWMutex
	texts map[string]string
}

// NewTextSource creates a text source over the given path -> content map.
func NewTextSource(texts map[string]string) *TextSource {
	if texts == nil {
		texts = make(map[string]string)
	}
	return &TextSource{texts: texts}
}

// Put registers or replaces a text.
func (s *TextSource) Put(path, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts[path] = content
}

// Remove deletes a text so subsequent reads fail like a missing file.
func (s *TextSource) Remove(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.texts, path)
}

// ReadNormalized returns the registered content, or a CorpusRead error.
func (s *TextSource) ReadNormalized(_ context.Context, path string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.texts[path]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrCorpusRead, path)
	}
	return content, nil
}
