// Package textfile reads the normalised text files referenced by the
// path_text columns. Files are UTF-8 and LF-terminated; the core reads and
// never writes them.
package textfile

import (
	"context"
	"fmt"
	"os"

	"github.com/jordannanyan/plagiarism-backend/internal/core/domain"
	"github.com/jordannanyan/plagiarism-backend/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.TextSource = (*Source)(nil)

// Source reads normalised text from the local filesystem.
type Source struct{}

// New creates a filesystem text source.
func New() *Source {
	return &Source{}
}

// ReadNormalized returns the file contents. Any failure wraps
// domain.ErrCorpusRead so the orchestrator can skip corpus entries without
// aborting the check.
func (s *Source) ReadNormalized(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if path == "" {
		return "", fmt.Errorf("%w: empty path", domain.ErrCorpusRead)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrCorpusRead, path, err)
	}
	return string(data), nil
}
