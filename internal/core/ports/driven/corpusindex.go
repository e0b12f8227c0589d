package driven

import (
	"context"

	"github.com/jordannanyan/plagiarism-backend/internal/core/domain"
)

// IndexEntry is one corpus document with its cached MinHash signature and
// LSH bucket keys. Err is non-nil (wrapping domain.ErrCorpusRead) when the
// entry's text could not be read; such entries are skipped with a summary
// warning rather than aborting the check.
type IndexEntry struct {
	Doc        domain.CorpusDocument
	Signature  []uint64
	BucketKeys []string
	Err        error
}

// CorpusIndex materialises signatures and bucket keys for a corpus
// snapshot. Implementations may cache per-document entries and invalidate
// them when the underlying text changes; results are always equivalent to
// recomputing from the text.
type CorpusIndex interface {
	// Entries returns one entry per snapshot document, in input order.
	Entries(ctx context.Context, docs []domain.CorpusDocument, k, numPerm, bands int) ([]IndexEntry, error)
}
